package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"studorgCPT/internal/config"
	"studorgCPT/internal/models"
	"studorgCPT/internal/repository"
)

type AuthService interface {
	Login(ctx context.Context, studentNumber, password string) (*models.User, string, error)
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
	ResetPassword(ctx context.Context, targetUserID, newPassword string) error
	ValidateToken(tokenString string) (jwt.MapClaims, error)
}

type authService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// Login проверяет пару номер/пароль. Деактивированный пользователь
// отклоняется независимо от корректности пароля.
func (s *authService) Login(ctx context.Context, studentNumber, password string) (*models.User, string, error) {
	user, err := s.userRepo.VerifyPassword(ctx, studentNumber, password)
	if err != nil {
		return nil, "", fmt.Errorf("ошибка аутентификации: %w", err)
	}

	if !user.IsActive {
		return nil, "", fmt.Errorf("учетная запись деактивирована")
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("ошибка генерации токена: %w", err)
	}

	return user, token, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	_, err = s.userRepo.VerifyPassword(ctx, user.StudentNumber, oldPassword)
	if err != nil {
		return fmt.Errorf("текущий пароль неверен")
	}

	// смена пароля снимает флаг первого входа
	err = s.userRepo.UpdatePassword(ctx, userID, newPassword, false)
	if err != nil {
		return err
	}

	return nil
}

// ResetPassword ставит временный пароль и флаг первого входа,
// чтобы пользователь сменил пароль при следующем заходе.
func (s *authService) ResetPassword(ctx context.Context, targetUserID, newPassword string) error {
	_, err := s.userRepo.GetUserByID(ctx, targetUserID)
	if err != nil {
		return err
	}

	return s.userRepo.UpdatePassword(ctx, targetUserID, newPassword, true)
}

func (s *authService) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"userId": user.UserID,
		"role":   user.Role,
		"exp":    time.Now().Add(s.cfg.TokenDuration).Unix(),
		"iat":    time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}

	return tokenString, nil
}

func (s *authService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecretKey), nil
	})

	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга токена: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("недействительный токен")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("неверный формат claims")
	}

	return claims, nil
}
