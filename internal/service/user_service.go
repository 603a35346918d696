package service

import (
	"context"
	"fmt"

	"studorgCPT/internal/forms"
	"studorgCPT/internal/models"
	"studorgCPT/internal/repository"
	"studorgCPT/internal/storage"
)

type RegisterUserRequest struct {
	StudentNumber  string `validate:"required"`
	LastName       string `validate:"required"`
	FirstName      string `validate:"required"`
	MiddleName     string
	Password       string `validate:"required,min=6"`
	Role           string
	YearLevel      int
	IsMember       bool
	MembershipType *string
	RegisteredBy   *string
	FirstLogin     bool
}

type UpdateUserRequest struct {
	UserID         string
	LastName       *string
	FirstName      *string
	MiddleName     *string
	Role           *string
	YearLevel      *int
	IsMember       *bool
	MembershipType *string
	Image          *storage.UploadFile
}

// BulkUserRow - строка административной массовой загрузки
type BulkUserRow struct {
	StudentNumber string `json:"studentNumber" validate:"required"`
	LastName      string `json:"lastName" validate:"required"`
	FirstName     string `json:"firstName" validate:"required"`
	MiddleName    string `json:"middleName"`
	Role          string `json:"role"`
	YearLevel     int    `json:"yearLevel"`
}

type BulkUploadResult struct {
	Created int      `json:"created"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}

type UserService interface {
	Register(ctx context.Context, req RegisterUserRequest) (*models.User, error)
	Update(ctx context.Context, req UpdateUserRequest) (*models.User, error)
	ToggleStatus(ctx context.Context, userID string) (*models.User, error)
	Delete(ctx context.Context, userID string) error
	BulkUpload(ctx context.Context, registeredBy string, rows []BulkUserRow) (*BulkUploadResult, error)
}

type userService struct {
	userRepo repository.UserRepository
	storage  storage.Storage
}

func NewUserService(userRepo repository.UserRepository, storage storage.Storage) UserService {
	return &userService{
		userRepo: userRepo,
		storage:  storage,
	}
}

func (s *userService) Register(ctx context.Context, req RegisterUserRequest) (*models.User, error) {
	if err := forms.ValidateStruct(req); err != nil {
		return nil, err
	}

	if req.Role == "" {
		req.Role = models.RoleStudent
	}
	if req.YearLevel == 0 {
		req.YearLevel = 1
	}

	user := &models.User{
		StudentNumber:  req.StudentNumber,
		LastName:       req.LastName,
		FirstName:      req.FirstName,
		MiddleName:     req.MiddleName,
		Role:           req.Role,
		YearLevel:      req.YearLevel,
		IsMember:       req.IsMember,
		MembershipType: req.MembershipType,
		IsActive:       true,
		RegisteredBy:   req.RegisteredBy,
		FirstLogin:     req.FirstLogin,
	}

	err := s.userRepo.CreateUser(ctx, user, req.Password)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) Update(ctx context.Context, req UpdateUserRequest) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.MiddleName != nil {
		user.MiddleName = *req.MiddleName
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.YearLevel != nil {
		user.YearLevel = *req.YearLevel
	}
	if req.IsMember != nil {
		user.IsMember = *req.IsMember
	}
	if req.MembershipType != nil {
		user.MembershipType = req.MembershipType
	}

	if req.Image != nil {
		if user.ProfilePicture != "" {
			deleteStored(ctx, s.storage, user.ProfilePicture)
		}
		imageURL, err := s.storage.UploadImage(ctx, "profiles", *req.Image)
		if err != nil {
			return nil, err
		}
		user.ProfilePicture = imageURL
	}

	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) ToggleStatus(ctx context.Context, userID string) (*models.User, error) {
	return s.userRepo.ToggleActive(ctx, userID)
}

func (s *userService) Delete(ctx context.Context, userID string) error {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if user.ProfilePicture != "" {
		deleteStored(ctx, s.storage, user.ProfilePicture)
	}

	return s.userRepo.DeleteUser(ctx, userID)
}

// BulkUpload создает пользователей пачкой. Ошибки собираются построчно,
// одна плохая строка не валит всю загрузку. Временный пароль равен
// студенческому номеру, флаг первого входа заставит его сменить.
func (s *userService) BulkUpload(ctx context.Context, registeredBy string, rows []BulkUserRow) (*BulkUploadResult, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("пустой список пользователей")
	}

	result := &BulkUploadResult{}

	for i, row := range rows {
		if err := forms.ValidateStruct(row); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("строка %d: %v", i+1, err))
			continue
		}

		role := row.Role
		if role == "" {
			role = models.RoleStudent
		}
		yearLevel := row.YearLevel
		if yearLevel == 0 {
			yearLevel = 1
		}

		user := &models.User{
			StudentNumber: row.StudentNumber,
			LastName:      row.LastName,
			FirstName:     row.FirstName,
			MiddleName:    row.MiddleName,
			Role:          role,
			YearLevel:     yearLevel,
			IsActive:      true,
			RegisteredBy:  &registeredBy,
			FirstLogin:    true,
		}

		err := s.userRepo.CreateUser(ctx, user, row.StudentNumber)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("строка %d: %v", i+1, err))
			continue
		}

		result.Created++
	}

	return result, nil
}
