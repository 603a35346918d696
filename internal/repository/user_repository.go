package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"studorgCPT/internal/models"
)

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

// userColumns - выборка без password_hash. Хеш выбирается только явным
// запросом внутри VerifyPassword/UpdatePassword.
const userColumns = `user_id, student_number, last_name, first_name, middle_name,
	'' AS password_hash, role, year_level, is_member, membership_type,
	profile_picture, is_active, registered_by, first_login, created_at, updated_at`

func (r *userRepository) CreateUser(ctx context.Context, user *models.User, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("ошибка при хешировании пароля: %w", err)
	}

	user.UserID = uuid.New().String()
	user.PasswordHash = string(hashedPassword)
	user.StudentNumber = strings.ToUpper(strings.TrimSpace(user.StudentNumber))

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `
		INSERT INTO users
		(user_id, student_number, last_name, first_name, middle_name, password_hash,
		 role, year_level, is_member, membership_type, profile_picture, is_active,
		 registered_by, first_login, created_at, updated_at)
		VALUES
		(:user_id, :student_number, :last_name, :first_name, :middle_name, :password_hash,
		 :role, :year_level, :is_member, :membership_type, :profile_picture, :is_active,
		 :registered_by, :first_login, :created_at, :updated_at)
	`

	_, err = r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key value") {
			return fmt.Errorf("студенческий номер %s уже зарегистрирован", user.StudentNumber)
		}
		return fmt.Errorf("ошибка при создании пользователя: %w", err)
	}

	// хеш не должен жить в структуре дольше, чем нужно для INSERT
	user.PasswordHash = ""

	return nil
}

func (r *userRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User

	query := fmt.Sprintf(`SELECT %s FROM users WHERE user_id = $1`, userColumns)

	err := r.db.GetContext(ctx, &user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("пользователь с ID %s не найден", userID)
		}
		return nil, fmt.Errorf("ошибка при получении пользователя: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetUserByStudentNumber(ctx context.Context, studentNumber string) (*models.User, error) {
	var user models.User

	query := fmt.Sprintf(`SELECT %s FROM users WHERE student_number = $1`, userColumns)

	err := r.db.GetContext(ctx, &user, query, strings.ToUpper(strings.TrimSpace(studentNumber)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("пользователь с номером %s не найден", studentNumber)
		}
		return nil, fmt.Errorf("ошибка при получении пользователя: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetSummary(ctx context.Context, userID string) (*models.UserSummary, error) {
	var summary models.UserSummary

	query := `
		SELECT user_id, student_number, last_name, first_name, role, profile_picture
		FROM users WHERE user_id = $1
	`

	err := r.db.GetContext(ctx, &summary, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("пользователь с ID %s не найден", userID)
		}
		return nil, fmt.Errorf("ошибка при получении карточки пользователя: %w", err)
	}

	return &summary, nil
}

func (r *userRepository) VerifyPassword(ctx context.Context, studentNumber, password string) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE student_number = $1`

	err := r.db.GetContext(ctx, &user, query, strings.ToUpper(strings.TrimSpace(studentNumber)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("пользователь с номером %s не найден", studentNumber)
		}
		return nil, fmt.Errorf("ошибка при получении пользователя: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return nil, fmt.Errorf("неверный пароль")
	}

	user.PasswordHash = ""

	return &user, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()
	user.StudentNumber = strings.ToUpper(strings.TrimSpace(user.StudentNumber))

	query := `
		UPDATE users SET
			student_number = :student_number,
			last_name = :last_name,
			first_name = :first_name,
			middle_name = :middle_name,
			role = :role,
			year_level = :year_level,
			is_member = :is_member,
			membership_type = :membership_type,
			profile_picture = :profile_picture,
			updated_at = :updated_at
		WHERE user_id = :user_id
	`

	result, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении пользователя: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return errors.New("пользователь не найден")
	}

	return nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID, newPassword string, firstLogin bool) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("ошибка при хешировании пароля: %w", err)
	}

	query := `
		UPDATE users SET
			password_hash = $1,
			first_login = $2,
			updated_at = NOW()
		WHERE user_id = $3
	`

	result, err := r.db.ExecContext(ctx, query, string(hashedPassword), firstLogin, userID)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении пароля: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return errors.New("пользователь не найден")
	}

	return nil
}

// ToggleActive - мягкое удаление: пользователь не стирается, а деактивируется
func (r *userRepository) ToggleActive(ctx context.Context, userID string) (*models.User, error) {
	query := fmt.Sprintf(`
		UPDATE users SET
			is_active = NOT is_active,
			updated_at = NOW()
		WHERE user_id = $1
		RETURNING %s
	`, userColumns)

	var user models.User
	err := r.db.GetContext(ctx, &user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("пользователь с ID %s не найден", userID)
		}
		return nil, fmt.Errorf("ошибка при переключении статуса: %w", err)
	}

	return &user, nil
}

func (r *userRepository) DeleteUser(ctx context.Context, userID string) error {
	query := `DELETE FROM users WHERE user_id = $1`

	result, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении пользователя: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return errors.New("пользователь не найден")
	}

	return nil
}

func (r *userRepository) Search(ctx context.Context, search string) ([]models.User, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM users
		WHERE student_number ILIKE $1
		   OR last_name ILIKE $1
		   OR first_name ILIKE $1
		ORDER BY last_name, first_name
		LIMIT 50
	`, userColumns)

	var users []models.User
	err := r.db.SelectContext(ctx, &users, query, "%"+strings.TrimSpace(search)+"%")
	if err != nil {
		return nil, fmt.Errorf("ошибка при поиске пользователей: %w", err)
	}

	return users, nil
}

func (r *userRepository) Stats(ctx context.Context) (*UserStats, error) {
	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE is_active) AS active,
			COUNT(*) FILTER (WHERE is_member) AS members,
			COUNT(*) FILTER (WHERE role = 'student') AS students,
			COUNT(*) FILTER (WHERE role = 'council-officer') AS council_officers,
			COUNT(*) FILTER (WHERE role = 'committee-officer') AS committee_officers,
			COUNT(*) FILTER (WHERE role = 'faculty') AS faculty
		FROM users
	`

	var stats UserStats
	err := r.db.GetContext(ctx, &stats, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении статистики: %w", err)
	}

	return &stats, nil
}

func (r *userRepository) List(ctx context.Context, filter UserFilter) ([]models.User, int, error) {
	conditions := []string{"TRUE"}
	args := []interface{}{}

	addCondition := func(clause string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}

	if filter.Role != "" {
		addCondition("role = $%d", filter.Role)
	}
	if filter.IsMember != nil {
		addCondition("is_member = $%d", *filter.IsMember)
	}
	if filter.IsActive != nil {
		addCondition("is_active = $%d", *filter.IsActive)
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM users "+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при подсчете пользователей: %w", err)
	}

	_, limit, offset := normalizePage(filter.Page, filter.Limit)

	query := fmt.Sprintf(
		"SELECT %s FROM users %s ORDER BY last_name, first_name LIMIT %d OFFSET %d",
		userColumns, where, limit, offset)

	var users []models.User
	err = r.db.SelectContext(ctx, &users, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при получении пользователей: %w", err)
	}

	return users, total, nil
}
