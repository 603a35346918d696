package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"studorgCPT/internal/models"
)

type TestimonialRepositoryImpl struct {
	db *sqlx.DB
}

func NewTestimonialRepository(db *sqlx.DB) *TestimonialRepositoryImpl {
	return &TestimonialRepositoryImpl{db: db}
}

func (r *TestimonialRepositoryImpl) Create(ctx context.Context, t *models.Testimonial) error {
	if t.TestimonialID == "" {
		t.TestimonialID = uuid.New().String()
	}

	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now

	query := `
		INSERT INTO testimonials
		(testimonial_id, name, role, quote, image_url, is_active, created_at, updated_at)
		VALUES
		(:testimonial_id, :name, :role, :quote, :image_url, :is_active, :created_at, :updated_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, t)
	if err != nil {
		return fmt.Errorf("ошибка при создании отзыва: %w", err)
	}

	return nil
}

func (r *TestimonialRepositoryImpl) GetByID(ctx context.Context, id string) (*models.Testimonial, error) {
	query := `SELECT * FROM testimonials WHERE testimonial_id = $1`

	var t models.Testimonial
	err := r.db.GetContext(ctx, &t, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("отзыв с ID %s не найден", id)
		}
		return nil, fmt.Errorf("ошибка при получении отзыва: %w", err)
	}

	return &t, nil
}

func (r *TestimonialRepositoryImpl) List(ctx context.Context, activeOnly bool, page, limit int) ([]models.Testimonial, int, error) {
	where := ""
	if activeOnly {
		where = "WHERE is_active = TRUE"
	}

	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM testimonials "+where)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при подсчете отзывов: %w", err)
	}

	_, limit, offset := normalizePage(page, limit)

	query := fmt.Sprintf(
		"SELECT * FROM testimonials %s ORDER BY created_at DESC LIMIT %d OFFSET %d",
		where, limit, offset)

	var items []models.Testimonial
	err = r.db.SelectContext(ctx, &items, query)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при получении отзывов: %w", err)
	}

	return items, total, nil
}

func (r *TestimonialRepositoryImpl) Update(ctx context.Context, t *models.Testimonial) error {
	t.UpdatedAt = time.Now()

	query := `
		UPDATE testimonials SET
			name = :name,
			role = :role,
			quote = :quote,
			image_url = :image_url,
			is_active = :is_active,
			updated_at = :updated_at
		WHERE testimonial_id = :testimonial_id
	`

	result, err := r.db.NamedExecContext(ctx, query, t)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении отзыва: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return errors.New("отзыв не найден")
	}

	return nil
}

func (r *TestimonialRepositoryImpl) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM testimonials WHERE testimonial_id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("ошибка при удалении отзыва: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return errors.New("отзыв не найден")
	}

	return nil
}

func (r *TestimonialRepositoryImpl) ToggleActive(ctx context.Context, id string) (*models.Testimonial, error) {
	query := `
		UPDATE testimonials SET
			is_active = NOT is_active,
			updated_at = NOW()
		WHERE testimonial_id = $1
		RETURNING *
	`

	var t models.Testimonial
	err := r.db.GetContext(ctx, &t, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("отзыв с ID %s не найден", id)
		}
		return nil, fmt.Errorf("ошибка при переключении отзыва: %w", err)
	}

	return &t, nil
}
