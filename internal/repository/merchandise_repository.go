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

type MerchandiseRepositoryImpl struct {
	db *sqlx.DB
}

func NewMerchandiseRepository(db *sqlx.DB) *MerchandiseRepositoryImpl {
	return &MerchandiseRepositoryImpl{db: db}
}

func (r *MerchandiseRepositoryImpl) Create(ctx context.Context, m *models.Merchandise) error {
	if m.MerchandiseID == "" {
		m.MerchandiseID = uuid.New().String()
	}

	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now

	query := `
		INSERT INTO merchandise
		(merchandise_id, name, description, price_tiers, order_link, image_url,
		 is_available, created_at, updated_at)
		VALUES
		(:merchandise_id, :name, :description, :price_tiers, :order_link, :image_url,
		 :is_available, :created_at, :updated_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, m)
	if err != nil {
		return fmt.Errorf("ошибка при создании товара: %w", err)
	}

	return nil
}

func (r *MerchandiseRepositoryImpl) GetByID(ctx context.Context, id string) (*models.Merchandise, error) {
	query := `SELECT * FROM merchandise WHERE merchandise_id = $1`

	var m models.Merchandise
	err := r.db.GetContext(ctx, &m, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("товар с ID %s не найден", id)
		}
		return nil, fmt.Errorf("ошибка при получении товара: %w", err)
	}

	return &m, nil
}

func (r *MerchandiseRepositoryImpl) List(ctx context.Context, page, limit int) ([]models.Merchandise, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM merchandise`)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при подсчете товаров: %w", err)
	}

	_, limit, offset := normalizePage(page, limit)

	query := fmt.Sprintf(
		`SELECT * FROM merchandise ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		limit, offset)

	var items []models.Merchandise
	err = r.db.SelectContext(ctx, &items, query)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при получении товаров: %w", err)
	}

	return items, total, nil
}

func (r *MerchandiseRepositoryImpl) Update(ctx context.Context, m *models.Merchandise) error {
	m.UpdatedAt = time.Now()

	query := `
		UPDATE merchandise SET
			name = :name,
			description = :description,
			price_tiers = :price_tiers,
			order_link = :order_link,
			image_url = :image_url,
			is_available = :is_available,
			updated_at = :updated_at
		WHERE merchandise_id = :merchandise_id
	`

	result, err := r.db.NamedExecContext(ctx, query, m)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении товара: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return errors.New("товар не найден")
	}

	return nil
}

func (r *MerchandiseRepositoryImpl) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM merchandise WHERE merchandise_id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("ошибка при удалении товара: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return errors.New("товар не найден")
	}

	return nil
}
