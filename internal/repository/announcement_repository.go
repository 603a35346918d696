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

	"studorgCPT/internal/models"
)

type AnnouncementRepositoryImpl struct {
	db *sqlx.DB
}

func NewAnnouncementRepository(db *sqlx.DB) *AnnouncementRepositoryImpl {
	return &AnnouncementRepositoryImpl{db: db}
}

var announcementSortColumns = map[string]string{
	"createdAt":   "created_at",
	"publishDate": "publish_date",
	"priority":    "priority",
	"views":       "views",
	"title":       "title",
}

func (r *AnnouncementRepositoryImpl) Create(ctx context.Context, a *models.Announcement) error {
	if a.AnnouncementID == "" {
		a.AnnouncementID = uuid.New().String()
	}

	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now

	// объявление, созданное сразу опубликованным, получает дату публикации
	if a.IsPublished && a.PublishDate == nil {
		a.PublishDate = &now
	}

	query := `
		INSERT INTO announcements
		(announcement_id, title, description, content, type, author_id, image_url,
		 publish_date, expiry_date, views, is_published, priority, target_audience,
		 time, location, organizer, contact, attendees, agenda, awardees, attachments,
		 created_at, updated_at)
		VALUES
		(:announcement_id, :title, :description, :content, :type, :author_id, :image_url,
		 :publish_date, :expiry_date, :views, :is_published, :priority, :target_audience,
		 :time, :location, :organizer, :contact, :attendees, :agenda, :awardees, :attachments,
		 :created_at, :updated_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, a)
	if err != nil {
		return fmt.Errorf("ошибка при создании объявления: %w", err)
	}

	return nil
}

func (r *AnnouncementRepositoryImpl) GetByID(ctx context.Context, id string) (*models.Announcement, error) {
	query := `SELECT * FROM announcements WHERE announcement_id = $1`

	var a models.Announcement
	err := r.db.GetContext(ctx, &a, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("объявление с ID %s не найдено", id)
		}
		return nil, fmt.Errorf("ошибка при получении объявления: %w", err)
	}

	return &a, nil
}

// List применяет whitelisted фильтры и пагинацию. Объявления с истекшим
// expiry_date исключаются из выдачи всегда.
func (r *AnnouncementRepositoryImpl) List(ctx context.Context, filter ContentFilter) ([]models.Announcement, int, error) {
	conditions := []string{"(expiry_date IS NULL OR expiry_date > NOW())"}
	args := []interface{}{}

	addCondition := func(clause string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}

	if filter.Type != "" {
		addCondition("type = $%d", filter.Type)
	}
	if filter.IsPublished != nil {
		addCondition("is_published = $%d", *filter.IsPublished)
	}
	if filter.Audience != "" {
		addCondition("$%d = ANY(target_audience)", filter.Audience)
	}
	if filter.Priority != "" {
		addCondition("priority = $%d", filter.Priority)
	}
	if filter.From != nil {
		addCondition("created_at >= $%d", *filter.From)
	}
	if filter.To != nil {
		addCondition("created_at <= $%d", *filter.To)
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	var total int
	countQuery := "SELECT COUNT(*) FROM announcements " + where
	err := r.db.GetContext(ctx, &total, countQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при подсчете объявлений: %w", err)
	}

	orderBy := buildOrderBy(filter.Sort, announcementSortColumns, "created_at DESC")
	_, limit, offset := normalizePage(filter.Page, filter.Limit)

	query := fmt.Sprintf(
		"SELECT * FROM announcements %s ORDER BY %s LIMIT %d OFFSET %d",
		where, orderBy, limit, offset)

	var items []models.Announcement
	err = r.db.SelectContext(ctx, &items, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при получении объявлений: %w", err)
	}

	return items, total, nil
}

func (r *AnnouncementRepositoryImpl) ListByAuthor(ctx context.Context, authorID, status string) ([]models.Announcement, error) {
	query := `SELECT * FROM announcements WHERE author_id = $1`
	args := []interface{}{authorID}

	switch status {
	case "published":
		query += " AND is_published = TRUE"
	case "draft":
		query += " AND is_published = FALSE"
	}

	query += " ORDER BY created_at DESC"

	var items []models.Announcement
	err := r.db.SelectContext(ctx, &items, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении объявлений автора: %w", err)
	}

	return items, nil
}

func (r *AnnouncementRepositoryImpl) Update(ctx context.Context, a *models.Announcement) error {
	a.UpdatedAt = time.Now()

	query := `
		UPDATE announcements SET
			title = :title,
			description = :description,
			content = :content,
			type = :type,
			image_url = :image_url,
			publish_date = :publish_date,
			expiry_date = :expiry_date,
			is_published = :is_published,
			priority = :priority,
			target_audience = :target_audience,
			time = :time,
			location = :location,
			organizer = :organizer,
			contact = :contact,
			attendees = :attendees,
			agenda = :agenda,
			awardees = :awardees,
			attachments = :attachments,
			updated_at = :updated_at
		WHERE announcement_id = :announcement_id
	`

	result, err := r.db.NamedExecContext(ctx, query, a)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении объявления: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return errors.New("объявление не найдено")
	}

	return nil
}

func (r *AnnouncementRepositoryImpl) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM announcements WHERE announcement_id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("ошибка при удалении объявления: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return errors.New("объявление не найдено")
	}

	return nil
}

// TogglePublish переключает is_published. Дата публикации ставится только
// при первом переходе в published; повторные переключения её не трогают.
func (r *AnnouncementRepositoryImpl) TogglePublish(ctx context.Context, id string) (*models.Announcement, error) {
	query := `
		UPDATE announcements SET
			is_published = NOT is_published,
			publish_date = CASE
				WHEN NOT is_published AND publish_date IS NULL THEN NOW()
				ELSE publish_date
			END,
			updated_at = NOW()
		WHERE announcement_id = $1
		RETURNING *
	`

	var a models.Announcement
	err := r.db.GetContext(ctx, &a, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("объявление с ID %s не найдено", id)
		}
		return nil, fmt.Errorf("ошибка при переключении публикации: %w", err)
	}

	return &a, nil
}

func (r *AnnouncementRepositoryImpl) IncrementViews(ctx context.Context, id string) error {
	query := `UPDATE announcements SET views = views + 1 WHERE announcement_id = $1`

	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении счетчика просмотров: %w", err)
	}

	return nil
}
