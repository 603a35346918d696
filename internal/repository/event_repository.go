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

type EventRepositoryImpl struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) *EventRepositoryImpl {
	return &EventRepositoryImpl{db: db}
}

var eventSortColumns = map[string]string{
	"createdAt":   "created_at",
	"eventDate":   "event_date",
	"publishDate": "publish_date",
	"priority":    "priority",
	"views":       "views",
	"title":       "title",
}

func (r *EventRepositoryImpl) Create(ctx context.Context, e *models.Event) error {
	if e.EventID == "" {
		e.EventID = uuid.New().String()
	}

	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now

	if e.IsPublished && e.PublishDate == nil {
		e.PublishDate = &now
	}

	query := `
		INSERT INTO events
		(event_id, title, description, content, tags, event_date, time, mode,
		 location, organizer, contact, rsvp_link, admissions, reg_start, reg_end,
		 cover_image, gallery_images, author_id, publish_date, views, is_published,
		 priority, target_audience, created_at, updated_at)
		VALUES
		(:event_id, :title, :description, :content, :tags, :event_date, :time, :mode,
		 :location, :organizer, :contact, :rsvp_link, :admissions, :reg_start, :reg_end,
		 :cover_image, :gallery_images, :author_id, :publish_date, :views, :is_published,
		 :priority, :target_audience, :created_at, :updated_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, e)
	if err != nil {
		return fmt.Errorf("ошибка при создании мероприятия: %w", err)
	}

	return nil
}

func (r *EventRepositoryImpl) GetByID(ctx context.Context, id string) (*models.Event, error) {
	query := `SELECT * FROM events WHERE event_id = $1`

	var e models.Event
	err := r.db.GetContext(ctx, &e, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("мероприятие с ID %s не найдено", id)
		}
		return nil, fmt.Errorf("ошибка при получении мероприятия: %w", err)
	}

	return &e, nil
}

func (r *EventRepositoryImpl) List(ctx context.Context, filter ContentFilter) ([]models.Event, int, error) {
	conditions := []string{"TRUE"}
	args := []interface{}{}

	addCondition := func(clause string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}

	if filter.Tag != "" {
		addCondition("$%d = ANY(tags)", filter.Tag)
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
		addCondition("event_date >= $%d", *filter.From)
	}
	if filter.To != nil {
		addCondition("event_date <= $%d", *filter.To)
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	var total int
	countQuery := "SELECT COUNT(*) FROM events " + where
	err := r.db.GetContext(ctx, &total, countQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при подсчете мероприятий: %w", err)
	}

	orderBy := buildOrderBy(filter.Sort, eventSortColumns, "event_date DESC")
	_, limit, offset := normalizePage(filter.Page, filter.Limit)

	query := fmt.Sprintf(
		"SELECT * FROM events %s ORDER BY %s LIMIT %d OFFSET %d",
		where, orderBy, limit, offset)

	var items []models.Event
	err = r.db.SelectContext(ctx, &items, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при получении мероприятий: %w", err)
	}

	return items, total, nil
}

func (r *EventRepositoryImpl) ListByAuthor(ctx context.Context, authorID, status string) ([]models.Event, error) {
	query := `SELECT * FROM events WHERE author_id = $1`
	args := []interface{}{authorID}

	switch status {
	case "published":
		query += " AND is_published = TRUE"
	case "draft":
		query += " AND is_published = FALSE"
	}

	query += " ORDER BY created_at DESC"

	var items []models.Event
	err := r.db.SelectContext(ctx, &items, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении мероприятий автора: %w", err)
	}

	return items, nil
}

func (r *EventRepositoryImpl) Update(ctx context.Context, e *models.Event) error {
	e.UpdatedAt = time.Now()

	query := `
		UPDATE events SET
			title = :title,
			description = :description,
			content = :content,
			tags = :tags,
			event_date = :event_date,
			time = :time,
			mode = :mode,
			location = :location,
			organizer = :organizer,
			contact = :contact,
			rsvp_link = :rsvp_link,
			admissions = :admissions,
			reg_start = :reg_start,
			reg_end = :reg_end,
			cover_image = :cover_image,
			gallery_images = :gallery_images,
			publish_date = :publish_date,
			is_published = :is_published,
			priority = :priority,
			target_audience = :target_audience,
			updated_at = :updated_at
		WHERE event_id = :event_id
	`

	result, err := r.db.NamedExecContext(ctx, query, e)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении мероприятия: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return errors.New("мероприятие не найдено")
	}

	return nil
}

func (r *EventRepositoryImpl) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE event_id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("ошибка при удалении мероприятия: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return errors.New("мероприятие не найдено")
	}

	return nil
}

func (r *EventRepositoryImpl) TogglePublish(ctx context.Context, id string) (*models.Event, error) {
	query := `
		UPDATE events SET
			is_published = NOT is_published,
			publish_date = CASE
				WHEN NOT is_published AND publish_date IS NULL THEN NOW()
				ELSE publish_date
			END,
			updated_at = NOW()
		WHERE event_id = $1
		RETURNING *
	`

	var e models.Event
	err := r.db.GetContext(ctx, &e, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("мероприятие с ID %s не найдено", id)
		}
		return nil, fmt.Errorf("ошибка при переключении публикации: %w", err)
	}

	return &e, nil
}

func (r *EventRepositoryImpl) IncrementViews(ctx context.Context, id string) error {
	query := `UPDATE events SET views = views + 1 WHERE event_id = $1`

	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении счетчика просмотров: %w", err)
	}

	return nil
}
