package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"studorgCPT/internal/models"
)

// ContentFilter - whitelisted параметры списочных запросов контента
type ContentFilter struct {
	Type        string
	Tag         string
	IsPublished *bool
	Audience    string
	Priority    string
	From        *time.Time
	To          *time.Time
	Sort        string
	Page        int
	Limit       int
}

type UserFilter struct {
	Role     string
	IsMember *bool
	IsActive *bool
	Page     int
	Limit    int
}

type UserStats struct {
	Total             int `json:"total" db:"total"`
	Active            int `json:"active" db:"active"`
	Members           int `json:"members" db:"members"`
	Students          int `json:"students" db:"students"`
	CouncilOfficers   int `json:"councilOfficers" db:"council_officers"`
	CommitteeOfficers int `json:"committeeOfficers" db:"committee_officers"`
	Faculty           int `json:"faculty" db:"faculty"`
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByStudentNumber(ctx context.Context, studentNumber string) (*models.User, error)
	GetSummary(ctx context.Context, userID string) (*models.UserSummary, error)
	VerifyPassword(ctx context.Context, studentNumber, password string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, userID, newPassword string, firstLogin bool) error
	ToggleActive(ctx context.Context, userID string) (*models.User, error)
	DeleteUser(ctx context.Context, userID string) error
	Search(ctx context.Context, query string) ([]models.User, error)
	Stats(ctx context.Context) (*UserStats, error)
	List(ctx context.Context, filter UserFilter) ([]models.User, int, error)
}

type AnnouncementRepository interface {
	Create(ctx context.Context, a *models.Announcement) error
	GetByID(ctx context.Context, id string) (*models.Announcement, error)
	List(ctx context.Context, filter ContentFilter) ([]models.Announcement, int, error)
	ListByAuthor(ctx context.Context, authorID, status string) ([]models.Announcement, error)
	Update(ctx context.Context, a *models.Announcement) error
	Delete(ctx context.Context, id string) error
	TogglePublish(ctx context.Context, id string) (*models.Announcement, error)
	IncrementViews(ctx context.Context, id string) error
}

type EventRepository interface {
	Create(ctx context.Context, e *models.Event) error
	GetByID(ctx context.Context, id string) (*models.Event, error)
	List(ctx context.Context, filter ContentFilter) ([]models.Event, int, error)
	ListByAuthor(ctx context.Context, authorID, status string) ([]models.Event, error)
	Update(ctx context.Context, e *models.Event) error
	Delete(ctx context.Context, id string) error
	TogglePublish(ctx context.Context, id string) (*models.Event, error)
	IncrementViews(ctx context.Context, id string) error
}

type MerchandiseRepository interface {
	Create(ctx context.Context, m *models.Merchandise) error
	GetByID(ctx context.Context, id string) (*models.Merchandise, error)
	List(ctx context.Context, page, limit int) ([]models.Merchandise, int, error)
	Update(ctx context.Context, m *models.Merchandise) error
	Delete(ctx context.Context, id string) error
}

type TestimonialRepository interface {
	Create(ctx context.Context, t *models.Testimonial) error
	GetByID(ctx context.Context, id string) (*models.Testimonial, error)
	List(ctx context.Context, activeOnly bool, page, limit int) ([]models.Testimonial, int, error)
	Update(ctx context.Context, t *models.Testimonial) error
	Delete(ctx context.Context, id string) error
	ToggleActive(ctx context.Context, id string) (*models.Testimonial, error)
}

type Repository struct {
	User         UserRepository
	Announcement AnnouncementRepository
	Event        EventRepository
	Merchandise  MerchandiseRepository
	Testimonial  TestimonialRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:         NewUserRepository(db),
		Announcement: NewAnnouncementRepository(db),
		Event:        NewEventRepository(db),
		Merchandise:  NewMerchandiseRepository(db),
		Testimonial:  NewTestimonialRepository(db),
	}
}
