package service

import (
	"context"
	"time"

	"studorgCPT/internal/forms"
	"studorgCPT/internal/models"
	"studorgCPT/internal/repository"
	"studorgCPT/internal/storage"
)

type CreateAnnouncementRequest struct {
	Title          string `validate:"required"`
	Description    string `validate:"required"`
	Content        string `validate:"required"`
	Type           string
	AuthorID       string
	IsPublished    bool
	Priority       string
	ExpiryDate     *time.Time
	TargetAudience []string
	Time           string
	Location       string
	Organizer      string
	Contact        string
	Attendees      []string
	Agenda         []string
	Awardees       models.Awardees
	Attachments    models.Attachments
	Image          *storage.UploadFile
}

// UpdateAnnouncementRequest - частичное обновление: nil-поле означает
// "не менять"
type UpdateAnnouncementRequest struct {
	ID             string
	Title          *string
	Description    *string
	Content        *string
	Type           *string
	IsPublished    *bool
	Priority       *string
	ExpiryDate     *time.Time
	TargetAudience []string
	Time           *string
	Location       *string
	Organizer      *string
	Contact        *string
	Attendees      []string
	Agenda         []string
	Awardees       models.Awardees
	Attachments    models.Attachments
	Image          *storage.UploadFile
}

type AnnouncementService interface {
	Create(ctx context.Context, req CreateAnnouncementRequest) (*models.Announcement, error)
	Get(ctx context.Context, id string) (*models.Announcement, error)
	List(ctx context.Context, filter repository.ContentFilter) ([]models.Announcement, int, error)
	ListByAuthor(ctx context.Context, authorID, status string) ([]models.Announcement, error)
	Update(ctx context.Context, req UpdateAnnouncementRequest) (*models.Announcement, error)
	Delete(ctx context.Context, id string) error
	TogglePublish(ctx context.Context, id string) (*models.Announcement, error)
}

type announcementService struct {
	repo     repository.AnnouncementRepository
	userRepo repository.UserRepository
	storage  storage.Storage
}

func NewAnnouncementService(repo repository.AnnouncementRepository, userRepo repository.UserRepository, storage storage.Storage) AnnouncementService {
	return &announcementService{
		repo:     repo,
		userRepo: userRepo,
		storage:  storage,
	}
}

func (s *announcementService) Create(ctx context.Context, req CreateAnnouncementRequest) (*models.Announcement, error) {
	if err := forms.ValidateStruct(req); err != nil {
		return nil, err
	}

	if req.Type == "" {
		req.Type = models.AnnouncementGeneral
	}
	if req.Priority == "" {
		req.Priority = "normal"
	}

	a := &models.Announcement{
		Title:          req.Title,
		Description:    req.Description,
		Content:        req.Content,
		Type:           req.Type,
		AuthorID:       req.AuthorID,
		IsPublished:    req.IsPublished,
		Priority:       req.Priority,
		ExpiryDate:     req.ExpiryDate,
		TargetAudience: req.TargetAudience,
		Time:           req.Time,
		Location:       req.Location,
		Organizer:      req.Organizer,
		Contact:        req.Contact,
		Attendees:      req.Attendees,
		Agenda:         req.Agenda,
		Awardees:       req.Awardees,
		Attachments:    req.Attachments,
	}

	// изображение грузится до записи в БД: без URL запись не имеет смысла
	if req.Image != nil {
		imageURL, err := s.storage.UploadImage(ctx, "announcements", *req.Image)
		if err != nil {
			return nil, err
		}
		a.ImageURL = &imageURL
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	a.Author = populateAuthor(ctx, s.userRepo, a.AuthorID)

	return a, nil
}

func (s *announcementService) Get(ctx context.Context, id string) (*models.Announcement, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// счетчик просмотров - побочный эффект чтения
	if err := s.repo.IncrementViews(ctx, id); err == nil {
		a.Views++
	}

	a.Author = populateAuthor(ctx, s.userRepo, a.AuthorID)

	return a, nil
}

func (s *announcementService) List(ctx context.Context, filter repository.ContentFilter) ([]models.Announcement, int, error) {
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	authors := map[string]*models.UserSummary{}
	for i := range items {
		summary, ok := authors[items[i].AuthorID]
		if !ok {
			summary = populateAuthor(ctx, s.userRepo, items[i].AuthorID)
			authors[items[i].AuthorID] = summary
		}
		items[i].Author = summary
	}

	return items, total, nil
}

func (s *announcementService) ListByAuthor(ctx context.Context, authorID, status string) ([]models.Announcement, error) {
	return s.repo.ListByAuthor(ctx, authorID, status)
}

func (s *announcementService) Update(ctx context.Context, req UpdateAnnouncementRequest) (*models.Announcement, error) {
	a, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		a.Title = *req.Title
	}
	if req.Description != nil {
		a.Description = *req.Description
	}
	if req.Content != nil {
		a.Content = *req.Content
	}
	if req.Type != nil {
		a.Type = *req.Type
	}
	if req.IsPublished != nil {
		if *req.IsPublished && !a.IsPublished && a.PublishDate == nil {
			now := time.Now()
			a.PublishDate = &now
		}
		a.IsPublished = *req.IsPublished
	}
	if req.Priority != nil {
		a.Priority = *req.Priority
	}
	if req.ExpiryDate != nil {
		a.ExpiryDate = req.ExpiryDate
	}
	if req.TargetAudience != nil {
		a.TargetAudience = req.TargetAudience
	}
	if req.Time != nil {
		a.Time = *req.Time
	}
	if req.Location != nil {
		a.Location = *req.Location
	}
	if req.Organizer != nil {
		a.Organizer = *req.Organizer
	}
	if req.Contact != nil {
		a.Contact = *req.Contact
	}
	if req.Attendees != nil {
		a.Attendees = req.Attendees
	}
	if req.Agenda != nil {
		a.Agenda = req.Agenda
	}
	if req.Awardees != nil {
		a.Awardees = req.Awardees
	}
	if req.Attachments != nil {
		a.Attachments = req.Attachments
	}

	// новое изображение вытесняет старое; удаление старого - best-effort
	if req.Image != nil {
		if a.ImageURL != nil {
			deleteStored(ctx, s.storage, *a.ImageURL)
		}
		imageURL, err := s.storage.UploadImage(ctx, "announcements", *req.Image)
		if err != nil {
			return nil, err
		}
		a.ImageURL = &imageURL
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}

	a.Author = populateAuthor(ctx, s.userRepo, a.AuthorID)

	return a, nil
}

func (s *announcementService) Delete(ctx context.Context, id string) error {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if a.ImageURL != nil {
		deleteStored(ctx, s.storage, *a.ImageURL)
	}
	for _, att := range a.Attachments {
		deleteStored(ctx, s.storage, att.URL)
	}

	return s.repo.Delete(ctx, id)
}

func (s *announcementService) TogglePublish(ctx context.Context, id string) (*models.Announcement, error) {
	a, err := s.repo.TogglePublish(ctx, id)
	if err != nil {
		return nil, err
	}

	a.Author = populateAuthor(ctx, s.userRepo, a.AuthorID)

	return a, nil
}
