package service

import (
	"context"
	"time"

	"studorgCPT/internal/forms"
	"studorgCPT/internal/models"
	"studorgCPT/internal/repository"
	"studorgCPT/internal/storage"
)

type CreateEventRequest struct {
	Title          string    `validate:"required"`
	Description    string    `validate:"required"`
	Content        string    `validate:"required"`
	EventDate      time.Time `validate:"required"`
	Tags           []string
	Time           string
	Mode           string
	Location       string
	Organizer      string
	Contact        string
	RsvpLink       string
	Admissions     models.Admissions
	RegStart       *time.Time
	RegEnd         *time.Time
	AuthorID       string
	IsPublished    bool
	Priority       string
	TargetAudience []string
	Images         []storage.UploadFile
}

type UpdateEventRequest struct {
	ID             string
	Title          *string
	Description    *string
	Content        *string
	EventDate      *time.Time
	Tags           []string
	Time           *string
	Mode           *string
	Location       *string
	Organizer      *string
	Contact        *string
	RsvpLink       *string
	Admissions     models.Admissions
	RegStart       *time.Time
	RegEnd         *time.Time
	IsPublished    *bool
	Priority       *string
	TargetAudience []string
	Images         []storage.UploadFile
	ReplaceGallery bool
}

type EventService interface {
	Create(ctx context.Context, req CreateEventRequest) (*models.Event, error)
	Get(ctx context.Context, id string) (*models.Event, error)
	List(ctx context.Context, filter repository.ContentFilter) ([]models.Event, int, error)
	ListByAuthor(ctx context.Context, authorID, status string) ([]models.Event, error)
	Update(ctx context.Context, req UpdateEventRequest) (*models.Event, error)
	Delete(ctx context.Context, id string) error
	TogglePublish(ctx context.Context, id string) (*models.Event, error)
}

type eventService struct {
	repo     repository.EventRepository
	userRepo repository.UserRepository
	storage  storage.Storage
}

func NewEventService(repo repository.EventRepository, userRepo repository.UserRepository, storage storage.Storage) EventService {
	return &eventService{
		repo:     repo,
		userRepo: userRepo,
		storage:  storage,
	}
}

func (s *eventService) Create(ctx context.Context, req CreateEventRequest) (*models.Event, error) {
	if err := forms.ValidateStruct(req); err != nil {
		return nil, err
	}

	if req.Mode == "" {
		req.Mode = "Onsite"
	}
	if req.Priority == "" {
		req.Priority = "normal"
	}

	e := &models.Event{
		Title:          req.Title,
		Description:    req.Description,
		Content:        req.Content,
		Tags:           req.Tags,
		EventDate:      req.EventDate,
		Time:           req.Time,
		Mode:           req.Mode,
		Location:       req.Location,
		Organizer:      req.Organizer,
		Contact:        req.Contact,
		RsvpLink:       req.RsvpLink,
		Admissions:     req.Admissions,
		RegStart:       req.RegStart,
		RegEnd:         req.RegEnd,
		AuthorID:       req.AuthorID,
		IsPublished:    req.IsPublished,
		Priority:       req.Priority,
		TargetAudience: req.TargetAudience,
		GalleryImages:  []string{},
	}

	if len(req.Images) > 0 {
		urls, err := s.storage.UploadMultiple(ctx, "events", req.Images)
		if err != nil {
			return nil, err
		}
		e.GalleryImages = urls
	}

	// без явной обложки обложкой становится первый кадр галереи
	if e.CoverImage == nil && len(e.GalleryImages) > 0 {
		e.CoverImage = &e.GalleryImages[0]
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}

	e.Author = populateAuthor(ctx, s.userRepo, e.AuthorID)

	return e, nil
}

func (s *eventService) Get(ctx context.Context, id string) (*models.Event, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.IncrementViews(ctx, id); err == nil {
		e.Views++
	}

	e.Author = populateAuthor(ctx, s.userRepo, e.AuthorID)

	return e, nil
}

func (s *eventService) List(ctx context.Context, filter repository.ContentFilter) ([]models.Event, int, error) {
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

func (s *eventService) ListByAuthor(ctx context.Context, authorID, status string) ([]models.Event, error) {
	return s.repo.ListByAuthor(ctx, authorID, status)
}

func (s *eventService) Update(ctx context.Context, req UpdateEventRequest) (*models.Event, error) {
	e, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		e.Title = *req.Title
	}
	if req.Description != nil {
		e.Description = *req.Description
	}
	if req.Content != nil {
		e.Content = *req.Content
	}
	if req.EventDate != nil {
		e.EventDate = *req.EventDate
	}
	if req.Tags != nil {
		e.Tags = req.Tags
	}
	if req.Time != nil {
		e.Time = *req.Time
	}
	if req.Mode != nil {
		e.Mode = *req.Mode
	}
	if req.Location != nil {
		e.Location = *req.Location
	}
	if req.Organizer != nil {
		e.Organizer = *req.Organizer
	}
	if req.Contact != nil {
		e.Contact = *req.Contact
	}
	if req.RsvpLink != nil {
		e.RsvpLink = *req.RsvpLink
	}
	if req.Admissions != nil {
		e.Admissions = req.Admissions
	}
	if req.RegStart != nil {
		e.RegStart = req.RegStart
	}
	if req.RegEnd != nil {
		e.RegEnd = req.RegEnd
	}
	if req.IsPublished != nil {
		if *req.IsPublished && !e.IsPublished && e.PublishDate == nil {
			now := time.Now()
			e.PublishDate = &now
		}
		e.IsPublished = *req.IsPublished
	}
	if req.Priority != nil {
		e.Priority = *req.Priority
	}
	if req.TargetAudience != nil {
		e.TargetAudience = req.TargetAudience
	}

	// галерея дополняется, а не перезаписывается; замена только по
	// явному запросу
	if len(req.Images) > 0 {
		urls, err := s.storage.UploadMultiple(ctx, "events", req.Images)
		if err != nil {
			return nil, err
		}

		if req.ReplaceGallery {
			coverReplaced := false
			for _, old := range e.GalleryImages {
				if e.CoverImage != nil && old == *e.CoverImage {
					coverReplaced = true
				}
				deleteStored(ctx, s.storage, old)
			}
			e.GalleryImages = urls
			// обложка из старой галереи удалена вместе с ней
			if coverReplaced {
				e.CoverImage = nil
			}
		} else {
			e.GalleryImages = append(e.GalleryImages, urls...)
		}
	}

	if e.CoverImage == nil && len(e.GalleryImages) > 0 {
		e.CoverImage = &e.GalleryImages[0]
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}

	e.Author = populateAuthor(ctx, s.userRepo, e.AuthorID)

	return e, nil
}

func (s *eventService) Delete(ctx context.Context, id string) error {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if e.CoverImage != nil {
		deleteStored(ctx, s.storage, *e.CoverImage)
	}
	for _, imageURL := range e.GalleryImages {
		if e.CoverImage != nil && imageURL == *e.CoverImage {
			continue
		}
		deleteStored(ctx, s.storage, imageURL)
	}

	return s.repo.Delete(ctx, id)
}

func (s *eventService) TogglePublish(ctx context.Context, id string) (*models.Event, error) {
	e, err := s.repo.TogglePublish(ctx, id)
	if err != nil {
		return nil, err
	}

	e.Author = populateAuthor(ctx, s.userRepo, e.AuthorID)

	return e, nil
}
