package service

import (
	"context"

	"studorgCPT/internal/forms"
	"studorgCPT/internal/models"
	"studorgCPT/internal/repository"
	"studorgCPT/internal/storage"
)

// Мерч и отзывы - простые сущности без публикационного workflow,
// но с той же схемой работы с изображениями.

type CreateMerchandiseRequest struct {
	Name        string `validate:"required"`
	Description string
	PriceTiers  models.PriceTiers
	OrderLink   string
	IsAvailable bool
	Image       *storage.UploadFile
}

type UpdateMerchandiseRequest struct {
	ID          string
	Name        *string
	Description *string
	PriceTiers  models.PriceTiers
	OrderLink   *string
	IsAvailable *bool
	Image       *storage.UploadFile
}

type MerchandiseService interface {
	Create(ctx context.Context, req CreateMerchandiseRequest) (*models.Merchandise, error)
	Get(ctx context.Context, id string) (*models.Merchandise, error)
	List(ctx context.Context, page, limit int) ([]models.Merchandise, int, error)
	Update(ctx context.Context, req UpdateMerchandiseRequest) (*models.Merchandise, error)
	Delete(ctx context.Context, id string) error
}

type merchandiseService struct {
	repo    repository.MerchandiseRepository
	storage storage.Storage
}

func NewMerchandiseService(repo repository.MerchandiseRepository, storage storage.Storage) MerchandiseService {
	return &merchandiseService{repo: repo, storage: storage}
}

func (s *merchandiseService) Create(ctx context.Context, req CreateMerchandiseRequest) (*models.Merchandise, error) {
	if err := forms.ValidateStruct(req); err != nil {
		return nil, err
	}

	m := &models.Merchandise{
		Name:        req.Name,
		Description: req.Description,
		PriceTiers:  req.PriceTiers,
		OrderLink:   req.OrderLink,
		IsAvailable: req.IsAvailable,
	}

	if req.Image != nil {
		imageURL, err := s.storage.UploadImage(ctx, "merchandise", *req.Image)
		if err != nil {
			return nil, err
		}
		m.ImageURL = &imageURL
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}

func (s *merchandiseService) Get(ctx context.Context, id string) (*models.Merchandise, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *merchandiseService) List(ctx context.Context, page, limit int) ([]models.Merchandise, int, error) {
	return s.repo.List(ctx, page, limit)
}

func (s *merchandiseService) Update(ctx context.Context, req UpdateMerchandiseRequest) (*models.Merchandise, error) {
	m, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		m.Name = *req.Name
	}
	if req.Description != nil {
		m.Description = *req.Description
	}
	if req.PriceTiers != nil {
		m.PriceTiers = req.PriceTiers
	}
	if req.OrderLink != nil {
		m.OrderLink = *req.OrderLink
	}
	if req.IsAvailable != nil {
		m.IsAvailable = *req.IsAvailable
	}

	if req.Image != nil {
		if m.ImageURL != nil {
			deleteStored(ctx, s.storage, *m.ImageURL)
		}
		imageURL, err := s.storage.UploadImage(ctx, "merchandise", *req.Image)
		if err != nil {
			return nil, err
		}
		m.ImageURL = &imageURL
	}

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}

func (s *merchandiseService) Delete(ctx context.Context, id string) error {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if m.ImageURL != nil {
		deleteStored(ctx, s.storage, *m.ImageURL)
	}

	return s.repo.Delete(ctx, id)
}

type CreateTestimonialRequest struct {
	Name     string `validate:"required"`
	Role     string
	Quote    string `validate:"required"`
	IsActive bool
	Image    *storage.UploadFile
}

type UpdateTestimonialRequest struct {
	ID       string
	Name     *string
	Role     *string
	Quote    *string
	IsActive *bool
	Image    *storage.UploadFile
}

type TestimonialService interface {
	Create(ctx context.Context, req CreateTestimonialRequest) (*models.Testimonial, error)
	Get(ctx context.Context, id string) (*models.Testimonial, error)
	List(ctx context.Context, activeOnly bool, page, limit int) ([]models.Testimonial, int, error)
	Update(ctx context.Context, req UpdateTestimonialRequest) (*models.Testimonial, error)
	Delete(ctx context.Context, id string) error
	ToggleActive(ctx context.Context, id string) (*models.Testimonial, error)
}

type testimonialService struct {
	repo    repository.TestimonialRepository
	storage storage.Storage
}

func NewTestimonialService(repo repository.TestimonialRepository, storage storage.Storage) TestimonialService {
	return &testimonialService{repo: repo, storage: storage}
}

func (s *testimonialService) Create(ctx context.Context, req CreateTestimonialRequest) (*models.Testimonial, error) {
	if err := forms.ValidateStruct(req); err != nil {
		return nil, err
	}

	t := &models.Testimonial{
		Name:     req.Name,
		Role:     req.Role,
		Quote:    req.Quote,
		IsActive: req.IsActive,
	}

	if req.Image != nil {
		imageURL, err := s.storage.UploadImage(ctx, "testimonials", *req.Image)
		if err != nil {
			return nil, err
		}
		t.ImageURL = &imageURL
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

func (s *testimonialService) Get(ctx context.Context, id string) (*models.Testimonial, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *testimonialService) List(ctx context.Context, activeOnly bool, page, limit int) ([]models.Testimonial, int, error) {
	return s.repo.List(ctx, activeOnly, page, limit)
}

func (s *testimonialService) Update(ctx context.Context, req UpdateTestimonialRequest) (*models.Testimonial, error) {
	t, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Role != nil {
		t.Role = *req.Role
	}
	if req.Quote != nil {
		t.Quote = *req.Quote
	}
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}

	if req.Image != nil {
		if t.ImageURL != nil {
			deleteStored(ctx, s.storage, *t.ImageURL)
		}
		imageURL, err := s.storage.UploadImage(ctx, "testimonials", *req.Image)
		if err != nil {
			return nil, err
		}
		t.ImageURL = &imageURL
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

func (s *testimonialService) Delete(ctx context.Context, id string) error {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if t.ImageURL != nil {
		deleteStored(ctx, s.storage, *t.ImageURL)
	}

	return s.repo.Delete(ctx, id)
}

func (s *testimonialService) ToggleActive(ctx context.Context, id string) (*models.Testimonial, error) {
	return s.repo.ToggleActive(ctx, id)
}
