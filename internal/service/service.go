package service

import (
	"context"
	"log"

	"studorgCPT/internal/config"
	"studorgCPT/internal/models"
	"studorgCPT/internal/repository"
	"studorgCPT/internal/storage"
)

type Service struct {
	Auth         AuthService
	User         UserService
	Announcement AnnouncementService
	Event        EventService
	Merchandise  MerchandiseService
	Testimonial  TestimonialService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage) *Service {
	return &Service{
		Auth:         NewAuthService(rep.User, cfg),
		User:         NewUserService(rep.User, storage),
		Announcement: NewAnnouncementService(rep.Announcement, rep.User, storage),
		Event:        NewEventService(rep.Event, rep.User, storage),
		Merchandise:  NewMerchandiseService(rep.Merchandise, storage),
		Testimonial:  NewTestimonialService(rep.Testimonial, storage),
	}
}

// populateAuthor подтягивает карточку автора. Ошибка не фатальна:
// контент отдается и без карточки.
func populateAuthor(ctx context.Context, userRepo repository.UserRepository, authorID string) *models.UserSummary {
	summary, err := userRepo.GetSummary(ctx, authorID)
	if err != nil {
		log.Printf("Предупреждение: не удалось получить автора %s: %v", authorID, err)
		return nil
	}
	return summary
}

// deleteStored - best-effort удаление объекта из хранилища.
// Ошибка логируется и не прерывает основную операцию.
func deleteStored(ctx context.Context, store storage.Storage, imageURL string) {
	if imageURL == "" {
		return
	}
	if err := store.DeleteByURL(ctx, imageURL); err != nil {
		log.Printf("Предупреждение: не удалось удалить изображение %s: %v", imageURL, err)
	}
}
