package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"studorgCPT/internal/models"
	"studorgCPT/internal/storage"
)

func newEventService() (*mockEventRepo, *mockUserRepo, *mockStorage, EventService) {
	repo := new(mockEventRepo)
	userRepo := new(mockUserRepo)
	store := new(mockStorage)
	return repo, userRepo, store, NewEventService(repo, userRepo, store)
}

func TestEventService_Create(t *testing.T) {
	ctx := context.Background()
	eventDate := time.Now().AddDate(0, 1, 0)

	t.Run("Без изображений", func(t *testing.T) {
		repo, userRepo, store, svc := newEventService()

		repo.On("Create", mock.Anything, mock.Anything).Return(nil)
		userRepo.On("GetSummary", mock.Anything, "author").
			Return(&models.UserSummary{UserID: "author"}, nil)

		e, err := svc.Create(ctx, CreateEventRequest{
			Title:       "Хакатон",
			Description: "Описание",
			Content:     "Текст",
			EventDate:   eventDate,
			AuthorID:    "author",
		})

		assert.NoError(t, err)
		assert.Nil(t, e.CoverImage)
		assert.Empty(t, e.GalleryImages)
		assert.False(t, e.IsPublished)
		assert.Equal(t, "Onsite", e.Mode)
		store.AssertNotCalled(t, "UploadMultiple")
	})

	t.Run("Обложкой становится первый кадр галереи", func(t *testing.T) {
		repo, userRepo, store, svc := newEventService()
		urls := []string{
			"http://localhost:9000/uploads/events/2026/08/a.jpg",
			"http://localhost:9000/uploads/events/2026/08/b.jpg",
		}

		store.On("UploadMultiple", mock.Anything, "events", mock.Anything).
			Return(urls, nil)
		repo.On("Create", mock.Anything, mock.Anything).Return(nil)
		userRepo.On("GetSummary", mock.Anything, "author").
			Return(&models.UserSummary{UserID: "author"}, nil)

		e, err := svc.Create(ctx, CreateEventRequest{
			Title:       "Хакатон",
			Description: "Описание",
			Content:     "Текст",
			EventDate:   eventDate,
			AuthorID:    "author",
			Images:      []storage.UploadFile{uploadFixture, uploadFixture},
		})

		assert.NoError(t, err)
		assert.Equal(t, urls[0], *e.CoverImage)
		assert.Len(t, e.GalleryImages, 2)
		repo.AssertExpectations(t)
	})

	t.Run("Отказ хранилища останавливает создание", func(t *testing.T) {
		repo, _, store, svc := newEventService()

		store.On("UploadMultiple", mock.Anything, "events", mock.Anything).
			Return(nil, errors.New("не удалось загрузить ни одного файла"))

		_, err := svc.Create(ctx, CreateEventRequest{
			Title:       "Хакатон",
			Description: "Описание",
			Content:     "Текст",
			EventDate:   eventDate,
			Images:      []storage.UploadFile{uploadFixture},
		})

		assert.Error(t, err)
		repo.AssertNotCalled(t, "Create")
	})
}

func TestEventService_UpdateGallery(t *testing.T) {
	ctx := context.Background()

	t.Run("Новые кадры дополняют галерею", func(t *testing.T) {
		repo, userRepo, store, svc := newEventService()
		id := uuid.New().String()
		old := "http://localhost:9000/uploads/events/2026/07/old.jpg"

		repo.On("GetByID", mock.Anything, id).
			Return(&models.Event{
				EventID:       id,
				AuthorID:      "author",
				CoverImage:    &old,
				GalleryImages: []string{old},
			}, nil)
		store.On("UploadMultiple", mock.Anything, "events", mock.Anything).
			Return([]string{"http://localhost:9000/uploads/events/2026/08/new.jpg"}, nil)
		repo.On("Update", mock.Anything, mock.MatchedBy(func(e *models.Event) bool {
			return len(e.GalleryImages) == 2
		})).Return(nil)
		userRepo.On("GetSummary", mock.Anything, "author").
			Return(&models.UserSummary{UserID: "author"}, nil)

		e, err := svc.Update(ctx, UpdateEventRequest{
			ID:     id,
			Images: []storage.UploadFile{uploadFixture},
		})

		assert.NoError(t, err)
		assert.Len(t, e.GalleryImages, 2)
		store.AssertNotCalled(t, "DeleteByURL")
	})

	t.Run("Явная замена галереи удаляет старые кадры", func(t *testing.T) {
		repo, userRepo, store, svc := newEventService()
		id := uuid.New().String()
		old := "http://localhost:9000/uploads/events/2026/07/old.jpg"
		newURL := "http://localhost:9000/uploads/events/2026/08/new.jpg"

		repo.On("GetByID", mock.Anything, id).
			Return(&models.Event{
				EventID:       id,
				AuthorID:      "author",
				CoverImage:    &old,
				GalleryImages: []string{old},
			}, nil)
		store.On("UploadMultiple", mock.Anything, "events", mock.Anything).
			Return([]string{newURL}, nil)
		store.On("DeleteByURL", mock.Anything, old).Return(nil)
		repo.On("Update", mock.Anything, mock.Anything).Return(nil)
		userRepo.On("GetSummary", mock.Anything, "author").
			Return(&models.UserSummary{UserID: "author"}, nil)

		e, err := svc.Update(ctx, UpdateEventRequest{
			ID:             id,
			Images:         []storage.UploadFile{uploadFixture},
			ReplaceGallery: true,
		})

		assert.NoError(t, err)
		assert.Equal(t, pq.StringArray{newURL}, e.GalleryImages)
		// обложка указывала на удаленный кадр и переезжает на новую галерею
		assert.Equal(t, newURL, *e.CoverImage)
		store.AssertExpectations(t)
	})

	t.Run("Замена галереи не трогает отдельную обложку", func(t *testing.T) {
		repo, userRepo, store, svc := newEventService()
		id := uuid.New().String()
		cover := "http://localhost:9000/uploads/events/2026/07/cover.jpg"
		old := "http://localhost:9000/uploads/events/2026/07/old.jpg"

		repo.On("GetByID", mock.Anything, id).
			Return(&models.Event{
				EventID:       id,
				AuthorID:      "author",
				CoverImage:    &cover,
				GalleryImages: []string{old},
			}, nil)
		store.On("UploadMultiple", mock.Anything, "events", mock.Anything).
			Return([]string{"http://localhost:9000/uploads/events/2026/08/new.jpg"}, nil)
		store.On("DeleteByURL", mock.Anything, old).Return(nil)
		repo.On("Update", mock.Anything, mock.Anything).Return(nil)
		userRepo.On("GetSummary", mock.Anything, "author").
			Return(&models.UserSummary{UserID: "author"}, nil)

		e, err := svc.Update(ctx, UpdateEventRequest{
			ID:             id,
			Images:         []storage.UploadFile{uploadFixture},
			ReplaceGallery: true,
		})

		assert.NoError(t, err)
		assert.Equal(t, cover, *e.CoverImage)
		store.AssertNotCalled(t, "DeleteByURL", mock.Anything, cover)
	})
}

func TestEventService_DeleteSkipsCoverDuplicate(t *testing.T) {
	ctx := context.Background()
	repo, _, store, svc := newEventService()
	id := uuid.New().String()
	cover := "http://localhost:9000/uploads/events/2026/08/a.jpg"

	repo.On("GetByID", mock.Anything, id).
		Return(&models.Event{
			EventID:       id,
			CoverImage:    &cover,
			GalleryImages: []string{cover, "http://localhost:9000/uploads/events/2026/08/b.jpg"},
		}, nil)
	store.On("DeleteByURL", mock.Anything, mock.Anything).Return(nil)
	repo.On("Delete", mock.Anything, id).Return(nil)

	err := svc.Delete(ctx, id)

	assert.NoError(t, err)
	// обложка совпадает с первым кадром и не удаляется дважды
	store.AssertNumberOfCalls(t, "DeleteByURL", 2)
	repo.AssertExpectations(t)
}
