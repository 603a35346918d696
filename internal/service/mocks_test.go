package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"studorgCPT/internal/models"
	"studorgCPT/internal/repository"
	"studorgCPT/internal/storage"
)

var uploadFixture = storage.UploadFile{Name: "img.jpg", Data: []byte{0xff, 0xd8, 0xff}}

type mockAnnouncementRepo struct {
	mock.Mock
}

func (m *mockAnnouncementRepo) Create(ctx context.Context, a *models.Announcement) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *mockAnnouncementRepo) GetByID(ctx context.Context, id string) (*models.Announcement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Announcement), args.Error(1)
}

func (m *mockAnnouncementRepo) List(ctx context.Context, filter repository.ContentFilter) ([]models.Announcement, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.Announcement), args.Int(1), args.Error(2)
}

func (m *mockAnnouncementRepo) ListByAuthor(ctx context.Context, authorID, status string) ([]models.Announcement, error) {
	args := m.Called(ctx, authorID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Announcement), args.Error(1)
}

func (m *mockAnnouncementRepo) Update(ctx context.Context, a *models.Announcement) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *mockAnnouncementRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockAnnouncementRepo) TogglePublish(ctx context.Context, id string) (*models.Announcement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Announcement), args.Error(1)
}

func (m *mockAnnouncementRepo) IncrementViews(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockEventRepo struct {
	mock.Mock
}

func (m *mockEventRepo) Create(ctx context.Context, e *models.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *mockEventRepo) GetByID(ctx context.Context, id string) (*models.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *mockEventRepo) List(ctx context.Context, filter repository.ContentFilter) ([]models.Event, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.Event), args.Int(1), args.Error(2)
}

func (m *mockEventRepo) ListByAuthor(ctx context.Context, authorID, status string) ([]models.Event, error) {
	args := m.Called(ctx, authorID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Event), args.Error(1)
}

func (m *mockEventRepo) Update(ctx context.Context, e *models.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *mockEventRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockEventRepo) TogglePublish(ctx context.Context, id string) (*models.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *mockEventRepo) IncrementViews(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// mockUserRepo покрывает только методы, нужные сервисам контента.
// Остальные методы интерфейса приходят из встраивания и не вызываются.
type mockUserRepo struct {
	repository.UserRepository
	mock.Mock
}

func (m *mockUserRepo) GetSummary(ctx context.Context, userID string) (*models.UserSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserSummary), args.Error(1)
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) CreateUser(ctx context.Context, user *models.User, password string) error {
	args := m.Called(ctx, user, password)
	return args.Error(0)
}

func (m *mockUserRepo) UpdateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) VerifyPassword(ctx context.Context, studentNumber, password string) (*models.User, error) {
	args := m.Called(ctx, studentNumber, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, userID, newPassword string, firstLogin bool) error {
	args := m.Called(ctx, userID, newPassword, firstLogin)
	return args.Error(0)
}

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) UploadImage(ctx context.Context, folder string, file storage.UploadFile) (string, error) {
	args := m.Called(ctx, folder, file)
	return args.String(0), args.Error(1)
}

func (m *mockStorage) UploadMultiple(ctx context.Context, folder string, files []storage.UploadFile) ([]string, error) {
	args := m.Called(ctx, folder, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockStorage) DeleteByURL(ctx context.Context, url string) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}
