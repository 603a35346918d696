package test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"studorgCPT/internal/models"
	"studorgCPT/internal/service"
)

func multipartBody(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, value := range fields {
		w.WriteField(key, value)
	}
	w.Close()

	return &buf, w.FormDataContentType()
}

func withAuthContext(req *http.Request, userID, role string) *http.Request {
	ctx := req.Context()
	ctx = context.WithValue(ctx, "userID", userID)
	ctx = context.WithValue(ctx, "role", role)
	return req.WithContext(ctx)
}

func TestGetAnnouncements(t *testing.T) {
	handler, mocks := newTestHandlers()

	publish := time.Now().AddDate(0, 0, -1)
	mocks.Announcement.On("List", mock.Anything, mock.Anything).
		Return([]models.Announcement{
			{
				AnnouncementID: uuid.New().String(),
				Title:          "Собрание совета",
				Description:    "Первое собрание",
				Content:        "Повестка собрания",
				Type:           models.AnnouncementMeeting,
				IsPublished:    true,
				PublishDate:    &publish,
			},
		}, 1, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/announcements?page=1&limit=20", nil)
	rr := httptest.NewRecorder()

	handler.GetAnnouncements(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Contains(t, response, "data")
	assert.Contains(t, response, "pagination")

	pagination := response["pagination"].(map[string]interface{})
	assert.Equal(t, float64(1), pagination["total"])

	mocks.Announcement.AssertExpectations(t)
}

func TestGetAnnouncement(t *testing.T) {
	tests := []struct {
		name           string
		id             string
		mockSetup      func(*testMocks, string)
		expectedStatus int
	}{
		{
			name: "Существующее объявление",
			id:   uuid.New().String(),
			mockSetup: func(m *testMocks, id string) {
				m.Announcement.On("Get", mock.Anything, id).
					Return(&models.Announcement{
						AnnouncementID: id,
						Title:          "Объявление",
					}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Несуществующее объявление",
			id:   uuid.New().String(),
			mockSetup: func(m *testMocks, id string) {
				m.Announcement.On("Get", mock.Anything, id).
					Return(nil, errors.New("объявление с ID "+id+" не найдено"))
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Некорректный ID",
			id:             "not-a-uuid",
			mockSetup:      func(m *testMocks, id string) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, mocks := newTestHandlers()
			tt.mockSetup(mocks, tt.id)

			req := httptest.NewRequest(http.MethodGet, "/api/announcements/"+tt.id, nil)
			req = mux.SetURLVars(req, map[string]string{"id": tt.id})
			rr := httptest.NewRecorder()

			handler.GetAnnouncement(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			mocks.Announcement.AssertExpectations(t)
		})
	}
}

func TestCreateAnnouncement(t *testing.T) {
	tests := []struct {
		name           string
		fields         map[string]string
		mockSetup      func(*testMocks)
		expectedStatus int
		expectedError  string
	}{
		{
			name: "Успешное создание",
			fields: map[string]string{
				"title":       "Новое объявление",
				"description": "Краткое описание",
				"content":     "Полный текст",
				"agenda":      `["Открытие","Доклад"]`,
			},
			mockSetup: func(m *testMocks) {
				m.Announcement.On("Create", mock.Anything, mock.MatchedBy(func(req service.CreateAnnouncementRequest) bool {
					return req.Title == "Новое объявление" &&
						len(req.Agenda) == 2 &&
						req.Agenda[0] == "Открытие"
				})).Return(&models.Announcement{
					AnnouncementID: uuid.New().String(),
					Title:          "Новое объявление",
				}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Отсутствуют обязательные поля",
			fields: map[string]string{
				"description": "Описание без заголовка",
			},
			mockSetup: func(m *testMocks) {
				m.Announcement.On("Create", mock.Anything, mock.Anything).
					Return(nil, errors.New("отсутствуют или некорректны обязательные поля: Title, Content"))
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "обязательные поля",
		},
		{
			name: "Некорректный JSON в agenda",
			fields: map[string]string{
				"title":       "Объявление",
				"description": "Описание",
				"content":     "Текст",
				"agenda":      `не json`,
			},
			mockSetup:      func(m *testMocks) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, mocks := newTestHandlers()
			tt.mockSetup(mocks)

			body, contentType := multipartBody(t, tt.fields)
			req := httptest.NewRequest(http.MethodPost, "/api/announcements", body)
			req.Header.Set("Content-Type", contentType)
			req = withAuthContext(req, uuid.New().String(), models.RoleCouncilOfficer)

			rr := httptest.NewRecorder()
			handler.CreateAnnouncement(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)

			if tt.expectedError != "" {
				var response map[string]interface{}
				json.Unmarshal(rr.Body.Bytes(), &response)
				assert.Contains(t, response["error"], tt.expectedError)
			}

			mocks.Announcement.AssertExpectations(t)
		})
	}
}

func TestUpdateAnnouncement(t *testing.T) {
	handler, mocks := newTestHandlers()
	id := uuid.New().String()

	// поля, которых нет в форме, не должны попасть в запрос обновления
	mocks.Announcement.On("Update", mock.Anything, mock.MatchedBy(func(req service.UpdateAnnouncementRequest) bool {
		return req.ID == id &&
			req.Title != nil && *req.Title == "Обновленный заголовок" &&
			req.Description == nil &&
			req.Content == nil
	})).Return(&models.Announcement{
		AnnouncementID: id,
		Title:          "Обновленный заголовок",
	}, nil)

	body, contentType := multipartBody(t, map[string]string{
		"title": "Обновленный заголовок",
	})

	req := httptest.NewRequest(http.MethodPatch, "/api/announcements/"+id, body)
	req.Header.Set("Content-Type", contentType)
	req = mux.SetURLVars(req, map[string]string{"id": id})
	req = withAuthContext(req, uuid.New().String(), models.RoleCouncilOfficer)

	rr := httptest.NewRecorder()
	handler.UpdateAnnouncement(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	mocks.Announcement.AssertExpectations(t)
}

func TestPublishAnnouncement(t *testing.T) {
	handler, mocks := newTestHandlers()
	id := uuid.New().String()

	publish := time.Now()
	mocks.Announcement.On("TogglePublish", mock.Anything, id).
		Return(&models.Announcement{
			AnnouncementID: id,
			IsPublished:    true,
			PublishDate:    &publish,
		}, nil)

	req := httptest.NewRequest(http.MethodPatch, "/api/announcements/"+id+"/publish", nil)
	req = mux.SetURLVars(req, map[string]string{"id": id})
	rr := httptest.NewRecorder()

	handler.PublishAnnouncement(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, true, data["isPublished"])
	assert.NotNil(t, data["publishDate"])

	mocks.Announcement.AssertExpectations(t)
}

func TestGetMyAnnouncements(t *testing.T) {
	t.Run("Без авторизации", func(t *testing.T) {
		handler, _ := newTestHandlers()

		req := httptest.NewRequest(http.MethodGet, "/api/announcements/my/announcements", nil)
		rr := httptest.NewRecorder()

		handler.GetMyAnnouncements(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Черновики автора", func(t *testing.T) {
		handler, mocks := newTestHandlers()
		userID := uuid.New().String()

		mocks.Announcement.On("ListByAuthor", mock.Anything, userID, "draft").
			Return([]models.Announcement{
				{AnnouncementID: uuid.New().String(), Title: "Черновик", IsPublished: false},
			}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/announcements/my/announcements?status=draft", nil)
		req = withAuthContext(req, userID, models.RoleCommitteeOfficer)
		rr := httptest.NewRecorder()

		handler.GetMyAnnouncements(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mocks.Announcement.AssertExpectations(t)
	})
}

func multipartWithFiles(t *testing.T, fields map[string]string, fileField string, fileNames []string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, value := range fields {
		w.WriteField(key, value)
	}
	for _, name := range fileNames {
		part, err := w.CreateFormFile(fileField, name)
		if err != nil {
			t.Fatalf("не удалось добавить файл %s: %v", name, err)
		}
		part.Write([]byte{0xff, 0xd8, 0xff})
	}
	w.Close()

	return &buf, w.FormDataContentType()
}

func TestCreateAnnouncementImageCount(t *testing.T) {
	fields := map[string]string{
		"title":       "Собрание",
		"description": "Описание",
		"content":     "Текст",
	}

	t.Run("Больше лимита файлов", func(t *testing.T) {
		handler, mocks := newTestHandlers()

		names := make([]string, 7)
		for i := range names {
			names[i] = "img.jpg"
		}
		body, contentType := multipartWithFiles(t, fields, "images", names)

		req := httptest.NewRequest(http.MethodPost, "/api/announcements", body)
		req.Header.Set("Content-Type", contentType)
		req = withAuthContext(req, uuid.New().String(), models.RoleCouncilOfficer)

		rr := httptest.NewRecorder()
		handler.CreateAnnouncement(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "слишком много файлов")
		mocks.Announcement.AssertNotCalled(t, "Create")
	})

	t.Run("Из нескольких файлов хранится первый", func(t *testing.T) {
		handler, mocks := newTestHandlers()

		mocks.Announcement.On("Create", mock.Anything, mock.MatchedBy(func(req service.CreateAnnouncementRequest) bool {
			return req.Image != nil && req.Image.Name == "first.jpg"
		})).Return(&models.Announcement{
			AnnouncementID: uuid.New().String(),
			Title:          "Собрание",
		}, nil)

		body, contentType := multipartWithFiles(t, fields, "images", []string{"first.jpg", "second.jpg"})

		req := httptest.NewRequest(http.MethodPost, "/api/announcements", body)
		req.Header.Set("Content-Type", contentType)
		req = withAuthContext(req, uuid.New().String(), models.RoleCouncilOfficer)

		rr := httptest.NewRecorder()
		handler.CreateAnnouncement(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		mocks.Announcement.AssertExpectations(t)
	})
}
