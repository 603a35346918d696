package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"studorgCPT/internal/config"
	"studorgCPT/internal/repository"
	"studorgCPT/internal/service"
	"studorgCPT/internal/storage"
)

type Handlers struct {
	AuthService         service.AuthService
	UserService         service.UserService
	UserRepo            repository.UserRepository
	AnnouncementService service.AnnouncementService
	EventService        service.EventService
	MerchandiseService  service.MerchandiseService
	TestimonialService  service.TestimonialService
	Cfg                 *config.Config
	Validate            *validator.Validate
}

func NewHandlers(repo *repository.Repository, service *service.Service, config *config.Config) *Handlers {
	return &Handlers{
		AuthService:         service.Auth,
		UserService:         service.User,
		UserRepo:            repo.User,
		AnnouncementService: service.Announcement,
		EventService:        service.Event,
		MerchandiseService:  service.Merchandise,
		TestimonialService:  service.Testimonial,
		Cfg:                 config,
		Validate:            validator.New(),
	}
}

func HomeHandler(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, "Student organization portal API", http.StatusOK)
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, "ok", http.StatusOK)
}

// pathID достает {id} из маршрута и проверяет формат
func pathID(r *http.Request) (string, error) {
	id := mux.Vars(r)["id"]
	if _, err := uuid.Parse(id); err != nil {
		return "", fmt.Errorf("неверный формат ID: %s", id)
	}
	return id, nil
}

func contextUserID(r *http.Request) string {
	userID, _ := r.Context().Value("userID").(string)
	return userID
}

// queryPagination читает page/limit из запроса
func queryPagination(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

func queryBool(r *http.Request, key string) *bool {
	value := r.URL.Query().Get(key)
	if value == "" {
		return nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return nil
	}
	return &b
}

func queryDate(r *http.Request, key string) *time.Time {
	value := r.URL.Query().Get(key)
	if value == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return &t
	}
	return nil
}

// formValue возвращает nil, если поле вообще не пришло в форме.
// Различие "поле пустое" / "поля нет" важно для частичного обновления.
func formValue(r *http.Request, key string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	values, ok := r.MultipartForm.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

// readUploadFile вычитывает один файл из multipart формы.
// Отсутствие файла - не ошибка.
func (h *Handlers) readUploadFile(r *http.Request, field string) (*storage.UploadFile, error) {
	if r.MultipartForm == nil || r.MultipartForm.File == nil {
		return nil, nil
	}

	headers := r.MultipartForm.File[field]
	if len(headers) == 0 {
		return nil, nil
	}

	fh := headers[0]
	file, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия файла %s: %w", fh.Filename, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла %s: %w", fh.Filename, err)
	}

	return &storage.UploadFile{Name: fh.Filename, Data: data}, nil
}

func (h *Handlers) readUploadFiles(r *http.Request, field string, max int) ([]storage.UploadFile, error) {
	if r.MultipartForm == nil || r.MultipartForm.File == nil {
		return nil, nil
	}

	headers := r.MultipartForm.File[field]
	if len(headers) == 0 {
		return nil, nil
	}
	if len(headers) > max {
		return nil, fmt.Errorf("слишком много файлов: максимум %d", max)
	}

	files := make([]storage.UploadFile, 0, len(headers))
	for _, fh := range headers {
		file, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("ошибка открытия файла %s: %w", fh.Filename, err)
		}

		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения файла %s: %w", fh.Filename, err)
		}

		files = append(files, storage.UploadFile{Name: fh.Filename, Data: data})
	}

	return files, nil
}
