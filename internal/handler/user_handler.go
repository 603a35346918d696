package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"studorgCPT/internal/forms"
	"studorgCPT/internal/models"
	"studorgCPT/internal/repository"
	"studorgCPT/internal/service"
)

type RegisterRequest struct {
	StudentNumber  string  `json:"studentNumber" validate:"required"`
	LastName       string  `json:"lastName" validate:"required"`
	FirstName      string  `json:"firstName" validate:"required"`
	MiddleName     string  `json:"middleName"`
	Password       string  `json:"password" validate:"required,min=6"`
	Role           string  `json:"role"`
	YearLevel      int     `json:"yearLevel"`
	IsMember       bool    `json:"isMember"`
	MembershipType *string `json:"membershipType"`
}

func contextRole(r *http.Request) string {
	role, _ := r.Context().Value("role").(string)
	return role
}

func isAdminRole(role string) bool {
	return role == models.RoleCouncilOfficer || role == models.RoleFaculty
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := forms.ValidateStruct(req); err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	// роль из запроса учитывается только для администраторов,
	// самостоятельная регистрация всегда дает student
	role := models.RoleStudent
	var registeredBy *string
	if requesterID := contextUserID(r); requesterID != "" && isAdminRole(contextRole(r)) {
		if req.Role != "" {
			role = req.Role
		}
		registeredBy = &requesterID
	}

	serviceReq := service.RegisterUserRequest{
		StudentNumber:  req.StudentNumber,
		LastName:       req.LastName,
		FirstName:      req.FirstName,
		MiddleName:     req.MiddleName,
		Password:       req.Password,
		Role:           role,
		YearLevel:      req.YearLevel,
		IsMember:       req.IsMember,
		MembershipType: req.MembershipType,
		RegisteredBy:   registeredBy,
	}

	user, err := h.UserService.Register(r.Context(), serviceReq)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, user, http.StatusCreated)
}

func (h *Handlers) GetUsers(w http.ResponseWriter, r *http.Request) {
	page, limit := queryPagination(r)

	filter := repository.UserFilter{
		Role:     r.URL.Query().Get("role"),
		IsMember: queryBool(r, "isMember"),
		IsActive: queryBool(r, "isActive"),
		Page:     page,
		Limit:    limit,
	}

	users, total, err := h.UserRepo.List(r.Context(), filter)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	if users == nil {
		users = []models.User{}
	}

	WriteList(w, users, page, limit, total)
}

func (h *Handlers) GetUserByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.UserRepo.GetUserByID(r.Context(), id)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, user, http.StatusOK)
}

func (h *Handlers) SearchUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		WriteError(w, "Параметр q обязателен", http.StatusBadRequest)
		return
	}

	users, err := h.UserRepo.Search(r.Context(), query)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	if users == nil {
		users = []models.User{}
	}

	WriteSuccess(w, users, http.StatusOK)
}

func (h *Handlers) UserStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.UserRepo.Stats(r.Context())
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, stats, http.StatusOK)
}

func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	// профиль может менять сам пользователь или администратор
	admin := isAdminRole(contextRole(r))
	if contextUserID(r) != id && !admin {
		WriteError(w, "Доступ запрещен", http.StatusForbidden)
		return
	}

	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	image, err := h.readUploadFile(r, "profilePicture")
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	req := service.UpdateUserRequest{
		UserID:     id,
		LastName:   formValue(r, "lastName"),
		FirstName:  formValue(r, "firstName"),
		MiddleName: formValue(r, "middleName"),
		Image:      image,
	}

	// смена роли доступна только администратору
	if admin {
		req.Role = formValue(r, "role")
	}

	if value := formValue(r, "yearLevel"); value != nil {
		yearLevel, err := strconv.Atoi(*value)
		if err != nil {
			WriteError(w, "Неверный формат yearLevel", http.StatusBadRequest)
			return
		}
		req.YearLevel = &yearLevel
	}

	if value := formValue(r, "isMember"); value != nil {
		isMember := forms.ParseBool(*value, false)
		req.IsMember = &isMember
	}

	if value := formValue(r, "membershipType"); value != nil {
		req.MembershipType = value
	}

	user, err := h.UserService.Update(r.Context(), req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, user, http.StatusOK)
}

// ToggleUserStatus - мягкое удаление через деактивацию
func (h *Handlers) ToggleUserStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.UserService.ToggleStatus(r.Context(), id)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, user, http.StatusOK)
}

func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.UserService.Delete(r.Context(), id); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, "Пользователь удален", http.StatusOK)
}

func (h *Handlers) BulkUploadUsers(w http.ResponseWriter, r *http.Request) {
	var rows []service.BulkUserRow
	if err := json.NewDecoder(r.Body).Decode(&rows); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	result, err := h.UserService.BulkUpload(r.Context(), contextUserID(r), rows)
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	WriteSuccess(w, result, http.StatusCreated)
}
