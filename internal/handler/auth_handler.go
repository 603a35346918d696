package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"studorgCPT/internal/forms"
	"studorgCPT/internal/models"
)

type LoginRequest struct {
	StudentNumber string `json:"studentNumber" validate:"required"`
	Password      string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Success    bool                `json:"success"`
	Token      string              `json:"token"`
	User       *models.UserSummary `json:"user"`
	FirstLogin bool                `json:"firstLogin"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := forms.ValidateStruct(req); err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, token, err := h.AuthService.Login(r.Context(), req.StudentNumber, req.Password)
	if err != nil {
		WriteError(w, "Неверный студенческий номер или пароль", http.StatusUnauthorized)
		return
	}

	// токен уходит и в теле, и в HTTP-only cookie
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.Cfg.TokenDuration),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(LoginResponse{
		Success:    true,
		Token:      token,
		User:       user.Summary(),
		FirstLogin: user.FirstLogin,
	})
}

func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	userID := contextUserID(r)
	if userID == "" {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	user, err := h.UserRepo.GetUserByID(r.Context(), userID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, user, http.StatusOK)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	WriteSuccess(w, "Выход выполнен", http.StatusOK)
}

func (h *Handlers) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID := contextUserID(r)
	if userID == "" {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := forms.ValidateStruct(req); err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.AuthService.ChangePassword(r.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, "Пароль изменен", http.StatusOK)
}

// ResetPassword - административный сброс: ставит временный пароль и
// принуждает к смене при следующем входе
func (h *Handlers) ResetPassword(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := forms.ValidateStruct(req); err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.AuthService.ResetPassword(r.Context(), id, req.NewPassword); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, "Пароль сброшен", http.StatusOK)
}
