package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
)

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

type PaginationResponse struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

type ListResponse struct {
	Success    bool               `json:"success"`
	Data       interface{}        `json:"data"`
	Pagination PaginationResponse `json:"pagination"`
}

// WriteError - универсальная функция для отправки ошибок
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// WriteSuccess - функция для успешных ответов
func WriteSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(SuccessResponse{Success: true, Data: data})
}

// WriteList - список с пагинацией
func WriteList(w http.ResponseWriter, data interface{}, page, limit, total int) {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(ListResponse{
		Success: true,
		Data:    data,
		Pagination: PaginationResponse{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: pages,
		},
	})
}

// errorStatus сводит текст ошибки к HTTP-статусу. Сервисы и репозитории
// отдают обернутые ошибки, наружу уходит только их сообщение.
func errorStatus(err error) int {
	msg := err.Error()

	switch {
	case strings.Contains(msg, "не найден"):
		return http.StatusNotFound
	case strings.Contains(msg, "отсутствуют или некорректны"),
		strings.Contains(msg, "некорректный JSON"),
		strings.Contains(msg, "неверный формат"):
		return http.StatusBadRequest
	case strings.Contains(msg, "неверный пароль"),
		strings.Contains(msg, "деактивирована"),
		strings.Contains(msg, "текущий пароль неверен"):
		return http.StatusUnauthorized
	case strings.Contains(msg, "уже зарегистрирован"):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// WriteServiceError отправляет ошибку сервиса с подобранным статусом
func WriteServiceError(w http.ResponseWriter, err error) {
	WriteError(w, err.Error(), errorStatus(err))
}
