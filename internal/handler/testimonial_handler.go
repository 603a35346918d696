package handlers

import (
	"net/http"

	"studorgCPT/internal/forms"
	"studorgCPT/internal/models"
	"studorgCPT/internal/service"
)

func (h *Handlers) GetTestimonials(w http.ResponseWriter, r *http.Request) {
	page, limit := queryPagination(r)

	// публичная выдача по умолчанию показывает только активные отзывы
	activeOnly := true
	if value := queryBool(r, "activeOnly"); value != nil {
		activeOnly = *value
	}

	items, total, err := h.TestimonialService.List(r.Context(), activeOnly, page, limit)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	if items == nil {
		items = []models.Testimonial{}
	}

	WriteList(w, items, page, limit, total)
}

func (h *Handlers) GetTestimonial(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	t, err := h.TestimonialService.Get(r.Context(), id)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, t, http.StatusOK)
}

func (h *Handlers) CreateTestimonial(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	image, err := h.readUploadFile(r, "images")
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	req := service.CreateTestimonialRequest{
		Name:     r.FormValue("name"),
		Role:     r.FormValue("role"),
		Quote:    r.FormValue("quote"),
		IsActive: forms.ParseBool(r.FormValue("isActive"), true),
		Image:    image,
	}

	t, err := h.TestimonialService.Create(r.Context(), req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, t, http.StatusCreated)
}

func (h *Handlers) UpdateTestimonial(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	image, err := h.readUploadFile(r, "images")
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	req := service.UpdateTestimonialRequest{
		ID:    id,
		Name:  formValue(r, "name"),
		Role:  formValue(r, "role"),
		Quote: formValue(r, "quote"),
		Image: image,
	}

	if value := formValue(r, "isActive"); value != nil {
		active := forms.ParseBool(*value, true)
		req.IsActive = &active
	}

	t, err := h.TestimonialService.Update(r.Context(), req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, t, http.StatusOK)
}

func (h *Handlers) DeleteTestimonial(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.TestimonialService.Delete(r.Context(), id); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, "Отзыв удален", http.StatusOK)
}

func (h *Handlers) ToggleTestimonial(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	t, err := h.TestimonialService.ToggleActive(r.Context(), id)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, t, http.StatusOK)
}
