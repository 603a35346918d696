package handlers

import (
	"net/http"

	"studorgCPT/internal/forms"
	"studorgCPT/internal/models"
	"studorgCPT/internal/service"
)

func (h *Handlers) GetMerchandise(w http.ResponseWriter, r *http.Request) {
	page, limit := queryPagination(r)

	items, total, err := h.MerchandiseService.List(r.Context(), page, limit)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	if items == nil {
		items = []models.Merchandise{}
	}

	WriteList(w, items, page, limit, total)
}

func (h *Handlers) GetMerchandiseItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	m, err := h.MerchandiseService.Get(r.Context(), id)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, m, http.StatusOK)
}

func (h *Handlers) CreateMerchandise(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	var priceTiers models.PriceTiers
	if err := forms.DecodeJSONField("priceTiers", r.FormValue("priceTiers"), &priceTiers); err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	image, err := h.readUploadFile(r, "images")
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	req := service.CreateMerchandiseRequest{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		PriceTiers:  priceTiers,
		OrderLink:   r.FormValue("orderLink"),
		IsAvailable: forms.ParseBool(r.FormValue("isAvailable"), true),
		Image:       image,
	}

	m, err := h.MerchandiseService.Create(r.Context(), req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, m, http.StatusCreated)
}

func (h *Handlers) UpdateMerchandise(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	var priceTiers models.PriceTiers
	if err := forms.DecodeJSONField("priceTiers", r.FormValue("priceTiers"), &priceTiers); err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	image, err := h.readUploadFile(r, "images")
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	req := service.UpdateMerchandiseRequest{
		ID:          id,
		Name:        formValue(r, "name"),
		Description: formValue(r, "description"),
		PriceTiers:  priceTiers,
		OrderLink:   formValue(r, "orderLink"),
		Image:       image,
	}

	if value := formValue(r, "isAvailable"); value != nil {
		available := forms.ParseBool(*value, true)
		req.IsAvailable = &available
	}

	m, err := h.MerchandiseService.Update(r.Context(), req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, m, http.StatusOK)
}

func (h *Handlers) DeleteMerchandise(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.MerchandiseService.Delete(r.Context(), id); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, "Товар удален", http.StatusOK)
}
