package handlers

import (
	"net/http"

	"studorgCPT/internal/forms"
	"studorgCPT/internal/models"
	"studorgCPT/internal/repository"
	"studorgCPT/internal/service"
)

func (h *Handlers) eventFilter(r *http.Request) repository.ContentFilter {
	page, limit := queryPagination(r)

	return repository.ContentFilter{
		Tag:         r.URL.Query().Get("tag"),
		IsPublished: queryBool(r, "isPublished"),
		Audience:    r.URL.Query().Get("targetAudience"),
		Priority:    r.URL.Query().Get("priority"),
		From:        queryDate(r, "from"),
		To:          queryDate(r, "to"),
		Sort:        r.URL.Query().Get("sort"),
		Page:        page,
		Limit:       limit,
	}
}

func (h *Handlers) GetEvents(w http.ResponseWriter, r *http.Request) {
	filter := h.eventFilter(r)

	items, total, err := h.EventService.List(r.Context(), filter)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	if items == nil {
		items = []models.Event{}
	}

	WriteList(w, items, filter.Page, filter.Limit, total)
}

func (h *Handlers) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	e, err := h.EventService.Get(r.Context(), id)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, e, http.StatusOK)
}

func (h *Handlers) GetMyEvents(w http.ResponseWriter, r *http.Request) {
	userID := contextUserID(r)
	if userID == "" {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	status := r.URL.Query().Get("status")
	items, err := h.EventService.ListByAuthor(r.Context(), userID, status)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	if items == nil {
		items = []models.Event{}
	}

	WriteSuccess(w, items, http.StatusOK)
}

func decodeEventFields(r *http.Request) (tags, targetAudience []string, admissions models.Admissions, err error) {
	if err = forms.DecodeJSONField("tags", r.FormValue("tags"), &tags); err != nil {
		return
	}
	if err = forms.DecodeJSONField("targetAudience", r.FormValue("targetAudience"), &targetAudience); err != nil {
		return
	}
	if err = forms.DecodeJSONField("admissions", r.FormValue("admissions"), &admissions); err != nil {
		return
	}
	return
}

func (h *Handlers) CreateEvent(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	tags, targetAudience, admissions, err := decodeEventFields(r)
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	eventDate, err := forms.ParseDate(r.FormValue("eventDate"))
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if eventDate == nil {
		WriteError(w, "отсутствуют или некорректны обязательные поля: EventDate", http.StatusBadRequest)
		return
	}

	regStart, err := forms.ParseDate(r.FormValue("registrationStart"))
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}
	regEnd, err := forms.ParseDate(r.FormValue("registrationEnd"))
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	images, err := h.readUploadFiles(r, "images", h.Cfg.MaxUploadFile)
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	req := service.CreateEventRequest{
		Title:          r.FormValue("title"),
		Description:    r.FormValue("description"),
		Content:        r.FormValue("content"),
		EventDate:      *eventDate,
		Tags:           tags,
		Time:           r.FormValue("time"),
		Mode:           r.FormValue("mode"),
		Location:       r.FormValue("location"),
		Organizer:      r.FormValue("organizer"),
		Contact:        r.FormValue("contact"),
		RsvpLink:       r.FormValue("rsvpLink"),
		Admissions:     admissions,
		RegStart:       regStart,
		RegEnd:         regEnd,
		AuthorID:       contextUserID(r),
		IsPublished:    forms.ParseBool(r.FormValue("isPublished"), false),
		Priority:       r.FormValue("priority"),
		TargetAudience: targetAudience,
		Images:         images,
	}

	e, err := h.EventService.Create(r.Context(), req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, e, http.StatusCreated)
}

func (h *Handlers) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	tags, targetAudience, admissions, err := decodeEventFields(r)
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	images, err := h.readUploadFiles(r, "images", h.Cfg.MaxUploadFile)
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	req := service.UpdateEventRequest{
		ID:             id,
		Title:          formValue(r, "title"),
		Description:    formValue(r, "description"),
		Content:        formValue(r, "content"),
		Tags:           tags,
		Time:           formValue(r, "time"),
		Mode:           formValue(r, "mode"),
		Location:       formValue(r, "location"),
		Organizer:      formValue(r, "organizer"),
		Contact:        formValue(r, "contact"),
		RsvpLink:       formValue(r, "rsvpLink"),
		Admissions:     admissions,
		Priority:       formValue(r, "priority"),
		TargetAudience: targetAudience,
		Images:         images,
		ReplaceGallery: forms.ParseBool(r.FormValue("replaceGallery"), false),
	}

	if value := formValue(r, "eventDate"); value != nil {
		eventDate, err := forms.ParseDate(*value)
		if err != nil {
			WriteError(w, err.Error(), http.StatusBadRequest)
			return
		}
		req.EventDate = eventDate
	}

	if value := formValue(r, "registrationStart"); value != nil {
		regStart, err := forms.ParseDate(*value)
		if err != nil {
			WriteError(w, err.Error(), http.StatusBadRequest)
			return
		}
		req.RegStart = regStart
	}

	if value := formValue(r, "registrationEnd"); value != nil {
		regEnd, err := forms.ParseDate(*value)
		if err != nil {
			WriteError(w, err.Error(), http.StatusBadRequest)
			return
		}
		req.RegEnd = regEnd
	}

	if value := formValue(r, "isPublished"); value != nil {
		published := forms.ParseBool(*value, false)
		req.IsPublished = &published
	}

	e, err := h.EventService.Update(r.Context(), req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, e, http.StatusOK)
}

func (h *Handlers) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.EventService.Delete(r.Context(), id); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, "Мероприятие удалено", http.StatusOK)
}

func (h *Handlers) PublishEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	e, err := h.EventService.TogglePublish(r.Context(), id)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, e, http.StatusOK)
}
