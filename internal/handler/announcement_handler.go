package handlers

import (
	"net/http"

	"studorgCPT/internal/forms"
	"studorgCPT/internal/models"
	"studorgCPT/internal/repository"
	"studorgCPT/internal/service"
	"studorgCPT/internal/storage"
)

func (h *Handlers) announcementFilter(r *http.Request) repository.ContentFilter {
	page, limit := queryPagination(r)

	return repository.ContentFilter{
		Type:        r.URL.Query().Get("type"),
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

func (h *Handlers) GetAnnouncements(w http.ResponseWriter, r *http.Request) {
	filter := h.announcementFilter(r)

	items, total, err := h.AnnouncementService.List(r.Context(), filter)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	if items == nil {
		items = []models.Announcement{}
	}

	WriteList(w, items, filter.Page, filter.Limit, total)
}

func (h *Handlers) GetAnnouncement(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	a, err := h.AnnouncementService.Get(r.Context(), id)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, a, http.StatusOK)
}

// GetMyAnnouncements возвращает контент текущего автора, включая черновики
func (h *Handlers) GetMyAnnouncements(w http.ResponseWriter, r *http.Request) {
	userID := contextUserID(r)
	if userID == "" {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	status := r.URL.Query().Get("status")
	items, err := h.AnnouncementService.ListByAuthor(r.Context(), userID, status)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	if items == nil {
		items = []models.Announcement{}
	}

	WriteSuccess(w, items, http.StatusOK)
}

// readAnnouncementImage принимает до MaxUploadFile файлов в поле images,
// но объявление хранит одно изображение - берется первый файл
func (h *Handlers) readAnnouncementImage(r *http.Request) (*storage.UploadFile, error) {
	images, err := h.readUploadFiles(r, "images", h.Cfg.MaxUploadFile)
	if err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return nil, nil
	}
	return &images[0], nil
}

// decodeAnnouncementFields - общий разбор JSON-полей формы для create и update
func decodeAnnouncementFields(r *http.Request) (targetAudience, attendees, agenda []string, awardees models.Awardees, attachments models.Attachments, err error) {
	if err = forms.DecodeJSONField("targetAudience", r.FormValue("targetAudience"), &targetAudience); err != nil {
		return
	}
	if err = forms.DecodeJSONField("attendees", r.FormValue("attendees"), &attendees); err != nil {
		return
	}
	if err = forms.DecodeJSONField("agenda", r.FormValue("agenda"), &agenda); err != nil {
		return
	}
	if err = forms.DecodeJSONField("awardees", r.FormValue("awardees"), &awardees); err != nil {
		return
	}
	if err = forms.DecodeJSONField("attachments", r.FormValue("attachments"), &attachments); err != nil {
		return
	}
	return
}

func (h *Handlers) CreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	targetAudience, attendees, agenda, awardees, attachments, err := decodeAnnouncementFields(r)
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	expiryDate, err := forms.ParseDate(r.FormValue("expiryDate"))
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	image, err := h.readAnnouncementImage(r)
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	req := service.CreateAnnouncementRequest{
		Title:          r.FormValue("title"),
		Description:    r.FormValue("description"),
		Content:        r.FormValue("content"),
		Type:           r.FormValue("type"),
		AuthorID:       contextUserID(r),
		IsPublished:    forms.ParseBool(r.FormValue("isPublished"), false),
		Priority:       r.FormValue("priority"),
		ExpiryDate:     expiryDate,
		TargetAudience: targetAudience,
		Time:           r.FormValue("time"),
		Location:       r.FormValue("location"),
		Organizer:      r.FormValue("organizer"),
		Contact:        r.FormValue("contact"),
		Attendees:      attendees,
		Agenda:         agenda,
		Awardees:       awardees,
		Attachments:    attachments,
		Image:          image,
	}

	a, err := h.AnnouncementService.Create(r.Context(), req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, a, http.StatusCreated)
}

func (h *Handlers) UpdateAnnouncement(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	targetAudience, attendees, agenda, awardees, attachments, err := decodeAnnouncementFields(r)
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	image, err := h.readAnnouncementImage(r)
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	req := service.UpdateAnnouncementRequest{
		ID:             id,
		Title:          formValue(r, "title"),
		Description:    formValue(r, "description"),
		Content:        formValue(r, "content"),
		Type:           formValue(r, "type"),
		Priority:       formValue(r, "priority"),
		Time:           formValue(r, "time"),
		Location:       formValue(r, "location"),
		Organizer:      formValue(r, "organizer"),
		Contact:        formValue(r, "contact"),
		TargetAudience: targetAudience,
		Attendees:      attendees,
		Agenda:         agenda,
		Awardees:       awardees,
		Attachments:    attachments,
		Image:          image,
	}

	if value := formValue(r, "isPublished"); value != nil {
		published := forms.ParseBool(*value, false)
		req.IsPublished = &published
	}

	if value := formValue(r, "expiryDate"); value != nil {
		expiryDate, err := forms.ParseDate(*value)
		if err != nil {
			WriteError(w, err.Error(), http.StatusBadRequest)
			return
		}
		req.ExpiryDate = expiryDate
	}

	a, err := h.AnnouncementService.Update(r.Context(), req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, a, http.StatusOK)
}

func (h *Handlers) DeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.AnnouncementService.Delete(r.Context(), id); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, "Объявление удалено", http.StatusOK)
}

func (h *Handlers) PublishAnnouncement(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	a, err := h.AnnouncementService.TogglePublish(r.Context(), id)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, a, http.StatusOK)
}
