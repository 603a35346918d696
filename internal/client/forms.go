package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"studorgCPT/internal/models"
)

// clientMaxWidth - предел ширины изображения перед отправкой.
// Даунскейл на стороне клиента экономит трафик, сервер все равно
// приводит изображение к своим лимитам.
const clientMaxWidth = 1600

const clientJPEGQuality = 85

type Attachment struct {
	Name string
	Data []byte
}

type AnnouncementForm struct {
	Title          string
	Description    string
	Content        string
	Type           string
	Priority       string
	IsPublished    bool
	ExpiryDate     *time.Time
	TargetAudience []string
	Time           string
	Location       string
	Organizer      string
	Contact        string
	Attendees      []string
	Agenda         []string
	Awardees       models.Awardees
	Images         []Attachment
}

type EventForm struct {
	Title          string
	Description    string
	Content        string
	EventDate      *time.Time
	Tags           []string
	Time           string
	Mode           string
	Location       string
	Organizer      string
	Contact        string
	RsvpLink       string
	Admissions     models.Admissions
	IsPublished    bool
	Priority       string
	TargetAudience []string
	Images         []Attachment
}

// missingFields собирает все отсутствующие обязательные поля в одну ошибку
func missingFields(pairs ...string) error {
	var missing []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			missing = append(missing, pairs[i])
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("отсутствуют или некорректны обязательные поля: %s", strings.Join(missing, ", "))
	}
	return nil
}

func writeJSONField(w *multipart.Writer, name string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("ошибка сериализации поля %s: %w", name, err)
	}
	return w.WriteField(name, string(raw))
}

// writeImagePart даунскейлит изображение и пишет его в форму как JPEG
func writeImagePart(w *multipart.Writer, field string, att Attachment) error {
	img, err := imaging.Decode(bytes.NewReader(att.Data), imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("файл %s не является изображением: %w", att.Name, err)
	}

	if img.Bounds().Dx() > clientMaxWidth {
		img = imaging.Resize(img, clientMaxWidth, 0, imaging.Lanczos)
	}

	part, err := w.CreateFormFile(field, att.Name)
	if err != nil {
		return err
	}

	return imaging.Encode(part, img, imaging.JPEG, imaging.JPEGQuality(clientJPEGQuality))
}

func (f AnnouncementForm) Encode() (io.Reader, string, error) {
	if err := missingFields(
		"title", f.Title,
		"description", f.Description,
		"content", f.Content,
	); err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	w.WriteField("title", f.Title)
	w.WriteField("description", f.Description)
	w.WriteField("content", f.Content)
	w.WriteField("isPublished", strconv.FormatBool(f.IsPublished))
	if f.Type != "" {
		w.WriteField("type", f.Type)
	}
	if f.Priority != "" {
		w.WriteField("priority", f.Priority)
	}
	if f.ExpiryDate != nil {
		w.WriteField("expiryDate", f.ExpiryDate.Format(time.RFC3339))
	}
	if f.Time != "" {
		w.WriteField("time", f.Time)
	}
	if f.Location != "" {
		w.WriteField("location", f.Location)
	}
	if f.Organizer != "" {
		w.WriteField("organizer", f.Organizer)
	}
	if f.Contact != "" {
		w.WriteField("contact", f.Contact)
	}

	if len(f.TargetAudience) > 0 {
		if err := writeJSONField(w, "targetAudience", f.TargetAudience); err != nil {
			return nil, "", err
		}
	}
	if len(f.Attendees) > 0 {
		if err := writeJSONField(w, "attendees", f.Attendees); err != nil {
			return nil, "", err
		}
	}
	if len(f.Agenda) > 0 {
		if err := writeJSONField(w, "agenda", f.Agenda); err != nil {
			return nil, "", err
		}
	}
	if len(f.Awardees) > 0 {
		if err := writeJSONField(w, "awardees", f.Awardees); err != nil {
			return nil, "", err
		}
	}

	for _, att := range f.Images {
		if err := writeImagePart(w, "images", att); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return &buf, w.FormDataContentType(), nil
}

func (f EventForm) Encode() (io.Reader, string, error) {
	eventDate := ""
	if f.EventDate != nil {
		eventDate = f.EventDate.Format(time.RFC3339)
	}

	if err := missingFields(
		"title", f.Title,
		"description", f.Description,
		"content", f.Content,
		"eventDate", eventDate,
	); err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	w.WriteField("title", f.Title)
	w.WriteField("description", f.Description)
	w.WriteField("content", f.Content)
	w.WriteField("eventDate", eventDate)
	w.WriteField("isPublished", strconv.FormatBool(f.IsPublished))
	if f.Time != "" {
		w.WriteField("time", f.Time)
	}
	if f.Mode != "" {
		w.WriteField("mode", f.Mode)
	}
	if f.Location != "" {
		w.WriteField("location", f.Location)
	}
	if f.Organizer != "" {
		w.WriteField("organizer", f.Organizer)
	}
	if f.Contact != "" {
		w.WriteField("contact", f.Contact)
	}
	if f.RsvpLink != "" {
		w.WriteField("rsvpLink", f.RsvpLink)
	}
	if f.Priority != "" {
		w.WriteField("priority", f.Priority)
	}

	if len(f.Tags) > 0 {
		if err := writeJSONField(w, "tags", f.Tags); err != nil {
			return nil, "", err
		}
	}
	if len(f.TargetAudience) > 0 {
		if err := writeJSONField(w, "targetAudience", f.TargetAudience); err != nil {
			return nil, "", err
		}
	}
	if len(f.Admissions) > 0 {
		if err := writeJSONField(w, "admissions", f.Admissions); err != nil {
			return nil, "", err
		}
	}

	for _, att := range f.Images {
		if err := writeImagePart(w, "images", att); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return &buf, w.FormDataContentType(), nil
}
