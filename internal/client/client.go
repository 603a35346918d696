// Package client - типизированный HTTP-клиент для API портала.
// Используется интеграционными скриптами и внутренними сервисами.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"studorgCPT/internal/models"
)

type Client struct {
	BaseURL string
	Token   string

	// AllowSampleFallback включает выдачу встроенных примерных данных,
	// когда API недоступен. По умолчанию выключено: ошибки не маскируются.
	AllowSampleFallback bool

	HTTPClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type apiResponse struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Pagination *Pagination     `json:"pagination"`
	Error      string          `json:"error"`
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

type LoginResult struct {
	Token      string              `json:"token"`
	User       *models.UserSummary `json:"user"`
	FirstLogin bool                `json:"firstLogin"`
}

// ListOptions - параметры фильтрации и пагинации списочных запросов
type ListOptions struct {
	Type        string
	Tag         string
	IsPublished *bool
	Audience    string
	Priority    string
	Sort        string
	Page        int
	Limit       int
}

func (o ListOptions) query() url.Values {
	q := url.Values{}
	if o.Type != "" {
		q.Set("type", o.Type)
	}
	if o.Tag != "" {
		q.Set("tag", o.Tag)
	}
	if o.IsPublished != nil {
		q.Set("isPublished", strconv.FormatBool(*o.IsPublished))
	}
	if o.Audience != "" {
		q.Set("targetAudience", o.Audience)
	}
	if o.Priority != "" {
		q.Set("priority", o.Priority)
	}
	if o.Sort != "" {
		q.Set("sort", o.Sort)
	}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	return q
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (*apiResponse, error) {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed apiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("неожиданный ответ API (%d): %s", resp.StatusCode, raw)
	}

	if resp.StatusCode >= 400 {
		if parsed.Error != "" {
			return nil, fmt.Errorf("API %d: %s", resp.StatusCode, parsed.Error)
		}
		return nil, fmt.Errorf("API %d", resp.StatusCode)
	}

	return &parsed, nil
}

func (c *Client) Login(ctx context.Context, studentNumber, password string) (*LoginResult, error) {
	payload, _ := json.Marshal(map[string]string{
		"studentNumber": studentNumber,
		"password":      password,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/auth/login", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var fail struct {
			Error string `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&fail)
		return nil, fmt.Errorf("вход не выполнен: %s", fail.Error)
	}

	var result LoginResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	c.Token = result.Token
	return &result, nil
}

// ListAnnouncements возвращает объявления. При недоступном API и включенном
// AllowSampleFallback отдаются встроенные примерные данные.
func (c *Client) ListAnnouncements(ctx context.Context, opts ListOptions) ([]models.Announcement, *Pagination, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/announcements", opts.query(), nil, "")
	if err != nil {
		if c.AllowSampleFallback {
			return sampleAnnouncements(), nil, nil
		}
		return nil, nil, err
	}

	var items []models.Announcement
	if err := json.Unmarshal(resp.Data, &items); err != nil {
		return nil, nil, err
	}
	return items, resp.Pagination, nil
}

func (c *Client) GetAnnouncement(ctx context.Context, id string) (*models.Announcement, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/announcements/"+id, nil, nil, "")
	if err != nil {
		return nil, err
	}

	var a models.Announcement
	if err := json.Unmarshal(resp.Data, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Client) CreateAnnouncement(ctx context.Context, form AnnouncementForm) (*models.Announcement, error) {
	body, contentType, err := form.Encode()
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, http.MethodPost, "/api/announcements", nil, body, contentType)
	if err != nil {
		return nil, err
	}

	var a models.Announcement
	if err := json.Unmarshal(resp.Data, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Client) ListEvents(ctx context.Context, opts ListOptions) ([]models.Event, *Pagination, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/events", opts.query(), nil, "")
	if err != nil {
		if c.AllowSampleFallback {
			return sampleEvents(), nil, nil
		}
		return nil, nil, err
	}

	var items []models.Event
	if err := json.Unmarshal(resp.Data, &items); err != nil {
		return nil, nil, err
	}
	return items, resp.Pagination, nil
}

func (c *Client) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/events/"+id, nil, nil, "")
	if err != nil {
		return nil, err
	}

	var e models.Event
	if err := json.Unmarshal(resp.Data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (c *Client) CreateEvent(ctx context.Context, form EventForm) (*models.Event, error) {
	body, contentType, err := form.Encode()
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, http.MethodPost, "/api/events", nil, body, contentType)
	if err != nil {
		return nil, err
	}

	var e models.Event
	if err := json.Unmarshal(resp.Data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (c *Client) ListMerchandise(ctx context.Context, page, limit int) ([]models.Merchandise, *Pagination, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	resp, err := c.do(ctx, http.MethodGet, "/api/merchandise", q, nil, "")
	if err != nil {
		return nil, nil, err
	}

	var items []models.Merchandise
	if err := json.Unmarshal(resp.Data, &items); err != nil {
		return nil, nil, err
	}
	return items, resp.Pagination, nil
}

func (c *Client) ListTestimonials(ctx context.Context, page, limit int) ([]models.Testimonial, *Pagination, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	resp, err := c.do(ctx, http.MethodGet, "/api/testimonials", q, nil, "")
	if err != nil {
		return nil, nil, err
	}

	var items []models.Testimonial
	if err := json.Unmarshal(resp.Data, &items); err != nil {
		return nil, nil, err
	}
	return items, resp.Pagination, nil
}
