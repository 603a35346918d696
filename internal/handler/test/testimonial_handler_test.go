package test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"studorgCPT/internal/models"
	"studorgCPT/internal/service"
)

func TestGetTestimonials(t *testing.T) {
	t.Run("По умолчанию только активные", func(t *testing.T) {
		handler, mocks := newTestHandlers()

		mocks.Testimonial.On("List", mock.Anything, true, 1, 20).
			Return([]models.Testimonial{
				{TestimonialID: uuid.New().String(), Name: "Анна", IsActive: true},
			}, 1, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/testimonials", nil)
		rr := httptest.NewRecorder()

		handler.GetTestimonials(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mocks.Testimonial.AssertExpectations(t)
	})

	t.Run("activeOnly=false показывает скрытые", func(t *testing.T) {
		handler, mocks := newTestHandlers()

		mocks.Testimonial.On("List", mock.Anything, false, 1, 20).
			Return([]models.Testimonial{}, 0, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/testimonials?activeOnly=false", nil)
		rr := httptest.NewRecorder()

		handler.GetTestimonials(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		// пустой список сериализуется как [], а не null
		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, []interface{}{}, resp["data"])
		mocks.Testimonial.AssertExpectations(t)
	})
}

func TestCreateTestimonial(t *testing.T) {
	handler, mocks := newTestHandlers()

	mocks.Testimonial.On("Create", mock.Anything, mock.MatchedBy(func(req service.CreateTestimonialRequest) bool {
		return req.Name == "Анна" && req.Role == "Выпускница 2024" && req.IsActive
	})).Return(&models.Testimonial{
		TestimonialID: uuid.New().String(),
		Name:          "Анна",
		IsActive:      true,
	}, nil)

	body, contentType := multipartBody(t, map[string]string{
		"name":  "Анна",
		"role":  "Выпускница 2024",
		"quote": "Организация дала мне друзей и опыт",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/testimonials", body)
	req.Header.Set("Content-Type", contentType)
	req = withAuthContext(req, uuid.New().String(), models.RoleCommitteeOfficer)

	rr := httptest.NewRecorder()
	handler.CreateTestimonial(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	mocks.Testimonial.AssertExpectations(t)
}

func TestToggleTestimonial(t *testing.T) {
	handler, mocks := newTestHandlers()
	id := uuid.New().String()

	mocks.Testimonial.On("ToggleActive", mock.Anything, id).
		Return(&models.Testimonial{TestimonialID: id, Name: "Анна", IsActive: false}, nil)

	req := httptest.NewRequest(http.MethodPatch, "/api/testimonials/"+id+"/toggle", nil)
	req = mux.SetURLVars(req, map[string]string{"id": id})
	req = withAuthContext(req, uuid.New().String(), models.RoleCouncilOfficer)

	rr := httptest.NewRecorder()
	handler.ToggleTestimonial(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, false, data["isActive"])
}
