package schedule

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var knownLocations = func(id string) bool {
	return id == "zachry-engineering" || id == "student-rec-center"
}

func setupHandlerTest(t *testing.T) *Handler {
	repo := NewStubRepository()
	return NewHandler(NewService(repo, nil), knownLocations)
}

func studentRequest(method, target string, body []byte) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	return req.WithContext(ctx)
}

func TestHandler_UploadSchedule(t *testing.T) {
	t.Run("should accept a raw ICS body", func(t *testing.T) {
		// given
		handler := setupHandlerTest(t)
		req := studentRequest(http.MethodPost, "/api/schedule", icsCalendar(weeklyMathEvent))
		req.Header.Set("Content-Type", "text/calendar")
		w := httptest.NewRecorder()

		// when
		handler.UploadSchedule(w, req)

		// then
		require.Equal(t, http.StatusCreated, w.Code)
		var response SummaryDTO
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, 3, response.TotalClasses)
		assert.Equal(t, []string{"MATH 304"}, response.UniqueCourses)
	})

	t.Run("should accept a JSON wrapped ICS payload", func(t *testing.T) {
		// given
		handler := setupHandlerTest(t)
		body, err := json.Marshal(map[string]string{"ics": string(icsCalendar(singleChemEvent))})
		require.NoError(t, err)
		req := studentRequest(http.MethodPost, "/api/schedule", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		// when
		handler.UploadSchedule(w, req)

		// then
		require.Equal(t, http.StatusCreated, w.Code)
		var response SummaryDTO
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, 1, response.TotalClasses)
	})

	t.Run("should reject a structurally invalid calendar", func(t *testing.T) {
		// given
		handler := setupHandlerTest(t)
		req := studentRequest(http.MethodPost, "/api/schedule", []byte("not a calendar"))
		w := httptest.NewRecorder()

		// when
		handler.UploadSchedule(w, req)

		// then
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestHandler_GetSummary(t *testing.T) {
	t.Run("should return 404 before any upload", func(t *testing.T) {
		// given
		handler := setupHandlerTest(t)
		req := studentRequest(http.MethodGet, "/api/schedule", nil)
		w := httptest.NewRecorder()

		// when
		handler.GetSummary(w, req)

		// then
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandler_AssignLocations(t *testing.T) {
	upload := func(t *testing.T, handler *Handler) {
		req := studentRequest(http.MethodPost, "/api/schedule", icsCalendar(weeklyMathEvent))
		w := httptest.NewRecorder()
		handler.UploadSchedule(w, req)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	t.Run("should assign a known location to a course", func(t *testing.T) {
		// given
		handler := setupHandlerTest(t)
		upload(t, handler)
		body := `{"assignments": [{"courseLabel": "MATH 304", "locationId": "zachry-engineering"}]}`
		req := studentRequest(http.MethodPut, "/api/schedule/locations", []byte(body))
		w := httptest.NewRecorder()

		// when
		handler.AssignLocations(w, req)

		// then
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, strings.Contains(w.Body.String(), `"MATH 304":3`))
	})

	t.Run("should reject an unknown location id", func(t *testing.T) {
		// given
		handler := setupHandlerTest(t)
		upload(t, handler)
		body := `{"assignments": [{"courseLabel": "MATH 304", "locationId": "atlantis-gym"}]}`
		req := studentRequest(http.MethodPut, "/api/schedule/locations", []byte(body))
		w := httptest.NewRecorder()

		// when
		handler.AssignLocations(w, req)

		// then
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("should reject an empty assignment list", func(t *testing.T) {
		// given
		handler := setupHandlerTest(t)
		req := studentRequest(http.MethodPut, "/api/schedule/locations", []byte(`{"assignments": []}`))
		w := httptest.NewRecorder()

		// when
		handler.AssignLocations(w, req)

		// then
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
