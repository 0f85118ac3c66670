package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Bashame05/final-timetable/internal/catalog"
	"github.com/Bashame05/final-timetable/pkg/timetable"
)

// stubGenerator records the last request and returns a canned result.
type stubGenerator struct {
	result  timetable.Result
	request timetable.Request
}

func (s *stubGenerator) Generate(request timetable.Request) timetable.Result {
	s.request = request
	return s.result
}

func successResult() timetable.Result {
	return timetable.Result{
		Status: timetable.StatusSuccess,
		Timetable: []timetable.Lecture{{
			Day: "Mon", StartHour: 9, EndHour: 11,
			StartTime: "09:00", EndTime: "11:00",
			Subject: "OS", Room: "Room 101", Batch: "Batch A",
			Type: timetable.SessionTheory, Duration: 2,
		}},
		Stats: &timetable.Stats{TotalSlots: 1, SubjectsScheduled: 1, BatchesScheduled: 1},
	}
}

func newTestServer(result timetable.Result) (*gin.Engine, *stubGenerator, *catalog.Store) {
	gin.SetMode(gin.TestMode)
	store := catalog.NewStore()
	generator := &stubGenerator{result: result}
	return New(store, generator).Router(), generator, store
}

func do(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func decode(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

const generateBody = `{
	"week_config": {
		"start_time": "09:00", "end_time": "16:00",
		"lunch_start": "13:00", "lunch_end": "14:00",
		"working_days": ["Mon", "Tue"]
	},
	"rooms": [{"name": "Room 101", "type": "classroom", "capacity": 60}],
	"subjects": [{"name": "OS", "type": "theory", "hours_per_week": 2}],
	"batches": ["Batch A"]
}`

func TestGenerateTimetable(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		router, generator, store := newTestServer(successResult())

		// Act
		recorder := do(router, http.MethodPost, "/api/timetable/generate", generateBody)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
		body := decode(t, recorder)
		assert.Equal(t, "success", body["status"])
		assert.NotEmpty(t, body["id"])
		assert.Equal(t, "OS", generator.request.Subjects[0].Name)

		// the outcome is retrievable by id
		_, stored := store.Generated(body["id"].(string))
		assert.True(t, stored)
	})

	t.Run("MalformedBody", func(t *testing.T) {
		// Arrange
		router, _, _ := newTestServer(successResult())

		// Act
		recorder := do(router, http.MethodPost, "/api/timetable/generate", "{not json")

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("ConfigFailureMapsTo400", func(t *testing.T) {
		// Arrange
		router, _, _ := newTestServer(timetable.Result{
			Status:  timetable.StatusFailed,
			Reason:  "no rooms supplied",
			Failure: &timetable.Failure{Kind: timetable.FailureConfig, Reason: "no rooms supplied"},
		})

		// Act
		recorder := do(router, http.MethodPost, "/api/timetable/generate", generateBody)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, "no rooms supplied", decode(t, recorder)["reason"])
	})

	t.Run("InfeasibleMapsTo422", func(t *testing.T) {
		// Arrange
		router, _, _ := newTestServer(timetable.Result{
			Status:  timetable.StatusFailed,
			Reason:  "no feasible solution",
			Failure: &timetable.Failure{Kind: timetable.FailureInfeasible, Reason: "no feasible solution"},
		})

		// Act
		recorder := do(router, http.MethodPost, "/api/timetable/generate", generateBody)

		// Assert
		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	})
}

func TestGetTimetable(t *testing.T) {
	// Arrange
	router, _, store := newTestServer(successResult())
	saved := store.SaveGenerated("", successResult())

	t.Run("Known", func(t *testing.T) {
		// Act
		recorder := do(router, http.MethodGet, "/api/timetable/"+saved.ID, "")

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, saved.ID, decode(t, recorder)["id"])
	})

	t.Run("Unknown", func(t *testing.T) {
		// Act + Assert
		assert.Equal(t, http.StatusNotFound, do(router, http.MethodGet, "/api/timetable/missing", "").Code)
	})
}

func TestRoomsEndpoints(t *testing.T) {
	// Arrange
	router, _, _ := newTestServer(successResult())

	t.Run("ListSeeded", func(t *testing.T) {
		// Act
		recorder := do(router, http.MethodGet, "/api/rooms", "")

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Len(t, decode(t, recorder)["rooms"], 5)
	})

	t.Run("PutRooms", func(t *testing.T) {
		// Act
		recorder := do(router, http.MethodPost, "/api/rooms",
			`{"rooms": [{"name": "Auditorium", "type": "classroom", "capacity": 300}]}`)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.EqualValues(t, 6, decode(t, recorder)["count"])
	})

	t.Run("PutRoomsWithoutBody", func(t *testing.T) {
		// Act + Assert
		assert.Equal(t, http.StatusBadRequest, do(router, http.MethodPost, "/api/rooms", `{}`).Code)
	})

	t.Run("DeleteRoom", func(t *testing.T) {
		// Act + Assert
		assert.Equal(t, http.StatusOK, do(router, http.MethodDelete, "/api/rooms/Auditorium", "").Code)
		assert.Equal(t, http.StatusNotFound, do(router, http.MethodDelete, "/api/rooms/Auditorium", "").Code)
	})
}

func TestSettingsEndpoints(t *testing.T) {
	// Arrange
	router, _, store := newTestServer(successResult())

	t.Run("Get", func(t *testing.T) {
		// Act
		recorder := do(router, http.MethodGet, "/api/settings", "")

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "09:00", decode(t, recorder)["start_time"])
	})

	t.Run("Put", func(t *testing.T) {
		// Act
		recorder := do(router, http.MethodPut, "/api/settings",
			`{"start_time": "08:00", "end_time": "14:00", "lunch_start": "12:00", "lunch_end": "13:00", "working_days": ["Mon"]}`)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "08:00", store.WeekConfig().StartTime)
	})
}

func TestDepartmentEndpoints(t *testing.T) {
	// Arrange
	router, generator, store := newTestServer(successResult())

	t.Run("PutAndList", func(t *testing.T) {
		// Act
		recorder := do(router, http.MethodPost, "/api/departments",
			`{"name": "Computer Science", "subjects": [{"name": "OS", "type": "theory", "hours_per_week": 3}]}`)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Len(t, decode(t, do(router, http.MethodGet, "/api/departments", ""))["departments"], 1)
	})

	t.Run("PutWithoutName", func(t *testing.T) {
		// Act + Assert
		assert.Equal(t, http.StatusBadRequest, do(router, http.MethodPost, "/api/departments", `{"subjects": []}`).Code)
	})

	t.Run("GenerateComposesRequest", func(t *testing.T) {
		// Act
		recorder := do(router, http.MethodPost, "/api/departments/Computer%20Science/generate", "")

		// Assert: catalog rooms and settings plus the department's subjects
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Len(t, generator.request.Rooms, 5)
		assert.Equal(t, store.WeekConfig(), generator.request.WeekConfig)
		assert.Equal(t, "OS", generator.request.Subjects[0].Name)
	})

	t.Run("GenerateUnknownDepartment", func(t *testing.T) {
		// Act + Assert
		assert.Equal(t, http.StatusNotFound, do(router, http.MethodPost, "/api/departments/Alchemy/generate", "").Code)
	})
}

func TestReset(t *testing.T) {
	// Arrange
	router, _, store := newTestServer(successResult())
	store.PutDepartment(catalog.Department{Name: "Biology"})

	// Act
	recorder := do(router, http.MethodPost, "/api/reset", "")

	// Assert
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Empty(t, store.Departments())
}
