package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jwalitptl/baseline-api/pkg/errors"
)

func respond(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]interface{}, *gin.Context) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondWithError(c, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body, c
}

func TestRespondWithError(t *testing.T) {
	t.Run("validation carries details", func(t *testing.T) {
		err := apperrors.Validation("Name, age, and medical record number are required", map[string]interface{}{
			"missingFields": []string{"name"},
		})
		w, body, _ := respond(t, fmt.Errorf("create: %w", err))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Name, age, and medical record number are required", body["error"])
		assert.Equal(t, []interface{}{"name"}, body["missingFields"])
	})

	t.Run("not found", func(t *testing.T) {
		w, body, _ := respond(t, apperrors.NotFound("Appointment"))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, map[string]interface{}{"error": "Appointment not found"}, body)
	})

	t.Run("unexpected error", func(t *testing.T) {
		w, body, c := respond(t, errors.New("disk on fire"))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Internal Server Error", body["message"])
		assert.NotEmpty(t, body["timestamp"])
		assert.NotContains(t, w.Body.String(), "disk on fire")
		assert.Len(t, c.Errors, 1)
	})

	t.Run("internal app error", func(t *testing.T) {
		w, body, _ := respond(t, apperrors.Internal(errors.New("sign failed")))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Internal Server Error", body["message"])
	})
}

func TestTimestamp(t *testing.T) {
	ts := Timestamp(time.Date(2024, 12, 15, 10, 0, 0, 123456789, time.UTC))
	assert.Equal(t, "2024-12-15T10:00:00.123Z", ts)
}
