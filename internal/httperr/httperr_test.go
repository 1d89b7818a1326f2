package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errSlotTaken = New(KindConflict, "duplicate_slot", "taken")

func TestSentinelsSurviveWrapping(t *testing.T) {
	wrapped := fmt.Errorf("create appointment: %w", errSlotTaken)

	assert.ErrorIs(t, wrapped, errSlotTaken)
	assert.True(t, IsKind(wrapped, KindConflict))
	assert.True(t, IsBusiness(wrapped, "duplicate_slot"))
	assert.False(t, IsKind(errors.New("plain"), KindConflict))
}

func TestRespond(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"validation", Validation("missing_field", "name is required"), http.StatusBadRequest, "missing_field"},
		{"past date", New(KindPastDate, "past_date", "x"), http.StatusBadRequest, "past_date"},
		{"conflict", fmt.Errorf("wrap: %w", errSlotTaken), http.StatusConflict, "duplicate_slot"},
		{"not found", New(KindNotFound, "appointment_not_found", "x"), http.StatusNotFound, "appointment_not_found"},
		{"transition", New(KindInvalidTransition, "invalid_transition", "x"), http.StatusConflict, "invalid_transition"},
		{"unprocessable", New(KindUnprocessable, "insufficient_points", "x"), http.StatusUnprocessableEntity, "insufficient_points"},
		{"unknown", errors.New("db down"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			Respond(c, tt.err)

			assert.Equal(t, tt.wantCode, w.Code)
			var body HTTPError
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantBody, body.Code)
		})
	}
}
