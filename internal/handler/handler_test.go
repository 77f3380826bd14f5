package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cinema-booking/internal/app"
	"cinema-booking/internal/service"
)

func TestFail_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewBookingHandler(&app.App{Logger: zap.NewNop()})

	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid input", service.Invalidf("bad payload"), http.StatusBadRequest},
		{"not found", service.ErrNotFound, http.StatusNotFound},
		{"conflict", service.Conflictf("seat taken"), http.StatusConflict},
		{"not allowed", service.NotAllowedf("too late"), http.StatusForbidden},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(rec)

			h.fail(ctx, tc.err)

			assert.Equal(t, tc.wantStatus, rec.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, false, body["success"])
			assert.NotEmpty(t, body["message"])
		})
	}
}

func TestFail_OpaqueInternalMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewBookingHandler(&app.App{Logger: zap.NewNop()})

	rec := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(rec)
	h.fail(ctx, errors.New("dsn=postgres://user:secret@db"))

	assert.NotContains(t, rec.Body.String(), "secret")
}

func TestIDParam(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	ctx.Params = gin.Params{{Key: "id", Value: "42"}}
	id, err := idParam(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	ctx, _ = gin.CreateTestContext(httptest.NewRecorder())
	ctx.Params = gin.Params{{Key: "id", Value: "abc"}}
	_, err = idParam(ctx)
	assert.Error(t, err)
}
