package echoapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/vecindario/barrios/core/recommend"
	"github.com/vecindario/barrios/testutil"
)

func Test_internalError(t *testing.T) {
	err := errors.Wrap(&internalError{err: recommend.ErrCounterNotFound}, "recording")
	assert.True(t, errors.Is(err, recommend.ErrCounterNotFound))
	assert.EqualError(t, err, "recording: recommendation counter not found")

	logger := new(testutil.Logger)
	_, translator := testutil.NewValidator()
	handle := newAppHTTPErrorHandler(logger, translator, func() {})

	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "not found", err: errors.Wrap(recommend.ErrCounterNotFound, "recording"), wantCode: http.StatusNotFound},
		{name: "internal not found", err: err, wantCode: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			ctx := echo.New().NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)
			handle(tt.err, ctx)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}

	entries := logger.Entries()
	if assert.Len(t, entries, 1) {
		assert.Contains(t, entries[0], "recommendation counter not found")
	}
}
