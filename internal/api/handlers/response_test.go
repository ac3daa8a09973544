package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/appointment-booking/internal/domain"
)

func TestStatusForError(t *testing.T) {
	tests := map[error]int{
		domain.ErrNotFound:          http.StatusNotFound,
		domain.ErrValidationFailed:  http.StatusBadRequest,
		domain.ErrSlotUnavailable:   http.StatusUnprocessableEntity,
		domain.ErrConflict:          http.StatusConflict,
		domain.ErrForbidden:         http.StatusForbidden,
		domain.ErrInvalidTransition: http.StatusUnprocessableEntity,
		errors.New("boom"):          http.StatusInternalServerError,
	}
	for err, status := range tests {
		assert.Equal(t, status, StatusForError(fmt.Errorf("wrapped: %w", err)), err.Error())
	}
}

func TestRespondDomainError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondDomainError(rec, fmt.Errorf("x: %w", domain.ErrConflict), "слот занят")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"code":"Conflict","message":"слот занят"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	RespondDomainError(rec, errors.New("db is down"), "не важно")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Internal"`)
	assert.NotContains(t, rec.Body.String(), "db is down")
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"ok"}`))
	require.NoError(t, DecodeJSON(req, &v))
	assert.Equal(t, "ok", v.Name)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"ok","extra":1}`))
	assert.Error(t, DecodeJSON(req, &v))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a"}{"name":"b"}`))
	assert.Error(t, DecodeJSON(req, &v))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`not json`))
	assert.Error(t, DecodeJSON(req, &v))
}
