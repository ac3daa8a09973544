package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/m04kA/appointment-booking/internal/domain"
)

// maxBodyBytes ограничение размера тела запроса
const maxBodyBytes = 1 << 20

// Коды ошибок транспорта, не являющиеся доменными видами ошибок
const (
	CodeUnauthorized    = "Unauthorized"
	CodeTooManyRequests = "TooManyRequests"
)

const msgInternalError = "внутренняя ошибка сервера"

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondJSON отправляет JSON ответ
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// RespondError отправляет ошибку с кодом и сообщением
func RespondError(w http.ResponseWriter, status int, code, message string) {
	RespondJSON(w, status, ErrorResponse{Code: code, Message: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, domain.KindValidationFailed, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, CodeUnauthorized, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, domain.KindForbidden, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, domain.KindNotFound, message)
}

func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, domain.KindConflict, message)
}

// RespondSlotUnavailable 422: время не совпадает ни с одним слотом
func RespondSlotUnavailable(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnprocessableEntity, domain.KindSlotUnavailable, message)
}

// RespondInvalidTransition 422: недопустимая смена статуса
func RespondInvalidTransition(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnprocessableEntity, domain.KindInvalidTransition, message)
}

func RespondTooManyRequests(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusTooManyRequests, CodeTooManyRequests, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, domain.KindInternal, msgInternalError)
}

// StatusForError HTTP статус для вида ошибки
func StatusForError(err error) int {
	switch domain.ErrorKind(err) {
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindValidationFailed:
		return http.StatusBadRequest
	case domain.KindSlotUnavailable, domain.KindInvalidTransition:
		return http.StatusUnprocessableEntity
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// RespondDomainError отвечает статусом и кодом по виду ошибки.
// Для внутренних ошибок сообщение заменяется общим.
func RespondDomainError(w http.ResponseWriter, err error, message string) {
	kind := domain.ErrorKind(err)
	if kind == domain.KindInternal {
		RespondInternalError(w)
		return
	}
	RespondError(w, StatusForError(err), kind, message)
}

// DecodeJSON разбирает тело запроса, отклоняя неизвестные поля и лишние данные
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	if dec.More() {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}
