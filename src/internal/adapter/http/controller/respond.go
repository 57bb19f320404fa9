package controller

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/api-sage/ledger-engine/src/internal/commons"
	"github.com/api-sage/ledger-engine/src/internal/domain"
	"github.com/api-sage/ledger-engine/src/internal/logger"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func statusForError(err error) int {
	switch domain.KindOf(err) {
	case domain.ErrorKindValidation:
		return http.StatusBadRequest
	case domain.ErrorKindNotFound:
		return http.StatusNotFound
	case domain.ErrorKindFrozenAccount:
		return http.StatusLocked
	case domain.ErrorKindDailyLimitExceeded:
		return http.StatusUnprocessableEntity
	case domain.ErrorKindDuplicate:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func messageForError(err error) string {
	switch domain.KindOf(err) {
	case domain.ErrorKindValidation:
		return "validation failed"
	case domain.ErrorKindNotFound:
		return "account not found"
	case domain.ErrorKindFrozenAccount:
		return "account is frozen"
	case domain.ErrorKindDailyLimitExceeded:
		return "daily limit exceeded"
	default:
		return "request failed"
	}
}

func respondBadRequest[T any](w http.ResponseWriter, r *http.Request, message string, err error, start time.Time) {
	logError(r, err, logger.Fields{"message": message})
	response := commons.ErrorResponse[T](message, err.Error())
	writeJSON(w, http.StatusBadRequest, response)
	logResponse(r, http.StatusBadRequest, response, start)
}

func respondFailure[T any](w http.ResponseWriter, r *http.Request, err error, start time.Time) {
	status := statusForError(err)
	response := commons.FailureResponse[T](messageForError(err), err)
	if status == http.StatusInternalServerError {
		response = commons.ErrorResponse[T]("request failed", "internal error")
	}
	logError(r, err, logger.Fields{"status": status})
	writeJSON(w, status, response)
	logResponse(r, status, response, start)
}

func respondSuccess[T any](w http.ResponseWriter, r *http.Request, status int, message string, data T, start time.Time) {
	response := commons.SuccessResponse(message, data)
	writeJSON(w, status, response)
	logResponse(r, status, response, start)
}

func failureWithData[T any](err error, data T) commons.Response[T] {
	response := commons.FailureResponse[T](messageForError(err), err)
	response.Data = &data
	return response
}
