package utils

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Detail string            `json:"detail"`
	Errors map[string]string `json:"errors,omitempty"`
}

// ResponseJSON writes data as JSON with the given status code
func ResponseJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(data)
}

// ------------- Success responses -------------

// returns 200 OK
func ResponseSuccess(w http.ResponseWriter, data any) {
	ResponseJSON(w, http.StatusOK, data)
}

// returns 201 Created
func ResponseCreated(w http.ResponseWriter, data any) {
	ResponseJSON(w, http.StatusCreated, data)
}

// returns 204 No Content
func ResponseNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// ------------- Error responses -------------

func ResponseError(w http.ResponseWriter, code int, detail string, errors map[string]string) {
	ResponseJSON(w, code, ErrorResponse{Detail: detail, Errors: errors})
}

// returns 400 Bad Request
func ResponseBadRequest(w http.ResponseWriter, detail string, errors map[string]string) {
	ResponseError(w, http.StatusBadRequest, detail, errors)
}

// returns 401 Unauthorized
func ResponseUnauthorized(w http.ResponseWriter, detail string) {
	ResponseError(w, http.StatusUnauthorized, detail, nil)
}

// returns 403 Forbidden
func ResponseForbidden(w http.ResponseWriter, detail string) {
	ResponseError(w, http.StatusForbidden, detail, nil)
}

// returns 404 Not Found
func ResponseNotFound(w http.ResponseWriter, detail string) {
	ResponseError(w, http.StatusNotFound, detail, nil)
}

// returns 429 Too Many Requests
func ResponseTooManyRequests(w http.ResponseWriter, detail string) {
	ResponseError(w, http.StatusTooManyRequests, detail, nil)
}

// returns 500 Internal Server Error
func ResponseInternalError(w http.ResponseWriter, detail string) {
	ResponseError(w, http.StatusInternalServerError, detail, nil)
}
