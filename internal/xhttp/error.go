package xhttp

import (
	"net/http"
	"strings"
)

type errorBody struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func Error(w http.ResponseWriter, status int) {
	WriteErrorMessage(w, status, http.StatusText(status))
}

// WriteErrorMessage writes the JSON error envelope used by every endpoint.
func WriteErrorMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, errorBody{
		Error:   errorCode(status),
		Message: message,
	})
}

func WriteValidationError(w http.ResponseWriter, fields map[string]string) {
	WriteJSON(w, http.StatusUnprocessableEntity, errorBody{
		Error:   errorCode(http.StatusUnprocessableEntity),
		Message: "validation failed",
		Fields:  fields,
	})
}

func errorCode(status int) string {
	return strings.ReplaceAll(strings.ToLower(http.StatusText(status)), " ", "_")
}
