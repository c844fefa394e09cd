package utils

import (
	"net/http"

	"github.com/goccy/go-json"
)

func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// RESTError is the error envelope of the shipping API.
type RESTError struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Data    RESTErrorData `json:"data"`
}

type RESTErrorData struct {
	Status int `json:"status"`
}

func WriteRESTError(w http.ResponseWriter, status int, code, message string) {
	WriteJSON(w, status, RESTError{
		Code:    code,
		Message: message,
		Data:    RESTErrorData{Status: status},
	})
}
