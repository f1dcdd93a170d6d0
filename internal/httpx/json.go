// Package httpx holds the JSON response helpers shared by middleware and handlers.
package httpx

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// MessageResponse is the body of every message-only response.
type MessageResponse struct {
	Message string `json:"message"`
}

// Common response messages.
const (
	MsgInternalError    = "Internal server error"
	MsgNotAuthenticated = "User is not authenticated"
	MsgAlreadyLoggedIn  = "User is already logged in"
	MsgForbidden        = "Forbidden"
	MsgTooManyRequests  = "Too many requests"
)

// WriteJSON writes v as JSON with the given status code.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	// Client disconnects cannot be recovered from here.
	_, _ = buf.WriteTo(w)
}

// WriteMessage writes {"message": msg} with the given status code.
func WriteMessage(w http.ResponseWriter, code int, msg string) {
	WriteJSON(w, code, MessageResponse{Message: msg})
}

// WriteInternalError writes the generic 500 response.
func WriteInternalError(w http.ResponseWriter) {
	WriteMessage(w, http.StatusInternalServerError, MsgInternalError)
}
