package json

import (
	"encoding/json"
	"net/http"
)

// Envelope is the uniform response shape consumed by the dashboard. Soft
// failures carry success=false with a 2xx status; hard failures use the
// HTTP status as the primary signal.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

// WriteData writes a successful envelope carrying a data payload.
func WriteData(w http.ResponseWriter, status int, data any) {
	write(w, status, Envelope{Success: true, Data: data})
}

// WriteMessage writes a successful envelope carrying only a message.
func WriteMessage(w http.ResponseWriter, status int, message string) {
	write(w, status, Envelope{Success: true, Message: message})
}

// WriteFailure writes a failed envelope with a stable code and message.
func WriteFailure(w http.ResponseWriter, status int, code, message string) {
	write(w, status, Envelope{Success: false, Code: code, Message: message})
}

func write(w http.ResponseWriter, status int, response Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		// best-effort fallback; don't override status for the caller
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}
