package common

import (
	"encoding/json"
	"log"
	"net/http"

	"socialnet/api"
)

func WriteJSON(w http.ResponseWriter, status int, resp api.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func WriteData(w http.ResponseWriter, status int, message string, data interface{}) {
	WriteJSON(w, status, api.Response{Success: true, Message: message, Data: data})
}

// WriteError funnels an error through Translate and renders the envelope.
// Unexpected errors are logged server-side; the raw message only leaks to the
// client in development mode.
func WriteError(w http.ResponseWriter, err error, development bool) {
	apiErr := Translate(err)
	if apiErr.Code == CodeInternal {
		log.Printf("internal error: %v", err)
	}

	resp := api.Response{
		Success: false,
		Message: apiErr.Message,
		Errors:  apiErr.Fields,
		Error:   apiErr.Code,
	}
	if apiErr.Code == CodeInternal && development {
		resp.Message = err.Error()
	}
	WriteJSON(w, apiErr.Status, resp)
}

// DecodeBody reads a JSON request body into dst, mapping malformed input to a
// validation error.
func DecodeBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return NewValidationMessage("Invalid request body")
	}
	return nil
}
