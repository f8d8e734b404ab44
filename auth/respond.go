package auth

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/user/blogger-go/apperror"
)

// WriteJSON serializes data to JSON and writes it with the given status.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, `{"data":null,"message":"failed to encode response"}`, http.StatusInternalServerError)
		}
	}
}

// WriteError is the single terminal error-formatting stage. Every handler
// failure funnels through here: the error is classified via apperror
// (unclassified errors default to 500), logged, and emitted as the uniform
// {data, message} envelope. No partial response is written before this.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperror.FromError(err)
	if !ok {
		appErr = apperror.NewInternalError("an unexpected error occurred", err)
	}

	if appErr.StatusCode() >= http.StatusInternalServerError {
		log.Printf("error handling %s %s: %v", r.Method, r.URL.Path, appErr)
	}

	WriteJSON(w, appErr.StatusCode(), appErr.ToResponse())
}
