package errors

import (
	"encoding/json"
	"net/http"
)

// WriteError renders err as a JSON ErrorResponse with the AppError status.
func WriteError(w http.ResponseWriter, err error) error {
	appErr := AsAppError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode())

	message := appErr.Message
	if appErr.Code == CodeInternal {
		message = "Internal server error"
	}

	return json.NewEncoder(w).Encode(ErrorResponse{
		Code:    appErr.Code,
		Message: message,
		Details: appErr.Details,
	})
}
