package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/GregMSThompson/storefront-banners/internal/errs"
	"github.com/GregMSThompson/storefront-banners/pkg/logger"
)

type ErrorResponse struct {
	Code       string   `json:"code"`
	Message    string   `json:"message"`
	Violations []string `json:"violations,omitempty"`
}

func (h *responseHandler) WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	h.write(w, r, status, ErrorResponse{Code: code, Message: message})
}

func (h *responseHandler) write(w http.ResponseWriter, r *http.Request, status int, body ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		// Use context logger if encoding fails
		log := logger.FromContext(r.Context())
		log.Error("failed to encode error response", "error", err, "status", status, "code", body.Code)
	}
}

func (h *responseHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	var (
		nfe *errs.NotFoundError
		aee *errs.AlreadyExistsError
		ve  *errs.ValidationError
		de  *errs.DatabaseError
	)
	switch {
	case errors.As(err, &nfe):
		log.Warn("resource not found", "error", nfe.Message)
		h.WriteError(w, r, http.StatusNotFound, "not_found", nfe.Message)

	case errors.As(err, &aee):
		log.Warn("resource already exists", "error", aee.Message)
		h.WriteError(w, r, http.StatusConflict, "already_exists", aee.Message)

	case errors.As(err, &ve):
		log.Warn("validation failed", "error", ve.Message, "violations", len(ve.Violations))
		h.write(w, r, http.StatusBadRequest, ErrorResponse{
			Code:       "invalid_input",
			Message:    ve.Message,
			Violations: ve.Violations,
		})

	case errors.As(err, &de):
		log.Error("database error",
			"operation", de.Operation,
			"error", de.Message,
			"cause", de.Err)
		h.WriteError(w, r, http.StatusInternalServerError, "internal_error",
			"An error occurred")

	default:
		log.Error("unexpected error",
			"error", err,
			"type", fmt.Sprintf("%T", err))
		h.WriteError(w, r, http.StatusInternalServerError, "internal_error",
			"An unexpected error occurred")
	}
}
