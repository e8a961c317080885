// File: internal/handlers/responses.go
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/iyunix/chat-api/internal/dtos"
	"github.com/iyunix/chat-api/internal/validation"
)

const maxBodyBytes = 1 << 20

// writeJSON is a helper for sending JSON responses.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError is a helper for sending JSON error responses.
func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, dtos.ErrorResponseDTO{Detail: message})
}

func writeValidationError(w http.ResponseWriter, verr *validation.Error) {
	details := verr.Details
	if details == nil {
		details = []validation.Detail{}
	}
	writeJSON(w, http.StatusUnprocessableEntity, dtos.ErrorResponseDTO{Detail: details})
}

// decodeJSONBody decodes a JSON object into dst and runs its validate tags.
// Failures are reported the same way as field validation errors.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) *validation.Error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return validation.MalformedBody("json_invalid", "JSON decode error: "+err.Error())
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return validation.NewError(validation.ErrInvalidRequest, validation.Detail{
			Type: "missing",
			Loc:  []string{"body"},
			Msg:  "Field required",
		})
	}

	if err := json.Unmarshal(body, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			if typeErr.Field == "" {
				return validation.MalformedBody("model_attributes_type",
					"Input should be a valid dictionary or object to extract fields from")
			}
			return validation.NewError(validation.ErrInvalidRequest, validation.Detail{
				Type: "string_type",
				Loc:  []string{"body", typeErr.Field},
				Msg:  "Input should be a valid string",
			})
		}
		return validation.MalformedBody("json_invalid", "JSON decode error")
	}

	if err := validation.Struct(dst); err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			return verr
		}
		return validation.MalformedBody("value_error", err.Error())
	}
	return nil
}
