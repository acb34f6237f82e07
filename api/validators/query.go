package validators

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	pkgerrors "github.com/kosherspect/kosherspect-backend/pkg/errors"
)

// QueryString returns a trimmed query value; empty means absent.
func QueryString(r *http.Request, key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}

// QueryStringPtr returns nil for absent/blank query values.
func QueryStringPtr(r *http.Request, key string) *string {
	value := QueryString(r, key)
	if value == "" {
		return nil
	}
	return &value
}

// RequiredQuery fails with a validation error when the key is missing.
func RequiredQuery(r *http.Request, key string) (string, error) {
	value := QueryString(r, key)
	if value == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "query parameter is required").
			WithDetails(map[string]any{"field": key})
	}
	return value, nil
}

// PathUUID parses a UUID route parameter.
func PathUUID(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+field)
	}
	return id, nil
}
