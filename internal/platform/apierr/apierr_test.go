package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusAndCodeMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"bad request", BadRequest(errors.New("nope")), http.StatusBadRequest, "bad_request"},
		{"missing field", MissingField("email"), http.StatusBadRequest, "bad_request"},
		{"unauthorized", Unauthorized(errors.New("no token")), http.StatusUnauthorized, "unauthorized"},
		{"forbidden", Forbidden(errors.New("students only")), http.StatusForbidden, "forbidden"},
		{"not found", NotFound(errors.New("gone")), http.StatusNotFound, "not_found"},
		{"conflict", Conflict(errors.New("dup")), http.StatusConflict, "conflict"},
		{"invalid credentials", InvalidCredentials(), http.StatusUnauthorized, "invalid_credentials"},
		{"invalid token", InvalidOrExpiredToken(), http.StatusBadRequest, "invalid_or_expired_token"},
		{"internal", Internal(errors.New("boom")), http.StatusInternalServerError, "internal"},
		{"plain error", errors.New("anything"), http.StatusInternalServerError, "internal"},
		{"nil", nil, http.StatusInternalServerError, "internal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusOf(tt.err); got != tt.wantStatus {
				t.Fatalf("StatusOf = %d, want %d", got, tt.wantStatus)
			}
			if got := CodeOf(tt.err); got != tt.wantCode {
				t.Fatalf("CodeOf = %q, want %q", got, tt.wantCode)
			}
		})
	}
}

func TestStatusOfWrappedError(t *testing.T) {
	err := fmt.Errorf("handler context: %w", NotFound(errors.New("missing row")))
	if got := StatusOf(err); got != http.StatusNotFound {
		t.Fatalf("StatusOf wrapped = %d, want 404", got)
	}
}

func TestMissingFieldNamesTheField(t *testing.T) {
	err := MissingField("vocabulary_id")
	if err.Error() != "missing required field: vocabulary_id" {
		t.Fatalf("message = %q", err.Error())
	}
}
