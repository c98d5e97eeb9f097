package errors

import (
	"fmt"
	"net/http"
	"testing"
)

func TestStatusCodeMapping(t *testing.T) {
	tests := []struct {
		err  *AppError
		want int
	}{
		{MethodNotAllowed(), http.StatusMethodNotAllowed},
		{InvalidSecret(), http.StatusUnauthorized},
		{MissingFields([]string{"issueKey"}), http.StatusBadRequest},
		{InvalidRequest("bad"), http.StatusBadRequest},
		{GitHubRequestFailed("details"), http.StatusBadGateway},
		{InternalError(fmt.Errorf("boom")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if tt.err.StatusCode != tt.want {
			t.Errorf("%s: status = %d, want %d", tt.err.Code, tt.err.StatusCode, tt.want)
		}
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := InternalError(cause)

	if err.Unwrap() != cause {
		t.Error("Unwrap did not return the cause")
	}
	if err.Error() == "" {
		t.Error("Error() is empty")
	}
}

func TestMissingFieldsCarriesRequired(t *testing.T) {
	err := MissingFields([]string{"issueKey", "summary", "repo"})
	if len(err.Required) != 3 {
		t.Errorf("required = %v", err.Required)
	}
	if err.Code != ErrCodeMissingFields {
		t.Errorf("code = %q", err.Code)
	}
}
