package apperr

import (
	"errors"
	"net/http"
	"testing"
)

func TestHTTPError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{Validation("op", "bad"), http.StatusBadRequest},
		{NotFound("op", "patient", 1), http.StatusNotFound},
		{Storage("op", errors.New("locked")), http.StatusInternalServerError},
		{Document("op", errors.New("font")), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := HTTPError(tt.err).Code; got != tt.want {
			t.Errorf("HTTPError(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestHTTPError_KeepsKind(t *testing.T) {
	he := HTTPError(Validation("op", "bad"))
	if KindOf(he) != KindValidation {
		t.Errorf("expected validation kind through HTTPError, got %s", KindOf(he))
	}
}
