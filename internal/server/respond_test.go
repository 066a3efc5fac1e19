package server

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	apperrors "github.com/inkmatch/inkmatch-server/pkg/errors"
)

func TestWriteAppErrorMapsTypedErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	writeAppError(rec, apperrors.NewValidationError("image field is required", "image", nil))

	if rec.Code != 400 {
		t.Errorf("status = %d, want 400", rec.Code)
	}

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body.Code != apperrors.CodeValidation {
		t.Errorf("code = %q, want %q", body.Code, apperrors.CodeValidation)
	}
}

func TestWriteAppErrorWrappedDownstream(t *testing.T) {
	wrapped := errors.Join(
		apperrors.NewDownstreamError("storage returned 503", "storage", 503, nil),
	)

	rec := httptest.NewRecorder()
	writeAppError(rec, wrapped)

	if rec.Code != 503 {
		t.Errorf("status = %d, want 503 from the wrapped downstream error", rec.Code)
	}
}

func TestWriteAppErrorUnknownError(t *testing.T) {
	rec := httptest.NewRecorder()
	writeAppError(rec, errors.New("something else"))

	if rec.Code != 500 {
		t.Errorf("status = %d, want opaque 500", rec.Code)
	}
}
