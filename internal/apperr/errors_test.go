package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/DjordjeVuckovic/sportsmap/internal/apperr"
)

func TestNewValidation(t *testing.T) {
	err := apperr.NewValidation("field is required")

	if err.Error() != "field is required" {
		t.Errorf("expected 'field is required', got %q", err.Error())
	}
	if err.Unwrap() != nil {
		t.Errorf("expected nil unwrap, got %v", err.Unwrap())
	}
}

func TestNewValidationWrap(t *testing.T) {
	inner := fmt.Errorf("parse failed")
	err := apperr.NewValidationWrap("invalid payload", inner)

	if err.Error() != "invalid payload: parse failed" {
		t.Errorf("expected 'invalid payload: parse failed', got %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("expected Unwrap to return inner error")
	}
}

func TestNewValidationViolations(t *testing.T) {
	err := apperr.NewValidationViolations("payload invalid", []string{"name missing", "sport missing"})

	if err.Error() != "payload invalid: name missing; sport missing" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestValidationError_SurvivesFmtWrapping(t *testing.T) {
	original := apperr.NewValidation("empty mapping")

	wrapped := fmt.Errorf("failed to import: %w", original)
	doubleWrapped := fmt.Errorf("batch error: %w", wrapped)

	var ve *apperr.ValidationError
	if !errors.As(doubleWrapped, &ve) {
		t.Fatal("errors.As should find ValidationError through double wrapping")
	}
	if ve.Message != "empty mapping" {
		t.Errorf("expected 'empty mapping', got %q", ve.Message)
	}
}

func TestNotFoundError_Message(t *testing.T) {
	err := apperr.NewNotFound("team", "Ghost United")

	if err.Error() != `team "Ghost United" not found` {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestTransientError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("connection refused")
	err := apperr.NewTransient("entity service request failed", inner)

	if !errors.Is(err, inner) {
		t.Error("expected Unwrap to return inner error")
	}

	var te *apperr.TransientError
	wrapped := fmt.Errorf("record failed: %w", err)
	if !errors.As(wrapped, &te) {
		t.Fatal("errors.As should find TransientError through wrapping")
	}
}

func TestErrorKinds_DoNotCrossMatch(t *testing.T) {
	auth := apperr.NewAuth("session expired")

	var de *apperr.DuplicateError
	if errors.As(auth, &de) {
		t.Fatal("errors.As should NOT find DuplicateError in an AuthError")
	}

	var nfe *apperr.NotFoundError
	if errors.As(fmt.Errorf("plain: %w", apperr.NewDuplicate("exists")), &nfe) {
		t.Fatal("errors.As should NOT find NotFoundError in a DuplicateError chain")
	}
}
