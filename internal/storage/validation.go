package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goldpath/spectra/internal/model"
	"github.com/goldpath/spectra/internal/validate"
)

// Validation errors.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = errors.New("string parameter cannot be empty")
	ErrNilParameter     = errors.New("parameter cannot be nil")
	ErrSignatureInvalid = errors.New("signature failed validation")
	ErrNotFound         = errors.New("signature not found")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateSignature runs the structural check and folds every violation into
// one error so the save flow surfaces the full list, not just the first.
func validateSignature(sig *model.Signature) error {
	if sig == nil {
		return fmt.Errorf("%w: signature", ErrNilParameter)
	}
	result := validate.Check(sig)
	if result.Valid {
		return nil
	}
	msgs := make([]string, len(result.Errors))
	for i, issue := range result.Errors {
		msgs[i] = issue.String()
	}
	return fmt.Errorf("%w: %s", ErrSignatureInvalid, strings.Join(msgs, "; "))
}
