// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/goldpath/spectra/internal/model"
)

// SignatureFilter defines filtering options for library queries.
type SignatureFilter struct {
	Category model.Category
	Limit    int
	Offset   int
}

// Store defines the contract for the signature library persistence layer.
// Implementations must refuse to persist records that fail structural
// validation, surfacing the full error list.
type Store interface {
	SaveSignature(ctx context.Context, sig *model.Signature) error
	GetSignature(ctx context.Context, id string) (*model.Signature, error)
	ListSignatures(ctx context.Context, filter SignatureFilter) ([]*model.Signature, error)
	DeleteSignature(ctx context.Context, id string) error
	CountByCategory(ctx context.Context) (map[model.Category]int, error)

	Migrate(ctx context.Context) error
	Close() error
}
