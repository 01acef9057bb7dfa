// Package repository defines persistence interfaces for domain entities.
package repository

import (
	"context"
	"errors"

	"github.com/bnema/dockgrid/internal/domain/entity"
)

//go:generate mockery --name=LayoutRepository --with-expecter --output=mocks --outpkg=mocks

// ErrLayoutNotFound is returned when no layout is stored under a name.
var ErrLayoutNotFound = errors.New("layout not found")

// LayoutRepository persists named layout snapshots.
type LayoutRepository interface {
	// Save inserts or replaces the record with the same name.
	Save(ctx context.Context, record *entity.LayoutRecord) error

	// Get returns ErrLayoutNotFound when name is unknown.
	Get(ctx context.Context, name string) (*entity.LayoutRecord, error)

	// List returns summaries, most recently saved first.
	List(ctx context.Context) ([]entity.LayoutSummary, error)

	// Delete returns ErrLayoutNotFound when name is unknown.
	Delete(ctx context.Context, name string) error
}
