package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/dockgrid/internal/domain/entity"
	"github.com/bnema/dockgrid/internal/domain/repository"
	"github.com/bnema/dockgrid/internal/logging"
)

// ErrVersionMismatch is returned when a stored layout is newer than this build understands.
var ErrVersionMismatch = errors.New("layout state version mismatch")

// LoadLayoutUseCase fetches a stored layout ready to be applied.
type LoadLayoutUseCase struct {
	layoutRepo repository.LayoutRepository
}

// NewLoadLayoutUseCase creates a new LoadLayoutUseCase.
func NewLoadLayoutUseCase(layoutRepo repository.LayoutRepository) *LoadLayoutUseCase {
	return &LoadLayoutUseCase{layoutRepo: layoutRepo}
}

// LoadLayoutInput contains the parameters for loading a layout.
type LoadLayoutInput struct {
	Name string
}

// LoadLayoutOutput contains the validated layout.
type LoadLayoutOutput struct {
	Record *entity.LayoutRecord
	Layout *entity.SerializedLayout
}

// Execute loads and validates a stored layout.
func (uc *LoadLayoutUseCase) Execute(ctx context.Context, input LoadLayoutInput) (*LoadLayoutOutput, error) {
	log := logging.FromContext(ctx)

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, entity.ErrInvalidLayoutName
	}

	record, err := uc.layoutRepo.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("get layout %q: %w", name, err)
	}
	if record == nil || record.Layout == nil {
		return nil, fmt.Errorf("get layout %q: %w", name, repository.ErrLayoutNotFound)
	}

	if record.Version > entity.LayoutStateVersion {
		log.Warn().
			Int("state_version", record.Version).
			Int("current_version", entity.LayoutStateVersion).
			Msg("layout state version is newer than current version")
		return nil, ErrVersionMismatch
	}

	if err := record.Layout.Validate(); err != nil {
		return nil, fmt.Errorf("stored layout %q: %w", name, err)
	}

	log.Info().
		Str("layout", name).
		Int("group_count", record.Layout.GroupCount()).
		Int("panel_count", record.Layout.PanelCount()).
		Msg("layout loaded")

	return &LoadLayoutOutput{Record: record, Layout: record.Layout}, nil
}
