package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/dockgrid/internal/domain/entity"
	"github.com/bnema/dockgrid/internal/domain/repository"
	"github.com/bnema/dockgrid/internal/logging"
)

// SaveLayoutUseCase stores a serialized layout under a name.
type SaveLayoutUseCase struct {
	layoutRepo repository.LayoutRepository
}

// NewSaveLayoutUseCase creates a new SaveLayoutUseCase.
func NewSaveLayoutUseCase(layoutRepo repository.LayoutRepository) *SaveLayoutUseCase {
	return &SaveLayoutUseCase{layoutRepo: layoutRepo}
}

// SaveLayoutInput contains the parameters for saving a layout.
type SaveLayoutInput struct {
	Name   string
	Layout *entity.SerializedLayout
}

// SaveLayoutOutput contains the stored record.
type SaveLayoutOutput struct {
	Record *entity.LayoutRecord
}

// Execute validates the layout and saves it, replacing any layout with the
// same name.
func (uc *SaveLayoutUseCase) Execute(ctx context.Context, input SaveLayoutInput) (*SaveLayoutOutput, error) {
	log := logging.FromContext(ctx)

	if input.Layout == nil {
		return nil, fmt.Errorf("layout required")
	}
	if err := input.Layout.Validate(); err != nil {
		return nil, fmt.Errorf("validate layout: %w", err)
	}

	record, err := entity.NewLayoutRecord(input.Name, input.Layout)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("layout", record.Name).
		Int("group_count", record.GroupCount).
		Int("panel_count", record.PanelCount).
		Msg("saving layout")

	if err := uc.layoutRepo.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("save layout: %w", err)
	}

	log.Info().Str("layout", record.Name).Msg("layout saved")
	return &SaveLayoutOutput{Record: record}, nil
}
