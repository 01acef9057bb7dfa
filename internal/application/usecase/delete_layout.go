package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/dockgrid/internal/domain/entity"
	"github.com/bnema/dockgrid/internal/domain/repository"
	"github.com/bnema/dockgrid/internal/logging"
)

// DeleteLayoutUseCase removes a stored layout.
type DeleteLayoutUseCase struct {
	layoutRepo repository.LayoutRepository
}

// NewDeleteLayoutUseCase creates a new DeleteLayoutUseCase.
func NewDeleteLayoutUseCase(layoutRepo repository.LayoutRepository) *DeleteLayoutUseCase {
	return &DeleteLayoutUseCase{layoutRepo: layoutRepo}
}

// Execute deletes the layout stored under name.
func (uc *DeleteLayoutUseCase) Execute(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return entity.ErrInvalidLayoutName
	}

	if err := uc.layoutRepo.Delete(ctx, name); err != nil {
		return fmt.Errorf("delete layout %q: %w", name, err)
	}

	logging.FromContext(ctx).Info().Str("layout", name).Msg("layout deleted")
	return nil
}
