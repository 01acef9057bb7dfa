package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/dockgrid/internal/domain/entity"
	"github.com/bnema/dockgrid/internal/domain/repository"
	"github.com/bnema/dockgrid/internal/logging"
)

// ListLayoutsUseCase lists stored layouts.
type ListLayoutsUseCase struct {
	layoutRepo repository.LayoutRepository
}

// NewListLayoutsUseCase creates a new ListLayoutsUseCase.
func NewListLayoutsUseCase(layoutRepo repository.LayoutRepository) *ListLayoutsUseCase {
	return &ListLayoutsUseCase{layoutRepo: layoutRepo}
}

// ListLayoutsOutput contains the stored layouts, most recent first.
type ListLayoutsOutput struct {
	Layouts []entity.LayoutSummary
}

// Execute returns every stored layout. A positive limit truncates the list.
func (uc *ListLayoutsUseCase) Execute(ctx context.Context, limit int) (*ListLayoutsOutput, error) {
	summaries, err := uc.layoutRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list layouts: %w", err)
	}
	if limit > 0 && len(summaries) > limit {
		summaries = summaries[:limit]
	}

	logging.FromContext(ctx).Debug().Int("count", len(summaries)).Msg("layouts listed")
	return &ListLayoutsOutput{Layouts: summaries}, nil
}
