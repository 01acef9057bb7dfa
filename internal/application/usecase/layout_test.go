package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dockgrid/internal/application/usecase"
	"github.com/bnema/dockgrid/internal/domain/entity"
	"github.com/bnema/dockgrid/internal/domain/repository"
	repomocks "github.com/bnema/dockgrid/internal/domain/repository/mocks"
	"github.com/bnema/dockgrid/internal/logging"
)

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func sampleLayout() *entity.SerializedLayout {
	return &entity.SerializedLayout{
		Grid: entity.GridState{
			Root: entity.GridNodeState{
				Type: entity.NodeBranch,
				Size: 600,
				Children: []entity.GridNodeState{
					{Type: entity.NodeLeaf, Size: 400, Group: &entity.GroupState{ID: "1", Views: []entity.PanelID{"a", "b"}, ActiveView: "a"}},
					{Type: entity.NodeLeaf, Size: 400, Group: &entity.GroupState{ID: "2", Views: []entity.PanelID{"c"}}},
				},
			},
			Width:       800,
			Height:      600,
			Orientation: entity.OrientationHorizontal,
		},
		Panels: map[entity.PanelID]entity.PanelState{
			"a": {ID: "a", ContentComponent: "editor"},
			"b": {ID: "b", ContentComponent: "editor"},
			"c": {ID: "c", ContentComponent: "terminal"},
		},
		ActiveGroup: "1",
	}
}

func TestSaveLayoutUseCase_Execute_SavesRecord(t *testing.T) {
	ctx := testContext()
	repo := repomocks.NewMockLayoutRepository(t)

	var saved *entity.LayoutRecord
	repo.EXPECT().Save(mock.Anything, mock.AnythingOfType("*entity.LayoutRecord")).
		Run(func(_ context.Context, record *entity.LayoutRecord) { saved = record }).
		Return(nil)

	uc := usecase.NewSaveLayoutUseCase(repo)

	output, err := uc.Execute(ctx, usecase.SaveLayoutInput{Name: "  work  ", Layout: sampleLayout()})
	require.NoError(t, err)
	require.NotNil(t, saved)

	assert.Same(t, saved, output.Record)
	assert.Equal(t, "work", saved.Name)
	assert.Equal(t, entity.LayoutStateVersion, saved.Version)
	assert.Equal(t, 2, saved.GroupCount)
	assert.Equal(t, 3, saved.PanelCount)
}

func TestSaveLayoutUseCase_Execute_RejectsBadInput(t *testing.T) {
	broken := sampleLayout()
	broken.Grid.Root.Children[1].Group.Views = []entity.PanelID{"missing"}

	tests := []struct {
		name    string
		input   usecase.SaveLayoutInput
		wantErr error
	}{
		{name: "nil layout", input: usecase.SaveLayoutInput{Name: "x"}},
		{name: "blank name", input: usecase.SaveLayoutInput{Name: "  ", Layout: sampleLayout()}, wantErr: entity.ErrInvalidLayoutName},
		{name: "dangling panel", input: usecase.SaveLayoutInput{Name: "x", Layout: broken}, wantErr: entity.ErrMissingReference},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := repomocks.NewMockLayoutRepository(t)
			uc := usecase.NewSaveLayoutUseCase(repo)

			_, err := uc.Execute(testContext(), tt.input)

			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestSaveLayoutUseCase_Execute_WrapsRepositoryError(t *testing.T) {
	repo := repomocks.NewMockLayoutRepository(t)
	repo.EXPECT().Save(mock.Anything, mock.Anything).Return(errors.New("disk full"))

	uc := usecase.NewSaveLayoutUseCase(repo)

	_, err := uc.Execute(testContext(), usecase.SaveLayoutInput{Name: "x", Layout: sampleLayout()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save layout")
	assert.Contains(t, err.Error(), "disk full")
}

func TestLoadLayoutUseCase_Execute_ReturnsLayout(t *testing.T) {
	ctx := testContext()
	repo := repomocks.NewMockLayoutRepository(t)

	record, err := entity.NewLayoutRecord("work", sampleLayout())
	require.NoError(t, err)
	repo.EXPECT().Get(ctx, "work").Return(record, nil)

	uc := usecase.NewLoadLayoutUseCase(repo)

	output, err := uc.Execute(ctx, usecase.LoadLayoutInput{Name: "work"})
	require.NoError(t, err)
	assert.Same(t, record, output.Record)
	assert.Equal(t, entity.GroupID("1"), output.Layout.ActiveGroup)
}

func TestLoadLayoutUseCase_Execute_RequiresName(t *testing.T) {
	repo := repomocks.NewMockLayoutRepository(t)
	uc := usecase.NewLoadLayoutUseCase(repo)

	_, err := uc.Execute(testContext(), usecase.LoadLayoutInput{Name: " "})
	assert.ErrorIs(t, err, entity.ErrInvalidLayoutName)
}

func TestLoadLayoutUseCase_Execute_NotFound(t *testing.T) {
	ctx := testContext()

	t.Run("repository error", func(t *testing.T) {
		repo := repomocks.NewMockLayoutRepository(t)
		repo.EXPECT().Get(ctx, "gone").Return(nil, repository.ErrLayoutNotFound)

		_, err := usecase.NewLoadLayoutUseCase(repo).Execute(ctx, usecase.LoadLayoutInput{Name: "gone"})
		assert.ErrorIs(t, err, repository.ErrLayoutNotFound)
	})

	t.Run("nil record", func(t *testing.T) {
		repo := repomocks.NewMockLayoutRepository(t)
		repo.EXPECT().Get(ctx, "gone").Return(nil, nil)

		_, err := usecase.NewLoadLayoutUseCase(repo).Execute(ctx, usecase.LoadLayoutInput{Name: "gone"})
		assert.ErrorIs(t, err, repository.ErrLayoutNotFound)
	})
}

func TestLoadLayoutUseCase_Execute_VersionMismatch(t *testing.T) {
	ctx := testContext()
	repo := repomocks.NewMockLayoutRepository(t)

	record := &entity.LayoutRecord{
		Name:    "future",
		Version: entity.LayoutStateVersion + 1,
		Layout:  sampleLayout(),
		SavedAt: time.Now(),
	}
	repo.EXPECT().Get(ctx, "future").Return(record, nil)

	_, err := usecase.NewLoadLayoutUseCase(repo).Execute(ctx, usecase.LoadLayoutInput{Name: "future"})
	assert.ErrorIs(t, err, usecase.ErrVersionMismatch)
}

func TestLoadLayoutUseCase_Execute_RejectsCorruptLayout(t *testing.T) {
	ctx := testContext()
	repo := repomocks.NewMockLayoutRepository(t)

	layout := sampleLayout()
	layout.ActiveGroup = "nope"
	record := &entity.LayoutRecord{Name: "bad", Version: entity.LayoutStateVersion, Layout: layout}
	repo.EXPECT().Get(ctx, "bad").Return(record, nil)

	_, err := usecase.NewLoadLayoutUseCase(repo).Execute(ctx, usecase.LoadLayoutInput{Name: "bad"})
	assert.ErrorIs(t, err, entity.ErrMissingReference)
}

func TestListLayoutsUseCase_Execute(t *testing.T) {
	ctx := testContext()
	now := time.Now()
	summaries := []entity.LayoutSummary{
		{Name: "b", Version: 1, GroupCount: 2, PanelCount: 3, SavedAt: now},
		{Name: "a", Version: 1, GroupCount: 1, PanelCount: 1, SavedAt: now.Add(-time.Hour)},
	}

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{name: "no limit", limit: 0, want: 2},
		{name: "limit", limit: 1, want: 1},
		{name: "limit above count", limit: 10, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := repomocks.NewMockLayoutRepository(t)
			repo.EXPECT().List(ctx).Return(summaries, nil)

			output, err := usecase.NewListLayoutsUseCase(repo).Execute(ctx, tt.limit)

			require.NoError(t, err)
			assert.Len(t, output.Layouts, tt.want)
			assert.Equal(t, "b", output.Layouts[0].Name)
		})
	}
}

func TestListLayoutsUseCase_Execute_Error(t *testing.T) {
	ctx := testContext()
	repo := repomocks.NewMockLayoutRepository(t)
	repo.EXPECT().List(ctx).Return(nil, errors.New("boom"))

	_, err := usecase.NewListLayoutsUseCase(repo).Execute(ctx, 0)
	assert.ErrorContains(t, err, "list layouts")
}

func TestDeleteLayoutUseCase_Execute(t *testing.T) {
	ctx := testContext()

	t.Run("deletes trimmed name", func(t *testing.T) {
		repo := repomocks.NewMockLayoutRepository(t)
		repo.EXPECT().Delete(ctx, "work").Return(nil)

		err := usecase.NewDeleteLayoutUseCase(repo).Execute(ctx, " work ")
		assert.NoError(t, err)
	})

	t.Run("blank name", func(t *testing.T) {
		repo := repomocks.NewMockLayoutRepository(t)

		err := usecase.NewDeleteLayoutUseCase(repo).Execute(ctx, "")
		assert.ErrorIs(t, err, entity.ErrInvalidLayoutName)
	})

	t.Run("not found", func(t *testing.T) {
		repo := repomocks.NewMockLayoutRepository(t)
		repo.EXPECT().Delete(ctx, "gone").Return(repository.ErrLayoutNotFound)

		err := usecase.NewDeleteLayoutUseCase(repo).Execute(ctx, "gone")
		assert.ErrorIs(t, err, repository.ErrLayoutNotFound)
	})
}
