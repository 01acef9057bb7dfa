package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/bnema/dockgrid/internal/application/port/mocks"
	"github.com/bnema/dockgrid/internal/application/usecase"
	"github.com/bnema/dockgrid/internal/cli"
	"github.com/bnema/dockgrid/internal/domain/entity"
	repomocks "github.com/bnema/dockgrid/internal/domain/repository/mocks"
	"github.com/bnema/dockgrid/internal/logging"
)

func withSaveFromClipboard(t *testing.T, v bool) {
	t.Helper()
	prev := saveFromClip
	saveFromClip = v
	t.Cleanup(func() { saveFromClip = prev })
}

func TestReadSaveInput_FromClipboard(t *testing.T) {
	ctx := logging.WithContext(context.Background(), zerolog.Nop())
	data, err := json.Marshal(twoGroupLayout())
	require.NoError(t, err)

	clip := mocks.NewMockClipboard(gomock.NewController(t))
	clip.EXPECT().ReadText(gomock.Any()).Return(string(data), nil)
	withSaveFromClipboard(t, true)

	layout, err := readSaveInput(ctx, &cli.App{Clipboard: clip}, []string{"work"})

	require.NoError(t, err)
	assert.Equal(t, 2, layout.GroupCount())
	assert.Equal(t, 2, layout.PanelCount())
}

func TestReadSaveInput_Errors(t *testing.T) {
	ctx := logging.WithContext(context.Background(), zerolog.Nop())

	t.Run("file and clipboard", func(t *testing.T) {
		withSaveFromClipboard(t, true)
		_, err := readSaveInput(ctx, &cli.App{}, []string{"work", "work.json"})
		assert.Error(t, err)
	})

	t.Run("no input", func(t *testing.T) {
		withSaveFromClipboard(t, false)
		_, err := readSaveInput(ctx, &cli.App{}, []string{"work"})
		assert.ErrorContains(t, err, "missing layout file")
	})

	t.Run("clipboard holds no layout", func(t *testing.T) {
		clip := mocks.NewMockClipboard(gomock.NewController(t))
		clip.EXPECT().ReadText(gomock.Any()).Return("hello", nil)
		withSaveFromClipboard(t, true)

		_, err := readSaveInput(ctx, &cli.App{Clipboard: clip}, []string{"work"})

		assert.ErrorContains(t, err, "clipboard")
	})

	t.Run("clipboard tool missing", func(t *testing.T) {
		clip := mocks.NewMockClipboard(gomock.NewController(t))
		readErr := errors.New("no clipboard tool available")
		clip.EXPECT().ReadText(gomock.Any()).Return("", readErr)
		withSaveFromClipboard(t, true)

		_, err := readSaveInput(ctx, &cli.App{Clipboard: clip}, []string{"work"})

		assert.ErrorIs(t, err, readErr)
	})
}

func TestCopyLayout(t *testing.T) {
	ctx := logging.WithContext(context.Background(), zerolog.Nop())
	record, err := entity.NewLayoutRecord("work", twoGroupLayout())
	require.NoError(t, err)

	repo := repomocks.NewMockLayoutRepository(t)
	repo.EXPECT().Get(mock.Anything, "work").Return(record, nil).Once()

	var copied string
	clip := mocks.NewMockClipboard(gomock.NewController(t))
	clip.EXPECT().WriteText(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, text string) error {
			copied = text
			return nil
		})

	a := &cli.App{Clipboard: clip, LoadLayoutUC: usecase.NewLoadLayoutUseCase(repo)}
	require.NoError(t, copyLayout(ctx, a, "work"))

	parsed, err := entity.ParseLayout([]byte(copied))
	require.NoError(t, err)
	assert.Equal(t, entity.GroupID("1"), parsed.ActiveGroup)
}
