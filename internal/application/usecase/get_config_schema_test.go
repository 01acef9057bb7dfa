package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/bnema/dockgrid/internal/application/port/mocks"
	"github.com/bnema/dockgrid/internal/application/usecase"
	"github.com/bnema/dockgrid/internal/domain/entity"
)

func TestGetConfigSchemaUseCase_Execute(t *testing.T) {
	keys := []entity.ConfigKeyInfo{
		{
			Key:         "layout.orientation",
			Type:        "string",
			Default:     "horizontal",
			Description: "Orientation of the grid root",
			Values:      []string{"horizontal", "vertical"},
			Section:     "Layout",
		},
		{
			Key:         "layout.drop_threshold_percent",
			Type:        "int",
			Default:     "20",
			Description: "Edge band that turns a drop into a split",
			Range:       "0-50",
			Section:     "Layout",
		},
		{
			Key:         "logging.level",
			Type:        "string",
			Default:     "info",
			Description: "Log verbosity level",
			Values:      []string{"trace", "debug", "info", "warn", "error"},
			Section:     "Logging",
		},
	}

	t.Run("returns schema keys from provider", func(t *testing.T) {
		// Arrange
		ctrl := gomock.NewController(t)
		provider := mocks.NewMockConfigSchemaProvider(ctrl)
		provider.EXPECT().GetSchema().Return(keys)

		uc := usecase.NewGetConfigSchemaUseCase(provider)

		// Act
		result, err := uc.Execute(context.Background(), usecase.GetConfigSchemaInput{})

		// Assert
		require.NoError(t, err)
		require.Len(t, result.Keys, 3)
		assert.Equal(t, "layout.orientation", result.Keys[0].Key)
		assert.Equal(t, "0-50", result.Keys[1].Range)
		assert.Empty(t, result.Keys[1].Values)
	})

	t.Run("filters by section", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		provider := mocks.NewMockConfigSchemaProvider(ctrl)
		provider.EXPECT().GetSchema().Return(keys)

		result, err := usecase.NewGetConfigSchemaUseCase(provider).
			Execute(context.Background(), usecase.GetConfigSchemaInput{Section: "logging"})

		require.NoError(t, err)
		require.Len(t, result.Keys, 1)
		assert.Equal(t, "logging.level", result.Keys[0].Key)
	})

	t.Run("returns empty slice when no keys", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		provider := mocks.NewMockConfigSchemaProvider(ctrl)
		provider.EXPECT().GetSchema().Return([]entity.ConfigKeyInfo{})

		result, err := usecase.NewGetConfigSchemaUseCase(provider).
			Execute(context.Background(), usecase.GetConfigSchemaInput{})

		require.NoError(t, err)
		assert.Empty(t, result.Keys)
	})
}
