package headless

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dockgrid/internal/domain/entity"
)

func TestComponents_CountsLiveRenderers(t *testing.T) {
	c := NewComponents()
	panel := entity.PanelState{ID: "a", ContentComponent: "editor"}

	content, err := c.CreateContent("editor", panel)
	require.NoError(t, err)
	tab, err := c.CreateTab("tab", panel)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Live())

	content.Dispose()
	content.Dispose()
	assert.Equal(t, 1, c.Live(), "second dispose is a no-op")

	tab.Dispose()
	assert.Equal(t, 0, c.Live())
	assert.Equal(t, 2, c.Created())
}

func TestComponents_RejectsEmptyName(t *testing.T) {
	c := NewComponents()

	_, err := c.CreateContent("", entity.PanelState{ID: "a"})

	require.ErrorIs(t, err, entity.ErrUnknownComponent)
	assert.Zero(t, c.Created())
}
