package styles_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dockgrid/internal/cli/styles"
	"github.com/bnema/dockgrid/internal/domain/entity"
	"github.com/bnema/dockgrid/internal/infrastructure/layoutfile"
	"github.com/bnema/dockgrid/internal/ui/coordinator"
)

func sampleLayout() *entity.SerializedLayout {
	hidden := false
	return &entity.SerializedLayout{
		Grid: entity.GridState{
			Root: entity.GridNodeState{
				Type: entity.NodeBranch,
				Size: 600,
				Children: []entity.GridNodeState{
					{Type: entity.NodeLeaf, Size: 300, Group: &entity.GroupState{ID: "1", Views: []entity.PanelID{"a"}, ActiveView: "a"}},
					{
						Type: entity.NodeBranch,
						Size: 500,
						Children: []entity.GridNodeState{
							{Type: entity.NodeLeaf, Size: 300, Group: &entity.GroupState{ID: "2", Views: []entity.PanelID{"b"}, Locked: entity.LockLocked}},
							{Type: entity.NodeLeaf, Size: 300, Visible: &hidden, Group: &entity.GroupState{ID: "3", Views: []entity.PanelID{}}},
						},
					},
				},
			},
			Width:       800,
			Height:      600,
			Orientation: entity.OrientationHorizontal,
		},
		Panels: map[entity.PanelID]entity.PanelState{
			"a": {ID: "a", ContentComponent: "editor", Title: "main.go"},
			"b": {ID: "b", ContentComponent: "terminal"},
			"c": {ID: "c", ContentComponent: "preview"},
		},
		ActiveGroup: "1",
		FloatingGroups: []entity.FloatingGroupState{
			{Data: entity.GroupState{ID: "4", Views: []entity.PanelID{"c"}}, Position: entity.Box{Left: 10, Top: 20, Width: 300, Height: 200}},
		},
	}
}

func TestLayoutsRenderer_RenderList(t *testing.T) {
	r := styles.NewLayoutsRenderer(styles.NewTheme())

	assert.Contains(t, r.RenderList(nil), "No saved layouts found.")

	out := r.RenderList([]entity.LayoutSummary{
		{Name: "coding", Version: entity.LayoutStateVersion, GroupCount: 3, PanelCount: 5, SavedAt: time.Now()},
		{Name: "future", Version: entity.LayoutStateVersion + 1, GroupCount: 1, PanelCount: 1, SavedAt: time.Now()},
	})
	assert.Contains(t, out, "Layouts")
	assert.Contains(t, out, "coding")
	assert.Contains(t, out, "just now")
	assert.Contains(t, out, "future")
	assert.Contains(t, out, "v2")
}

func TestLayoutsRenderer_RenderTree(t *testing.T) {
	r := styles.NewLayoutsRenderer(styles.NewTheme())

	out := r.RenderTree(sampleLayout(), "  ")
	assert.Contains(t, out, "800x600")
	assert.Contains(t, out, "horizontal")
	assert.Contains(t, out, "vertical")
	assert.Contains(t, out, "group 1")
	assert.Contains(t, out, "group 3")
	assert.Contains(t, out, "main.go")
	assert.Contains(t, out, "(terminal)")
	assert.Contains(t, out, "at 10,20 300x200")
	assert.Contains(t, out, styles.IconLock)
	assert.Contains(t, out, styles.IconHidden)

	assert.Contains(t, r.RenderTree(nil, ""), "No layout data")
}

func TestLayoutsRenderer_RenderValidation(t *testing.T) {
	r := styles.NewLayoutsRenderer(styles.NewTheme())

	out := r.RenderValidation([]layoutfile.Result{
		{Path: "good.json", Groups: 2, Panels: 1},
		{Path: "bad.json", Err: errors.New("grid root must be a branch")},
	})
	assert.Contains(t, out, "good.json")
	assert.Contains(t, out, "2 groups, 1 panel")
	assert.Contains(t, out, "grid root must be a branch")
	assert.Contains(t, out, "1 of 2 invalid")

	out = r.RenderValidation([]layoutfile.Result{{Path: "good.json", Groups: 1, Panels: 1}})
	assert.Contains(t, out, "1 valid")
}

func TestLayoutsRenderer_Confirmations(t *testing.T) {
	r := styles.NewLayoutsRenderer(styles.NewTheme())

	record, err := entity.NewLayoutRecord("coding", sampleLayout())
	require.NoError(t, err)
	assert.Contains(t, r.RenderSaved(record), "coding")
	assert.Contains(t, r.RenderSaved(record), "4 groups")
	assert.Contains(t, r.RenderDeleted("coding"), "deleted")
	assert.Contains(t, r.RenderExported("coding", "/tmp/coding.json"), "/tmp/coding.json")
	assert.Contains(t, r.RenderError(errors.New("boom")), "boom")
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "1 group", styles.Plural(1, "group"))
	assert.Equal(t, "0 panels", styles.Plural(0, "panel"))
	assert.Equal(t, "3 panels", styles.Plural(3, "panel"))
}

func TestLayoutsRenderer_RenderGeometry(t *testing.T) {
	r := styles.NewLayoutsRenderer(styles.NewTheme())

	out := r.RenderGeometry([]coordinator.GroupGeometry{
		{Group: "1", Location: entity.LocationGrid, Box: entity.Box{Width: 400, Height: 600}, Panels: 2, Visible: true},
		{Group: "2", Location: entity.LocationGrid, Box: entity.Box{Left: 400, Height: 600}, Panels: 1},
		{Group: "3", Location: entity.LocationFloating, Box: entity.Box{Left: 10, Top: 20, Width: 200, Height: 100}, Panels: 1, Visible: true},
	}, 800, 600)

	assert.Contains(t, out, "800x600")
	assert.Contains(t, out, "group 1")
	assert.Contains(t, out, "2 panels")
	assert.Contains(t, out, styles.IconHidden)
	assert.Contains(t, out, styles.IconFloating)
	assert.Contains(t, out, "200x100")
}
