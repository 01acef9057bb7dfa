package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/dockgrid/internal/application/usecase"
	"github.com/bnema/dockgrid/internal/domain/entity"
)

func intPtr(v int) *int { return &v }

func TestIsSelfDrop(t *testing.T) {
	tests := []struct {
		name   string
		src    usecase.DragSource
		target usecase.DropTarget
		want   bool
	}{
		{
			name:   "whole group onto itself",
			src:    usecase.DragSource{Group: "1", PanelCount: 3},
			target: usecase.DropTarget{Group: "1"},
			want:   true,
		},
		{
			name:   "only panel onto its own group",
			src:    usecase.DragSource{Group: "1", Panel: "a", PanelCount: 1},
			target: usecase.DropTarget{Group: "1"},
			want:   true,
		},
		{
			name:   "one of several panels onto its own group",
			src:    usecase.DragSource{Group: "1", Panel: "a", PanelCount: 2},
			target: usecase.DropTarget{Group: "1"},
			want:   false,
		},
		{
			name:   "other group",
			src:    usecase.DragSource{Group: "1", PanelCount: 1},
			target: usecase.DropTarget{Group: "2"},
			want:   false,
		},
		{
			name:   "external drag without group",
			src:    usecase.DragSource{},
			target: usecase.DropTarget{},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, usecase.IsSelfDrop(tt.src, tt.target))
		})
	}
}

func TestResolveDrop(t *testing.T) {
	panel := usecase.DragSource{Group: "1", Panel: "a", PanelCount: 2}
	single := usecase.DragSource{Group: "1", Panel: "a", PanelCount: 1}
	group := usecase.DragSource{Group: "1", PanelCount: 2}

	tests := []struct {
		name         string
		src          usecase.DragSource
		target       usecase.DropTarget
		wantKind     usecase.DropKind
		wantPosition entity.Position
		wantIndex    *int
	}{
		{
			name:         "panel onto another group's center",
			src:          panel,
			target:       usecase.DropTarget{Group: "2", Position: entity.PositionCenter, Index: intPtr(1)},
			wantKind:     usecase.DropReparent,
			wantPosition: entity.PositionCenter,
			wantIndex:    intPtr(1),
		},
		{
			name:         "empty position means center",
			src:          panel,
			target:       usecase.DropTarget{Group: "2"},
			wantKind:     usecase.DropReparent,
			wantPosition: entity.PositionCenter,
		},
		{
			name:         "panel onto an edge splits",
			src:          panel,
			target:       usecase.DropTarget{Group: "2", Location: entity.LocationGrid, Position: entity.PositionLeft},
			wantKind:     usecase.DropSplit,
			wantPosition: entity.PositionLeft,
		},
		{
			name:         "panel onto its own group's edge splits",
			src:          panel,
			target:       usecase.DropTarget{Group: "1", Location: entity.LocationGrid, Position: entity.PositionBottom},
			wantKind:     usecase.DropSplit,
			wantPosition: entity.PositionBottom,
		},
		{
			name:         "reorder inside own group",
			src:          panel,
			target:       usecase.DropTarget{Group: "1", Position: entity.PositionCenter, Index: intPtr(0)},
			wantKind:     usecase.DropReparent,
			wantPosition: entity.PositionCenter,
			wantIndex:    intPtr(0),
		},
		{
			name:     "only panel onto own edge is a no-op",
			src:      single,
			target:   usecase.DropTarget{Group: "1", Location: entity.LocationGrid, Position: entity.PositionRight},
			wantKind: usecase.DropNoop,
		},
		{
			name:     "only panel onto own center is a no-op",
			src:      single,
			target:   usecase.DropTarget{Group: "1", Position: entity.PositionCenter},
			wantKind: usecase.DropNoop,
		},
		{
			name:         "group onto another group's edge",
			src:          group,
			target:       usecase.DropTarget{Group: "2", Location: entity.LocationGrid, Position: entity.PositionTop},
			wantKind:     usecase.DropMoveGroup,
			wantPosition: entity.PositionTop,
		},
		{
			name:         "group merged into another group",
			src:          group,
			target:       usecase.DropTarget{Group: "2", Position: entity.PositionCenter},
			wantKind:     usecase.DropMoveGroup,
			wantPosition: entity.PositionCenter,
		},
		{
			name:     "group onto itself",
			src:      group,
			target:   usecase.DropTarget{Group: "1", Location: entity.LocationGrid, Position: entity.PositionLeft},
			wantKind: usecase.DropNoop,
		},
		{
			name:     "no-drop-target rejects everything",
			src:      panel,
			target:   usecase.DropTarget{Group: "2", Locked: entity.LockNoDropTarget, Position: entity.PositionLeft},
			wantKind: usecase.DropNoop,
		},
		{
			name:     "locked rejects center",
			src:      panel,
			target:   usecase.DropTarget{Group: "2", Locked: entity.LockLocked, Position: entity.PositionCenter},
			wantKind: usecase.DropNoop,
		},
		{
			name:         "locked accepts edges",
			src:          panel,
			target:       usecase.DropTarget{Group: "2", Location: entity.LocationGrid, Locked: entity.LockLocked, Position: entity.PositionRight},
			wantKind:     usecase.DropSplit,
			wantPosition: entity.PositionRight,
		},
		{
			name:         "edge of a floating group is its center",
			src:          panel,
			target:       usecase.DropTarget{Group: "2", Location: entity.LocationFloating, Position: entity.PositionLeft},
			wantKind:     usecase.DropReparent,
			wantPosition: entity.PositionCenter,
		},
		{
			name:     "edge of a locked popout group is rejected",
			src:      panel,
			target:   usecase.DropTarget{Group: "2", Location: entity.LocationPopout, Locked: entity.LockLocked, Position: entity.PositionTop},
			wantKind: usecase.DropNoop,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			got := usecase.ResolveDrop(tt.src, tt.target)

			// Assert
			assert.Equal(t, tt.wantKind, got.Kind, got.Reason)
			if tt.wantKind == usecase.DropNoop {
				assert.NotEmpty(t, got.Reason)
				return
			}
			assert.Equal(t, tt.wantPosition, got.Position)
			assert.Equal(t, tt.wantIndex, got.Index)
		})
	}
}

func TestPositionFromPoint(t *testing.T) {
	box := entity.Box{Left: 0, Top: 0, Width: 100, Height: 100}

	tests := []struct {
		name      string
		x, y      int
		threshold int
		want      entity.Position
		wantOK    bool
	}{
		{name: "center", x: 50, y: 50, threshold: 20, want: entity.PositionCenter, wantOK: true},
		{name: "left", x: 5, y: 50, threshold: 20, want: entity.PositionLeft, wantOK: true},
		{name: "right", x: 95, y: 50, threshold: 20, want: entity.PositionRight, wantOK: true},
		{name: "top", x: 50, y: 3, threshold: 20, want: entity.PositionTop, wantOK: true},
		{name: "bottom", x: 50, y: 99, threshold: 20, want: entity.PositionBottom, wantOK: true},
		{name: "corner picks nearest edge", x: 2, y: 1, threshold: 20, want: entity.PositionTop, wantOK: true},
		{name: "zero threshold is always center", x: 0, y: 0, threshold: 0, want: entity.PositionCenter, wantOK: true},
		{name: "outside", x: 100, y: 50, threshold: 20, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := usecase.PositionFromPoint(box, tt.x, tt.y, tt.threshold)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPositionFromPoint_OffsetBox(t *testing.T) {
	box := entity.Box{Left: 200, Top: 100, Width: 400, Height: 200}

	got, ok := usecase.PositionFromPoint(box, 590, 200, 10)

	assert.True(t, ok)
	assert.Equal(t, entity.PositionRight, got)
}
