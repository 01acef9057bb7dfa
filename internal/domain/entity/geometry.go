// Package entity defines the domain entities of the docking layout.
package entity

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Orientation is the axis a branch lays its children along.
type Orientation int

const (
	OrientationHorizontal Orientation = iota // children left to right
	OrientationVertical                      // children top to bottom
)

// Orthogonal returns the other axis.
func (o Orientation) Orthogonal() Orientation {
	if o == OrientationHorizontal {
		return OrientationVertical
	}
	return OrientationHorizontal
}

func (o Orientation) String() string {
	if o == OrientationVertical {
		return "VERTICAL"
	}
	return "HORIZONTAL"
}

// ParseOrientation accepts "HORIZONTAL"/"VERTICAL" in any case.
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "HORIZONTAL":
		return OrientationHorizontal, nil
	case "VERTICAL":
		return OrientationVertical, nil
	default:
		return OrientationHorizontal, fmt.Errorf("%w: unknown orientation %q", ErrInvalidLayout, s)
	}
}

// MarshalJSON encodes the orientation as its upper-case name.
func (o Orientation) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// UnmarshalJSON decodes "HORIZONTAL" or "VERTICAL".
func (o *Orientation) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: orientation must be a string", ErrInvalidLayout)
	}
	parsed, err := ParseOrientation(s)
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// Position is where something is dropped or inserted relative to a target.
// PositionCenter means "into the target group"; the edges mean "beside it".
type Position string

const (
	PositionCenter Position = "center"
	PositionLeft   Position = "left"
	PositionRight  Position = "right"
	PositionTop    Position = "top"
	PositionBottom Position = "bottom"
)

// IsEdge reports whether the position splits the target instead of
// reparenting into it.
func (p Position) IsEdge() bool {
	switch p {
	case PositionLeft, PositionRight, PositionTop, PositionBottom:
		return true
	default:
		return false
	}
}

// Orientation returns the axis an edge position splits along.
func (p Position) Orientation() Orientation {
	if p == PositionTop || p == PositionBottom {
		return OrientationVertical
	}
	return OrientationHorizontal
}

// IsTrailing reports whether the position inserts after the target.
func (p Position) IsTrailing() bool {
	return p == PositionRight || p == PositionBottom
}

// ParsePosition normalizes user input; "within" and "" map to center,
// "above"/"below" map to top/bottom.
func ParsePosition(s string) (Position, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "center", "within":
		return PositionCenter, nil
	case "left":
		return PositionLeft, nil
	case "right":
		return PositionRight, nil
	case "top", "above":
		return PositionTop, nil
	case "bottom", "below":
		return PositionBottom, nil
	default:
		return "", fmt.Errorf("%w: unknown position %q", ErrInvalidLocation, s)
	}
}

// Box is a screen-space rectangle used for floating and popout groups and
// for grid hit-testing.
type Box struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Center returns the center point of the box.
func (b Box) Center() (cx, cy int) {
	return b.Left + b.Width/2, b.Top + b.Height/2
}

// Contains reports whether the point lies inside the box.
func (b Box) Contains(x, y int) bool {
	return x >= b.Left && x < b.Left+b.Width && y >= b.Top && y < b.Top+b.Height
}

// OverlapsVertically returns true if two boxes share any vertical extent.
func (b Box) OverlapsVertically(other Box) bool {
	return b.Top < other.Top+other.Height && other.Top < b.Top+b.Height
}

// OverlapsHorizontally returns true if two boxes share any horizontal extent.
func (b Box) OverlapsHorizontally(other Box) bool {
	return b.Left < other.Left+other.Width && other.Left < b.Left+b.Width
}
