package entity

import (
	"errors"
	"strings"
	"time"
)

// LayoutStateVersion is the current schema version of stored layouts.
// Increment when making breaking changes to the serialization format.
const LayoutStateVersion = 1

// ErrInvalidLayoutName is returned for empty or whitespace-only names.
var ErrInvalidLayoutName = errors.New("invalid layout name")

// LayoutRecord is a named, persisted layout snapshot.
type LayoutRecord struct {
	Name       string            `json:"name"`
	Version    int               `json:"version"`
	Layout     *SerializedLayout `json:"layout"`
	GroupCount int               `json:"group_count"`
	PanelCount int               `json:"panel_count"`
	SavedAt    time.Time         `json:"saved_at"`
}

// NewLayoutRecord wraps a layout for storage.
func NewLayoutRecord(name string, layout *SerializedLayout) (*LayoutRecord, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidLayoutName
	}
	record := &LayoutRecord{
		Name:    name,
		Version: LayoutStateVersion,
		Layout:  layout,
		SavedAt: time.Now(),
	}
	if layout != nil {
		record.GroupCount = layout.GroupCount()
		record.PanelCount = layout.PanelCount()
	}
	return record, nil
}

// LayoutSummary is the list view of a stored layout.
type LayoutSummary struct {
	Name       string
	Version    int
	GroupCount int
	PanelCount int
	SavedAt    time.Time
}
