package styles

import (
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/dockgrid/internal/domain/entity"
)

// ConfigSchemaRenderer renders configuration schema information.
type ConfigSchemaRenderer struct {
	theme *Theme
}

// NewConfigSchemaRenderer creates a new ConfigSchemaRenderer.
func NewConfigSchemaRenderer(theme *Theme) *ConfigSchemaRenderer {
	return &ConfigSchemaRenderer{theme: theme}
}

// Render renders the configuration schema in styled format.
func (r *ConfigSchemaRenderer) Render(keys []entity.ConfigKeyInfo) string {
	if len(keys) == 0 {
		return r.theme.Subtle.Render("No configuration keys found")
	}

	// Group keys by section
	sections := groupBySection(keys)

	// Build output
	var parts []string

	// Header
	header := r.renderHeader()
	parts = append(parts, header, "")

	for _, section := range orderedSections(sections) {
		parts = append(parts, r.renderSection(section, sections[section]), "")
	}

	return strings.Join(parts, "\n")
}

// RenderMarkdown renders the keys as one markdown table per section.
func (*ConfigSchemaRenderer) RenderMarkdown(keys []entity.ConfigKeyInfo) string {
	var b strings.Builder
	b.WriteString("# dockgrid configuration\n\n")
	b.WriteString("Keys of `config.toml`. Every key can also be set through a `DOCKGRID_` environment variable.\n")

	sections := groupBySection(keys)
	for _, section := range orderedSections(sections) {
		fmt.Fprintf(&b, "\n## %s\n\n", section)
		b.WriteString("| Key | Type | Default | Accepted | Description |\n")
		b.WriteString("|-----|------|---------|----------|-------------|\n")
		for _, key := range sections[section] {
			accepted := key.Range
			if len(key.Values) > 0 {
				accepted = strings.Join(key.Values, ", ")
			}
			fmt.Fprintf(&b, "| `%s` | %s | %s | %s | %s |\n",
				key.Key, key.Type, markdownCell(key.Default), markdownCell(accepted), markdownCell(key.Description))
		}
	}
	return b.String()
}

func markdownCell(s string) string {
	if s == "" {
		return "-"
	}
	return strings.ReplaceAll(s, "|", "\\|")
}

// orderedSections returns the fixed sections first, then the rest
// alphabetically.
func orderedSections(sections map[string][]entity.ConfigKeyInfo) []string {
	fixed := []string{"Layout", "Floating", "Components", "Logging", "Database"}
	var order []string
	for _, section := range fixed {
		if _, ok := sections[section]; ok {
			order = append(order, section)
		}
	}
	var rest []string
	for section := range sections {
		if !slices.Contains(fixed, section) {
			rest = append(rest, section)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}

// RenderJSON renders the configuration schema as JSON.
func (*ConfigSchemaRenderer) RenderJSON(keys []entity.ConfigKeyInfo) (string, error) {
	data, err := json.MarshalIndent(keys, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal schema: %w", err)
	}
	return string(data), nil
}

func (r *ConfigSchemaRenderer) renderHeader() string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	title := fmt.Sprintf("%s %s", iconStyle.Render(IconConfig), r.theme.Title.Render("Config Schema Reference"))
	return title
}

func groupBySection(keys []entity.ConfigKeyInfo) map[string][]entity.ConfigKeyInfo {
	sections := make(map[string][]entity.ConfigKeyInfo)
	for _, key := range keys {
		sections[key.Section] = append(sections[key.Section], key)
	}
	return sections
}

func (r *ConfigSchemaRenderer) renderSection(name string, keys []entity.ConfigKeyInfo) string {
	var lines []string

	for _, key := range keys {
		lines = append(lines, r.renderKey(key))
	}

	body := strings.Join(lines, "\n")

	// Create section header (no extra padding/margin)
	sectionHeader := r.theme.Highlight.Render(name)

	// Build box content: header directly followed by keys
	boxContent := sectionHeader + "\n" + body

	// Use box style without top padding
	boxStyle := r.theme.Box.PaddingTop(0)

	return boxStyle.Render(boxContent)
}

func (r *ConfigSchemaRenderer) renderKey(key entity.ConfigKeyInfo) string {
	keyStyle := r.theme.Normal.Bold(true)
	typeStyle := r.theme.Subtle
	defaultStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	descStyle := r.theme.Subtle
	valuesStyle := r.theme.Normal

	line1 := fmt.Sprintf(
		"%s  %s  %s",
		keyStyle.Render(key.Key),
		typeStyle.Render(key.Type),
		defaultStyle.Render(key.Default),
	)

	lines := []string{line1, "  " + descStyle.Render(key.Description)}
	switch {
	case len(key.Values) > 0:
		lines = append(lines, "  "+valuesStyle.Render("Values: "+strings.Join(key.Values, ", ")))
	case key.Range != "":
		lines = append(lines, "  "+valuesStyle.Render("Range: "+key.Range))
	}
	return strings.Join(lines, "\n")
}
