package tui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
)

// SectionBanner renders a bold section header with a horizontal rule.
//
//	──────────────────────────────
//	▶ Title
func (t *Theme) SectionBanner(title string) string {
	rule := lipgloss.NewStyle().Foreground(t.Secondary).Render(strings.Repeat("─", 40))
	heading := lipgloss.NewStyle().Bold(true).Foreground(t.Secondary).Render("▶ " + title)
	return fmt.Sprintf("\n%s\n  %s\n", rule, heading)
}

// SubBanner renders a smaller subsection label: "  --- title ---"
func (t *Theme) SubBanner(title string) string {
	return lipgloss.NewStyle().Foreground(t.Muted).Render("  --- "+title+" ---") + "\n"
}
