package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mcon/internal/models"
	"mcon/internal/permissions"
)

var (
	selectorTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	selectorFocusedStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("39")).Padding(0, 1)
	selectorBlurredStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("241")).Padding(0, 1)
	selectedItemStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	mutedStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// BucketSelector is a checklist of buckets for one access mode
type BucketSelector struct {
	Title    string
	Buckets  []models.Bucket
	Selected permissions.Selection
	Focused  bool
	cursor   int
}

// NewBucketSelector creates an empty selector
func NewBucketSelector(title string) BucketSelector {
	return BucketSelector{
		Title:    title,
		Selected: permissions.NewSelection(),
	}
}

// SetBuckets replaces the bucket list and drops selected names that no longer exist
func (s BucketSelector) SetBuckets(buckets []models.Bucket) BucketSelector {
	s.Buckets = buckets

	var kept []string
	for _, b := range buckets {
		if s.Selected.Has(b.Name) {
			kept = append(kept, b.Name)
		}
	}
	s.Selected = permissions.NewSelection(kept...)

	if s.cursor >= len(buckets) {
		s.cursor = max(len(buckets)-1, 0)
	}
	return s
}

// Cursor returns the index of the highlighted bucket
func (s BucketSelector) Cursor() int {
	return s.cursor
}

// Update handles navigation and selection keys while focused
func (s BucketSelector) Update(msg tea.Msg) (BucketSelector, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !s.Focused {
		return s, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.Buckets)-1 {
			s.cursor++
		}
	case " ", "x", "enter":
		if len(s.Buckets) > 0 {
			s.Selected = s.Selected.Toggle(s.Buckets[s.cursor].Name)
		}
	case "a":
		s.Selected = s.Selected.SelectAll(s.Buckets)
	case "n":
		s.Selected = s.Selected.DeselectAll()
	}

	return s, nil
}

// View renders the selector
func (s BucketSelector) View() string {
	var b strings.Builder

	b.WriteString(selectorTitleStyle.Render(s.Title))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  %d/%d selected", s.Selected.Len(), len(s.Buckets))))
	b.WriteString("\n")

	if len(s.Buckets) == 0 {
		b.WriteString(mutedStyle.Render("No buckets found"))
	}

	for i, bucket := range s.Buckets {
		cursor := "  "
		if s.Focused && i == s.cursor {
			cursor = "> "
		}

		if s.Selected.Has(bucket.Name) {
			b.WriteString(cursor + selectedItemStyle.Render("[x] "+bucket.Name))
		} else {
			b.WriteString(cursor + "[ ] " + bucket.Name)
		}
		if i < len(s.Buckets)-1 {
			b.WriteString("\n")
		}
	}

	if s.Focused {
		return selectorFocusedStyle.Render(b.String())
	}
	return selectorBlurredStyle.Render(b.String())
}
