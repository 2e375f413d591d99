package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mcon/internal/models"
)

// TemplateItem represents a template summary in the list
type TemplateItem struct {
	Summary models.TemplateSummary
}

// FilterValue returns the filter value for the template item
func (i TemplateItem) FilterValue() string {
	return i.Summary.Meta.Name
}

// Title returns the title for the template item
func (i TemplateItem) Title() string {
	return i.Summary.Meta.Name
}

// Description returns the description for the template item
func (i TemplateItem) Description() string {
	if i.Summary.Meta.Description != "" {
		return i.Summary.Meta.Description
	}
	return fmt.Sprintf("id %s", i.Summary.ID)
}

// TemplateBrowser lists templates next to a preview of the selected one
type TemplateBrowser struct {
	List      list.Model
	Cells     []string
	Variables []string
	Selected  *models.TemplateSummary
}

// NewTemplateBrowser creates a new template browser
func NewTemplateBrowser(width, height int) TemplateBrowser {
	listModel := list.New([]list.Item{}, list.NewDefaultDelegate(), width/2, height)
	listModel.Title = "Templates"
	listModel.SetShowStatusBar(false)
	listModel.SetFilteringEnabled(true)
	listModel.Styles.Title = lipgloss.NewStyle().
		Foreground(lipgloss.Color("39")).
		Bold(true).
		MarginLeft(2)

	return TemplateBrowser{
		List: listModel,
	}
}

// SetTemplates sets the templates in the list
func (b *TemplateBrowser) SetTemplates(summaries []models.TemplateSummary) tea.Cmd {
	items := make([]list.Item, len(summaries))
	for i, s := range summaries {
		items[i] = TemplateItem{Summary: s}
	}
	return b.List.SetItems(items)
}

// SetSize resizes the list to half of the given width
func (b *TemplateBrowser) SetSize(width, height int) {
	b.List.SetSize(width/2, height)
}

// Highlighted returns the template under the cursor
func (b TemplateBrowser) Highlighted() (models.TemplateSummary, bool) {
	item, ok := b.List.SelectedItem().(TemplateItem)
	if !ok {
		return models.TemplateSummary{}, false
	}
	return item.Summary, true
}

// Filtering reports whether the user is typing a filter
func (b TemplateBrowser) Filtering() bool {
	return b.List.FilterState() == list.Filtering
}

// Update handles template list updates
func (b TemplateBrowser) Update(msg tea.Msg) (TemplateBrowser, tea.Cmd) {
	var cmd tea.Cmd
	b.List, cmd = b.List.Update(msg)
	return b, cmd
}

// View renders the list and the preview side by side
func (b TemplateBrowser) View() string {
	return lipgloss.JoinHorizontal(lipgloss.Top, b.List.View(), b.preview())
}

func (b TemplateBrowser) preview() string {
	if b.Selected == nil {
		return mutedStyle.Render("Press enter to preview a template")
	}

	var s strings.Builder
	s.WriteString(selectorTitleStyle.Render(b.Selected.Meta.Name))
	s.WriteString("\n")
	if b.Selected.Meta.Description != "" {
		s.WriteString(b.Selected.Meta.Description + "\n")
	}

	s.WriteString("\n" + selectorTitleStyle.Render(fmt.Sprintf("Cells (%d)", len(b.Cells))) + "\n")
	s.WriteString(renderNames(b.Cells, "This template has no cells"))

	s.WriteString("\n\n" + selectorTitleStyle.Render(fmt.Sprintf("Variables (%d)", len(b.Variables))) + "\n")
	s.WriteString(renderNames(b.Variables, "This template has no variables"))

	return lipgloss.NewStyle().Padding(0, 2).Render(s.String())
}

func renderNames(names []string, empty string) string {
	if len(names) == 0 {
		return mutedStyle.Render(empty)
	}
	lines := make([]string, len(names))
	for i, n := range names {
		lines[i] = "  " + n
	}
	return strings.Join(lines, "\n")
}
