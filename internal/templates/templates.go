// Package templates reads dashboard templates and extracts the resources they include.
package templates

import (
	"fmt"
	"strings"

	"mcon/internal/models"
)

// Variables returns the names of the variables a template includes
func Variables(t *models.Template) []string {
	return namesOfType(t, models.TemplateTypeVariable)
}

// Cells returns the names of the views a template includes, one per cell
func Cells(t *models.Template) []string {
	return namesOfType(t, models.TemplateTypeView)
}

func namesOfType(t *models.Template, typ models.TemplateType) []string {
	names := []string{}
	if t == nil {
		return names
	}
	for _, r := range t.Content.Included {
		if r.Type == typ {
			names = append(names, r.Attributes.Name)
		}
	}
	return names
}

// Views returns the included views keyed by template resource ID
func Views(t *models.Template) map[string]models.TemplateResource {
	views := make(map[string]models.TemplateResource)
	for _, r := range t.Content.Included {
		if r.Type == models.TemplateTypeView {
			views[r.ID] = r
		}
	}
	return views
}

// CellLayout pairs a cell's position with the view it renders
type CellLayout struct {
	Cell models.Cell
	View models.View
}

// CellLayouts resolves every included cell against its view relationship.
// A cell whose view is missing is laid out with an empty, unnamed view.
func CellLayouts(t *models.Template) []CellLayout {
	views := Views(t)

	var layouts []CellLayout
	for _, r := range t.Content.Included {
		if r.Type != models.TemplateTypeCell {
			continue
		}

		layout := CellLayout{
			Cell: models.Cell{
				X: r.Attributes.X,
				Y: r.Attributes.Y,
				W: r.Attributes.W,
				H: r.Attributes.H,
			},
		}

		if ref, ok := r.Relationships["view"].First(); ok {
			if v, ok := views[ref.ID]; ok {
				layout.View = models.View{
					Name:       v.Attributes.Name,
					Properties: v.Attributes.Properties,
				}
			}
		}

		layouts = append(layouts, layout)
	}
	return layouts
}

// VariableResources returns the included variables as platform variables for orgID
func VariableResources(t *models.Template, orgID string) []models.Variable {
	var vars []models.Variable
	for _, r := range t.Content.Included {
		if r.Type != models.TemplateTypeVariable {
			continue
		}
		vars = append(vars, models.Variable{
			OrgID:     orgID,
			Name:      r.Attributes.Name,
			Arguments: r.Attributes.Arguments,
			Selected:  r.Attributes.Selected,
		})
	}
	return vars
}

// Validate checks that a template can be instantiated as a dashboard
func Validate(t *models.Template) error {
	if t == nil {
		return models.ErrTemplateNotFound
	}
	if t.Content.Data.Type != models.TemplateTypeDashboard {
		return fmt.Errorf("%w: got %q", models.ErrNotDashboardTemplate, t.Content.Data.Type)
	}
	if strings.TrimSpace(t.Content.Data.Attributes.Name) == "" {
		return models.ErrMissingDashboardName
	}
	return nil
}

// FindSummary finds a template summary by ID, falling back to a case-insensitive name match
func FindSummary(summaries []models.TemplateSummary, idOrName string) (models.TemplateSummary, error) {
	for _, s := range summaries {
		if s.ID == idOrName {
			return s, nil
		}
	}
	for _, s := range summaries {
		if strings.EqualFold(s.Meta.Name, idOrName) {
			return s, nil
		}
	}
	return models.TemplateSummary{}, fmt.Errorf("%w: %s", models.ErrTemplateNotFound, idOrName)
}
