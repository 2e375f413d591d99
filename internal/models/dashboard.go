package models

// Dashboard is a named collection of cells
type Dashboard struct {
	ID          string `json:"id,omitempty"`
	OrgID       string `json:"orgID"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Cells       []Cell `json:"cells,omitempty"`
}

// Cell is a positioned slot on a dashboard that renders a view
type Cell struct {
	ID     string `json:"id,omitempty"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	W      int    `json:"w"`
	H      int    `json:"h"`
	ViewID string `json:"viewID,omitempty"`
}

// View is the visualization shown inside a cell
type View struct {
	ID         string         `json:"id,omitempty"`
	Name       string         `json:"name"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Variable is a dashboard query variable
type Variable struct {
	ID        string         `json:"id,omitempty"`
	OrgID     string         `json:"orgID"`
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments,omitempty"`
	Selected  []string       `json:"selected,omitempty"`
}
