package models

import (
	"bytes"
	"encoding/json"
)

// TemplateType identifies the kind of a template resource
type TemplateType string

const (
	TemplateTypeDashboard TemplateType = "dashboard"
	TemplateTypeView      TemplateType = "view"
	TemplateTypeCell      TemplateType = "cell"
	TemplateTypeVariable  TemplateType = "variable"
	TemplateTypeLabel     TemplateType = "label"
)

// TemplateMeta describes a template
type TemplateMeta struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Version     string       `json:"version,omitempty"`
	Type        TemplateType `json:"type,omitempty"`
}

// Label is a key attached to a resource for grouping
type Label struct {
	ID         string            `json:"id,omitempty"`
	Name       string            `json:"name"`
	Properties map[string]string `json:"properties,omitempty"`
}

// TemplateSummary is the listing form of a template, without content
type TemplateSummary struct {
	ID     string       `json:"id"`
	Meta   TemplateMeta `json:"meta"`
	Labels []Label      `json:"labels,omitempty"`
}

// Template is a serialized bundle describing a dashboard's cells and variables
type Template struct {
	ID      string          `json:"id,omitempty"`
	Meta    TemplateMeta    `json:"meta"`
	Content TemplateContent `json:"content"`
	Labels  []Label         `json:"labels,omitempty"`
}

// Summary returns the listing form of the template
func (t *Template) Summary() TemplateSummary {
	return TemplateSummary{ID: t.ID, Meta: t.Meta, Labels: t.Labels}
}

// TemplateContent holds the primary resource and the resources it includes
type TemplateContent struct {
	Data     TemplateResource   `json:"data"`
	Included []TemplateResource `json:"included"`
}

// TemplateResource is one resource inside a template
type TemplateResource struct {
	Type          TemplateType            `json:"type"`
	ID            string                  `json:"id,omitempty"`
	Attributes    TemplateAttributes      `json:"attributes"`
	Relationships map[string]Relationship `json:"relationships,omitempty"`
}

// TemplateAttributes is the union of attributes carried by template resources.
// Only the fields relevant to a resource's type are set.
type TemplateAttributes struct {
	Name        string         `json:"name,omitempty"`
	Description string         `json:"description,omitempty"`
	X           int            `json:"x,omitempty"`
	Y           int            `json:"y,omitempty"`
	W           int            `json:"w,omitempty"`
	H           int            `json:"h,omitempty"`
	Properties  map[string]any `json:"properties,omitempty"`
	Arguments   map[string]any `json:"arguments,omitempty"`
	Selected    []string       `json:"selected,omitempty"`
}

// RelationshipRef points at another resource in the same template
type RelationshipRef struct {
	Type TemplateType `json:"type"`
	ID   string       `json:"id"`
}

// Relationship holds the references of one named relationship
type Relationship struct {
	Data []RelationshipRef `json:"data"`
}

// UnmarshalJSON accepts both a single reference and a list of references
func (r *Relationship) UnmarshalJSON(b []byte) error {
	var raw struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	data := bytes.TrimSpace(raw.Data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		r.Data = nil
	case data[0] == '[':
		return json.Unmarshal(data, &r.Data)
	default:
		var ref RelationshipRef
		if err := json.Unmarshal(data, &ref); err != nil {
			return err
		}
		r.Data = []RelationshipRef{ref}
	}
	return nil
}

// First returns the first reference of the relationship
func (r Relationship) First() (RelationshipRef, bool) {
	if len(r.Data) == 0 {
		return RelationshipRef{}, false
	}
	return r.Data[0], true
}
