package templates

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"mcon/internal/models"
)

// Load reads a template from a .json, .yaml or .yml file
func Load(path string) (*models.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading template: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
	case ".yaml", ".yml":
		data, err = yamlToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("error parsing template %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", models.ErrUnsupportedTemplateFormat, path)
	}

	var t models.Template
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("error decoding template %s: %w", path, err)
	}
	return &t, nil
}

// yamlToJSON re-encodes a YAML document as JSON so one decoder handles both formats
func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}
