package project

import (
	"path/filepath"

	"github.com/piwi3910/hppcalc/internal/model"
)

// DefaultTemplatePath returns the default file path for the templates store.
// This is located at ~/.hppcalc/templates.json.
func DefaultTemplatePath() string {
	return filepath.Join(DefaultConfigDir(), "templates.json")
}

// SaveTemplates writes the template store to a JSON file.
func SaveTemplates(path string, store model.TemplateStore) error {
	return writeJSON(path, store, "templates")
}

// LoadTemplates reads a template store from a JSON file.
// If the file does not exist, returns an empty store.
func LoadTemplates(path string) (model.TemplateStore, error) {
	var store model.TemplateStore
	if err := readJSON(path, &store, "templates"); err != nil {
		if isNotExist(err) {
			return model.NewTemplateStore(), nil
		}
		return model.TemplateStore{}, err
	}
	if store.Templates == nil {
		store.Templates = []model.ProjectTemplate{}
	}
	return store, nil
}
