package project

import (
	"strings"

	"github.com/piwi3910/hppcalc/internal/model"
)

// FileExt is the extension of saved project files.
const FileExt = ".hpp.json"

// SaveProject writes a project to path as indented JSON, creating parent
// directories as needed. Computed results are saved with the materials.
func SaveProject(path string, p model.Project) error {
	return writeJSON(path, p, "project")
}

// LoadProject reads a project file. A project always has at least one
// hardware row and one labor row; missing lists are seeded.
func LoadProject(path string) (model.Project, error) {
	var p model.Project
	if err := readJSON(path, &p, "project"); err != nil {
		return model.Project{}, err
	}
	if p.Materials == nil {
		p.Materials = []model.Material{}
	}
	if len(p.Hardware) == 0 {
		p.Hardware = []model.HardwareItem{model.NewHardwareItem("")}
	}
	if len(p.Labor) == 0 {
		p.Labor = []model.LaborItem{model.NewLaborItem("")}
	}
	return p, nil
}

// ProjectFileName returns a file name for a project, e.g. "HPP Coffee Table.hpp.json".
func ProjectFileName(name string) string {
	return "HPP " + sanitizeName(name) + FileExt
}

// sanitizeName replaces characters that are not safe in file names.
func sanitizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Untitled"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
}
