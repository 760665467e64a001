package model

import "time"

// ProjectTemplate is a reusable estimate: materials, hardware, labor and
// overhead, but never computed results.
type ProjectTemplate struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Description     string         `json:"description"`
	CreatedAt       string         `json:"created_at"`
	UpdatedAt       string         `json:"updated_at"`
	UnitCount       int            `json:"unit_count"`
	OverheadPercent Value          `json:"overhead_percent"`
	Materials       []Material     `json:"materials"`
	Hardware        []HardwareItem `json:"hardware"`
	Labor           []LaborItem    `json:"labor"`
}

// NewProjectTemplate captures a project as a template. Results are dropped.
func NewProjectTemplate(name, description string, p Project) ProjectTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	materials := make([]Material, len(p.Materials))
	for i, m := range p.Materials {
		materials[i] = m.Clone()
		materials[i].Result = nil
		materials[i].Stale = false
	}
	return ProjectTemplate{
		ID:              newID(),
		Name:            name,
		Description:     description,
		CreatedAt:       now,
		UpdatedAt:       now,
		UnitCount:       p.UnitCount,
		OverheadPercent: p.OverheadPercent,
		Materials:       materials,
		Hardware:        append([]HardwareItem{}, p.Hardware...),
		Labor:           append([]LaborItem{}, p.Labor...),
	}
}

// ToProject creates a new Project from this template.
// Every row gets a fresh ID so the project is independent of the template.
func (t ProjectTemplate) ToProject(projectName string) Project {
	materials := make([]Material, len(t.Materials))
	for i, m := range t.Materials {
		materials[i] = m.Clone()
		materials[i].ID = newID()
	}
	hardware := make([]HardwareItem, len(t.Hardware))
	for i, h := range t.Hardware {
		hardware[i] = h
		hardware[i].ID = newID()
	}
	labor := make([]LaborItem, len(t.Labor))
	for i, l := range t.Labor {
		labor[i] = l
		labor[i].ID = newID()
	}
	return Project{
		Name:            projectName,
		UnitCount:       t.UnitCount,
		OverheadPercent: t.OverheadPercent,
		Materials:       materials,
		Hardware:        hardware,
		Labor:           labor,
	}
}

// TemplateStore holds a collection of project templates.
type TemplateStore struct {
	Templates []ProjectTemplate `json:"templates"`
}

// NewTemplateStore creates an empty template store.
func NewTemplateStore() TemplateStore {
	return TemplateStore{
		Templates: []ProjectTemplate{},
	}
}

// Add adds a template to the store.
func (ts *TemplateStore) Add(t ProjectTemplate) {
	ts.Templates = append(ts.Templates, t)
}

// Remove removes a template by ID. Returns true if found and removed.
func (ts *TemplateStore) Remove(id string) bool {
	for i, t := range ts.Templates {
		if t.ID == id {
			ts.Templates = append(ts.Templates[:i], ts.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the template with the given ID, or nil.
func (ts *TemplateStore) FindByID(id string) *ProjectTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].ID == id {
			return &ts.Templates[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first template with the given name, or nil.
func (ts *TemplateStore) FindByName(name string) *ProjectTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].Name == name {
			return &ts.Templates[i]
		}
	}
	return nil
}

// Names returns a list of template names.
func (ts *TemplateStore) Names() []string {
	names := make([]string, len(ts.Templates))
	for i, t := range ts.Templates {
		names[i] = t.Name
	}
	return names
}
