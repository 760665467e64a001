// Package session holds one editable estimate: the ordered material list,
// hardware and labor rows, and the cached results. Edits go through narrow
// update functions; results change only on an explicit compute or a change of
// the unit count.
//
// A Session is not safe for concurrent use.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/piwi3910/hppcalc/internal/engine"
	"github.com/piwi3910/hppcalc/internal/logger"
	"github.com/piwi3910/hppcalc/internal/model"
)

var (
	// ErrNotFound is returned when no row has the requested ID.
	ErrNotFound = errors.New("not found")
	// ErrLastItem is returned when removing the only hardware or labor row.
	ErrLastItem = errors.New("cannot remove the last row")
	// ErrKindMismatch is returned when an update swaps a material's config for
	// one of another kind.
	ErrKindMismatch = errors.New("config kind does not match material kind")
)

// Session is the working state of one project.
type Session struct {
	project model.Project
	history *History
	log     *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger. The default discards output.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithHistoryDepth sets the number of undo steps kept.
func WithHistoryDepth(n int) Option {
	return func(s *Session) {
		s.history = NewHistory(n)
	}
}

// New starts a session on a copy of p.
func New(p model.Project, opts ...Option) *Session {
	s := &Session{
		project: copyProject(p),
		history: NewHistory(defaultMaxDepth),
		log:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.project.Materials == nil {
		s.project.Materials = []model.Material{}
	}
	return s
}

// Project returns a copy of the current project.
func (s *Session) Project() model.Project {
	return copyProject(s.project)
}

// Materials returns a copy of the materials in display order.
func (s *Session) Materials() []model.Material {
	return copyMaterials(s.project.Materials)
}

// Material returns a copy of one material.
func (s *Session) Material(id string) (model.Material, error) {
	i := s.materialIndex(id)
	if i < 0 {
		return model.Material{}, fmt.Errorf("material %s: %w", id, ErrNotFound)
	}
	return s.project.Materials[i].Clone(), nil
}

// UnitCount returns the unit count as entered.
func (s *Session) UnitCount() int {
	return s.project.UnitCount
}

// SetName renames the project.
func (s *Session) SetName(name string) {
	s.record("Rename project")
	s.project.Name = name
}

// AddMaterial appends a new material of kind with inputs taken from defaults.
func (s *Session) AddMaterial(kind model.Kind, defaults model.AppConfig) (model.Material, error) {
	if !kind.Valid() {
		return model.Material{}, fmt.Errorf("add material: unknown kind %q", kind)
	}
	s.record("Add material")
	m := model.NewMaterial(kind, "", defaults)
	s.project.Materials = append(s.project.Materials, m)
	s.log.Debug("material added", "id", m.ID, "kind", kind)
	return m.Clone(), nil
}

// AddPreset appends a material built from an inventory preset.
func (s *Session) AddPreset(preset model.MaterialPreset) model.Material {
	s.record("Add " + preset.Name)
	m := preset.ToMaterial()
	s.project.Materials = append(s.project.Materials, m)
	s.log.Debug("material added from preset", "id", m.ID, "preset", preset.Name)
	return m.Clone()
}

// ImportMaterials appends materials read from a file as one undoable step.
// Imported results are dropped and materials whose config does not match
// their kind are skipped. Returns copies of the materials added.
func (s *Session) ImportMaterials(materials []model.Material) []model.Material {
	var added []model.Material
	for _, m := range materials {
		if !m.Kind.Valid() || m.Config == nil || m.Config.Kind() != m.Kind {
			s.log.Warn("skipping imported material", "name", m.Name, "kind", m.Kind)
			continue
		}
		m = m.Clone()
		m.Result = nil
		m.Stale = false
		added = append(added, m)
	}
	if len(added) == 0 {
		return nil
	}

	s.record("Import materials")
	s.project.Materials = append(s.project.Materials, added...)
	s.log.Debug("materials imported", "count", len(added))
	return copyMaterials(added)
}

// UpdateMaterial applies fn to the material with the given ID. The ID and
// kind cannot be changed. A material with a result is marked stale until the
// next compute.
func (s *Session) UpdateMaterial(id string, fn func(*model.Material)) error {
	i := s.materialIndex(id)
	if i < 0 {
		return fmt.Errorf("material %s: %w", id, ErrNotFound)
	}

	edited := s.project.Materials[i].Clone()
	fn(&edited)
	edited.ID = s.project.Materials[i].ID
	edited.Kind = s.project.Materials[i].Kind
	if edited.Config == nil || edited.Config.Kind() != edited.Kind {
		return fmt.Errorf("material %s: %w", id, ErrKindMismatch)
	}
	edited.Result = s.project.Materials[i].Result
	edited.Stale = edited.Result != nil

	s.record("Edit material")
	s.project.Materials[i] = edited
	return nil
}

// RenameMaterial changes a material's name. Names do not affect results.
func (s *Session) RenameMaterial(id, name string) error {
	i := s.materialIndex(id)
	if i < 0 {
		return fmt.Errorf("material %s: %w", id, ErrNotFound)
	}
	s.record("Rename material")
	s.project.Materials[i].Name = name
	return nil
}

// DeleteMaterial removes a material.
func (s *Session) DeleteMaterial(id string) error {
	i := s.materialIndex(id)
	if i < 0 {
		return fmt.Errorf("material %s: %w", id, ErrNotFound)
	}
	s.record("Delete material")
	s.project.Materials = append(s.project.Materials[:i], s.project.Materials[i+1:]...)
	s.log.Debug("material deleted", "id", id)
	return nil
}

// Compute resolves one material at the current unit count and stores the
// result on it.
func (s *Session) Compute(id string) (model.PurchasePlan, error) {
	i := s.materialIndex(id)
	if i < 0 {
		return model.PurchasePlan{}, fmt.Errorf("material %s: %w", id, ErrNotFound)
	}
	plan := s.resolve(s.project.Materials[i])
	s.project.Materials[i].Result = &plan
	s.project.Materials[i].Stale = false
	return plan, nil
}

// ComputeAll resolves every material at the current unit count.
func (s *Session) ComputeAll() {
	for i := range s.project.Materials {
		plan := s.resolve(s.project.Materials[i])
		s.project.Materials[i].Result = &plan
		s.project.Materials[i].Stale = false
	}
}

// SetUnitCount changes the batch size and re-resolves every material before
// returning, so no result is left computed against the old count.
func (s *Session) SetUnitCount(n int) {
	s.record("Change unit count")
	s.project.UnitCount = n
	s.log.Debug("unit count changed", "units", n, "effective", model.EffectiveUnits(n))
	s.ComputeAll()
}

// SetOverheadPercent sets the overhead applied on top of the subtotal.
func (s *Session) SetOverheadPercent(v model.Value) {
	s.record("Change overhead")
	s.project.OverheadPercent = v
}

// AddHardware appends a hardware row with quantity 1 for the whole batch.
func (s *Session) AddHardware(name string) model.HardwareItem {
	s.record("Add hardware")
	h := model.NewHardwareItem(name)
	s.project.Hardware = append(s.project.Hardware, h)
	return h
}

// UpdateHardware applies fn to a hardware row. The ID cannot be changed.
func (s *Session) UpdateHardware(id string, fn func(*model.HardwareItem)) error {
	for i := range s.project.Hardware {
		if s.project.Hardware[i].ID != id {
			continue
		}
		s.record("Edit hardware")
		fn(&s.project.Hardware[i])
		s.project.Hardware[i].ID = id
		return nil
	}
	return fmt.Errorf("hardware %s: %w", id, ErrNotFound)
}

// RemoveHardware deletes a hardware row. The last row cannot be removed.
func (s *Session) RemoveHardware(id string) error {
	for i, h := range s.project.Hardware {
		if h.ID != id {
			continue
		}
		if len(s.project.Hardware) == 1 {
			return fmt.Errorf("hardware %s: %w", id, ErrLastItem)
		}
		s.record("Remove hardware")
		s.project.Hardware = append(s.project.Hardware[:i], s.project.Hardware[i+1:]...)
		return nil
	}
	return fmt.Errorf("hardware %s: %w", id, ErrNotFound)
}

// AddLabor appends a labor row that scales with the unit count.
func (s *Session) AddLabor(name string) model.LaborItem {
	s.record("Add labor")
	l := model.NewLaborItem(name)
	s.project.Labor = append(s.project.Labor, l)
	return l
}

// UpdateLabor applies fn to a labor row. The ID cannot be changed.
func (s *Session) UpdateLabor(id string, fn func(*model.LaborItem)) error {
	for i := range s.project.Labor {
		if s.project.Labor[i].ID != id {
			continue
		}
		s.record("Edit labor")
		fn(&s.project.Labor[i])
		s.project.Labor[i].ID = id
		return nil
	}
	return fmt.Errorf("labor %s: %w", id, ErrNotFound)
}

// RemoveLabor deletes a labor row. The last row cannot be removed.
func (s *Session) RemoveLabor(id string) error {
	for i, l := range s.project.Labor {
		if l.ID != id {
			continue
		}
		if len(s.project.Labor) == 1 {
			return fmt.Errorf("labor %s: %w", id, ErrLastItem)
		}
		s.record("Remove labor")
		s.project.Labor = append(s.project.Labor[:i], s.project.Labor[i+1:]...)
		return nil
	}
	return fmt.Errorf("labor %s: %w", id, ErrNotFound)
}

// Totals aggregates the current results, hardware, labor and overhead.
// Materials never computed count as zero; stale results count as they are.
func (s *Session) Totals() model.Totals {
	return engine.AggregateProject(s.project)
}

// Compare estimates the project at other batch sizes without touching the
// session.
func (s *Session) Compare(counts []int) []engine.ComparisonResult {
	if len(counts) == 0 {
		counts = engine.DefaultUnitCounts(s.project.UnitCount)
	}
	return engine.CompareUnitCounts(s.project, counts)
}

// Snapshot builds a history entry of the current state, stamped with now.
func (s *Session) Snapshot(now time.Time) model.HistoryEntry {
	p := copyProject(s.project)
	return model.HistoryEntry{
		Timestamp:       now,
		ProjectName:     p.Name,
		UnitCount:       p.UnitCount,
		OverheadPercent: p.OverheadPercent,
		Materials:       p.Materials,
		Hardware:        p.Hardware,
		Labor:           p.Labor,
		Totals:          s.Totals(),
	}
}

// Restore replaces the session state with a saved history entry. The current
// state stays reachable through Undo.
func (s *Session) Restore(e model.HistoryEntry) {
	s.record("Load " + e.ProjectName)
	s.project = copyProject(e.Project())
	if s.project.Materials == nil {
		s.project.Materials = []model.Material{}
	}
}

// Undo reverts the last edit and returns its label.
func (s *Session) Undo() (string, bool) {
	snap, ok := s.history.Undo(MakeSnapshot(s.project, ""))
	if !ok {
		return "", false
	}
	s.project = snap.Project
	return snap.Label, true
}

// Redo re-applies the last undone edit.
func (s *Session) Redo() bool {
	snap, ok := s.history.Redo(MakeSnapshot(s.project, ""))
	if !ok {
		return false
	}
	s.project = snap.Project
	return true
}

// CanUndo reports whether there is an edit to undo.
func (s *Session) CanUndo() bool { return s.history.CanUndo() }

// CanRedo reports whether there is an edit to redo.
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

func (s *Session) record(label string) {
	s.history.Push(MakeSnapshot(s.project, label))
}

func (s *Session) resolve(m model.Material) model.PurchasePlan {
	plan := engine.Resolve(m, s.project.UnitCount)
	s.log.Debug("material resolved",
		"id", m.ID,
		"kind", m.Kind,
		"quantity", plan.Quantity,
		"unit", plan.Unit,
		"cost", plan.TotalCost,
		"missing_input", plan.MissingInput(),
	)
	return plan
}

func (s *Session) materialIndex(id string) int {
	for i, m := range s.project.Materials {
		if m.ID == id {
			return i
		}
	}
	return -1
}
