package session

import "github.com/piwi3910/hppcalc/internal/model"

const defaultMaxDepth = 50

// Snapshot captures the project state at a point in time.
type Snapshot struct {
	Project model.Project
	Label   string // Human-readable description (e.g. "Add material")
}

// History manages undo/redo stacks of project snapshots.
type History struct {
	undoStack []Snapshot
	redoStack []Snapshot
	maxDepth  int
}

// NewHistory creates a History keeping at most maxDepth undo steps.
// A non-positive depth uses the default of 50.
func NewHistory(maxDepth int) *History {
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}
	return &History{maxDepth: maxDepth}
}

// Push saves a snapshot onto the undo stack and clears the redo stack.
// It is called before the modification is applied.
func (h *History) Push(s Snapshot) {
	h.undoStack = append(h.undoStack, s)
	if len(h.undoStack) > h.maxDepth {
		h.undoStack = h.undoStack[len(h.undoStack)-h.maxDepth:]
	}
	h.redoStack = nil
}

// Undo pops the most recent snapshot and pushes current onto the redo stack.
// Returns false if there is nothing to undo.
func (h *History) Undo(current Snapshot) (Snapshot, bool) {
	if len(h.undoStack) == 0 {
		return Snapshot{}, false
	}
	last := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, current)
	return last, true
}

// Redo pops the most recent undone snapshot and pushes current onto the undo
// stack. Returns false if there is nothing to redo.
func (h *History) Redo(current Snapshot) (Snapshot, bool) {
	if len(h.redoStack) == 0 {
		return Snapshot{}, false
	}
	last := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, current)
	return last, true
}

// CanUndo returns true if there is at least one snapshot to undo.
func (h *History) CanUndo() bool {
	return len(h.undoStack) > 0
}

// CanRedo returns true if there is at least one snapshot to redo.
func (h *History) CanRedo() bool {
	return len(h.redoStack) > 0
}

// Clear removes all undo and redo history.
func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
}

// MakeSnapshot deep-copies a project into a labelled snapshot.
func MakeSnapshot(p model.Project, label string) Snapshot {
	return Snapshot{Project: copyProject(p), Label: label}
}

func copyProject(p model.Project) model.Project {
	cp := p
	cp.Materials = copyMaterials(p.Materials)
	if p.Hardware != nil {
		cp.Hardware = make([]model.HardwareItem, len(p.Hardware))
		copy(cp.Hardware, p.Hardware)
	}
	if p.Labor != nil {
		cp.Labor = make([]model.LaborItem, len(p.Labor))
		copy(cp.Labor, p.Labor)
	}
	return cp
}

func copyMaterials(materials []model.Material) []model.Material {
	if materials == nil {
		return nil
	}
	cp := make([]model.Material, len(materials))
	for i, m := range materials {
		cp[i] = m.Clone()
	}
	return cp
}
