package model

import (
	"testing"
)

func sampleProject() Project {
	p := NewProject("Cabinet", DefaultAppConfig())
	p.Materials = []Material{
		{ID: "m1", Kind: KindPanel, Name: "Plywood", Config: PanelConfig{CutLength: "120"}, Result: &PurchasePlan{Quantity: 3}},
		{ID: "m2", Kind: KindUnit, Name: "Handle", Config: UnitConfig{QtyNeeded: "2"}},
	}
	return p
}

func TestNewProjectTemplate(t *testing.T) {
	tmpl := NewProjectTemplate("Cabinet", "Standard cabinet template", sampleProject())

	if tmpl.Name != "Cabinet" {
		t.Errorf("expected name 'Cabinet', got %q", tmpl.Name)
	}
	if tmpl.Description != "Standard cabinet template" {
		t.Errorf("expected description 'Standard cabinet template', got %q", tmpl.Description)
	}
	if tmpl.ID == "" {
		t.Error("expected non-empty ID")
	}
	if tmpl.CreatedAt == "" {
		t.Error("expected non-empty CreatedAt")
	}
	if len(tmpl.Materials) != 2 {
		t.Fatalf("expected 2 materials, got %d", len(tmpl.Materials))
	}
	if tmpl.Materials[0].Result != nil {
		t.Error("template should not carry computed results")
	}
	if tmpl.UnitCount != 10 {
		t.Errorf("expected 10 units, got %d", tmpl.UnitCount)
	}
}

func TestProjectTemplate_ToProject(t *testing.T) {
	src := sampleProject()
	tmpl := NewProjectTemplate("Cabinet", "", src)
	proj := tmpl.ToProject("Kitchen Cabinet")

	if proj.Name != "Kitchen Cabinet" {
		t.Errorf("expected project name 'Kitchen Cabinet', got %q", proj.Name)
	}
	if len(proj.Materials) != 2 {
		t.Fatalf("expected 2 materials, got %d", len(proj.Materials))
	}
	if proj.Materials[0].ID == tmpl.Materials[0].ID {
		t.Error("project materials should get fresh IDs")
	}
	if proj.Hardware[0].ID == tmpl.Hardware[0].ID || proj.Labor[0].ID == tmpl.Labor[0].ID {
		t.Error("project rows should get fresh IDs")
	}
	if proj.Materials[1].Config != (UnitConfig{QtyNeeded: "2"}) {
		t.Errorf("config not carried over: %#v", proj.Materials[1].Config)
	}
}

func TestTemplateStore_AddAndRemove(t *testing.T) {
	store := NewTemplateStore()
	t1 := NewProjectTemplate("T1", "", sampleProject())
	t2 := NewProjectTemplate("T2", "", sampleProject())
	store.Add(t1)
	store.Add(t2)

	if len(store.Templates) != 2 {
		t.Fatalf("expected 2 templates, got %d", len(store.Templates))
	}
	if !store.Remove(t1.ID) {
		t.Error("expected Remove to return true")
	}
	if store.Remove("nonexistent") {
		t.Error("expected Remove to return false for unknown ID")
	}
	if len(store.Templates) != 1 || store.Templates[0].Name != "T2" {
		t.Errorf("unexpected templates after remove: %v", store.Names())
	}
}

func TestTemplateStore_Find(t *testing.T) {
	store := NewTemplateStore()
	tmpl := NewProjectTemplate("Wardrobe", "", sampleProject())
	store.Add(tmpl)

	if found := store.FindByID(tmpl.ID); found == nil || found.Name != "Wardrobe" {
		t.Errorf("FindByID failed: %v", found)
	}
	if store.FindByName("Wardrobe") == nil {
		t.Error("FindByName failed")
	}
	if store.FindByName("Desk") != nil || store.FindByID("zzz") != nil {
		t.Error("expected nil for unknown template")
	}
	names := store.Names()
	if len(names) != 1 || names[0] != "Wardrobe" {
		t.Errorf("unexpected names %v", names)
	}
}
