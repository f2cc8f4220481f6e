package store

import (
	"os"
	"testing"

	"github.com/scenariomcp/scenariomcp/internal/scenario"
)

func TestValidate_DetectsOrphanFile(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	if err := s.Save(testScenario("tracked"), nil); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	// Write a scenario file directly, bypassing Save, so it never enters
	// the index.
	if err := s.writeScenarioFile(testScenario("untracked")); err != nil {
		t.Fatalf("writeScenarioFile() error = %v", err)
	}

	report, err := s.Validate()
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(report.OrphanFiles) != 1 || report.OrphanFiles[0] != "untracked" {
		t.Fatalf("OrphanFiles = %+v, want [untracked]", report.OrphanFiles)
	}
	if !report.IndexRepaired {
		t.Error("IndexRepaired should be true after fixing an orphan")
	}

	entries, err := s.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("List() after Validate() = %+v, want both scenarios indexed", entries)
	}
}

func TestValidate_DetectsMissingFile(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	if err := s.Save(testScenario("soon-to-vanish"), nil); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := os.Remove(s.scenarioPath("soon-to-vanish")); err != nil {
		t.Fatalf("os.Remove() error = %v", err)
	}

	report, err := s.Validate()
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(report.MissingFiles) != 1 || report.MissingFiles[0] != "soon-to-vanish" {
		t.Fatalf("MissingFiles = %+v, want [soon-to-vanish]", report.MissingFiles)
	}

	entries, err := s.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("List() after Validate() = %+v, want empty", entries)
	}
}

func TestValidate_DetectsBrokenDependency(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	dependent := testScenario("needs-ghost")
	dependent.Dependencies = []scenario.DependencyEdge{{Name: "ghost", ExecuteDependency: true}}
	if err := s.Save(dependent, nil); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	report, err := s.Validate()
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(report.BrokenDependencies) != 1 {
		t.Fatalf("BrokenDependencies = %+v, want one entry", report.BrokenDependencies)
	}
	if report.BrokenDependencies[0].Scenario != "needs-ghost" || report.BrokenDependencies[0].Target != "ghost" {
		t.Errorf("BrokenDependencies[0] = %+v", report.BrokenDependencies[0])
	}
}

func TestValidate_CleanStoreReportsNothing(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	if err := s.Save(testScenario("clean"), nil); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	report, err := s.Validate()
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if report.IndexRepaired || len(report.OrphanFiles) != 0 || len(report.MissingFiles) != 0 || len(report.BrokenDependencies) != 0 {
		t.Fatalf("Validate() on a clean store = %+v, want empty report", report)
	}
}
