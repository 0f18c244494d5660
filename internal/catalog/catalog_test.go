package catalog

import (
	"testing"

	"github.com/interna-hq/interna-api/internal/domain"
)

func TestByID(t *testing.T) {
	task, ok := ByID("landing-page-rescue")
	if !ok {
		t.Fatal("Expected landing-page-rescue to be in the catalog")
	}
	if task.Field != domain.FieldFrontend {
		t.Errorf("Expected field %s, got %s", domain.FieldFrontend, task.Field)
	}

	if _, ok := ByID("no-such-task"); ok {
		t.Error("Expected unknown id to miss")
	}
}

func TestCatalogIntegrity(t *testing.T) {
	seen := make(map[string]bool)
	for _, task := range Tasks {
		if task.ID == "" || task.Title == "" {
			t.Errorf("Task %q missing id or title", task.ID)
		}
		if seen[task.ID] {
			t.Errorf("Duplicate task id %q", task.ID)
		}
		seen[task.ID] = true

		if !domain.ValidField(task.Field) {
			t.Errorf("Task %q has unknown field %q", task.ID, task.Field)
		}
		if _, ok := FieldLabels[task.Field]; !ok {
			t.Errorf("Task %q field %q has no display label", task.ID, task.Field)
		}
	}
}
