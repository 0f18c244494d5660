package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewInternProgress(t *testing.T) {
	userID := uuid.New()

	progress, err := NewInternProgress(userID, "landing-page-rescue")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if progress.Status != ProjectStatusInProgress {
		t.Errorf("Expected status %s, got %s", ProjectStatusInProgress, progress.Status)
	}
	if progress.LastActivityAt.IsZero() {
		t.Error("Expected non-zero LastActivityAt")
	}

	_, err = NewInternProgress(uuid.Nil, "landing-page-rescue")
	if err != ErrEmptyProgressUserID {
		t.Errorf("Expected error %v, got %v", ErrEmptyProgressUserID, err)
	}

	_, err = NewInternProgress(userID, "")
	if err != ErrEmptyProgressTaskID {
		t.Errorf("Expected error %v, got %v", ErrEmptyProgressTaskID, err)
	}
}

func TestInternProgressTouch(t *testing.T) {
	progress, err := NewInternProgress(uuid.New(), "orders-api-cleanup")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	before := progress.LastActivityAt
	time.Sleep(time.Millisecond)
	progress.Touch()
	if !progress.LastActivityAt.After(before) {
		t.Error("Expected Touch to advance LastActivityAt")
	}
}

func TestNewSimulation(t *testing.T) {
	userID := uuid.New()

	sim, err := NewSimulation(userID, "Food delivery tracker", "Track orders in realtime", FieldMobile)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if sim.ID == uuid.Nil {
		t.Error("Expected non-nil simulation ID")
	}
	if sim.Difficulty != "medium" || sim.Level != 1 || sim.Duration != "Variable" {
		t.Errorf("Expected default difficulty/level/duration, got %s/%d/%s",
			sim.Difficulty, sim.Level, sim.Duration)
	}
	if sim.UpdatedAt != nil {
		t.Error("Expected new simulation to have nil UpdatedAt")
	}

	_, err = NewSimulation(userID, "", "desc", FieldMobile)
	if err != ErrEmptySimulationTitle {
		t.Errorf("Expected error %v, got %v", ErrEmptySimulationTitle, err)
	}

	_, err = NewSimulation(userID, "Title", "desc", "devrel")
	if err != ErrUnknownField {
		t.Errorf("Expected error %v, got %v", ErrUnknownField, err)
	}
}

func TestSimulationLastActivity(t *testing.T) {
	sim, err := NewSimulation(uuid.New(), "Title", "desc", FieldBackend)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !sim.LastActivity().Equal(sim.CreatedAt) {
		t.Error("Expected LastActivity to fall back to CreatedAt when never updated")
	}

	updated := sim.CreatedAt.Add(2 * time.Hour)
	sim.UpdatedAt = &updated
	if !sim.LastActivity().Equal(updated) {
		t.Error("Expected LastActivity to prefer UpdatedAt when set")
	}
}
