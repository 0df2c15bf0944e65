package service

import (
	"testing"
	"time"

	"emi-planner/domain"
)

func TestRetentionJob_Run(t *testing.T) {
	mockRepo := &MockLoanRepository{Saved: []domain.CalculationRecord{{ID: "old"}}}
	job := NewRetentionJob(mockRepo, 30, testLogger())
	now := time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC)
	job.now = func() time.Time { return now }

	job.Run()

	want := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	if !mockRepo.Cutoff.Equal(want) {
		t.Errorf("expected cutoff %v, got %v", want, mockRepo.Cutoff)
	}
}

func TestRetentionJob_RunSurvivesRepositoryError(t *testing.T) {
	mockRepo := &MockLoanRepository{ForceError: true}
	NewRetentionJob(mockRepo, 1, testLogger()).Run()

	if mockRepo.Cutoff.IsZero() {
		t.Error("expected DeleteBefore to be called")
	}
}

func TestStartRetention(t *testing.T) {
	job := NewRetentionJob(&MockLoanRepository{}, 1, testLogger())

	if _, err := StartRetention("not a schedule", job); err == nil {
		t.Error("expected error for invalid schedule")
	}

	c, err := StartRetention("@daily", job)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.Entries()) != 1 {
		t.Errorf("expected one scheduled entry, got %d", len(c.Entries()))
	}
	c.Stop()
}
