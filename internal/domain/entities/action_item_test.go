package entities

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestActionItem_Complete(t *testing.T) {
	action := NewActionItem(uuid.New(), "standup.mp3", "John will send the report")
	now := time.Now()
	notes := "sent via email"

	if err := action.Complete(now, &notes); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if action.Status != ActionStatusCompleted {
		t.Fatalf("status = %q, want completed", action.Status)
	}
	if action.CompletedAt == nil || !action.CompletedAt.Equal(now) {
		t.Fatal("CompletedAt not set")
	}
	if action.Notes == nil || *action.Notes != notes {
		t.Fatal("notes not recorded")
	}
}

func TestActionItem_CompleteTwiceFails(t *testing.T) {
	action := NewActionItem(uuid.New(), "standup.mp3", "John will send the report")
	now := time.Now()

	if err := action.Complete(now, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := action.Complete(now, nil); err != ErrInvalidTransition {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestActionItem_IsOverdue(t *testing.T) {
	now := time.Now()
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	open := NewActionItem(uuid.New(), "a.mp3", "x")
	open.Deadline = &past
	if !open.IsOverdue(now) {
		t.Fatal("open action past its deadline must be overdue")
	}

	open.Deadline = &future
	if open.IsOverdue(now) {
		t.Fatal("future deadline must not be overdue")
	}

	done := NewActionItem(uuid.New(), "a.mp3", "x")
	done.Deadline = &past
	if err := done.Complete(now, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if done.IsOverdue(now) {
		t.Fatal("completed actions are never overdue")
	}

	noDeadline := NewActionItem(uuid.New(), "a.mp3", "x")
	if noDeadline.IsOverdue(now) {
		t.Fatal("actions without a deadline are never overdue")
	}
}
