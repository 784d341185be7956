package voice

import (
	"errors"
	"testing"

	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/domain"
)

func TestMachineSingleShotCycle(t *testing.T) {
	m := NewMachine("s1", "chat1", false)

	if m.State() != StateIdle {
		t.Fatalf("new machine must start idle")
	}
	if err := m.Record(); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := m.Process(); err != nil {
		t.Fatalf("process: %v", err)
	}
	next, err := m.Complete()
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if next != StateIdle {
		t.Fatalf("single-shot session must return to idle, got %s", next)
	}
}

func TestMachineContinuousLoopsBackToRecording(t *testing.T) {
	m := NewMachine("s1", "chat1", true)

	if err := m.Record(); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := m.Process(); err != nil {
		t.Fatalf("process: %v", err)
	}
	next, err := m.Complete()
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if next != StateRecording {
		t.Fatalf("continuous session must re-enter recording, got %s", next)
	}

	// The loop only continues through Complete; a second Record from
	// Recording is rejected.
	if err := m.Record(); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
}

func TestMachineStopIsAlwaysValid(t *testing.T) {
	m := NewMachine("s1", "chat1", true)
	m.Stop() // idle: no-op

	if err := m.Record(); err != nil {
		t.Fatalf("record: %v", err)
	}
	m.Stop()
	if m.State() != StateIdle {
		t.Fatalf("stop must land in idle")
	}
	if m.Continuous() {
		t.Fatalf("stop must switch continuous mode off")
	}

	// After stop the machine is reusable as a single-shot session.
	if err := m.Record(); err != nil {
		t.Fatalf("record after stop: %v", err)
	}
	if err := m.Process(); err != nil {
		t.Fatalf("process after stop: %v", err)
	}
	next, err := m.Complete()
	if err != nil || next != StateIdle {
		t.Fatalf("expected idle after complete, got (%s, %v)", next, err)
	}
}

func TestMachineRejectsOutOfOrderTransitions(t *testing.T) {
	m := NewMachine("s1", "chat1", false)

	if err := m.Process(); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("process from idle must fail, got %v", err)
	}
	if _, err := m.Complete(); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("complete from idle must fail, got %v", err)
	}
}

func TestSessionsRegistry(t *testing.T) {
	s := NewSessions()
	m := s.Create("abc", "chat9", false)

	got, ok := s.Get("abc")
	if !ok || got != m {
		t.Fatalf("expected stored machine")
	}
	if got.ChatID() != "chat9" {
		t.Fatalf("chat id lost")
	}

	s.Delete("abc")
	if _, ok := s.Get("abc"); ok {
		t.Fatalf("deleted session must be gone")
	}
}
