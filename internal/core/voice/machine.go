// Package voice models a voice interaction as an explicit state machine:
//
//	Idle → Recording → Processing → Idle
//
// Continuous mode re-enters Recording after Processing completes, but only
// through the Complete transition; Stop is a first-class transition valid
// from every state, so cancelling continuous capture is never a race
// between timers and user input.
package voice

import (
	"fmt"
	"sync"

	"github.com/chinnasivakrishna/brahmakosh-portal/internal/api/metrics"
	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/domain"
)

type State string

const (
	StateIdle       State = "idle"
	StateRecording  State = "recording"
	StateProcessing State = "processing"
)

// Machine is one voice session's state. All transitions are serialized.
type Machine struct {
	mu         sync.Mutex
	id         string
	chatID     string
	state      State
	continuous bool
}

func NewMachine(id, chatID string, continuous bool) *Machine {
	return &Machine{id: id, chatID: chatID, state: StateIdle, continuous: continuous}
}

func (m *Machine) ID() string     { return m.id }
func (m *Machine) ChatID() string { return m.chatID }

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Machine) Continuous() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.continuous
}

// Record begins capturing audio. Valid only from Idle.
func (m *Machine) Record() error {
	return m.transition(StateIdle, StateRecording)
}

// Process hands captured audio off to the backend. Valid only from
// Recording.
func (m *Machine) Process() error {
	return m.transition(StateRecording, StateProcessing)
}

// Complete finishes processing. In continuous mode the session goes
// straight back to Recording; otherwise it returns to Idle. The resulting
// state is returned so callers can tell the client whether to keep the
// microphone open.
func (m *Machine) Complete() (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateProcessing {
		metrics.VoiceTransitionsTotal.WithLabelValues(string(m.state), "rejected").Inc()
		return m.state, fmt.Errorf("%w: complete from %s", domain.ErrInvalidTransition, m.state)
	}
	next := StateIdle
	if m.continuous {
		next = StateRecording
	}
	metrics.VoiceTransitionsTotal.WithLabelValues(string(m.state), string(next)).Inc()
	m.state = next
	return next, nil
}

// Stop forces the session back to Idle and switches continuous mode off.
// Valid from every state; stopping an idle session is a no-op.
func (m *Machine) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateIdle {
		metrics.VoiceTransitionsTotal.WithLabelValues(string(m.state), string(StateIdle)).Inc()
	}
	m.state = StateIdle
	m.continuous = false
}

// SetContinuous toggles continuous capture for subsequent Complete calls.
func (m *Machine) SetContinuous(on bool) {
	m.mu.Lock()
	m.continuous = on
	m.mu.Unlock()
}

func (m *Machine) transition(from, to State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != from {
		metrics.VoiceTransitionsTotal.WithLabelValues(string(m.state), "rejected").Inc()
		return fmt.Errorf("%w: %s from %s", domain.ErrInvalidTransition, to, m.state)
	}
	metrics.VoiceTransitionsTotal.WithLabelValues(string(from), string(to)).Inc()
	m.state = to
	return nil
}

// Sessions tracks live voice sessions by id. State is process-local; a
// restart drops sessions, which simply forces clients to start a new one.
type Sessions struct {
	mu sync.RWMutex
	m  map[string]*Machine
}

func NewSessions() *Sessions {
	return &Sessions{m: make(map[string]*Machine)}
}

func (s *Sessions) Create(id, chatID string, continuous bool) *Machine {
	m := NewMachine(id, chatID, continuous)
	s.mu.Lock()
	s.m[id] = m
	s.mu.Unlock()
	return m
}

func (s *Sessions) Get(id string) (*Machine, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.m[id]
	return m, ok
}

func (s *Sessions) Delete(id string) {
	s.mu.Lock()
	delete(s.m, id)
	s.mu.Unlock()
}
