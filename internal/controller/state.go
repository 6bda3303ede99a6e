package controller

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// State of a view controller
type State int

const (
	Idle State = iota
	Loading
	Success
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Failed:
		return "failure"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// MarshalText lets states travel as strings in JSON frames
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Event drives a transition
type Event int

const (
	Start Event = iota
	Resolve
	Reject
	Reset
)

func (e Event) String() string {
	switch e {
	case Start:
		return "start"
	case Resolve:
		return "resolve"
	case Reject:
		return "reject"
	case Reset:
		return "reset"
	default:
		return fmt.Sprintf("event(%d)", int(e))
	}
}

func (e Event) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// ErrInvalidTransition is returned for an event the current state does not accept
var ErrInvalidTransition = errors.New("invalid transition")

// Transition is the pure transition function shared by every controller.
//
//	Idle    --start-->   Loading
//	Success --start-->   Loading
//	Loading --resolve--> Success
//	Loading --reject-->  Failure
//	Success --reset-->   Idle
//	Failure --reset-->   Idle
func Transition(s State, e Event) (State, error) {
	switch {
	case e == Start && (s == Idle || s == Success):
		return Loading, nil
	case e == Resolve && s == Loading:
		return Success, nil
	case e == Reject && s == Loading:
		return Failed, nil
	case e == Reset && (s == Success || s == Failed):
		return Idle, nil
	}
	return s, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, e, s)
}

// Change describes one applied transition
type Change struct {
	RunID string    `json:"run_id"`
	From  State     `json:"from"`
	To    State     `json:"to"`
	Event Event     `json:"event"`
	At    time.Time `json:"at"`
}

// Observer is called synchronously for every applied transition
type Observer func(Change)

// Machine holds the state of one controller and notifies observers
type Machine struct {
	mu        sync.Mutex
	state     State
	runID     string
	observers []Observer
}

func newMachine() *Machine {
	return &Machine{state: Idle}
}

// State returns the current state
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Observe registers fn for all future transitions
func (m *Machine) Observe(fn Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observers = append(m.observers, fn)
}

// begin starts a new run and returns its id
func (m *Machine) begin() (string, error) {
	id := uuid.NewString()
	m.mu.Lock()
	m.runID = id
	m.mu.Unlock()
	return id, m.fire(Start)
}

func (m *Machine) fire(e Event) error {
	m.mu.Lock()
	from := m.state
	to, err := Transition(from, e)
	if err != nil {
		m.mu.Unlock()
		return err
	}
	m.state = to
	change := Change{RunID: m.runID, From: from, To: to, Event: e, At: time.Now()}
	observers := append([]Observer(nil), m.observers...)
	m.mu.Unlock()

	for _, fn := range observers {
		fn(change)
	}
	return nil
}
