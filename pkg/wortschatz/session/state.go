// Package session holds the presentation-side state of one user session: the
// current entry list, the current error message and the submission lifecycle
// Idle -> Submitting -> (success | failure) -> Idle.
package session

import (
	"errors"

	"github.com/cognicore/wortschatz/pkg/wortschatz/lexical"
)

// User-facing messages.
const (
	MsgEmptyResponse     = "No result returned"
	MsgMalformedResponse = "Invalid JSON in response"
	MsgRequestFailed     = "Enrichment request failed"
)

// Phase is the submission lifecycle position.
type Phase int

const (
	Idle Phase = iota
	Submitting
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	default:
		return "unknown"
	}
}

// Outcome records how the most recent applied submission ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeSuccess
	OutcomeFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	default:
		return "none"
	}
}

// State is the complete session state. It is only changed through Reduce.
type State struct {
	Phase     Phase
	Outcome   Outcome
	Entries   []lexical.Entry
	Err       string
	Seq       uint64 // sequence number of the newest submission or reset
	RequestID string
}

// EventKind enumerates state transitions.
type EventKind int

const (
	EventSubmitted EventKind = iota
	EventSucceeded
	EventFailed
	EventReset
)

// Event drives Reduce. Seq ties completion events to their submission.
type Event struct {
	Kind      EventKind
	Seq       uint64
	RequestID string
	Entries   []lexical.Entry
	Err       error
}

// Reduce returns the state after ev. It never mutates s.
//
// Completion events whose Seq is not the newest submission are stale and
// leave the state untouched, so an older reply can never overwrite a newer one.
// A malformed reply clears the entry list; every other failure keeps it.
func Reduce(s State, ev Event) State {
	switch ev.Kind {
	case EventSubmitted:
		s.Phase = Submitting
		s.Outcome = OutcomeNone
		s.Err = ""
		s.Seq = ev.Seq
		s.RequestID = ev.RequestID
	case EventSucceeded:
		if ev.Seq != s.Seq || s.Phase != Submitting {
			return s
		}
		s.Phase = Idle
		s.Outcome = OutcomeSuccess
		s.Err = ""
		s.Entries = append([]lexical.Entry{}, ev.Entries...)
	case EventFailed:
		if ev.Seq != s.Seq || s.Phase != Submitting {
			return s
		}
		s.Phase = Idle
		s.Outcome = OutcomeFailure
		s.Err = Message(ev.Err)
		if errors.Is(ev.Err, lexical.ErrMalformedResponse) {
			s.Entries = []lexical.Entry{}
		}
	case EventReset:
		s = State{Seq: ev.Seq, Entries: []lexical.Entry{}}
	}
	return s
}

// Message maps an enrichment error to the text shown to the user.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, lexical.ErrEmptyResponse):
		return MsgEmptyResponse
	case errors.Is(err, lexical.ErrMalformedResponse):
		return MsgMalformedResponse
	default:
		return MsgRequestFailed
	}
}
