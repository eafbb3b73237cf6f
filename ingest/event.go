package ingest

import (
	"encoding/json"
	"errors"
	"strings"
)

// WorkspaceMember is the only actor type whose changes are synced.
const WorkspaceMember = "workspace-member"

var ErrInvalidPayload = errors.New("invalid json")

// Event is one of CompanyEvent, EntryEvent or Unrecognized.
type Event interface {
	EventType() string
	Actor() string
}

type header struct {
	Type      string
	ActorType string
}

func (h header) EventType() string { return h.Type }
func (h header) Actor() string     { return h.ActorType }

// CompanyEvent is a record event on the configured companies object.
type CompanyEvent struct {
	header
	RecordID string
	Deleted  bool
}

// EntryEvent is a list-entry event on the configured fast track list.
type EntryEvent struct {
	header
	EntryID string
	Deleted bool
}

// Unrecognized is any event that matches neither flow.
type Unrecognized struct {
	header
}

// Payload is a parsed webhook delivery.
type Payload struct {
	Events  []Event
	Dropped int
}

// First returns the only event that is processed, or nil for an empty
// delivery.
func (p *Payload) First() Event {
	if len(p.Events) == 0 {
		return nil
	}
	return p.Events[0]
}

type rawPayload struct {
	Events []json.RawMessage `json:"events"`
}

type rawEvent struct {
	EventType string `json:"event_type"`
	ID        struct {
		WorkspaceID string `json:"workspace_id"`
		ObjectID    string `json:"object_id"`
		RecordID    string `json:"record_id"`
		ListID      string `json:"list_id"`
		EntryID     string `json:"entry_id"`
	} `json:"id"`
	Actor struct {
		Type string `json:"type"`
		ID   string `json:"id"`
	} `json:"actor"`
}

// Matcher holds the vendor identifiers that select the company and fast
// track flows.
type Matcher struct {
	CompanyObjectID string
	FastTrackListID string
}

// Parse decodes a delivery and classifies its first event. Additional events
// are counted in Dropped and never decoded, so a malformed trailing event
// does not reject the delivery.
func (m Matcher) Parse(body []byte) (*Payload, error) {
	var raw rawPayload
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, ErrInvalidPayload
	}

	p := &Payload{}
	if len(raw.Events) == 0 {
		return p, nil
	}
	var first rawEvent
	if err := json.Unmarshal(raw.Events[0], &first); err != nil {
		return nil, ErrInvalidPayload
	}
	p.Events = []Event{m.classify(first)}
	p.Dropped = len(raw.Events) - 1
	return p, nil
}

func (m Matcher) classify(ev rawEvent) Event {
	h := header{Type: ev.EventType, ActorType: ev.Actor.Type}
	deleted := strings.Contains(ev.EventType, "deleted")

	switch {
	case strings.Contains(ev.EventType, "record") && ev.ID.ObjectID != "" && ev.ID.ObjectID == m.CompanyObjectID:
		return CompanyEvent{header: h, RecordID: ev.ID.RecordID, Deleted: deleted}
	case strings.Contains(ev.EventType, "entry") && ev.ID.ListID != "" && ev.ID.ListID == m.FastTrackListID:
		return EntryEvent{header: h, EntryID: ev.ID.EntryID, Deleted: deleted}
	default:
		return Unrecognized{header: h}
	}
}

// TargetID returns the record or entry id an event refers to.
func TargetID(ev Event) string {
	switch e := ev.(type) {
	case CompanyEvent:
		return e.RecordID
	case EntryEvent:
		return e.EntryID
	}
	return ""
}
