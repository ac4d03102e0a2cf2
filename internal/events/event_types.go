package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventParticipantRegistered EventType = "participant_registered"
	EventParticipantLoggedIn   EventType = "participant_logged_in"
	EventParticipantLoggedOut  EventType = "participant_logged_out"
	EventScoreSubmitted        EventType = "score_submitted"
	EventParticipantDeleted    EventType = "participant_deleted"
	EventQuestionUpdated       EventType = "question_updated"
	EventQuestionDeleted       EventType = "question_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID int64       `json:"subject_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// New builds an event with a fresh id stamped at the current time.
func New(eventType EventType, subjectID int64, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: subjectID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// ParticipantPayload carries non-secret participant facts.
type ParticipantPayload struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// ScoreSubmittedPayload intentionally carries no score values; they are stored encrypted.
type ScoreSubmittedPayload struct {
	Overwrote bool `json:"overwrote"`
}
