package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Chirag2510/QuizApp-React-DotNet/internal/events"
)

// AuditService writes an audit log line for participant and question lifecycle events.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{
		dispatcher: dispatcher,
		logger:     logger.Named("audit"),
	}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	for _, eventType := range []events.EventType{
		events.EventParticipantRegistered,
		events.EventParticipantLoggedIn,
		events.EventParticipantLoggedOut,
		events.EventScoreSubmitted,
		events.EventParticipantDeleted,
		events.EventQuestionUpdated,
		events.EventQuestionDeleted,
	} {
		a.dispatcher.Subscribe(eventType, a.handle)
	}
}

func (a *AuditService) handle(_ context.Context, event events.Event) error {
	fields := []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.Time("at", event.Timestamp),
	}
	if event.SubjectID != 0 {
		fields = append(fields, zap.Int64("subject_id", event.SubjectID))
	}

	switch p := event.Payload.(type) {
	case events.ParticipantPayload:
		// email only; names and results stay out of the audit trail
		fields = append(fields, zap.String("email", p.Email))
	case events.ScoreSubmittedPayload:
		fields = append(fields, zap.Bool("overwrote", p.Overwrote))
	}

	a.logger.Info(string(event.Type), fields...)
	return nil
}
