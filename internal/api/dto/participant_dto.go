package dto

import (
	"bytes"
	"encoding/json"

	"github.com/Chirag2510/QuizApp-React-DotNet/internal/domain"
)

// SignupRequest payload for new participants.
type SignupRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	ParticipantID int64  `json:"participantId"`
	Token         string `json:"token"`
}

// MessageResponse carries a single human readable message.
type MessageResponse struct {
	Message string `json:"message"`
}

// DecimalString accepts either a JSON string or a JSON number and keeps its
// textual form. Whether the text is a valid non-negative integer is checked
// by the service.
type DecimalString string

// UnmarshalJSON implements json.Unmarshaler.
func (d *DecimalString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*d = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = DecimalString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*d = DecimalString(n.String())
	return nil
}

// ResultRequest is the score submission body.
type ResultRequest struct {
	ParticipantID int64         `json:"participantId"`
	Score         DecimalString `json:"score"`
	TimeTaken     DecimalString `json:"timeTaken"`
}

// ParticipantResponse is the public view of a participant. The password
// digest is never part of it.
type ParticipantResponse struct {
	ParticipantID int64   `json:"participantId"`
	Email         string  `json:"email"`
	Name          string  `json:"name"`
	Score         *string `json:"score"`
	TimeTaken     *string `json:"timeTaken"`
}

// NewParticipantResponse maps a decrypted participant.
func NewParticipantResponse(p domain.ParticipantResult) ParticipantResponse {
	return ParticipantResponse{
		ParticipantID: p.ID,
		Email:         p.Email,
		Name:          p.Name,
		Score:         p.Score,
		TimeTaken:     p.TimeTaken,
	}
}
