package domain

// Participant is the identity record of a quiz taker.
//
// Score and TimeTaken hold ciphertext produced by the field cipher; they are
// nil until the participant submits a result.
type Participant struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	Score        *string
	TimeTaken    *string
}

// ParticipantResult is a participant with score fields decrypted for display.
type ParticipantResult struct {
	ID        int64
	Email     string
	Name      string
	Score     *string
	TimeTaken *string
}
