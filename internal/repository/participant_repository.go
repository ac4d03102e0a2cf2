package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Chirag2510/QuizApp-React-DotNet/internal/domain"
)

// ErrNotFound is returned when no record matches the lookup.
var ErrNotFound = errors.New("record not found")

// ParticipantRepository defines persistence access for participants.
type ParticipantRepository interface {
	Create(ctx context.Context, participant *domain.Participant) error
	GetByID(ctx context.Context, id int64) (*domain.Participant, error)
	GetByEmail(ctx context.Context, email string) (*domain.Participant, error)
	List(ctx context.Context) ([]domain.Participant, error)
	UpdateResult(ctx context.Context, id int64, score, timeTaken string) error
	Delete(ctx context.Context, id int64) error
}

type participantRepository struct {
	pool *pgxpool.Pool
}

// NewParticipantRepository returns a Postgres-backed implementation.
func NewParticipantRepository(pool *pgxpool.Pool) ParticipantRepository {
	return &participantRepository{pool: pool}
}

const participantColumns = `participant_id, email, name, password, score, time_taken`

func (r *participantRepository) Create(ctx context.Context, participant *domain.Participant) error {
	const query = `
        INSERT INTO participants (email, name, password, score, time_taken)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING participant_id`

	return r.pool.QueryRow(ctx, query,
		participant.Email,
		participant.Name,
		participant.PasswordHash,
		participant.Score,
		participant.TimeTaken,
	).Scan(&participant.ID)
}

func (r *participantRepository) GetByID(ctx context.Context, id int64) (*domain.Participant, error) {
	query := `SELECT ` + participantColumns + ` FROM participants WHERE participant_id=$1`
	return scanParticipant(r.pool.QueryRow(ctx, query, id))
}

func (r *participantRepository) GetByEmail(ctx context.Context, email string) (*domain.Participant, error) {
	query := `SELECT ` + participantColumns + ` FROM participants WHERE email=$1 ORDER BY participant_id LIMIT 1`
	return scanParticipant(r.pool.QueryRow(ctx, query, email))
}

func (r *participantRepository) List(ctx context.Context) ([]domain.Participant, error) {
	query := `SELECT ` + participantColumns + ` FROM participants ORDER BY participant_id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var participants []domain.Participant
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, err
		}
		participants = append(participants, *p)
	}
	return participants, rows.Err()
}

func (r *participantRepository) UpdateResult(ctx context.Context, id int64, score, timeTaken string) error {
	const query = `
        UPDATE participants SET score=$1, time_taken=$2
        WHERE participant_id=$3`

	cmd, err := r.pool.Exec(ctx, query, score, timeTaken, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *participantRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM participants WHERE participant_id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanParticipant(row pgx.Row) (*domain.Participant, error) {
	var p domain.Participant
	if err := row.Scan(
		&p.ID,
		&p.Email,
		&p.Name,
		&p.PasswordHash,
		&p.Score,
		&p.TimeTaken,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}
