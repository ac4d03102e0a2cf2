package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Chirag2510/QuizApp-React-DotNet/internal/domain"
)

// QuestionRepository manages quiz question persistence.
type QuestionRepository interface {
	Create(ctx context.Context, question *domain.Question) error
	Update(ctx context.Context, question *domain.Question) error
	GetByID(ctx context.Context, id int64) (*domain.Question, error)
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Question, error)
	ListRandom(ctx context.Context, limit int) ([]domain.Question, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id int64) error
}

type questionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository builds the repository.
func NewQuestionRepository(pool *pgxpool.Pool) QuestionRepository {
	return &questionRepository{pool: pool}
}

const questionColumns = `qn_id, qn_in_words, image_name, option1, option2, option3, option4, answer`

func (r *questionRepository) Create(ctx context.Context, q *domain.Question) error {
	const query = `
        INSERT INTO questions (qn_in_words, image_name, option1, option2, option3, option4, answer)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING qn_id`
	return r.pool.QueryRow(ctx, query,
		q.QnInWords,
		q.ImageName,
		q.Option1,
		q.Option2,
		q.Option3,
		q.Option4,
		q.Answer,
	).Scan(&q.ID)
}

func (r *questionRepository) Update(ctx context.Context, q *domain.Question) error {
	const query = `
        UPDATE questions SET qn_in_words=$1, image_name=$2, option1=$3, option2=$4,
            option3=$5, option4=$6, answer=$7
        WHERE qn_id=$8`
	cmd, err := r.pool.Exec(ctx, query,
		q.QnInWords,
		q.ImageName,
		q.Option1,
		q.Option2,
		q.Option3,
		q.Option4,
		q.Answer,
		q.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *questionRepository) GetByID(ctx context.Context, id int64) (*domain.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE qn_id=$1`
	return scanQuestion(r.pool.QueryRow(ctx, query, id))
}

func (r *questionRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE qn_id = ANY($1) ORDER BY qn_id`
	return r.queryQuestions(ctx, query, ids)
}

func (r *questionRepository) ListRandom(ctx context.Context, limit int) ([]domain.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions ORDER BY random() LIMIT $1`
	return r.queryQuestions(ctx, query, limit)
}

func (r *questionRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM questions`).Scan(&n)
	return n, err
}

func (r *questionRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE qn_id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *questionRepository) queryQuestions(ctx context.Context, query string, args ...any) ([]domain.Question, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, *q)
	}
	return questions, rows.Err()
}

func scanQuestion(row pgx.Row) (*domain.Question, error) {
	var q domain.Question
	if err := row.Scan(
		&q.ID,
		&q.QnInWords,
		&q.ImageName,
		&q.Option1,
		&q.Option2,
		&q.Option3,
		&q.Option4,
		&q.Answer,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &q, nil
}
