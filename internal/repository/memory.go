package repository

import (
	"context"
	"math/rand"
	"sort"
	"sync"

	"github.com/Chirag2510/QuizApp-React-DotNet/internal/domain"
)

// MemoryParticipantRepository keeps participants in process memory. It backs
// the service when no database is configured and is used in tests.
type MemoryParticipantRepository struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64]domain.Participant
}

// NewMemoryParticipantRepository returns an empty store.
func NewMemoryParticipantRepository() *MemoryParticipantRepository {
	return &MemoryParticipantRepository{rows: make(map[int64]domain.Participant)}
}

func (r *MemoryParticipantRepository) Create(_ context.Context, participant *domain.Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if participant.ID == 0 {
		r.nextID++
		participant.ID = r.nextID
	} else if participant.ID > r.nextID {
		r.nextID = participant.ID
	}
	r.rows[participant.ID] = cloneParticipant(*participant)
	return nil
}

func (r *MemoryParticipantRepository) GetByID(_ context.Context, id int64) (*domain.Participant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	p = cloneParticipant(p)
	return &p, nil
}

func (r *MemoryParticipantRepository) GetByEmail(_ context.Context, email string) (*domain.Participant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var found *domain.Participant
	for _, p := range r.rows {
		if p.Email != email {
			continue
		}
		if found == nil || p.ID < found.ID {
			c := cloneParticipant(p)
			found = &c
		}
	}
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

func (r *MemoryParticipantRepository) List(_ context.Context) ([]domain.Participant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Participant, 0, len(r.rows))
	for _, p := range r.rows {
		out = append(out, cloneParticipant(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryParticipantRepository) UpdateResult(_ context.Context, id int64, score, timeTaken string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.rows[id]
	if !ok {
		return ErrNotFound
	}
	p.Score = &score
	p.TimeTaken = &timeTaken
	r.rows[id] = p
	return nil
}

func (r *MemoryParticipantRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[id]; !ok {
		return ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func cloneParticipant(p domain.Participant) domain.Participant {
	if p.Score != nil {
		s := *p.Score
		p.Score = &s
	}
	if p.TimeTaken != nil {
		s := *p.TimeTaken
		p.TimeTaken = &s
	}
	return p
}

// MemoryQuestionRepository keeps questions in process memory.
type MemoryQuestionRepository struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64]domain.Question
}

// NewMemoryQuestionRepository returns an empty store.
func NewMemoryQuestionRepository() *MemoryQuestionRepository {
	return &MemoryQuestionRepository{rows: make(map[int64]domain.Question)}
}

func (r *MemoryQuestionRepository) Create(_ context.Context, q *domain.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if q.ID == 0 {
		r.nextID++
		q.ID = r.nextID
	} else if q.ID > r.nextID {
		r.nextID = q.ID
	}
	r.rows[q.ID] = *q
	return nil
}

func (r *MemoryQuestionRepository) Update(_ context.Context, q *domain.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[q.ID]; !ok {
		return ErrNotFound
	}
	r.rows[q.ID] = *q
	return nil
}

func (r *MemoryQuestionRepository) GetByID(_ context.Context, id int64) (*domain.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q, ok := r.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &q, nil
}

func (r *MemoryQuestionRepository) GetByIDs(_ context.Context, ids []int64) ([]domain.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[int64]struct{}, len(ids))
	var out []domain.Question
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if q, ok := r.rows[id]; ok {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryQuestionRepository) ListRandom(_ context.Context, limit int) ([]domain.Question, error) {
	r.mu.RLock()
	all := make([]domain.Question, 0, len(r.rows))
	for _, q := range r.rows {
		all = append(all, q)
	}
	r.mu.RUnlock()

	rand.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })
	if limit >= 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *MemoryQuestionRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rows), nil
}

func (r *MemoryQuestionRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[id]; !ok {
		return ErrNotFound
	}
	delete(r.rows, id)
	return nil
}
