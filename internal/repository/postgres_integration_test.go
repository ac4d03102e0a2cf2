package repository_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	pgmodule "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/Chirag2510/QuizApp-React-DotNet/internal/domain"
	"github.com/Chirag2510/QuizApp-React-DotNet/internal/persistence"
	"github.com/Chirag2510/QuizApp-React-DotNet/internal/repository"
)

// setupPool starts a PostgreSQL container with the schema applied.
// Tests are skipped when no container runtime is reachable.
func setupPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if testing.Short() || os.Getenv("SKIP_INTEGRATION") == "true" {
		t.Skip("skipping PostgreSQL integration tests")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := pgmodule.Run(ctx,
		"postgres:16-alpine",
		pgmodule.WithDatabase("quiz_test"),
		pgmodule.WithUsername("test"),
		pgmodule.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Skipf("skipping: could not start PostgreSQL container: %v", err)
	}
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, persistence.RunMigrations(ctx, pool, zap.NewNop()))
	return pool
}

func TestPostgresParticipantRepository(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	repo := repository.NewParticipantRepository(pool)

	p := &domain.Participant{Email: "alice@example.com", Name: "Alice", PasswordHash: "digest"}
	require.NoError(t, repo.Create(ctx, p))
	assert.NotZero(t, p.ID)

	got, err := repo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Nil(t, got.Score)

	_, err = repo.GetByEmail(ctx, "Alice@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, repo.UpdateResult(ctx, p.ID, "c1", "c2"))
	got, err = repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Score)
	assert.Equal(t, "c1", *got.Score)
	assert.Equal(t, "c2", *got.TimeTaken)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, p.ID))
	assert.ErrorIs(t, repo.Delete(ctx, p.ID), repository.ErrNotFound)
	assert.ErrorIs(t, repo.UpdateResult(ctx, p.ID, "a", "b"), repository.ErrNotFound)
	_, err = repo.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPostgresQuestionRepository(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	repo := repository.NewQuestionRepository(pool)

	img := "q1.png"
	for i := 0; i < 6; i++ {
		q := &domain.Question{QnInWords: "Which?", Option1: "a", Option2: "b", Option3: "c", Option4: "d", Answer: i % 4}
		if i == 0 {
			q.ImageName = &img
		}
		require.NoError(t, repo.Create(ctx, q))
	}

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	round, err := repo.ListRandom(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, round, 5)

	first, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, first.ImageName)
	assert.Equal(t, img, *first.ImageName)

	byIDs, err := repo.GetByIDs(ctx, []int64{2, 1, 999})
	require.NoError(t, err)
	assert.Len(t, byIDs, 2)

	first.Answer = 3
	require.NoError(t, repo.Update(ctx, first))
	assert.ErrorIs(t, repo.Update(ctx, &domain.Question{ID: 999}), repository.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, 1))
	_, err = repo.GetByID(ctx, 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
