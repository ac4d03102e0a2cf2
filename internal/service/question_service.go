package service

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Chirag2510/QuizApp-React-DotNet/internal/domain"
	"github.com/Chirag2510/QuizApp-React-DotNet/internal/events"
	"github.com/Chirag2510/QuizApp-React-DotNet/internal/repository"
	"github.com/Chirag2510/QuizApp-React-DotNet/pkg/util"
)

// DefaultQuestionsPerRound is used when no round size is configured.
const DefaultQuestionsPerRound = 5

// QuestionService serves quiz rounds and answer sheets.
type QuestionService struct {
	questions  repository.QuestionRepository
	perRound   int
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// QuestionDependencies bundles collaborators for the question service.
type QuestionDependencies struct {
	QuestionRepo repository.QuestionRepository
	PerRound     int
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
}

// NewQuestionService builds the service.
func NewQuestionService(deps QuestionDependencies) *QuestionService {
	perRound := deps.PerRound
	if perRound <= 0 {
		perRound = DefaultQuestionsPerRound
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuestionService{
		questions:  deps.QuestionRepo,
		perRound:   perRound,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// Round returns a random selection of questions for one quiz attempt.
func (s *QuestionService) Round(ctx context.Context) ([]domain.Question, error) {
	questions, err := s.questions.ListRandom(ctx, s.perRound)
	if err != nil {
		return nil, util.NewInternalError(fmt.Errorf("list random questions: %w", err))
	}
	return questions, nil
}

// Get returns a single question including its answer.
func (s *QuestionService) Get(ctx context.Context, id int64) (*domain.Question, error) {
	q, err := s.questions.GetByID(ctx, id)
	if err != nil {
		return nil, questionLookupError(id, err)
	}
	return q, nil
}

// Update replaces a question. The path id must match the body id.
func (s *QuestionService) Update(ctx context.Context, id int64, q domain.Question) error {
	if id != q.ID {
		return util.NewBadRequest(msgIDMismatch)
	}
	if err := validateQuestion(q); err != nil {
		return err
	}
	if err := s.questions.Update(ctx, &q); err != nil {
		return questionLookupError(id, err)
	}
	publish(ctx, s.dispatcher, s.logger, events.New(events.EventQuestionUpdated, id, nil))
	return nil
}

// Answers returns the full questions for the given ids. Unknown ids are skipped.
func (s *QuestionService) Answers(ctx context.Context, ids []int64) ([]domain.Question, error) {
	if len(ids) == 0 {
		return nil, util.NewBadRequest("No question IDs provided")
	}
	questions, err := s.questions.GetByIDs(ctx, ids)
	if err != nil {
		return nil, util.NewInternalError(fmt.Errorf("get questions by ids: %w", err))
	}
	if len(questions) == 0 {
		return nil, util.NewNotFound("No questions found for the provided IDs")
	}
	return questions, nil
}

// Delete removes a question.
func (s *QuestionService) Delete(ctx context.Context, id int64) error {
	if err := s.questions.Delete(ctx, id); err != nil {
		return questionLookupError(id, err)
	}
	publish(ctx, s.dispatcher, s.logger, events.New(events.EventQuestionDeleted, id, nil))
	return nil
}

func questionLookupError(id int64, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return util.NewNotFound(fmt.Sprintf("Question with ID %d not found", id))
	}
	return util.NewInternalError(fmt.Errorf("question %d: %w", id, err))
}

func validateQuestion(q domain.Question) error {
	if q.QnInWords == "" {
		return util.NewBadRequest("Question text is required")
	}
	if q.Answer < 0 || q.Answer > 3 {
		return util.NewBadRequest("Answer must be an option index between 0 and 3")
	}
	return nil
}

// seedFile is the on-disk layout of a question seed file.
type seedFile struct {
	Questions []seedQuestion `yaml:"questions"`
}

type seedQuestion struct {
	Text    string   `yaml:"text"`
	Image   string   `yaml:"image"`
	Options []string `yaml:"options"`
	Answer  int      `yaml:"answer"`
}

// LoadSeed parses a YAML question seed file.
func LoadSeed(path string) ([]domain.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}

	out := make([]domain.Question, 0, len(file.Questions))
	for i, sq := range file.Questions {
		if len(sq.Options) != 4 {
			return nil, fmt.Errorf("seed question %d: want 4 options, got %d", i+1, len(sq.Options))
		}
		q := domain.Question{
			QnInWords: sq.Text,
			Option1:   sq.Options[0],
			Option2:   sq.Options[1],
			Option3:   sq.Options[2],
			Option4:   sq.Options[3],
			Answer:    sq.Answer,
		}
		if sq.Image != "" {
			img := sq.Image
			q.ImageName = &img
		}
		if err := validateQuestion(q); err != nil {
			return nil, fmt.Errorf("seed question %d: %w", i+1, err)
		}
		out = append(out, q)
	}
	return out, nil
}

// Seed inserts the questions from path when the store holds none yet.
// It returns the number of questions inserted.
func (s *QuestionService) Seed(ctx context.Context, path string) (int, error) {
	if path == "" {
		return 0, nil
	}
	existing, err := s.questions.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	if existing > 0 {
		s.logger.Info("question store already populated, skipping seed", zap.Int("count", existing))
		return 0, nil
	}

	questions, err := LoadSeed(path)
	if err != nil {
		return 0, err
	}
	for i := range questions {
		if err := s.questions.Create(ctx, &questions[i]); err != nil {
			return i, fmt.Errorf("insert seed question %d: %w", i+1, err)
		}
	}
	s.logger.Info("seeded questions", zap.String("file", path), zap.Int("count", len(questions)))
	return len(questions), nil
}
