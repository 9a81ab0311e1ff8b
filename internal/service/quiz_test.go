package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/apperror"
	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/model"
)

type mockQuizRepo struct {
	quizzes map[string]*model.Quiz
	nextID  int
}

func newMockQuizRepo() *mockQuizRepo {
	return &mockQuizRepo{quizzes: make(map[string]*model.Quiz)}
}

func (m *mockQuizRepo) id() string {
	m.nextID++
	return fmt.Sprintf("mock-%d", m.nextID)
}

func (m *mockQuizRepo) CreateQuiz(_ context.Context, quiz *model.Quiz) error {
	quiz.ID = m.id()
	stored := *quiz
	m.quizzes[quiz.ID] = &stored
	return nil
}

func (m *mockQuizRepo) CreateQuestion(_ context.Context, question *model.Question) error {
	quiz, ok := m.quizzes[question.QuizID]
	if !ok {
		return apperror.NotFound("quiz", question.QuizID)
	}
	question.ID = m.id()
	quiz.Questions = append(quiz.Questions, *question)
	return nil
}

func (m *mockQuizRepo) CreateAnswer(_ context.Context, answer *model.Answer) error {
	answer.ID = m.id()
	for _, quiz := range m.quizzes {
		for i := range quiz.Questions {
			if quiz.Questions[i].ID == answer.QuestionID {
				quiz.Questions[i].Answers = append(quiz.Questions[i].Answers, *answer)
				return nil
			}
		}
	}
	return apperror.NotFound("question", answer.QuestionID)
}

func (m *mockQuizRepo) GetQuiz(_ context.Context, id string) (*model.Quiz, error) {
	quiz, ok := m.quizzes[id]
	if !ok {
		return nil, apperror.NotFound("quiz", id)
	}
	result := *quiz
	return &result, nil
}

func (m *mockQuizRepo) GetQuestion(_ context.Context, id string) (*model.Question, error) {
	for _, quiz := range m.quizzes {
		for i := range quiz.Questions {
			if quiz.Questions[i].ID == id {
				q := quiz.Questions[i]
				return &q, nil
			}
		}
	}
	return nil, apperror.NotFound("question", id)
}

func (m *mockQuizRepo) ListQuizzes(_ context.Context) ([]model.Quiz, error) {
	out := []model.Quiz{}
	for _, q := range m.quizzes {
		out = append(out, *q)
	}
	return out, nil
}

func (m *mockQuizRepo) CountQuestions(_ context.Context, quizID string) (int, error) {
	quiz, ok := m.quizzes[quizID]
	if !ok {
		return 0, apperror.NotFound("quiz", quizID)
	}
	return len(quiz.Questions), nil
}

func (m *mockQuizRepo) GetQuizAnswers(_ context.Context, quizID string, answerIDs []string) ([]model.Answer, error) {
	quiz, ok := m.quizzes[quizID]
	if !ok {
		return []model.Answer{}, nil
	}
	found := []model.Answer{}
	seen := map[string]bool{}
	for _, id := range answerIDs {
		if seen[id] {
			continue // mirrors SQL: IN() matches each row once
		}
		seen[id] = true
		for _, q := range quiz.Questions {
			for _, a := range q.Answers {
				if a.ID == id {
					found = append(found, a)
				}
			}
		}
	}
	return found, nil
}

// seedQuiz builds a scored or unscored quiz with [questions]x2 answers, the
// first answer of each question correct.
func seedQuiz(t *testing.T, repo *mockQuizRepo, scored bool, questions int) *model.Quiz {
	t.Helper()
	ctx := context.Background()

	quiz := &model.Quiz{Title: "test quiz", HasCorrectAnswers: scored}
	if err := repo.CreateQuiz(ctx, quiz); err != nil {
		t.Fatalf("seeding quiz: %v", err)
	}
	for i := 0; i < questions; i++ {
		q := &model.Question{QuizID: quiz.ID, Text: fmt.Sprintf("q%d", i)}
		if err := repo.CreateQuestion(ctx, q); err != nil {
			t.Fatalf("seeding question: %v", err)
		}
		for j, correct := range []bool{true, false} {
			a := &model.Answer{QuestionID: q.ID, Text: fmt.Sprintf("a%d", j), IsCorrect: correct}
			if err := repo.CreateAnswer(ctx, a); err != nil {
				t.Fatalf("seeding answer: %v", err)
			}
		}
	}

	full, err := repo.GetQuiz(ctx, quiz.ID)
	if err != nil {
		t.Fatalf("reloading quiz: %v", err)
	}
	return full
}

func TestSubmit_UnknownQuizNotFound(t *testing.T) {
	svc := NewQuizService(newMockQuizRepo(), testLogger())

	_, err := svc.Submit(context.Background(), "missing", nil)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Submit(missing quiz) error = %v, want ErrNotFound", err)
	}
}

func TestSubmit_NonScoredEchoesSelections(t *testing.T) {
	repo := newMockQuizRepo()
	svc := NewQuizService(repo, testLogger())
	quiz := seedQuiz(t, repo, false, 2)

	// The IDs are echoed unchanged, even nonsense ones; there is no validation.
	selections := []string{"whatever", "ids", "go", "here"}
	sub, err := svc.Submit(context.Background(), quiz.ID, selections)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if sub.Result != nil {
		t.Fatal("non-scored quiz produced a scored result")
	}
	if len(sub.Echo) != len(selections) {
		t.Fatalf("Echo has %d entries, want %d", len(sub.Echo), len(selections))
	}
	for i, id := range selections {
		if sub.Echo[i] != id {
			t.Errorf("Echo[%d] = %q, want %q", i, sub.Echo[i], id)
		}
	}
}

func TestSubmit_ScoredQuizGrades(t *testing.T) {
	repo := newMockQuizRepo()
	svc := NewQuizService(repo, testLogger())
	quiz := seedQuiz(t, repo, true, 3)

	correct := func(q model.Question) string { return q.Answers[0].ID }
	wrong := func(q model.Question) string { return q.Answers[1].ID }

	t.Run("perfect score passes", func(t *testing.T) {
		ids := []string{}
		for _, q := range quiz.Questions {
			ids = append(ids, correct(q))
		}
		sub, err := svc.Submit(context.Background(), quiz.ID, ids)
		if err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
		r := sub.Result
		if r == nil {
			t.Fatal("scored quiz returned no result")
		}
		if r.Score != 3 || r.Total != 3 || !r.Passed {
			t.Errorf("result = %+v, want score=3 total=3 passed", r)
		}
	})

	t.Run("partial score fails", func(t *testing.T) {
		ids := []string{correct(quiz.Questions[0]), wrong(quiz.Questions[1]), wrong(quiz.Questions[2])}
		sub, err := svc.Submit(context.Background(), quiz.ID, ids)
		if err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
		r := sub.Result
		if r.Score != 1 || r.Total != 3 || r.Passed {
			t.Errorf("result = %+v, want score=1 total=3 failed", r)
		}
	})

	t.Run("foreign answer rejected", func(t *testing.T) {
		other := seedQuiz(t, repo, true, 1)
		ids := []string{correct(quiz.Questions[0]), correct(other.Questions[0])}
		_, err := svc.Submit(context.Background(), quiz.ID, ids)
		if !errors.Is(err, apperror.ErrValidation) {
			t.Errorf("Submit(foreign answer) error = %v, want ErrValidation", err)
		}
	})

	t.Run("two answers for one question rejected", func(t *testing.T) {
		q := quiz.Questions[0]
		_, err := svc.Submit(context.Background(), quiz.ID, []string{correct(q), wrong(q)})
		if !errors.Is(err, apperror.ErrValidation) {
			t.Errorf("Submit(double answer) error = %v, want ErrValidation", err)
		}
	})

	t.Run("duplicate answer ID rejected", func(t *testing.T) {
		q := quiz.Questions[0]
		_, err := svc.Submit(context.Background(), quiz.ID, []string{correct(q), correct(q)})
		if !errors.Is(err, apperror.ErrValidation) {
			t.Errorf("Submit(duplicate ID) error = %v, want ErrValidation", err)
		}
	})
}
