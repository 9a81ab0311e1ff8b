package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/model"
)

// seedScoredQuiz builds a quiz with three questions of two answers each,
// the first answer of every question being correct. Returns the quiz ID,
// the correct answer IDs, and one wrong answer ID.
func seedScoredQuiz(t *testing.T, env *testEnv) (string, []string, string) {
	t.Helper()
	ctx := context.Background()

	quiz, err := env.quizzes.CreateQuiz(ctx, "Which runner are you?", true)
	if err != nil {
		t.Fatalf("CreateQuiz() error = %v", err)
	}

	var correct []string
	var wrong string
	for i := 0; i < 3; i++ {
		question, err := env.quizzes.CreateQuestion(ctx, quiz.ID, fmt.Sprintf("Question %d", i+1))
		if err != nil {
			t.Fatalf("CreateQuestion() error = %v", err)
		}
		right, err := env.quizzes.CreateAnswer(ctx, question.ID, "right", true)
		if err != nil {
			t.Fatalf("CreateAnswer() error = %v", err)
		}
		other, err := env.quizzes.CreateAnswer(ctx, question.ID, "wrong", false)
		if err != nil {
			t.Fatalf("CreateAnswer() error = %v", err)
		}
		correct = append(correct, right.ID)
		wrong = other.ID
	}
	return quiz.ID, correct, wrong
}

func TestQuizHandler_HandleSubmit_Scored(t *testing.T) {
	env := newTestEnv(t)
	quizID, correct, wrong := seedScoredQuiz(t, env)

	t.Run("perfect score passes", func(t *testing.T) {
		body := fmt.Sprintf(`{"quiz":%q,"answers":[%q,%q,%q]}`, quizID, correct[0], correct[1], correct[2])
		rr := env.do(http.MethodPost, "/api/quizzes/submit", body, "")

		assert.Equal(t, http.StatusOK, rr.Code)

		var result model.QuizResult
		decodeBody(t, rr, &result)
		assert.Equal(t, quizID, result.QuizID)
		assert.Equal(t, 3, result.Score)
		assert.Equal(t, 3, result.Total)
		assert.True(t, result.Passed)
	})

	t.Run("partial score fails", func(t *testing.T) {
		body := fmt.Sprintf(`{"quiz":%q,"answers":[%q,%q,%q]}`, quizID, correct[0], correct[1], wrong)
		rr := env.do(http.MethodPost, "/api/quizzes/submit", body, "")

		assert.Equal(t, http.StatusOK, rr.Code)

		var result model.QuizResult
		decodeBody(t, rr, &result)
		assert.Equal(t, 2, result.Score)
		assert.False(t, result.Passed)
	})

	t.Run("foreign answer is rejected", func(t *testing.T) {
		body := fmt.Sprintf(`{"quiz":%q,"answers":[%q,%q,"not-an-answer"]}`, quizID, correct[0], correct[1])
		rr := env.do(http.MethodPost, "/api/quizzes/submit", body, "")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown quiz is a 404", func(t *testing.T) {
		rr := env.do(http.MethodPost, "/api/quizzes/submit", `{"quiz":"no-such-quiz","answers":[]}`, "")

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestQuizHandler_HandleSubmit_NonScored(t *testing.T) {
	env := newTestEnv(t)

	quiz, err := env.quizzes.CreateQuiz(context.Background(), "Personality check", false)
	if err != nil {
		t.Fatalf("CreateQuiz() error = %v", err)
	}

	body := fmt.Sprintf(`{"quiz":%q,"answers":["a","b","c"]}`, quiz.ID)
	rr := env.do(http.MethodPost, "/api/quizzes/submit", body, "")

	assert.Equal(t, http.StatusOK, rr.Code)

	var res struct {
		Quiz   string   `json:"quiz"`
		Result []string `json:"result"`
	}
	decodeBody(t, rr, &res)
	assert.Equal(t, quiz.ID, res.Quiz)
	assert.Equal(t, []string{"a", "b", "c"}, res.Result)
}

func TestQuizHandler_HandleGet(t *testing.T) {
	env := newTestEnv(t)
	quizID, _, _ := seedScoredQuiz(t, env)

	rr := env.do(http.MethodGet, "/api/quizzes/"+quizID, "", "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var quiz model.Quiz
	decodeBody(t, rr, &quiz)
	assert.Equal(t, quizID, quiz.ID)
	assert.Len(t, quiz.Questions, 3)
	assert.Len(t, quiz.Questions[0].Answers, 2)
}
