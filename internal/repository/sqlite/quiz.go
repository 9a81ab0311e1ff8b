package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/xid"

	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/apperror"
	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/model"
	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/repository"
)

var _ repository.QuizRepository = (*DB)(nil)

func (db *DB) CreateQuiz(ctx context.Context, quiz *model.Quiz) error {
	quiz.ID = xid.New().String()
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO quizzes (id, title, has_correct_answers) VALUES (?, ?, ?)`,
		quiz.ID, quiz.Title, quiz.HasCorrectAnswers,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating quiz: %w", err)
	}
	return nil
}

func (db *DB) CreateQuestion(ctx context.Context, question *model.Question) error {
	question.ID = xid.New().String()
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO questions (id, quiz_id, text) VALUES (?, ?, ?)`,
		question.ID, question.QuizID, question.Text,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating question: %w", err)
	}
	return nil
}

func (db *DB) CreateAnswer(ctx context.Context, answer *model.Answer) error {
	answer.ID = xid.New().String()
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO answers (id, question_id, text, is_correct) VALUES (?, ?, ?, ?)`,
		answer.ID, answer.QuestionID, answer.Text, answer.IsCorrect,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating answer: %w", err)
	}
	return nil
}

// GetQuiz loads a quiz with its questions and answers nested, the shape the
// quiz page consumes in one request.
func (db *DB) GetQuiz(ctx context.Context, id string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, title, has_correct_answers FROM quizzes WHERE id = ?`, id,
	).Scan(&quiz.ID, &quiz.Title, &quiz.HasCorrectAnswers)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("quiz", id)
		}
		return nil, fmt.Errorf("sqlite: getting quiz %s: %w", id, err)
	}

	if err := db.loadQuestions(ctx, &quiz); err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (db *DB) GetQuestion(ctx context.Context, id string) (*model.Question, error) {
	var q model.Question
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, quiz_id, text FROM questions WHERE id = ?`, id,
	).Scan(&q.ID, &q.QuizID, &q.Text)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("question", id)
		}
		return nil, fmt.Errorf("sqlite: getting question %s: %w", id, err)
	}
	return &q, nil
}

func (db *DB) ListQuizzes(ctx context.Context) ([]model.Quiz, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, title, has_correct_answers FROM quizzes ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing quizzes: %w", err)
	}
	defer rows.Close()

	quizzes := []model.Quiz{}
	for rows.Next() {
		var q model.Quiz
		if err := rows.Scan(&q.ID, &q.Title, &q.HasCorrectAnswers); err != nil {
			return nil, fmt.Errorf("sqlite: scanning quiz row: %w", err)
		}
		quizzes = append(quizzes, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating quizzes: %w", err)
	}

	for i := range quizzes {
		if err := db.loadQuestions(ctx, &quizzes[i]); err != nil {
			return nil, err
		}
	}
	return quizzes, nil
}

func (db *DB) loadQuestions(ctx context.Context, quiz *model.Quiz) error {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, quiz_id, text FROM questions WHERE quiz_id = ? ORDER BY id`, quiz.ID)
	if err != nil {
		return fmt.Errorf("sqlite: loading questions for quiz %s: %w", quiz.ID, err)
	}
	defer rows.Close()

	quiz.Questions = []model.Question{}
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.QuizID, &q.Text); err != nil {
			return fmt.Errorf("sqlite: scanning question row: %w", err)
		}
		quiz.Questions = append(quiz.Questions, q)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("sqlite: iterating questions: %w", err)
	}

	for i := range quiz.Questions {
		if err := db.loadAnswers(ctx, &quiz.Questions[i]); err != nil {
			return err
		}
	}
	return nil
}

func (db *DB) loadAnswers(ctx context.Context, question *model.Question) error {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, question_id, text, is_correct FROM answers WHERE question_id = ? ORDER BY id`,
		question.ID)
	if err != nil {
		return fmt.Errorf("sqlite: loading answers for question %s: %w", question.ID, err)
	}
	defer rows.Close()

	question.Answers = []model.Answer{}
	for rows.Next() {
		var a model.Answer
		if err := rows.Scan(&a.ID, &a.QuestionID, &a.Text, &a.IsCorrect); err != nil {
			return fmt.Errorf("sqlite: scanning answer row: %w", err)
		}
		question.Answers = append(question.Answers, a)
	}
	return rows.Err()
}

func (db *DB) CountQuestions(ctx context.Context, quizID string) (int, error) {
	var n int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM questions WHERE quiz_id = ?`, quizID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("sqlite: counting questions for quiz %s: %w", quizID, err)
	}
	return n, nil
}

// GetQuizAnswers resolves the submitted answer IDs against one quiz.
// The IN clause is built from placeholders only; the IDs themselves are
// bound as parameters. Selections that don't belong to the quiz fall out of
// the JOIN and are simply not returned.
func (db *DB) GetQuizAnswers(ctx context.Context, quizID string, answerIDs []string) ([]model.Answer, error) {
	if len(answerIDs) == 0 {
		return []model.Answer{}, nil
	}

	placeholders := strings.Repeat("?,", len(answerIDs))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]any, 0, len(answerIDs)+1)
	args = append(args, quizID)
	for _, id := range answerIDs {
		args = append(args, id)
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT a.id, a.question_id, a.text, a.is_correct
		 FROM answers a
		 JOIN questions q ON q.id = a.question_id
		 WHERE q.quiz_id = ? AND a.id IN (`+placeholders+`)`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: resolving quiz answers: %w", err)
	}
	defer rows.Close()

	answers := []model.Answer{}
	for rows.Next() {
		var a model.Answer
		if err := rows.Scan(&a.ID, &a.QuestionID, &a.Text, &a.IsCorrect); err != nil {
			return nil, fmt.Errorf("sqlite: scanning answer row: %w", err)
		}
		answers = append(answers, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating answers: %w", err)
	}
	return answers, nil
}
