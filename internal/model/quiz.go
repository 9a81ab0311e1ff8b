package model

// Quiz is an admin-authored questionnaire. When HasCorrectAnswers is set the
// quiz is scored on submission; otherwise submissions are echoed back
// unscored (used for surveys).
type Quiz struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	HasCorrectAnswers bool       `json:"has_correct_answers"`
	Questions         []Question `json:"questions"`
}

// Question belongs to exactly one quiz.
type Question struct {
	ID      string   `json:"id"`
	QuizID  string   `json:"-"`
	Text    string   `json:"text"`
	Answers []Answer `json:"answers"`
}

// Answer belongs to exactly one question.
type Answer struct {
	ID         string `json:"id"`
	QuestionID string `json:"-"`
	Text       string `json:"text"`
	IsCorrect  bool   `json:"is_correct"`
}

// QuizResult is the response to a scored quiz submission.
// Passed requires a correct selection for every question.
type QuizResult struct {
	QuizID string `json:"quiz"`
	Score  int    `json:"score"`
	Total  int    `json:"total"`
	Passed bool   `json:"passed"`
}
