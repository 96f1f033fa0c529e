package service

import (
	"testing"

	"remedial_edu_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestGradeShortAnswer(t *testing.T) {
	q := &model.Question{
		QuestionType:    model.ShortAnswer,
		Points:          10,
		CorrectAnswer:   "Manila",
		AutoGradePolicy: model.StrictZero,
	}

	tests := []struct {
		name      string
		submitted string
		correct   bool
	}{
		{"exact match", "Manila", true},
		{"lowercase", "manila", true},
		{"surrounding whitespace", "  Manila  ", true},
		{"uppercase", "MANILA", true},
		{"wrong answer", "Cebu", false},
		{"empty submission", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := gradeShortAnswer(q, tt.submitted)
			assert.NotNil(t, result.IsCorrect)
			assert.Equal(t, tt.correct, *result.IsCorrect)
			if tt.correct {
				assert.Equal(t, 10, result.Score)
			} else {
				assert.Equal(t, 0, result.Score)
			}
		})
	}
}

func TestGradeShortAnswerCaseSensitive(t *testing.T) {
	q := &model.Question{
		QuestionType:  model.ShortAnswer,
		Points:        5,
		CorrectAnswer: "pH",
		CaseSensitive: true,
	}

	result := gradeShortAnswer(q, "pH")
	assert.True(t, *result.IsCorrect)

	result = gradeShortAnswer(q, "ph")
	assert.False(t, *result.IsCorrect)
	assert.Equal(t, 0, result.Score)
}

func TestGradeShortAnswerUnconfigured(t *testing.T) {
	strict := &model.Question{
		QuestionType:    model.ShortAnswer,
		Points:          5,
		AutoGradePolicy: model.StrictZero,
	}
	result := gradeShortAnswer(strict, "anything")
	assert.NotNil(t, result.IsCorrect)
	assert.False(t, *result.IsCorrect)
	assert.Equal(t, 0, result.Score)

	manual := &model.Question{
		QuestionType:    model.ShortAnswer,
		Points:          5,
		AutoGradePolicy: model.ManualReview,
	}
	result = gradeShortAnswer(manual, "anything")
	assert.Nil(t, result.IsCorrect, "manual review leaves the answer pending")
	assert.Equal(t, 0, result.Score)
}

func TestGradeChoice(t *testing.T) {
	q := &model.Question{QuestionType: model.MultipleChoice, Points: 5}

	result := gradeChoice(q, &model.Choice{IsCorrect: true})
	assert.True(t, *result.IsCorrect)
	assert.Equal(t, 5, result.Score)

	result = gradeChoice(q, &model.Choice{IsCorrect: false})
	assert.False(t, *result.IsCorrect)
	assert.Equal(t, 0, result.Score)
}

func TestComputeTally(t *testing.T) {
	answers := []model.Answer{
		{QuestionID: 1, IsCorrect: boolPtr(true), Score: 5},
		{QuestionID: 2, IsCorrect: boolPtr(false), Score: 0},
		{QuestionID: 3, IsCorrect: boolPtr(true), Score: 10},
	}

	tally := computeTally(answers, 4) // one question left unanswered
	assert.Equal(t, 15, tally.TotalScore)
	assert.Equal(t, 2, tally.CorrectCount)
	assert.Equal(t, 2, tally.IncorrectCount, "unanswered questions count as incorrect")
	assert.Equal(t, 4, tally.TotalQuestions)
}

func TestComputeTallyEmpty(t *testing.T) {
	tally := computeTally(nil, 3)
	assert.Equal(t, 0, tally.TotalScore)
	assert.Equal(t, 0, tally.CorrectCount)
	assert.Equal(t, 3, tally.IncorrectCount)
}

func TestComputeTallyPendingAnswersScoreZero(t *testing.T) {
	answers := []model.Answer{
		{QuestionID: 1, IsCorrect: boolPtr(true), Score: 5},
		{QuestionID: 2, IsCorrect: nil, Score: 0}, // awaiting manual review
	}

	tally := computeTally(answers, 2)
	assert.Equal(t, 5, tally.TotalScore)
	assert.Equal(t, 1, tally.CorrectCount)
	assert.Equal(t, 1, tally.IncorrectCount)
}
