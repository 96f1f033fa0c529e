package service

import (
	"testing"

	"remedial_edu_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildQuestionChoiceValidation(t *testing.T) {
	base := QuestionRequest{
		QuestionType: model.MultipleChoice,
		Prompt:       "Pick one",
		Points:       5,
	}

	// Fewer than two choices.
	req := base
	req.Choices = []ChoiceRequest{{Text: "only", IsCorrect: true}}
	_, err := buildQuestion(req)
	assert.ErrorIs(t, err, ErrBadChoiceSetup)

	// No correct choice.
	req = base
	req.Choices = []ChoiceRequest{{Text: "a"}, {Text: "b"}}
	_, err = buildQuestion(req)
	assert.ErrorIs(t, err, ErrBadChoiceSetup)

	// Two correct choices.
	req = base
	req.Choices = []ChoiceRequest{{Text: "a", IsCorrect: true}, {Text: "b", IsCorrect: true}}
	_, err = buildQuestion(req)
	assert.ErrorIs(t, err, ErrBadChoiceSetup)

	// Valid setup.
	req = base
	req.Choices = []ChoiceRequest{{Text: "a", IsCorrect: true}, {Text: "b"}}
	q, err := buildQuestion(req)
	require.NoError(t, err)
	assert.Len(t, q.Choices, 2)
	assert.Equal(t, 5, q.Points)
}

func TestBuildQuestionDefaults(t *testing.T) {
	q, err := buildQuestion(QuestionRequest{
		QuestionType:  model.ShortAnswer,
		Prompt:        "Spell the word",
		CorrectAnswer: "bahay",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, q.Points, "non-positive points default to 1")
	assert.Equal(t, model.StrictZero, q.AutoGradePolicy)
	assert.Empty(t, q.Choices, "short answers carry no choices")
}

func TestBuildQuestionRejectsUnknownType(t *testing.T) {
	_, err := buildQuestion(QuestionRequest{QuestionType: "essay", Prompt: "Discuss"})
	assert.ErrorIs(t, err, ErrBadQuestion)
}
