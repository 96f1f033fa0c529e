package service

import (
	"strings"

	"remedial_edu_backend/internal/model"
)

// GradeResult is the outcome of grading one answer. IsCorrect is nil when the
// answer is deferred to manual review.
type GradeResult struct {
	IsCorrect *bool
	Score     int
}

func boolPtr(b bool) *bool { return &b }

func graded(correct bool, points int) GradeResult {
	score := 0
	if correct {
		score = points
	}
	return GradeResult{IsCorrect: boolPtr(correct), Score: score}
}

// gradeChoice scores a choice-based question from the choice's stored flag.
func gradeChoice(q *model.Question, choice *model.Choice) GradeResult {
	return graded(choice.IsCorrect, q.Points)
}

// gradeShortAnswer compares the submission against the configured answer
// after trimming, lower-casing both sides unless the question is
// case-sensitive. An unconfigured correct answer falls back to the question's
// auto-grade policy.
func gradeShortAnswer(q *model.Question, submitted string) GradeResult {
	correct := normalizeAnswer(q.CorrectAnswer, q.CaseSensitive)
	if correct == "" {
		if q.AutoGradePolicy == model.ManualReview {
			return GradeResult{IsCorrect: nil, Score: 0}
		}
		return graded(false, q.Points)
	}
	return graded(normalizeAnswer(submitted, q.CaseSensitive) == correct, q.Points)
}

func normalizeAnswer(s string, caseSensitive bool) string {
	s = strings.TrimSpace(s)
	if !caseSensitive {
		s = strings.ToLower(s)
	}
	return s
}

// AttemptTally aggregates a finished attempt. Unanswered questions count as
// incorrect.
type AttemptTally struct {
	TotalScore     int `json:"totalScore"`
	CorrectCount   int `json:"correctCount"`
	IncorrectCount int `json:"incorrectCount"`
	TotalQuestions int `json:"totalQuestions"`
}

func computeTally(answers []model.Answer, totalQuestions int) AttemptTally {
	tally := AttemptTally{TotalQuestions: totalQuestions}
	for _, ans := range answers {
		tally.TotalScore += ans.Score
		if ans.IsCorrect != nil && *ans.IsCorrect {
			tally.CorrectCount++
		}
	}
	tally.IncorrectCount = totalQuestions - tally.CorrectCount
	if tally.IncorrectCount < 0 {
		tally.IncorrectCount = 0
	}
	return tally
}
