package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"remedial_edu_backend/internal/config"
	"remedial_edu_backend/internal/model"
	"remedial_edu_backend/internal/util"
	"remedial_edu_backend/pkg/logger"
	"remedial_edu_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AssessmentReader is the catalog surface the attempt lifecycle needs.
type AssessmentReader interface {
	FindByID(id uint) (*model.Assessment, error)
	FindByAccessCode(code string) (*model.Assessment, error)
	QuestionByID(id uint) (*model.Question, error)
	CountQuestions(assessmentID uint) (int64, error)
}

// AttemptStore persists attempts and their answers.
type AttemptStore interface {
	Create(a *model.Attempt) error
	FindByID(id uint) (*model.Attempt, error)
	LatestForStudent(assessmentID, studentID uint) (*model.Attempt, error)
	FindAnswer(attemptID, questionID uint) (*model.Answer, error)
	UpsertAnswer(ans *model.Answer) error
	UpdateAnswer(ans *model.Answer) error
	AnswersByAttempt(attemptID uint) ([]model.Answer, error)
	// FinalizeTally runs fn over the attempt and its answers inside one
	// transaction with the attempt row locked, persisting the attempt when fn
	// reports a change. Answer rows cannot move between the read and the write.
	FinalizeTally(attemptID uint, fn func(a *model.Attempt, answers []model.Answer) (bool, error)) (*model.Attempt, error)
}

// StudentReader resolves external identifiers and phonemic levels.
type StudentReader interface {
	FindByID(id uint) (*model.Student, error)
	ByIdentifier(kind model.IdentifierKind, value string) ([]model.Student, error)
	LevelForSubject(studentID, subjectID uint) (uint, error)
}

// AdvisoryLock serializes attempt creation per (assessment, student).
type AdvisoryLock interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

type AttemptService struct {
	Assessments AssessmentReader
	Attempts    AttemptStore
	Students    StudentReader
	Lock        AdvisoryLock  // nil degrades to check-then-insert
	Rdb         *redis.Client // optional access-code lookup cache
	Cfg         *config.Config

	now func() time.Time
}

func NewAttemptService(assessments AssessmentReader, attempts AttemptStore, students StudentReader, lock AdvisoryLock, rdb *redis.Client, cfg *config.Config) *AttemptService {
	return &AttemptService{
		Assessments: assessments,
		Attempts:    attempts,
		Students:    students,
		Lock:        lock,
		Rdb:         rdb,
		Cfg:         cfg,
		now:         time.Now,
	}
}

type AccessRequest struct {
	QuizCode  string `json:"quizCode" binding:"required"`
	QRToken   string `json:"qrToken"`
	StudentID uint   `json:"studentId"`
	LRN       string `json:"lrn"`
}

// StudentAssessmentView is the assessment as shown to a student taking it:
// no correct-answer flags, no QR token.
type StudentAssessmentView struct {
	ID          uint                  `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	StartTime   *time.Time            `json:"startTime,omitempty"`
	EndTime     *time.Time            `json:"endTime,omitempty"`
	Questions   []StudentQuestionView `json:"questions"`
}

type StudentQuestionView struct {
	ID           uint                `json:"id"`
	QuestionType model.QuestionType  `json:"questionType"`
	Prompt       string              `json:"prompt"`
	Points       int                 `json:"points"`
	Order        int                 `json:"order"`
	Choices      []StudentChoiceView `json:"choices,omitempty"`
}

type StudentChoiceView struct {
	ID    uint   `json:"id"`
	Text  string `json:"text"`
	Order int    `json:"order"`
}

type AccessResult struct {
	Assessment *StudentAssessmentView
	Attempt    *model.Attempt
	Student    *model.Student
}

// Access validates the quiz code, resolves the student and returns the single
// open attempt for the pair, creating it when none exists. Calling it again
// before submission returns the same attempt.
func (s *AttemptService) Access(ctx context.Context, req AccessRequest) (*AccessResult, error) {
	code := strings.ToUpper(strings.TrimSpace(req.QuizCode))
	if code == "" {
		return nil, util.ErrQuizCodeRequired
	}

	assessment, err := s.lookupByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if !assessment.IsPublished {
		return nil, util.ErrAssessmentNotPublished
	}
	if req.QRToken != "" && assessment.QRToken != "" && req.QRToken != assessment.QRToken {
		return nil, util.ErrInvalidQRToken
	}

	now := s.now()
	if assessment.StartTime != nil && now.Before(*assessment.StartTime) {
		return nil, util.ErrNotYetOpen
	}
	if assessment.EndTime != nil && now.After(*assessment.EndTime) {
		return nil, util.ErrWindowClosed
	}

	student, err := s.resolveStudent(req)
	if err != nil {
		return nil, err
	}

	if assessment.SubjectID != nil && assessment.PhonemicLevelID != nil {
		levelID, err := s.Students.LevelForSubject(student.ID, *assessment.SubjectID)
		if err != nil {
			return nil, err
		}
		if levelID != *assessment.PhonemicLevelID {
			return nil, util.ErrWrongPhonemicLevel
		}
	}

	attempt, err := s.resolveOrCreateAttempt(ctx, assessment, student)
	if err != nil {
		return nil, err
	}

	return &AccessResult{
		Assessment: studentView(assessment),
		Attempt:    attempt,
		Student:    student,
	}, nil
}

// lookupByCode consults a short-TTL redis mapping of code to assessment ID
// before hitting the catalog.
func (s *AttemptService) lookupByCode(ctx context.Context, code string) (*model.Assessment, error) {
	if s.Rdb != nil {
		if val, err := s.Rdb.Get(ctx, accessCodeCacheKey(code)).Result(); err == nil {
			if id, err := strconv.ParseUint(val, 10, 32); err == nil {
				if a, err := s.Assessments.FindByID(uint(id)); err == nil && a.AccessCode == code {
					return a, nil
				}
			}
		}
	}

	assessment, err := s.Assessments.FindByAccessCode(code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAssessmentNotFound
	}
	if err != nil {
		return nil, err
	}

	if s.Rdb != nil {
		ttl := time.Duration(s.Cfg.Assessment.CodeCacheSeconds) * time.Second
		if err := s.Rdb.Set(ctx, accessCodeCacheKey(code), strconv.FormatUint(uint64(assessment.ID), 10), ttl).Err(); err != nil {
			logger.Log.Warn("access-code cache write failed", zap.Error(err))
		}
	}
	return assessment, nil
}

func accessCodeCacheKey(code string) string {
	return "assessment:code:" + code
}

// resolveStudent turns a numeric id or an LRN into exactly one student.
func (s *AttemptService) resolveStudent(req AccessRequest) (*model.Student, error) {
	if req.StudentID != 0 {
		student, err := s.Students.FindByID(req.StudentID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrStudentNotFound
		}
		if err != nil {
			return nil, err
		}
		return student, nil
	}

	lrn := strings.TrimSpace(req.LRN)
	if lrn == "" {
		return nil, util.ErrStudentRefRequired
	}

	matches, err := s.Students.ByIdentifier(model.IdentifierLRN, lrn)
	if err != nil {
		return nil, err
	}

	// The same student may carry duplicate alias rows; only distinct students
	// sharing an LRN are a conflict.
	distinct := matches[:0]
	seen := make(map[uint]bool, len(matches))
	for i := range matches {
		if !seen[matches[i].ID] {
			seen[matches[i].ID] = true
			distinct = append(distinct, matches[i])
		}
	}

	switch len(distinct) {
	case 0:
		return nil, util.ErrStudentNotFound
	case 1:
		return &distinct[0], nil
	default:
		return nil, util.ErrDuplicateIdentifier
	}
}

func (s *AttemptService) resolveOrCreateAttempt(ctx context.Context, assessment *model.Assessment, student *model.Student) (*model.Attempt, error) {
	latest, err := s.Attempts.LatestForStudent(assessment.ID, student.ID)
	if err != nil {
		return nil, err
	}
	if latest != nil {
		if latest.Status.Closed() {
			return nil, util.ErrAlreadyTaken
		}
		return latest, nil
	}

	if s.Lock != nil {
		key := fmt.Sprintf("attempt:lock:%d:%d", assessment.ID, student.ID)
		ttl := time.Duration(s.Cfg.Assessment.AttemptLockSeconds) * time.Second

		acquired, err := s.Lock.Acquire(ctx, key, ttl)
		if err != nil {
			// Redis down: fall back to the unguarded path rather than
			// refusing students.
			logger.Log.Warn("attempt lock unavailable", zap.Error(err))
			return s.createAttempt(assessment, student)
		}
		if !acquired {
			// Another request holds the lock; it either committed an attempt
			// we can return or is still writing it.
			if existing, err := s.Attempts.LatestForStudent(assessment.ID, student.ID); err == nil && existing != nil && !existing.Status.Closed() {
				return existing, nil
			}
			return nil, util.ErrAttemptCreationBusy
		}
		defer s.Lock.Release(ctx, key)

		// Re-check under the lock before inserting.
		if existing, err := s.Attempts.LatestForStudent(assessment.ID, student.ID); err != nil {
			return nil, err
		} else if existing != nil {
			if existing.Status.Closed() {
				return nil, util.ErrAlreadyTaken
			}
			return existing, nil
		}
	}

	return s.createAttempt(assessment, student)
}

func (s *AttemptService) createAttempt(assessment *model.Assessment, student *model.Student) (*model.Attempt, error) {
	attempt := &model.Attempt{
		AssessmentID: assessment.ID,
		StudentID:    student.ID,
		LRN:          student.LRN(),
		Status:       model.AttemptInProgress,
		StartedAt:    s.now(),
		TotalScore:   0,
	}
	if err := s.Attempts.Create(attempt); err != nil {
		return nil, err
	}
	monitoring.AttemptsStarted.Inc()
	return attempt, nil
}

type AnswerRequest struct {
	QuestionID       uint   `json:"questionId" binding:"required"`
	SelectedChoiceID *uint  `json:"selectedChoiceId"`
	AnswerText       string `json:"answerText"`
}

// RecordAnswer grades and persists one answer. Resubmission for the same
// question overwrites the earlier row; the attempt's aggregate is untouched
// until submission.
func (s *AttemptService) RecordAnswer(ctx context.Context, attemptID uint, req AnswerRequest) (*model.Answer, error) {
	attempt, err := s.findAttempt(attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.Status != model.AttemptInProgress {
		return nil, util.ErrAttemptNotActive
	}

	question, err := s.Assessments.QuestionByID(req.QuestionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuestionNotFound
	}
	if err != nil {
		return nil, err
	}
	if question.AssessmentID != attempt.AssessmentID {
		return nil, util.ErrQuestionNotFound
	}

	answer := &model.Answer{
		AttemptID:  attempt.ID,
		QuestionID: question.ID,
	}

	switch question.QuestionType {
	case model.ShortAnswer:
		answer.AnswerText = req.AnswerText
		result := gradeShortAnswer(question, req.AnswerText)
		answer.IsCorrect = result.IsCorrect
		answer.Score = result.Score
	default:
		if req.SelectedChoiceID == nil {
			return nil, util.ErrAnswerRequired
		}
		choice := findChoice(question, *req.SelectedChoiceID)
		if choice == nil {
			return nil, util.ErrChoiceNotFound
		}
		answer.SelectedChoiceID = &choice.ID
		result := gradeChoice(question, choice)
		answer.IsCorrect = result.IsCorrect
		answer.Score = result.Score
	}

	if err := s.Attempts.UpsertAnswer(answer); err != nil {
		return nil, err
	}
	return answer, nil
}

func findChoice(q *model.Question, choiceID uint) *model.Choice {
	for i := range q.Choices {
		if q.Choices[i].ID == choiceID {
			return &q.Choices[i]
		}
	}
	return nil
}

type SubmitResult struct {
	AttemptTally
	Status      model.AttemptStatus `json:"status"`
	StudentName string              `json:"studentName"`
}

// Submit freezes the attempt: aggregates the recorded answers, flips the
// status and stamps the submission time, all within one transaction.
// Submitting an already-closed attempt is a no-op that reports the score
// frozen at submission, never a recompute.
func (s *AttemptService) Submit(ctx context.Context, attemptID uint) (*SubmitResult, error) {
	attempt, err := s.findAttempt(attemptID)
	if err != nil {
		return nil, err
	}
	totalQuestions, err := s.Assessments.CountQuestions(attempt.AssessmentID)
	if err != nil {
		return nil, err
	}

	var tally AttemptTally
	var submittedNow bool
	updated, err := s.Attempts.FinalizeTally(attemptID, func(a *model.Attempt, answers []model.Answer) (bool, error) {
		tally = computeTally(answers, int(totalQuestions))
		if a.Status.Closed() {
			tally.TotalScore = a.TotalScore
			return false, nil
		}
		now := s.now()
		a.Status = model.AttemptSubmitted
		a.SubmittedAt = &now
		a.TotalScore = tally.TotalScore
		submittedNow = true
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	if submittedNow {
		monitoring.AttemptsSubmitted.Inc()
	}

	return s.submitResult(updated, tally)
}

func (s *AttemptService) submitResult(attempt *model.Attempt, tally AttemptTally) (*SubmitResult, error) {
	result := &SubmitResult{
		AttemptTally: tally,
		Status:       attempt.Status,
	}
	if student, err := s.Students.FindByID(attempt.StudentID); err == nil {
		result.StudentName = student.DisplayName()
	}
	return result, nil
}

// GradeAnswer resolves one answer left pending by the manual-review policy.
// Only valid on a submitted attempt.
func (s *AttemptService) GradeAnswer(attemptID, questionID uint, isCorrect bool) (*model.Answer, error) {
	attempt, err := s.findAttempt(attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.Status != model.AttemptSubmitted {
		return nil, util.ErrAttemptNotSubmitted
	}

	answer, err := s.Attempts.FindAnswer(attemptID, questionID)
	if err != nil {
		return nil, err
	}
	if answer == nil {
		return nil, util.ErrAnswerNotFound
	}
	if !answer.Pending() {
		return nil, util.ErrAnswerNotPending
	}

	question, err := s.Assessments.QuestionByID(questionID)
	if err != nil {
		return nil, err
	}

	result := graded(isCorrect, question.Points)
	answer.IsCorrect = result.IsCorrect
	answer.Score = result.Score
	if err := s.Attempts.UpdateAnswer(answer); err != nil {
		return nil, err
	}
	return answer, nil
}

// FinalizeGrading recomputes the tallies after manual review and moves the
// attempt from submitted to graded. Repeat calls return the frozen result.
func (s *AttemptService) FinalizeGrading(attemptID uint) (*SubmitResult, error) {
	attempt, err := s.findAttempt(attemptID)
	if err != nil {
		return nil, err
	}
	totalQuestions, err := s.Assessments.CountQuestions(attempt.AssessmentID)
	if err != nil {
		return nil, err
	}

	var tally AttemptTally
	updated, err := s.Attempts.FinalizeTally(attemptID, func(a *model.Attempt, answers []model.Answer) (bool, error) {
		if a.Status == model.AttemptInProgress {
			return false, util.ErrAttemptNotSubmitted
		}
		tally = computeTally(answers, int(totalQuestions))
		if a.Status == model.AttemptGraded {
			tally.TotalScore = a.TotalScore
			return false, nil
		}
		for i := range answers {
			if answers[i].Pending() {
				return false, util.ErrAnswersPending
			}
		}
		a.Status = model.AttemptGraded
		a.TotalScore = tally.TotalScore
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return s.submitResult(updated, tally)
}

// AttemptDetail returns the attempt with its answers, for teacher review.
func (s *AttemptService) AttemptDetail(attemptID uint) (*model.Attempt, error) {
	attempt, err := s.findAttempt(attemptID)
	if err != nil {
		return nil, err
	}
	answers, err := s.Attempts.AnswersByAttempt(attemptID)
	if err != nil {
		return nil, err
	}
	attempt.Answers = answers
	return attempt, nil
}

func (s *AttemptService) findAttempt(attemptID uint) (*model.Attempt, error) {
	attempt, err := s.Attempts.FindByID(attemptID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAttemptNotFound
	}
	if err != nil {
		return nil, err
	}
	return attempt, nil
}

func studentView(a *model.Assessment) *StudentAssessmentView {
	view := &StudentAssessmentView{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		StartTime:   a.StartTime,
		EndTime:     a.EndTime,
		Questions:   make([]StudentQuestionView, 0, len(a.Questions)),
	}
	for _, q := range a.Questions {
		qv := StudentQuestionView{
			ID:           q.ID,
			QuestionType: q.QuestionType,
			Prompt:       q.Prompt,
			Points:       q.Points,
			Order:        q.Order,
		}
		for _, c := range q.Choices {
			qv.Choices = append(qv.Choices, StudentChoiceView{
				ID:    c.ID,
				Text:  c.Text,
				Order: c.Order,
			})
		}
		view.Questions = append(view.Questions, qv)
	}
	return view
}
