package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"remedial_edu_backend/internal/config"
	"remedial_edu_backend/internal/model"
	"remedial_edu_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// --- in-memory fakes -------------------------------------------------------

type fakeAssessments struct {
	items map[uint]*model.Assessment
}

func (f *fakeAssessments) FindByID(id uint) (*model.Assessment, error) {
	a, ok := f.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (f *fakeAssessments) FindByAccessCode(code string) (*model.Assessment, error) {
	for _, a := range f.items {
		if a.AccessCode == code {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAssessments) QuestionByID(id uint) (*model.Question, error) {
	for _, a := range f.items {
		for i := range a.Questions {
			if a.Questions[i].ID == id {
				return &a.Questions[i], nil
			}
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAssessments) CountQuestions(assessmentID uint) (int64, error) {
	a, ok := f.items[assessmentID]
	if !ok {
		return 0, nil
	}
	return int64(len(a.Questions)), nil
}

type fakeAttempts struct {
	attempts map[uint]*model.Attempt
	answers  []*model.Answer
	nextID   uint
}

func newFakeAttempts() *fakeAttempts {
	return &fakeAttempts{attempts: map[uint]*model.Attempt{}, nextID: 1}
}

func (f *fakeAttempts) Create(a *model.Attempt) error {
	a.ID = f.nextID
	f.nextID++
	cp := *a
	f.attempts[a.ID] = &cp
	return nil
}

func (f *fakeAttempts) FindByID(id uint) (*model.Attempt, error) {
	a, ok := f.attempts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAttempts) LatestForStudent(assessmentID, studentID uint) (*model.Attempt, error) {
	var latest *model.Attempt
	for _, a := range f.attempts {
		if a.AssessmentID == assessmentID && a.StudentID == studentID {
			if latest == nil || a.ID > latest.ID {
				latest = a
			}
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (f *fakeAttempts) FindAnswer(attemptID, questionID uint) (*model.Answer, error) {
	for _, ans := range f.answers {
		if ans.AttemptID == attemptID && ans.QuestionID == questionID {
			cp := *ans
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeAttempts) UpsertAnswer(ans *model.Answer) error {
	for _, existing := range f.answers {
		if existing.AttemptID == ans.AttemptID && existing.QuestionID == ans.QuestionID {
			existing.SelectedChoiceID = ans.SelectedChoiceID
			existing.AnswerText = ans.AnswerText
			existing.IsCorrect = ans.IsCorrect
			existing.Score = ans.Score
			*ans = *existing
			return nil
		}
	}
	ans.ID = uint(len(f.answers) + 1)
	cp := *ans
	f.answers = append(f.answers, &cp)
	return nil
}

func (f *fakeAttempts) UpdateAnswer(ans *model.Answer) error {
	for _, existing := range f.answers {
		if existing.ID == ans.ID {
			*existing = *ans
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeAttempts) AnswersByAttempt(attemptID uint) ([]model.Answer, error) {
	var out []model.Answer
	for _, ans := range f.answers {
		if ans.AttemptID == attemptID {
			out = append(out, *ans)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].QuestionID < out[j].QuestionID })
	return out, nil
}

func (f *fakeAttempts) FinalizeTally(attemptID uint, fn func(a *model.Attempt, answers []model.Answer) (bool, error)) (*model.Attempt, error) {
	stored, ok := f.attempts[attemptID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	answers, _ := f.AnswersByAttempt(attemptID)

	cp := *stored
	changed, err := fn(&cp, answers)
	if err != nil {
		return nil, err
	}
	if changed {
		stored.Status = cp.Status
		stored.SubmittedAt = cp.SubmittedAt
		stored.TotalScore = cp.TotalScore
	}
	return &cp, nil
}

type fakeStudents struct {
	items  map[uint]*model.Student
	levels map[uint]map[uint]uint // studentID -> subjectID -> levelID
}

func (f *fakeStudents) FindByID(id uint) (*model.Student, error) {
	s, ok := f.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (f *fakeStudents) ByIdentifier(kind model.IdentifierKind, value string) ([]model.Student, error) {
	var out []model.Student
	for _, s := range f.items {
		for _, ident := range s.Identifiers {
			if ident.Kind == kind && ident.Value == value {
				out = append(out, *s)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStudents) LevelForSubject(studentID, subjectID uint) (uint, error) {
	return f.levels[studentID][subjectID], nil
}

type fakeLock struct {
	held     map[string]bool
	acquired []string
}

func newFakeLock() *fakeLock { return &fakeLock{held: map[string]bool{}} }

func (f *fakeLock) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if f.held[key] {
		return false, nil
	}
	f.held[key] = true
	f.acquired = append(f.acquired, key)
	return true, nil
}

func (f *fakeLock) Release(ctx context.Context, key string) error {
	delete(f.held, key)
	return nil
}

// --- fixture ----------------------------------------------------------------

const (
	quizCode  = "ABC123"
	studentID = uint(7)
	lrn       = "123456789012"
)

func timePtr(t time.Time) *time.Time { return &t }

func testAssessment() *model.Assessment {
	a := &model.Assessment{
		Title:       "Word Recognition Check",
		IsPublished: true,
		AccessCode:  quizCode,
		QRToken:     "qr-token-1",
	}
	a.ID = 1

	q1 := model.Question{AssessmentID: 1, QuestionType: model.MultipleChoice, Points: 5, Order: 1, Prompt: "Pick the word"}
	q1.ID = 1
	c1 := model.Choice{QuestionID: 1, Text: "cat", IsCorrect: true}
	c1.ID = 1
	c2 := model.Choice{QuestionID: 1, Text: "dog"}
	c2.ID = 2
	q1.Choices = []model.Choice{c1, c2}

	q2 := model.Question{AssessmentID: 1, QuestionType: model.TrueFalse, Points: 5, Order: 2, Prompt: "The sky is green"}
	q2.ID = 2
	c3 := model.Choice{QuestionID: 2, Text: "True"}
	c3.ID = 3
	c4 := model.Choice{QuestionID: 2, Text: "False", IsCorrect: true}
	c4.ID = 4
	q2.Choices = []model.Choice{c3, c4}

	q3 := model.Question{
		AssessmentID:    1,
		QuestionType:    model.ShortAnswer,
		Points:          10,
		Order:           3,
		Prompt:          "Capital of the Philippines?",
		CorrectAnswer:   "Manila",
		AutoGradePolicy: model.StrictZero,
	}
	q3.ID = 3

	a.Questions = []model.Question{q1, q2, q3}
	return a
}

func testStudent() *model.Student {
	s := &model.Student{FirstName: "Juan", LastName: "Dela Cruz", GradeLevel: 3}
	s.ID = studentID
	s.Identifiers = []model.StudentIdentifier{{StudentID: studentID, Kind: model.IdentifierLRN, Value: lrn}}
	return s
}

type testEnv struct {
	svc      *AttemptService
	attempts *fakeAttempts
	students *fakeStudents
	lock     *fakeLock
}

func newTestEnv() *testEnv {
	assessments := &fakeAssessments{items: map[uint]*model.Assessment{1: testAssessment()}}
	attempts := newFakeAttempts()
	students := &fakeStudents{
		items:  map[uint]*model.Student{studentID: testStudent()},
		levels: map[uint]map[uint]uint{},
	}
	lock := newFakeLock()

	cfg := &config.Config{}
	cfg.Assessment.AccessCodeLength = 6
	cfg.Assessment.AttemptLockSeconds = 10
	cfg.Assessment.CodeCacheSeconds = 30

	return &testEnv{
		svc:      NewAttemptService(assessments, attempts, students, lock, nil, cfg),
		attempts: attempts,
		students: students,
		lock:     lock,
	}
}

// --- tests -------------------------------------------------------------------

func TestAccessCreatesAndResumesAttempt(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	first, err := env.svc.Access(ctx, AccessRequest{QuizCode: quizCode, StudentID: studentID})
	require.NoError(t, err)
	require.NotNil(t, first.Attempt)
	assert.Equal(t, model.AttemptInProgress, first.Attempt.Status)
	assert.Equal(t, "Juan Dela Cruz", first.Student.DisplayName())
	assert.Len(t, first.Assessment.Questions, 3)

	// Re-access resumes rather than creating a second attempt.
	second, err := env.svc.Access(ctx, AccessRequest{QuizCode: quizCode, StudentID: studentID})
	require.NoError(t, err)
	assert.Equal(t, first.Attempt.ID, second.Attempt.ID)
	assert.Len(t, env.attempts.attempts, 1)
}

func TestAccessNormalizesQuizCode(t *testing.T) {
	env := newTestEnv()

	result, err := env.svc.Access(context.Background(), AccessRequest{QuizCode: "  abc123 ", LRN: lrn})
	require.NoError(t, err)
	assert.Equal(t, uint(1), result.Assessment.ID)
}

func TestAccessStudentViewShape(t *testing.T) {
	env := newTestEnv()

	result, err := env.svc.Access(context.Background(), AccessRequest{QuizCode: quizCode, StudentID: studentID})
	require.NoError(t, err)

	// The view type carries no correct-answer fields by construction; check
	// the content that should survive sanitization.
	require.Len(t, result.Assessment.Questions, 3)
	assert.Equal(t, "Pick the word", result.Assessment.Questions[0].Prompt)
	assert.Len(t, result.Assessment.Questions[0].Choices, 2)
	assert.Empty(t, result.Assessment.Questions[2].Choices)
}

func TestAccessUnknownCode(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.Access(context.Background(), AccessRequest{QuizCode: "ZZZZ99", StudentID: studentID})
	assert.ErrorIs(t, err, util.ErrAssessmentNotFound)
}

func TestAccessRequiresQuizCode(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.Access(context.Background(), AccessRequest{QuizCode: "   ", StudentID: studentID})
	assert.ErrorIs(t, err, util.ErrQuizCodeRequired)
}

func TestAccessUnpublished(t *testing.T) {
	env := newTestEnv()
	env.svc.Assessments.(*fakeAssessments).items[1].IsPublished = false

	_, err := env.svc.Access(context.Background(), AccessRequest{QuizCode: quizCode, StudentID: studentID})
	assert.ErrorIs(t, err, util.ErrAssessmentNotPublished)
}

func TestAccessQRTokenMismatch(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.Access(context.Background(), AccessRequest{
		QuizCode: quizCode, QRToken: "wrong-token", StudentID: studentID,
	})
	assert.ErrorIs(t, err, util.ErrInvalidQRToken)

	// Matching token passes.
	_, err = env.svc.Access(context.Background(), AccessRequest{
		QuizCode: quizCode, QRToken: "qr-token-1", StudentID: studentID,
	})
	assert.NoError(t, err)
}

func TestAccessOutsideWindow(t *testing.T) {
	env := newTestEnv()
	a := env.svc.Assessments.(*fakeAssessments).items[1]

	now := time.Now()
	a.StartTime = timePtr(now.Add(time.Hour))
	_, err := env.svc.Access(context.Background(), AccessRequest{QuizCode: quizCode, StudentID: studentID})
	assert.ErrorIs(t, err, util.ErrNotYetOpen)

	a.StartTime = timePtr(now.Add(-2 * time.Hour))
	a.EndTime = timePtr(now.Add(-time.Hour))
	_, err = env.svc.Access(context.Background(), AccessRequest{QuizCode: quizCode, StudentID: studentID})
	assert.ErrorIs(t, err, util.ErrWindowClosed)

	// No attempt rows leak from rejected requests.
	assert.Empty(t, env.attempts.attempts)
}

func TestAccessResolvesByLRN(t *testing.T) {
	env := newTestEnv()

	result, err := env.svc.Access(context.Background(), AccessRequest{QuizCode: quizCode, LRN: lrn})
	require.NoError(t, err)
	assert.Equal(t, studentID, result.Student.ID)

	_, err = env.svc.Access(context.Background(), AccessRequest{QuizCode: quizCode, LRN: "000000000000"})
	assert.ErrorIs(t, err, util.ErrStudentNotFound)

	_, err = env.svc.Access(context.Background(), AccessRequest{QuizCode: quizCode})
	assert.ErrorIs(t, err, util.ErrStudentRefRequired)
}

func TestAccessDuplicateLRNConflicts(t *testing.T) {
	env := newTestEnv()

	twin := &model.Student{FirstName: "Juana", LastName: "Dela Cruz"}
	twin.ID = 8
	twin.Identifiers = []model.StudentIdentifier{{StudentID: 8, Kind: model.IdentifierLRN, Value: lrn}}
	env.students.items[8] = twin

	_, err := env.svc.Access(context.Background(), AccessRequest{QuizCode: quizCode, LRN: lrn})
	assert.ErrorIs(t, err, util.ErrDuplicateIdentifier)
}

func TestAccessRetakeBlocked(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	result, err := env.svc.Access(ctx, AccessRequest{QuizCode: quizCode, StudentID: studentID})
	require.NoError(t, err)

	_, err = env.svc.Submit(ctx, result.Attempt.ID)
	require.NoError(t, err)

	_, err = env.svc.Access(ctx, AccessRequest{QuizCode: quizCode, StudentID: studentID})
	assert.ErrorIs(t, err, util.ErrAlreadyTaken)
}

func TestAccessPhonemicLevelGate(t *testing.T) {
	env := newTestEnv()
	a := env.svc.Assessments.(*fakeAssessments).items[1]
	subjectID, levelID := uint(2), uint(3)
	a.SubjectID = &subjectID
	a.PhonemicLevelID = &levelID

	// Student has no recorded level for the subject.
	_, err := env.svc.Access(context.Background(), AccessRequest{QuizCode: quizCode, StudentID: studentID})
	assert.ErrorIs(t, err, util.ErrWrongPhonemicLevel)

	env.students.levels[studentID] = map[uint]uint{subjectID: levelID}
	_, err = env.svc.Access(context.Background(), AccessRequest{QuizCode: quizCode, StudentID: studentID})
	assert.NoError(t, err)
}

func TestAccessLockBusy(t *testing.T) {
	env := newTestEnv()
	env.lock.held["attempt:lock:1:7"] = true

	_, err := env.svc.Access(context.Background(), AccessRequest{QuizCode: quizCode, StudentID: studentID})
	assert.ErrorIs(t, err, util.ErrAttemptCreationBusy)
}

func TestAccessLockReleasedAfterCreate(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.Access(context.Background(), AccessRequest{QuizCode: quizCode, StudentID: studentID})
	require.NoError(t, err)
	assert.Equal(t, []string{"attempt:lock:1:7"}, env.lock.acquired)
	assert.Empty(t, env.lock.held)
}

func startAttempt(t *testing.T, env *testEnv) uint {
	t.Helper()
	result, err := env.svc.Access(context.Background(), AccessRequest{QuizCode: quizCode, StudentID: studentID})
	require.NoError(t, err)
	return result.Attempt.ID
}

func TestRecordAnswerGradesChoices(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	attemptID := startAttempt(t, env)

	correctChoice := uint(1)
	ans, err := env.svc.RecordAnswer(ctx, attemptID, AnswerRequest{QuestionID: 1, SelectedChoiceID: &correctChoice})
	require.NoError(t, err)
	assert.True(t, *ans.IsCorrect)
	assert.Equal(t, 5, ans.Score)

	wrongChoice := uint(3)
	ans, err = env.svc.RecordAnswer(ctx, attemptID, AnswerRequest{QuestionID: 2, SelectedChoiceID: &wrongChoice})
	require.NoError(t, err)
	assert.False(t, *ans.IsCorrect)
	assert.Equal(t, 0, ans.Score)
}

func TestRecordAnswerUpsertOverwrites(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	attemptID := startAttempt(t, env)

	wrong := uint(2)
	_, err := env.svc.RecordAnswer(ctx, attemptID, AnswerRequest{QuestionID: 1, SelectedChoiceID: &wrong})
	require.NoError(t, err)

	right := uint(1)
	ans, err := env.svc.RecordAnswer(ctx, attemptID, AnswerRequest{QuestionID: 1, SelectedChoiceID: &right})
	require.NoError(t, err)
	assert.True(t, *ans.IsCorrect)

	answers, _ := env.attempts.AnswersByAttempt(attemptID)
	assert.Len(t, answers, 1, "resubmission must overwrite, not duplicate")
	assert.Equal(t, 5, answers[0].Score)
}

func TestRecordAnswerValidation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	attemptID := startAttempt(t, env)

	_, err := env.svc.RecordAnswer(ctx, attemptID, AnswerRequest{QuestionID: 99})
	assert.ErrorIs(t, err, util.ErrQuestionNotFound)

	_, err = env.svc.RecordAnswer(ctx, attemptID, AnswerRequest{QuestionID: 1})
	assert.ErrorIs(t, err, util.ErrAnswerRequired)

	badChoice := uint(4) // belongs to question 2
	_, err = env.svc.RecordAnswer(ctx, attemptID, AnswerRequest{QuestionID: 1, SelectedChoiceID: &badChoice})
	assert.ErrorIs(t, err, util.ErrChoiceNotFound)

	_, err = env.svc.RecordAnswer(ctx, 42, AnswerRequest{QuestionID: 1, SelectedChoiceID: &badChoice})
	assert.ErrorIs(t, err, util.ErrAttemptNotFound)

	// A question from a different assessment is invisible to this attempt.
	other := &model.Assessment{Title: "Other", IsPublished: true, AccessCode: "XYZ789"}
	other.ID = 2
	foreign := model.Question{AssessmentID: 2, QuestionType: model.ShortAnswer, Points: 1, Prompt: "Stray"}
	foreign.ID = 9
	other.Questions = []model.Question{foreign}
	env.svc.Assessments.(*fakeAssessments).items[2] = other

	_, err = env.svc.RecordAnswer(ctx, attemptID, AnswerRequest{QuestionID: 9, AnswerText: "x"})
	assert.ErrorIs(t, err, util.ErrQuestionNotFound)
}

func TestSubmitTalliesAndFreezes(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	attemptID := startAttempt(t, env)

	c1, c4 := uint(1), uint(4)
	_, err := env.svc.RecordAnswer(ctx, attemptID, AnswerRequest{QuestionID: 1, SelectedChoiceID: &c1}) // correct, 5
	require.NoError(t, err)
	_, err = env.svc.RecordAnswer(ctx, attemptID, AnswerRequest{QuestionID: 2, SelectedChoiceID: &c4}) // correct, 5
	require.NoError(t, err)
	_, err = env.svc.RecordAnswer(ctx, attemptID, AnswerRequest{QuestionID: 3, AnswerText: "Cebu"}) // wrong, 0
	require.NoError(t, err)

	result, err := env.svc.Submit(ctx, attemptID)
	require.NoError(t, err)
	assert.Equal(t, model.AttemptSubmitted, result.Status)
	assert.Equal(t, 10, result.TotalScore)
	assert.Equal(t, 2, result.CorrectCount)
	assert.Equal(t, 1, result.IncorrectCount)
	assert.Equal(t, 3, result.TotalQuestions)
	assert.Equal(t, "Juan Dela Cruz", result.StudentName)

	stored := env.attempts.attempts[attemptID]
	assert.Equal(t, model.AttemptSubmitted, stored.Status)
	assert.NotNil(t, stored.SubmittedAt)
	assert.Equal(t, 10, stored.TotalScore)

	// Answers are rejected once the attempt is closed.
	_, err = env.svc.RecordAnswer(ctx, attemptID, AnswerRequest{QuestionID: 3, AnswerText: "Manila"})
	assert.ErrorIs(t, err, util.ErrAttemptNotActive)
}

func TestSubmitIsIdempotent(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	attemptID := startAttempt(t, env)

	c1 := uint(1)
	_, err := env.svc.RecordAnswer(ctx, attemptID, AnswerRequest{QuestionID: 1, SelectedChoiceID: &c1})
	require.NoError(t, err)

	first, err := env.svc.Submit(ctx, attemptID)
	require.NoError(t, err)
	submittedAt := env.attempts.attempts[attemptID].SubmittedAt

	second, err := env.svc.Submit(ctx, attemptID)
	require.NoError(t, err)
	assert.Equal(t, first.TotalScore, second.TotalScore)
	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, submittedAt, env.attempts.attempts[attemptID].SubmittedAt, "re-submit must not re-stamp")
}

func TestSubmitAfterManualGradeKeepsFrozenScore(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	a := env.svc.Assessments.(*fakeAssessments).items[1]
	a.Questions[2].CorrectAnswer = ""
	a.Questions[2].AutoGradePolicy = model.ManualReview

	attemptID := startAttempt(t, env)

	c1 := uint(1)
	_, err := env.svc.RecordAnswer(ctx, attemptID, AnswerRequest{QuestionID: 1, SelectedChoiceID: &c1}) // 5
	require.NoError(t, err)
	_, err = env.svc.RecordAnswer(ctx, attemptID, AnswerRequest{QuestionID: 3, AnswerText: "Maynila"}) // pending
	require.NoError(t, err)

	first, err := env.svc.Submit(ctx, attemptID)
	require.NoError(t, err)
	assert.Equal(t, 5, first.TotalScore)

	_, err = env.svc.GradeAnswer(attemptID, 3, true)
	require.NoError(t, err)

	// A repeat submit reports the score frozen at submission, not a recompute
	// over the freshly graded answers.
	again, err := env.svc.Submit(ctx, attemptID)
	require.NoError(t, err)
	assert.Equal(t, model.AttemptSubmitted, again.Status)
	assert.Equal(t, 5, again.TotalScore)
	assert.Equal(t, 5, env.attempts.attempts[attemptID].TotalScore)
}

func TestManualGradingFlow(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	// Switch the short answer to manual review with no configured key.
	a := env.svc.Assessments.(*fakeAssessments).items[1]
	a.Questions[2].CorrectAnswer = ""
	a.Questions[2].AutoGradePolicy = model.ManualReview

	attemptID := startAttempt(t, env)

	c1 := uint(1)
	_, err := env.svc.RecordAnswer(ctx, attemptID, AnswerRequest{QuestionID: 1, SelectedChoiceID: &c1}) // 5
	require.NoError(t, err)

	ans, err := env.svc.RecordAnswer(ctx, attemptID, AnswerRequest{QuestionID: 3, AnswerText: "Maynila"})
	require.NoError(t, err)
	assert.True(t, ans.Pending())

	// Grading before submission is rejected.
	_, err = env.svc.GradeAnswer(attemptID, 3, true)
	assert.ErrorIs(t, err, util.ErrAttemptNotSubmitted)

	result, err := env.svc.Submit(ctx, attemptID)
	require.NoError(t, err)
	assert.Equal(t, 5, result.TotalScore, "pending answers contribute nothing yet")

	// Finalizing with a pending answer is rejected.
	_, err = env.svc.FinalizeGrading(attemptID)
	assert.ErrorIs(t, err, util.ErrAnswersPending)

	graded, err := env.svc.GradeAnswer(attemptID, 3, true)
	require.NoError(t, err)
	assert.True(t, *graded.IsCorrect)
	assert.Equal(t, 10, graded.Score)

	// A resolved answer cannot be re-graded.
	_, err = env.svc.GradeAnswer(attemptID, 3, false)
	assert.ErrorIs(t, err, util.ErrAnswerNotPending)

	final, err := env.svc.FinalizeGrading(attemptID)
	require.NoError(t, err)
	assert.Equal(t, model.AttemptGraded, final.Status)
	assert.Equal(t, 15, final.TotalScore)

	// Repeat finalize returns the frozen result.
	again, err := env.svc.FinalizeGrading(attemptID)
	require.NoError(t, err)
	assert.Equal(t, final.TotalScore, again.TotalScore)
	assert.Equal(t, model.AttemptGraded, again.Status)
}

func TestFinalizeGradingRequiresSubmission(t *testing.T) {
	env := newTestEnv()
	attemptID := startAttempt(t, env)

	_, err := env.svc.FinalizeGrading(attemptID)
	assert.ErrorIs(t, err, util.ErrAttemptNotSubmitted)
}

func TestAttemptDetailIncludesAnswers(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	attemptID := startAttempt(t, env)

	c1 := uint(1)
	_, err := env.svc.RecordAnswer(ctx, attemptID, AnswerRequest{QuestionID: 1, SelectedChoiceID: &c1})
	require.NoError(t, err)

	detail, err := env.svc.AttemptDetail(attemptID)
	require.NoError(t, err)
	assert.Len(t, detail.Answers, 1)
	assert.Equal(t, uint(1), detail.Answers[0].QuestionID)
}

func TestFixedClockStampsAttempt(t *testing.T) {
	env := newTestEnv()
	frozen := time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC)
	env.svc.now = func() time.Time { return frozen }

	result, err := env.svc.Access(context.Background(), AccessRequest{QuizCode: quizCode, StudentID: studentID})
	require.NoError(t, err)
	assert.Equal(t, frozen, env.attempts.attempts[result.Attempt.ID].StartedAt)

	_, err = env.svc.Submit(context.Background(), result.Attempt.ID)
	require.NoError(t, err)
	assert.Equal(t, frozen, *env.attempts.attempts[result.Attempt.ID].SubmittedAt)
}
