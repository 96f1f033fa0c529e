package service

import (
	"context"
	"errors"
	"time"

	"remedial_edu_backend/internal/config"
	"remedial_edu_backend/internal/model"
	"remedial_edu_backend/internal/repository"
	"remedial_edu_backend/internal/util"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssessmentService struct {
	Repo *repository.AssessmentRepository
	Rdb  *redis.Client
	Cfg  *config.Config
}

func NewAssessmentService(repo *repository.AssessmentRepository, rdb *redis.Client, cfg *config.Config) *AssessmentService {
	return &AssessmentService{Repo: repo, Rdb: rdb, Cfg: cfg}
}

type ChoiceRequest struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"isCorrect"`
	Order     int    `json:"order"`
}

type QuestionRequest struct {
	ID              uint                  `json:"id"`
	QuestionType    model.QuestionType    `json:"questionType" binding:"required"`
	Prompt          string                `json:"prompt" binding:"required"`
	Points          int                   `json:"points"`
	Order           int                   `json:"order"`
	CorrectAnswer   string                `json:"correctAnswer"`
	CaseSensitive   bool                  `json:"caseSensitive"`
	AutoGradePolicy model.AutoGradePolicy `json:"autoGradePolicy"`
	Choices         []ChoiceRequest       `json:"choices"`
}

type AssessmentRequest struct {
	Title           *string            `json:"title"`
	Description     *string            `json:"description"`
	SubjectID       *uint              `json:"subjectId"`
	GradeLevel      *int               `json:"gradeLevel"`
	PhonemicLevelID *uint              `json:"phonemicLevelId"`
	StartTime       *time.Time         `json:"startTime"`
	EndTime         *time.Time         `json:"endTime"`
	IsPublished     *bool              `json:"isPublished"`
	Questions       *[]QuestionRequest `json:"questions"`
}

var (
	ErrTitleRequired  = errors.New("title is required")
	ErrBadQuestion    = errors.New("question is invalid")
	ErrBadChoiceSetup = errors.New("choice questions need at least two choices with exactly one marked correct")
)

func buildQuestion(req QuestionRequest) (*model.Question, error) {
	switch req.QuestionType {
	case model.MultipleChoice, model.TrueFalse, model.ShortAnswer:
	default:
		return nil, ErrBadQuestion
	}

	points := req.Points
	if points <= 0 {
		points = 1
	}

	policy := req.AutoGradePolicy
	if policy == "" {
		policy = model.StrictZero
	}

	q := &model.Question{
		QuestionType:    req.QuestionType,
		Prompt:          req.Prompt,
		Points:          points,
		Order:           req.Order,
		CorrectAnswer:   req.CorrectAnswer,
		CaseSensitive:   req.CaseSensitive,
		AutoGradePolicy: policy,
	}
	q.ID = req.ID

	if req.QuestionType == model.ShortAnswer {
		return q, nil
	}

	correct := 0
	for _, c := range req.Choices {
		if c.IsCorrect {
			correct++
		}
		q.Choices = append(q.Choices, model.Choice{
			Text:      c.Text,
			IsCorrect: c.IsCorrect,
			Order:     c.Order,
		})
	}
	if len(q.Choices) < 2 || correct != 1 {
		return nil, ErrBadChoiceSetup
	}
	return q, nil
}

// Create writes the assessment with a generated access code and QR token.
func (s *AssessmentService) Create(creatorID uint, req AssessmentRequest) (*model.Assessment, error) {
	if req.Title == nil || *req.Title == "" {
		return nil, ErrTitleRequired
	}

	code, err := util.GenerateAccessCode(s.Cfg.Assessment.AccessCodeLength)
	if err != nil {
		return nil, err
	}

	a := &model.Assessment{
		Title:      *req.Title,
		AccessCode: code,
		QRToken:    uuid.New().String(),
		CreatedBy:  creatorID,
	}
	applyAssessmentFields(a, req)

	if req.Questions != nil {
		for _, qReq := range *req.Questions {
			q, err := buildQuestion(qReq)
			if err != nil {
				return nil, err
			}
			q.ID = 0
			a.Questions = append(a.Questions, *q)
		}
	}

	if err := s.Repo.CreateWithQuestions(a); err != nil {
		return nil, err
	}
	return a, nil
}

func applyAssessmentFields(a *model.Assessment, req AssessmentRequest) {
	if req.Description != nil {
		a.Description = *req.Description
	}
	if req.SubjectID != nil {
		a.SubjectID = req.SubjectID
	}
	if req.GradeLevel != nil {
		a.GradeLevel = *req.GradeLevel
	}
	if req.PhonemicLevelID != nil {
		a.PhonemicLevelID = req.PhonemicLevelID
	}
	if req.StartTime != nil {
		a.StartTime = req.StartTime
	}
	if req.EndTime != nil {
		a.EndTime = req.EndTime
	}
	if req.IsPublished != nil {
		a.IsPublished = *req.IsPublished
		if a.IsPublished && a.PublishedAt == nil {
			now := time.Now()
			a.PublishedAt = &now
		}
	}
}

// Update edits an assessment and diffs its question list. Rejected once any
// attempt has been submitted.
func (s *AssessmentService) Update(id uint, req AssessmentRequest) (*model.Assessment, error) {
	a, err := s.find(id)
	if err != nil {
		return nil, err
	}

	if err := s.ensureEditable(id); err != nil {
		return nil, err
	}

	if req.Title != nil {
		a.Title = *req.Title
	}
	applyAssessmentFields(a, req)

	if err := s.Repo.Update(a); err != nil {
		return nil, err
	}

	if req.Questions != nil {
		existingQs, err := s.Repo.ListQuestions(id)
		if err != nil {
			return nil, err
		}
		existingMap := make(map[uint]*model.Question, len(existingQs))
		for i := range existingQs {
			existingMap[existingQs[i].ID] = &existingQs[i]
		}

		keptIDs := make(map[uint]bool)
		for _, qReq := range *req.Questions {
			q, err := buildQuestion(qReq)
			if err != nil {
				return nil, err
			}
			q.AssessmentID = id

			if qReq.ID != 0 {
				if _, ok := existingMap[qReq.ID]; ok {
					if err := s.Repo.UpdateQuestion(q); err != nil {
						return nil, err
					}
					keptIDs[qReq.ID] = true
					continue
				}
			}
			q.ID = 0
			if err := s.Repo.CreateQuestion(q); err != nil {
				return nil, err
			}
		}

		for qid := range existingMap {
			if !keptIDs[qid] {
				if err := s.Repo.DeleteQuestion(qid); err != nil {
					return nil, err
				}
			}
		}
	}

	s.invalidateCode(a.AccessCode)
	return s.find(id)
}

// SetPublished toggles the publish flag; allowed even after submissions so a
// teacher can close access early.
func (s *AssessmentService) SetPublished(id uint, published bool) (*model.Assessment, error) {
	a, err := s.find(id)
	if err != nil {
		return nil, err
	}

	a.IsPublished = published
	if published && a.PublishedAt == nil {
		now := time.Now()
		a.PublishedAt = &now
	}
	if err := s.Repo.Update(a); err != nil {
		return nil, err
	}

	s.invalidateCode(a.AccessCode)
	return a, nil
}

func (s *AssessmentService) Delete(id uint) error {
	a, err := s.find(id)
	if err != nil {
		return err
	}
	if err := s.ensureEditable(id); err != nil {
		return err
	}
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	s.invalidateCode(a.AccessCode)
	return nil
}

func (s *AssessmentService) Get(id uint) (*model.Assessment, error) {
	return s.find(id)
}

func (s *AssessmentService) List(page, limit int, createdBy uint) ([]model.Assessment, int64, error) {
	return s.Repo.List(page, limit, createdBy)
}

func (s *AssessmentService) ListAttempts(assessmentID uint) ([]model.Attempt, error) {
	if _, err := s.find(assessmentID); err != nil {
		return nil, err
	}
	return s.Repo.ListAttempts(assessmentID)
}

func (s *AssessmentService) find(id uint) (*model.Assessment, error) {
	a, err := s.Repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAssessmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AssessmentService) ensureEditable(id uint) error {
	count, err := s.Repo.SubmittedAttemptCount(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return util.ErrAssessmentLocked
	}
	return nil
}

func (s *AssessmentService) invalidateCode(code string) {
	if s.Rdb == nil || code == "" {
		return
	}
	s.Rdb.Del(context.Background(), accessCodeCacheKey(code))
}
