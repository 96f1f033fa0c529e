package service

import (
	"encoding/json"
	"errors"
	"time"

	"remedial_edu_backend/internal/model"
	"remedial_edu_backend/internal/repository"
	"remedial_edu_backend/internal/util"

	"gorm.io/gorm"
)

type ApprovalService struct {
	Repo     *repository.ApprovalRepository
	Attempts *repository.AttemptRepository
}

func NewApprovalService(repo *repository.ApprovalRepository, attempts *repository.AttemptRepository) *ApprovalService {
	return &ApprovalService{Repo: repo, Attempts: attempts}
}

type ApprovalCreateRequest struct {
	Kind    model.ApprovalKind `json:"kind" binding:"required"`
	Reason  string             `json:"reason"`
	Payload json.RawMessage    `json:"payload"`
}

var ErrBadApproval = errors.New("invalid approval request")

// Submit files a request for principal sign-off. Attempt resets are validated
// up front so the principal never reviews a dangling attempt ID.
func (s *ApprovalService) Submit(requestedBy uint, req ApprovalCreateRequest) (*model.ApprovalRequest, error) {
	switch req.Kind {
	case model.ApprovalAttemptReset:
		attemptID, err := parseResetPayload(req.Payload)
		if err != nil {
			return nil, err
		}
		if _, err := s.Attempts.FindByID(attemptID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrAttemptNotFound
			}
			return nil, err
		}
	case model.ApprovalGeneric:
	default:
		return nil, ErrBadApproval
	}

	ar := &model.ApprovalRequest{
		Kind:        req.Kind,
		Reason:      req.Reason,
		Payload:     req.Payload,
		Status:      model.ApprovalPending,
		RequestedBy: requestedBy,
	}
	if err := s.Repo.Create(ar); err != nil {
		return nil, err
	}
	return ar, nil
}

func (s *ApprovalService) List(status model.ApprovalStatus, requestedBy uint) ([]model.ApprovalRequest, error) {
	return s.Repo.List(status, requestedBy)
}

func (s *ApprovalService) Get(id uint) (*model.ApprovalRequest, error) {
	return s.find(id)
}

// Decide resolves a pending request. Approving an attempt reset deletes the
// attempt and its answers, clearing the retake block.
func (s *ApprovalService) Decide(id, decidedBy uint, approve bool, note string) (*model.ApprovalRequest, error) {
	ar, err := s.find(id)
	if err != nil {
		return nil, err
	}
	if ar.Status != model.ApprovalPending {
		return nil, util.ErrApprovalDecided
	}

	if approve && ar.Kind == model.ApprovalAttemptReset {
		attemptID, err := parseResetPayload(ar.Payload)
		if err != nil {
			return nil, err
		}
		if err := s.Attempts.Delete(attemptID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	if approve {
		ar.Status = model.ApprovalApproved
	} else {
		ar.Status = model.ApprovalRejected
	}
	ar.DecidedBy = &decidedBy
	ar.DecisionNote = note
	ar.DecidedAt = &now

	if err := s.Repo.Update(ar); err != nil {
		return nil, err
	}
	return ar, nil
}

func parseResetPayload(raw json.RawMessage) (uint, error) {
	var p model.AttemptResetPayload
	if err := json.Unmarshal(raw, &p); err != nil || p.AttemptID == 0 {
		return 0, ErrBadApproval
	}
	return p.AttemptID, nil
}

func (s *ApprovalService) find(id uint) (*model.ApprovalRequest, error) {
	ar, err := s.Repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrApprovalNotFound
	}
	if err != nil {
		return nil, err
	}
	return ar, nil
}
