package model

import (
	"encoding/json"
	"time"
)

type ApprovalKind string

const (
	// ApprovalAttemptReset asks the principal to wipe a student's submitted
	// attempt so the quiz can be retaken. Payload: {"attemptId": <id>}.
	ApprovalAttemptReset ApprovalKind = "attempt_reset"
	ApprovalGeneric      ApprovalKind = "generic"
)

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// ApprovalRequest routes a teacher request through principal sign-off.
type ApprovalRequest struct {
	BaseModel
	Kind         ApprovalKind    `gorm:"size:30;not null" json:"kind"`
	Reason       string          `gorm:"type:text" json:"reason"`
	Payload      json.RawMessage `gorm:"type:json" json:"payload,omitempty"`
	Status       ApprovalStatus  `gorm:"size:20;default:'pending';index" json:"status"`
	RequestedBy  uint            `gorm:"index;type:bigint unsigned;not null" json:"requestedBy"`
	DecidedBy    *uint           `gorm:"type:bigint unsigned" json:"decidedBy,omitempty"`
	DecisionNote string          `gorm:"size:255" json:"decisionNote"`
	DecidedAt    *time.Time      `json:"decidedAt,omitempty"`
}

func (ApprovalRequest) TableName() string {
	return "approval_requests"
}

type AttemptResetPayload struct {
	AttemptID uint `json:"attemptId"`
}
