package models

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusApproved  RequestStatus = "approved"
	StatusRejected  RequestStatus = "rejected"
	StatusCancelled RequestStatus = "cancelled"
	StatusReturned  RequestStatus = "returned"
)

var (
	ErrInvalidTransition = errors.New("invalid request transition")
	ErrNotReturnable     = errors.New("asset is not returnable")
	ErrReasonRequired    = errors.New("reject reason is required")
	ErrNotRequester      = errors.New("only the requester may perform this action")
)

// transitions is the full lifecycle graph. Everything not listed is terminal.
var transitions = map[RequestStatus][]RequestStatus{
	StatusPending:  {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved: {StatusReturned},
}

// Terminal reports whether no further transition is permitted from s.
func (s RequestStatus) Terminal() bool {
	return len(transitions[s]) == 0
}

// CanTransition reports whether s -> next is an edge of the lifecycle graph.
func (s RequestStatus) CanTransition(next RequestStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type AssetRequest struct {
	gorm.Model
	AssetID uint  `gorm:"index;not null" json:"assetId"`
	Asset   Asset `json:"asset"`

	// denormalized so request rows stay readable after asset edits
	AssetName string    `gorm:"size:255;not null" json:"assetName"`
	AssetType AssetType `gorm:"type:varchar(20);not null" json:"assetType"`

	RequesterEmail string `gorm:"size:255;index;not null" json:"requesterEmail"`
	RequesterName  string `gorm:"size:255" json:"requesterName"`
	Note           string `gorm:"type:text" json:"note"`

	Status       RequestStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	RequestDate  time.Time     `gorm:"not null" json:"requestDate"`
	ApprovalDate *time.Time    `json:"approvalDate"`
	ReturnDate   *time.Time    `json:"returnDate"`
	RejectReason string        `gorm:"type:text" json:"rejectReason"`

	// email of the HR manager who approved or rejected
	ProcessedBy string `gorm:"size:255" json:"processedBy"`
}

// Approve moves a pending request to approved, stamping the approval time.
func (r *AssetRequest) Approve(hrEmail string, now time.Time) error {
	if !r.Status.CanTransition(StatusApproved) {
		return fmt.Errorf("%w: %s -> approved", ErrInvalidTransition, r.Status)
	}
	r.Status = StatusApproved
	r.ApprovalDate = &now
	r.ProcessedBy = hrEmail
	return nil
}

// Reject moves a pending request to rejected. A reason is mandatory.
func (r *AssetRequest) Reject(hrEmail, reason string) error {
	if reason == "" {
		return ErrReasonRequired
	}
	if !r.Status.CanTransition(StatusRejected) {
		return fmt.Errorf("%w: %s -> rejected", ErrInvalidTransition, r.Status)
	}
	r.Status = StatusRejected
	r.RejectReason = reason
	r.ProcessedBy = hrEmail
	return nil
}

// Cancel withdraws a pending request. Only the requester may cancel.
func (r *AssetRequest) Cancel(requesterEmail string) error {
	if requesterEmail != r.RequesterEmail {
		return ErrNotRequester
	}
	if !r.Status.CanTransition(StatusCancelled) {
		return fmt.Errorf("%w: %s -> cancelled", ErrInvalidTransition, r.Status)
	}
	r.Status = StatusCancelled
	return nil
}

// Return hands an approved returnable asset back, stamping the return time.
func (r *AssetRequest) Return(requesterEmail string, now time.Time) error {
	if requesterEmail != r.RequesterEmail {
		return ErrNotRequester
	}
	if r.AssetType != AssetReturnable {
		return ErrNotReturnable
	}
	if !r.Status.CanTransition(StatusReturned) {
		return fmt.Errorf("%w: %s -> returned", ErrInvalidTransition, r.Status)
	}
	r.Status = StatusReturned
	r.ReturnDate = &now
	return nil
}
