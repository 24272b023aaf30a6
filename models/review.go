package models

import "time"

// Review status values.
const (
	ReviewStatusAssigned  = "assigned"
	ReviewStatusCompleted = "completed"
)

// Reviewer recommendation values, shared with EditorDecision.
const (
	DecisionAccept    = "accept"
	DecisionReject    = "reject"
	DecisionRevisions = "revisions"
	DecisionReverted  = "reverted"
)

// Review is one reviewer's assignment against one submission. The unique index
// on (submission_id, reviewer_id) backs the duplicate-assignment check at the
// storage layer so concurrent assignments cannot both commit.
type Review struct {
	ReviewID     int        `gorm:"primaryKey;column:review_id" json:"review_id"`
	SubmissionID int        `gorm:"column:submission_id;uniqueIndex:uix_submission_reviewer" json:"submission_id"`
	ReviewerID   int        `gorm:"column:reviewer_id;uniqueIndex:uix_submission_reviewer" json:"reviewer_id"`
	EditorID     int        `gorm:"column:editor_id" json:"editor_id"`
	Content      *string    `gorm:"column:content" json:"content,omitempty"`
	Decision     *string    `gorm:"column:decision" json:"decision,omitempty"` // accept, reject, revisions
	Status       string     `gorm:"column:status;default:assigned" json:"status"`
	AssignedAt   time.Time  `gorm:"column:assigned_at" json:"assigned_at"`
	DueDate      time.Time  `gorm:"column:due_date" json:"due_date"`
	CompletedAt  *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`

	// Relations
	Submission *Submission `gorm:"foreignKey:SubmissionID" json:"submission,omitempty"`
	Reviewer   *User       `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
	Editor     *User       `gorm:"foreignKey:EditorID" json:"editor,omitempty"`
}

func (Review) TableName() string {
	return "reviews"
}

func (r *Review) IsCompleted() bool {
	return r.CompletedAt != nil
}

// IsOverdueAt reports whether the review was past due at the given instant.
// Due dates are declarative scheduling hints checked at read time.
func (r *Review) IsOverdueAt(now time.Time) bool {
	return r.CompletedAt == nil && now.After(r.DueDate)
}

func (r *Review) IsOverdue() bool {
	return r.IsOverdueAt(time.Now())
}

// ValidRecommendation reports whether decision is a value a reviewer or editor
// may record (reverted is reserved for the lifecycle service).
func ValidRecommendation(decision string) bool {
	switch decision {
	case DecisionAccept, DecisionReject, DecisionRevisions:
		return true
	}
	return false
}
