package models

import "time"

// EditorDecision is an append-only audit record of an editorial ruling.
// Rows are created by the lifecycle service and never mutated or deleted;
// the most recent row reflects current editorial intent.
type EditorDecision struct {
	DecisionID   int       `gorm:"primaryKey;column:decision_id" json:"decision_id"`
	SubmissionID int       `gorm:"column:submission_id" json:"submission_id"`
	EditorID     int       `gorm:"column:editor_id" json:"editor_id"`
	Decision     string    `gorm:"column:decision" json:"decision"` // accept, reject, revisions, reverted
	Comments     *string   `gorm:"column:comments" json:"comments,omitempty"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`

	// Relations
	Editor *User `gorm:"foreignKey:EditorID" json:"editor,omitempty"`
}

func (EditorDecision) TableName() string {
	return "editor_decisions"
}
