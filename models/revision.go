package models

import "time"

// Revision is a new manuscript version submitted in response to a revisions
// decision. Round is 1-based and strictly increasing per submission.
type Revision struct {
	RevisionID   int       `gorm:"primaryKey;column:revision_id" json:"revision_id"`
	SubmissionID int       `gorm:"column:submission_id" json:"submission_id"`
	Round        int       `gorm:"column:round" json:"round"`
	DecisionID   *int      `gorm:"column:decision_id" json:"decision_id,omitempty"`
	FilePath     string    `gorm:"column:file_path" json:"file_path"`
	CoverLetter  *string   `gorm:"column:cover_letter" json:"cover_letter,omitempty"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`

	// Relations
	Decision *EditorDecision `gorm:"foreignKey:DecisionID" json:"decision,omitempty"`
}

func (Revision) TableName() string {
	return "revisions"
}
