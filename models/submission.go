package models

import "time"

// Submission status values. The lifecycle service is the only writer of
// Submission.Status; StatusPublished is part of the persisted enum but no
// operation sets it — published state is carried by the Publication row.
const (
	StatusSubmitted         = "submitted"
	StatusUnderReview       = "under_review"
	StatusReviewed          = "reviewed"
	StatusAccepted          = "accepted"
	StatusRejected          = "rejected"
	StatusRevisions         = "revisions"
	StatusRevisionSubmitted = "revision_submitted"
	StatusWithdrawn         = "withdrawn"
	StatusPublished         = "published"
)

// SubmissionStatuses returns every legal value of the status column.
func SubmissionStatuses() []string {
	return []string{
		StatusSubmitted,
		StatusUnderReview,
		StatusReviewed,
		StatusAccepted,
		StatusRejected,
		StatusRevisions,
		StatusRevisionSubmitted,
		StatusWithdrawn,
		StatusPublished,
	}
}

// ValidSubmissionStatus reports whether status is one of the enumerated values.
func ValidSubmissionStatus(status string) bool {
	for _, s := range SubmissionStatuses() {
		if s == status {
			return true
		}
	}
	return false
}

// Submission represents a manuscript and its metadata, owned by one author.
// Rows are never deleted; withdrawal is a terminal status.
type Submission struct {
	SubmissionID int       `gorm:"primaryKey;column:submission_id" json:"submission_id"`
	Title        string    `gorm:"column:title" json:"title"`
	Authors      string    `gorm:"column:authors" json:"authors"` // free-text author list
	Abstract     string    `gorm:"column:abstract" json:"abstract"`
	Keywords     *string   `gorm:"column:keywords" json:"keywords,omitempty"`
	Category     string    `gorm:"column:category" json:"category"`
	FilePath     string    `gorm:"column:file_path" json:"file_path"`
	CoverLetter  *string   `gorm:"column:cover_letter" json:"cover_letter,omitempty"`
	Status       string    `gorm:"column:status;default:submitted" json:"status"`
	AuthorID     int       `gorm:"column:author_id" json:"author_id"`
	SubmittedAt  time.Time `gorm:"column:submitted_at" json:"submitted_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updated_at"`

	// Relations
	Author      *User            `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Reviews     []Review         `gorm:"foreignKey:SubmissionID" json:"reviews,omitempty"`
	Decisions   []EditorDecision `gorm:"foreignKey:SubmissionID" json:"decisions,omitempty"`
	Revisions   []Revision       `gorm:"foreignKey:SubmissionID" json:"revisions,omitempty"`
	Publication *Publication     `gorm:"foreignKey:SubmissionID" json:"publication,omitempty"`
}

func (Submission) TableName() string {
	return "submissions"
}

func (s *Submission) IsAccepted() bool {
	return s.Status == StatusAccepted
}

// IsPublished reports whether the submission has a published Publication.
// The Publication relation must be loaded.
func (s *Submission) IsPublished() bool {
	return s.Publication != nil && s.Publication.IsPublished()
}
