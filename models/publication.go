package models

import "time"

// Publication status values.
const (
	PublicationScheduled   = "scheduled"
	PublicationPublished   = "published"
	PublicationUnpublished = "unpublished"
)

// Publication links an accepted submission to an issue. The unique index on
// submission_id enforces at most one issue per submission. Unpublishing keeps
// the row and its published_at timestamp for the audit trail.
type Publication struct {
	PublicationID int        `gorm:"primaryKey;column:publication_id" json:"publication_id"`
	SubmissionID  int        `gorm:"column:submission_id;uniqueIndex:uix_publication_submission" json:"submission_id"`
	IssueID       int        `gorm:"column:issue_id" json:"issue_id"`
	PageStart     *int       `gorm:"column:page_start" json:"page_start,omitempty"`
	PageEnd       *int       `gorm:"column:page_end" json:"page_end,omitempty"`
	Status        string     `gorm:"column:status;default:scheduled" json:"status"`
	PublishedAt   *time.Time `gorm:"column:published_at" json:"published_at,omitempty"`
	CreatedAt     time.Time  `gorm:"column:created_at" json:"created_at"`

	// Relations
	Issue *Issue `gorm:"foreignKey:IssueID" json:"issue,omitempty"`
}

func (Publication) TableName() string {
	return "publications"
}

func (p *Publication) IsPublished() bool {
	return p.Status == PublicationPublished && p.PublishedAt != nil
}
