package models

import "time"

// Issue status values, independent of any submission status.
const (
	IssueStatusPlanned    = "planned"
	IssueStatusInProgress = "in_progress"
	IssueStatusPublished  = "published"
)

// Issue is an editorial container for published work. Volume and issue number
// form a unique pair.
type Issue struct {
	IssueID         int        `gorm:"primaryKey;column:issue_id" json:"issue_id"`
	Volume          int        `gorm:"column:volume;uniqueIndex:uix_volume_issue" json:"volume"`
	IssueNumber     int        `gorm:"column:issue_number;uniqueIndex:uix_volume_issue" json:"issue_number"`
	Title           string     `gorm:"column:title" json:"title"`
	Description     *string    `gorm:"column:description" json:"description,omitempty"`
	Status          string     `gorm:"column:status;default:planned" json:"status"`
	PublicationDate *time.Time `gorm:"column:publication_date" json:"publication_date,omitempty"`
	CreatedAt       time.Time  `gorm:"column:created_at" json:"created_at"`

	// Relations
	Publications []Publication `gorm:"foreignKey:IssueID" json:"publications,omitempty"`
}

func (Issue) TableName() string {
	return "issues"
}

// ValidIssueStatus reports whether status is a known issue status.
func ValidIssueStatus(status string) bool {
	switch status {
	case IssueStatusPlanned, IssueStatusInProgress, IssueStatusPublished:
		return true
	}
	return false
}
