package models

import "gorm.io/gorm"

// Ticket state codes are defined by the workflow table (workflow/workflow.yaml).
// State changes go through the transition endpoint only, never raw assignment.
type Ticket struct {
	gorm.Model
	ProjectID     uint     `gorm:"not null;index" json:"project_id"`
	Project       *Project `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"project,omitempty"`
	Title         string   `gorm:"size:200;not null" json:"title"`
	Description   string   `gorm:"type:text" json:"description"`
	State         int      `gorm:"not null;default:1;index" json:"state"`
	Assignees     []User   `gorm:"many2many:ticket_assignees" json:"assignees"`
	AttachmentKey string   `gorm:"size:255" json:"attachment_key,omitempty"`
}

func (t *Ticket) IsAssignedTo(userID uint) bool {
	for _, u := range t.Assignees {
		if u.ID == userID {
			return true
		}
	}
	return false
}
