package models

import (
	"fmt"
	"time"
)

// Assertion records that a specific person was awarded a specific badge.
// The recipient is stored only as a salted hash token; the plaintext email
// never persists on the row.
type Assertion struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	BadgeID   string    `gorm:"not null;index;size:128" json:"badge_id"`
	Badge     Badge     `gorm:"foreignKey:BadgeID" json:"badge,omitempty"`
	PersonID  string    `gorm:"index;size:255" json:"person_id"`
	Recipient string    `gorm:"not null;size:255" json:"recipient"`
	IssuedOn  time.Time `gorm:"not null" json:"issued_on"`
	IssuedFor string    `gorm:"size:255" json:"issued_for"`
	CreatedOn time.Time `json:"created_on"`
}

// TableName specifies the table name for Assertion.
func (Assertion) TableName() string {
	return "assertions"
}

// Export produces the flat key/value projection of the assertion.
func (a *Assertion) Export() map[string]any {
	return map[string]any{
		"id":         a.ID,
		"badge_id":   a.BadgeID,
		"recipient":  a.Recipient,
		"issued_on":  epoch(a.IssuedOn),
		"issued_for": a.IssuedFor,
		"created_on": epoch(a.CreatedOn),
	}
}

// Field resolves one of the assertion's exportable field names. Requesting
// a name outside that set is a usage error reported as ErrUnknownField.
func (a *Assertion) Field(name string) (any, error) {
	switch name {
	case "id":
		return a.ID, nil
	case "badge_id":
		return a.BadgeID, nil
	case "recipient":
		return a.Recipient, nil
	case "issued_on":
		return a.IssuedOn, nil
	case "issued_for":
		return a.IssuedFor, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
}
