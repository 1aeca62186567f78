package models

import (
	"strings"
	"time"
)

// Person is a potential or actual badge recipient, keyed by email.
type Person struct {
	Email     string     `gorm:"primaryKey;size:255" json:"email"`
	Nickname  string     `gorm:"uniqueIndex;not null;size:255" json:"nickname"`
	Website   string     `gorm:"size:255" json:"website"`
	Bio       string     `gorm:"type:text" json:"bio"`
	LastLogin *time.Time `json:"last_login"`
	OptedOut  bool       `json:"opted_out"`
	Rank      int        `gorm:"default:0" json:"rank"`
	CreatedOn time.Time  `json:"created_on"`
}

// TableName specifies the table name for Person.
func (Person) TableName() string {
	return "persons"
}

// ID returns the person's identifier, which is the email.
func (p *Person) ID() string {
	return p.Email
}

// DefaultNickname derives the nickname used when a person registers without
// one: the local part of the email.
func DefaultNickname(email string) string {
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return email
}

// Export produces the flat key/value projection of the person.
func (p *Person) Export() map[string]any {
	out := map[string]any{
		"id":         p.Email,
		"email":      p.Email,
		"nickname":   p.Nickname,
		"website":    p.Website,
		"bio":        p.Bio,
		"opted_out":  p.OptedOut,
		"rank":       p.Rank,
		"created_on": epoch(p.CreatedOn),
	}
	if p.LastLogin != nil {
		out["last_login"] = epoch(*p.LastLogin)
	} else {
		out["last_login"] = nil
	}
	return out
}

func (p *Person) String() string {
	return p.Nickname
}
