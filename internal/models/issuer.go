// Package models defines the persistent entities of the badge store.
package models

import (
	"time"
)

// Issuer is an organization that defines and awards badges. The
// (origin, name) pair is unique; re-adding it yields the existing row.
type Issuer struct {
	ID        string    `gorm:"primaryKey;size:128" json:"id"`
	Origin    string    `gorm:"uniqueIndex:idx_issuer_origin_name;not null;size:255" json:"origin"`
	Name      string    `gorm:"uniqueIndex:idx_issuer_origin_name;not null;size:255" json:"name"`
	Org       string    `gorm:"size:255" json:"org"`
	Contact   string    `gorm:"size:255" json:"contact"`
	CreatedOn time.Time `json:"created_on"`
}

// TableName specifies the table name for Issuer.
func (Issuer) TableName() string {
	return "issuers"
}

// Export produces the flat key/value projection of the issuer.
func (i *Issuer) Export() map[string]any {
	return map[string]any{
		"id":         i.ID,
		"origin":     i.Origin,
		"name":       i.Name,
		"org":        i.Org,
		"contact":    i.Contact,
		"created_on": epoch(i.CreatedOn),
	}
}

func (i *Issuer) String() string {
	return i.Name
}
