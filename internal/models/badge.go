package models

import (
	"time"
)

// DefaultBadgeVersion is stamped on badges created without an explicit
// version.
const DefaultBadgeVersion = "0.5.0"

// Badge is an awardable credential definition. Its identifier is the slug of
// its name, so the name is unique by construction.
type Badge struct {
	ID          string    `gorm:"primaryKey;size:128" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null;size:255" json:"name"`
	Image       string    `gorm:"size:255" json:"image"`
	Description string    `gorm:"type:text" json:"description"`
	Criteria    string    `gorm:"type:text" json:"criteria"`
	IssuerID    string    `gorm:"not null;index;size:128" json:"issuer_id"`
	Issuer      Issuer    `gorm:"foreignKey:IssuerID" json:"issuer,omitempty"`
	Tags        TagList   `gorm:"type:text" json:"tags"`
	Version     string    `gorm:"size:32" json:"version"`
	CreatedOn   time.Time `json:"created_on"`
}

// TableName specifies the table name for Badge.
func (Badge) TableName() string {
	return "badges"
}

// Export produces the flat key/value projection of the badge. The issuer,
// when loaded, is exported as a nested projection.
func (b *Badge) Export() map[string]any {
	out := map[string]any{
		"id":          b.ID,
		"name":        b.Name,
		"image":       b.Image,
		"description": b.Description,
		"criteria":    b.Criteria,
		"version":     b.Version,
		"created_on":  epoch(b.CreatedOn),
	}
	if len(b.Tags) > 0 {
		out["tags"] = []string(b.Tags)
	} else {
		out["tags"] = nil
	}
	if b.Issuer.ID != "" {
		out["issuer"] = b.Issuer.Export()
	}
	return out
}

func (b *Badge) String() string {
	return b.Name
}

// Invitation is a pending, not-yet-claimed award opportunity for a badge.
type Invitation struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	BadgeID   string    `gorm:"not null;index;size:128" json:"badge_id"`
	CreatedOn time.Time `json:"created_on"`
	ExpiresOn time.Time `json:"expires_on"`
}

// TableName specifies the table name for Invitation.
func (Invitation) TableName() string {
	return "invitations"
}

// Expired reports whether the invitation has passed its expiry.
func (i *Invitation) Expired() bool {
	return time.Now().After(i.ExpiresOn)
}

// Export produces the flat key/value projection of the invitation.
func (i *Invitation) Export() map[string]any {
	return map[string]any{
		"id":         i.ID,
		"badge_id":   i.BadgeID,
		"created_on": epoch(i.CreatedOn),
		"expires_on": epoch(i.ExpiresOn),
	}
}

// Authorization grants a person authority to award a given badge. It is a
// pure join record with a composite key.
type Authorization struct {
	BadgeID   string    `gorm:"primaryKey;size:128" json:"badge_id"`
	PersonID  string    `gorm:"primaryKey;size:255" json:"person_id"`
	CreatedOn time.Time `json:"created_on"`
}

// TableName specifies the table name for Authorization.
func (Authorization) TableName() string {
	return "authorizations"
}

// Export produces the flat key/value projection of the authorization.
func (a *Authorization) Export() map[string]any {
	return map[string]any{
		"badge_id":   a.BadgeID,
		"person_id":  a.PersonID,
		"created_on": epoch(a.CreatedOn),
	}
}
