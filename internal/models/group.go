package models

import (
	"time"
)

// Team groups series of badges under one owner. Its identifier is the slug
// of its name.
type Team struct {
	ID        string    `gorm:"primaryKey;size:128" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null;size:255" json:"name"`
	CreatedOn time.Time `json:"created_on"`
}

// TableName specifies the table name for Team.
func (Team) TableName() string {
	return "teams"
}

// Export produces the flat key/value projection of the team.
func (t *Team) Export() map[string]any {
	return map[string]any{
		"id":         t.ID,
		"name":       t.Name,
		"created_on": epoch(t.CreatedOn),
	}
}

// Series is an ordered achievement track belonging to a team. LastUpdated
// is refreshed whenever the track's structure changes (e.g. a milestone is
// added).
type Series struct {
	ID          string    `gorm:"primaryKey;size:128" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null;size:255" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	TeamID      string    `gorm:"not null;index;size:128" json:"team_id"`
	Tags        TagList   `gorm:"type:text" json:"tags"`
	CreatedOn   time.Time `json:"created_on"`
	LastUpdated time.Time `json:"last_updated"`
}

// TableName specifies the table name for Series.
func (Series) TableName() string {
	return "series"
}

// Export produces the flat key/value projection of the series.
func (s *Series) Export() map[string]any {
	out := map[string]any{
		"id":           s.ID,
		"name":         s.Name,
		"description":  s.Description,
		"team_id":      s.TeamID,
		"created_on":   epoch(s.CreatedOn),
		"last_updated": epoch(s.LastUpdated),
	}
	if len(s.Tags) > 0 {
		out["tags"] = []string(s.Tags)
	} else {
		out["tags"] = nil
	}
	return out
}

// Milestone places a badge at an ordinal position within a series. A badge
// appears at most once per series.
type Milestone struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Position  int       `gorm:"not null" json:"position"`
	BadgeID   string    `gorm:"not null;uniqueIndex:idx_milestone_badge_series;size:128" json:"badge_id"`
	SeriesID  string    `gorm:"not null;uniqueIndex:idx_milestone_badge_series;size:128" json:"series_id"`
	CreatedOn time.Time `json:"created_on"`
}

// TableName specifies the table name for Milestone.
func (Milestone) TableName() string {
	return "milestones"
}

// Export produces the flat key/value projection of the milestone.
func (m *Milestone) Export() map[string]any {
	return map[string]any{
		"id":         m.ID,
		"position":   m.Position,
		"badge_id":   m.BadgeID,
		"series_id":  m.SeriesID,
		"created_on": epoch(m.CreatedOn),
	}
}
