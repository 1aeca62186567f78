package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openmerit/badgestore/internal/metrics"
	"github.com/openmerit/badgestore/internal/models"
)

// CreateTeam registers a team and returns its identifier, the slug of its
// name. Re-creating an existing team returns the existing identifier.
func (s *Store) CreateTeam(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("team name is required")
	}

	id := models.DefaultID(name)
	existing, err := s.GetTeam(id)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return existing.ID, nil
	}

	team := &models.Team{
		ID:        id,
		Name:      name,
		CreatedOn: time.Now(),
	}
	if err := s.db.Create(team).Error; err != nil {
		metrics.RecordOperation("create_team", "error")
		return "", fmt.Errorf("failed to create team: %w", err)
	}
	metrics.RecordOperation("create_team", "ok")
	return team.ID, nil
}

// TeamExists reports whether a team with the given identifier is
// registered.
func (s *Store) TeamExists(id string) (bool, error) {
	if id == "" {
		return false, nil
	}
	var count int64
	if err := s.db.Model(&models.Team{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check team: %w", err)
	}
	return count > 0, nil
}

// GetTeam retrieves a team by identifier, or nil when there is none.
func (s *Store) GetTeam(id string) (*models.Team, error) {
	var team models.Team
	err := s.db.Where("id = ?", id).First(&team).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team %s: %w", id, err)
	}
	return &team, nil
}

// CreateSeries registers a badge series under a team and returns its
// identifier, the slug of its name. Re-creating an existing series returns
// the existing identifier.
func (s *Store) CreateSeries(name, description, teamID, tags string) (string, error) {
	if name == "" || teamID == "" {
		return "", fmt.Errorf("series name and team are required")
	}

	id := models.DefaultID(name)
	existing, err := s.GetSeries(id)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return existing.ID, nil
	}

	now := time.Now()
	series := &models.Series{
		ID:          id,
		Name:        name,
		Description: description,
		TeamID:      teamID,
		Tags:        models.ParseTags(tags),
		CreatedOn:   now,
		LastUpdated: now,
	}
	if err := s.db.Create(series).Error; err != nil {
		metrics.RecordOperation("create_series", "error")
		return "", fmt.Errorf("failed to create series: %w", err)
	}
	metrics.RecordOperation("create_series", "ok")
	return series.ID, nil
}

// SeriesExists reports whether a series with the given identifier is
// registered.
func (s *Store) SeriesExists(id string) (bool, error) {
	if id == "" {
		return false, nil
	}
	var count int64
	if err := s.db.Model(&models.Series{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check series: %w", err)
	}
	return count > 0, nil
}

// GetSeries retrieves a series by identifier, or nil when there is none.
func (s *Store) GetSeries(id string) (*models.Series, error) {
	var series models.Series
	err := s.db.Where("id = ?", id).First(&series).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get series %s: %w", id, err)
	}
	return &series, nil
}

// ListSeries retrieves all series in creation order.
func (s *Store) ListSeries() ([]models.Series, error) {
	var series []models.Series
	if err := s.db.Order("created_on ASC").Find(&series).Error; err != nil {
		return nil, fmt.Errorf("failed to list series: %w", err)
	}
	return series, nil
}

// SeriesFromTeam retrieves the series belonging to a team, empty when the
// team does not resolve.
func (s *Store) SeriesFromTeam(teamID string) ([]models.Series, error) {
	team, err := s.GetTeam(teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, nil
	}
	var series []models.Series
	err = s.db.Where("team_id = ?", team.ID).Order("created_on ASC").Find(&series).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get series for team %s: %w", teamID, err)
	}
	return series, nil
}

// CreateMilestone places a badge at an ordinal position in a series and
// returns the milestone identifier. A badge appears at most once per
// series: re-creating the pair returns the existing identifier. Adding a
// milestone is a structural change, so the series' last_updated refreshes.
func (s *Store) CreateMilestone(position int, badgeID, seriesID string) (string, error) {
	if badgeID == "" || seriesID == "" {
		return "", fmt.Errorf("milestone badge and series are required")
	}

	existing, err := s.MilestoneForBadgeSeries(badgeID, seriesID)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return existing.ID, nil
	}

	milestone := &models.Milestone{
		ID:        uuid.NewString(),
		Position:  position,
		BadgeID:   badgeID,
		SeriesID:  seriesID,
		CreatedOn: time.Now(),
	}
	if err := s.db.Create(milestone).Error; err != nil {
		metrics.RecordOperation("create_milestone", "error")
		return "", fmt.Errorf("failed to create milestone: %w", err)
	}
	metrics.RecordOperation("create_milestone", "ok")

	err = s.db.Model(&models.Series{}).
		Where("id = ?", seriesID).
		Update("last_updated", time.Now()).Error
	if err != nil {
		return "", fmt.Errorf("failed to refresh series %s: %w", seriesID, err)
	}
	return milestone.ID, nil
}

// MilestoneExists reports whether a milestone with the given identifier is
// registered.
func (s *Store) MilestoneExists(id string) (bool, error) {
	if id == "" {
		return false, nil
	}
	var count int64
	if err := s.db.Model(&models.Milestone{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check milestone: %w", err)
	}
	return count > 0, nil
}

// GetMilestone retrieves a milestone by identifier, or nil when there is
// none.
func (s *Store) GetMilestone(id string) (*models.Milestone, error) {
	var milestone models.Milestone
	err := s.db.Where("id = ?", id).First(&milestone).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get milestone %s: %w", id, err)
	}
	return &milestone, nil
}

// ListMilestones retrieves a series' milestones ordered by position, empty
// when the series does not resolve.
func (s *Store) ListMilestones(seriesID string) ([]models.Milestone, error) {
	series, err := s.GetSeries(seriesID)
	if err != nil {
		return nil, err
	}
	if series == nil {
		return nil, nil
	}
	var milestones []models.Milestone
	err = s.db.Where("series_id = ?", series.ID).Order("position ASC").Find(&milestones).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list milestones for series %s: %w", seriesID, err)
	}
	return milestones, nil
}

// MilestoneExistsForBadgeSeries reports whether the badge already has a
// milestone in the series.
func (s *Store) MilestoneExistsForBadgeSeries(badgeID, seriesID string) (bool, error) {
	if badgeID == "" || seriesID == "" {
		return false, nil
	}
	var count int64
	err := s.db.Model(&models.Milestone{}).
		Where("badge_id = ? AND series_id = ?", badgeID, seriesID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check milestone pair: %w", err)
	}
	return count > 0, nil
}

// MilestoneForBadgeSeries retrieves the milestone placing a badge in a
// series, or nil when the pair does not resolve.
func (s *Store) MilestoneForBadgeSeries(badgeID, seriesID string) (*models.Milestone, error) {
	if badgeID == "" || seriesID == "" {
		return nil, nil
	}
	var milestone models.Milestone
	err := s.db.Where("badge_id = ? AND series_id = ?", badgeID, seriesID).
		First(&milestone).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get milestone for badge %s in series %s: %w", badgeID, seriesID, err)
	}
	return &milestone, nil
}
