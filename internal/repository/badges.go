package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/openmerit/badgestore/internal/metrics"
	"github.com/openmerit/badgestore/internal/models"
	"github.com/openmerit/badgestore/internal/notify"
)

// AddBadge registers a badge definition and returns its identifier, the
// slug of its name. Re-adding a badge whose slug already exists returns the
// existing identifier without writing. Tags come in as comma-separated text
// and are stored as a normalized set.
func (s *Store) AddBadge(name, image, description, criteria, issuerID, tags string) (string, error) {
	if name == "" || image == "" || description == "" || criteria == "" || issuerID == "" {
		return "", fmt.Errorf("badge name, image, description, criteria and issuer are required")
	}

	id := models.DefaultID(name)
	existing, err := s.GetBadge(id)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return existing.ID, nil
	}

	badge := &models.Badge{
		ID:          id,
		Name:        name,
		Image:       image,
		Description: description,
		Criteria:    criteria,
		IssuerID:    issuerID,
		Tags:        models.ParseTags(tags),
		Version:     models.DefaultBadgeVersion,
		CreatedOn:   time.Now(),
	}
	if err := s.db.Create(badge).Error; err != nil {
		metrics.RecordOperation("add_badge", "error")
		return "", fmt.Errorf("failed to create badge: %w", err)
	}
	metrics.RecordOperation("add_badge", "ok")

	if err := s.publish(notify.TopicBadgeNew, map[string]any{"badge": badge.Export()}); err != nil {
		return badge.ID, err
	}
	return badge.ID, nil
}

// BadgeExists reports whether a badge with the given identifier is
// registered.
func (s *Store) BadgeExists(id string) (bool, error) {
	if id == "" {
		return false, nil
	}
	var count int64
	err := s.db.Model(&models.Badge{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check badge: %w", err)
	}
	return count > 0, nil
}

// GetBadge retrieves a badge by identifier with its issuer loaded, or nil
// when there is none.
func (s *Store) GetBadge(id string) (*models.Badge, error) {
	var badge models.Badge
	err := s.db.Preload("Issuer").Where("id = ?", id).First(&badge).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get badge %s: %w", id, err)
	}
	return &badge, nil
}

// DeleteBadge removes a badge and returns the deleted identifier, or ""
// when no badge matched.
func (s *Store) DeleteBadge(id string) (string, error) {
	badge, err := s.GetBadge(id)
	if err != nil {
		return "", err
	}
	if badge == nil {
		return "", nil
	}
	if err := s.db.Delete(badge).Error; err != nil {
		metrics.RecordOperation("delete_badge", "error")
		return "", fmt.Errorf("failed to delete badge %s: %w", id, err)
	}
	metrics.RecordOperation("delete_badge", "ok")
	return badge.ID, nil
}

// ListBadges retrieves all badges in creation order.
func (s *Store) ListBadges() ([]models.Badge, error) {
	var badges []models.Badge
	if err := s.db.Order("created_on ASC").Find(&badges).Error; err != nil {
		return nil, fmt.Errorf("failed to list badges: %w", err)
	}
	return badges, nil
}

// BadgesByTags retrieves badges whose tag set matches the query: any
// overlap by default, or a superset of the query when matchAll is set. Tag
// text is normalized before storage, so matching is a set operation in
// memory rather than pattern matching at the storage layer.
func (s *Store) BadgesByTags(tags []string, matchAll bool) ([]models.Badge, error) {
	var tagged []models.Badge
	err := s.db.Where("tags IS NOT NULL AND tags <> ''").Find(&tagged).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query badges by tags: %w", err)
	}

	var matched []models.Badge
	for _, badge := range tagged {
		if matchAll {
			if badge.Tags.MatchAll(tags) {
				matched = append(matched, badge)
			}
		} else if badge.Tags.MatchAny(tags) {
			matched = append(matched, badge)
		}
	}
	return matched, nil
}
