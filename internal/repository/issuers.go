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

// AddIssuer registers an issuer and returns its identifier. The
// (origin, name) pair is the natural key: re-adding an existing pair
// returns the existing identifier without writing a new row.
func (s *Store) AddIssuer(origin, name, org, contact string) (string, error) {
	if origin == "" || name == "" {
		return "", fmt.Errorf("issuer origin and name are required")
	}

	var existing models.Issuer
	err := s.db.Where("origin = ? AND name = ?", origin, name).First(&existing).Error
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("failed to look up issuer: %w", err)
	}

	issuer := &models.Issuer{
		ID:        models.DefaultID(name),
		Origin:    origin,
		Name:      name,
		Org:       org,
		Contact:   contact,
		CreatedOn: time.Now(),
	}
	if err := s.db.Create(issuer).Error; err != nil {
		metrics.RecordOperation("add_issuer", "error")
		return "", fmt.Errorf("failed to create issuer: %w", err)
	}
	metrics.RecordOperation("add_issuer", "ok")

	if err := s.publish(notify.TopicIssuerNew, map[string]any{"issuer": issuer.Export()}); err != nil {
		return issuer.ID, err
	}
	return issuer.ID, nil
}

// IssuerExists reports whether an issuer with the given origin and name is
// registered. Missing lookup keys yield false, not an error.
func (s *Store) IssuerExists(origin, name string) (bool, error) {
	if origin == "" || name == "" {
		return false, nil
	}
	var count int64
	err := s.db.Model(&models.Issuer{}).
		Where("origin = ? AND name = ?", origin, name).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check issuer: %w", err)
	}
	return count > 0, nil
}

// GetIssuer retrieves an issuer by identifier, or nil when there is none.
func (s *Store) GetIssuer(id string) (*models.Issuer, error) {
	var issuer models.Issuer
	err := s.db.Where("id = ?", id).First(&issuer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get issuer %s: %w", id, err)
	}
	return &issuer, nil
}

// DeleteIssuer removes an issuer and returns the deleted identifier, or ""
// when no issuer matched.
func (s *Store) DeleteIssuer(id string) (string, error) {
	issuer, err := s.GetIssuer(id)
	if err != nil {
		return "", err
	}
	if issuer == nil {
		return "", nil
	}
	if err := s.db.Delete(issuer).Error; err != nil {
		metrics.RecordOperation("delete_issuer", "error")
		return "", fmt.Errorf("failed to delete issuer %s: %w", id, err)
	}
	metrics.RecordOperation("delete_issuer", "ok")
	return issuer.ID, nil
}

// ListIssuers retrieves all issuers in creation order.
func (s *Store) ListIssuers() ([]models.Issuer, error) {
	var issuers []models.Issuer
	if err := s.db.Order("created_on ASC").Find(&issuers).Error; err != nil {
		return nil, fmt.Errorf("failed to list issuers: %w", err)
	}
	return issuers, nil
}
