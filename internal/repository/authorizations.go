package repository

import (
	"fmt"
	"time"

	"github.com/openmerit/badgestore/internal/metrics"
	"github.com/openmerit/badgestore/internal/models"
)

// AddAuthorization grants a person authority to award a badge. Returns
// false when the badge or the person is unknown; granting an existing
// authorization again is a no-op that still reports true.
func (s *Store) AddAuthorization(badgeID, email string) (bool, error) {
	if badgeID == "" || email == "" {
		return false, nil
	}
	badgeOK, err := s.BadgeExists(badgeID)
	if err != nil {
		return false, err
	}
	person, err := s.GetPerson(email)
	if err != nil {
		return false, err
	}
	if !badgeOK || person == nil {
		return false, nil
	}

	granted, err := s.Authorized(badgeID, person)
	if err != nil {
		return false, err
	}
	if granted {
		return true, nil
	}

	auth := &models.Authorization{
		BadgeID:   badgeID,
		PersonID:  person.Email,
		CreatedOn: time.Now(),
	}
	if err := s.db.Create(auth).Error; err != nil {
		metrics.RecordOperation("add_authorization", "error")
		return false, fmt.Errorf("failed to create authorization: %w", err)
	}
	metrics.RecordOperation("add_authorization", "ok")
	return true, nil
}

// Authorized reports whether the identity holds an authorization for the
// badge. The identity may be a person's email (or identifier, which is the
// same string) or an already resolved *models.Person.
func (s *Store) Authorized(badgeID string, identity any) (bool, error) {
	var personID string
	switch v := identity.(type) {
	case string:
		personID = v
	case *models.Person:
		if v == nil {
			return false, nil
		}
		personID = v.Email
	case models.Person:
		personID = v.Email
	default:
		return false, fmt.Errorf("unsupported identity type %T", identity)
	}
	if badgeID == "" || personID == "" {
		return false, nil
	}

	var count int64
	err := s.db.Model(&models.Authorization{}).
		Where("badge_id = ? AND person_id = ?", badgeID, personID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check authorization: %w", err)
	}
	return count > 0, nil
}
