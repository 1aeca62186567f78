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

// DefaultInvitationTTL is how long an invitation lives when the caller does
// not supply an expiry.
const DefaultInvitationTTL = time.Hour

// AddInvitation opens a pending award opportunity for a badge. The second
// return value is false when the badge is unknown. A zero expiry defaults
// to one hour after creation.
func (s *Store) AddInvitation(badgeID string, expiresOn time.Time) (string, bool, error) {
	if badgeID == "" {
		return "", false, nil
	}
	exists, err := s.BadgeExists(badgeID)
	if err != nil {
		return "", false, err
	}
	if !exists {
		return "", false, nil
	}

	now := time.Now()
	if expiresOn.IsZero() {
		expiresOn = now.Add(DefaultInvitationTTL)
	}

	invitation := &models.Invitation{
		ID:        uuid.NewString(),
		BadgeID:   badgeID,
		CreatedOn: now,
		ExpiresOn: expiresOn,
	}
	if err := s.db.Create(invitation).Error; err != nil {
		metrics.RecordOperation("add_invitation", "error")
		return "", false, fmt.Errorf("failed to create invitation: %w", err)
	}
	metrics.RecordOperation("add_invitation", "ok")
	return invitation.ID, true, nil
}

// InvitationExists reports whether an invitation with the given identifier
// is registered.
func (s *Store) InvitationExists(id string) (bool, error) {
	if id == "" {
		return false, nil
	}
	var count int64
	if err := s.db.Model(&models.Invitation{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check invitation: %w", err)
	}
	return count > 0, nil
}

// GetInvitation retrieves an invitation by identifier, or nil when there is
// none.
func (s *Store) GetInvitation(id string) (*models.Invitation, error) {
	var invitation models.Invitation
	err := s.db.Where("id = ?", id).First(&invitation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invitation %s: %w", id, err)
	}
	return &invitation, nil
}
