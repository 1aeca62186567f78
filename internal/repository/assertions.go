package repository

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/openmerit/badgestore/internal/metrics"
	"github.com/openmerit/badgestore/internal/models"
	"github.com/openmerit/badgestore/internal/notify"
	"github.com/openmerit/badgestore/internal/recipient"
)

// AddAssertion awards a badge to a person. The second return value is false
// when the badge or the person is unknown. The recipient is stored only as
// a salted hash token. A zero issuedOn means "now".
//
// Awarding publishes two facts: the badge award itself, and the recipient's
// rank advancement when the award changed it.
func (s *Store) AddAssertion(badgeID, email string, issuedOn time.Time, issuedFor string) (string, bool, error) {
	if badgeID == "" || email == "" {
		return "", false, nil
	}

	badge, err := s.GetBadge(badgeID)
	if err != nil {
		return "", false, err
	}
	if badge == nil {
		return "", false, nil
	}
	person, err := s.GetPerson(email)
	if err != nil {
		return "", false, err
	}
	if person == nil {
		return "", false, nil
	}

	token, err := recipient.NewToken(email)
	if err != nil {
		return "", false, err
	}
	if issuedOn.IsZero() {
		issuedOn = time.Now()
	}

	assertion := &models.Assertion{
		ID:        uuid.NewString(),
		BadgeID:   badge.ID,
		PersonID:  person.Email,
		Recipient: token,
		IssuedOn:  issuedOn,
		IssuedFor: issuedFor,
		CreatedOn: time.Now(),
	}
	if err := s.db.Create(assertion).Error; err != nil {
		metrics.RecordOperation("add_assertion", "error")
		return "", false, fmt.Errorf("failed to create assertion: %w", err)
	}
	metrics.RecordOperation("add_assertion", "ok")

	oldRank := person.Rank
	newRank, err := s.adjustRanks(person.Email)
	if err != nil {
		return assertion.ID, true, err
	}
	person.Rank = newRank

	badgeMsg := badge.Export()
	badgeMsg["badge_id"] = badge.ID
	err = s.publish(notify.TopicBadgeAward, map[string]any{
		"badge": badgeMsg,
		"user":  map[string]any{"username": person.Nickname, "badge_id": badge.ID},
	})
	if err != nil {
		return assertion.ID, true, err
	}

	if newRank != oldRank {
		err = s.publish(notify.TopicRankAdvance, map[string]any{
			"person":   person.Export(),
			"old_rank": oldRank,
			"rank":     newRank,
		})
		if err != nil {
			return assertion.ID, true, err
		}
	}

	return assertion.ID, true, nil
}

// adjustRanks recomputes person ranks from per-person award counts using
// competition ranking (1 = most awards, ties share a rank, unawarded
// persons stay at 0). Returns the post-adjustment rank of the given person.
func (s *Store) adjustRanks(email string) (int, error) {
	type awardCount struct {
		PersonID string
		N        int64
	}
	var counts []awardCount
	err := s.db.Model(&models.Assertion{}).
		Select("person_id, count(*) as n").
		Where("person_id <> ''").
		Group("person_id").
		Order("n DESC").
		Scan(&counts).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count awards: %w", err)
	}

	newRank := 0
	rank := 0
	var prev int64 = -1
	for i, c := range counts {
		if c.N != prev {
			rank = i + 1
			prev = c.N
		}
		err := s.db.Model(&models.Person{}).
			Where("email = ? AND rank <> ?", c.PersonID, rank).
			Update("rank", rank).Error
		if err != nil {
			return 0, fmt.Errorf("failed to update rank for %s: %w", c.PersonID, err)
		}
		if c.PersonID == email {
			newRank = rank
		}
	}
	return newRank, nil
}

// AssertionExists reports whether the badge was awarded to the email. It
// recomputes the digest of the candidate email under each stored salt and
// compares, never the other way around.
func (s *Store) AssertionExists(badgeID, email string) (bool, error) {
	if badgeID == "" || email == "" {
		return false, nil
	}

	assertions, err := s.AssertionsByBadge(badgeID)
	if err != nil {
		return false, err
	}
	for _, a := range assertions {
		token, err := recipient.Parse(a.Recipient)
		if err != nil {
			continue
		}
		if token.Matches(email) {
			return true, nil
		}
	}
	return false, nil
}

// ListAssertions retrieves all assertions in creation order.
func (s *Store) ListAssertions() ([]models.Assertion, error) {
	var assertions []models.Assertion
	if err := s.db.Order("created_on ASC").Find(&assertions).Error; err != nil {
		return nil, fmt.Errorf("failed to list assertions: %w", err)
	}
	return assertions, nil
}

// AssertionsByBadge retrieves all assertions for a badge, empty for an
// unknown badge.
func (s *Store) AssertionsByBadge(badgeID string) ([]models.Assertion, error) {
	var assertions []models.Assertion
	err := s.db.Where("badge_id = ?", badgeID).
		Order("created_on ASC").
		Find(&assertions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get assertions for badge %s: %w", badgeID, err)
	}
	return assertions, nil
}

// AssertionsByEmail retrieves all assertions awarded to the email, empty
// for an unknown recipient.
func (s *Store) AssertionsByEmail(email string) ([]models.Assertion, error) {
	person, err := s.GetPerson(email)
	if err != nil {
		return nil, err
	}
	if person == nil {
		return nil, nil
	}
	var assertions []models.Assertion
	err = s.db.Where("person_id = ?", person.Email).
		Order("created_on ASC").
		Find(&assertions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get assertions for %s: %w", email, err)
	}
	return assertions, nil
}
