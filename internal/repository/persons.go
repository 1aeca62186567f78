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

// AddPerson registers a person keyed by email. The second return value is
// false when the email is already registered, which callers rely on to
// detect duplicate registration; the existing row is left untouched. An
// empty nickname defaults to the email's local part.
func (s *Store) AddPerson(email, nickname, website, bio string) (string, bool, error) {
	if email == "" {
		return "", false, fmt.Errorf("person email is required")
	}

	exists, err := s.PersonExists(email)
	if err != nil {
		return "", false, err
	}
	if exists {
		return "", false, nil
	}

	if nickname == "" {
		nickname = models.DefaultNickname(email)
	}

	person := &models.Person{
		Email:     email,
		Nickname:  nickname,
		Website:   website,
		Bio:       bio,
		CreatedOn: time.Now(),
	}
	if err := s.db.Create(person).Error; err != nil {
		metrics.RecordOperation("add_person", "error")
		return "", false, fmt.Errorf("failed to create person: %w", err)
	}
	metrics.RecordOperation("add_person", "ok")
	return person.Email, true, nil
}

// PersonExists reports whether the email is registered. An absent key
// yields false, not an error.
func (s *Store) PersonExists(email string) (bool, error) {
	if email == "" {
		return false, nil
	}
	var count int64
	err := s.db.Model(&models.Person{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check person: %w", err)
	}
	return count > 0, nil
}

// GetPerson retrieves a person by identifier (the email), or nil when there
// is none.
func (s *Store) GetPerson(id string) (*models.Person, error) {
	if id == "" {
		return nil, nil
	}
	var person models.Person
	err := s.db.Where("email = ?", id).First(&person).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get person %s: %w", id, err)
	}
	return &person, nil
}

// GetPersonByNickname retrieves a person by the secondary nickname key, or
// nil when there is none.
func (s *Store) GetPersonByNickname(nickname string) (*models.Person, error) {
	if nickname == "" {
		return nil, nil
	}
	var person models.Person
	err := s.db.Where("nickname = ?", nickname).First(&person).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get person by nickname %s: %w", nickname, err)
	}
	return &person, nil
}

// PersonEmail returns the email for a person identifier, or "" when the
// person is unknown.
func (s *Store) PersonEmail(id string) (string, error) {
	person, err := s.GetPerson(id)
	if err != nil {
		return "", err
	}
	if person == nil {
		return "", nil
	}
	return person.Email, nil
}

// DeletePerson removes a person and returns the deleted email, or "" when
// no person matched.
func (s *Store) DeletePerson(email string) (string, error) {
	person, err := s.GetPerson(email)
	if err != nil {
		return "", err
	}
	if person == nil {
		return "", nil
	}
	if err := s.db.Delete(person).Error; err != nil {
		metrics.RecordOperation("delete_person", "error")
		return "", fmt.Errorf("failed to delete person %s: %w", email, err)
	}
	metrics.RecordOperation("delete_person", "ok")
	return person.Email, nil
}

// PersonOptedOut reports whether the person has opted out of the system.
// Unknown emails yield false.
func (s *Store) PersonOptedOut(email string) (bool, error) {
	person, err := s.GetPerson(email)
	if err != nil {
		return false, err
	}
	if person == nil {
		return false, nil
	}
	return person.OptedOut, nil
}

// SetPersonOptedOut flips the person's opt-out flag. Unknown emails are a
// no-op.
func (s *Store) SetPersonOptedOut(email string, optedOut bool) error {
	person, err := s.GetPerson(email)
	if err != nil {
		return err
	}
	if person == nil {
		return nil
	}
	if err := s.db.Model(person).Update("opted_out", optedOut).Error; err != nil {
		return fmt.Errorf("failed to update opt-out for %s: %w", email, err)
	}
	return nil
}

// NoteLogin stamps the person's last login and publishes the login event.
// Unknown nicknames are a no-op.
func (s *Store) NoteLogin(nickname string) error {
	person, err := s.GetPersonByNickname(nickname)
	if err != nil {
		return err
	}
	if person == nil {
		return nil
	}

	now := time.Now()
	if err := s.db.Model(person).Update("last_login", &now).Error; err != nil {
		metrics.RecordOperation("note_login", "error")
		return fmt.Errorf("failed to note login for %s: %w", nickname, err)
	}
	person.LastLogin = &now
	metrics.RecordOperation("note_login", "ok")

	return s.publish(notify.TopicLogin, map[string]any{"person": person.Export()})
}

// ListPersons retrieves all persons in creation order.
func (s *Store) ListPersons() ([]models.Person, error) {
	var persons []models.Person
	if err := s.db.Order("created_on ASC").Find(&persons).Error; err != nil {
		return nil, fmt.Errorf("failed to list persons: %w", err)
	}
	return persons, nil
}
