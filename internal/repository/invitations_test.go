package repository

import (
	"testing"
	"time"
)

func TestAddInvitation(t *testing.T) {
	store, _ := setupStore(t)
	badgeID := addTestBadge(t, store, "TestBadge", "")

	id, created, err := store.AddInvitation(badgeID, time.Time{})
	if err != nil {
		t.Fatalf("AddInvitation() failed: %v", err)
	}
	if !created || id == "" {
		t.Fatalf("Expected an invitation id, got (%q, %v)", id, created)
	}

	exists, err := store.InvitationExists(id)
	if err != nil {
		t.Fatalf("InvitationExists() failed: %v", err)
	}
	if !exists {
		t.Error("Expected invitation to exist")
	}

	exists, err = store.InvitationExists("xxxx")
	if err != nil || exists {
		t.Errorf("Expected (false, nil) for an unknown invitation, got (%v, %v)", exists, err)
	}
}

func TestAddInvitationUnknownBadge(t *testing.T) {
	store, _ := setupStore(t)

	id, created, err := store.AddInvitation("xxxx", time.Time{})
	if err != nil {
		t.Fatalf("AddInvitation() failed: %v", err)
	}
	if created || id != "" {
		t.Errorf("Expected the not-created sentinel, got (%q, %v)", id, created)
	}
}

func TestInvitationDefaultExpiry(t *testing.T) {
	store, _ := setupStore(t)
	badgeID := addTestBadge(t, store, "TestBadge", "")

	id, _, err := store.AddInvitation(badgeID, time.Time{})
	if err != nil {
		t.Fatalf("AddInvitation() failed: %v", err)
	}
	invitation, err := store.GetInvitation(id)
	if err != nil {
		t.Fatalf("GetInvitation() failed: %v", err)
	}
	if invitation == nil {
		t.Fatal("Expected the invitation back")
	}

	ttl := invitation.ExpiresOn.Sub(invitation.CreatedOn)
	if ttl < 59*time.Minute || ttl > 61*time.Minute {
		t.Errorf("Expected a one hour default expiry, got %v", ttl)
	}
	if invitation.Expired() {
		t.Error("Expected a fresh invitation not to be expired")
	}
}

func TestInvitationExplicitExpiry(t *testing.T) {
	store, _ := setupStore(t)
	badgeID := addTestBadge(t, store, "TestBadge", "")

	past := time.Now().Add(-time.Hour)
	id, _, err := store.AddInvitation(badgeID, past)
	if err != nil {
		t.Fatalf("AddInvitation() failed: %v", err)
	}
	invitation, err := store.GetInvitation(id)
	if err != nil {
		t.Fatalf("GetInvitation() failed: %v", err)
	}
	if !invitation.Expired() {
		t.Error("Expected an invitation expiring in the past to be expired")
	}
}
