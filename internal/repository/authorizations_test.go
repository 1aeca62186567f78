package repository

import (
	"testing"
)

func TestAddAuthorization(t *testing.T) {
	store, _ := setupStore(t)
	badgeID := addTestBadge(t, store, "kido", "")
	addTestPerson(t, store, "hinamori@bleach.org", "hinamori")

	ok, err := store.Authorized(badgeID, "izuru@bleach.org")
	if err != nil {
		t.Fatalf("Authorized() failed: %v", err)
	}
	if ok {
		t.Error("Expected an unrelated email not to be authorized")
	}

	granted, err := store.AddAuthorization(badgeID, "hinamori@bleach.org")
	if err != nil {
		t.Fatalf("AddAuthorization() failed: %v", err)
	}
	if !granted {
		t.Fatal("Expected the grant to succeed")
	}

	ok, err = store.Authorized(badgeID, "hinamori@bleach.org")
	if err != nil {
		t.Fatalf("Authorized() failed: %v", err)
	}
	if !ok {
		t.Error("Expected the email to be authorized")
	}

	// A resolved person entity is accepted as the identity too
	person, err := store.GetPerson("hinamori@bleach.org")
	if err != nil {
		t.Fatalf("GetPerson() failed: %v", err)
	}
	ok, err = store.Authorized(badgeID, person)
	if err != nil {
		t.Fatalf("Authorized() failed: %v", err)
	}
	if !ok {
		t.Error("Expected the resolved person to be authorized")
	}
}

func TestAddAuthorizationUnknownTargets(t *testing.T) {
	store, _ := setupStore(t)
	badgeID := addTestBadge(t, store, "kido", "")

	granted, err := store.AddAuthorization("xxxx", "hinamori@bleach.org")
	if err != nil || granted {
		t.Errorf("Expected (false, nil) for an unknown badge, got (%v, %v)", granted, err)
	}

	granted, err = store.AddAuthorization(badgeID, "stranger@bleach.org")
	if err != nil || granted {
		t.Errorf("Expected (false, nil) for an unknown person, got (%v, %v)", granted, err)
	}
}

func TestAddAuthorizationIsIdempotent(t *testing.T) {
	store, _ := setupStore(t)
	badgeID := addTestBadge(t, store, "kido", "")
	addTestPerson(t, store, "hinamori@bleach.org", "hinamori")

	for i := 0; i < 2; i++ {
		granted, err := store.AddAuthorization(badgeID, "hinamori@bleach.org")
		if err != nil {
			t.Fatalf("AddAuthorization() call %d failed: %v", i+1, err)
		}
		if !granted {
			t.Errorf("Expected call %d to report the grant", i+1)
		}
	}
}

func TestAuthorizedRejectsUnsupportedIdentity(t *testing.T) {
	store, _ := setupStore(t)
	badgeID := addTestBadge(t, store, "kido", "")

	if _, err := store.Authorized(badgeID, 42); err == nil {
		t.Error("Expected an error for an unsupported identity type")
	}
}
