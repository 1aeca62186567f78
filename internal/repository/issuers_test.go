package repository

import (
	"testing"

	"github.com/openmerit/badgestore/internal/notify"
)

func TestAddIssuerIsIdempotent(t *testing.T) {
	store, _ := setupStore(t)

	first, err := store.AddIssuer("TestOrigin", "TestName", "TestOrg", "TestContact")
	if err != nil {
		t.Fatalf("AddIssuer() failed: %v", err)
	}
	second, err := store.AddIssuer("TestOrigin", "TestName", "TestOrg", "TestContact")
	if err != nil {
		t.Fatalf("AddIssuer() second call failed: %v", err)
	}
	if first != second {
		t.Errorf("Expected the existing id %q, got %q", first, second)
	}

	issuers, err := store.ListIssuers()
	if err != nil {
		t.Fatalf("ListIssuers() failed: %v", err)
	}
	if len(issuers) != 1 {
		t.Errorf("Expected 1 issuer after duplicate add, got %d", len(issuers))
	}
}

func TestAddIssuerValidation(t *testing.T) {
	store, _ := setupStore(t)

	if _, err := store.AddIssuer("", "TestName", "", ""); err == nil {
		t.Error("Expected an error for empty origin")
	}
	if _, err := store.AddIssuer("TestOrigin", "", "", ""); err == nil {
		t.Error("Expected an error for empty name")
	}
}

func TestAddIssuerPublishesOnlyOnCreate(t *testing.T) {
	store, rec := setupStore(t)

	_, _ = store.AddIssuer("TestOrigin", "TestName", "TestOrg", "TestContact")
	_, _ = store.AddIssuer("TestOrigin", "TestName", "TestOrg", "TestContact")

	count := 0
	for _, call := range rec.calls {
		if call.topic == notify.TopicIssuerNew {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Expected exactly 1 issuer.new event, got %d", count)
	}
}

func TestIssuerExists(t *testing.T) {
	store, _ := setupStore(t)
	addTestIssuer(t, store)

	exists, err := store.IssuerExists("TestOrigin", "TestName")
	if err != nil {
		t.Fatalf("IssuerExists() failed: %v", err)
	}
	if !exists {
		t.Error("Expected the issuer to exist")
	}

	exists, err = store.IssuerExists("TestOrigin", "Other")
	if err != nil {
		t.Fatalf("IssuerExists() failed: %v", err)
	}
	if exists {
		t.Error("Expected an unknown issuer not to exist")
	}

	// Missing lookup keys are false, not an error
	exists, err = store.IssuerExists("", "")
	if err != nil || exists {
		t.Errorf("Expected (false, nil) for empty keys, got (%v, %v)", exists, err)
	}
}

func TestGetIssuer(t *testing.T) {
	store, _ := setupStore(t)

	issuer, err := store.GetIssuer("xyz")
	if err != nil {
		t.Fatalf("GetIssuer() failed: %v", err)
	}
	if issuer != nil {
		t.Error("Expected nil for an unknown issuer")
	}

	id, err := store.AddIssuer("http://bleach.org", "aizen", "Bleach", "aizen@bleach.org")
	if err != nil {
		t.Fatalf("AddIssuer() failed: %v", err)
	}
	issuer, err = store.GetIssuer(id)
	if err != nil {
		t.Fatalf("GetIssuer() failed: %v", err)
	}
	if issuer == nil {
		t.Fatal("Expected the issuer back")
	}
	if issuer.String() != "aizen" {
		t.Errorf("Expected issuer to render as its name, got %q", issuer.String())
	}

	out := issuer.Export()
	if out["origin"] != "http://bleach.org" || out["org"] != "Bleach" ||
		out["contact"] != "aizen@bleach.org" || out["name"] != "aizen" {
		t.Errorf("Unexpected issuer export: %v", out)
	}
	if _, ok := out["created_on"].(float64); !ok {
		t.Errorf("Expected epoch float created_on, got %T", out["created_on"])
	}
}

func TestDeleteIssuer(t *testing.T) {
	store, _ := setupStore(t)
	id := addTestIssuer(t, store)

	deleted, err := store.DeleteIssuer("xxxx")
	if err != nil {
		t.Fatalf("DeleteIssuer() failed: %v", err)
	}
	if deleted != "" {
		t.Errorf("Expected the empty sentinel for a missing issuer, got %q", deleted)
	}

	deleted, err = store.DeleteIssuer(id)
	if err != nil {
		t.Fatalf("DeleteIssuer() failed: %v", err)
	}
	if deleted != id {
		t.Errorf("Expected the deleted id %q, got %q", id, deleted)
	}

	issuers, err := store.ListIssuers()
	if err != nil {
		t.Fatalf("ListIssuers() failed: %v", err)
	}
	if len(issuers) != 0 {
		t.Errorf("Expected no issuers after delete, got %d", len(issuers))
	}
}
