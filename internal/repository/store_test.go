package repository

import (
	"errors"
	"testing"

	"github.com/openmerit/badgestore/internal/notify"
)

// sinkRecorder captures published notifications for assertions.
type sinkRecorder struct {
	calls []sinkCall
	fail  error
}

type sinkCall struct {
	topic string
	msg   map[string]any
}

func (r *sinkRecorder) Publish(topic string, msg map[string]any) error {
	if r.fail != nil {
		return r.fail
	}
	r.calls = append(r.calls, sinkCall{topic: topic, msg: msg})
	return nil
}

// setupStore opens a store against an in-memory SQLite database with a
// recording notification sink.
func setupStore(t *testing.T) (*Store, *sinkRecorder) {
	t.Helper()

	rec := &sinkRecorder{}
	store, err := Open(":memory:", WithSink(rec))
	if err != nil {
		t.Fatalf("Failed to open in-memory store: %v", err)
	}
	if err := store.Migrate(); err != nil {
		t.Fatalf("Failed to migrate schema: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store, rec
}

// addTestIssuer registers the stock test issuer.
func addTestIssuer(t *testing.T, store *Store) string {
	t.Helper()

	id, err := store.AddIssuer("TestOrigin", "TestName", "TestOrg", "TestContact")
	if err != nil {
		t.Fatalf("Failed to add test issuer: %v", err)
	}
	return id
}

// addTestBadge registers a badge under the stock issuer.
func addTestBadge(t *testing.T, store *Store, name, tags string) string {
	t.Helper()

	issuerID := addTestIssuer(t, store)
	id, err := store.AddBadge(name, "TestImage", "A test badge for doing unit tests", "TestCriteria", issuerID, tags)
	if err != nil {
		t.Fatalf("Failed to add test badge: %v", err)
	}
	return id
}

// addTestPerson registers a person and fails the test on a duplicate.
func addTestPerson(t *testing.T, store *Store, email, nickname string) string {
	t.Helper()

	id, created, err := store.AddPerson(email, nickname, "", "")
	if err != nil {
		t.Fatalf("Failed to add test person: %v", err)
	}
	if !created {
		t.Fatalf("Expected person %s to be created", email)
	}
	return id
}

func TestOpenRequiresConnectionURI(t *testing.T) {
	_, err := Open("")
	if !errors.Is(err, ErrNoConnection) {
		t.Errorf("Expected ErrNoConnection, got %v", err)
	}
}

func TestOpenRejectsNilSink(t *testing.T) {
	_, err := Open(":memory:", WithSink(nil))
	if !errors.Is(err, ErrNilSink) {
		t.Errorf("Expected ErrNilSink for nil sink, got %v", err)
	}

	_, err = Open(":memory:", WithSink(notify.Func(nil)))
	if !errors.Is(err, ErrNilSink) {
		t.Errorf("Expected ErrNilSink for nil sink func, got %v", err)
	}
}

func TestOpenWithoutSink(t *testing.T) {
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()
	if err := store.Migrate(); err != nil {
		t.Fatalf("Migrate() failed: %v", err)
	}

	// Mutations must not require a sink
	if _, err := store.AddIssuer("TestOrigin", "TestName", "TestOrg", "TestContact"); err != nil {
		t.Errorf("AddIssuer() without sink failed: %v", err)
	}
}

func TestStoreHealth(t *testing.T) {
	store, _ := setupStore(t)
	if err := store.Health(); err != nil {
		t.Errorf("Health() failed: %v", err)
	}
}

func TestSinkErrorPropagatesAfterCommit(t *testing.T) {
	store, rec := setupStore(t)

	rec.fail = errors.New("sink down")
	id, err := store.AddIssuer("TestOrigin", "TestName", "TestOrg", "TestContact")
	if err == nil || err.Error() != "sink down" {
		t.Errorf("Expected the sink error unmodified, got %v", err)
	}
	if id == "" {
		t.Error("Expected the created id alongside the sink error")
	}

	// The entity is committed even though notification failed
	rec.fail = nil
	exists, err := store.IssuerExists("TestOrigin", "TestName")
	if err != nil {
		t.Fatalf("IssuerExists() failed: %v", err)
	}
	if !exists {
		t.Error("Expected the issuer to be committed despite the sink failure")
	}
}
