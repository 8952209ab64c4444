package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/truthpulse/truthpulse/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSaveAndGet(t *testing.T) {
	s := newTestStore(t)

	record := Record{
		ID:         "v-1",
		UserID:     "user-9",
		Claim:      "the bridge is closed",
		Verdict:    model.VerdictFalse,
		Confidence: 0.91,
		Rationale:  "Official sources confirm it is open.",
		Evidence: []model.EvidenceItem{
			{Title: "Bridge open", URL: "https://pwd.example/bridge", Origin: model.OriginRSS, Reliable: true},
		},
		Notes: "Priority: HIGH",
	}
	if err := s.Save(record); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Get("v-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Claim != record.Claim || got.Verdict != record.Verdict || got.Confidence != record.Confidence {
		t.Errorf("roundtrip mismatch: %+v", got)
	}
	if len(got.Evidence) != 1 || got.Evidence[0].URL != "https://pwd.example/bridge" {
		t.Errorf("evidence not preserved: %+v", got.Evidence)
	}
	if !got.Evidence[0].Reliable {
		t.Error("reliable flag not preserved")
	}
	if got.CreatedAt.IsZero() {
		t.Error("created_at should be assigned on save")
	}
}

func TestGet_NotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSave_Replaces(t *testing.T) {
	s := newTestStore(t)

	base := Record{ID: "v-1", Claim: "c", Verdict: model.VerdictUnverified, Confidence: 0.3}
	if err := s.Save(base); err != nil {
		t.Fatal(err)
	}
	base.Verdict = model.VerdictTrue
	base.Confidence = 0.8
	if err := s.Save(base); err != nil {
		t.Fatal(err)
	}

	got, err := s.Get("v-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Verdict != model.VerdictTrue || got.Confidence != 0.8 {
		t.Errorf("save should replace existing record: %+v", got)
	}

	records, err := s.List(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Errorf("expected single record after replace, got %d", len(records))
	}
}

func TestList_NewestFirst(t *testing.T) {
	s := newTestStore(t)

	older := time.Now().UTC().Add(-time.Hour)
	newer := time.Now().UTC()
	if err := s.Save(Record{ID: "old", Claim: "a", Verdict: model.VerdictTrue, CreatedAt: older}); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(Record{ID: "new", Claim: "b", Verdict: model.VerdictFalse, CreatedAt: newer}); err != nil {
		t.Fatal(err)
	}

	records, err := s.List(10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].ID != "new" || records[1].ID != "old" {
		t.Errorf("expected newest first, got %s then %s", records[0].ID, records[1].ID)
	}

	limited, err := s.List(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 || limited[0].ID != "new" {
		t.Errorf("limit should keep the newest record, got %+v", limited)
	}
}
