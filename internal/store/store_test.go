package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/Odokodan153/Chimera-Nexus/internal/htc"
)

// testChain builds a small valid assessment for storage tests.
func testChain(t *testing.T) *htc.Assessment {
	t.Helper()
	a, err := htc.Build(htc.RawAssessment{
		Name:    "Harbor intrusion review",
		Urgency: 0.6,
		Vectors: []htc.RawVector{
			{Actor: "APT Kestrel", Capability: "advanced", Intent: "suspected", Domain: "cyber"},
		},
		Hypotheses: []htc.RawHypothesis{
			{Statement: "Staged intrusion ahead of fraud", Confidence: 0.6, Primary: true},
			{Statement: "Unrelated commodity malware", Confidence: 0},
		},
		Signals: []htc.RawSignal{
			{Description: "Beaconing to known C2 range", Reliability: "corroborated", Polarity: "supports", Hypothesis: 0},
		},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return a
}

// revised returns the next version of a with one more signal attached.
func revised(t *testing.T, a *htc.Assessment) *htc.Assessment {
	t.Helper()
	next, err := a.WithSignal(htc.Signal{
		Description: "Clean proxy logs for the same window",
		Reliability: htc.ReliabilitySingleSource,
		Polarity:    htc.PolarityContradicts,
		Hypothesis:  a.Hypotheses[0].ID,
	})
	if err != nil {
		t.Fatalf("WithSignal: %v", err)
	}
	return next
}

// eachStore runs fn against both Store implementations.
func eachStore(t *testing.T, fn func(t *testing.T, s Store)) {
	t.Run("sql", func(t *testing.T) {
		s, err := Open(filepath.Join(t.TempDir(), "nexus.db"))
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		defer s.Close()
		fn(t, s)
	})
	t.Run("mem", func(t *testing.T) {
		fn(t, NewMemStore())
	})
}

func TestStoreRoundTrip(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		v1 := testChain(t)
		v2 := revised(t, v1)
		if err := s.Save(v1); err != nil {
			t.Fatalf("Save v1: %v", err)
		}
		if err := s.Save(v2); err != nil {
			t.Fatalf("Save v2: %v", err)
		}

		got1, err := s.Get(v1.ID, 1)
		if err != nil {
			t.Fatalf("Get v1: %v", err)
		}
		if diff := cmp.Diff(v1, got1); diff != "" {
			t.Errorf("Get v1 mismatch (-want +got):\n%s", diff)
		}

		latest, err := s.Latest(v1.ID)
		if err != nil {
			t.Fatalf("Latest: %v", err)
		}
		if latest.Version != 2 || len(latest.Signals) != 2 {
			t.Errorf("Latest: got v%d with %d signals, want v2 with 2", latest.Version, len(latest.Signals))
		}

		metas, err := s.Versions(v1.ID)
		if err != nil {
			t.Fatalf("Versions: %v", err)
		}
		if len(metas) != 2 || metas[0].Version != 1 || metas[1].Version != 2 {
			t.Fatalf("Versions: got %+v, want v1 then v2", metas)
		}
		if metas[1].Signals != 2 || metas[1].Hypotheses != 2 || metas[1].Vectors != 1 {
			t.Errorf("Versions counts: got %+v", metas[1])
		}

		list, err := s.List()
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(list) != 1 || list[0].Version != 2 || list[0].Name != "Harbor intrusion review" {
			t.Fatalf("List: got %+v, want one row at v2", list)
		}
	})
}

func TestSaveRejectsDuplicateVersion(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		a := testChain(t)
		if err := s.Save(a); err != nil {
			t.Fatalf("Save: %v", err)
		}
		err := s.Save(a)
		if !errors.Is(err, ErrVersionExists) {
			t.Fatalf("second Save: got %v, want ErrVersionExists", err)
		}
	})
}

func TestSaveRejectsInvalid(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		a := testChain(t)
		a.Name = ""
		if err := s.Save(a); err == nil {
			t.Fatal("Save accepted an invalid assessment")
		}
		if _, err := s.Latest(a.ID); !errors.Is(err, ErrNotFound) {
			t.Fatalf("Latest after rejected save: got %v, want ErrNotFound", err)
		}
	})
}

func TestMissingLookups(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		a := testChain(t)
		if err := s.Save(a); err != nil {
			t.Fatalf("Save: %v", err)
		}
		if _, err := s.Get(a.ID, 9); !errors.Is(err, ErrNotFound) {
			t.Errorf("Get missing version: got %v, want ErrNotFound", err)
		}
		other := uuid.New()
		if _, err := s.Get(other, 1); !errors.Is(err, ErrNotFound) {
			t.Errorf("Get missing id: got %v, want ErrNotFound", err)
		}
		if _, err := s.Latest(other); !errors.Is(err, ErrNotFound) {
			t.Errorf("Latest missing id: got %v, want ErrNotFound", err)
		}
		if _, err := s.Versions(other); !errors.Is(err, ErrNotFound) {
			t.Errorf("Versions missing id: got %v, want ErrNotFound", err)
		}
	})
}

func TestMemStoreIsolatesStoredState(t *testing.T) {
	s := NewMemStore()
	a := testChain(t)
	if err := s.Save(a); err != nil {
		t.Fatalf("Save: %v", err)
	}
	// Mutating the saved value or a loaded copy must not reach the store.
	a.Hypotheses[0].Confidence = 0.99
	loaded, err := s.Get(a.ID, 1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if loaded.Hypotheses[0].Confidence != 0.6 {
		t.Fatalf("stored confidence changed to %v", loaded.Hypotheses[0].Confidence)
	}
	loaded.Signals[0].Description = "tampered"
	again, err := s.Get(a.ID, 1)
	if err != nil {
		t.Fatalf("Get again: %v", err)
	}
	if again.Signals[0].Description == "tampered" {
		t.Fatal("loaded copy shares memory with the store")
	}
}

func TestSqlStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".nexus", "nexus.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	a := testChain(t)
	if err := s.Save(a); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	latest, err := s2.Latest(a.ID)
	if err != nil {
		t.Fatalf("Latest after reopen: %v", err)
	}
	if diff := cmp.Diff(a, latest); diff != "" {
		t.Errorf("reopened assessment mismatch (-want +got):\n%s", diff)
	}
}

func TestSqlStoreDetectsCorruption(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "nexus.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()
	a := testChain(t)
	if err := s.Save(a); err != nil {
		t.Fatalf("Save: %v", err)
	}

	cases := []struct {
		name    string
		payload string
	}{
		{name: "not json", payload: "{broken"},
		{name: "valid json failing validation", payload: `{"id":"` + a.ID.String() + `","name":"","version":1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.db.Exec(
				"UPDATE assessments SET payload = ? WHERE id = ? AND version = ?",
				tc.payload, a.ID.String(), a.Version,
			)
			if err != nil {
				t.Fatalf("inject corruption: %v", err)
			}
			if _, err := s.Get(a.ID, 1); !errors.Is(err, ErrCorrupt) {
				t.Fatalf("Get: got %v, want ErrCorrupt", err)
			}
			if _, err := s.Latest(a.ID); !errors.Is(err, ErrCorrupt) {
				t.Fatalf("Latest: got %v, want ErrCorrupt", err)
			}
		})
	}
}
