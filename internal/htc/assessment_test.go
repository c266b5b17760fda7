package htc

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
)

func fixtureRaw() RawAssessment {
	return RawAssessment{
		Name:    "Operation Quiet Harbor",
		Urgency: 0.7,
		Vectors: []RawVector{
			{Actor: "APT Kestrel", Capability: "advanced", Intent: "suspected", Domain: "cyber"},
			{Actor: UnknownActor, Capability: "moderate", Intent: "none", Domain: "information"},
		},
		Hypotheses: []RawHypothesis{
			{Statement: "Pre-positioning for a ransomware strike", Confidence: 0.6, Primary: true},
			{Statement: "Routine opportunistic scanning", Confidence: 0.2},
		},
		Signals: []RawSignal{
			{Description: "Spearphish against treasury staff", Reliability: "corroborated", Polarity: "supports", Hypothesis: 0},
			{Description: "Commodity scanner fingerprints on the beachhead", Reliability: "single-source", Polarity: "contradicts", Hypothesis: 0},
			{Description: "Bulk scan traffic from a known botnet", Reliability: "unconfirmed", Polarity: "supports", Hypothesis: 1},
		},
	}
}

func buildFixture(t *testing.T) *Assessment {
	t.Helper()
	a, err := Build(fixtureRaw())
	if err != nil {
		t.Fatalf("build fixture: %v", err)
	}
	return a
}

func errKind(err error) string {
	var (
		v *ValidationError
		d *DomainError
		r *ReferentialError
	)
	switch {
	case err == nil:
		return "nil"
	case errors.As(err, &v):
		return "validation"
	case errors.As(err, &d):
		return "domain"
	case errors.As(err, &r):
		return "referential"
	default:
		return "other"
	}
}

func TestValidateIsIdempotent(t *testing.T) {
	a := buildFixture(t)
	for i := 0; i < 3; i++ {
		if err := a.Validate(); err != nil {
			t.Fatalf("pass %d: %v", i, err)
		}
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name    string
		corrupt func(a *Assessment)
		want    string
	}{
		{
			name:    "no vectors",
			corrupt: func(a *Assessment) { a.Vectors = nil },
			want:    "validation",
		},
		{
			name:    "no hypotheses",
			corrupt: func(a *Assessment) { a.Hypotheses = nil },
			want:    "validation",
		},
		{
			name:    "urgency above one",
			corrupt: func(a *Assessment) { a.Urgency = 1.2 },
			want:    "validation",
		},
		{
			name:    "urgency below zero",
			corrupt: func(a *Assessment) { a.Urgency = -0.01 },
			want:    "validation",
		},
		{
			name:    "confidence above one",
			corrupt: func(a *Assessment) { a.Hypotheses[0].Confidence = 1.5 },
			want:    "validation",
		},
		{
			name:    "empty statement",
			corrupt: func(a *Assessment) { a.Hypotheses[1].Statement = "" },
			want:    "validation",
		},
		{
			name:    "no primary",
			corrupt: func(a *Assessment) { a.Hypotheses[0].Primary = false },
			want:    "domain",
		},
		{
			name:    "two primaries",
			corrupt: func(a *Assessment) { a.Hypotheses[1].Primary = true },
			want:    "domain",
		},
		{
			name:    "duplicate hypothesis id",
			corrupt: func(a *Assessment) { a.Hypotheses[1].ID = a.Hypotheses[0].ID },
			want:    "validation",
		},
		{
			name: "dangling evidence ref",
			corrupt: func(a *Assessment) {
				a.Hypotheses[0].Supporting = append(a.Hypotheses[0].Supporting, uuid.New())
			},
			want: "referential",
		},
		{
			name:    "signal names unknown hypothesis",
			corrupt: func(a *Assessment) { a.Signals[0].Hypothesis = uuid.New() },
			want:    "referential",
		},
		{
			name:    "polarity disagrees with listing",
			corrupt: func(a *Assessment) { a.Signals[0].Polarity = PolarityContradicts },
			want:    "validation",
		},
		{
			name:    "signal missing from its hypothesis",
			corrupt: func(a *Assessment) { a.Hypotheses[0].Supporting = a.Hypotheses[0].Supporting[:0] },
			want:    "validation",
		},
		{
			name:    "unknown capability",
			corrupt: func(a *Assessment) { a.Vectors[0].Capability = "weaponized" },
			want:    "validation",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := buildFixture(t)
			tt.corrupt(a)
			err := a.Validate()
			if got := errKind(err); got != tt.want {
				t.Fatalf("Validate() error kind = %s (%v), want %s", got, err, tt.want)
			}
		})
	}
}

func TestConfirmedIntentNeedsSupport(t *testing.T) {
	raw := fixtureRaw()
	raw.Vectors[0].Intent = "confirmed"
	if _, err := Build(raw); err != nil {
		t.Fatalf("confirmed intent with supporting signals should build: %v", err)
	}

	raw = fixtureRaw()
	raw.Vectors[0].Intent = "confirmed"
	// Zero the confidences so the only rule in play is the intent one.
	raw.Hypotheses[0].Confidence = 0
	raw.Hypotheses[1].Confidence = 0
	raw.Signals = []RawSignal{
		{Description: "Denial from the hosting provider", Reliability: "single-source", Polarity: "contradicts", Hypothesis: 0},
	}
	_, err := Build(raw)
	if got := errKind(err); got != "domain" {
		t.Fatalf("confirmed intent without support: error kind = %s (%v), want domain", got, err)
	}
}

func TestPrimaryHypothesis(t *testing.T) {
	a := buildFixture(t)
	p, err := a.PrimaryHypothesis()
	if err != nil {
		t.Fatalf("PrimaryHypothesis: %v", err)
	}
	if p.Statement != "Pre-positioning for a ransomware strike" {
		t.Fatalf("wrong primary: %q", p.Statement)
	}

	a.Hypotheses[0].Primary = false
	if _, err := a.PrimaryHypothesis(); errKind(err) != "domain" {
		t.Fatalf("no primary: got %v, want DomainError", err)
	}

	a.Hypotheses[0].Primary = true
	a.Hypotheses[1].Primary = true
	if _, err := a.PrimaryHypothesis(); errKind(err) != "domain" {
		t.Fatalf("two primaries: got %v, want DomainError", err)
	}
}

func TestResolve(t *testing.T) {
	a := buildFixture(t)

	s, err := a.Resolve(SignalRef(a.Signals[1].ID))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if s.ID != a.Signals[1].ID {
		t.Fatalf("resolved wrong signal: %s", s.ID)
	}

	if _, err := a.Resolve(SignalRef(uuid.New())); errKind(err) != "referential" {
		t.Fatalf("unknown signal: got %v, want ReferentialError", err)
	}
	if _, err := a.Resolve(HypothesisRef(a.Hypotheses[0].ID)); errKind(err) != "referential" {
		t.Fatalf("hypothesis ref through Resolve: got %v, want ReferentialError", err)
	}
}

func TestHypothesisByID(t *testing.T) {
	a := buildFixture(t)
	h, err := a.HypothesisByID(a.Hypotheses[1].ID)
	if err != nil {
		t.Fatalf("HypothesisByID: %v", err)
	}
	if h.Statement != a.Hypotheses[1].Statement {
		t.Fatalf("wrong hypothesis: %q", h.Statement)
	}
	if _, err := a.HypothesisByID(uuid.New()); errKind(err) != "referential" {
		t.Fatalf("unknown id: got %v, want ReferentialError", err)
	}
}

func TestCloneIsolation(t *testing.T) {
	orig := buildFixture(t)
	snapshot := orig.Clone()

	mutant := orig.Clone()
	mutant.Name = "renamed"
	mutant.Vectors[0].Actor = "someone else"
	mutant.Hypotheses[0].Supporting[0] = uuid.New()
	mutant.Signals[0].Description = "rewritten"
	mutant.Hypotheses = append(mutant.Hypotheses, Hypothesis{ID: uuid.New(), Statement: "extra"})

	if diff := cmp.Diff(snapshot, orig); diff != "" {
		t.Fatalf("clone mutation reached the original (-want +got):\n%s", diff)
	}
}

func TestRefStrings(t *testing.T) {
	id := uuid.MustParse("93ac2e71-58cd-4c1f-9e2b-0d6a54c9d001")
	r := SignalRef(id)
	if got := r.String(); got != "signal/93ac2e71-58cd-4c1f-9e2b-0d6a54c9d001" {
		t.Fatalf("String() = %q", got)
	}
	if got := r.Short(); got != "signal/93ac2e71" {
		t.Fatalf("Short() = %q", got)
	}
	if got := ShortID(id); got != "93ac2e71" {
		t.Fatalf("ShortID() = %q", got)
	}
}
