package htc

import (
	"testing"

	"github.com/google/uuid"
)

func TestWithSignalProducesNextVersion(t *testing.T) {
	v1 := buildFixture(t)
	rival := v1.Hypotheses[1]

	v2, err := v1.WithSignal(Signal{
		Description: "Scanner infrastructure reused across unrelated targets",
		Reliability: ReliabilityCorroborated,
		Polarity:    PolaritySupports,
		Hypothesis:  rival.ID,
	})
	if err != nil {
		t.Fatalf("WithSignal: %v", err)
	}
	if v2.Version != v1.Version+1 {
		t.Fatalf("version = %d, want %d", v2.Version, v1.Version+1)
	}
	if len(v2.Signals) != len(v1.Signals)+1 {
		t.Fatalf("signals = %d, want %d", len(v2.Signals), len(v1.Signals)+1)
	}

	added := v2.Signals[len(v2.Signals)-1]
	if added.ID == uuid.Nil || added.ObservedAt.IsZero() {
		t.Fatalf("signal defaults not filled: %+v", added)
	}
	h, err := v2.HypothesisByID(rival.ID)
	if err != nil {
		t.Fatalf("HypothesisByID: %v", err)
	}
	if got := len(h.Supporting); got != len(rival.Supporting)+1 {
		t.Fatalf("supporting = %d, want %d", got, len(rival.Supporting)+1)
	}

	// The receiver is a frozen version.
	if v1.Version != 1 || len(v1.Signals) != 3 {
		t.Fatalf("receiver mutated: version %d, %d signals", v1.Version, len(v1.Signals))
	}
}

func TestWithSignalUnknownHypothesis(t *testing.T) {
	v1 := buildFixture(t)
	_, err := v1.WithSignal(Signal{
		Description: "Orphan report",
		Reliability: ReliabilityUnconfirmed,
		Polarity:    PolaritySupports,
		Hypothesis:  uuid.New(),
	})
	if errKind(err) != "referential" {
		t.Fatalf("got %v, want ReferentialError", err)
	}
}

func TestWithSignalBadFields(t *testing.T) {
	v1 := buildFixture(t)
	_, err := v1.WithSignal(Signal{
		Description: "",
		Reliability: ReliabilityUnconfirmed,
		Polarity:    PolaritySupports,
		Hypothesis:  v1.Hypotheses[0].ID,
	})
	if errKind(err) != "validation" {
		t.Fatalf("got %v, want ValidationError", err)
	}
}

func TestWithHypothesis(t *testing.T) {
	v1 := buildFixture(t)
	v2, err := v1.WithHypothesis(Hypothesis{Statement: "Deliberate false-flag staging", Confidence: 0})
	if err != nil {
		t.Fatalf("WithHypothesis: %v", err)
	}
	if len(v2.Hypotheses) != 3 || v2.Version != 2 {
		t.Fatalf("got %d hypotheses at version %d", len(v2.Hypotheses), v2.Version)
	}

	if _, err := v1.WithHypothesis(Hypothesis{Statement: "Coup attempt", Primary: true}); errKind(err) != "domain" {
		t.Fatalf("second primary: got %v, want DomainError", err)
	}
	if _, err := v1.WithHypothesis(Hypothesis{Statement: "X", Supporting: []uuid.UUID{uuid.New()}}); errKind(err) != "validation" {
		t.Fatalf("pre-filled evidence: got %v, want ValidationError", err)
	}
}

func TestWithVectorKeepsOrder(t *testing.T) {
	v1 := buildFixture(t)
	v2, err := v1.WithVector(ThreatVector{
		Actor:      "Shell company network",
		Capability: CapabilityLimited,
		Intent:     IntentSuspected,
		Domain:     DomainEconomic,
	})
	if err != nil {
		t.Fatalf("WithVector: %v", err)
	}
	if got := v2.Vectors[len(v2.Vectors)-1].Domain; got != DomainEconomic {
		t.Fatalf("new vector not last: tail domain %s", got)
	}
	for i := range v1.Vectors {
		if v2.Vectors[i].ID != v1.Vectors[i].ID {
			t.Fatalf("vector order changed at %d", i)
		}
	}
}

func TestWithConfidence(t *testing.T) {
	v1 := buildFixture(t)
	target := v1.Hypotheses[1].ID

	v2, err := v1.WithConfidence(target, 0.45)
	if err != nil {
		t.Fatalf("WithConfidence: %v", err)
	}
	h, _ := v2.HypothesisByID(target)
	if h.Confidence != 0.45 {
		t.Fatalf("confidence = %v", h.Confidence)
	}
	if v1.Hypotheses[1].Confidence != 0.2 {
		t.Fatalf("receiver confidence mutated to %v", v1.Hypotheses[1].Confidence)
	}

	if _, err := v1.WithConfidence(target, 1.3); errKind(err) != "validation" {
		t.Fatalf("out of range: got %v, want ValidationError", err)
	}
	if _, err := v1.WithConfidence(uuid.New(), 0.5); errKind(err) != "referential" {
		t.Fatalf("unknown hypothesis: got %v, want ReferentialError", err)
	}
}

func TestVersionsAreMonotonic(t *testing.T) {
	a := buildFixture(t)
	a, err := a.WithHypothesis(Hypothesis{Statement: "Insider assistance"})
	if err != nil {
		t.Fatalf("step 2: %v", err)
	}
	a, err = a.WithConfidence(a.Hypotheses[0].ID, 0.8)
	if err != nil {
		t.Fatalf("step 3: %v", err)
	}
	a, err = a.WithVector(ThreatVector{Actor: UnknownActor, Capability: CapabilityNone, Intent: IntentNone, Domain: DomainSocial})
	if err != nil {
		t.Fatalf("step 4: %v", err)
	}
	if a.Version != 4 {
		t.Fatalf("version = %d, want 4", a.Version)
	}
}
