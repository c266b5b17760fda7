// Package scenario generates canned training assessments. The content
// is fictional but shaped like real casework: competing hypotheses,
// mixed-reliability sourcing, and at least one signal that cuts against
// the lead theory, so a fresh analyst sees what a defensible chain
// looks like before building their own.
package scenario

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/Odokodan153/Chimera-Nexus/internal/htc"
)

// BlueSky builds the bank-destabilization training exercise. An empty
// name gets a generated "Exercise Blue Sky" label with a short suffix
// so repeated runs stay distinguishable in listings.
func BlueSky(name string) (*htc.Assessment, error) {
	if name == "" {
		name = fmt.Sprintf("Exercise Blue Sky %s", uuid.New().String()[:4])
	}

	return htc.Build(htc.RawAssessment{
		Name:    name,
		Urgency: 0.75,
		Vectors: []htc.RawVector{
			{Actor: "unknown", Capability: "moderate", Intent: "suspected", Domain: "information"},
			{Actor: "unknown", Capability: "limited", Intent: "suspected", Domain: "cyber"},
			{Actor: "unknown", Capability: "moderate", Intent: "none", Domain: "economic"},
		},
		Hypotheses: []htc.RawHypothesis{
			{
				Statement:  "Coordinated destabilization campaign driving a run on the bank",
				Confidence: 0.55,
				Primary:    true,
			},
			{
				Statement:  "Organic market panic amplified by a coincidental outage",
				Confidence: 0.2,
			},
		},
		Signals: []htc.RawSignal{
			{
				Description: "Leaked false documents about bank solvency spreading on social media",
				Reliability: "single-source",
				Polarity:    "supports",
				Hypothesis:  0,
			},
			{
				Description: "Login portal traffic spike consistent with a DDoS probe",
				Reliability: "corroborated",
				Polarity:    "supports",
				Hypothesis:  0,
			},
			{
				Description: "Bank stock drops 4% in pre-market trading on panic selling",
				Reliability: "corroborated",
				Polarity:    "supports",
				Hypothesis:  0,
			},
			{
				Description: "No chatter on monitored influence networks ahead of the leak",
				Reliability: "unconfirmed",
				Polarity:    "contradicts",
				Hypothesis:  0,
			},
			{
				Description: "Regional banking index also down in pre-market",
				Reliability: "single-source",
				Polarity:    "supports",
				Hypothesis:  1,
			},
		},
	})
}
