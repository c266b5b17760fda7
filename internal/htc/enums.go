package htc

// ThreatDomain is the arena a vector operates in. The set is closed;
// unknown domains are rejected at build time, never coerced.
type ThreatDomain string

const (
	DomainCyber       ThreatDomain = "cyber"
	DomainInformation ThreatDomain = "information"
	DomainEconomic    ThreatDomain = "economic"
	DomainSocial      ThreatDomain = "social"
)

// Valid reports whether d is one of the closed set of domains.
func (d ThreatDomain) Valid() bool {
	switch d {
	case DomainCyber, DomainInformation, DomainEconomic, DomainSocial:
		return true
	}
	return false
}

// ParseThreatDomain converts raw input into a ThreatDomain.
func ParseThreatDomain(s string) (ThreatDomain, error) {
	d := ThreatDomain(s)
	if !d.Valid() {
		return "", invalidf("domain", "unknown threat domain %q (cyber, information, economic, social)", s)
	}
	return d, nil
}

// CapabilityLevel grades what an actor can do, independent of whether
// they mean to do it.
type CapabilityLevel string

const (
	CapabilityNone     CapabilityLevel = "none"
	CapabilityLimited  CapabilityLevel = "limited"
	CapabilityModerate CapabilityLevel = "moderate"
	CapabilityAdvanced CapabilityLevel = "advanced"
)

func (c CapabilityLevel) Valid() bool {
	switch c {
	case CapabilityNone, CapabilityLimited, CapabilityModerate, CapabilityAdvanced:
		return true
	}
	return false
}

// ParseCapability converts raw input into a CapabilityLevel.
func ParseCapability(s string) (CapabilityLevel, error) {
	c := CapabilityLevel(s)
	if !c.Valid() {
		return "", invalidf("capability", "unknown capability level %q (none, limited, moderate, advanced)", s)
	}
	return c, nil
}

// IntentLevel grades how sure the analyst is that the actor wants to
// act. Confirmed intent carries an evidence obligation, see
// Assessment.Validate.
type IntentLevel string

const (
	IntentNone      IntentLevel = "none"
	IntentSuspected IntentLevel = "suspected"
	IntentConfirmed IntentLevel = "confirmed"
)

func (i IntentLevel) Valid() bool {
	switch i {
	case IntentNone, IntentSuspected, IntentConfirmed:
		return true
	}
	return false
}

// ParseIntent converts raw input into an IntentLevel.
func ParseIntent(s string) (IntentLevel, error) {
	i := IntentLevel(s)
	if !i.Valid() {
		return "", invalidf("intent", "unknown intent level %q (none, suspected, confirmed)", s)
	}
	return i, nil
}

// SourceReliability grades the provenance of a signal, not its content.
// A corroborated signal can still be wrong, and an unconfirmed one true.
type SourceReliability string

const (
	ReliabilityUnconfirmed  SourceReliability = "unconfirmed"
	ReliabilitySingleSource SourceReliability = "single-source"
	ReliabilityCorroborated SourceReliability = "corroborated"
)

func (r SourceReliability) Valid() bool {
	switch r {
	case ReliabilityUnconfirmed, ReliabilitySingleSource, ReliabilityCorroborated:
		return true
	}
	return false
}

// ParseReliability converts raw input into a SourceReliability.
func ParseReliability(s string) (SourceReliability, error) {
	r := SourceReliability(s)
	if !r.Valid() {
		return "", invalidf("reliability", "unknown source reliability %q (unconfirmed, single-source, corroborated)", s)
	}
	return r, nil
}

// Polarity states which way a signal cuts for its named hypothesis.
type Polarity string

const (
	PolaritySupports    Polarity = "supports"
	PolarityContradicts Polarity = "contradicts"
)

func (p Polarity) Valid() bool {
	return p == PolaritySupports || p == PolarityContradicts
}

// ParsePolarity converts raw input into a Polarity.
func ParsePolarity(s string) (Polarity, error) {
	p := Polarity(s)
	if !p.Valid() {
		return "", invalidf("polarity", "unknown polarity %q (supports, contradicts)", s)
	}
	return p, nil
}
