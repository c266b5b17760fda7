package htc

import "github.com/google/uuid"

// UnknownActor is the placeholder attribution for vectors whose actor
// has not been identified.
const UnknownActor = "unknown"

// ThreatVector is one axis of the threat: an actor operating in a
// domain with an assessed capability and intent. Attribution may be
// unknown; capability and intent may not.
type ThreatVector struct {
	ID         uuid.UUID
	Actor      string
	Capability CapabilityLevel
	Intent     IntentLevel
	Domain     ThreatDomain
}

func (v ThreatVector) validate(field string) error {
	if v.ID == uuid.Nil {
		return invalidf(field+".id", "missing id")
	}
	if v.Actor == "" {
		return invalidf(field+".actor", "actor is required, use %q when unattributed", UnknownActor)
	}
	if !v.Capability.Valid() {
		return invalidf(field+".capability", "unknown capability level %q", v.Capability)
	}
	if !v.Intent.Valid() {
		return invalidf(field+".intent", "unknown intent level %q", v.Intent)
	}
	if !v.Domain.Valid() {
		return invalidf(field+".domain", "unknown threat domain %q", v.Domain)
	}
	return nil
}
