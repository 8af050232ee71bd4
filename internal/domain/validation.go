package domain

import "fmt"

// ValidationFileName is the persisted record inside the main folder.
const ValidationFileName = "validation.json"

// PVEAState is the three-way approval state of the PVEA document.
type PVEAState string

const (
	PVEAValide       PVEAState = "validé"
	PVEANonNecessair PVEAState = "non_necessaire"
	PVEANonValide    PVEAState = "non_valide"
)

// ValidationKey names one of the three approval flags.
type ValidationKey string

const (
	KeyFP   ValidationKey = "FP"
	KeyPVEE ValidationKey = "PVEE"
	KeyPVEA ValidationKey = "PVEA"
)

// ValidationRecord is the three-flag approval state gating finalize.
// Exactly this shape is persisted as validation.json.
type ValidationRecord struct {
	FP   bool      `json:"FP"`
	PVEE bool      `json:"PVEE"`
	PVEA PVEAState `json:"PVEA"`
}

// DefaultValidationRecord is the record synthesized when validation.json
// is absent from the main folder.
func DefaultValidationRecord() ValidationRecord {
	return ValidationRecord{
		FP:   false,
		PVEE: false,
		PVEA: PVEANonValide,
	}
}

// CanFinalize reports whether the record allows the finalize operation:
// both boolean flags set and PVEA either validated or not needed.
func (r ValidationRecord) CanFinalize() bool {
	return r.FP && r.PVEE && (r.PVEA == PVEAValide || r.PVEA == PVEANonNecessair)
}

// ParsePVEAState validates a raw PVEA value.
func ParsePVEAState(raw string) (PVEAState, error) {
	switch PVEAState(raw) {
	case PVEAValide, PVEANonNecessair, PVEANonValide:
		return PVEAState(raw), nil
	}
	return "", fmt.Errorf("invalid PVEA state %q", raw)
}
