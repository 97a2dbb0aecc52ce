package lifecycle

import "fmt"

// RequiredVerifications is the number of distinct verifiers a tithe or
// offering collection needs before it can be verified or finalized.
const RequiredVerifications = 2

// VerificationProgress tracks distinct-verifier attestations on one collection.
type VerificationProgress struct {
	Count    int `json:"count"`
	Required int `json:"required"`
}

// NewVerificationProgress counts distinct verifier ids.
func NewVerificationProgress(verifierIDs []int) VerificationProgress {
	distinct := make(map[int]struct{}, len(verifierIDs))
	for _, id := range verifierIDs {
		distinct[id] = struct{}{}
	}
	return VerificationProgress{Count: len(distinct), Required: RequiredVerifications}
}

// Reached reports whether the threshold is met. Extra verifications past the
// threshold are kept; they only saturate the display.
func (p VerificationProgress) Reached() bool {
	return p.Count >= p.Required
}

// Display renders "count/required" with count clamped to required.
func (p VerificationProgress) Display() string {
	shown := p.Count
	if shown > p.Required {
		shown = p.Required
	}
	return fmt.Sprintf("%d/%d", shown, p.Required)
}
