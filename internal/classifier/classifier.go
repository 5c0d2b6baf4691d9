// Package classifier tags guest questions with the semantic categories they
// touch using plain keyword tables.
package classifier

import "strings"

// Analysis holds one boolean per category plus the escalation verdict.
type Analysis struct {
	IsPropertyRelated         bool `json:"isPropertyRelated"`
	IsAccessRelated           bool `json:"isAccessRelated"`
	IsLocationRelated         bool `json:"isLocationRelated"`
	IsAmenitiesRelated        bool `json:"isAmenitiesRelated"`
	IsGeneralInfo             bool `json:"isGeneralInfo"`
	IsTechnicalIssue          bool `json:"isTechnicalIssue"`
	IsBookingRelated          bool `json:"isBookingRelated"`
	IsPaymentRelated          bool `json:"isPaymentRelated"`
	IsComplaintRelated        bool `json:"isComplaintRelated"`
	RequiresHumanIntervention bool `json:"requiresHumanIntervention"`
}

// Has reports whether the given category flag is set.
func (a Analysis) Has(flag Flag) bool {
	switch flag {
	case FlagProperty:
		return a.IsPropertyRelated
	case FlagAccess:
		return a.IsAccessRelated
	case FlagLocation:
		return a.IsLocationRelated
	case FlagAmenities:
		return a.IsAmenitiesRelated
	case FlagGeneral:
		return a.IsGeneralInfo
	case FlagTechnical:
		return a.IsTechnicalIssue
	case FlagBooking:
		return a.IsBookingRelated
	case FlagPayment:
		return a.IsPaymentRelated
	case FlagComplaint:
		return a.IsComplaintRelated
	}
	return false
}

func (a *Analysis) set(flag Flag) {
	switch flag {
	case FlagProperty:
		a.IsPropertyRelated = true
	case FlagAccess:
		a.IsAccessRelated = true
	case FlagLocation:
		a.IsLocationRelated = true
	case FlagAmenities:
		a.IsAmenitiesRelated = true
	case FlagGeneral:
		a.IsGeneralInfo = true
	case FlagTechnical:
		a.IsTechnicalIssue = true
	case FlagBooking:
		a.IsBookingRelated = true
	case FlagPayment:
		a.IsPaymentRelated = true
	case FlagComplaint:
		a.IsComplaintRelated = true
	}
}

// Topical reports whether the question is about a stay: the property itself,
// getting in, finding it, or what it offers.
func (a Analysis) Topical() bool {
	return a.IsPropertyRelated || a.IsAccessRelated || a.IsLocationRelated || a.IsAmenitiesRelated
}

// Analyze classifies a question. Matching is case-insensitive substring
// matching, so the function is total and deterministic.
func Analyze(question string) Analysis {
	text := strings.ToLower(question)

	var a Analysis
	for _, rule := range Rules {
		if ContainsAny(text, rule.Keywords) {
			a.set(rule.Flag)
		}
	}
	a.RequiresHumanIntervention = ContainsAny(text, EscalationKeywords)
	return a
}

// IsCapable reports whether the question mentions anything the assistant can
// answer on its own.
func IsCapable(question string) bool {
	return ContainsAny(strings.ToLower(question), CapableKeywords)
}

// ContainsAny reports whether text contains any of the values. text is expected
// to be lower-cased already.
func ContainsAny(text string, values []string) bool {
	for _, value := range values {
		if strings.Contains(text, value) {
			return true
		}
	}
	return false
}
