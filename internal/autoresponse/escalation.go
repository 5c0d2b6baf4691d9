package autoresponse

import "github.com/omriShneor/project_concierge/internal/classifier"

type escalationRule struct {
	flag    classifier.Flag
	message string
}

// escalationRules is checked top to bottom; the first set flag picks the text.
var escalationRules = []escalationRule{
	{flag: classifier.FlagComplaint, message: ComplaintEscalation},
	{flag: classifier.FlagPayment, message: PaymentEscalation},
	{flag: classifier.FlagTechnical, message: TechnicalEscalation},
	{flag: classifier.FlagBooking, message: BookingEscalation},
}

// EscalationMessage picks the hand-off text for an analysis.
func EscalationMessage(a classifier.Analysis) string {
	for _, rule := range escalationRules {
		if a.Has(rule.flag) {
			return rule.message
		}
	}
	return DefaultEscalation
}
