package autoresponse

import (
	"testing"

	"github.com/omriShneor/project_concierge/internal/classifier"
	"github.com/stretchr/testify/assert"
)

func TestEscalationMessage(t *testing.T) {
	tests := []struct {
		name     string
		analysis classifier.Analysis
		want     string
	}{
		{"complaint beats payment", classifier.Analysis{IsComplaintRelated: true, IsPaymentRelated: true}, ComplaintEscalation},
		{"payment beats technical", classifier.Analysis{IsPaymentRelated: true, IsTechnicalIssue: true}, PaymentEscalation},
		{"technical beats booking", classifier.Analysis{IsTechnicalIssue: true, IsBookingRelated: true}, TechnicalEscalation},
		{"booking alone", classifier.Analysis{IsBookingRelated: true}, BookingEscalation},
		{"nothing specific", classifier.Analysis{RequiresHumanIntervention: true}, DefaultEscalation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscalationMessage(tt.analysis))
		})
	}
}

func TestEscalationMessage_FromQuestion(t *testing.T) {
	a := classifier.Analyze("This is terrible, I want my money back")
	assert.Equal(t, ComplaintEscalation, EscalationMessage(a))
}
