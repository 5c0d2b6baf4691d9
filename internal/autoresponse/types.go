package autoresponse

import (
	"github.com/omriShneor/project_concierge/internal/catalogue"
	"github.com/omriShneor/project_concierge/internal/classifier"
)

// Confidence grades an answerability verdict.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ResponseType selects the system prompt used for a generated answer.
type ResponseType string

const (
	ResponseLocation  ResponseType = "location"
	ResponseAccess    ResponseType = "access"
	ResponseAmenities ResponseType = "amenities"
	ResponseGeneral   ResponseType = "general"
)

// Kind tags what the engine decided to do with a question.
type Kind string

const (
	// KindAskForProperty: the guest introduced themselves, ask which property.
	KindAskForProperty Kind = "ask_for_property"
	// KindAnswer: a property was resolved, generate an answer from it.
	KindAnswer Kind = "answer"
	// KindNotFound: a property reference was given but matched nothing.
	KindNotFound Kind = "not_found"
	// KindAskForDetails: a stay question without any property reference.
	KindAskForDetails Kind = "ask_for_details"
	KindEscalate      Kind = "escalate"
	KindGreet         Kind = "greet"
	// KindVerify: an access answer was withheld until the guest is verified.
	KindVerify Kind = "verify"
)

// AutoResponseResult is the answerability verdict for a question.
type AutoResponseResult struct {
	CanAnswer            bool       `json:"canAnswer"`
	Response             string     `json:"response,omitempty"`
	EscalationMessage    string     `json:"escalationMessage,omitempty"`
	Confidence           Confidence `json:"confidence"`
	Reason               string     `json:"reason"`
	RequiresVerification bool       `json:"requiresVerification,omitempty"`
	VerificationPrompt   string     `json:"verificationPrompt,omitempty"`
}

// Reply is the text produced for the guest. When Success is false Message
// still holds a safe hand-off text and Error holds the diagnostic.
type Reply struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Request is a single decision input. PropertyRef, Verified and
// GuestPropertyID come from the caller's own conversation state; the engine
// keeps none.
type Request struct {
	Question    string
	Properties  []catalogue.Property
	PropertyRef string
	Verified    bool
	// GuestPropertyID is the verified guest's booked property. When nil a
	// verified sender is trusted for the property PropertyRef resolves to.
	GuestPropertyID *int64
}

// Decision is the tagged outcome of one decision pass.
type Decision struct {
	Kind         Kind
	Analysis     classifier.Analysis
	Verdict      AutoResponseResult
	GuestName    string
	Reference    string
	Property     *catalogue.Property
	ResponseType ResponseType
	// Withheld is set when the sender may not see Property's access
	// credentials, which are then left out of the prompt.
	Withheld bool
	// Escalation is the hand-off text picked for this question's categories.
	Escalation string
}
