package autoresponse

import "fmt"

const (
	ComplaintEscalation = "I understand you have a concern about your stay. I'm escalating this to our customer service team who will be able to assist you better. Someone will be in touch with you shortly."
	PaymentEscalation   = "I'm transferring you to our billing department who can help with payment-related questions. They'll be with you in a few minutes."
	TechnicalEscalation = "I'm connecting you with our technical support team who can help resolve this issue. They'll be available shortly."
	BookingEscalation   = "I'm transferring you to our reservations team who can assist with booking-related questions. They'll be with you shortly."
	// DefaultEscalation is also the floor text for every failure path.
	DefaultEscalation = "I'm connecting you with a human agent who will be able to assist you better. They'll be chatting with you in a few minutes."
)

const (
	NotFoundMessage   = "I couldn't find a property matching that information. Could you please provide the property number or be more specific about the location?"
	AskDetailsMessage = "I'd be happy to help you with property information! First, could you please tell me your name and then your property number or location?"
	GreetMessage      = "Hello! I'm here to help you with your stay. Could you please tell me your name first, and then I can assist you with property information, access details, and any other questions you may have."

	VerificationPrompt = `Hello! I'm here to help you with your stay. To provide you with the best assistance, I need to verify your identity.

Please provide one of the following:
• Your phone number
• Your full name
• Your GIN code (from your booking confirmation)
• Your email address

Once I verify your information, I'll be able to help you with property details, access information, and any other questions you may have.`
)

// Verdict reasons.
const (
	ReasonHumanRequired       = "Question requires human intervention (complaints, payments, technical issues, etc.)"
	ReasonPropertyAvailable   = "Question is property-related and relevant information is available"
	ReasonPropertyUnavailable = "Question is property-related but specific information is not available"
	ReasonGeneralCapable      = "General question within AI capabilities"
	ReasonUnrecognized        = "Question type not recognized or outside AI capabilities"
)

// AskForPropertyMessage greets a guest by name and asks where they stay.
func AskForPropertyMessage(name string) string {
	return fmt.Sprintf("Hello %s! 👋 I can help you with your stay. Please tell me your property number or the location/area where you're staying so I can provide you with the right information.", name)
}
