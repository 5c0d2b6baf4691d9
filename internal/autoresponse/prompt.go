package autoresponse

import (
	"fmt"
	"strings"

	"github.com/omriShneor/project_concierge/internal/classifier"
)

const basePrompt = `You are a helpful AI assistant for a property management company. You help human agents write professional, friendly, and informative responses to guests about property information.

Key guidelines:
- Be professional yet warm and welcoming
- Use clear, concise language
- Include relevant emojis when appropriate
- Be specific about property details
- Always prioritize guest safety and convenience
- If information is missing, acknowledge it politely
- Keep responses under 200 words unless more detail is specifically requested`

var promptFocus = map[ResponseType]string{
	ResponseLocation:  "Focus on providing clear location and navigation information. Include landmarks, directions, and any helpful tips for finding the property.",
	ResponseAccess:    "Focus on access information including check-in procedures, lockbox codes, key locations, and any access instructions. Be very clear about security procedures.",
	ResponseAmenities: "Focus on property amenities, appliances, and facilities. Highlight what's available and how to use them.",
	ResponseGeneral:   "Provide a general overview of the property and answer the specific question asked.",
}

// SelectResponseType picks the prompt flavour: location, then access, then
// amenities, otherwise general.
func SelectResponseType(a classifier.Analysis) ResponseType {
	switch {
	case a.IsLocationRelated:
		return ResponseLocation
	case a.IsAccessRelated:
		return ResponseAccess
	case a.IsAmenitiesRelated:
		return ResponseAmenities
	default:
		return ResponseGeneral
	}
}

// SystemPrompt returns the instructions for a response type.
func SystemPrompt(rt ResponseType) string {
	focus, ok := promptFocus[rt]
	if !ok {
		return basePrompt
	}
	return basePrompt + "\n\n" + focus
}

// UserPrompt renders the guest query together with the property context.
func UserPrompt(pc PropertyContext, question string, rt ResponseType) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Guest Query: \"%s\"\n\n", question)
	sb.WriteString("Property Information:\n")
	for _, f := range pc.Fields() {
		fmt.Fprintf(&sb, "- %s: %s\n", f.Name, f.Value)
	}
	fmt.Fprintf(&sb, "\nPlease generate a helpful response to the guest's query. Focus on the %s aspect of the property information. Make sure the response is professional, informative, and addresses their specific question.", rt)
	return sb.String()
}
