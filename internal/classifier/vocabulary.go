package classifier

// Flag names one semantic category a question can touch.
type Flag string

const (
	FlagProperty  Flag = "property"
	FlagAccess    Flag = "access"
	FlagLocation  Flag = "location"
	FlagAmenities Flag = "amenities"
	FlagGeneral   Flag = "general"
	FlagTechnical Flag = "technical"
	FlagBooking   Flag = "booking"
	FlagPayment   Flag = "payment"
	FlagComplaint Flag = "complaint"
)

// Rule binds a flag to the keywords that raise it.
type Rule struct {
	Flag     Flag
	Keywords []string
}

// Rules is the category vocabulary, one rule per flag. Keywords are lower-case
// and may overlap across rules.
var Rules = []Rule{
	{Flag: FlagProperty, Keywords: []string{"property", "apartment", "house", "room", "bed", "bathroom"}},
	{Flag: FlagAccess, Keywords: []string{"access", "key", "lockbox", "code", "check-in", "enter", "door", "password"}},
	{Flag: FlagLocation, Keywords: []string{"location", "address", "where", "find", "directions", "map", "gps"}},
	{Flag: FlagAmenities, Keywords: []string{"amenities", "appliances", "wifi", "parking", "elevator", "kitchen"}},
	{Flag: FlagGeneral, Keywords: []string{"what", "how", "tell me", "information", "details"}},
	{Flag: FlagTechnical, Keywords: []string{"problem", "issue", "broken", "not working", "fix", "repair"}},
	{Flag: FlagBooking, Keywords: []string{"book", "booking", "reserve", "reservation", "payment"}},
	{Flag: FlagPayment, Keywords: []string{"payment", "pay", "money", "price", "cost", "fee", "refund"}},
	{Flag: FlagComplaint, Keywords: []string{"complaint", "unhappy", "disappointed", "bad", "terrible"}},
}

// EscalationKeywords force a human hand-off whenever any of them appears.
var EscalationKeywords = []string{
	// booking and payment
	"book", "booking", "reserve", "reservation", "payment", "pay", "money",
	"price", "cost", "fee", "refund", "cancel", "cancellation", "modify",
	"change", "extend", "early", "late",
	// technical and maintenance
	"problem", "issue", "broken", "not working", "damaged", "dirty", "clean",
	"maintenance",
	// complaints
	"complaint", "unhappy", "disappointed", "bad", "terrible", "awful",
	"horrible", "fix", "repair", "replace", "compensation",
	// special requests
	"special", "request", "arrangement", "exception", "favor", "help",
	"urgent", "emergency", "immediate", "asap", "now",
	// explicit hand-off
	"technical", "support", "help desk", "customer service", "representative",
	"speak to", "talk to", "human", "person", "agent",
	// policy and legal
	"policy", "terms", "conditions", "legal", "law", "rights", "contract",
	"insurance", "liability", "damage", "security deposit",
}

// CapableKeywords mark general questions the assistant can answer from
// catalogue data alone.
var CapableKeywords = []string{
	"property", "apartment", "house", "room", "bed", "bathroom", "size",
	"address", "location", "wifi", "internet", "password", "lockbox", "code",
	"key", "access", "check-in", "checkout", "amenities", "appliances",
	"kitchen", "laundry", "parking", "elevator", "security", "district", "zone",
	"neighborhood", "area", "nearby", "transportation", "metro", "bus",
	"electricity", "water", "gas", "meter", "utilities", "host", "owner",
	"how to find", "where is", "how do i get", "directions", "map", "gps",
	"what time", "when can", "check-in time", "checkout time",
	"what is included", "what amenities", "what appliances", "how to use",
	"instructions", "manual", "guide", "emergency", "contact", "phone",
	"number", "tell me about", "information about", "details about",
	"what about", "is there", "does it have", "can i", "is it possible",
}
