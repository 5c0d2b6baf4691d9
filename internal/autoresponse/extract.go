package autoresponse

import (
	"regexp"
	"strings"
)

// namePatterns are tried in order. The captured run of letters and spaces is
// greedy, so "i'm busy" yields "busy".
var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)my name is ([a-zA-Z\s]+)`),
	regexp.MustCompile(`(?i)i am ([a-zA-Z\s]+)`),
	regexp.MustCompile(`(?i)i'm ([a-zA-Z\s]+)`),
	regexp.MustCompile(`(?i)this is ([a-zA-Z\s]+)`),
	regexp.MustCompile(`(?i)name: ([a-zA-Z\s]+)`),
	regexp.MustCompile(`(?i)call me ([a-zA-Z\s]+)`),
}

var propertyIDPattern = regexp.MustCompile(`(?i)property\s+(?:id\s+)?(?:number\s+)?(\d+)`)

// Districts is the gazetteer of neighbourhoods guests name directly.
var Districts = []string{"maadi", "zamalek", "downtown", "heliopolis", "nasr city", "6th october", "new cairo"}

var markerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)address\s*:\s*([^.!?]+)`),
	regexp.MustCompile(`(?i)location\s*:\s*([^.!?]+)`),
	regexp.MustCompile(`(?i)area\s*:\s*([^.!?]+)`),
}

const propertyRefPrefix = "property_"

// ExtractName returns the name a guest declared, or "".
func ExtractName(question string) string {
	for _, pattern := range namePatterns {
		if m := pattern.FindStringSubmatch(question); m != nil {
			if name := strings.TrimSpace(m[1]); name != "" {
				return name
			}
		}
	}
	return ""
}

// ExtractPropertyRef finds a property reference in a question. It returns
// "property_<n>" for numbered references, the lower-case district for
// gazetteer hits, or the trimmed text after an address/location/area marker.
func ExtractPropertyRef(question string) string {
	if m := propertyIDPattern.FindStringSubmatch(question); m != nil {
		return propertyRefPrefix + m[1]
	}

	lower := strings.ToLower(question)
	for _, district := range Districts {
		if strings.Contains(lower, district) {
			return district
		}
	}

	for _, pattern := range markerPatterns {
		if m := pattern.FindStringSubmatch(question); m != nil {
			if ref := strings.TrimSpace(m[1]); ref != "" {
				return ref
			}
		}
	}
	return ""
}
