package autoresponse

import (
	"strconv"
	"strings"

	"github.com/omriShneor/project_concierge/internal/catalogue"
)

// FindProperty resolves a reference against the catalogue. Numbered
// references match the id exactly. Anything else first looks for a
// district, zone or address containing the reference, then for one the
// reference contains. The first property in catalogue order wins.
func FindProperty(ref string, props []catalogue.Property) *catalogue.Property {
	if ref == "" || len(props) == 0 {
		return nil
	}

	if id, ok := strings.CutPrefix(ref, propertyRefPrefix); ok {
		for i := range props {
			if strconv.FormatInt(props[i].ID, 10) == id {
				return &props[i]
			}
		}
		return nil
	}

	needle := strings.ToLower(ref)

	for i := range props {
		for _, field := range locality(&props[i]) {
			if strings.Contains(field, needle) {
				return &props[i]
			}
		}
	}

	for i := range props {
		for _, field := range locality(&props[i]) {
			if field != "" && strings.Contains(needle, field) {
				return &props[i]
			}
		}
	}

	return nil
}

func locality(p *catalogue.Property) []string {
	return []string{
		strings.ToLower(p.District),
		strings.ToLower(p.Zone),
		strings.ToLower(p.Address),
	}
}

// HasRelevantInfo reports whether any populated field of any property occurs
// in the question, ignoring case.
func HasRelevantInfo(question string, props []catalogue.Property) bool {
	lower := strings.ToLower(question)
	for _, p := range props {
		for _, f := range p.Fields() {
			if strings.Contains(lower, strings.ToLower(f.Value)) {
				return true
			}
		}
	}
	return false
}
