package site

import (
	"regexp"
	"strings"
)

type stepRule struct {
	re   *regexp.Regexp
	href string
}

// stepRules are tried in order; the first match links the whole step.
var stepRules = []stepRule{
	{regexp.MustCompile(`\bbeach(es)?\b`), "/things/beaches"},
	{regexp.MustCompile(`\brainforest(\s*walk)?\b`), "/activity/rainforest"},
	{regexp.MustCompile(`\bvolcano(\s*viewpoint)?\b`), "/activity/volcano"},
	{regexp.MustCompile(`\bmerriton(\s*landing)?\b`), "/things/merriton"},
	{regexp.MustCompile(`\bmuseum\b`), "/activity/museum"},
	{regexp.MustCompile(`\bgalleries\b`), "/activity/galleries"},
	{regexp.MustCompile(`\bmovie(s)?(\s*theater)?\b`), "/activity/movies"},
	{regexp.MustCompile(`\bsnorkel(ing)?\b`), "/activity/snorkeling"},
	{regexp.MustCompile(`\bfishing|chartered\s*fishing\b`), "/activity/fishing"},
	{regexp.MustCompile(`\bzip(-|\s*)lining|zip\b`), "/activity/zip"},
	{regexp.MustCompile(`\bhelicopter(\s*rides?)?\b`), "/activity/heli"},
	{regexp.MustCompile(`\bbowling(\s*&\s*arcade)?|arcade\b`), "/activity/bowling"},
	{regexp.MustCompile(`\blocal\s*fish\s*&\s*rice\b`), "/dining"},
	{regexp.MustCompile(`\blocal\s*food\b`), "/dining"},
	{regexp.MustCompile(`\b(food|dining|eat|restaurants?)\b`), "/dining"},
}

// StepLink returns the page an itinerary step mentions, or "" when the step
// should render as plain text.
func StepLink(step string) string {
	lower := strings.ToLower(step)
	for _, r := range stepRules {
		if r.re.MatchString(lower) {
			return r.href
		}
	}
	return ""
}
