package analysis

import "strings"

// Section parsing matches the literal headers requested by the prompt. It is
// inherently fragile to provider format drift, which is why it stays behind
// this package boundary (callers only see a Report).

var sectionHeaders = []string{
	"SUMMARY",
	"STRENGTHS",
	"AREAS FOR IMPROVEMENT",
	"SUGGESTIONS",
}

const sectionMissing = "Analysis not available"

func parseReport(text string) *Report {
	return &Report{
		Summary:             extractSection(text, "SUMMARY"),
		Strengths:           extractBullets(text, "STRENGTHS"),
		AreasForImprovement: extractBullets(text, "AREAS FOR IMPROVEMENT"),
		Suggestions:         extractBullets(text, "SUGGESTIONS"),
		FullAnalysis:        text,
	}
}

// extractSection returns the raw text between a section header and the next
// known header (or end of text).
func extractSection(text, name string) string {
	lower := strings.ToLower(text)
	start := strings.Index(lower, strings.ToLower(name))
	if start == -1 {
		return sectionMissing
	}
	body := text[start+len(name):]
	body = strings.TrimLeft(body, ":* \t")

	end := len(body)
	bodyLower := strings.ToLower(body)
	for _, header := range sectionHeaders {
		if strings.EqualFold(header, name) {
			continue
		}
		if idx := strings.Index(bodyLower, strings.ToLower(header)); idx != -1 && idx < end {
			end = idx
		}
	}
	section := body[:end]

	// Strip a trailing item number left over from the next section's "2." style
	// marker, then surrounding whitespace.
	section = strings.TrimRight(section, "0123456789. \n\t*")
	section = strings.TrimSpace(section)
	if section == "" {
		return sectionMissing
	}
	return section
}

// extractBullets splits a section into items on numbered or bulleted line
// markers. A section with no markers becomes a single item.
func extractBullets(text, name string) []string {
	section := extractSection(text, name)
	if section == sectionMissing {
		return nil
	}

	var items []string
	var current strings.Builder
	flush := func() {
		item := strings.TrimSpace(current.String())
		current.Reset()
		if item != "" {
			items = append(items, item)
		}
	}

	sawMarker := false
	for _, line := range strings.Split(section, "\n") {
		trimmed := strings.TrimSpace(line)
		if rest, ok := stripBulletMarker(trimmed); ok {
			if !sawMarker {
				// Discard any preamble before the first marker.
				current.Reset()
			}
			sawMarker = true
			flush()
			current.WriteString(rest)
			continue
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(trimmed)
	}
	flush()

	if !sawMarker {
		return []string{section}
	}
	return items
}

func stripBulletMarker(line string) (string, bool) {
	for _, marker := range []string{"-", "*", "•"} {
		if strings.HasPrefix(line, marker) {
			return strings.TrimSpace(line[len(marker):]), true
		}
	}
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i > 0 && i < len(line) && line[i] == '.' {
		return strings.TrimSpace(line[i+1:]), true
	}
	return "", false
}
