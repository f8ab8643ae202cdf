package services

import (
	"sort"
	"strings"

	"github.com/veridia-labs/tirads-cli/internal/core/domain"
)

// Section markers the generation is asked to emit, first entry per list is
// the canonical heading, the rest are formatting drifts observed in practice.
// Matching takes the FIRST marker in list order that occurs anywhere in the
// text; extraction is then purely positional.
var (
	trMarkers = []string{
		"### TR Kılavuzuna Göre:",
		"### TR Kılavuzu:",
		"**TR Kılavuzuna Göre:**",
	}
	usMarkers = []string{
		"### US (ACR TI-RADS) Kılavuzuna Göre:",
		"### US (ACR) Kılavuzu:",
		"### ACR TI-RADS",
		"**US (ACR TI-RADS) Kılavuzuna Göre:**",
	}
	euMarkers = []string{
		"### EU-TIRADS Kılavuzuna Göre:",
		"### EU-TIRADS:",
		"### EU Kılavuzu:",
		"**EU-TIRADS Kılavuzuna Göre:**",
	}
)

// headingScanBound is how far the end-of-section scan walks backwards from
// the next section's content start looking for that section's own heading.
const headingScanBound = 100

// sectionStart is a matched marker: the partition and the offset immediately
// after the marker text.
type sectionStart struct {
	guideline domain.Guideline
	start     int
}

// ParseGuidelineSections splits one generated explanation into the three
// guideline sections. It never fails: if no marker matches, the full
// unmodified text is assigned to all three sections, and any individual
// section left empty by positional extraction also falls back to the full
// text. The output sections are therefore non-empty whenever fullText is.
func ParseGuidelineSections(fullText string) domain.Explanation {
	starts := make([]sectionStart, 0, 3)
	if s := findMarker(fullText, trMarkers); s >= 0 {
		starts = append(starts, sectionStart{domain.GuidelineTR, s})
	}
	if s := findMarker(fullText, usMarkers); s >= 0 {
		starts = append(starts, sectionStart{domain.GuidelineUS, s})
	}
	if s := findMarker(fullText, euMarkers); s >= 0 {
		starts = append(starts, sectionStart{domain.GuidelineEU, s})
	}

	// Extraction is ordered by actual text position, not declared order;
	// the generation is free to emit the sections in any sequence.
	sort.Slice(starts, func(i, j int) bool {
		return starts[i].start < starts[j].start
	})

	sections := map[domain.Guideline]string{}
	for i, s := range starts {
		end := len(fullText)
		if i+1 < len(starts) {
			end = sectionEnd(fullText, s.start, starts[i+1].start)
		}
		sections[s.guideline] = strings.TrimSpace(fullText[s.start:end])
	}

	result := domain.Explanation{
		TR: sections[domain.GuidelineTR],
		US: sections[domain.GuidelineUS],
		EU: sections[domain.GuidelineEU],
	}

	// Guarantee displayable content per guideline even when the generation
	// ignored the requested format.
	if result.TR == "" {
		result.TR = fullText
	}
	if result.US == "" {
		result.US = fullText
	}
	if result.EU == "" {
		result.EU = fullText
	}

	return result
}

// findMarker returns the offset immediately after the first marker (in list
// order) present in text, or -1 if none matches.
func findMarker(text string, markers []string) int {
	for _, marker := range markers {
		if idx := strings.Index(text, marker); idx != -1 {
			return idx + len(marker)
		}
	}
	return -1
}

// sectionEnd finds where the section starting at start ends, given the next
// section's content start. It walks backwards from nextStart looking for the
// beginning of the next section's heading ("###" or "**") so the heading text
// is excluded from this section. The scan is bounded and never crosses before
// start; if no heading prefix is found, nextStart itself is the end.
func sectionEnd(text string, start, nextStart int) int {
	low := nextStart - headingScanBound
	if low < start {
		low = start
	}
	for j := nextStart - 1; j > low; j-- {
		if strings.HasPrefix(text[j:], "###") || strings.HasPrefix(text[j:], "**") {
			return j
		}
	}
	return nextStart
}
