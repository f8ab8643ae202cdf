package domain

import "strings"

// Guideline identifies one of the three guideline partitions. Each partition
// is retrieved and reported independently so a well-represented source cannot
// starve a sparser one of citations.
type Guideline string

// The guideline partitions.
const (
	// GuidelineTR is the Turkish national guideline.
	GuidelineTR Guideline = "tr"

	// GuidelineUS is the ACR TI-RADS (American College of Radiology) guideline.
	GuidelineUS Guideline = "us"

	// GuidelineEU is the EU-TIRADS (European Thyroid Association) guideline.
	GuidelineEU Guideline = "eu"
)

// Guidelines lists all partitions in reporting order.
var Guidelines = []Guideline{GuidelineTR, GuidelineUS, GuidelineEU}

// docIDAliases maps each partition to the substrings recognised in document
// identifiers. Membership is naming-convention based and corpus specific;
// renaming the source PDFs silently reassigns chunks.
var docIDAliases = map[Guideline][]string{
	GuidelineTR: {"turkey"},
	GuidelineUS: {"acr", "america"},
	GuidelineEU: {"eu", "europe"},
}

// IsValid returns true if the guideline is recognised.
func (g Guideline) IsValid() bool {
	switch g {
	case GuidelineTR, GuidelineUS, GuidelineEU:
		return true
	default:
		return false
	}
}

// Matches reports whether a document identifier belongs to this partition.
// The comparison is a case-insensitive substring match against the alias set.
func (g Guideline) Matches(docID string) bool {
	id := strings.ToLower(docID)
	for _, alias := range docIDAliases[g] {
		if strings.Contains(id, alias) {
			return true
		}
	}
	return false
}

// String returns the string representation.
func (g Guideline) String() string {
	return string(g)
}

// Description returns the display heading for the partition. Output is
// Turkish to match the generated explanations.
func (g Guideline) Description() string {
	switch g {
	case GuidelineTR:
		return "TR Kılavuzu"
	case GuidelineUS:
		return "US (ACR TI-RADS) Kılavuzu"
	case GuidelineEU:
		return "EU-TIRADS Kılavuzu"
	default:
		return "Bilinmeyen kılavuz"
	}
}
