package domain

// Explanation holds the three guideline-scoped sections of one generated
// answer. Every field is non-empty whenever the generation produced any text.
type Explanation struct {
	TR string `json:"tr"`
	US string `json:"us"`
	EU string `json:"eu"`
}

// Section returns the section for a partition.
func (e Explanation) Section(g Guideline) string {
	switch g {
	case GuidelineTR:
		return e.TR
	case GuidelineUS:
		return e.US
	case GuidelineEU:
		return e.EU
	default:
		return ""
	}
}

// Citation is the evidence reference shape returned to the caller.
type Citation struct {
	DocID   string `json:"doc_id"`
	Page    int    `json:"page"`
	ChunkID string `json:"chunk_id"`
	Excerpt string `json:"excerpt"`
}

// GuidelineAnswer is the structured explanation produced for one evaluation
// request. Created once per request, never persisted.
type GuidelineAnswer struct {
	Explanation Explanation `json:"llm_explanation"`
	Sources     []Citation  `json:"sources"`
}

// DegradedAnswer builds a well-formed three-section answer carrying the same
// message in every section and no citations. This is the first-class degraded
// result used when generation is unavailable or failed: callers always receive
// displayable content per guideline.
func DegradedAnswer(msg string) *GuidelineAnswer {
	return &GuidelineAnswer{
		Explanation: Explanation{TR: msg, US: msg, EU: msg},
		Sources:     []Citation{},
	}
}

// Evaluation is the externally computed classification outcome handed to the
// explanation pipeline. Scoring tables and validation live upstream.
type Evaluation struct {
	// TRLevel is the ACR TI-RADS level (TR1..TR5).
	TRLevel string

	// EULevel is the EU-TIRADS level.
	EULevel string

	// Action is the recommended management action.
	Action Action

	// Characteristics are the ultrasound findings.
	Characteristics NoduleCharacteristics

	// Size carries the computed size metrics.
	Size SizeInfo

	// Clinical is optional clinical context.
	Clinical *ClinicalInfo
}
