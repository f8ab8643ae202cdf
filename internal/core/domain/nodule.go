package domain

// The nodule characteristic enumerations below are closed sets taken from the
// ACR TI-RADS lexicon. Classification itself (point tables, thresholds) happens
// upstream; the engine only receives the resulting label and renders these
// values into the retrieval query and the chat prompt.

// Composition describes the internal composition of a nodule.
type Composition string

// Composition values.
const (
	CompositionCystic           Composition = "cystic"
	CompositionSpongiform       Composition = "spongiform"
	CompositionMixedCysticSolid Composition = "mixed_cystic_solid"
	CompositionSolid            Composition = "solid"
	CompositionAlmostSolid      Composition = "almost_solid"
)

// IsValid returns true if the composition is recognised.
func (c Composition) IsValid() bool {
	switch c {
	case CompositionCystic, CompositionSpongiform, CompositionMixedCysticSolid,
		CompositionSolid, CompositionAlmostSolid:
		return true
	default:
		return false
	}
}

// Echogenicity describes a nodule's echogenicity relative to thyroid tissue.
type Echogenicity string

// Echogenicity values.
const (
	EchogenicityAnechoic       Echogenicity = "anechoic"
	EchogenicityHyperechoic    Echogenicity = "hyperechoic"
	EchogenicityIsoechoic      Echogenicity = "isoechoic"
	EchogenicityHypoechoic     Echogenicity = "hypoechoic"
	EchogenicityVeryHypoechoic Echogenicity = "very_hypoechoic"
)

// IsValid returns true if the echogenicity is recognised.
func (e Echogenicity) IsValid() bool {
	switch e {
	case EchogenicityAnechoic, EchogenicityHyperechoic, EchogenicityIsoechoic,
		EchogenicityHypoechoic, EchogenicityVeryHypoechoic:
		return true
	default:
		return false
	}
}

// Shape describes the nodule outline on the transverse plane.
type Shape string

// Shape values.
const (
	ShapeWiderThanTall  Shape = "wider_than_tall"
	ShapeTallerThanWide Shape = "taller_than_wide"
)

// IsValid returns true if the shape is recognised.
func (s Shape) IsValid() bool {
	return s == ShapeWiderThanTall || s == ShapeTallerThanWide
}

// Margin describes the nodule boundary.
type Margin string

// Margin values.
const (
	MarginSmooth                  Margin = "smooth"
	MarginIllDefined              Margin = "ill_defined"
	MarginLobulated               Margin = "lobulated"
	MarginIrregular               Margin = "irregular"
	MarginExtrathyroidalExtension Margin = "extrathyroidal_extension"
)

// IsValid returns true if the margin is recognised.
func (m Margin) IsValid() bool {
	switch m {
	case MarginSmooth, MarginIllDefined, MarginLobulated, MarginIrregular,
		MarginExtrathyroidalExtension:
		return true
	default:
		return false
	}
}

// EchogenicFoci describes echogenic foci within the nodule.
type EchogenicFoci string

// EchogenicFoci values.
const (
	FociNone                     EchogenicFoci = "none"
	FociLargeCometTail           EchogenicFoci = "large_comet_tail"
	FociMacrocalcifications      EchogenicFoci = "macrocalcifications"
	FociPeripheralCalcifications EchogenicFoci = "peripheral_calcifications"
	FociPunctateEchogenicFoci    EchogenicFoci = "punctate_echogenic_foci"
)

// IsValid returns true if the foci value is recognised.
func (f EchogenicFoci) IsValid() bool {
	switch f {
	case FociNone, FociLargeCometTail, FociMacrocalcifications,
		FociPeripheralCalcifications, FociPunctateEchogenicFoci:
		return true
	default:
		return false
	}
}

// NoduleCharacteristics groups the ultrasound findings of one nodule.
type NoduleCharacteristics struct {
	Composition   Composition
	Echogenicity  Echogenicity
	Shape         Shape
	Margin        Margin
	EchogenicFoci EchogenicFoci
}

// Pairs renders the characteristics as ordered "key: value" strings for
// query enhancement. Zero values are skipped.
func (n NoduleCharacteristics) Pairs() []string {
	var pairs []string
	if n.Composition != "" {
		pairs = append(pairs, "composition: "+string(n.Composition))
	}
	if n.Echogenicity != "" {
		pairs = append(pairs, "echogenicity: "+string(n.Echogenicity))
	}
	if n.Shape != "" {
		pairs = append(pairs, "shape: "+string(n.Shape))
	}
	if n.Margin != "" {
		pairs = append(pairs, "margin: "+string(n.Margin))
	}
	if n.EchogenicFoci != "" {
		pairs = append(pairs, "echogenic_foci: "+string(n.EchogenicFoci))
	}
	return pairs
}

// SizeInfo carries the externally computed nodule size.
type SizeInfo struct {
	// MaxDimensionMM is the maximum dimension in millimetres.
	MaxDimensionMM float64

	// VolumeMM3 is the ellipsoid volume when 3D measurements were taken.
	// Zero when only 2D measurements are available.
	VolumeMM3 float64
}

// Sex is the patient's recorded sex.
type Sex string

// Sex values.
const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
	SexOther  Sex = "other"
)

// ClinicalInfo carries optional clinical context rendered into the prompt.
type ClinicalInfo struct {
	Age                    int
	Sex                    Sex
	FamilyHistory          bool
	FamilyHistoryDetail    string
	RadiationHistory       bool
	RadiationHistoryDetail string
}

// Action is the externally recommended management action.
type Action string

// Action values.
const (
	// ActionFNA recommends fine needle aspiration biopsy.
	ActionFNA Action = "fna"

	// ActionFollowUp recommends surveillance imaging.
	ActionFollowUp Action = "follow_up"

	// ActionNone recommends no intervention.
	ActionNone Action = "no_action"
)

// actionQueryTerms is the fixed query-expansion vocabulary per action.
var actionQueryTerms = map[Action]string{
	ActionFNA:      "fine needle aspiration biopsy FNA cytology",
	ActionFollowUp: "follow-up surveillance monitoring ultrasound",
	ActionNone:     "benign observation no intervention",
}

// IsValid returns true if the action is recognised.
func (a Action) IsValid() bool {
	switch a {
	case ActionFNA, ActionFollowUp, ActionNone:
		return true
	default:
		return false
	}
}

// QueryTerms returns the retrieval expansion vocabulary for this action,
// or "" for an unrecognised action.
func (a Action) QueryTerms() string {
	return actionQueryTerms[a]
}

// String returns the string representation.
func (a Action) String() string {
	return string(a)
}
