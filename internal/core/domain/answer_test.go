package domain

import "testing"

func TestDegradedAnswer(t *testing.T) {
	msg := "OpenAI API anahtarı yapılandırılmamış."
	answer := DegradedAnswer(msg)

	for _, g := range Guidelines {
		if answer.Explanation.Section(g) != msg {
			t.Errorf("section %s = %q, want %q", g, answer.Explanation.Section(g), msg)
		}
	}
	if answer.Sources == nil || len(answer.Sources) != 0 {
		t.Errorf("expected empty non-nil sources, got %v", answer.Sources)
	}
}

func TestAction_QueryTerms(t *testing.T) {
	tests := []struct {
		action Action
		want   string
	}{
		{ActionFNA, "fine needle aspiration biopsy FNA cytology"},
		{ActionFollowUp, "follow-up surveillance monitoring ultrasound"},
		{ActionNone, "benign observation no intervention"},
		{Action("unknown"), ""},
	}

	for _, tt := range tests {
		if got := tt.action.QueryTerms(); got != tt.want {
			t.Errorf("QueryTerms(%q) = %q, want %q", tt.action, got, tt.want)
		}
	}
}

func TestNoduleCharacteristics_Pairs(t *testing.T) {
	n := NoduleCharacteristics{
		Composition:   CompositionSolid,
		Echogenicity:  EchogenicityHypoechoic,
		Shape:         ShapeTallerThanWide,
		Margin:        MarginIrregular,
		EchogenicFoci: FociPunctateEchogenicFoci,
	}

	pairs := n.Pairs()
	want := []string{
		"composition: solid",
		"echogenicity: hypoechoic",
		"shape: taller_than_wide",
		"margin: irregular",
		"echogenic_foci: punctate_echogenic_foci",
	}
	if len(pairs) != len(want) {
		t.Fatalf("expected %d pairs, got %d", len(want), len(pairs))
	}
	for i := range want {
		if pairs[i] != want[i] {
			t.Errorf("pair %d = %q, want %q", i, pairs[i], want[i])
		}
	}
}

func TestNoduleCharacteristics_Pairs_SkipsZeroValues(t *testing.T) {
	n := NoduleCharacteristics{Composition: CompositionCystic}
	pairs := n.Pairs()
	if len(pairs) != 1 || pairs[0] != "composition: cystic" {
		t.Errorf("unexpected pairs: %v", pairs)
	}
}
