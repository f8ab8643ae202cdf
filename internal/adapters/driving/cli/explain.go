package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/veridia-labs/tirads-cli/internal/core/domain"
)

var (
	explainTRLevel       string
	explainEULevel       string
	explainAction        string
	explainComposition   string
	explainEchogenicity  string
	explainShape         string
	explainMargin        string
	explainFoci          string
	explainSizeMM        float64
	explainVolumeMM3     float64
	explainAge           int
	explainSex           string
	explainFamilyHist    string
	explainRadiationHist string
	explainJSON          bool
)

var explainCmd = &cobra.Command{
	Use:   "explain",
	Short: "Generate guideline explanations for a nodule evaluation",
	Long: `Takes an externally computed TI-RADS evaluation (levels, recommended
action, ultrasound findings) and produces one cited explanation per
guideline: Turkish, ACR TI-RADS and EU-TIRADS. Without an API key the
command still succeeds and returns a placeholder answer.`,
	RunE: runExplain,
}

func init() {
	explainCmd.Flags().StringVar(&explainTRLevel, "tr-level", "", "ACR TI-RADS level, e.g. TR4 (required)")
	explainCmd.Flags().StringVar(&explainEULevel, "eu-level", "", "EU-TIRADS level, e.g. 'EU-TIRADS 4'")
	explainCmd.Flags().StringVar(&explainAction, "action", "", "recommended action: fna, follow_up or no_action (required)")
	explainCmd.Flags().StringVar(&explainComposition, "composition", "", "nodule composition")
	explainCmd.Flags().StringVar(&explainEchogenicity, "echogenicity", "", "nodule echogenicity")
	explainCmd.Flags().StringVar(&explainShape, "shape", "", "nodule shape")
	explainCmd.Flags().StringVar(&explainMargin, "margin", "", "nodule margin")
	explainCmd.Flags().StringVar(&explainFoci, "echogenic-foci", "", "echogenic foci")
	explainCmd.Flags().Float64Var(&explainSizeMM, "size-mm", 0, "maximum dimension in millimetres")
	explainCmd.Flags().Float64Var(&explainVolumeMM3, "volume-mm3", 0, "ellipsoid volume in cubic millimetres")
	explainCmd.Flags().IntVar(&explainAge, "age", 0, "patient age")
	explainCmd.Flags().StringVar(&explainSex, "sex", "", "patient sex: male, female or other")
	explainCmd.Flags().StringVar(&explainFamilyHist, "family-history", "", "family history detail ('yes' for no detail)")
	explainCmd.Flags().StringVar(&explainRadiationHist, "radiation-history", "", "radiation history detail ('yes' for no detail)")
	explainCmd.Flags().BoolVar(&explainJSON, "json", false, "output the answer as JSON")
	_ = explainCmd.MarkFlagRequired("tr-level")
	_ = explainCmd.MarkFlagRequired("action")
	rootCmd.AddCommand(explainCmd)
}

func runExplain(cmd *cobra.Command, _ []string) error {
	eval, err := buildEvaluation()
	if err != nil {
		return err
	}

	if err := initServices(); err != nil {
		return err
	}

	answer, err := explainService.Explain(cmd.Context(), eval)
	if err != nil {
		// The caller still gets the three-section shape; generation
		// failures become a displayable message, not a stack trace.
		answer = domain.DegradedAnswer(fmt.Sprintf("LLM yanıtı oluşturulurken hata: %v", err))
	}

	if explainJSON {
		data, err := json.MarshalIndent(answer, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal answer: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	for i, g := range domain.Guidelines {
		if i > 0 {
			cmd.Println()
		}
		cmd.Println(g.Description())
		cmd.Println(answer.Explanation.Section(g))
	}

	if len(answer.Sources) > 0 {
		cmd.Println()
		cmd.Println("Kaynaklar:")
		for i, src := range answer.Sources {
			cmd.Printf("  [%d] %s, sayfa %d (%s)\n", i+1, src.DocID, src.Page, src.ChunkID)
		}
	}
	return nil
}

// buildEvaluation validates the flags into a domain evaluation.
func buildEvaluation() (domain.Evaluation, error) {
	eval := domain.Evaluation{
		TRLevel: explainTRLevel,
		EULevel: explainEULevel,
		Action:  domain.Action(explainAction),
		Size: domain.SizeInfo{
			MaxDimensionMM: explainSizeMM,
			VolumeMM3:      explainVolumeMM3,
		},
	}

	if !eval.Action.IsValid() {
		return eval, fmt.Errorf("%w: action %q (expected fna, follow_up or no_action)",
			domain.ErrInvalidInput, explainAction)
	}

	chars := domain.NoduleCharacteristics{
		Composition:   domain.Composition(explainComposition),
		Echogenicity:  domain.Echogenicity(explainEchogenicity),
		Shape:         domain.Shape(explainShape),
		Margin:        domain.Margin(explainMargin),
		EchogenicFoci: domain.EchogenicFoci(explainFoci),
	}
	if explainComposition != "" && !chars.Composition.IsValid() {
		return eval, fmt.Errorf("%w: composition %q", domain.ErrInvalidInput, explainComposition)
	}
	if explainEchogenicity != "" && !chars.Echogenicity.IsValid() {
		return eval, fmt.Errorf("%w: echogenicity %q", domain.ErrInvalidInput, explainEchogenicity)
	}
	if explainShape != "" && !chars.Shape.IsValid() {
		return eval, fmt.Errorf("%w: shape %q", domain.ErrInvalidInput, explainShape)
	}
	if explainMargin != "" && !chars.Margin.IsValid() {
		return eval, fmt.Errorf("%w: margin %q", domain.ErrInvalidInput, explainMargin)
	}
	if explainFoci != "" && !chars.EchogenicFoci.IsValid() {
		return eval, fmt.Errorf("%w: echogenic foci %q", domain.ErrInvalidInput, explainFoci)
	}
	eval.Characteristics = chars

	if clinical := buildClinical(); clinical != nil {
		eval.Clinical = clinical
	}
	return eval, nil
}

// buildClinical folds the clinical flags into a ClinicalInfo, or nil when
// none were given. The history flags accept "yes" for a bare positive.
func buildClinical() *domain.ClinicalInfo {
	if explainAge == 0 && explainSex == "" && explainFamilyHist == "" && explainRadiationHist == "" {
		return nil
	}

	info := &domain.ClinicalInfo{
		Age: explainAge,
		Sex: domain.Sex(explainSex),
	}
	if explainFamilyHist != "" {
		info.FamilyHistory = true
		if explainFamilyHist != "yes" {
			info.FamilyHistoryDetail = explainFamilyHist
		}
	}
	if explainRadiationHist != "" {
		info.RadiationHistory = true
		if explainRadiationHist != "yes" {
			info.RadiationHistoryDetail = explainRadiationHist
		}
	}
	return info
}
