package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/veridia-labs/tirads-cli/internal/core/domain"
	"github.com/veridia-labs/tirads-cli/internal/core/ports/driven"
	"github.com/veridia-labs/tirads-cli/internal/core/ports/driving"
	"github.com/veridia-labs/tirads-cli/internal/logger"
)

// systemPrompt pins the generation to Turkish medical register and to the
// retrieved evidence. The instruction is in Turkish because the target
// audience is Turkish-speaking clinicians.
const systemPrompt = `Sen tiroid nodüllerini değerlendiren uzman bir endokrinoloji ve radyoloji asistanısın.
Kılavuzlara dayalı, bilimsel ve profesyonel bir şekilde yanıt vermelisin.

Yanıtlarında:
1. Türkçe tıbbi terminoloji kullan
2. Kılavuz referanslarına atıfta bulun
3. Klinik karar vermeye yardımcı ol
4. Açık ve anlaşılır ol
5. Kısa ve öz yanıtlar ver, gereksiz detaylardan kaçın
6. Sadece verilen nodülün değerlendirmesiyle doğrudan ilgili bilgileri sun

Verilen bağlam bilgilerini kullanarak soruları yanıtla.
Bağlamda olmayan bilgiler için "Bu konuda kılavuzlarda yeterli bilgi bulunmamaktadır" de.
Her kılavuz bölümünü en fazla 3-4 cümle ile sınırla. Genel tiroid bilgisi değil, spesifik olarak bu nodüle özgü değerlendirme yap.`

// MsgMissingAPIKey is the degraded-answer text shown when no generation
// credential is configured.
const MsgMissingAPIKey = "OpenAI API anahtarı yapılandırılmamış."

// Per-partition evidence counts. The Turkish corpus is the primary source
// and gets a wider window.
const (
	trTopK = 5
	usTopK = 3
	euTopK = 3
)

// Generation parameters. Low temperature keeps the clinical wording stable
// across repeated evaluations of the same nodule.
const (
	chatTemperature = 0.3
	chatMaxTokens   = 1200
)

// ExplainService generates guideline-grounded explanations for nodule
// evaluations. It is the composition root of the answer pipeline: retrieval
// per partition, one completion, section parsing, citation flattening.
type ExplainService struct {
	retriever *Retriever
	chat      driven.ChatService
}

var _ driving.Explainer = (*ExplainService)(nil)

// NewExplainService creates an explanation service. chat may be nil when no
// credential is configured; Explain then returns a degraded answer instead
// of failing.
func NewExplainService(retriever *Retriever, chat driven.ChatService) *ExplainService {
	return &ExplainService{
		retriever: retriever,
		chat:      chat,
	}
}

// Explain produces the three-section guideline answer for an evaluation.
// Missing credentials degrade to a well-formed placeholder answer; transport
// and generation failures are returned as errors.
func (s *ExplainService) Explain(ctx context.Context, eval domain.Evaluation) (*domain.GuidelineAnswer, error) {
	if s.chat == nil {
		logger.Warn("Explanation degraded: no chat service configured")
		return domain.DegradedAnswer(MsgMissingAPIKey), nil
	}

	base := s.baseQuery(eval)

	trChunks, err := s.retrievePartition(ctx, base, eval, domain.GuidelineTR, trTopK)
	if err != nil {
		return nil, err
	}
	usChunks, err := s.retrievePartition(ctx, base, eval, domain.GuidelineUS, usTopK)
	if err != nil {
		return nil, err
	}
	euChunks, err := s.retrievePartition(ctx, base, eval, domain.GuidelineEU, euTopK)
	if err != nil {
		return nil, err
	}

	prompt := s.userPrompt(eval, FormatContext(trChunks), FormatContext(usChunks), FormatContext(euChunks))

	messages := []driven.ChatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: prompt},
	}
	opts := driven.ChatOptions{
		MaxTokens:   chatMaxTokens,
		Temperature: chatTemperature,
	}

	fullText, err := s.chat.Chat(ctx, messages, opts)
	if err != nil {
		if errors.Is(err, domain.ErrMissingAPIKey) {
			logger.Warn("Explanation degraded: %v", err)
			return domain.DegradedAnswer(MsgMissingAPIKey), nil
		}
		return nil, fmt.Errorf("generate explanation: %w", err)
	}

	answer := &domain.GuidelineAnswer{
		Explanation: ParseGuidelineSections(fullText),
		Sources:     flattenCitations(trChunks, usChunks, euChunks),
	}

	logger.Debug("Explanation generated: %d sources (tr=%d us=%d eu=%d)",
		len(answer.Sources), len(trChunks), len(usChunks), len(euChunks))
	return answer, nil
}

// GuidelineSummary returns a short digest from the Turkish partition for the
// given level and action. It never fails: every error path collapses into a
// displayable Turkish message.
func (s *ExplainService) GuidelineSummary(ctx context.Context, trLevel string, action domain.Action) string {
	if s.chat == nil {
		return "RAG sistemi yapılandırılmamış (API anahtarı eksik)."
	}

	query := fmt.Sprintf("Türkiye kılavuzu tiroid nodülü %s %s yönetim öneri", trLevel, action)

	chunks, err := s.retriever.Retrieve(ctx, RetrievalQuery{
		Base:    query,
		TRLevel: trLevel,
		Action:  action,
		TopK:    3,
	}, domain.GuidelineTR)
	if err != nil {
		return fmt.Sprintf("Kılavuz özeti oluşturulurken hata: %v", err)
	}
	if len(chunks) == 0 {
		return "Türkiye kılavuzundan ilgili bilgi bulunamadı."
	}

	if len(chunks) > 2 {
		chunks = chunks[:2]
	}
	excerpts := make([]string, len(chunks))
	for i, c := range chunks {
		excerpts[i] = c.Excerpt
	}
	return strings.Join(excerpts, " ")
}

// retrievePartition runs one partition-scoped retrieval.
func (s *ExplainService) retrievePartition(ctx context.Context, base string, eval domain.Evaluation, g domain.Guideline, topK int) ([]domain.RetrievedChunk, error) {
	chunks, err := s.retriever.Retrieve(ctx, RetrievalQuery{
		Base:            base,
		TRLevel:         eval.TRLevel,
		Action:          eval.Action,
		Characteristics: eval.Characteristics,
		TopK:            topK,
	}, g)
	if err != nil {
		return nil, fmt.Errorf("retrieve %s evidence: %w", g, err)
	}
	return chunks, nil
}

// baseQuery renders the evaluation into the free-text stem shared by all
// three partition retrievals.
func (s *ExplainService) baseQuery(eval domain.Evaluation) string {
	return fmt.Sprintf(`Tiroid nodülü değerlendirmesi:
- ACR TI-RADS: %s
- EU-TIRADS: %s
- Önerilen eylem: %s
- Nodül özellikleri: %s
- Boyut: %s mm`,
		eval.TRLevel, eval.EULevel, eval.Action,
		strings.Join(eval.Characteristics.Pairs(), ", "),
		formatMM(eval.Size.MaxDimensionMM))
}

// userPrompt composes the single user message: nodule block, optional
// clinical block, one evidence block per guideline, then the output format
// the section parser expects.
func (s *ExplainService) userPrompt(eval domain.Evaluation, trContext, usContext, euContext string) string {
	if trContext == "" {
		trContext = "Türkiye kılavuzundan ilgili bilgi bulunamadı."
	}
	if usContext == "" {
		usContext = "ACR kılavuzundan ilgili bilgi bulunamadı."
	}
	if euContext == "" {
		euContext = "EU kılavuzundan ilgili bilgi bulunamadı."
	}

	return fmt.Sprintf(`Aşağıdaki tiroid nodülü değerlendirmesi için 3 farklı kılavuza dayalı ayrı ayrı açıklamalar yap:

**Nodül Bilgileri:**
- ACR TI-RADS: %s
- EU-TIRADS: %s
- Kompozisyon: %s
- Ekojenite: %s
- Şekil: %s
- Kenar: %s
- Ekojenik odaklar: %s
- Maksimum boyut: %s mm
- Önerilen Eylem: %s
%s
**Kılavuz Bilgileri:**

TR Kılavuzu:
%s

US (ACR) Kılavuzu:
%s

EU Kılavuzu:
%s

Lütfen her kılavuz için AYRI bir değerlendirme yap. Her bölüm en fazla 3-4 cümle olsun.
Genel bilgi verme, sadece bu nodülün değerlendirilmesiyle ilgili spesifik bilgileri yaz.
Yanıtını şu formatta ver:

### TR Kılavuzuna Göre:
[Türkiye kılavuzuna dayalı açıklama]

### US (ACR TI-RADS) Kılavuzuna Göre:
[ACR TI-RADS kılavuzuna dayalı açıklama]

### EU-TIRADS Kılavuzuna Göre:
[EU-TIRADS kılavuzuna dayalı açıklama]`,
		eval.TRLevel, eval.EULevel,
		orUnspecified(string(eval.Characteristics.Composition)),
		orUnspecified(string(eval.Characteristics.Echogenicity)),
		orUnspecified(string(eval.Characteristics.Shape)),
		orUnspecified(string(eval.Characteristics.Margin)),
		orUnspecified(string(eval.Characteristics.EchogenicFoci)),
		formatMM(eval.Size.MaxDimensionMM),
		eval.Action,
		clinicalBlock(eval.Clinical),
		trContext, usContext, euContext)
}

// sexLabels maps the recorded sex onto the Turkish prompt label.
var sexLabels = map[domain.Sex]string{
	domain.SexMale:   "Erkek",
	domain.SexFemale: "Kadın",
	domain.SexOther:  "Diğer",
}

// clinicalBlock renders the optional clinical context. Returns "" when there
// is nothing to show, otherwise a block ending in a newline so it slots
// between the nodule block and the evidence blocks.
func clinicalBlock(info *domain.ClinicalInfo) string {
	if info == nil {
		return ""
	}

	var parts []string
	if info.Age > 0 {
		parts = append(parts, fmt.Sprintf("Yaş: %d", info.Age))
	}
	if info.Sex != "" {
		label, ok := sexLabels[info.Sex]
		if !ok {
			label = string(info.Sex)
		}
		parts = append(parts, "Cinsiyet: "+label)
	}
	if info.FamilyHistory {
		if info.FamilyHistoryDetail != "" {
			parts = append(parts, "Aile öyküsü: Var - "+info.FamilyHistoryDetail)
		} else {
			parts = append(parts, "Aile öyküsü: Var")
		}
	}
	if info.RadiationHistory {
		if info.RadiationHistoryDetail != "" {
			parts = append(parts, "Radyasyon öyküsü: Var - "+info.RadiationHistoryDetail)
		} else {
			parts = append(parts, "Radyasyon öyküsü: Var")
		}
	}
	if len(parts) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n**Klinik Bilgiler:**\n")
	for _, p := range parts {
		b.WriteString("- " + p + "\n")
	}
	return b.String()
}

// flattenCitations merges the per-partition chunks into the flat citation
// list, Turkish partition first.
func flattenCitations(groups ...[]domain.RetrievedChunk) []domain.Citation {
	citations := []domain.Citation{}
	for _, group := range groups {
		for _, c := range group {
			citations = append(citations, domain.Citation{
				DocID:   c.DocID,
				Page:    c.Page,
				ChunkID: c.ChunkID,
				Excerpt: c.Excerpt,
			})
		}
	}
	return citations
}

// orUnspecified substitutes the Turkish "not specified" placeholder for an
// empty value.
func orUnspecified(v string) string {
	if v == "" {
		return "Belirtilmemiş"
	}
	return v
}

// formatMM renders a millimetre measurement without trailing zeros, or the
// placeholder when no measurement was taken.
func formatMM(v float64) string {
	if v <= 0 {
		return "Belirtilmemiş"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
