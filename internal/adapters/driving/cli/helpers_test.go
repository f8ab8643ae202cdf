package cli

import (
	"bytes"
	"context"

	configfile "github.com/veridia-labs/tirads-cli/internal/adapters/driven/config/file"
	"github.com/veridia-labs/tirads-cli/internal/adapters/driven/vectorstore/memory"
	"github.com/veridia-labs/tirads-cli/internal/core/domain"
	"github.com/veridia-labs/tirads-cli/internal/core/ports/driving"
)

// fakeExplainer records the evaluation and replays a canned answer.
type fakeExplainer struct {
	answer  *domain.GuidelineAnswer
	err     error
	summary string
	eval    domain.Evaluation
}

func (f *fakeExplainer) Explain(_ context.Context, eval domain.Evaluation) (*domain.GuidelineAnswer, error) {
	f.eval = eval
	if f.err != nil {
		return nil, f.err
	}
	return f.answer, nil
}

func (f *fakeExplainer) GuidelineSummary(_ context.Context, _ string, _ domain.Action) string {
	return f.summary
}

// fakeIngestor replays a canned report.
type fakeIngestor struct {
	report *driving.IngestReport
	err    error
	dir    string
	opts   driving.IngestOptions
}

func (f *fakeIngestor) IngestDir(_ context.Context, dir string, opts driving.IngestOptions) (*driving.IngestReport, error) {
	f.dir = dir
	f.opts = opts
	if f.err != nil {
		return nil, f.err
	}
	return f.report, nil
}

// setupTestServices wires fakes into the package-level services so commands
// run without a real backend. Returns the fakes and a cleanup func.
func setupTestServices() (*fakeExplainer, *fakeIngestor, func()) {
	explainer := &fakeExplainer{
		answer: &domain.GuidelineAnswer{
			Explanation: domain.Explanation{TR: "TR bölümü", US: "US bölümü", EU: "EU bölümü"},
			Sources:     []domain.Citation{},
		},
		summary: "özet",
	}
	ingestor := &fakeIngestor{report: &driving.IngestReport{RunID: "test-run"}}

	settings = configfile.Defaults()
	vectorStore = memory.NewStore()
	explainService = explainer
	ingestService = ingestor

	return explainer, ingestor, func() {
		settings = configfile.Settings{}
		vectorStore = nil
		explainService = nil
		ingestService = nil
		embeddingPinger = nil
		chatPinger = nil
	}
}

// execute runs the root command with args and captures its output.
func execute(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}
