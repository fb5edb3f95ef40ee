// Package pipeline implements the document-to-structured-data chain:
// raw text → noise filtering → relevance filtering → keyword ranking and
// token accounting → one extraction call → tone analysis → metrics
// aggregation. Each invocation is independent; nothing is shared or
// cached across runs.
package pipeline

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/ecoscan/internal/agent"
	"github.com/sells-group/ecoscan/internal/config"
	"github.com/sells-group/ecoscan/internal/extract"
	"github.com/sells-group/ecoscan/internal/model"
)

// Runner executes the pipeline. Constructed once per process; safe for
// concurrent Run calls since no state crosses invocations.
type Runner struct {
	cfg   *config.Config
	agent *agent.Agent
}

// NewRunner creates a Runner with its dependencies.
func NewRunner(cfg *config.Config, ag *agent.Agent) *Runner {
	return &Runner{cfg: cfg, agent: ag}
}

// Preprocessed holds the output of the local (no-model) stages.
type Preprocessed struct {
	Paragraphs []model.CleanParagraph
	Corpus     *model.RelevantCorpus
	Account    model.TokenAccount
	Keywords   []string
	// CorpusText is the markdown-structured, original-phrasing text
	// handed to the extraction agent.
	CorpusText string
}

// Preprocess runs extraction, cleaning, relevance filtering, keyword
// ranking, and token accounting. Deterministic: identical input yields
// identical output. No model call is made.
func (r *Runner) Preprocess(data []byte, format model.Format) (*Preprocessed, error) {
	doc, err := extract.Extract(data, format)
	if err != nil {
		return nil, err
	}
	rawText := doc.Text()

	paragraphs := FilterNoise(doc, NoiseConfig{
		MinLineLen:     r.cfg.Pipeline.MinLineLen,
		HeaderMinPages: r.cfg.Pipeline.HeaderMinPages,
	})

	corpus := FilterRelevance(paragraphs)

	reduced := RemoveStopwords(corpus.Paragraphs)
	keywords := TopKeywords(reduced, DefaultExclusions(), r.cfg.Pipeline.TopKeywords)

	corpusText := ToMarkdown(corpus.Paragraphs)
	account := NewTokenAccount(rawText, corpusText)

	zap.L().Info("pipeline: preprocessing complete",
		zap.Int("paragraphs", len(paragraphs)),
		zap.Int("relevant_paragraphs", len(corpus.Paragraphs)),
		zap.Float64("csr_density", corpus.CSRDensity),
		zap.Int("tokens_raw", account.TokensRaw),
		zap.Int("tokens_clean", account.TokensClean),
	)

	return &Preprocessed{
		Paragraphs: paragraphs,
		Corpus:     corpus,
		Account:    account,
		Keywords:   keywords,
		CorpusText: corpusText,
	}, nil
}

// Run executes the full pipeline for one document. The caller receives
// either a complete PipelineResult or a typed failure naming the stage;
// metrics aggregation never runs on a failed extraction.
func (r *Runner) Run(ctx context.Context, data []byte, format model.Format) (*model.PipelineResult, error) {
	start := time.Now()

	pre, err := r.Preprocess(data, format)
	if err != nil {
		return nil, err
	}

	report, usage, err := r.agent.Extract(ctx, pre.CorpusText)
	if err != nil {
		return nil, err
	}
	totalUsage := *usage

	// Tone runs on the cleaned sentence stream with original phrasing,
	// not the stopword-reduced text.
	tone := AnalyzeTone(pre.Paragraphs)

	metrics := AggregateMetrics(pre.Corpus, pre.Account, report, tone)

	if r.cfg.Anthropic.Recap {
		recap, recapUsage, recapErr := r.agent.Recap(ctx, report, metrics)
		if recapErr != nil {
			zap.L().Warn("pipeline: recap generation failed", zap.Error(recapErr))
		} else {
			report.Recap = recap
			totalUsage.Add(*recapUsage)
		}
	}

	totalUsage.LogCost(r.cfg.Anthropic.Model, "run")
	zap.L().Info("pipeline: run complete",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("kpis_populated", len(report.PopulatedKPIs())),
		zap.Float64("tone_emphasis", metrics.ToneEmphasis),
	)

	return &model.PipelineResult{
		Report:   report,
		Metrics:  metrics,
		Keywords: pre.Keywords,
	}, nil
}

// FormatForPath guesses the document format from a file name.
func FormatForPath(path string) model.Format {
	if strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return model.FormatPDF
	}
	return model.FormatText
}
