package cleaner

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"salesetl/internal/metrics"
	"salesetl/internal/table"
)

// StageResult records row movement through one pass.
type StageResult struct {
	Name    string `json:"name"`
	In      int    `json:"in"`
	Out     int    `json:"out"`
	Dropped int    `json:"dropped"`
}

// Summary is the per-run cleaning report.
type Summary struct {
	RunID     string        `json:"run_id"`
	Input     int           `json:"input_rows"`
	Output    int           `json:"output_rows"`
	Stages    []StageResult `json:"stages"`
	Residuals []Residual    `json:"residual_mismatches,omitempty"`
	Elapsed   time.Duration `json:"elapsed"`
}

// Removed is the total number of rows dropped across all stages.
func (s Summary) Removed() int { return s.Input - s.Output }

// Config collects the tunables of the cleaning passes.
type Config struct {
	Rules      []Rule
	Dates      DateConfig
	Reconciler ReconcilerConfig
}

// DefaultConfig uses the canonical product vocabulary and the default
// date and reconciliation settings.
func DefaultConfig() Config {
	return Config{
		Rules:      DefaultRules(),
		Dates:      DefaultDateConfig(),
		Reconciler: DefaultReconcilerConfig(),
	}
}

// Pipeline runs the cleaning passes in their fixed order:
// missing-value repair, name normalization, date standardization,
// duplicate elimination, reconciliation, type finalization. The order
// is part of the contract; duplicate detection, for instance, relies on
// dates already being canonical.
type Pipeline struct {
	cfg Config
	log zerolog.Logger
}

// New builds a Pipeline. The logger is used for per-stage summaries.
func New(cfg Config, log zerolog.Logger) *Pipeline {
	return &Pipeline{cfg: cfg, log: log}
}

// Run cleans the table and returns the cleaned snapshot plus a Summary.
// The input slice is left untouched. A non-nil error means the whole
// run is invalid; there is no partial result to resume from.
func (p *Pipeline) Run(in []table.Record) ([]table.Record, *Summary, error) {
	start := time.Now()
	sum := &Summary{RunID: uuid.NewString(), Input: len(in)}

	reject := func(rr RejectedRow) {
		p.log.Debug().
			Str("stage", rr.Stage).
			Str("transaction_id", rr.TransactionID).
			Msg(rr.Reason)
	}

	cur := table.Clone(in)
	stages := []struct {
		name string
		pass Pass
	}{
		{"missing_values", RepairMissing{Reject: reject}},
		{"product_names", NewNormalizeNames(p.cfg.Rules)},
		{"dates", StandardizeDates{Config: p.cfg.Dates, Reject: reject}},
		{"duplicates", DeDup{Reject: reject}},
		{"reconcile", Reconcile{
			Config:     p.cfg.Reconciler,
			OnResidual: func(r Residual) { sum.Residuals = append(sum.Residuals, r) },
		}},
	}

	for _, st := range stages {
		stepStart := time.Now()
		next := st.pass.Apply(cur)
		res := StageResult{Name: st.name, In: len(cur), Out: len(next), Dropped: len(cur) - len(next)}
		sum.Stages = append(sum.Stages, res)
		metrics.RecordStep(sum.RunID, st.name, nil, time.Since(stepStart))
		metrics.RecordRow(sum.RunID, st.name+"_dropped", int64(res.Dropped))
		p.log.Info().
			Str("stage", st.name).
			Int("in", res.In).
			Int("out", res.Out).
			Int("dropped", res.Dropped).
			Msg("cleaning stage done")
		cur = next
	}

	stepStart := time.Now()
	final, err := Finalize(cur)
	metrics.RecordStep(sum.RunID, "finalize", err, time.Since(stepStart))
	if err != nil {
		return nil, nil, err
	}
	sum.Stages = append(sum.Stages, StageResult{Name: "finalize", In: len(cur), Out: len(final)})

	for _, r := range sum.Residuals {
		p.log.Warn().
			Str("transaction_id", r.TransactionID).
			Str("difference", r.Difference.String()).
			Msg("mismatch not resolved by reconciliation")
	}

	sum.Output = len(final)
	sum.Elapsed = time.Since(start)
	metrics.RecordRow(sum.RunID, "output", int64(sum.Output))
	p.log.Info().
		Str("run_id", sum.RunID).
		Int("input", sum.Input).
		Int("output", sum.Output).
		Int("removed", sum.Removed()).
		Int("residual_mismatches", len(sum.Residuals)).
		Dur("elapsed", sum.Elapsed).
		Msg("cleaning finished")
	return final, sum, nil
}
