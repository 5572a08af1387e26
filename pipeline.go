package networth

import (
	"context"
	"io"
	"log"
)

// Progress observes pipeline stages. Report is fire and forget: it must not
// block for long and whatever it does never affects the run.
type Progress interface {
	Report(step string, index, count int)
}

// ProgressFunc adapts a plain function to the Progress interface.
type ProgressFunc func(step string, index, count int)

func (f ProgressFunc) Report(step string, index, count int) { f(step, index, count) }

// The six pipeline stages, in order.
var pipelineSteps = []string{
	"Reading Excel file",
	"Processing closed positions",
	"Processing open positions",
	"Fetching market data",
	"Combining portfolio data",
	"Finalizing evolution",
}

// Pipeline reconstructs a portfolio evolution from one statement export.
// The zero value is not usable: Market must be set; Rules defaults to
// DefaultRules when empty.
type Pipeline struct {
	Market MarketData
	Rules  RuleTable
}

// Evolution runs the full reconstruction for the statement at path.
// progress may be nil.
func (p *Pipeline) Evolution(ctx context.Context, path string, progress Progress) (*Evolution, error) {
	report := stageReporter(progress)

	report(1)
	stmt, err := ReadStatement(path)
	if err != nil {
		return nil, err
	}
	return p.run(ctx, stmt, report)
}

// EvolutionFrom is Evolution reading the statement from r.
func (p *Pipeline) EvolutionFrom(ctx context.Context, r io.Reader, progress Progress) (*Evolution, error) {
	report := stageReporter(progress)

	report(1)
	stmt, err := ReadStatementFrom(r)
	if err != nil {
		return nil, err
	}
	return p.run(ctx, stmt, report)
}

func (p *Pipeline) run(ctx context.Context, stmt *Statement, report func(int)) (*Evolution, error) {
	rules := p.Rules
	if rules.Renames == nil && rules.Currencies == nil {
		rules = DefaultRules()
	}

	report(2)
	profit := stmt.RealizedProfit()
	deposits := stmt.Deposits()

	report(3)
	positions := stmt.DailyPositions(stmt.Splits())

	report(4)
	resolver := NewResolver(rules, p.Market)
	mappings := resolver.ResolveAll(ctx, stmt.Instruments(), stmt.IsCrypto)
	prices := FetchPrices(ctx, p.Market, mappings, stmt.FirstActivity())

	report(5)
	evo := Combine(positions, prices, profit, deposits)

	report(6)
	return evo, nil
}

// stageReporter normalizes a possibly-nil observer into a by-index reporter
// that cannot take the pipeline down.
func stageReporter(progress Progress) func(int) {
	if progress == nil {
		return func(int) {}
	}
	return func(i int) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("progress observer panicked (ignored): %v", r)
			}
		}()
		progress.Report(pipelineSteps[i-1], i, len(pipelineSteps))
	}
}
