// Package engine provides the caller-facing policy lookup API.
// CLI and other glue layers are thin wrappers around this engine.
package engine

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"policy-lookup/core/constraint"
	"policy-lookup/core/dataset"
	"policy-lookup/core/lookup"
	"policy-lookup/core/ordering"
	"policy-lookup/core/output"
	"policy-lookup/core/session"
	"policy-lookup/core/types"
)

// Engine binds a loaded dataset to the resolver, lookup and formatter.
// Every operation is read-only; the selection is always passed in.
type Engine struct {
	dataset   *dataset.Dataset
	catalog   *ordering.Catalog
	resolver  *constraint.Resolver
	lookup    *lookup.Engine
	formatter *output.AmountFormatter
	logger    *zap.Logger
}

// Options configures an engine. Zero values select the defaults.
type Options struct {
	// Catalog orders option lists
	Catalog *ordering.Catalog

	// Formatter renders amounts
	Formatter *output.AmountFormatter

	// Logger receives debug and info logs
	Logger *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.Catalog == nil {
		o.Catalog = ordering.Default()
	}
	if o.Formatter == nil {
		o.Formatter = output.NewAmountFormatter()
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// New creates an engine over an already loaded dataset
func New(ds *dataset.Dataset, opts Options) *Engine {
	opts = opts.withDefaults()
	return &Engine{
		dataset:   ds,
		catalog:   opts.Catalog,
		resolver:  constraint.NewResolver(opts.Catalog),
		lookup:    lookup.NewEngine(),
		formatter: opts.Formatter,
		logger:    opts.Logger,
	}
}

// LoadDataset validates a raw payload and returns an engine over it
func LoadDataset(raw []byte, opts Options) (*Engine, error) {
	opts = opts.withDefaults()
	ds, err := dataset.Load(raw)
	if err != nil {
		opts.Logger.Error("dataset rejected", zap.Error(err))
		return nil, err
	}
	opts.Logger.Info("dataset loaded",
		zap.Int("records", ds.Len()),
		zap.Time("generated_at", ds.GeneratedAt()),
	)
	return New(ds, opts), nil
}

// Open loads the dataset from a source, waiting for the one-time load
func Open(ctx context.Context, source dataset.Source, opts Options) (*Engine, error) {
	opts = opts.withDefaults()
	loader := dataset.NewLoader(source)
	opts.Logger.Debug("loading dataset", zap.String("source", source.Name()))

	ds, err := loader.Wait(ctx)
	if err != nil {
		opts.Logger.Error("dataset load failed",
			zap.String("source", source.Name()),
			zap.String("state", loader.State().String()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to load dataset from %s: %w", source.Name(), err)
	}
	opts.Logger.Info("dataset loaded",
		zap.String("source", source.Name()),
		zap.Int("records", ds.Len()),
		zap.Time("generated_at", ds.GeneratedAt()),
	)
	return New(ds, opts), nil
}

// Dataset returns the underlying dataset
func (e *Engine) Dataset() *dataset.Dataset {
	return e.dataset
}

// Catalog returns the order catalog
func (e *Engine) Catalog() *ordering.Catalog {
	return e.catalog
}

// Formatter returns the amount formatter
func (e *Engine) Formatter() *output.AmountFormatter {
	return e.formatter
}

// ValidOptions returns the valid choices for attr under sel
func (e *Engine) ValidOptions(sel types.Selection, attr types.Attribute) (constraint.Options, error) {
	opts, err := e.resolver.ValidOptions(e.dataset, sel, attr)
	if err != nil {
		return constraint.Options{}, err
	}
	e.logger.Debug("options computed",
		zap.String("attribute", attr.String()),
		zap.Int("count", opts.Len()),
	)
	return opts, nil
}

// Categories returns every category in the dataset
func (e *Engine) Categories() constraint.Options {
	return e.resolver.Categories(e.dataset)
}

// Resolve looks up the record for sel. Misses are logged at debug level only.
func (e *Engine) Resolve(sel types.Selection) lookup.Outcome {
	outcome := e.lookup.Resolve(e.dataset, sel)
	e.logger.Debug("lookup", zap.Stringer("outcome", outcome))
	return outcome
}

// Format renders one amount
func (e *Engine) Format(amount decimal.NullDecimal) string {
	return e.formatter.Format(amount)
}

// View resolves sel and builds its rendered view
func (e *Engine) View(sel types.Selection) output.LookupView {
	return e.formatter.NewLookupView(sel, e.Resolve(sel))
}

// NewSession starts a cascading selection session
func (e *Engine) NewSession() *session.Session {
	return session.New(e.dataset, e.resolver, e.lookup, e.logger)
}
