// Package session drives the cascade a selection UI performs: after each
// change it recomputes dependent option lists, drops choices that are no
// longer valid, and re-runs the lookup.
package session

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"policy-lookup/core/constraint"
	"policy-lookup/core/dataset"
	"policy-lookup/core/lookup"
	"policy-lookup/core/types"
)

// Session owns one selection. It is not safe for concurrent use.
type Session struct {
	id       uuid.UUID
	dataset  *dataset.Dataset
	resolver *constraint.Resolver
	engine   *lookup.Engine
	logger   *zap.Logger

	selection types.Selection

	// last secondary the user picked; restored when it becomes valid again
	preferredSecondary string

	categories constraint.Options
	internets  constraint.Options
	secondary  constraint.Options
	outcome    lookup.Outcome
}

// New creates a session with an empty selection
func New(ds *dataset.Dataset, resolver *constraint.Resolver, engine *lookup.Engine, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.New()
	s := &Session{
		id:       id,
		dataset:  ds,
		resolver: resolver,
		engine:   engine,
		logger:   logger.With(zap.String("session", id.String())),
	}
	s.Reset()
	return s
}

// ID returns the session identifier used in logs
func (s *Session) ID() uuid.UUID { return s.id }

// Selection returns a copy of the current selection
func (s *Session) Selection() types.Selection { return s.selection }

// Outcome returns the most recent lookup outcome
func (s *Session) Outcome() lookup.Outcome { return s.outcome }

// Categories returns the category options
func (s *Session) Categories() constraint.Options { return s.categories }

// Internets returns the internet options for the chosen category
func (s *Session) Internets() constraint.Options { return s.internets }

// Secondaries returns the secondary options; NoSecondary is always first
func (s *Session) Secondaries() constraint.Options { return s.secondary }

// Reset clears every choice
func (s *Session) Reset() lookup.Outcome {
	s.selection = types.Selection{}
	s.preferredSecondary = ""
	s.categories = s.resolver.Categories(s.dataset)
	s.internets = emptyOptions(types.AttrInternet)
	s.secondary = noSecondaryOnly()
	return s.resolve("reset")
}

// SetCategory picks a category. Internet and secondary are cleared because
// they are only meaningful within a category.
func (s *Session) SetCategory(category string) lookup.Outcome {
	s.selection = s.selection.WithCategory(category).WithInternet("").WithSecondary("")
	s.preferredSecondary = ""
	if category == "" {
		s.internets = emptyOptions(types.AttrInternet)
	} else {
		s.internets = s.options(types.AttrInternet)
	}
	s.secondary = noSecondaryOnly()
	return s.resolve("category")
}

// SetInternet picks an internet product and refreshes secondary options
func (s *Session) SetInternet(internet string) lookup.Outcome {
	s.selection = s.selection.WithInternet(internet)
	s.refreshSecondary()
	return s.resolve("internet")
}

// SetSecondary picks a secondary; constraint.NoSecondary clears it
func (s *Session) SetSecondary(secondary string) lookup.Outcome {
	s.selection = s.selection.WithSecondary(secondary)
	s.preferredSecondary = secondary
	return s.resolve("secondary")
}

// SetOneStop toggles the one-stop flag and refreshes secondary options
func (s *Session) SetOneStop(on bool) lookup.Outcome {
	s.selection = s.selection.WithOneStop(on)
	s.refreshSecondary()
	s.refreshUpstream()
	return s.resolve("one_stop")
}

// SetExtraDevice toggles the extra device flag and refreshes secondary options
func (s *Session) SetExtraDevice(on bool) lookup.Outcome {
	s.selection = s.selection.WithExtraDevice(on)
	s.refreshSecondary()
	s.refreshUpstream()
	return s.resolve("extra_device")
}

// refreshUpstream recomputes the internet list after a flag change. The
// category list is fixed for the session. Current choices are kept even
// when no longer listed; Stale reports them.
func (s *Session) refreshUpstream() {
	if s.selection.Category != "" {
		s.internets = s.options(types.AttrInternet)
	}
}

// Stale returns the chosen attributes whose value is no longer valid
func (s *Session) Stale() []types.Attribute {
	return s.resolver.Stale(s.dataset, s.selection)
}

// refreshSecondary recomputes the secondary list and keeps the preferred
// secondary only while it is still offered
func (s *Session) refreshSecondary() {
	if s.selection.Internet == "" {
		s.secondary = noSecondaryOnly()
		s.selection = s.selection.WithSecondary("")
		return
	}
	s.secondary = s.options(types.AttrSecondary)
	if s.preferredSecondary != "" && s.secondary.Contains(s.preferredSecondary) {
		s.selection = s.selection.WithSecondary(s.preferredSecondary)
	} else {
		s.selection = s.selection.WithSecondary("")
	}
}

func (s *Session) options(attr types.Attribute) constraint.Options {
	opts, err := s.resolver.ValidOptions(s.dataset, s.selection, attr)
	if err != nil {
		s.logger.Warn("option computation failed", zap.String("attribute", attr.String()), zap.Error(err))
		return emptyOptions(attr)
	}
	return opts
}

func (s *Session) resolve(trigger string) lookup.Outcome {
	s.outcome = s.engine.Resolve(s.dataset, s.selection)
	s.logger.Debug("selection resolved",
		zap.String("trigger", trigger),
		zap.String("category", s.selection.Category),
		zap.String("internet", s.selection.Internet),
		zap.String("secondary", s.selection.Secondary),
		zap.Bool("one_stop", s.selection.OneStop),
		zap.Bool("extra_device", s.selection.ExtraDevice),
		zap.Stringer("outcome", s.outcome),
	)
	return s.outcome
}

func emptyOptions(attr types.Attribute) constraint.Options {
	return constraint.Options{Attribute: attr, Values: []string{}}
}

func noSecondaryOnly() constraint.Options {
	return constraint.Options{Attribute: types.AttrSecondary, Values: []string{constraint.NoSecondary}}
}
