// Package migrator upgrades records one schema version at a time and hands
// out the database scripts matching each version delta.
package migrator

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/zeusync/schemaver/internal/core/observability/log"
	"github.com/zeusync/schemaver/internal/core/schema/record"
	"github.com/zeusync/schemaver/internal/core/schema/registry"
)

// Migrator upgrades records along the chain of single-version steps.
type Migrator struct {
	registry *registry.Registry
	logger   log.Log
}

// NewMigrator creates a new Migrator.
func NewMigrator(reg *registry.Registry, logger log.Log) *Migrator {
	return &Migrator{
		registry: reg,
		logger:   logger.With(log.String("component", "migrator")),
	}
}

// Upgrade returns a copy of rec advanced to target, one step per version.
// rec itself is never modified.
//
// A target at or below the record's current version is a no-op: the copy is
// returned as is (an untagged record gets its default version stamped) and
// nothing is downgraded. Versions without a defined step pass fields through
// untouched but still get their version stamped.
func (m *Migrator) Upgrade(rec record.Record, target registry.Version) (record.Record, error) {
	current, err := rec.Version()
	if err != nil {
		return nil, fmt.Errorf("upgrade to %d: %w", target, err)
	}

	out := rec.Clone()
	if current >= target {
		if !out.Has(record.VersionKey) {
			out.SetVersion(current)
		}
		return out, nil
	}

	logger := m.logger.With(
		log.String("run_id", uuid.NewString()),
		log.Int("from", int(current)),
		log.Int("target", int(target)),
	)
	for current < target {
		if s, defined := steps[current]; defined {
			out = s.apply(out.Clone())
			logger.Debug("applied upgrade step", log.Int("step_from", int(current)))
			current++
			continue
		}
		// Runs of undefined steps are identities, so skip to the next
		// defined step (or the target) in one hop.
		next := nextDefinedStep(current, target)
		logger.Warn("no upgrade step defined, passing fields through",
			log.Int("step_from", int(current)),
			log.Int("step_to", int(next)),
		)
		current = next
	}
	out.SetVersion(current)

	if def, ok := m.registry.DefinitionFor(current); ok {
		logger.Debug("record upgraded", log.Uint64("fingerprint", def.Fingerprint()))
	} else {
		logger.Warn("record upgraded past the latest known schema", log.Int("latest", int(m.registry.Latest())))
	}
	return out, nil
}

// nextDefinedStep returns the lowest version in (from, target) with a step,
// or target when there is none.
func nextDefinedStep(from, target registry.Version) registry.Version {
	next := target
	for v := range steps {
		if v > from && v < next {
			next = v
		}
	}
	return next
}

// Script returns the database migration script for exactly from → to. Only
// adjacent pairs with a defined step have one; any other pair gets a comment
// saying so.
func (m *Migrator) Script(from, to registry.Version) string {
	if to == from+1 {
		if s, ok := steps[from]; ok {
			return s.script
		}
	}
	return fmt.Sprintf("-- No migration script available for %d → %d", int(from), int(to))
}

// Step is one single-version hop of a Plan.
type Step struct {
	From    registry.Version `json:"from" yaml:"from"`
	To      registry.Version `json:"to" yaml:"to"`
	Defined bool             `json:"defined" yaml:"defined"`
	Script  string           `json:"script,omitempty" yaml:"script,omitempty"`
}

// Plan lists the steps Upgrade would walk between two versions.
type Plan struct {
	From  registry.Version `json:"from" yaml:"from"`
	To    registry.Version `json:"to" yaml:"to"`
	Steps []Step           `json:"steps" yaml:"steps"`
}

// PlanMigration creates a migration plan from one version to another. The
// plan is empty when to is not above from.
func (m *Migrator) PlanMigration(from, to registry.Version) Plan {
	plan := Plan{From: from, To: to, Steps: []Step{}}
	for v := from; v < to; v++ {
		s, defined := steps[v]
		plan.Steps = append(plan.Steps, Step{
			From:    v,
			To:      v + 1,
			Defined: defined,
			Script:  s.script,
		})
	}
	return plan
}
