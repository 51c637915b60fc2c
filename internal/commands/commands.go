// Package commands wires the schemaver CLI onto kingpin.
package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kingpin/v2"

	"github.com/zeusync/schemaver/internal/config"
	"github.com/zeusync/schemaver/internal/core/observability/log"
	"github.com/zeusync/schemaver/internal/core/schema/record"
	"github.com/zeusync/schemaver/internal/core/schema/registry"
	"github.com/zeusync/schemaver/internal/core/schema/validator"
	"github.com/zeusync/schemaver/internal/injector"
	"github.com/zeusync/schemaver/internal/recordio"
)

var ErrInvalidRecords = errors.New("one or more records failed validation")

// Command holds flag values and the components built in setup.
type Command struct {
	out io.Writer

	ConfigPath string
	LogLevel   string
	Format     string

	Files    []string
	Version  int
	Target   int
	Validate bool
	From     int
	To       int

	versionSet bool
	targetSet  bool

	app    *injector.App
	format recordio.Format
}

func New(out io.Writer) *Command {
	return &Command{out: out}
}

// Register adds all commands and global flags to app.
func (c *Command) Register(app *kingpin.Application) {
	app.Flag("config", "Path to a YAML config file.").Envar("SCHEMAVER_CONFIG").StringVar(&c.ConfigPath)
	app.Flag("log.level", "Log level, overrides the config file.").StringVar(&c.LogLevel)
	app.Flag("format", "Output format: yaml or json. Overrides the config file.").StringVar(&c.Format)
	app.PreAction(c.setup)

	validateCmd := app.Command("validate", "Validate records against their schema version.").Action(c.validate)
	validateCmd.Flag("schema-version", "Validate against this version instead of each record's tag.").IsSetByUser(&c.versionSet).IntVar(&c.Version)
	validateCmd.Arg("files", "YAML or JSON files holding a record or a list of records.").Required().ExistingFilesVar(&c.Files)

	upgradeCmd := app.Command("upgrade", "Upgrade records step by step to a target version.").Action(c.upgrade)
	upgradeCmd.Flag("to", "Target version. Defaults to the config target, then to the latest schema.").IsSetByUser(&c.targetSet).IntVar(&c.Target)
	upgradeCmd.Flag("validate", "Validate upgraded records and fail if any is invalid.").BoolVar(&c.Validate)
	upgradeCmd.Arg("files", "YAML or JSON files holding a record or a list of records.").Required().ExistingFilesVar(&c.Files)

	scriptCmd := app.Command("script", "Print the database migration script for a version pair.").Action(c.script)
	scriptCmd.Arg("from", "Source version.").Required().IntVar(&c.From)
	scriptCmd.Arg("to", "Target version.").Required().IntVar(&c.To)

	planCmd := app.Command("plan", "Show the upgrade steps between two versions.").Action(c.plan)
	planCmd.Arg("from", "Source version.").Required().IntVar(&c.From)
	planCmd.Arg("to", "Target version.").Required().IntVar(&c.To)

	app.Command("schemas", "List known schema versions.").Action(c.schemas)
	app.Command("demo", "Validate, upgrade and re-validate a sample legacy record.").Action(c.demo)
}

// Close flushes the logger built during setup. It is safe to call when no
// command ran.
func (c *Command) Close() {
	if c.app != nil {
		// stderr sync errors are expected on some platforms.
		_ = c.app.Logger.Sync()
	}
}

func (c *Command) setup(_ *kingpin.ParseContext) error {
	cfg, err := config.LoadFile(c.ConfigPath)
	if err != nil {
		return err
	}
	if c.LogLevel != "" {
		cfg.Log.Level = c.LogLevel
	}
	if c.Format != "" {
		cfg.Output.Format = c.Format
	}
	if err = cfg.Validate(); err != nil {
		return err
	}
	c.format, err = recordio.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}
	c.app, err = injector.InitializeApp(cfg)
	return err
}

func (c *Command) loadRecords() ([]record.Record, error) {
	var all []record.Record
	for _, path := range c.Files {
		recs, err := recordio.LoadFile(path)
		if err != nil {
			return nil, err
		}
		all = append(all, recs...)
	}
	c.app.Logger.Debug("records loaded", log.Int("count", len(all)), log.Strings("files", c.Files))
	return all, nil
}

func (c *Command) validate(_ *kingpin.ParseContext) error {
	recs, err := c.loadRecords()
	if err != nil {
		return err
	}
	results := make([]any, 0, len(recs))
	invalid := 0
	for _, rec := range recs {
		var res validator.Result
		if c.versionSet {
			res = c.app.Validator.ValidateVersion(rec, registry.Version(c.Version))
		} else {
			res = c.app.Validator.Validate(rec)
		}
		if !res.Valid {
			invalid++
		}
		results = append(results, res)
	}
	if err = recordio.Write(c.out, c.format, results); err != nil {
		return err
	}
	if invalid > 0 {
		return fmt.Errorf("%w: %d of %d", ErrInvalidRecords, invalid, len(recs))
	}
	return nil
}

func (c *Command) upgrade(_ *kingpin.ParseContext) error {
	recs, err := c.loadRecords()
	if err != nil {
		return err
	}
	target := c.targetVersion()
	out := make([]record.Record, 0, len(recs))
	invalid := 0
	for i, rec := range recs {
		up, err := c.app.Migrator.Upgrade(rec, target)
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		if c.Validate {
			if res := c.app.Validator.Validate(up); !res.Valid {
				invalid++
				c.app.Logger.Warn("upgraded record is invalid", log.Int("index", i), log.Error(res.Err()))
			}
		}
		out = append(out, up)
	}
	if err = recordio.Write(c.out, c.format, out); err != nil {
		return err
	}
	if invalid > 0 {
		return fmt.Errorf("%w: %d of %d", ErrInvalidRecords, invalid, len(recs))
	}
	return nil
}

func (c *Command) targetVersion() registry.Version {
	if c.targetSet {
		return registry.Version(c.Target)
	}
	if v := c.app.Config.Migration.TargetVersion; v != 0 {
		return registry.Version(v)
	}
	return c.app.Registry.Latest()
}

func (c *Command) script(_ *kingpin.ParseContext) error {
	_, err := fmt.Fprintln(c.out, c.app.Migrator.Script(registry.Version(c.From), registry.Version(c.To)))
	return err
}

func (c *Command) plan(_ *kingpin.ParseContext) error {
	return recordio.Write(c.out, c.format, c.app.Migrator.PlanMigration(registry.Version(c.From), registry.Version(c.To)))
}

type schemaSummary struct {
	Version        int               `json:"version" yaml:"version"`
	Fingerprint    string            `json:"fingerprint" yaml:"fingerprint"`
	RequiredFields []string          `json:"required_fields" yaml:"required_fields"`
	Fields         map[string]string `json:"fields" yaml:"fields"`
}

func (c *Command) schemas(_ *kingpin.ParseContext) error {
	var out []schemaSummary
	for _, v := range c.app.Registry.Versions() {
		def, _ := c.app.Registry.DefinitionFor(v)
		fields := make(map[string]string, len(def.Fields))
		for _, f := range def.Fields {
			fields[f.Name] = f.TypeName()
		}
		out = append(out, schemaSummary{
			Version:        int(v),
			Fingerprint:    fmt.Sprintf("%016x", def.Fingerprint()),
			RequiredFields: def.RequiredFields,
			Fields:         fields,
		})
	}
	return recordio.Write(c.out, c.format, out)
}

func (c *Command) demo(_ *kingpin.ParseContext) error {
	legacy := record.Record{
		record.VersionKey: 1,
		"id":              "123",
		"name":            "Juan Pérez",
		"created_at":      "2024-01-01T10:00:00",
	}

	var b strings.Builder
	res := c.app.Validator.Validate(legacy)
	fmt.Fprintf(&b, "Record valid: %t\n", res.Valid)
	if !res.Valid {
		fmt.Fprintf(&b, "Errors: %v\n", res.Errors)
	}

	upgraded, err := c.app.Migrator.Upgrade(legacy, c.app.Registry.Latest())
	if err != nil {
		return err
	}
	fmt.Fprintf(&b, "Record upgraded to version: %v\n", upgraded[record.VersionKey])

	res = c.app.Validator.Validate(upgraded)
	fmt.Fprintf(&b, "Upgraded record valid: %t\n", res.Valid)

	_, err = io.WriteString(c.out, b.String())
	return err
}
