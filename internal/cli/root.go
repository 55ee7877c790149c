// Package cli implements the units command line: convert values, list the
// units of a schema and describe how a unit decomposes.
package cli

import (
	"errors"
	"strings"

	"github.com/GriffinCanCode/AgentOS/units/internal/catalog"
	"github.com/GriffinCanCode/AgentOS/units/internal/engine"
	"github.com/GriffinCanCode/AgentOS/units/internal/infrastructure/config"
	"github.com/GriffinCanCode/AgentOS/units/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/units/internal/schema"
	"github.com/spf13/cobra"
)

// EngineFactory creates the engine a command runs against
type EngineFactory func() (*engine.Engine, error)

type app struct {
	newEngine EngineFactory
	engine    *engine.Engine
	jsonOut   bool
}

// NewRootCmd returns the root command backed by the standard catalog and
// environment configuration.
func NewRootCmd() *cobra.Command {
	return newRootCmd(defaultEngine)
}

func newRootCmd(factory EngineFactory) *cobra.Command {
	a := &app{newEngine: factory}

	root := &cobra.Command{
		Use:           "units",
		Short:         "Convert values between units of measure",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			e, err := a.newEngine()
			if err != nil {
				return err
			}
			a.engine = e
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return a.close()
		},
	}
	root.PersistentFlags().BoolVar(&a.jsonOut, "json", false, "output as JSON")

	root.AddCommand(a.convertCmd(), a.listCmd(), a.describeCmd())
	return root
}

func (a *app) close() error {
	if a.engine == nil {
		return nil
	}
	err := a.engine.Close()
	a.engine = nil
	return err
}

// defaultEngine logs to stderr so command output stays clean
func defaultEngine() (*engine.Engine, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.Logging.Level
	logCfg.Development = cfg.Logging.Development
	logCfg.OutputPaths = []string{"stderr"}
	logger, err := logging.New(logCfg)
	if err != nil {
		return nil, err
	}

	return engine.New(cfg, nil, engine.WithLogger(logger))
}

// parseKey accepts "Schema.Name", "Schema:Name" or a bare catalog unit name
func parseKey(s string) (schema.ItemKey, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return schema.ItemKey{}, errors.New("empty unit name")
	}
	if strings.ContainsAny(s, ".:") {
		return schema.ParseItemKey(s)
	}
	return catalog.Key(s), nil
}
