package app

import (
	"context"
	"time"

	"github.com/codedjinn/djinn/internal/application/ask"
	"github.com/codedjinn/djinn/internal/application/run"
	"github.com/codedjinn/djinn/internal/domain"
	"github.com/codedjinn/djinn/internal/infrastructure/ai"
	"github.com/codedjinn/djinn/internal/infrastructure/config"
	"github.com/codedjinn/djinn/internal/infrastructure/envinfo"
	"github.com/codedjinn/djinn/internal/infrastructure/executor"
	"github.com/codedjinn/djinn/internal/infrastructure/history"
	"github.com/codedjinn/djinn/internal/infrastructure/policy"
	"github.com/codedjinn/djinn/internal/infrastructure/session"
	"github.com/codedjinn/djinn/internal/pkg/logger"
	"github.com/codedjinn/djinn/internal/ports"
)

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config       domain.Config
	ConfigLoader *config.FileLoader
	RunService   *run.Service
	AskService   *ask.Service
	Sessions     ports.SessionStore
	History      ports.HistoryStore
	Logger       ports.Logger

	factory *ai.Factory
}

// BuildContainer constructs the dependency graph. Model and policy
// overrides from flags are applied afterwards via Generator and Policy.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.NewStd(verbose)
	factory := ai.NewFactory(ai.NewClientCache())
	sessions := session.NewFileStore(cfg.Session.Dir)
	historyStore := history.NewSQLiteStore("")
	collector := envinfo.NewCollector()

	container := &Container{
		Config:       cfg,
		ConfigLoader: cfgLoader,
		Sessions:     sessions,
		History:      historyStore,
		Logger:       log,
		factory:      factory,
	}

	generator, err := container.Generator("")
	if err != nil {
		return nil, err
	}
	assessor, err := container.Policy("")
	if err != nil {
		return nil, err
	}

	container.RunService = &run.Service{
		Generator: generator,
		Policy:    assessor,
		Executor:  executor.NewLocalShell(shellFromConfig(cfg)),
		Sessions:  sessions,
		History:   historyStore,
		Env:       collector,
		Logger:    log,
	}
	container.AskService = &ask.Service{
		Generator: generator,
		Sessions:  sessions,
		Env:       collector,
		Logger:    log,
	}
	return container, nil
}

// Generator resolves a command generator for the named model, or the
// configured default when name is empty.
func (c *Container) Generator(model string) (ports.CommandGenerator, error) {
	def, err := config.PickModel(c.Config, model)
	if err != nil {
		return nil, err
	}
	return c.factory.ForModel(def)
}

// Policy builds a policy engine for the named ruleset (default from config),
// extended by the user's overlay file when one exists.
func (c *Container) Policy(name string) (ports.PolicyAssessor, error) {
	if name == "" {
		name = c.Config.Policy.Name
	}
	if name == "" {
		name = policy.DefaultName
	}
	overlay, err := policy.LoadOverlay(c.Config.Policy.OverlayFile)
	if err != nil {
		return nil, err
	}
	return policy.NewWithOverlay(name, overlay)
}

// DefaultTimeout is the execution deadline from config.
func (c *Container) DefaultTimeout() time.Duration {
	if c.Config.Execution.TimeoutSeconds > 0 {
		return time.Duration(c.Config.Execution.TimeoutSeconds) * time.Second
	}
	return executor.DefaultTimeout
}

func shellFromConfig(cfg domain.Config) string {
	if cfg.Execution.Shell == "" || cfg.Execution.Shell == "auto" {
		return ""
	}
	return cfg.Execution.Shell
}
