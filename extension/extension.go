// Package extension provides the Forge extension adapter for Coinage.
//
// It implements the forge.Extension interface to integrate Coinage
// into a Forge application with automatic dependency discovery,
// DI registration, and lifecycle management.
//
// Configuration can be provided programmatically via Option functions
// or via YAML configuration files under "extensions.coinage" or "coinage" keys.
package extension

import (
	"context"
	"errors"

	"github.com/xraph/forge"
	"github.com/xraph/vessel"

	coinage "github.com/xraph/coinage"
	"github.com/xraph/coinage/store"
	"github.com/xraph/coinage/store/memory"
)

// ExtensionName is the name registered with Forge.
const ExtensionName = "coinage"

// ExtensionDescription is the human-readable description.
const ExtensionDescription = "Capped-supply fungible asset ledger engine"

// ExtensionVersion is the semantic version.
const ExtensionVersion = "0.1.0"

// Ensure Extension implements forge.Extension at compile time.
var _ forge.Extension = (*Extension)(nil)

// Extension adapts Coinage as a Forge extension.
type Extension struct {
	*forge.BaseExtension

	config     Config
	engine     *coinage.Ledger
	store      store.Store
	ledgerOpts []coinage.Option
}

// New creates a new Coinage Forge extension with the given options.
func New(opts ...Option) *Extension {
	e := &Extension{
		BaseExtension: forge.NewBaseExtension(ExtensionName, ExtensionVersion, ExtensionDescription),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Engine returns the underlying Ledger instance.
// This is nil until Register is called.
func (e *Extension) Engine() *coinage.Ledger { return e.engine }

// Register implements [forge.Extension]. It loads configuration,
// initializes the ledger engine, and registers it in the DI container.
func (e *Extension) Register(fapp forge.App) error {
	if err := e.BaseExtension.Register(fapp); err != nil {
		return err
	}

	if err := e.loadConfiguration(); err != nil {
		return err
	}

	// Use memory store if no store was provided programmatically.
	if e.store == nil {
		e.store = memory.New()
	}

	// Build ledger options from resolved config.
	opts := e.buildLedgerOpts()

	eng := coinage.New(e.store, opts...)
	e.engine = eng

	return vessel.Provide(fapp.Container(), func() (*coinage.Ledger, error) {
		return e.engine, nil
	})
}

// Start implements [forge.Extension].
func (e *Extension) Start(ctx context.Context) error {
	if e.engine == nil {
		return errors.New("coinage: extension not initialized")
	}

	if !e.config.DisableMigrate {
		if err := e.engine.Start(ctx); err != nil {
			return err
		}
	}

	e.MarkStarted()
	return nil
}

// Stop implements [forge.Extension].
func (e *Extension) Stop(_ context.Context) error {
	if e.engine != nil {
		if err := e.engine.Stop(); err != nil {
			e.MarkStopped()
			return err
		}
	}
	e.MarkStopped()
	return nil
}

// Health implements [forge.Extension].
func (e *Extension) Health(ctx context.Context) error {
	if e.store == nil {
		return errors.New("coinage: store not initialized")
	}
	return e.store.Ping(ctx)
}

// buildLedgerOpts constructs coinage.Option values from the resolved config.
func (e *Extension) buildLedgerOpts() []coinage.Option {
	opts := make([]coinage.Option, 0, len(e.ledgerOpts)+1)

	if e.config.FeeStrategy != "" {
		opts = append(opts, coinage.WithFeeStrategy(e.config.FeeStrategy))
	}

	// Append any pass-through ledger options.
	opts = append(opts, e.ledgerOpts...)

	return opts
}

// --- Config Loading (mirrors grove/shield extension pattern) ---

// loadConfiguration loads config from YAML files or programmatic sources.
func (e *Extension) loadConfiguration() error {
	programmaticConfig := e.config

	// Try loading from config file.
	fileConfig, configLoaded := e.tryLoadFromConfigFile()

	if !configLoaded {
		if programmaticConfig.RequireConfig {
			return errors.New("coinage: configuration is required but not found in config files; " +
				"ensure 'extensions.coinage' or 'coinage' key exists in your config")
		}

		// Use programmatic config merged with defaults.
		e.config = e.mergeWithDefaults(programmaticConfig)
	} else {
		// Config loaded from YAML -- merge with programmatic options.
		e.config = e.mergeConfigurations(fileConfig, programmaticConfig)
	}

	e.Logger().Debug("coinage: configuration loaded",
		forge.F("disable_migrate", e.config.DisableMigrate),
		forge.F("fee_strategy", e.config.FeeStrategy),
	)

	return nil
}

// tryLoadFromConfigFile attempts to load config from YAML files.
func (e *Extension) tryLoadFromConfigFile() (Config, bool) {
	cm := e.App().Config()
	var cfg Config

	// Try "extensions.coinage" first (namespaced pattern).
	if cm.IsSet("extensions.coinage") {
		if err := cm.Bind("extensions.coinage", &cfg); err == nil {
			e.Logger().Debug("coinage: loaded config from file",
				forge.F("key", "extensions.coinage"),
			)
			return cfg, true
		}
		e.Logger().Warn("coinage: failed to bind extensions.coinage config",
			forge.F("error", "bind failed"),
		)
	}

	// Try legacy "coinage" key.
	if cm.IsSet("coinage") {
		if err := cm.Bind("coinage", &cfg); err == nil {
			e.Logger().Debug("coinage: loaded config from file",
				forge.F("key", "coinage"),
			)
			return cfg, true
		}
		e.Logger().Warn("coinage: failed to bind coinage config",
			forge.F("error", "bind failed"),
		)
	}

	return Config{}, false
}

// mergeWithDefaults fills zero-valued fields with defaults.
func (e *Extension) mergeWithDefaults(cfg Config) Config {
	// The neutral defaults are all zero values today; kept as a seam for
	// future defaulted fields.
	return cfg
}

// mergeConfigurations merges YAML config with programmatic options.
// YAML config takes precedence for most fields; programmatic bool flags fill gaps.
func (e *Extension) mergeConfigurations(yamlConfig, programmaticConfig Config) Config {
	// Programmatic bool flags override when true.
	if programmaticConfig.DisableMigrate {
		yamlConfig.DisableMigrate = true
	}

	// String fields: YAML takes precedence.
	if yamlConfig.FeeStrategy == "" && programmaticConfig.FeeStrategy != "" {
		yamlConfig.FeeStrategy = programmaticConfig.FeeStrategy
	}

	return e.mergeWithDefaults(yamlConfig)
}
