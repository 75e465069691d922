package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/skelly-dev/projscout/internal/builders"
	"github.com/skelly-dev/projscout/internal/config"
	"github.com/skelly-dev/projscout/internal/logging"
	"github.com/skelly-dev/projscout/internal/probe"
	"github.com/skelly-dev/projscout/internal/project"
	"github.com/skelly-dev/projscout/internal/readme"
	"github.com/skelly-dev/projscout/internal/runner"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type appKey struct{}

// app is what every subcommand needs once config and logging are set up.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
}

func initConfig(cmd *cobra.Command) {
	_ = godotenv.Load()

	config.SetDefaults()

	cfgFile, _ := OptionalStringFlag(cmd, "config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix(config.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	_ = viper.ReadInConfig()
}

func setupApp(cmd *cobra.Command, verbose bool) error {
	initConfig(cmd)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		return err
	}
	if used := viper.ConfigFileUsed(); used != "" {
		logger.Debug("loaded config file", zap.String("path", used))
	}

	cmd.SetContext(context.WithValue(commandContext(cmd), appKey{}, &app{cfg: cfg, logger: logger}))
	return nil
}

// appFrom returns the app set up by the root command, or defaults when the
// command runs standalone.
func appFrom(cmd *cobra.Command) *app {
	if cmd != nil && cmd.Context() != nil {
		if a, ok := cmd.Context().Value(appKey{}).(*app); ok {
			return a
		}
	}
	return &app{cfg: config.Default(), logger: zap.NewNop()}
}

func commandContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}

func (a *app) sync() {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// newRegistry wires the enrichment strategies against the real filesystem.
// The returned Exec must be waited on before the process exits.
func (a *app) newRegistry() (*project.Registry, *runner.Exec) {
	exec := runner.NewExec(a.cfg.Runner.Timeout, a.logger.Named("runner"))
	prober := probe.NewOS()
	env := builders.Env{
		FS:     prober.Fs(),
		Prober: prober,
		Runner: exec,
		Logger: a.logger.Named("builders"),
		Readme: readme.Options{MaxLines: a.cfg.Readme.MaxLines},
		Bazel: builders.BazelOptions{
			Shell: a.cfg.Bazel.Shell,
			Query: a.cfg.Bazel.Query,
		},
	}
	return builders.NewDefaultRegistry(env, project.NewClassifier(prober, nil)), exec
}
