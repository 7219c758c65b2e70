package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/saleboard/saleboard/internal/buildinfo"
	"github.com/saleboard/saleboard/internal/config"
	"github.com/saleboard/saleboard/internal/logger"
)

// app is the state shared by subcommands once flags are parsed.
type app struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg *config.Config
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "saleboard",
		Short:   "Map sales sheets to dashboard fields",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.configPath, "config", config.FileName, "config file (missing means defaults)")
	pf.StringVar(&a.logLevel, "log-level", "", "log level, overrides log.level")
	pf.StringVar(&a.logFormat, "log-format", "", "log format console|json, overrides log.format")

	rootCmd.AddCommand(
		newInitCommand(),
		newColumnsCommand(),
		newMapCommand(a),
		newReportCommand(a),
		newImportCommand(a),
	)

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	path := a.configPath
	// import reads the project's own config unless told otherwise.
	if repo := cmd.Flags().Lookup("repo"); repo != nil && !cmd.Flags().Changed("config") {
		path = filepath.Join(repo.Value.String(), config.FileName)
	}

	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}

	log, err := logger.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	a.cfg = cfg
	cmd.SetContext(logger.WithContext(cmd.Context(), log))
	log.Debug().Str("config", path).Msg("config loaded")
	return nil
}
