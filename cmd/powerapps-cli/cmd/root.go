package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Mihails-Simvulidi/Power-Apps-CLI-Tools/internal/config"
	"github.com/Mihails-Simvulidi/Power-Apps-CLI-Tools/internal/logger"
	"github.com/Mihails-Simvulidi/Power-Apps-CLI-Tools/internal/repository/file"
	"github.com/Mihails-Simvulidi/Power-Apps-CLI-Tools/internal/service/dispatch"
	"github.com/Mihails-Simvulidi/Power-Apps-CLI-Tools/internal/service/session"
	"github.com/Mihails-Simvulidi/Power-Apps-CLI-Tools/internal/version"
)

const logLevelFlag = "log-level"

var (
	// configPath stores the path to the settings file; empty means the default file, if present.
	configPath string
	// logLevel overrides log_level from the settings file when the flag is given.
	logLevel string

	errInvalidLogLevel = errors.New("invalid log level")

	// rootCmd hands every positional argument to the dispatcher.
	rootCmd = &cobra.Command{
		Use:   "powerapps-cli <command> [arguments]",
		Short: "Export solutions and update plug-in assemblies and web resources in Dataverse.",
		Long: heredoc.Docf(`
			Command-line tools for a Microsoft Dataverse environment.

			Commands:
			  %[1]s solution path
			      Export the unmanaged variant of a solution to a local zip file.
			  %[2]s path
			      Replace a plug-in assembly, found by the file name without extension.
			  %[3]s prefix path
			      Replace a web resource, found by prefix + file name, and publish it.

			The connection string is read from the %[4]s environment variable,
			or from the env file named in the settings (default %[5]s).
			Example:
			  AuthType=ClientSecret;Url=https://contoso.crm.dynamics.com;ClientId=...;ClientSecret=...;TenantId=...

			Wrong or missing arguments print the usage and exit with status 0.`,
			dispatch.ExportUnmanagedSolution,
			dispatch.UpdatePluginAssembly,
			dispatch.UpdateWebResource,
			config.ConnectionStringVariable,
			config.DefaultEnvFile,
		),
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			return run(ctx, cmd, args)
		},
	}
)

// Execute runs the CLI and exits with non-zero status on error.
func Execute() {
	err := rootCmd.Execute()

	logger.Sync()

	if err != nil {
		os.Exit(1)
	}
}

// run loads settings, opens a lazy session and dispatches args. The session is
// closed on the way out, whether or not a connection was made. Arguments that
// name no command print the usage before any settings are read.
func run(ctx context.Context, cmd *cobra.Command, args []string) (err error) {
	if !dispatch.Matches(args) {
		return dispatch.Usage(cmd.OutOrStdout(), programName())
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed(logLevelFlag) {
		cfg.LogLevel = logLevel
	}

	level, ok := logger.ParseLogLevel(cfg.LogLevel)
	if !ok {
		return fmt.Errorf("%w: %q", errInvalidLogLevel, cfg.LogLevel)
	}

	logger.SetLevel(level)

	ctx = logger.WithName(ctx, programName())
	logger.DebugKV(ctx, "Settings loaded", "api_version", cfg.APIVersion, "timeout", cfg.Timeout, "env_file", cfg.EnvFile)

	sess := session.NewDataverse(cfg)

	defer func() {
		if closeErr := sess.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()

	dispatcher := dispatch.New(programName(), cmd.OutOrStdout(), sess, file.NewFileRepository())

	return dispatcher.Dispatch(ctx, args)
}

// programName is the executable's base name, as shown in usage lines.
func programName() string {
	return filepath.Base(os.Args[0])
}

// flagErrorUsage treats an unknown or malformed flag like any other bad input.
func flagErrorUsage(cmd *cobra.Command, err error) error {
	logger.DebugKV(cmd.Context(), "Flag error", "error", err)

	return dispatch.Usage(cmd.OutOrStdout(), programName())
}

// normalizeFlagName lets --log_level and --log-level name the same flag.
func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.SetGlobalNormalizationFunc(normalizeFlagName)
	rootCmd.SetFlagErrorFunc(flagErrorUsage)

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"path to settings file (default "+config.DefaultConfigFilename+" if it exists)")
	rootCmd.PersistentFlags().StringVar(&logLevel, logLevelFlag, config.DefaultLogLevel,
		"log level: debug, info, warn, error")

	version.AttachCobraVersionCommand(rootCmd)
}
