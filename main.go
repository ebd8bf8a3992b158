// Package main provides the sd_chinfusor speech-dispatcher output module.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/RastislavKish/Chinfusor/internal/config"
	"github.com/RastislavKish/Chinfusor/internal/engine"
	"github.com/RastislavKish/Chinfusor/internal/orchestrator"
	"github.com/RastislavKish/Chinfusor/internal/protocol"
	"github.com/RastislavKish/Chinfusor/internal/watcher"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configDir string

	rootCmd = &cobra.Command{
		Use:   "sd_chinfusor [MODULE_CONFIG]",
		Short: "Speak mixed-alphabet text through several speech-dispatcher modules",
		Long: paragraph(
			fmt.Sprintf("\nA speech-dispatcher output module that %s and hands every run to the module configured for its alphabet.",
				keyword("splits text by alphabet")),
		),
		Example:       paragraph("AddModule \"chinfusor\" \"sd_chinfusor\" \"\""),
		SilenceErrors: false,
		SilenceUsage:  true,
		Args:          cobra.MaximumNArgs(1),
		RunE:          execute,
	}
)

func resolvePaths() (config.Paths, error) {
	if configDir != "" {
		return config.NewPaths(configDir)
	}
	return config.DefaultPaths()
}

// loadConfig reads the alphabet table and settings, keeping the built-in
// values for anything missing.
func loadConfig(paths config.Paths) *config.Config {
	cfg := config.New()
	if err := cfg.LoadAlphabetsFile(paths.Alphabets()); err != nil {
		log.Debug("Using the default alphabet table", "err", err)
	}
	if err := cfg.LoadSettingsFile(paths.Settings()); err != nil {
		log.Debug("Using the default settings", "err", err)
	}
	return cfg
}

func execute(cmd *cobra.Command, args []string) error {
	opts, err := config.LoadOptions(viper.GetViper())
	if err != nil {
		return err
	}
	if opts.Debug {
		log.SetLevel(log.DebugLevel)
	}

	paths, err := resolvePaths()
	if err != nil {
		return err
	}
	if len(args) == 1 {
		log.Debug("Ignoring module configuration passed by the host", "path", args[0])
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		log.Warn("sd_chinfusor speaks the speech-dispatcher module protocol on stdin; it is normally started by speech-dispatcher")
	}

	cfg := loadConfig(paths)
	for _, e := range cfg.Engines {
		if e.Sandboxed && !opts.SandboxAvailable() {
			log.Warn("Sandbox command not found", "engine", e.Name, "command", opts.SandboxCommand)
		}
	}

	return run(cmd.Context(), cfg, paths, opts, os.Stdin, os.Stdout)
}

// run serves the module protocol on in and out until the host quits.
func run(ctx context.Context, cfg *config.Config, paths config.Paths, opts config.Options, in io.Reader, out io.Writer) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	readers := engine.NewReaderPool(opts.ReaderPoolSize)
	defer readers.Close()

	launcher := engine.Launcher{SandboxCommand: opts.SandboxCommand}
	build := func(engines []config.SpeechEngineConfiguration) (orchestrator.Engines, error) {
		p, err := engine.NewPool(engines, launcher, readers)
		if err != nil {
			return nil, err
		}
		return p, nil
	}

	host := protocol.NewWriter(out)
	orch, err := orchestrator.New(cfg, build, host)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	watchCtx, cancelWatch := context.WithCancel(ctx)
	defer cancelWatch()

	// The parser blocks on the host input, which only ends when the host
	// closes it, so it is left out of the group.
	cmds := make(chan protocol.Command)
	parser := protocol.NewParser(in, host, cfg.Fallback().Language)
	go func() {
		if err := parser.Run(ctx, cmds); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("Host input failed", "err", err)
		}
	}()

	var changes chan watcher.Change
	if opts.Watch {
		w, err := watcher.New(paths.Dir)
		if err != nil {
			log.Warn("Configuration changes will not be picked up", "err", err)
		} else {
			defer w.Close() //nolint:errcheck
			changes = make(chan watcher.Change, 8)
			g.Go(func() error {
				return w.Run(watchCtx, changes)
			})
		}
	}

	g.Go(func() error {
		defer cancelWatch()
		return orch.Run(ctx, cmds, changes)
	})

	return g.Wait()
}

func main() {
	closer, err := setupLog()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		_ = closer()
		os.Exit(1)
	}
	_ = closer()
}

func init() {
	cobra.OnInitialize(tryLoadConfigFromDefaultPlaces)
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.config/chinfusor)")
	rootCmd.PersistentFlags().Bool("debug", false, "log at debug level")
	rootCmd.Flags().Int("reader-pool-size", config.DefaultOptions().ReaderPoolSize, "number of engine output readers")
	rootCmd.Flags().String("sandbox-command", config.DefaultOptions().SandboxCommand, "wrapper for sandboxed engines")
	rootCmd.Flags().Bool("watch", config.DefaultOptions().Watch, "reload the configuration when it changes")

	// Config bindings
	_ = viper.BindPFlag(config.KeyDebug, rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag(config.KeyReaderPoolSize, rootCmd.Flags().Lookup("reader-pool-size"))
	_ = viper.BindPFlag(config.KeySandboxCommand, rootCmd.Flags().Lookup("sandbox-command"))
	_ = viper.BindPFlag(config.KeyWatch, rootCmd.Flags().Lookup("watch"))

	config.SetDefaults(viper.GetViper())

	rootCmd.AddCommand(configCmd, segmentCmd, manCmd)
}

func tryLoadConfigFromDefaultPlaces() {
	paths, err := resolvePaths()
	if err != nil {
		log.Warn("Could not find the configuration directory", "err", err)
		return
	}

	viper.AddConfigPath(paths.Dir)
	viper.SetConfigName("sd_chinfusor")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("chinfusor")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", used)
	}
}
