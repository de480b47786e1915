package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/StinkyLord/build-info-recorder/internal/config"
	"github.com/StinkyLord/build-info-recorder/internal/events"
	"github.com/StinkyLord/build-info-recorder/internal/metrics"
	"github.com/StinkyLord/build-info-recorder/internal/recorder"
)

const toolVersion = "1.0.0"

var (
	flagEvents          []string
	flagDependencyTree  []string
	flagProperties      []string
	flagEnvFiles        []string
	flagWorkingDir      string
	flagBuildID         string
	flagVerbose         bool
	flagMetricsTextfile string
)

var rootCmd = &cobra.Command{
	Use:   "build-info-recorder",
	Short: "Build dependency recorder",
	Long: `build-info-recorder records the dependency graph resolved during a Maven
build and writes two documents:
  • build-info.json            — the project artifact and its deduplicated dependencies
  • target/<artifactId>_bdio.json — the full dependency tree as a BDIO bill of materials`,
	SilenceUsage: true,
}

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Replay recorded build events and write the build documents",
	Long: `Replay build events through a recorder and write build-info.json and the
BDIO document when the replay completes.

Events come from replay files (YAML or JSON) and/or the text output of
'mvn dependency:tree'. Files are replayed in the order given; the last project
and the last dependency resolution observed win.

Examples:
  build-info-recorder record --events events.yaml --working-dir /path/to/project
  build-info-recorder record --dependency-tree tree.txt -D BuildId=42
  build-info-recorder record --events events.json --metrics-textfile recorder.prom`,
	RunE: runRecord,
}

func init() {
	recordCmd.Flags().StringArrayVarP(&flagEvents, "events", "e", nil, "Replay file with build events (YAML or JSON); repeatable")
	recordCmd.Flags().StringArrayVarP(&flagDependencyTree, "dependency-tree", "t", nil,
		"Text output of 'mvn dependency:tree' to replay; repeatable")
	recordCmd.Flags().StringArrayVarP(&flagProperties, "define", "D", nil, "User property key=value; overrides system properties")
	recordCmd.Flags().StringArrayVar(&flagEnvFiles, "env-file", nil, "Load system properties from a .env file (default ./.env if present)")
	recordCmd.Flags().StringVarP(&flagWorkingDir, "working-dir", "w", "", "Working directory receiving the documents (property workingDirectory)")
	recordCmd.Flags().StringVar(&flagBuildID, "build-id", "", "Build identifier (property BuildId)")
	recordCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	recordCmd.Flags().StringVar(&flagMetricsTextfile, "metrics-textfile", "", "Write prometheus metrics in text format to this file")

	rootCmd.AddCommand(recordCmd)
	rootCmd.Version = toolVersion
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.DisableStacktrace = true
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	return cfg.Build()
}

func runRecord(cmd *cobra.Command, args []string) error {
	if len(flagEvents) == 0 && len(flagDependencyTree) == 0 {
		return fmt.Errorf("nothing to record: pass --events or --dependency-tree")
	}

	log, err := newLogger(flagVerbose)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	user, err := config.ParseProperties(flagProperties)
	if err != nil {
		return err
	}
	if flagWorkingDir != "" {
		user[config.PropertyWorkingDirectory] = flagWorkingDir
	}
	if flagBuildID != "" {
		user[config.PropertyBuildID] = flagBuildID
	}
	system, err := config.SystemProperties(flagEnvFiles...)
	if err != nil {
		return err
	}

	log.Info("build-info-recorder", zap.String("version", toolVersion))
	cfg := config.Discover(user, system, log)

	m := metrics.New()
	rec := recorder.New(cfg, log, m)

	for _, path := range flagEvents {
		if err := replayFile(rec, path, events.Load); err != nil {
			return err
		}
	}
	for _, path := range flagDependencyTree {
		if err := replayFile(rec, path, events.ParseDependencyTree); err != nil {
			return err
		}
	}

	paths, err := rec.Close()
	if err != nil {
		return fmt.Errorf("record failed: %w", err)
	}

	if flagMetricsTextfile != "" {
		if err := m.WriteTextfile(flagMetricsTextfile); err != nil {
			return err
		}
	}

	fmt.Fprintf(os.Stderr, "Build info written to: %s\n", paths.BuildInfo)
	fmt.Fprintf(os.Stderr, "BOM written to:        %s\n", paths.Bom)
	return nil
}
