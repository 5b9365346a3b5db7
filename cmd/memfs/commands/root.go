package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/treelab/memfs/config"
	"github.com/treelab/memfs/filesystem"
	"github.com/treelab/memfs/internal/util"
	"github.com/treelab/memfs/requests"
)

var (
	cfgFile  string
	seedFile string
	verbose  int
)

var rootCmd = &cobra.Command{
	Use:   "memfs",
	Short: "In-memory hierarchical namespace with an interactive shell",
	Long: `memfs hosts a transient filesystem-like namespace in process memory.
Nothing survives exit; seed a starting tree with --seed and drive it
through the interactive shell.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Bare invocation opens the shell
		return shellCmd.RunE(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVarP(&seedFile, "seed", "s", "", "Path to seed manifest (YAML or JSON)")
	rootCmd.PersistentFlags().IntVarP(&verbose, "verbose", "v", 0,
		"Log verbosity between 1 (error) and 5 (trace); overrides the config log level")
	rootCmd.AddCommand(shellCmd, treeCmd, versionCmd)
}

// Execute runs the command tree.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// setup loads configuration, initializes logging, builds the namespace, and
// applies the seed manifest when one was given.
func setup() (*filesystem.FileSystem, *config.Config, error) {
	cfg := config.NewDefaultConfig()
	if cfgFile != "" {
		loaded, err := config.NewConfigFromFile(cfgFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	logLvl := cfg.LogLvl
	if verbose > 0 {
		v := verbose
		if v > 5 {
			v = 5
		}
		logLvls := [5]util.LogLevel{util.ErrorLevel, util.WarnLevel, util.InfoLevel, util.DebugLevel, util.TraceLevel}
		logLvl = logLvls[v-1]
	}
	util.InitializeLogger(logLvl)
	logger := util.GetLogger("main")

	fs := filesystem.NewFS(cfg)

	if seedFile != "" {
		dtos, err := requests.LoadManifestFile(seedFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load seed manifest: %w", err)
		}
		dirReqs, fileReqs, err := requests.Convert(dtos, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to convert seed manifest: %w", err)
		}

		dirAddCnt := 0
		for _, req := range dirReqs {
			if _, err := fs.AddDirNode(req); err != nil {
				logger.Debug().Err(err).Str("path", req.Path).Msg("Failed to add directory request")
				continue
			}
			dirAddCnt++
		}
		fileAddCnt := 0
		for _, req := range fileReqs {
			if _, err := fs.AddFileNode(req); err != nil {
				logger.Debug().Err(err).Str("path", req.Path).Msg("Failed to add file request")
				continue
			}
			fileAddCnt++
		}
		logger.Info().Int("directories", dirAddCnt).Int("files", fileAddCnt).Msg("Seeded namespace")
	}

	return fs, cfg, nil
}
