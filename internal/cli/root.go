package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dshills/tagsum/internal/config"
	"github.com/dshills/tagsum/internal/gitdiff"
	"github.com/dshills/tagsum/internal/run"
	"github.com/dshills/tagsum/internal/summarize"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

// Exit codes
const (
	ExitSuccess      = 0
	ExitUsageError   = 2
	ExitAuthError    = 3
	ExitRuntimeError = 4
)

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

// Shared run flags
var (
	flagProject   string
	flagFromTag   string
	flagToTag     string
	flagPath      string
	flagProvider  string
	flagModel     string
	flagOutDir    string
	flagNoExclude bool
)

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flagProject, "project", "p", "", "Project name (required)")
	cmd.Flags().StringVar(&flagPath, "path", "", "Repository path (default: <repoBase>/<project>)")
	cmd.Flags().StringVar(&flagProvider, "provider", "", "LLM provider (openai, anthropic)")
	cmd.Flags().StringVar(&flagModel, "model", "", "Model name")
	cmd.Flags().StringVar(&flagOutDir, "out-dir", "", "Directory for the report files (default: current directory)")
	cmd.Flags().BoolVar(&flagNoExclude, "no-exclude", false, "Keep lock files and build artifacts in the diff")
	cmd.MarkFlagRequired("project")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagProvider != "" {
		m["provider"] = flagProvider
	}
	if flagModel != "" {
		m["model"] = flagModel
	}
	if flagOutDir != "" {
		m["outDir"] = flagOutDir
	}
	return m
}

// resolveRepoPath returns the explicit --path value, or the conventional
// location <repoBase>/<project>.
func resolveRepoPath(cfg config.Config) string {
	if flagPath != "" {
		return flagPath
	}
	return filepath.Join(cfg.RepoBase, flagProject)
}

var rootCmd = &cobra.Command{
	Use:   "tagsum",
	Short: "Summarize the changes between two git tags with an LLM",
	Long:  "Tagsum diffs two tags of a local repository, asks an LLM provider for a change summary, and writes both the raw diff and the summary to report files.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}
		params := run.Params{
			Project:  flagProject,
			FromTag:  flagFromTag,
			ToTag:    flagToTag,
			RepoPath: resolveRepoPath(cfg),
		}
		execute(cmd.Context(), params, cfg)
		return nil
	},
}

// execute builds the summarizer and drives the pipeline, mapping failures
// to exit codes. The summarizer is constructed first so a missing API key
// fails before any git subprocess is spawned.
func execute(ctx context.Context, params run.Params, cfg config.Config) {
	if ctx == nil {
		ctx = context.Background()
	}

	sum, err := summarize.New(cfg.Provider, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if summarize.IsAuthError(err) {
			exitCode = ExitAuthError
		} else {
			exitCode = ExitUsageError
		}
		return
	}

	src := run.GitSource{Opts: gitdiff.Options{NoExclude: flagNoExclude}}
	out, err := run.Run(ctx, params, cfg, src, sum, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if summarize.IsAuthError(err) {
			exitCode = ExitAuthError
		} else {
			exitCode = ExitRuntimeError
		}
		return
	}

	if out.Skipped {
		return
	}
	fmt.Fprintf(os.Stdout, "Done. Diff: %s, summary: %s\n", out.DiffPath, out.SummaryPath)
}

// Run executes the root command and returns an exit code.
func Run() int {
	config.LoadDotenv()

	rootCmd.AddCommand(commitCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	addRunFlags(rootCmd)
	rootCmd.Flags().StringVarP(&flagFromTag, "from-tag", "f", "", "Older tag (required)")
	rootCmd.Flags().StringVarP(&flagToTag, "to-tag", "t", "", "Newer tag (required)")
	rootCmd.MarkFlagRequired("from-tag")
	rootCmd.MarkFlagRequired("to-tag")

	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}

	return exitCode
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print tagsum version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "tagsum version %s\n", version)
	},
}
