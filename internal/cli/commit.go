package cli

import (
	"github.com/dshills/tagsum/internal/config"
	"github.com/dshills/tagsum/internal/run"
	"github.com/spf13/cobra"
)

var commitCmd = &cobra.Command{
	Use:   "commit <sha>",
	Short: "Summarize the changes of a single commit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}
		params := run.Params{
			Project:  flagProject,
			Commit:   args[0],
			RepoPath: resolveRepoPath(cfg),
		}
		execute(cmd.Context(), params, cfg)
		return nil
	},
}

func init() {
	addRunFlags(commitCmd)
}
