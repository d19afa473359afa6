package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/scatterfield/pkg/pipeline"
)

// previewCommand creates the interactive layer browser.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		seed    uint64
		noCache bool
		static  bool
	)

	cmd := &cobra.Command{
		Use:   "preview [plan]",
		Short: "Browse the layers of a scene interactively",
		Example: `  scatterfield preview village.toml
  scatterfield preview --static`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{Seed: seed}
			if len(args) == 1 {
				opts.PlanFile = args[0]
			}

			runner, err := c.newRunner(noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			res, hit, err := runner.SceneWithCacheInfo(cmd.Context(), opts)
			if err != nil {
				return err
			}
			c.Logger.Debug("preview scene", "plan", res.Plan.Name, "cached", hit)

			out := cmd.OutOrStdout()
			if static {
				printLayers(out, res)
				return nil
			}

			p := tea.NewProgram(NewLayerListModel(res),
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(out),
				tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 0, "override the plan seed")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the scene cache")
	cmd.Flags().BoolVar(&static, "static", false, "print a table instead of the interactive browser")

	return cmd
}
