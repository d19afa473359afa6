package cli

import (
	"bytes"

	"github.com/spf13/cobra"

	"github.com/matzehuels/scatterfield/pkg/errors"
	"github.com/matzehuels/scatterfield/pkg/pipeline"
	"github.com/matzehuels/scatterfield/pkg/scene"
)

// sceneCommand creates the multi-layer scene command.
func (c *CLI) sceneCommand() *cobra.Command {
	var (
		of       outputFlags
		planFile string
		seed     uint64
	)

	cmd := &cobra.Command{
		Use:   "scene [plan]",
		Short: "Place every layer of a scene plan",
		Long: `Place every layer of a scene plan (TOML, YAML or JSON). Without a plan the
built-in demo scene is used: windmills, skeletons, trees, rocks and zombies on
a 500×500 field.`,
		Example: `  scatterfield scene
  scatterfield scene village.toml -f json,svg -o out/village
  scatterfield scene village.yaml --seed 7 -f png -o -`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				planFile = args[0]
			}
			return c.runPipeline(cmd, pipeline.Options{PlanFile: planFile, Seed: seed}, &of)
		},
	}

	of.register(cmd, pipeline.FormatJSON)
	cmd.Flags().Uint64Var(&seed, "seed", 0, "override the plan seed")

	return cmd
}

// planCommand creates the command that prints the demo plan, as a starting
// point for custom scenes.
func (c *CLI) planCommand() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the built-in demo scene plan",
		Example: `  scatterfield plan > village.toml
  scatterfield plan --format yaml -o village.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := scene.Format(format)
			if output != "" && !cmd.Flags().Changed("format") {
				detected, err := scene.FormatFromPath(output)
				if err != nil {
					return err
				}
				f = detected
			}

			var buf bytes.Buffer
			if err := scene.Encode(&buf, scene.DefaultPlan(), f); err != nil {
				return err
			}
			if output == "" {
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if err := writeFile(output, buf.Bytes()); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printSuccess(out, "Wrote demo plan")
			printFile(out, output)
			printNextStep(out, "Place it", "scatterfield scene "+output)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", string(scene.FormatTOML), "plan format: toml, yaml, json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")

	return cmd
}

// requireArgs wraps cobra's argument errors in the package error type.
func requireArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return errors.New(errors.ErrCodeInvalidArgument, "%s takes %d argument(s), got %d", cmd.Name(), n, len(args))
		}
		return nil
	}
}
