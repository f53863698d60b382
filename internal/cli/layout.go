package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kintree/pkg/graph"
	"github.com/matzehuels/kintree/pkg/pipeline"
)

// layoutCommand creates the layout command for computing a scene.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
		focus   string
	)

	cmd := &cobra.Command{
		Use:   "layout [graph]",
		Short: "Lay out a family graph around a focus person",
		Long: `Lay out a family graph around a focus person.

The layout command reads a graph file (.json, .toml, .yaml or .yml), places
every person relative to the focus, classifies their relationship to the
focus and writes a scene JSON file with positions, labels and colors.

Use -o - to write the scene to stdout.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{
				Focus:   focus,
				Layout:  c.Config.Layout,
				Refresh: refresh,
				Logger:  c.Logger,
			}
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&focus, "focus", "f", "", "person to lay out around (required)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.scene.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when a cached scene exists")
	_ = cmd.MarkFlagRequired("focus")

	return cmd
}

// runLayout loads the graph, computes the scene, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	g, err := runner.Load(ctx, input)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Laying out %d people...", g.PersonCount()))
	spinner.Start()

	result, err := runner.Execute(ctx, g, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if output == "-" {
		data, err := graph.MarshalScene(result.Scene)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".scene.json"
	}

	if err := graph.WriteSceneFile(result.Scene, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	if result.Scene.Status != "ok" {
		printWarning("Layout %s: only the focus was placed", result.Scene.Status)
	} else {
		printSuccess("Layout complete")
	}
	printFile(outputPath)
	printStats(result.Stats.People, result.Stats.Related, result.CacheHit)
	printNewline()
	printNextStep("Relationships", fmt.Sprintf("%s classify %s --focus %s", appName, input, opts.Focus))

	return nil
}
