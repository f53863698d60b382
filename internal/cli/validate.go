package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kintree/pkg/core/family"
)

// validateCommand creates the validate command for checking graph files.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [graph]",
		Short: "Check a family graph file",
		Long: `Check a family graph file.

Validation fails when a father or mother reference names a missing person,
a partner edge has no reverse, a child edge disagrees with the references,
or someone is their own ancestor.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(cmd.Context(), args[0])
		},
	}
}

func (c *CLI) runValidate(ctx context.Context, input string) error {
	runner, err := c.newRunner(true)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	g, err := runner.Load(ctx, input)
	if err != nil {
		printError("%s is invalid", input)
		return err
	}
	prog.done("validated " + input)

	s := summarize(g)
	printSuccess("%s is valid", input)
	printKeyValue("People", fmt.Sprint(s.people))
	printKeyValue("Partners", fmt.Sprint(s.partnerPairs))
	printKeyValue("Children", fmt.Sprint(s.childEdges))
	printKeyValue("Roots", fmt.Sprint(s.roots))
	return nil
}

type graphSummary struct {
	people       int
	partnerPairs int
	childEdges   int
	roots        int // people with no recorded parents
}

func summarize(g *family.Graph) graphSummary {
	s := graphSummary{people: g.PersonCount()}
	for _, e := range g.Edges() {
		switch e.Kind {
		case family.EdgeChild:
			s.childEdges++
		case family.EdgePartner:
			if e.From < e.To {
				s.partnerPairs++
			}
		}
	}
	for _, p := range g.People() {
		if !p.HasParents() {
			s.roots++
		}
	}
	return s
}
