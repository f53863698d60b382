package cli

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/kintree/pkg/core/kinship"
	"github.com/matzehuels/kintree/pkg/core/palette"
	kerrors "github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/graph"
	"github.com/matzehuels/kintree/pkg/pipeline"
)

// classifyCommand creates the classify command for listing relationships.
func (c *CLI) classifyCommand() *cobra.Command {
	var (
		focus   string
		person  string
		all     bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "classify [graph]",
		Short: "Show how people are related to a focus person",
		Long: `Show how people are related to a focus person.

Without --person, prints a table of everyone related to the focus, ordered
from the oldest generation down, with the fill color each person gets in a
scene. With --person, prints the single relationship in detail.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if person != "" {
				return c.runClassifyPerson(cmd.Context(), args[0], focus, person)
			}
			return c.runClassifyAll(cmd.Context(), args[0], focus, all, noCache)
		},
	}

	cmd.Flags().StringVarP(&focus, "focus", "f", "", "person relationships are relative to (required)")
	cmd.Flags().StringVarP(&person, "person", "p", "", "classify a single person")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "include unrelated people")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	_ = cmd.MarkFlagRequired("focus")

	return cmd
}

// runClassifyAll prints the relationship table from the pipeline's scene.
func (c *CLI) runClassifyAll(ctx context.Context, input, focus string, all, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	g, err := runner.Load(ctx, input)
	if err != nil {
		return err
	}
	result, err := runner.Execute(ctx, g, pipeline.Options{
		Focus:  focus,
		Layout: c.Config.Layout,
		Logger: c.Logger,
	})
	if err != nil {
		return err
	}

	nodes := relatedNodes(result.Scene, all)
	fmt.Println(StyleTitle.Render("Relationships to " + focus))
	fmt.Println(relationshipTable(nodes).Render())
	printStats(result.Stats.People, result.Stats.Related, result.CacheHit)
	return nil
}

// relatedNodes returns the scene's nodes ordered by generation, degree and
// ID, dropping unrelated people unless all is set.
func relatedNodes(s graph.Scene, all bool) []graph.SceneNode {
	nodes := make([]graph.SceneNode, 0, len(s.Nodes))
	for _, n := range s.Nodes {
		if all || n.Degree != kinship.Unrelated {
			nodes = append(nodes, n)
		}
	}
	slices.SortFunc(nodes, func(a, b graph.SceneNode) int {
		return cmp.Or(
			cmp.Compare(a.Generation, b.Generation),
			cmp.Compare(a.Degree, b.Degree),
			cmp.Compare(a.ID, b.ID),
		)
	})
	return nodes
}

// relationshipTable renders nodes with a swatch column painted in each
// node's fill color.
func relationshipTable(nodes []graph.SceneNode) *table.Table {
	rows := make([][]string, len(nodes))
	for i, n := range nodes {
		gen, degree := strconv.Itoa(n.Generation), strconv.Itoa(n.Degree)
		if n.Degree == kinship.Unrelated {
			gen, degree = "-", "-"
		}
		rows[i] = []string{"  ", n.Label, n.Relation, n.Category, gen, degree}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cell := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Person", "Relationship", "Category", "Gen", "Degree").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			if row < 0 || row >= len(nodes) {
				return cell
			}
			n := nodes[row]
			switch col {
			case 0:
				return cell.Background(lipgloss.Color(n.Fill))
			case 1:
				if n.Category == string(kinship.Self) {
					return cell.Foreground(colorCyan).Bold(true)
				}
				return cell.Foreground(colorWhite)
			case 2:
				return cell.Foreground(lipgloss.Color(n.Border))
			default:
				return cell.Foreground(colorGray)
			}
		})
}

// runClassifyPerson prints one relationship in detail.
func (c *CLI) runClassifyPerson(ctx context.Context, input, focus, person string) error {
	runner, err := c.newRunner(true)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	g, err := runner.Load(ctx, input)
	if err != nil {
		return err
	}
	for _, id := range []string{focus, person} {
		if !g.Has(id) {
			return kerrors.New(kerrors.ErrCodePersonNotFound, "person %q is not in the graph", id)
		}
	}

	classifier := kinship.New(g)
	rel := classifier.Classify(focus, person)
	style := palette.Node(rel)

	label := rel.Label
	if role, ok := classifier.Parent(focus, person); ok {
		label = fmt.Sprintf("%s (%s)", label, role)
	}

	fmt.Println(swatch(style.Fill) + " " + StyleTitle.Render(person) + StyleDim.Render(" is the ") +
		StyleHighlight.Render(label) + StyleDim.Render(" of ") + StyleValue.Render(focus))
	printNewline()
	printKeyValue("Category", string(rel.Category))
	if rel.Related() {
		printKeyValue("Generation", strconv.Itoa(rel.Generation))
		printKeyValue("Degree", strconv.Itoa(rel.Degree))
	}
	printKeyValue("Fill", style.Fill)
	printKeyValue("Border", style.Border)
	return nil
}
