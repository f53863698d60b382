package layout

import "fmt"

// Default dimensions in user units.
const (
	DefaultNodeWidth       = 140.0
	DefaultNodeHeight      = 45.0
	DefaultHGap            = 30.0
	DefaultVGap            = 80.0
	DefaultPartnerGap      = 8.0
	DefaultTreeMarginNodes = 2.0
	DefaultCollisionSlack  = 2.0
	DefaultMaxDepth        = 1000
)

// Config holds the node dimensions and spacing used by Calculate.
type Config struct {
	NodeWidth  float64 `toml:"node_width" json:"node_width"`
	NodeHeight float64 `toml:"node_height" json:"node_height"`
	HGap       float64 `toml:"h_gap" json:"h_gap"`             // between sibling subtrees
	VGap       float64 `toml:"v_gap" json:"v_gap"`             // between generation rows
	PartnerGap float64 `toml:"partner_gap" json:"partner_gap"` // between members of a family unit

	// TreeMarginNodes separates disconnected trees, in node widths.
	TreeMarginNodes float64 `toml:"tree_margin_nodes" json:"tree_margin_nodes"`
	// CollisionSlack is added to every push made by the collision sweep.
	CollisionSlack float64 `toml:"collision_slack" json:"collision_slack"`
	// MaxDepth bounds the recursion over descendant generations.
	MaxDepth int `toml:"max_depth" json:"max_depth"`
}

// DefaultConfig returns the standard dimensions.
func DefaultConfig() Config {
	return Config{
		NodeWidth:       DefaultNodeWidth,
		NodeHeight:      DefaultNodeHeight,
		HGap:            DefaultHGap,
		VGap:            DefaultVGap,
		PartnerGap:      DefaultPartnerGap,
		TreeMarginNodes: DefaultTreeMarginNodes,
		CollisionSlack:  DefaultCollisionSlack,
		MaxDepth:        DefaultMaxDepth,
	}
}

// Validate checks that node sizes are positive and gaps are not negative.
func (c Config) Validate() error {
	if c.NodeWidth <= 0 || c.NodeHeight <= 0 {
		return fmt.Errorf("node size must be positive, got %vx%v", c.NodeWidth, c.NodeHeight)
	}
	if c.HGap < 0 || c.VGap < 0 || c.PartnerGap < 0 || c.TreeMarginNodes < 0 || c.CollisionSlack < 0 {
		return fmt.Errorf("gaps must not be negative")
	}
	if c.MaxDepth <= 0 {
		return fmt.Errorf("max depth must be positive, got %d", c.MaxDepth)
	}
	return nil
}

// RowHeight returns the vertical distance between generation rows.
func (c Config) RowHeight() float64 { return c.NodeHeight + c.VGap }

// MinSeparation returns the smallest allowed center distance between two
// nodes in the same row.
func (c Config) MinSeparation() float64 { return c.NodeWidth + c.PartnerGap }

// unitWidth returns the width of a family unit with n members.
func (c Config) unitWidth(n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(n)*c.NodeWidth + float64(n-1)*c.PartnerGap
}
