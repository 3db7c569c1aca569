package layout

// =============================================================================
// Types
// =============================================================================

// Node is one unit to be positioned. Zero width or height falls back to the
// default box size.
type Node struct {
	ID string  `json:"id" bson:"id"`
	W  float64 `json:"w,omitempty" bson:"w,omitempty"`
	H  float64 `json:"h,omitempty" bson:"h,omitempty"`
}

// Edge is one directed unit link.
type Edge struct {
	Source string `json:"source" bson:"source"`
	Target string `json:"target" bson:"target"`
}

// Point is a computed top-left position.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Options controls box sizing and spacing. The zero value uses defaults.
type Options struct {
	NodeWidth  float64 `json:"node_width,omitempty" bson:"node_width,omitempty"`
	NodeHeight float64 `json:"node_height,omitempty" bson:"node_height,omitempty"`
	HPadding   float64 `json:"h_padding,omitempty" bson:"h_padding,omitempty"`
	VPadding   float64 `json:"v_padding,omitempty" bson:"v_padding,omitempty"`
}

// Default box size and spacing, in diagram units.
const (
	DefaultNodeWidth  = 220.0
	DefaultNodeHeight = 120.0
	DefaultHPadding   = 140.0
	DefaultVPadding   = 60.0
)

func (o Options) nodeWidth() float64 {
	if o.NodeWidth > 0 {
		return o.NodeWidth
	}
	return DefaultNodeWidth
}

func (o Options) nodeHeight() float64 {
	if o.NodeHeight > 0 {
		return o.NodeHeight
	}
	return DefaultNodeHeight
}

func (o Options) hPadding() float64 {
	if o.HPadding > 0 {
		return o.HPadding
	}
	return DefaultHPadding
}

func (o Options) vPadding() float64 {
	if o.VPadding > 0 {
		return o.VPadding
	}
	return DefaultVPadding
}

// =============================================================================
// Layout
// =============================================================================

// Compute lays out the nodes and returns a position per node id.
//
// Layers run left to right. Within a layer, nodes stack top to bottom
// separated by the vertical padding, each centered horizontally inside the
// layer's widest box, with the whole column centered around y = 0. The
// horizontal cursor then advances by the layer width plus the horizontal
// padding.
func Compute(nodes []Node, edges []Edge, opts Options) map[string]Point {
	byID := make(map[string]Node, len(nodes))
	ids := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if _, dup := byID[n.ID]; dup {
			continue
		}
		byID[n.ID] = n
		ids = append(ids, n.ID)
	}

	width := func(id string) float64 {
		if w := byID[id].W; w > 0 {
			return w
		}
		return opts.nodeWidth()
	}
	height := func(id string) float64 {
		if h := byID[id].H; h > 0 {
			return h
		}
		return opts.nodeHeight()
	}

	positions := make(map[string]Point, len(ids))
	x := 0.0
	for _, layer := range Layers(ids, edges) {
		maxW := 0.0
		totalH := 0.0
		for i, id := range layer {
			if w := width(id); w > maxW {
				maxW = w
			}
			if i > 0 {
				totalH += opts.vPadding()
			}
			totalH += height(id)
		}

		y := -totalH / 2
		for _, id := range layer {
			positions[id] = Point{
				X: x + (maxW-width(id))/2,
				Y: y,
			}
			y += height(id) + opts.vPadding()
		}

		x += maxW + opts.hPadding()
	}

	return positions
}
