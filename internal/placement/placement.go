// Package placement computes where a panel is drawn. Every function here is
// pure: the same anchor, geometry and viewport always give the same result.
package placement

import "math"

// Rect is a placed panel in viewport units.
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Right() int  { return r.X + r.W }
func (r Rect) Bottom() int { return r.Y + r.H }

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Geometry holds the fixed panel dimensions.
type Geometry struct {
	PanelWidth int `toml:"panel_width"`
	RowHeight  int `toml:"row_height"`
	Padding    int `toml:"padding"`
	MaxHeight  int `toml:"max_height"`
	Margin     int `toml:"margin"`
	Gutter     int `toml:"gutter"`
}

// DefaultGeometry is measured in terminal cells; the padding is the border.
func DefaultGeometry() Geometry {
	return Geometry{
		PanelWidth: 24,
		RowHeight:  1,
		Padding:    2,
		MaxHeight:  20,
		Margin:     1,
		Gutter:     0,
	}
}

// PixelGeometry matches the dimensions of the browser rendition of the menu.
func PixelGeometry() Geometry {
	return Geometry{
		PanelWidth: 220,
		RowHeight:  36,
		Padding:    8,
		MaxHeight:  450,
		Margin:     10,
		Gutter:     5,
	}
}

// Scaled widens the panel by the host supplied scale factor.
func (g Geometry) Scaled(scale float64) Geometry {
	if scale <= 0 || scale == 1 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return g
	}
	g.PanelWidth = int(math.Round(float64(g.PanelWidth) * scale))
	if g.PanelWidth < 1 {
		g.PanelWidth = 1
	}
	return g
}

// Height is the panel height for count rows, capped at MaxHeight.
func (g Geometry) Height(count int) int {
	h := count*g.RowHeight + g.Padding
	if g.MaxHeight > 0 && h > g.MaxHeight {
		return g.MaxHeight
	}
	return h
}

// Viewport is the drawable area.
type Viewport struct {
	W, H int
}

// Anchor says what a panel is positioned against: a literal point for the
// root panel, or the parent panel and the hovered row's top for submenus.
type Anchor struct {
	X, Y    int
	Parent  Rect
	RowTop  int
	Submenu bool
}

// AtPoint anchors a root panel at the given point.
func AtPoint(x, y int) Anchor {
	return Anchor{X: x, Y: y}
}

// BesideRow anchors a submenu next to parent, aligned with rowTop.
func BesideRow(parent Rect, rowTop int) Anchor {
	return Anchor{Parent: parent, RowTop: rowTop, Submenu: true}
}

// Result is a placed panel and whether it was flipped to the left.
type Result struct {
	Rect    Rect
	Flipped bool
}

// Place positions a panel holding count rows.
func Place(a Anchor, count int, g Geometry, vp Viewport) Result {
	w := g.PanelWidth
	h := g.Height(count)

	var x, y int
	flipped := false
	if a.Submenu {
		x = a.Parent.Right() + g.Gutter
		y = a.RowTop
		if x+w > vp.W-g.Margin {
			x = a.Parent.X - w - g.Gutter
			flipped = true
		}
	} else {
		x, y = a.X, a.Y
		if x+w > vp.W-g.Margin {
			x -= w
			flipped = true
		}
	}

	if y+h > vp.H-g.Margin {
		y = vp.H - h - g.Margin
	}
	if x < g.Margin {
		x = g.Margin
	}
	if y < g.Margin {
		y = g.Margin
	}
	return Result{Rect: Rect{X: x, Y: y, W: w, H: h}, Flipped: flipped}
}
