package internal

import (
	"io"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/pkg/errors"
)

// Padding around the mesh so boundary nodes are not clipped
const dbgDrawPadding = 20

// DrawPNG renders the mesh to a PNG file. scale is pixels per unit.
func (m *Mesh) DrawPNG(path string, scale float64) error {
	bound, ok := m.BoundingBox()
	if !ok {
		return errors.New("cannot draw an empty mesh")
	}
	minX, minY := bound.Min.X(), bound.Min.Y()
	width := int(scale*(bound.Max.X()-minX)) + dbgDrawPadding*2
	height := int(scale*(bound.Max.Y()-minY)) + dbgDrawPadding*2

	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()
	// Flip the context so the origin is at the bottom left
	c.Translate(0, float64(height))
	c.Scale(1, -1)
	c.Translate(dbgDrawPadding, dbgDrawPadding)
	c.Scale(scale, scale)
	c.Translate(-minX, -minY)

	m.draw(c)

	if err := c.SavePNG(path); err != nil {
		return errors.Wrapf(err, "saving %s", path)
	}
	return nil
}

// Helper to draw and print the mesh in the terminal (iTerm only) for debugging.
func (m *Mesh) DbgDraw(scale float64) error {
	return m.dbgDrawTo(os.Stdout, scale)
}

func (m *Mesh) dbgDrawTo(w io.Writer, scale float64) error {
	path := filepath.Join(os.TempDir(), "umesh.png")
	if err := m.DrawPNG(path, scale); err != nil {
		return err
	}
	if err := imgcat.CatFile(path, w); err != nil {
		return errors.Wrap(err, "printing mesh image")
	}
	return nil
}

func (m *Mesh) draw(c *gg.Context) {
	// Elements: blue when counterclockwise, red when inverted or flat
	for _, t := range m.Elements() {
		p1, p2, p3 := m.elementPositions(t)
		c.MoveTo(p1.X, p1.Y)
		c.LineTo(p2.X, p2.Y)
		c.LineTo(p3.X, p3.Y)
		c.ClosePath()
		if Orient2D(p1, p2, p3) > 0 {
			c.SetRGBA(0.2, 0.4, 1, 0.4)
		} else {
			c.SetRGBA(1, 0.2, 0.2, 0.6)
		}
		c.Fill()
	}

	c.SetLineWidth(2)
	for _, e := range m.Edges() {
		a, b := m.EdgeNodes(e)
		pa, pb := m.Position(a), m.Position(b)
		if m.IsBoundaryEdge(e) {
			c.SetRGB(1, 0.6, 0)
		} else {
			c.SetRGB(1, 1, 1)
		}
		c.DrawLine(pa.X, pa.Y, pb.X, pb.Y)
		c.Stroke()
	}

	c.SetRGB(0, 1, 0.5)
	for _, n := range m.Nodes() {
		p := m.Position(n)
		c.DrawPoint(p.X, p.Y, 3)
		c.Fill()
	}
}
