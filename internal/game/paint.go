package game

import (
	"image/color"

	"chosenoffset.com/wolfmaze/internal/assets"
	"chosenoffset.com/wolfmaze/internal/core/geom"
	"chosenoffset.com/wolfmaze/internal/maze"
	"chosenoffset.com/wolfmaze/internal/render"
)

const (
	// quadStrips is how many vertical strips a quad is cut into. The
	// projective transform is applied exactly at strip edges and linearly
	// inside them.
	quadStrips = 8
	// minW keeps vertices at or behind the eye out of the mesh.
	minW = 1e-3

	portalSize     = 256
	maxPortalDepth = 2

	// horizonBand is the height of the darkening band around the horizon
	// as a fraction of the screen height.
	horizonBand = 0.5
)

var modelColor = color.RGBA{120, 220, 140, 255}

// view maps normalized device coordinates to pixels. Both axes are scaled
// by half the width since the focal length follows the horizontal field of
// view.
type view struct {
	w, h float64
}

func (v view) toPixel(x, y float64) (float32, float32) {
	return float32(v.w/2 + x*v.w/2), float32(v.h/2 + y*v.w/2)
}

// painter draws maze frames through the backend-neutral renderer.
type painter struct {
	r       render.Renderer
	assets  *assets.Registry
	portals map[*maze.Maze]render.Image

	vertices []render.Vertex
	indices  []uint16
}

func newPainter(r render.Renderer, reg *assets.Registry) *painter {
	return &painter{
		r:       r,
		assets:  reg,
		portals: make(map[*maze.Maze]render.Image),
	}
}

// drawFrame paints the background and then every unobscured item, far to
// near.
func (p *painter) drawFrame(dst render.Image, f maze.Frame, depth int) {
	w, h := dst.Size()
	v := view{w: float64(w), h: float64(h)}

	p.drawBackground(dst, v, f.Horizon)

	for _, it := range f.Items {
		if it.Obscured {
			continue
		}
		switch it.Kind {
		case maze.KindWall:
			tex := p.assets.Wall(it.WallType)
			if it.Child != nil && depth < maxPortalDepth {
				tex = p.portalView(it.Child, depth+1)
			}
			p.drawQuad(dst, v, it, tex)
			if it.HasShade {
				p.drawShade(dst, v, it)
			}
		case maze.KindEntity:
			p.drawQuad(dst, v, it, p.assets.Sprite(it.SpriteFrame))
		case maze.KindModel:
			p.drawModel(dst, v, it)
		}
	}
}

// drawBackground fills the ceiling above the horizon and the floor below
// it, then darkens a band around the horizon where the far walls fade.
func (p *painter) drawBackground(dst render.Image, v view, horizon float64) {
	_, y := v.toPixel(0, horizon)
	y = max(0, min(float32(v.h), y))

	p.r.FillRect(dst, 0, 0, float32(v.w), y, p.assets.Ceiling)
	p.r.FillRect(dst, 0, y, float32(v.w), float32(v.h)-y, p.assets.Floor)

	band := float32(v.h * horizonBand)
	top := y - band/2
	stops := []struct {
		at    float32
		alpha float32
	}{
		{0, 50}, {0.4, 100}, {0.6, 100}, {1, 50},
	}

	p.reset()
	for _, s := range stops {
		sy := top + band*s.at
		a := s.alpha / 255
		base := uint16(len(p.vertices))
		p.vertices = append(p.vertices,
			render.Vertex{DstX: 0, DstY: sy, SrcX: 0.5, SrcY: 0.5, ColorA: a},
			render.Vertex{DstX: float32(v.w), DstY: sy, SrcX: 0.5, SrcY: 0.5, ColorA: a},
		)
		if base > 0 {
			p.indices = append(p.indices, base-2, base-1, base, base-1, base+1, base)
		}
	}
	dst.DrawTriangles(p.vertices, p.indices, p.assets.White(), nil)
}

func (p *painter) reset() {
	p.vertices = p.vertices[:0]
	p.indices = p.indices[:0]
}

// column is one projected strip edge of a quad.
type column struct {
	u              float64 // position along the full quad, 0 at A and 1 at B
	src            float64 // position along the drawn texture in the same units
	x0, y0, x1, y1 float32
	ok             bool
}

// columns projects the strip edges of the drawn part of a quad.
func columns(v view, it maze.DrawItem) []column {
	t, b := it.Target, it.Bounds
	cols := make([]column, quadStrips+1)
	for i := range cols {
		lx := t.MinX + t.Width()*float64(i)/quadStrips
		top := it.Transform.MapW(geom.Point{X: lx, Y: t.MinY})
		bottom := it.Transform.MapW(geom.Point{X: lx, Y: t.MaxY})
		c := column{
			u:   (lx - b.MinX) / b.Width(),
			src: (lx - t.MinX) / b.Width(),
			ok:  top.Z() > minW && bottom.Z() > minW,
		}
		if c.ok {
			c.x0, c.y0 = v.toPixel(top.X()/top.Z(), top.Y()/top.Z())
			c.x1, c.y1 = v.toPixel(bottom.X()/bottom.Z(), bottom.Y()/bottom.Z())
		}
		cols[i] = c
	}
	return cols
}

// mesh turns columns into strip quads. vertex fills in source and color.
func (p *painter) mesh(cols []column, vertex func(c column, top bool) render.Vertex) {
	p.reset()
	for i := 0; i+1 < len(cols); i++ {
		a, b := cols[i], cols[i+1]
		if !a.ok || !b.ok {
			continue
		}
		base := uint16(len(p.vertices))
		for _, c := range [2]column{a, b} {
			vt := vertex(c, true)
			vt.DstX, vt.DstY = c.x0, c.y0
			vb := vertex(c, false)
			vb.DstX, vb.DstY = c.x1, c.y1
			p.vertices = append(p.vertices, vt, vb)
		}
		p.indices = append(p.indices, base, base+1, base+2, base+1, base+3, base+2)
	}
}

// drawQuad textures the drawn part of an item. Doors show the leading part
// of their texture as they slide.
func (p *painter) drawQuad(dst render.Image, v view, it maze.DrawItem, tex render.Image) {
	tw, th := tex.Size()
	p.mesh(columns(v, it), func(c column, top bool) render.Vertex {
		sy := float32(th)
		if top {
			sy = 0
		}
		return render.Vertex{
			SrcX:   float32(c.src * float64(tw)),
			SrcY:   sy,
			ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
		}
	})
	if len(p.indices) > 0 {
		dst.DrawTriangles(p.vertices, p.indices, tex, nil)
	}
}

// drawShade darkens a wall with its lighting overlay, interpolated from
// one end to the other.
func (p *painter) drawShade(dst render.Image, v view, it maze.DrawItem) {
	p.mesh(columns(v, it), func(c column, _ bool) render.Vertex {
		return render.Vertex{
			SrcX:   0.5,
			SrcY:   0.5,
			ColorA: float32(it.Shade.AlphaAt(c.u) / 255),
		}
	})
	if len(p.indices) > 0 {
		dst.DrawTriangles(p.vertices, p.indices, p.assets.White(), nil)
	}
}

// drawModel strokes the wireframe of a loaded model.
func (p *painter) drawModel(dst render.Image, v view, it maze.DrawItem) {
	m := it.Model
	for _, e := range m.Edges {
		a, b := m.Vertices[e[0]], m.Vertices[e[1]]
		pa, wa := it.ModelMatrix.Project(a.X(), a.Y(), a.Z())
		pb, wb := it.ModelMatrix.Project(b.X(), b.Y(), b.Z())
		if wa <= minW || wb <= minW {
			continue
		}
		x0, y0 := v.toPixel(pa.X(), pa.Y())
		x1, y1 := v.toPixel(pb.X(), pb.Y())
		p.r.StrokeLine(dst, x0, y0, x1, y1, 1, modelColor)
	}
}

// portalView renders a nested maze offscreen for use as a wall texture.
func (p *painter) portalView(m *maze.Maze, depth int) render.Image {
	img, ok := p.portals[m]
	if !ok {
		img = p.r.NewImage(portalSize, portalSize)
		p.portals[m] = img
	}
	img.Clear()
	p.drawFrame(img, m.Frame(), depth)
	return img
}
