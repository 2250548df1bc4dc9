// Package render rasterizes geographic features into raster previews using
// a ruler's local planar projection.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"os"

	"github.com/mapsense/georuler"
	"github.com/mapsense/georuler/internal/geojson"

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// Style controls the output raster.
type Style struct {
	Size        int     // output edge length in pixels
	StrokeWidth float64 // stroke width in output pixels
	Padding     float64 // fraction of the canvas kept clear around geometry
}

// DefaultStyle is used by the render CLI when no overrides are given.
var DefaultStyle = Style{Size: 512, StrokeWidth: 2, Padding: 0.08}

// Rendering happens at a higher resolution and is scaled down for smoother
// edges, reusing the scaler used by the tile pipeline this grew out of.
const supersample = 2

var (
	background = color.RGBA{R: 0xf8, G: 0xf8, B: 0xf5, A: 0xff}
	lineColor  = color.RGBA{R: 0x1f, G: 0x78, B: 0xb4, A: 0xff}
	fillColor  = color.RGBA{R: 0x1f, G: 0x78, B: 0xb4, A: 0x50}
	pointColor = color.RGBA{R: 0xe3, G: 0x1a, B: 0x1c, A: 0xff}
)

// planar maps points into the ruler's locally flat plane, in the ruler's
// unit, relative to an anchor point.
type planar struct {
	ruler  georuler.Ruler
	anchor georuler.Point
}

func (pl planar) xy(p georuler.Point) (float64, float64) {
	d := pl.ruler.Distance(pl.anchor, p)
	b := pl.ruler.Bearing(pl.anchor, p) * math.Pi / 180

	return d * math.Sin(b), d * math.Cos(b)
}

// Image renders the feature collection to an RGBA image, fitting all
// geometry into the canvas.
func Image(ruler georuler.Ruler, fc geojson.FeatureCollection, style Style) (*image.RGBA, error) {
	shapes, points, err := collect(fc)
	if err != nil {
		return nil, err
	}
	if len(shapes) == 0 && len(points) == 0 {
		return nil, fmt.Errorf("nothing to render: no supported geometry found")
	}

	pl := planar{ruler: ruler, anchor: anchorOf(shapes, points)}
	fit := fitCanvas(pl, shapes, points, style)

	side := style.Size * supersample
	canvas := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	stroke := style.StrokeWidth * supersample

	for _, shape := range shapes {
		if shape.closed {
			fillRing(canvas, fit, shape.points)
		}
		strokeLine(canvas, fit, shape.points, stroke, shape.closed)
	}
	for _, p := range points {
		markPoint(canvas, fit, p, stroke*2)
	}

	// Downscale from the supersampled canvas for smoother edges.
	out := image.NewRGBA(image.Rect(0, 0, style.Size, style.Size))
	xdraw.CatmullRom.Scale(out, out.Bounds(), canvas, canvas.Bounds(), draw.Src, nil)

	return out, nil
}

// Save encodes the image as webp at the given path.
func Save(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	return webp.Encode(f, img, &webp.Options{Lossless: false, Quality: 85})
}

type shape struct {
	points georuler.Line
	closed bool
}

// collect decodes the drawable geometry from the collection.
func collect(fc geojson.FeatureCollection) ([]shape, []georuler.Point, error) {
	var shapes []shape
	var points []georuler.Point

	for i, f := range fc.Features {
		switch f.Geometry.Type {
		case "Point":
			p, err := f.Geometry.Point()
			if err != nil {
				return nil, nil, fmt.Errorf("feature %d: %w", i, err)
			}
			points = append(points, p)

		case "LineString":
			line, err := f.Geometry.Line()
			if err != nil {
				return nil, nil, fmt.Errorf("feature %d: %w", i, err)
			}
			if len(line) > 1 {
				shapes = append(shapes, shape{points: line})
			}

		case "Polygon":
			poly, err := f.Geometry.Polygon()
			if err != nil {
				return nil, nil, fmt.Errorf("feature %d: %w", i, err)
			}
			for _, ring := range poly {
				if len(ring) > 2 {
					shapes = append(shapes, shape{points: georuler.Line(ring), closed: true})
				}
			}
		}
	}

	return shapes, points, nil
}

func anchorOf(shapes []shape, points []georuler.Point) georuler.Point {
	if len(shapes) > 0 {
		return shapes[0].points[0]
	}
	return points[0]
}

// canvasFit maps planar coordinates onto supersampled pixel coordinates.
type canvasFit struct {
	pl         planar
	minX, maxY float64
	scale      float64
	padX, padY float64
}

func (c canvasFit) pixel(p georuler.Point) (float32, float32) {
	x, y := c.pl.xy(p)
	// The y axis points north, the pixel axis points down.
	return float32((x-c.minX)*c.scale + c.padX), float32((c.maxY-y)*c.scale + c.padY)
}

func fitCanvas(pl planar, shapes []shape, points []georuler.Point, style Style) canvasFit {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)

	visit := func(p georuler.Point) {
		x, y := pl.xy(p)
		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
		maxX = math.Max(maxX, x)
		maxY = math.Max(maxY, y)
	}

	for _, s := range shapes {
		for _, p := range s.points {
			visit(p)
		}
	}
	for _, p := range points {
		visit(p)
	}

	side := float64(style.Size * supersample)
	usable := side * (1 - 2*style.Padding)

	extent := math.Max(maxX-minX, maxY-minY)
	if extent <= 0 {
		extent = 1 // single point or degenerate geometry
	}
	scale := usable / extent

	// Center the geometry inside the padded area.
	padX := (side - (maxX-minX)*scale) / 2
	padY := (side - (maxY-minY)*scale) / 2

	return canvasFit{pl: pl, minX: minX, maxY: maxY, scale: scale, padX: padX, padY: padY}
}

// strokeLine draws a polyline as a sequence of filled quads, one per segment.
func strokeLine(dst *image.RGBA, fit canvasFit, line georuler.Line, width float64, closed bool) {
	rast := vector.NewRasterizer(dst.Bounds().Dx(), dst.Bounds().Dy())
	rast.DrawOp = draw.Over

	hw := float32(width / 2)

	n := len(line)
	if closed {
		n++
	}

	for i := 1; i < n; i++ {
		ax, ay := fit.pixel(line[i-1])
		bx, by := fit.pixel(line[i%len(line)])

		dx, dy := bx-ax, by-ay
		length := float32(math.Hypot(float64(dx), float64(dy)))
		if length == 0 {
			continue
		}

		// Unit normal scaled to half the stroke width.
		nx := -dy / length * hw
		ny := dx / length * hw

		rast.MoveTo(ax+nx, ay+ny)
		rast.LineTo(bx+nx, by+ny)
		rast.LineTo(bx-nx, by-ny)
		rast.LineTo(ax-nx, ay-ny)
		rast.ClosePath()
	}

	rast.Draw(dst, dst.Bounds(), image.NewUniform(lineColor), image.Point{})
}

// fillRing fills a closed ring with a translucent color.
func fillRing(dst *image.RGBA, fit canvasFit, ring georuler.Line) {
	rast := vector.NewRasterizer(dst.Bounds().Dx(), dst.Bounds().Dy())
	rast.DrawOp = draw.Over

	x0, y0 := fit.pixel(ring[0])
	rast.MoveTo(x0, y0)
	for _, p := range ring[1:] {
		x, y := fit.pixel(p)
		rast.LineTo(x, y)
	}
	rast.ClosePath()

	rast.Draw(dst, dst.Bounds(), image.NewUniform(fillColor), image.Point{})
}

// markPoint draws a filled diamond marker centered on the point.
func markPoint(dst *image.RGBA, fit canvasFit, p georuler.Point, radius float64) {
	rast := vector.NewRasterizer(dst.Bounds().Dx(), dst.Bounds().Dy())
	rast.DrawOp = draw.Over

	x, y := fit.pixel(p)
	r := float32(radius)

	rast.MoveTo(x, y-r)
	rast.LineTo(x+r, y)
	rast.LineTo(x, y+r)
	rast.LineTo(x-r, y)
	rast.ClosePath()

	rast.Draw(dst, dst.Bounds(), image.NewUniform(pointColor), image.Point{})
}
