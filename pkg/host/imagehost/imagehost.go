// Package imagehost rasterizes a committed node tree onto an RGBA
// image. It layers on top of host.MemoryAdapter: the runtime commits
// into the in-memory tree as usual, and Render draws the current state
// of that tree whenever a frame is wanted.
//
// The layout model is deliberately simple. Text nodes become lines,
// indented by their depth in the tree, drawn with a fixed-width
// bitmap face. That is enough for snapshot images of demo apps and
// for eyeballing reconciler output without a real display host.
package imagehost

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/go-ripple/ripple/pkg/host"
)

const (
	padding    = 8
	indent     = 14
	lineHeight = 16
	// Face7x13 has a 7px advance per glyph.
	glyphWidth = 7
	minWidth   = 64
)

// Adapter is a host.Adapter that renders its committed tree to images.
type Adapter struct {
	*host.MemoryAdapter
}

// New creates an Adapter with an empty tree.
func New() *Adapter {
	return &Adapter{MemoryAdapter: host.NewMemoryAdapter()}
}

type line struct {
	text  string
	depth int
}

func collectLines(n *host.MemNode, depth int, lines *[]line) {
	if n.IsText {
		*lines = append(*lines, line{text: n.Text, depth: depth})
		return
	}
	for _, child := range n.Children {
		collectLines(child, depth+1, lines)
	}
}

// Render draws the subtree under root onto a fresh RGBA image, sized
// to fit the content. An empty tree yields a blank minimum-size image.
func (a *Adapter) Render(root *host.MemNode) *image.RGBA {
	var lines []line
	for _, child := range root.Children {
		collectLines(child, 0, &lines)
	}

	width := minWidth
	for _, ln := range lines {
		w := 2*padding + ln.depth*indent + glyphWidth*len([]rune(ln.text))
		if w > width {
			width = w
		}
	}
	height := 2*padding + lineHeight*len(lines)
	if height < 2*padding+lineHeight {
		height = 2*padding + lineHeight
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
	}
	for i, ln := range lines {
		drawer.Dot = fixed.P(padding+ln.depth*indent, padding+(i+1)*lineHeight-4)
		drawer.DrawString(ln.text)
	}
	return img
}

// EncodePNG renders the subtree under root and writes it as PNG.
func (a *Adapter) EncodePNG(w io.Writer, root *host.MemNode) error {
	return png.Encode(w, a.Render(root))
}
