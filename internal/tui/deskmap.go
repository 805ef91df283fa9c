package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/1broseidon/dxdesk/internal/layout"
	"github.com/1broseidon/dxdesk/internal/window"
)

// renderDesktopMap draws the on-screen windows as boxes scaled into a
// width x height character canvas. Boxes are numbered by their position in
// order (1-based) and painted bottom to top by z-index.
func renderDesktopMap(order []window.Window, viewport layout.Size, width, height int) []string {
	if width < 5 || height < 3 {
		return emptyCanvas(width, height)
	}
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	if viewport.Width > 0 && viewport.Height > 0 {
		type box struct {
			num int
			w   window.Window
		}
		var boxes []box
		for i, w := range order {
			if !w.IsVisible || (w.IsMinimized && !w.IsAnimating()) {
				continue
			}
			boxes = append(boxes, box{num: i + 1, w: w})
		}
		sort.SliceStable(boxes, func(i, j int) bool { return boxes[i].w.ZIndex < boxes[j].w.ZIndex })

		for _, b := range boxes {
			r := b.w.Rect()
			if b.w.RendersMaximized() {
				r = layout.Rect{Width: viewport.Width, Height: viewport.Height}
			}
			drawBox(canvas, r, b.num, viewport, width, height)
		}
	}

	drawBorder(canvas, width, height)

	lines := make([]string, height)
	for i, row := range canvas {
		lines[i] = string(row)
	}
	return lines
}

func drawBox(canvas [][]rune, r layout.Rect, num int, viewport layout.Size, canvasW, canvasH int) {
	sx := float64(canvasW) / viewport.Width
	sy := float64(canvasH) / viewport.Height
	x1 := int(r.X * sx)
	y1 := int(r.Y * sy)
	x2 := int(r.Right() * sx)
	y2 := int(r.Bottom() * sy)

	if x1 < 1 {
		x1 = 1
	}
	if y1 < 1 {
		y1 = 1
	}
	if x2 >= canvasW-1 {
		x2 = canvasW - 2
	}
	if y2 >= canvasH-1 {
		y2 = canvasH - 2
	}
	if x2 <= x1 || y2 <= y1 {
		return
	}

	// Clear the interior so higher windows hide lower ones.
	for y := y1 + 1; y < y2; y++ {
		for x := x1 + 1; x < x2; x++ {
			canvas[y][x] = ' '
		}
	}
	for x := x1; x <= x2; x++ {
		canvas[y1][x] = '─'
		canvas[y2][x] = '─'
	}
	for y := y1; y <= y2; y++ {
		canvas[y][x1] = '│'
		canvas[y][x2] = '│'
	}
	canvas[y1][x1] = '┌'
	canvas[y1][x2] = '┐'
	canvas[y2][x1] = '└'
	canvas[y2][x2] = '┘'

	centerY := (y1 + y2) / 2
	centerX := (x1 + x2) / 2
	if centerY > y1 && centerY < y2 {
		label := fmt.Sprintf("%d", num)
		startX := centerX - len(label)/2
		for i, ch := range label {
			if startX+i > x1 && startX+i < x2 {
				canvas[centerY][startX+i] = ch
			}
		}
	}
}

func drawBorder(canvas [][]rune, width, height int) {
	for x := 0; x < width; x++ {
		canvas[0][x] = '═'
		canvas[height-1][x] = '═'
	}
	for y := 0; y < height; y++ {
		canvas[y][0] = '║'
		canvas[y][width-1] = '║'
	}
	canvas[0][0] = '╔'
	canvas[0][width-1] = '╗'
	canvas[height-1][0] = '╚'
	canvas[height-1][width-1] = '╝'
}

func emptyCanvas(width, height int) []string {
	if height < 0 {
		height = 0
	}
	if width < 0 {
		width = 0
	}
	lines := make([]string, height)
	empty := strings.Repeat(" ", width)
	for i := range lines {
		lines[i] = empty
	}
	return lines
}
