package presence

// This file contains a strip backend that previews the LEDs in a terminal,
// each pixel is drawn as a block of colored cells with its hex value below

import (
	"github.com/gdamore/tcell/v2"

	"github.com/TeamNorCal/presence/model"
)

const (
	cellWidth  = 6
	cellHeight = 2
	cellGap    = 1
)

// TermStrip implements animation.Strip on a tcell screen.  The screen is owned
// by the caller which is responsible for Init and Fini.
type TermStrip struct {
	screen tcell.Screen
	pixels []model.Color
	title  string
}

func NewTermStrip(screen tcell.Screen, title string) (strip *TermStrip) {
	return &TermStrip{
		screen: screen,
		title:  title,
	}
}

func pixelStyle(c model.Color) tcell.Style {
	return tcell.StyleDefault.Background(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}

// PixelOrigin is the top left cell of the block drawn for pixel i
func PixelOrigin(i int) (x int, y int) {
	return 1 + i*(cellWidth+cellGap), 2
}

func (strip *TermStrip) Begin(count int) {
	strip.pixels = make([]model.Color, count)
}

func (strip *TermStrip) Clear() {
	for i := range strip.pixels {
		strip.pixels[i] = model.Black
	}
}

func (strip *TermStrip) SetPixel(i int, c model.Color) {
	if i < 0 || i >= len(strip.pixels) {
		return
	}
	strip.pixels[i] = c
}

func (strip *TermStrip) Show() {
	drawText(strip.screen, 1, 0, tcell.StyleDefault, strip.title)

	for i, c := range strip.pixels {
		x, y := PixelOrigin(i)
		style := pixelStyle(c)
		for dy := 0; dy < cellHeight; dy++ {
			for dx := 0; dx < cellWidth; dx++ {
				strip.screen.SetContent(x+dx, y+dy, ' ', nil, style)
			}
		}
		drawText(strip.screen, x, y+cellHeight, tcell.StyleDefault, c.Hex()[1:])
	}
	strip.screen.Show()
}

// SetStatus writes a line of text below the pixels
func (strip *TermStrip) SetStatus(text string) {
	_, y := PixelOrigin(0)
	y += cellHeight + 2
	width, _ := strip.screen.Size()
	for x := 0; x < width; x++ {
		strip.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault)
	}
	drawText(strip.screen, 1, y, tcell.StyleDefault, text)
	strip.screen.Show()
}

func drawText(screen tcell.Screen, x int, y int, style tcell.Style, text string) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
