package ui

import (
	"snake-arcade/game"
	"snake-arcade/game/types"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	hudHeight     = 44 // Score and high score lines above the board
	borderPadding = 10 // Padding around game area
	cellGap       = 2  // Gap between neighbouring cells
)

var highScoreColor = rl.Color{R: 132, G: 189, B: 189, A: 255}

// Renderer draws the latest frame in the raylib window. Render only stores the
// frame; Draw paints it and must be called once per window frame.
type Renderer struct {
	cellSize     int32
	screenWidth  int32
	screenHeight int32
	offsetX      int32
	offsetY      int32
	frame        game.Frame
	hasFrame     bool
}

func NewRenderer(cellSize int) *Renderer {
	return &Renderer{cellSize: int32(cellSize)}
}

// WindowSize returns the window dimensions needed for a tileCount board.
func WindowSize(tileCount, cellSize int) (int32, int32) {
	board := int32(tileCount * cellSize)
	return board + borderPadding*2, board + hudHeight + borderPadding*2
}

func (r *Renderer) Render(f game.Frame) {
	r.frame = f
	r.hasFrame = true
}

func (r *Renderer) UpdateDimensions() {
	r.screenWidth = int32(rl.GetScreenWidth())
	r.screenHeight = int32(rl.GetScreenHeight())

	board := r.cellSize * int32(r.frame.Grid.Width)
	r.offsetX = (r.screenWidth - board) / 2
	r.offsetY = hudHeight + borderPadding
}

func (r *Renderer) Draw() {
	rl.BeginDrawing()
	defer rl.EndDrawing()
	rl.ClearBackground(rl.Black)
	if !r.hasFrame {
		return
	}
	r.UpdateDimensions()
	f := r.frame

	board := r.cellSize * int32(f.Grid.Width)
	rl.DrawRectangleLines(r.offsetX-1, r.offsetY-1, board+2, r.cellSize*int32(f.Grid.Height)+2, rl.DarkGray)

	for _, bg := range f.Background {
		for _, p := range bg.Body {
			r.drawCell(p, bg.Color)
		}
	}
	for _, p := range f.Snake {
		r.drawCell(p, f.SnakeColor)
	}
	r.drawCell(f.Food, f.FoodColor)

	r.drawHUD(f)
	r.drawOverlay(f)
}

// drawCell skips cells outside the board, such as a head that just hit the wall.
func (r *Renderer) drawCell(p types.Point, c types.Color) {
	if !r.frame.Grid.InBounds(p) {
		return
	}
	rl.DrawRectangle(
		r.offsetX+int32(p.X)*r.cellSize,
		r.offsetY+int32(p.Y)*r.cellSize,
		r.cellSize-cellGap, r.cellSize-cellGap,
		toColor(c))
}

func (r *Renderer) drawHUD(f game.Frame) {
	rl.DrawText(f.ScoreText(), r.offsetX, borderPadding, 20, rl.White)

	color, size := highScoreColor, int32(16)
	if f.NewRecord {
		color, size = rl.Yellow, 18
	}
	rl.DrawText(f.HighScoreText(), r.offsetX, borderPadding+22, size, color)
}

func (r *Renderer) drawOverlay(f game.Frame) {
	lines := f.Overlay()
	if len(lines) == 0 {
		return
	}

	centerX := r.offsetX + r.cellSize*int32(f.Grid.Width)/2
	y := r.offsetY + r.cellSize*int32(f.Grid.Height)/2 - int32(len(lines))*20
	for i, line := range lines {
		size := int32(30)
		color := rl.White
		if f.State == types.Ended && i == len(lines)-1 {
			size, color = 20, rl.Color{R: 255, G: 120, B: 120, A: 255}
		}
		width := rl.MeasureText(line, size)
		rl.DrawText(line, centerX-width/2, y, size, color)
		y += size + 10
	}
}

func toColor(c types.Color) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}
