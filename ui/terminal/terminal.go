package terminal

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"snake-arcade/game"
	"snake-arcade/game/types"
)

// Board layout: one HUD row, then a bordered board where every grid cell is
// two columns wide so it looks square.
const (
	originX   = 1
	originY   = 2
	cellWidth = 2
)

var (
	textStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	highStyle   = tcell.StyleDefault.Foreground(tcell.NewRGBColor(132, 189, 189)).Background(tcell.ColorBlack)
	recordStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorBlack).Bold(true)
	borderStyle = tcell.StyleDefault.Foreground(tcell.ColorGray).Background(tcell.ColorBlack)
	reasonStyle = tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 120, 120)).Background(tcell.ColorBlack)
)

// Renderer draws frames straight onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
}

func NewRenderer(s tcell.Screen) *Renderer {
	return &Renderer{screen: s}
}

func (r *Renderer) Render(f game.Frame) {
	s := r.screen
	s.SetStyle(textStyle)
	s.Clear()

	w, h := s.Size()
	needW := originX*2 + f.Grid.Width*cellWidth
	needH := originY + f.Grid.Height + 1
	if w < needW || h < needH {
		drawText(s, 0, 0, "Terminal too small", textStyle)
		s.Show()
		return
	}

	hud := f.ScoreText() + "   "
	drawText(s, originX, 0, hud, textStyle)
	st := highStyle
	if f.NewRecord {
		st = recordStyle
	}
	drawText(s, originX+len(hud), 0, f.HighScoreText(), st)

	r.drawBorder(f.Grid)
	for _, bg := range f.Background {
		for _, p := range bg.Body {
			r.drawCell(f.Grid, p, bg.Color)
		}
	}
	for _, p := range f.Snake {
		r.drawCell(f.Grid, p, f.SnakeColor)
	}
	r.drawCell(f.Grid, f.Food, f.FoodColor)

	lines := f.Overlay()
	centerX := originX + f.Grid.Width*cellWidth/2
	y := originY + f.Grid.Height/2 - len(lines)/2
	for i, line := range lines {
		style := textStyle.Bold(true)
		if f.State == types.Ended && i == len(lines)-1 {
			style = reasonStyle
		}
		drawCentered(s, centerX, y+i, line, style)
	}

	s.Show()
}

func (r *Renderer) drawBorder(grid types.Grid) {
	s := r.screen
	left, top := originX-1, originY-1
	right, bottom := originX+grid.Width*cellWidth, originY+grid.Height
	for x := left + 1; x < right; x++ {
		s.SetContent(x, top, tcell.RuneHLine, nil, borderStyle)
		s.SetContent(x, bottom, tcell.RuneHLine, nil, borderStyle)
	}
	for y := top + 1; y < bottom; y++ {
		s.SetContent(left, y, tcell.RuneVLine, nil, borderStyle)
		s.SetContent(right, y, tcell.RuneVLine, nil, borderStyle)
	}
	s.SetContent(left, top, tcell.RuneULCorner, nil, borderStyle)
	s.SetContent(right, top, tcell.RuneURCorner, nil, borderStyle)
	s.SetContent(left, bottom, tcell.RuneLLCorner, nil, borderStyle)
	s.SetContent(right, bottom, tcell.RuneLRCorner, nil, borderStyle)
}

func (r *Renderer) drawCell(grid types.Grid, p types.Point, c types.Color) {
	if !grid.InBounds(p) {
		return
	}
	st := tcell.StyleDefault.Background(blend(c))
	x, y := originX+p.X*cellWidth, originY+p.Y
	for i := 0; i < cellWidth; i++ {
		r.screen.SetContent(x+i, y, ' ', nil, st)
	}
}

// blend flattens a translucent color onto the black board.
func blend(c types.Color) tcell.Color {
	scale := func(v uint8) int32 {
		return int32(uint16(v) * uint16(c.A) / 255)
	}
	return tcell.NewRGBColor(scale(c.R), scale(c.G), scale(c.B))
}

func drawText(s tcell.Screen, x, y int, text string, st tcell.Style) {
	for i, ch := range []rune(text) {
		s.SetContent(x+i, y, ch, nil, st)
	}
}

func drawCentered(s tcell.Screen, cx, cy int, text string, st tcell.Style) {
	drawText(s, cx-len([]rune(text))/2, cy, text, st)
}

var directionKeys = map[tcell.Key]types.Point{
	tcell.KeyLeft:  types.Left,
	tcell.KeyUp:    types.Up,
	tcell.KeyRight: types.Right,
	tcell.KeyDown:  types.Down,
}

var directionRunes = map[rune]types.Point{
	'a': types.Left,
	'w': types.Up,
	'd': types.Right,
	's': types.Down,
	'h': types.Left,
	'k': types.Up,
	'l': types.Right,
	'j': types.Down,
}

// HandleKey applies a key press to g and reports whether the player quit.
func HandleKey(g *game.Game, e *tcell.EventKey) bool {
	switch e.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	}

	if e.Key() == tcell.KeyRune {
		switch e.Rune() {
		case 'q', 'Q':
			return true
		case 'p', 'P', ' ':
			if g.State() == types.Running {
				g.Stop()
			} else {
				g.AnyInput()
			}
			return false
		}
	}

	g.AnyInput()
	if dir, ok := directionKeys[e.Key()]; ok {
		g.SetDirection(dir)
	} else if e.Key() == tcell.KeyRune {
		if dir, ok := directionRunes[e.Rune()]; ok {
			g.SetDirection(dir)
		}
	}
	return false
}

// HandleMouse treats any button press as generic input.
func HandleMouse(g *game.Game, e *tcell.EventMouse) {
	if e.Buttons()&(tcell.Button1|tcell.Button2|tcell.Button3) != 0 {
		g.AnyInput()
	}
}

// Run owns g until the player quits. Screen events are read on a helper
// goroutine and applied here, so g is only touched by this goroutine.
func Run(g *game.Game, s tcell.Screen, frameInterval time.Duration) {
	events := make(chan tcell.Event, 32)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := s.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	tick := time.NewTicker(frameInterval)
	defer tick.Stop()

	g.Render()
	for {
		select {
		case ev := <-events:
			switch e := ev.(type) {
			case *tcell.EventResize:
				s.Sync()
				g.Render()
			case *tcell.EventKey:
				if HandleKey(g, e) {
					return
				}
			case *tcell.EventMouse:
				HandleMouse(g, e)
			}
		case <-tick.C:
			g.Update()
		}
	}
}
