package game

import (
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"

	"snake-arcade/game/clock"
	"snake-arcade/game/entity"
	"snake-arcade/game/manager"
	"snake-arcade/game/types"
)

const (
	DefaultTileCount        = 20
	DefaultTickPeriod       = 100 * time.Millisecond
	DefaultBackgroundSnakes = 8
	DefaultRestartDebounce  = 150 * time.Millisecond

	// recordHighlightTicks is how long a fresh high score stays highlighted.
	recordHighlightTicks = 3
)

var (
	StartCell      = types.Point{X: 10, Y: 10}
	StartDirection = types.Right
)

// Presenter draws frames. It must not keep references into the game.
type Presenter interface {
	Render(f Frame)
}

// HighScoreStore is the persistence hook for the high-water mark.
type HighScoreStore interface {
	HighScore() int
	SetHighScore(score int) error
}

// SessionRecorder receives every finished session.
type SessionRecorder interface {
	RecordSession(r manager.SessionRecord) error
}

type Options struct {
	TileCount        int
	TickPeriod       time.Duration
	BackgroundSnakes int
	TurnChance       float64
	RestartDebounce  time.Duration
	// Seed drives food and background randomness; 0 seeds from the clock.
	Seed uint64

	Clock     clock.Clock
	Presenter Presenter
	Store     HighScoreStore
	Recorder  SessionRecorder
}

func DefaultOptions() Options {
	return Options{
		TileCount:        DefaultTileCount,
		TickPeriod:       DefaultTickPeriod,
		BackgroundSnakes: DefaultBackgroundSnakes,
		TurnChance:       manager.DefaultTurnChance,
		RestartDebounce:  DefaultRestartDebounce,
	}
}

// Game is one owned session aggregate: player, food, background, score and
// the tick source. All methods must be called from a single goroutine.
type Game struct {
	UUID string
	Grid types.Grid

	state     types.SessionState
	cause     types.CollisionType
	score     int
	highScore int
	highlight int

	snake         *entity.Snake
	startCell     types.Point
	collisionMgr  *manager.CollisionManager
	foodMgr       *manager.FoodManager
	backgroundMgr *manager.BackgroundManager
	ticker        *manager.TickManager

	clock           clock.Clock
	presenter       Presenter
	store           HighScoreStore
	recorder        SessionRecorder
	backgroundCount int
	restartDebounce time.Duration
	lastRestart     time.Time
	restarted       bool
	startTime       time.Time
}

func NewGame(opts Options) *Game {
	def := DefaultOptions()
	if opts.TileCount <= 0 {
		opts.TileCount = def.TileCount
	}
	if opts.TickPeriod <= 0 {
		opts.TickPeriod = def.TickPeriod
	}
	if opts.BackgroundSnakes < 0 {
		opts.BackgroundSnakes = 0
	}
	if opts.Clock == nil {
		opts.Clock = clock.NewSystemClock()
	}
	if opts.Seed == 0 {
		opts.Seed = uint64(opts.Clock.Now().UnixNano())
	}

	grid := types.NewGrid(opts.TileCount)
	rng := rand.New(rand.NewSource(opts.Seed))

	start := StartCell
	if !grid.InBounds(start) {
		start = types.Point{X: grid.Width / 2, Y: grid.Height / 2}
	}

	g := &Game{
		Grid:            grid,
		state:           types.Idle,
		startCell:       start,
		collisionMgr:    manager.NewCollisionManager(grid),
		foodMgr:         manager.NewFoodManager(grid, rng),
		backgroundMgr:   manager.NewBackgroundManager(grid, rng, opts.TurnChance),
		ticker:          manager.NewTickManager(opts.TickPeriod),
		clock:           opts.Clock,
		presenter:       opts.Presenter,
		store:           opts.Store,
		recorder:        opts.Recorder,
		backgroundCount: opts.BackgroundSnakes,
		restartDebounce: opts.RestartDebounce,
	}
	if g.store != nil {
		g.highScore = g.store.HighScore()
	}
	g.reset()
	return g
}

// reset reinitializes everything a session owns. The high score survives.
func (g *Game) reset() {
	g.UUID = uuid.New().String()
	g.snake = entity.NewSnake(g.startCell, StartDirection, types.SnakeGreen)
	g.score = 0
	g.cause = types.NoCollision
	g.highlight = 0
	g.foodMgr.Spawn(g.snake.Body)
	g.backgroundMgr.Regenerate(g.backgroundCount)
	g.startTime = g.clock.Now()
}

// Start begins ticking. Running is left alone, Idle resumes the current board
// and Ended cannot be resumed, so it restarts.
func (g *Game) Start() {
	switch g.state {
	case types.Running:
		return
	case types.Ended:
		g.Restart()
		return
	}
	g.state = types.Running
	g.ticker.Start(g.clock.Now())
	log.Printf("session %s running, tick %v", g.UUID, g.ticker.Period())
	g.Render()
}

// Stop pauses a running session without ending it.
func (g *Game) Stop() {
	if g.state != types.Running {
		return
	}
	g.ticker.Stop()
	g.state = types.Idle
	log.Printf("session %s paused at score %d", g.UUID, g.score)
	g.Render()
}

// Restart throws the board away and starts a fresh session. Calls that arrive
// within the debounce window of the previous restart are ignored.
func (g *Game) Restart() bool {
	now := g.clock.Now()
	if g.restarted && now.Sub(g.lastRestart) < g.restartDebounce {
		log.Printf("restart ignored, previous restart %v ago", now.Sub(g.lastRestart))
		return false
	}
	g.restarted = true
	g.lastRestart = now

	g.ticker.Stop()
	g.reset()
	g.state = types.Running
	g.ticker.Start(now)
	log.Printf("session %s started, tick %v", g.UUID, g.ticker.Period())
	g.Render()
	return true
}

// SetDirection stages a direction for the next tick, starting the game first
// if it is not running. It reports whether the direction was accepted; a
// session still Ended after a debounced restart accepts nothing.
func (g *Game) SetDirection(dir types.Point) bool {
	if g.state != types.Running {
		g.Start()
		if g.state != types.Running {
			return false
		}
	}
	return g.snake.SetDirection(dir)
}

// AnyInput handles input that carries no direction: it starts an idle game
// and restarts an ended one.
func (g *Game) AnyInput() {
	switch g.state {
	case types.Idle:
		g.Start()
	case types.Ended:
		g.Restart()
	}
}

// Update runs a tick if one is due on the clock. Frame loops call it every frame.
func (g *Game) Update() bool {
	if !g.ticker.Due(g.clock.Now()) {
		return false
	}
	g.Tick()
	return true
}

// Tick advances the background, then the player, then renders.
func (g *Game) Tick() {
	if g.state != types.Running {
		return
	}
	if g.highlight > 0 {
		g.highlight--
	}

	g.backgroundMgr.Update()

	if cause := g.advanceSnake(); cause != types.NoCollision {
		g.endSession(cause)
		return
	}
	g.Render()
}

func (g *Game) advanceSnake() types.CollisionType {
	head := g.snake.Advance()

	if cause := g.collisionMgr.Check(g.snake); cause != types.NoCollision {
		return cause
	}

	if g.collisionMgr.IsFoodCollision(head, g.foodMgr.Food()) {
		g.score++
		g.foodMgr.Spawn(g.snake.Body)
		g.onScoreChanged()
	} else {
		g.snake.RemoveTail()
	}
	return types.NoCollision
}

func (g *Game) onScoreChanged() {
	g.setHighScoreIfNeeded(g.score)
}

// setHighScoreIfNeeded raises the high score to score and persists it.
// It is a no-op when score does not beat the current high score.
func (g *Game) setHighScoreIfNeeded(score int) bool {
	if score <= g.highScore {
		return false
	}
	g.highScore = score
	g.highlight = recordHighlightTicks
	if g.store != nil {
		if err := g.store.SetHighScore(score); err != nil {
			log.Printf("failed to save high score %d: %v", score, err)
		}
	}
	return true
}

func (g *Game) endSession(cause types.CollisionType) {
	g.ticker.Stop()
	g.state = types.Ended
	g.cause = cause
	g.setHighScoreIfNeeded(g.score)

	log.Printf("session %s ended: %s, score %d", g.UUID, cause, g.score)
	if g.recorder != nil {
		record := manager.SessionRecord{
			UUID:      g.UUID,
			Score:     g.score,
			Cause:     cause.String(),
			StartTime: g.startTime,
			EndTime:   g.clock.Now(),
		}
		if err := g.recorder.RecordSession(record); err != nil {
			log.Printf("failed to record session %s: %v", g.UUID, err)
		}
	}
	g.Render()
}

// Render pushes the current frame to the presenter.
func (g *Game) Render() {
	if g.presenter != nil {
		g.presenter.Render(g.Frame())
	}
}

func (g *Game) State() types.SessionState {
	return g.state
}

func (g *Game) Cause() types.CollisionType {
	return g.cause
}

func (g *Game) Score() int {
	return g.score
}

func (g *Game) HighScore() int {
	return g.highScore
}

func (g *Game) GetSnake() *entity.Snake {
	return g.snake
}

func (g *Game) GetFood() types.Point {
	return g.foodMgr.Food()
}

func (g *Game) Ticking() bool {
	return g.ticker.Active()
}
