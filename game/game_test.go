package game

import (
	"errors"
	"testing"
	"time"

	"snake-arcade/game/clock"
	"snake-arcade/game/manager"
	"snake-arcade/game/types"
)

type recordingPresenter struct {
	frames []Frame
}

func (p *recordingPresenter) Render(f Frame) {
	p.frames = append(p.frames, f)
}

func (p *recordingPresenter) last() Frame {
	return p.frames[len(p.frames)-1]
}

type memoryStore struct {
	high    int
	sets    []int
	failing bool
	records []manager.SessionRecord
}

func (m *memoryStore) HighScore() int { return m.high }

func (m *memoryStore) SetHighScore(score int) error {
	m.sets = append(m.sets, score)
	if m.failing {
		return errors.New("disk full")
	}
	m.high = score
	return nil
}

func (m *memoryStore) RecordSession(r manager.SessionRecord) error {
	m.records = append(m.records, r)
	return nil
}

var epoch = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func newTestGame(t *testing.T) (*Game, *clock.MockClock, *recordingPresenter, *memoryStore) {
	t.Helper()
	clk := clock.NewMockClock(epoch)
	presenter := &recordingPresenter{}
	store := &memoryStore{}
	opts := DefaultOptions()
	opts.Seed = 42
	opts.Clock = clk
	opts.Presenter = presenter
	opts.Store = store
	opts.Recorder = store
	return NewGame(opts), clk, presenter, store
}

func TestNewGameStartsIdle(t *testing.T) {
	g, _, _, _ := newTestGame(t)

	if g.State() != types.Idle {
		t.Errorf("state = %v, want idle", g.State())
	}
	if g.Ticking() {
		t.Error("ticker active before start")
	}
	snake := g.GetSnake()
	if snake.Len() != 1 || snake.Head() != StartCell || snake.Direction != StartDirection {
		t.Errorf("initial snake = %v dir %v", snake.Body, snake.Direction)
	}
	if snake.Occupies(g.GetFood()) {
		t.Errorf("food %v on snake", g.GetFood())
	}
	if len(g.Frame().Background) != DefaultBackgroundSnakes {
		t.Errorf("background snakes = %d", len(g.Frame().Background))
	}
}

func TestTickIgnoredWhenNotRunning(t *testing.T) {
	g, _, _, _ := newTestGame(t)
	head := g.GetSnake().Head()
	g.Tick()
	if g.GetSnake().Head() != head {
		t.Error("idle game moved")
	}
}

func TestEatFoodScenario(t *testing.T) {
	g, _, presenter, store := newTestGame(t)
	g.Start()
	g.foodMgr.Place(types.Point{X: 11, Y: 10})

	g.Tick()

	want := []types.Point{{X: 11, Y: 10}, {X: 10, Y: 10}}
	body := g.GetSnake().Body
	if len(body) != 2 || body[0] != want[0] || body[1] != want[1] {
		t.Fatalf("body = %v, want %v", body, want)
	}
	if g.Score() != 1 {
		t.Errorf("score = %d, want 1", g.Score())
	}
	food := g.GetFood()
	if food == want[0] || food == want[1] {
		t.Errorf("new food %v spawned on the snake", food)
	}
	if g.HighScore() != 1 || store.high != 1 {
		t.Errorf("high score = %d (stored %d), want 1", g.HighScore(), store.high)
	}
	f := presenter.last()
	if f.Score != 1 || !f.NewRecord || f.State != types.Running {
		t.Errorf("last frame = score %d record %v state %v", f.Score, f.NewRecord, f.State)
	}
}

func TestWallDeathScenario(t *testing.T) {
	g, _, presenter, store := newTestGame(t)
	g.Start()
	snake := g.GetSnake()
	snake.Body = []types.Point{{X: 0, Y: 10}}
	snake.Direction = types.Left
	g.foodMgr.Place(types.Point{X: 15, Y: 15})

	g.Tick()

	if g.State() != types.Ended {
		t.Fatalf("state = %v, want ended", g.State())
	}
	if g.Cause() != types.WallCollision || g.Cause().String() != "wall" {
		t.Errorf("cause = %v, want wall", g.Cause())
	}
	if snake.Head() != (types.Point{X: -1, Y: 10}) {
		t.Errorf("head = %v, want (-1,10)", snake.Head())
	}
	if g.Ticking() {
		t.Error("ticker still active after death")
	}
	if len(store.records) != 1 || store.records[0].Cause != "wall" || store.records[0].UUID != g.UUID {
		t.Errorf("recorded sessions = %+v", store.records)
	}
	lines := presenter.last().Overlay()
	if len(lines) != 3 || lines[0] != "You Died!" || lines[1] != "Final Score: 0" || lines[2] != "You lost -- hit the wall" {
		t.Errorf("overlay = %q", lines)
	}
}

func TestSelfDeathScenario(t *testing.T) {
	g, _, presenter, _ := newTestGame(t)
	g.Start()
	snake := g.GetSnake()
	snake.Body = []types.Point{{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 5, Y: 7}}
	// Force the move into the neck; SetDirection would refuse it.
	snake.Direction = types.Down
	g.foodMgr.Place(types.Point{X: 15, Y: 15})

	g.Tick()

	if g.State() != types.Ended || g.Cause() != types.SelfCollision {
		t.Fatalf("state %v cause %v, want ended/self", g.State(), g.Cause())
	}
	if got := presenter.last().Overlay()[2]; got != "You died -- hit yourself" {
		t.Errorf("reason = %q", got)
	}
}

func TestSelfDeathByTurning(t *testing.T) {
	g, _, _, _ := newTestGame(t)
	g.Start()
	snake := g.GetSnake()
	// Head at (5,5) moving right, with the body curling back underneath it.
	snake.Body = []types.Point{{X: 5, Y: 5}, {X: 4, Y: 5}, {X: 3, Y: 5}, {X: 3, Y: 6}, {X: 4, Y: 6}, {X: 5, Y: 6}, {X: 6, Y: 6}}
	g.foodMgr.Place(types.Point{X: 15, Y: 15})

	if !g.SetDirection(types.Down) {
		t.Fatal("turn down rejected")
	}
	g.Tick() // onto (5,6)
	if g.State() != types.Ended || g.Cause() != types.SelfCollision {
		t.Errorf("state %v cause %v, want ended/self", g.State(), g.Cause())
	}
}

func TestReversalIgnored(t *testing.T) {
	g, _, _, _ := newTestGame(t)
	g.Start()

	if g.SetDirection(types.Left) {
		t.Error("reversal accepted")
	}
	if g.GetSnake().Direction != types.Right {
		t.Errorf("direction = %v, want right", g.GetSnake().Direction)
	}

	if !g.SetDirection(types.Up) {
		t.Error("turn rejected")
	}
	g.foodMgr.Place(types.Point{X: 0, Y: 0})
	g.Tick()
	if g.GetSnake().Head() != (types.Point{X: 10, Y: 9}) {
		t.Errorf("head = %v, want (10,9)", g.GetSnake().Head())
	}
}

func TestReversalOfStagedTurnIgnored(t *testing.T) {
	g, _, _, _ := newTestGame(t)
	g.Start()
	g.foodMgr.Place(types.Point{X: 0, Y: 0})

	if !g.SetDirection(types.Up) {
		t.Fatal("turn up rejected")
	}
	if g.SetDirection(types.Down) {
		t.Error("down accepted while up is staged")
	}
	if g.GetSnake().Direction != types.Up {
		t.Errorf("direction = %v, want up", g.GetSnake().Direction)
	}

	g.Tick()
	if g.GetSnake().Head() != (types.Point{X: 10, Y: 9}) {
		t.Errorf("head = %v, want (10,9)", g.GetSnake().Head())
	}
}

func TestSetDirectionRejectedWhileRestartDebounced(t *testing.T) {
	g, _, _, _ := newTestGame(t)
	if !g.Restart() {
		t.Fatal("first restart ignored")
	}
	g.GetSnake().Body = []types.Point{{X: 0, Y: 0}}
	g.GetSnake().Direction = types.Up
	g.Tick()
	if g.State() != types.Ended {
		t.Fatalf("state = %v, want ended", g.State())
	}

	// The clock has not moved, so the implicit restart is debounced.
	if g.SetDirection(types.Right) {
		t.Error("direction accepted on an ended session")
	}
	if g.State() != types.Ended {
		t.Errorf("state = %v, want ended", g.State())
	}
	if g.GetSnake().Direction != types.Up {
		t.Errorf("dead snake direction changed to %v", g.GetSnake().Direction)
	}
}

func TestLengthInvariantOverManyTicks(t *testing.T) {
	g, _, _, _ := newTestGame(t)
	g.Start()

	// Sweep the board in a serpentine so the run lasts.
	for i := 0; i < 300 && g.State() == types.Running; i++ {
		before := g.GetSnake().Len()
		score := g.Score()
		head := g.GetSnake().Head()
		switch {
		case head.X == g.Grid.Width-1 && g.GetSnake().Direction == types.Right:
			g.SetDirection(types.Down)
		case head.X == 0 && g.GetSnake().Direction == types.Left:
			g.SetDirection(types.Down)
		case g.GetSnake().Direction == types.Down && head.X == g.Grid.Width-1:
			g.SetDirection(types.Left)
		case g.GetSnake().Direction == types.Down && head.X == 0:
			g.SetDirection(types.Right)
		}

		g.Tick()
		if g.State() != types.Running {
			break
		}

		after := g.GetSnake().Len()
		ate := g.Score() == score+1
		if ate && after != before+1 {
			t.Fatalf("tick %d: ate but length %d -> %d", i, before, after)
		}
		if !ate && after != before {
			t.Fatalf("tick %d: length %d -> %d without food", i, before, after)
		}
		if g.GetSnake().Occupies(g.GetFood()) {
			t.Fatalf("tick %d: food %v on the snake", i, g.GetFood())
		}
	}
}

func TestHighScoreOnlyIncreases(t *testing.T) {
	g, _, _, store := newTestGame(t)
	store.high = 0

	if !g.setHighScoreIfNeeded(5) {
		t.Fatal("5 did not beat 0")
	}
	for _, s := range []int{5, 3, 0} {
		if g.setHighScoreIfNeeded(s) {
			t.Errorf("setHighScoreIfNeeded(%d) changed the high score", s)
		}
	}
	if g.HighScore() != 5 {
		t.Errorf("high score = %d, want 5", g.HighScore())
	}
	if len(store.sets) != 1 {
		t.Errorf("store written %d times, want 1", len(store.sets))
	}
}

func TestHighScoreLoadedFromStore(t *testing.T) {
	clk := clock.NewMockClock(epoch)
	store := &memoryStore{high: 12}
	g := NewGame(Options{Seed: 1, Clock: clk, Store: store})

	if g.HighScore() != 12 {
		t.Errorf("high score = %d, want 12", g.HighScore())
	}
	g.Start()
	g.foodMgr.Place(types.Point{X: 11, Y: 10})
	g.Tick()
	if g.HighScore() != 12 || len(store.sets) != 0 {
		t.Errorf("score 1 overwrote high score 12: %d, writes %v", g.HighScore(), store.sets)
	}
}

func TestHighScoreStoreFailureKeepsPlaying(t *testing.T) {
	g, _, _, store := newTestGame(t)
	store.failing = true
	g.Start()
	g.foodMgr.Place(types.Point{X: 11, Y: 10})

	g.Tick()

	if g.State() != types.Running || g.HighScore() != 1 {
		t.Errorf("state %v high %d after store failure", g.State(), g.HighScore())
	}
}

func TestStartIsIdempotent(t *testing.T) {
	g, _, _, _ := newTestGame(t)
	g.Start()
	id := g.UUID
	g.Start()
	if g.State() != types.Running || g.UUID != id {
		t.Errorf("second Start changed the session: %v %s", g.State(), g.UUID)
	}
}

func TestRestartReinitializes(t *testing.T) {
	g, clk, _, _ := newTestGame(t)
	g.Start()
	g.foodMgr.Place(types.Point{X: 11, Y: 10})
	g.Tick()
	old := g.UUID
	oldBackground := g.backgroundMgr.GetSnakes()[0]

	clk.Advance(time.Second)
	if !g.Restart() {
		t.Fatal("restart rejected")
	}

	if g.State() != types.Running || !g.Ticking() {
		t.Errorf("state %v ticking %v after restart", g.State(), g.Ticking())
	}
	if g.Score() != 0 || g.GetSnake().Len() != 1 || g.GetSnake().Head() != StartCell {
		t.Errorf("restart left score %d snake %v", g.Score(), g.GetSnake().Body)
	}
	if g.GetSnake().Direction != StartDirection {
		t.Errorf("direction = %v", g.GetSnake().Direction)
	}
	if g.UUID == old {
		t.Error("session id reused")
	}
	if g.backgroundMgr.GetSnakes()[0] == oldBackground {
		t.Error("background snakes not regenerated")
	}
	if g.HighScore() != 1 {
		t.Errorf("high score lost on restart: %d", g.HighScore())
	}
}

func TestRestartDebounce(t *testing.T) {
	g, clk, _, _ := newTestGame(t)

	if !g.Restart() {
		t.Fatal("first restart rejected")
	}
	id := g.UUID

	clk.Advance(50 * time.Millisecond)
	if g.Restart() {
		t.Error("duplicate restart within debounce accepted")
	}
	if g.UUID != id {
		t.Error("debounced restart reinitialized the session")
	}

	clk.Advance(DefaultRestartDebounce)
	if !g.Restart() {
		t.Error("restart after debounce window rejected")
	}
}

func TestUpdateFollowsClock(t *testing.T) {
	g, clk, _, _ := newTestGame(t)
	g.foodMgr.Place(types.Point{X: 0, Y: 0})

	if g.Update() {
		t.Fatal("idle game ticked")
	}

	g.Start()
	clk.Advance(DefaultTickPeriod / 2)
	if g.Update() {
		t.Error("ticked before the period elapsed")
	}
	clk.Advance(DefaultTickPeriod / 2)
	if !g.Update() {
		t.Fatal("did not tick after one period")
	}
	if g.GetSnake().Head() != (types.Point{X: 11, Y: 10}) {
		t.Errorf("head = %v, want (11,10)", g.GetSnake().Head())
	}
}

func TestDeathStopsUpdates(t *testing.T) {
	g, clk, _, _ := newTestGame(t)
	g.Start()
	g.GetSnake().Body = []types.Point{{X: 19, Y: 3}}
	g.foodMgr.Place(types.Point{X: 0, Y: 0})

	clk.Advance(DefaultTickPeriod)
	g.Update()
	if g.State() != types.Ended {
		t.Fatalf("state = %v, want ended", g.State())
	}

	head := g.GetSnake().Head()
	for i := 0; i < 5; i++ {
		clk.Advance(DefaultTickPeriod)
		if g.Update() {
			t.Fatal("ended game ticked")
		}
	}
	if g.GetSnake().Head() != head {
		t.Error("ended snake moved")
	}
}

func TestSetDirectionStartsGame(t *testing.T) {
	g, _, _, _ := newTestGame(t)
	if !g.SetDirection(types.Down) {
		t.Error("first direction rejected")
	}
	if g.State() != types.Running {
		t.Errorf("state = %v, want running", g.State())
	}
}

func TestAnyInput(t *testing.T) {
	g, clk, _, _ := newTestGame(t)

	g.AnyInput()
	if g.State() != types.Running {
		t.Fatalf("idle -> %v, want running", g.State())
	}
	id := g.UUID
	g.AnyInput()
	if g.UUID != id {
		t.Error("input while running restarted the session")
	}

	g.GetSnake().Body = []types.Point{{X: 0, Y: 0}}
	g.GetSnake().Direction = types.Up
	g.Tick()
	if g.State() != types.Ended {
		t.Fatalf("state = %v, want ended", g.State())
	}

	clk.Advance(time.Second)
	g.AnyInput()
	if g.State() != types.Running || g.UUID == id || g.Score() != 0 {
		t.Errorf("input after death: state %v uuid reused %v", g.State(), g.UUID == id)
	}
}

func TestStopAndResume(t *testing.T) {
	g, _, presenter, _ := newTestGame(t)
	g.Start()
	g.foodMgr.Place(types.Point{X: 0, Y: 0})
	g.Tick()
	id, head := g.UUID, g.GetSnake().Head()

	g.Stop()
	if g.State() != types.Idle || g.Ticking() {
		t.Fatalf("state %v ticking %v after stop", g.State(), g.Ticking())
	}
	if got := presenter.last().Overlay(); len(got) != 1 {
		t.Errorf("idle overlay = %q", got)
	}

	g.AnyInput()
	if g.State() != types.Running || g.UUID != id || g.GetSnake().Head() != head {
		t.Error("resume did not keep the paused board")
	}
}

func TestStartAfterDeathRestarts(t *testing.T) {
	g, clk, _, _ := newTestGame(t)
	g.Start()
	g.GetSnake().Body = []types.Point{{X: 19, Y: 19}}
	g.Tick()
	if g.State() != types.Ended {
		t.Fatalf("state = %v", g.State())
	}

	clk.Advance(time.Second)
	g.Start()
	if g.State() != types.Running || g.GetSnake().Head() != StartCell {
		t.Errorf("Start after death: state %v head %v", g.State(), g.GetSnake().Head())
	}
}

func TestSameSeedSameGame(t *testing.T) {
	run := func() Frame {
		clk := clock.NewMockClock(epoch)
		g := NewGame(Options{Seed: 99, Clock: clk, BackgroundSnakes: 8, TurnChance: 0.02})
		g.Start()
		for i := 0; i < 8; i++ {
			g.Tick()
		}
		return g.Frame()
	}

	a, b := run(), run()
	if a.Food != b.Food {
		t.Errorf("food differs: %v vs %v", a.Food, b.Food)
	}
	for i := range a.Background {
		if a.Background[i].Body[0] != b.Background[i].Body[0] {
			t.Errorf("background %d differs: %v vs %v", i, a.Background[i].Body[0], b.Background[i].Body[0])
		}
	}
}

func TestSmallGridCentresStart(t *testing.T) {
	g := NewGame(Options{TileCount: 6, Seed: 3, Clock: clock.NewMockClock(epoch)})
	if g.GetSnake().Head() != (types.Point{X: 3, Y: 3}) {
		t.Errorf("start = %v, want (3,3)", g.GetSnake().Head())
	}
}
