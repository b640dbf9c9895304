package runner

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"

	"github.com/plus3/laneshift/ecs"
)

// ScoreKeeper persists the best score across sessions.
type ScoreKeeper interface {
	Best() (float64, error)
	// Submit records score if it beats the stored best and reports whether it did.
	Submit(score float64) (bool, error)
}

// GameConfig configures a Game.
type GameConfig struct {
	Tuning Tuning
	Seed   uint64
	// Rand overrides the seeded source built from Seed.
	Rand   Rand
	Scores ScoreKeeper
	Logger *slog.Logger
}

// ErrInvalidDirection is returned for lane changes other than -1 and +1.
var ErrInvalidDirection = errors.New("lane direction must be -1 or +1")

// Game owns one world and drives the session state machine. It is not safe
// for concurrent use.
type Game struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler

	session *ecs.Singleton[Session]
	player  *ecs.Singleton[Player]
	tuning  *ecs.Singleton[Tuning]
	events  *ecs.Singleton[EventLog]
	board   *ecs.Singleton[Scoreboard]

	obstacles *ecs.View[obstacleView]
	coins     *ecs.View[coinView]

	scores ScoreKeeper
	logger *slog.Logger
}

// NewComponentRegistry registers every component the game spawns.
func NewComponentRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Obstacle](registry)
	ecs.RegisterComponent[Coin](registry)
	ecs.RegisterComponent[Spawned](registry)
	return registry
}

// NewGame validates the tuning and builds a world in the NotStarted phase.
func NewGame(cfg GameConfig) (*Game, error) {
	tuning := cfg.Tuning
	if err := tuning.Validate(); err != nil {
		return nil, err
	}
	tuning.Lanes = slices.Clone(tuning.Lanes)

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	source := cfg.Rand
	if source == nil {
		source = NewRand(cfg.Seed)
	}

	storage := ecs.NewStorage(NewComponentRegistry())
	g := &Game{
		storage:   storage,
		scheduler: ecs.NewScheduler(storage),
		tuning:    ecs.NewSingleton(storage, tuning),
		events:    ecs.NewSingleton(storage, EventLog{}),
		obstacles: ecs.NewView[obstacleView](storage),
		coins:     ecs.NewView[coinView](storage),
		scores:    cfg.Scores,
		logger:    logger,
	}
	g.session = ecs.NewSingleton(storage, newSession(&tuning))
	g.player = ecs.NewSingleton(storage, newPlayer(&tuning))
	g.board = ecs.NewSingleton(storage, Scoreboard{Wave: 1, Speed: tuning.InitialSpeed})

	if g.scores != nil {
		best, err := g.scores.Best()
		if err != nil {
			logger.Warn("reading high score", "error", err)
		}
		g.board.Get().Best = best
	}

	g.scheduler.Register(&PlayerSystem{})
	g.scheduler.Register(&SpawnSystem{Rand: source})
	g.scheduler.Register(&MoveSystem{})
	g.scheduler.Register(&CollisionSystem{})
	g.scheduler.Register(&DifficultySystem{})
	g.scheduler.Register(&ScoreboardSystem{})

	return g, nil
}

// NewRand returns the PCG source sessions draw from.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func newSession(t *Tuning) Session {
	return Session{
		Phase:         PhaseNotStarted,
		Speed:         t.InitialSpeed,
		SpawnInterval: t.InitialSpawnInterval,
		Wave:          1,
	}
}

// Start begins the first session. It does nothing once a session has been
// started; use Restart to play again.
func (g *Game) Start() bool {
	if g.session.Get().Phase != PhaseNotStarted {
		return false
	}
	g.begin()
	return true
}

// Restart discards the current session and starts a fresh one.
func (g *Game) Restart() {
	g.begin()
}

func (g *Game) begin() {
	t := g.tuning.Get()
	g.storage.Clear()

	session := newSession(t)
	session.Phase = PhaseRunning
	g.session.Set(session)
	g.player.Set(newPlayer(t))
	g.board.Set(Scoreboard{Wave: session.Wave, Speed: session.Speed, Best: g.board.Get().Best})

	g.events.Get().emit(Event{Kind: EventSessionStarted})
	g.logger.Debug("session started")
}

// TogglePause switches between Running and Paused.
func (g *Game) TogglePause() bool {
	session := g.session.Get()
	switch session.Phase {
	case PhaseRunning:
		session.Phase = PhasePaused
		g.events.Get().emit(Event{Kind: EventSessionPaused, Tick: session.Ticks})
	case PhasePaused:
		session.Phase = PhaseRunning
		g.events.Get().emit(Event{Kind: EventSessionResumed, Tick: session.Ticks})
	default:
		return false
	}
	return true
}

// ChangeLane retargets the player one lane left (-1) or right (+1). Moves
// past the outermost lanes are ignored. It reports whether the target lane
// changed.
func (g *Game) ChangeLane(direction int) (bool, error) {
	if direction != -1 && direction != 1 {
		return false, fmt.Errorf("%w: got %d", ErrInvalidDirection, direction)
	}
	session := g.session.Get()
	if !session.Running() {
		return false, nil
	}

	player := g.player.Get()
	if !shiftLane(player, g.tuning.Get(), direction) {
		return false, nil
	}
	g.events.Get().emit(Event{Kind: EventLaneChanged, Tick: session.Ticks, Value: float64(player.TargetLane)})
	return true, nil
}

// Jump starts a jump if the session is running and the player is grounded.
func (g *Game) Jump() bool {
	session := g.session.Get()
	if !session.Running() {
		return false
	}
	if !jump(g.player.Get(), g.tuning.Get()) {
		return false
	}
	g.events.Get().emit(Event{Kind: EventJumped, Tick: session.Ticks})
	return true
}

// Tick advances the world by dt seconds and returns the events raised since
// the previous tick, including those raised by input calls.
func (g *Game) Tick(dt float64) []Event {
	if !(dt > 0) {
		dt = 0
	}

	session := g.session.Get()
	if session.Running() {
		session.Ticks++
		session.Elapsed += dt
	}

	g.scheduler.Once(dt)

	events := g.events.Get().drain()
	for _, e := range events {
		if e.Kind == EventSessionEnded {
			g.sessionEnded(e)
		}
	}
	return events
}

func (g *Game) sessionEnded(e Event) {
	session := g.session.Get()
	g.logger.Info("session ended",
		"outcome", e.Outcome,
		"score", int(session.Score),
		"wave", session.Wave,
		"ticks", session.Ticks,
		"dodged", session.Dodged,
		"collected", session.Collected)

	if g.scores == nil {
		return
	}
	improved, err := g.scores.Submit(session.Score)
	if err != nil {
		g.logger.Warn("saving high score", "error", err)
		return
	}
	if improved {
		g.logger.Info("new high score", "score", int(session.Score))
	}
}

// Phase returns the current session phase.
func (g *Game) Phase() Phase {
	return g.session.Get().Phase
}

// Tuning returns a copy of the active tuning.
func (g *Game) Tuning() Tuning {
	t := *g.tuning.Get()
	t.Lanes = slices.Clone(t.Lanes)
	return t
}

// EntityKind distinguishes the spawned entity variants in a snapshot.
type EntityKind int

const (
	KindObstacle EntityKind = iota
	KindCoin
)

// EntitySnapshot is a copy of one spawned entity.
type EntitySnapshot struct {
	Kind    EntityKind
	Seq     uint64
	Lane    int
	X, Y, Z float64
	// Size is the obstacle edge length; Spin the coin rotation.
	Size float64
	Spin float64
}

// Snapshot is a read-only copy of everything a renderer needs.
type Snapshot struct {
	Session    Session
	Player     Player
	Scoreboard Scoreboard
	Lanes      []float64
	// Entities are ordered oldest first.
	Entities []EntitySnapshot
}

// Snapshot copies the current world state.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Session:    *g.session.Get(),
		Player:     *g.player.Get(),
		Scoreboard: *g.board.Get(),
		Lanes:      slices.Clone(g.tuning.Get().Lanes),
	}

	for o := range g.obstacles.Values() {
		snap.Entities = append(snap.Entities, EntitySnapshot{
			Kind: KindObstacle,
			Seq:  o.Spawned.Seq,
			Lane: o.Obstacle.Lane,
			X:    o.Position.X, Y: o.Position.Y, Z: o.Position.Z,
			Size: o.Obstacle.Size,
		})
	}
	for c := range g.coins.Values() {
		snap.Entities = append(snap.Entities, EntitySnapshot{
			Kind: KindCoin,
			Seq:  c.Spawned.Seq,
			Lane: c.Coin.Lane,
			X:    c.Position.X, Y: c.Position.Y, Z: c.Position.Z,
			Spin: c.Coin.Spin,
		})
	}
	slices.SortFunc(snap.Entities, func(a, b EntitySnapshot) int {
		return cmp.Compare(a.Seq, b.Seq)
	})

	return snap
}

// Stats reports world and per-system statistics.
type Stats struct {
	Storage   *ecs.StorageStats
	Scheduler *ecs.SchedulerStats
}

// Stats collects storage and scheduler statistics.
func (g *Game) Stats() Stats {
	return Stats{
		Storage:   g.storage.CollectStats(),
		Scheduler: g.scheduler.GetStats(),
	}
}

// Storage exposes the world for debug tooling.
func (g *Game) Storage() *ecs.Storage {
	return g.storage
}

// Scheduler exposes the system pipeline for debug tooling.
func (g *Game) Scheduler() *ecs.Scheduler {
	return g.scheduler
}
