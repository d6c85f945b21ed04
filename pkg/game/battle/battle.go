// Package battle runs the turn-based goblin/elf simulation on a fixed grid.
//
// A Battle is a small state machine. Each round starts by freezing the turn order (living units
// in reading order); units then act one at a time, moving toward the nearest reachable enemy
// and attacking the weakest adjacent one. The battle is over as soon as one faction has no
// living members.
package battle

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"skirmish/pkg/engine/world"
	"skirmish/pkg/game/unit"
)

// State is the scheduler state of a battle
type State int

// Scheduler states
const (
	RoundStart State = iota
	UnitActing
	RoundComplete
	BattleOver
)

func (s State) String() string {
	switch s {
	case RoundStart:
		return "RoundStart"
	case UnitActing:
		return "UnitActing"
	case RoundComplete:
		return "RoundComplete"
	case BattleOver:
		return "BattleOver"
	default:
		return "Unknown"
	}
}

var (
	// ErrBattleOver is returned when stepping a finished battle
	ErrBattleOver = errors.New("battle is over")
	// ErrBattleInProgress is returned when asking for the outcome of an unfinished battle
	ErrBattleInProgress = errors.New("battle is still in progress")
)

// Battle is the mutable state of one simulation
type Battle struct {
	grid  *world.Grid
	units *unit.Set

	round  int
	state  State
	order  []unit.ID
	cursor int

	initialHitPoints int
	damage           int

	logger         *zap.Logger
	observers      []Observer
	roundObservers []func(Snapshot)
}

// Option configures a Battle
type Option func(*Battle)

// WithLogger sets the logger; the default discards everything
func WithLogger(l *zap.Logger) Option {
	return func(b *Battle) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithObserver registers a callback for every event
func WithObserver(o Observer) Option {
	return func(b *Battle) {
		if o != nil {
			b.observers = append(b.observers, o)
		}
	}
}

// WithRoundObserver registers a callback receiving a snapshot after every completed round
// and once more when the battle ends
func WithRoundObserver(fn func(Snapshot)) Option {
	return func(b *Battle) {
		if fn != nil {
			b.roundObservers = append(b.roundObservers, fn)
		}
	}
}

// New creates a battle over the given units. The battle takes ownership of units;
// callers that need the initial state again should pass a Clone.
func New(units *unit.Set, opts ...Option) *Battle {
	b := &Battle{
		grid:             units.Grid(),
		units:            units,
		state:            RoundStart,
		initialHitPoints: units.TotalHitPoints(),
		logger:           zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.isOver() {
		b.state = BattleOver
	}
	return b
}

// Grid returns the battle topology
func (b *Battle) Grid() *world.Grid { return b.grid }

// Units returns the units of the battle
func (b *Battle) Units() *unit.Set { return b.units }

// Round returns the number of completed rounds
func (b *Battle) Round() int { return b.round }

// State returns the current scheduler state
func (b *Battle) State() State { return b.state }

// Over reports whether one faction has been wiped out
func (b *Battle) Over() bool { return b.state == BattleOver }

// DamageDealt returns the hit points removed so far
func (b *Battle) DamageDealt() int { return b.damage }

// InitialHitPoints returns the living hit points when the battle was created
func (b *Battle) InitialHitPoints() int { return b.initialHitPoints }

// TurnOrder returns the frozen order of the current round, or nil between rounds
func (b *Battle) TurnOrder() []unit.ID {
	if b.state != UnitActing {
		return nil
	}
	return append([]unit.ID(nil), b.order...)
}

// Winner returns the surviving faction once the battle is over
func (b *Battle) Winner() (unit.Faction, bool) {
	if !b.Over() {
		return 0, false
	}
	for _, f := range unit.Factions() {
		if b.units.AliveCount(f) > 0 {
			return f, true
		}
	}
	return 0, false
}

func (b *Battle) emit(e Event) {
	for _, o := range b.observers {
		o(e)
	}
	if e.Kind != EventRoundComplete && e.Kind != EventBattleOver {
		return
	}
	if len(b.roundObservers) == 0 {
		return
	}
	snap := b.Snapshot()
	for _, fn := range b.roundObservers {
		fn(snap)
	}
}

func (b *Battle) isOver() bool {
	return b.units.AliveCount(unit.Goblin) == 0 || b.units.AliveCount(unit.Elf) == 0
}

// beginRound freezes the turn order for the coming round
func (b *Battle) beginRound() {
	b.order = b.units.InReadingOrder()
	b.cursor = 0
	b.state = UnitActing
}

// nextActor advances the cursor to the next living unit in the frozen order
func (b *Battle) nextActor() (unit.ID, bool) {
	for b.cursor < len(b.order) {
		id := b.order[b.cursor]
		b.cursor++
		if u := b.units.Get(id); u != nil && u.Alive {
			return id, true
		}
	}
	return 0, false
}

// hasPendingActor reports whether a living unit is still scheduled after the cursor
func (b *Battle) hasPendingActor() bool {
	for _, id := range b.order[b.cursor:] {
		if u := b.units.Get(id); u != nil && u.Alive {
			return true
		}
	}
	return false
}

func (b *Battle) completeRound() {
	b.round++
	b.state = RoundComplete
	b.emit(Event{Kind: EventRoundComplete, Round: b.round})
}

func (b *Battle) finish() {
	b.state = BattleOver
	winner, _ := b.Winner()
	b.logger.Debug("battle over",
		zap.Int("rounds", b.round),
		zap.Stringer("winner", winner),
		zap.Int("hit_points", b.units.TotalHitPoints()),
	)
	b.emit(Event{Kind: EventBattleOver, Round: b.round, Winner: winner})
}

// Step runs exactly one unit's turn: an optional move followed by an optional attack.
// Reaching the end of the frozen order completes the round. When the turn leaves one
// faction without living members the battle is over, and the round only counts (and is
// reported as complete) if no living unit was left to act in it.
func (b *Battle) Step() error {
	switch b.state {
	case BattleOver:
		return ErrBattleOver
	case RoundStart, RoundComplete:
		b.beginRound()
	}

	id, ok := b.nextActor()
	if !ok {
		// Only reachable if the frozen order was empty.
		b.completeRound()
		return nil
	}

	if err := b.takeTurn(id); err != nil {
		return err
	}

	if b.isOver() {
		if !b.hasPendingActor() {
			b.completeRound()
		}
		b.finish()
		return nil
	}
	if !b.hasPendingActor() {
		b.completeRound()
	}
	return nil
}

func (b *Battle) takeTurn(id unit.ID) error {
	u := b.units.Get(id)

	if to, ok := NextStep(b.units, id); ok {
		from := u.Pos
		if err := b.units.Move(id, from, to); err != nil {
			return fmt.Errorf("round %d: %w", b.round, err)
		}
		b.emit(Event{Kind: EventMove, Round: b.round, Actor: id, From: from, To: to})
	}

	if target, ok := SelectTarget(b.units, id); ok {
		b.attack(id, target)
	}
	return nil
}

// PerformRound steps until the current round completes or the battle ends
func (b *Battle) PerformRound() error {
	if b.state == BattleOver {
		return ErrBattleOver
	}
	for {
		if err := b.Step(); err != nil {
			return err
		}
		if b.state == RoundComplete || b.state == BattleOver {
			return nil
		}
	}
}

// Run plays the battle to the end. The context is checked between rounds.
func (b *Battle) Run(ctx context.Context) error {
	for !b.Over() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := b.PerformRound(); err != nil {
			return err
		}
	}
	return nil
}
