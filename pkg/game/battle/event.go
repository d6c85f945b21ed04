package battle

import (
	"fmt"

	"skirmish/pkg/engine/world"
	"skirmish/pkg/game/unit"
)

// EventKind identifies what happened during a turn
type EventKind int

// Event kinds
const (
	EventMove EventKind = iota
	EventAttack
	EventDeath
	EventRoundComplete
	EventBattleOver
)

func (k EventKind) String() string {
	switch k {
	case EventMove:
		return "move"
	case EventAttack:
		return "attack"
	case EventDeath:
		return "death"
	case EventRoundComplete:
		return "round_complete"
	case EventBattleOver:
		return "battle_over"
	default:
		return "unknown"
	}
}

// Event is emitted to observers as the battle progresses.
// Round is the number of completed rounds at the time of the event.
type Event struct {
	Kind   EventKind
	Round  int
	Actor  unit.ID
	Target unit.ID
	From   world.Position
	To     world.Position
	Damage int
	// HitPoints is the target's remaining hit points after an attack
	HitPoints int
	Winner    unit.Faction
}

func (e Event) String() string {
	switch e.Kind {
	case EventMove:
		return fmt.Sprintf("round %d: unit %d moves %v -> %v", e.Round, e.Actor, e.From, e.To)
	case EventAttack:
		return fmt.Sprintf("round %d: unit %d hits unit %d for %d (%d left)", e.Round, e.Actor, e.Target, e.Damage, e.HitPoints)
	case EventDeath:
		return fmt.Sprintf("round %d: unit %d killed by unit %d", e.Round, e.Target, e.Actor)
	case EventRoundComplete:
		return fmt.Sprintf("round %d complete", e.Round)
	case EventBattleOver:
		return fmt.Sprintf("battle over after %d rounds, %v wins", e.Round, e.Winner)
	default:
		return "unknown event"
	}
}

// Observer receives battle events synchronously
type Observer func(Event)
