package battle

import (
	"go.uber.org/zap"

	"skirmish/pkg/game/unit"
)

// SelectTarget returns the adjacent enemy with the fewest hit points.
// Ties go to the enemy first in reading order.
func SelectTarget(units *unit.Set, id unit.ID) (unit.ID, bool) {
	u := units.Get(id)
	if u == nil || !u.Alive {
		return 0, false
	}

	var best *unit.Unit
	for _, n := range u.Pos.Neighbors() {
		occupant, ok := units.Occupant(n)
		if !ok {
			continue
		}
		other := units.Get(occupant)
		if !u.IsEnemyOf(other) {
			continue
		}
		// Neighbours come in reading order, so strict < keeps the earliest of equals.
		if best == nil || other.HitPoints < best.HitPoints {
			best = other
		}
	}
	if best == nil {
		return 0, false
	}
	return best.ID, true
}

// attack applies the attacker's power to the defender and removes it at zero hit points
func (b *Battle) attack(attackerID, defenderID unit.ID) {
	attacker := b.units.Get(attackerID)
	defender := b.units.Get(defenderID)

	damage := min(attacker.AttackPower, defender.HitPoints)
	if damage < 0 {
		damage = 0
	}
	defender.HitPoints -= damage
	b.damage += damage

	b.emit(Event{
		Kind:      EventAttack,
		Round:     b.round,
		Actor:     attackerID,
		Target:    defenderID,
		From:      attacker.Pos,
		To:        defender.Pos,
		Damage:    damage,
		HitPoints: defender.HitPoints,
	})

	if defender.HitPoints > 0 {
		return
	}

	pos := defender.Pos
	b.units.Remove(defenderID)
	b.logger.Debug("unit killed",
		zap.Int("round", b.round),
		zap.Int("unit", int(defenderID)),
		zap.Stringer("faction", defender.Faction),
		zap.Int("killer", int(attackerID)),
		zap.Stringer("position", pos),
	)
	b.emit(Event{
		Kind:   EventDeath,
		Round:  b.round,
		Actor:  attackerID,
		Target: defenderID,
		From:   attacker.Pos,
		To:     pos,
	})
}
