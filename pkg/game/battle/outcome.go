package battle

// Outcome returns completed rounds times the hit points left among living units.
// It is only defined once the battle is over.
func (b *Battle) Outcome() (int, error) {
	if !b.Over() {
		return 0, ErrBattleInProgress
	}
	return b.round * b.units.TotalHitPoints(), nil
}
