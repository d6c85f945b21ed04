// Package calibrate searches for the smallest attack power that lets one faction win a
// battle without losing a single unit.
package calibrate

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"skirmish/pkg/game/battle"
	"skirmish/pkg/game/unit"
)

// ErrNoCleanVictory is returned when MaxPower is reached without a casualty-free win
var ErrNoCleanVictory = errors.New("no casualty-free victory within attack power bound")

// Result describes the accepted trial
type Result struct {
	Faction     unit.Faction
	AttackPower int
	Rounds      int
	HitPoints   int
	Outcome     int
	// Trials counts every simulated power, the accepted one included
	Trials int
	Battle *battle.Battle
}

// Options tune the search
type Options struct {
	// Faction is the side whose attack power is raised
	Faction unit.Faction
	// BasePower is the faction's unboosted attack power; zero means unit.DefaultAttackPower
	BasePower int
	// StartPower is the first power tried; it must be above BasePower
	StartPower int
	// MaxPower stops the search when exceeded; zero means unbounded
	MaxPower int
	Logger   *zap.Logger
	// BattleOptions are passed to every trial battle
	BattleOptions []battle.Option
}

// DefaultOptions boosts elves starting one above the default attack power
func DefaultOptions() Options {
	return Options{
		Faction:    unit.Elf,
		BasePower:  unit.DefaultAttackPower,
		StartPower: unit.DefaultAttackPower + 1,
	}
}

// Search runs trials at increasing attack power for opts.Faction until one ends with that
// faction winning and no unit of it dead. initial is never modified.
func Search(ctx context.Context, initial *unit.Set, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	base := opts.BasePower
	if base == 0 {
		base = unit.DefaultAttackPower
	}
	if opts.StartPower <= base {
		return nil, fmt.Errorf("start power %d must exceed base attack power %d", opts.StartPower, base)
	}
	if opts.MaxPower != 0 && opts.MaxPower < opts.StartPower {
		return nil, fmt.Errorf("max power %d below start power %d", opts.MaxPower, opts.StartPower)
	}
	if initial.AliveCount(opts.Faction) == 0 {
		return nil, fmt.Errorf("no %v units on the board", opts.Faction)
	}

	trials := 0
	for power := opts.StartPower; opts.MaxPower == 0 || power <= opts.MaxPower; power++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		trials++

		trialLogger := logger.With(zap.Stringer("trial_id", uuid.New()))
		b, clean, err := runTrial(ctx, initial, opts, power, trialLogger)
		if err != nil {
			return nil, fmt.Errorf("trial at power %d: %w", power, err)
		}
		trialLogger.Info("calibration trial",
			zap.Stringer("faction", opts.Faction),
			zap.Int("attack_power", power),
			zap.Int("rounds", b.Round()),
			zap.Bool("clean", clean),
		)
		if !clean {
			continue
		}

		outcome, err := b.Outcome()
		if err != nil {
			return nil, err
		}
		return &Result{
			Faction:     opts.Faction,
			AttackPower: power,
			Rounds:      b.Round(),
			HitPoints:   b.Units().TotalHitPoints(),
			Outcome:     outcome,
			Trials:      trials,
			Battle:      b,
		}, nil
	}
	return nil, fmt.Errorf("%w (%d..%d)", ErrNoCleanVictory, opts.StartPower, opts.MaxPower)
}

// runTrial plays one battle at the given power and abandons it at the first casualty of
// the boosted faction. clean is true only for a finished battle without such casualties.
// The battle logs through logger.
func runTrial(ctx context.Context, initial *unit.Set, opts Options, power int, logger *zap.Logger) (*battle.Battle, bool, error) {
	units := initial.Clone()
	units.SetAttackPower(opts.Faction, power)

	casualty := false
	battleOpts := append([]battle.Option{
		battle.WithLogger(logger),
		battle.WithObserver(func(e battle.Event) {
			if e.Kind == battle.EventDeath && units.Get(e.Target).Faction == opts.Faction {
				casualty = true
			}
		}),
	}, opts.BattleOptions...)
	b := battle.New(units, battleOpts...)

	for !b.Over() && !casualty {
		if b.State() == battle.RoundComplete {
			if err := ctx.Err(); err != nil {
				return nil, false, err
			}
		}
		if err := b.Step(); err != nil {
			return nil, false, err
		}
	}
	return b, !casualty, nil
}
