package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/leonelquinteros/gotext"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"skirmish/pkg/config"
	"skirmish/pkg/game/battle"
	"skirmish/pkg/game/board"
	"skirmish/pkg/game/calibrate"
	"skirmish/pkg/game/renderer"
	"skirmish/pkg/game/renderer/tui"
	"skirmish/pkg/game/report"
	"skirmish/pkg/game/unit"
)

var version = "dev" // set via ldflags during build

// initLogger builds a zap logger from the logging section of the config
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("logging.level: %w", err)
	}

	var zcfg zap.Config
	if cfg.Format == "json" {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.OutputPaths = []string{"stderr"}
	return zcfg.Build()
}

// flagOverrides returns the config keys for flags given explicitly on the command line
func flagOverrides(fs *flag.FlagSet, keys map[string]string) map[string]any {
	overrides := make(map[string]any)
	fs.Visit(func(f *flag.Flag) {
		key, ok := keys[f.Name]
		if !ok {
			return
		}
		if getter, ok := f.Value.(flag.Getter); ok {
			overrides[key] = getter.Get()
		}
	})
	return overrides
}

func main() {
	configPath := flag.String("config", "", "path to configuration file")
	flag.String("board", "input.txt", "path to the battle board")
	flag.String("mode", config.ModeAll, "battle, calibrate or all")
	flag.Bool("render", false, "print the board after every round")
	flag.String("report", "", "write a YAML report to this path (- for stdout)")
	flag.Int("max-power", 0, "give up calibrating above this attack power (0 = never)")
	flag.Parse()

	cfg, err := config.Load(*configPath, flagOverrides(flag.CommandLine, map[string]string{
		"board":     "board",
		"mode":      "mode",
		"render":    "render.enabled",
		"report":    "report.path",
		"max-power": "calibration.max_power",
	}))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.Locale.Dir != "" {
		gotext.Configure(cfg.Locale.Dir, cfg.Locale.Language, "default")
	}

	renderer.SetRenderer(tui.New())
	renderer.Init()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting skirmish",
		zap.String("version", version),
		zap.String("board", cfg.Board),
		zap.String("mode", cfg.Mode),
	)

	if err := run(ctx, cfg, logger); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Warn("interrupted")
			return
		}
		logger.Fatal("run failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	grid, initial, err := board.Load(cfg.Board, cfg.Stats())
	if err != nil {
		return err
	}
	if !grid.HasSolidBorder() {
		logger.Warn("board border is not solid wall",
			zap.String("board", cfg.Board))
	}
	logger.Info("board loaded",
		zap.Int("rows", grid.Rows()),
		zap.Int("cols", grid.Cols()),
		zap.Int("open_cells", grid.CountOpen()),
		zap.Int("goblins", initial.AliveCount(unit.Goblin)),
		zap.Int("elves", initial.AliveCount(unit.Elf)),
	)

	var battleOpts []battle.Option
	if cfg.Render.Enabled {
		battleOpts = append(battleOpts, renderer.Every(cfg.Render.Every))
	}

	rep := &report.Report{Board: cfg.Board}

	if cfg.Mode == config.ModeBattle || cfg.Mode == config.ModeAll {
		opts := append([]battle.Option{battle.WithLogger(logger)}, battleOpts...)
		b := battle.New(initial.Clone(), opts...)
		if err := b.Run(ctx); err != nil {
			return err
		}
		summary, err := report.FromBattle(b)
		if err != nil {
			return err
		}
		rep.Battle = summary
		renderer.ShowMessage(gotext.Get("Outcome: %d rounds x %d hit points = %d", summary.Rounds, summary.HitPoints, summary.Outcome))
		logger.Info("battle finished",
			zap.String("winner", summary.Winner),
			zap.Int("rounds", summary.Rounds),
			zap.Int("outcome", summary.Outcome),
		)
	}

	if cfg.Mode == config.ModeCalibrate || cfg.Mode == config.ModeAll {
		opts := calibrate.DefaultOptions()
		opts.Faction = cfg.CalibrationFaction()
		opts.BasePower = cfg.Units.AttackPower
		opts.StartPower = cfg.CalibrationStartPower()
		opts.MaxPower = cfg.Calibration.MaxPower
		opts.Logger = logger
		if cfg.Mode == config.ModeCalibrate {
			opts.BattleOptions = battleOpts
		}

		res, err := calibrate.Search(ctx, initial, opts)
		if err != nil {
			return err
		}
		summary, err := report.FromCalibration(res)
		if err != nil {
			return err
		}
		rep.Calibration = summary
		renderer.ShowMessage(gotext.Get("Calibrated outcome: power %d, %d rounds x %d hit points = %d",
			res.AttackPower, res.Rounds, res.HitPoints, res.Outcome))
		logger.Info("calibration finished",
			zap.Stringer("faction", res.Faction),
			zap.Int("attack_power", res.AttackPower),
			zap.Int("trials", res.Trials),
			zap.Int("outcome", res.Outcome),
		)
	}

	if cfg.Report.Path != "" {
		if err := rep.WriteFile(cfg.Report.Path); err != nil {
			return err
		}
	}
	return nil
}
