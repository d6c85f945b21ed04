// Package report turns finished battles into YAML documents.
package report

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"skirmish/pkg/game/battle"
	"skirmish/pkg/game/calibrate"
	"skirmish/pkg/game/unit"
)

// Survivor is one living unit at the end of a battle
type Survivor struct {
	ID        int    `yaml:"id"`
	Faction   string `yaml:"faction"`
	Row       int    `yaml:"row"`
	Col       int    `yaml:"col"`
	HitPoints int    `yaml:"hit_points"`
}

// Battle summarises one finished battle
type Battle struct {
	Winner      string     `yaml:"winner"`
	Rounds      int        `yaml:"rounds"`
	HitPoints   int        `yaml:"hit_points"`
	Outcome     int        `yaml:"outcome"`
	DamageDealt int        `yaml:"damage_dealt"`
	Survivors   []Survivor `yaml:"survivors"`
}

// Calibration summarises an attack power search
type Calibration struct {
	Faction     string `yaml:"faction"`
	AttackPower int    `yaml:"attack_power"`
	Trials      int    `yaml:"trials"`
	Battle      Battle `yaml:"battle"`
}

// Report is the document written by the CLI
type Report struct {
	Board       string       `yaml:"board"`
	Battle      *Battle      `yaml:"battle,omitempty"`
	Calibration *Calibration `yaml:"calibration,omitempty"`
}

// FromBattle summarises a finished battle
func FromBattle(b *battle.Battle) (*Battle, error) {
	outcome, err := b.Outcome()
	if err != nil {
		return nil, err
	}
	winner, _ := b.Winner()
	out := &Battle{
		Winner:      winner.String(),
		Rounds:      b.Round(),
		HitPoints:   b.Units().TotalHitPoints(),
		Outcome:     outcome,
		DamageDealt: b.DamageDealt(),
	}
	units := b.Units()
	for _, id := range units.InReadingOrder() {
		u := units.Get(id)
		out.Survivors = append(out.Survivors, survivor(u))
	}
	return out, nil
}

// FromCalibration summarises an accepted calibration result
func FromCalibration(r *calibrate.Result) (*Calibration, error) {
	b, err := FromBattle(r.Battle)
	if err != nil {
		return nil, err
	}
	return &Calibration{
		Faction:     r.Faction.String(),
		AttackPower: r.AttackPower,
		Trials:      r.Trials,
		Battle:      *b,
	}, nil
}

func survivor(u *unit.Unit) Survivor {
	return Survivor{
		ID:        int(u.ID),
		Faction:   u.Faction.String(),
		Row:       u.Pos.Row,
		Col:       u.Pos.Col,
		HitPoints: u.HitPoints,
	}
}

// Write encodes the report as YAML
func (r *Report) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return enc.Close()
}

// WriteFile writes the report to path, or to stdout when path is "-"
func (r *Report) WriteFile(path string) error {
	if path == "-" {
		return r.Write(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := r.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Read decodes a report written by Write
func Read(rd io.Reader) (*Report, error) {
	var r Report
	if err := yaml.NewDecoder(rd).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &r, nil
}
