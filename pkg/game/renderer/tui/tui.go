// Package tui renders battle snapshots to a terminal.
package tui

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"skirmish/pkg/engine/terminal"
	"skirmish/pkg/game/battle"
	"skirmish/pkg/game/renderer"
	"skirmish/pkg/game/unit"
)

// dynamicGet is used for runtime translation key lookups from markup.
// A function variable keeps go vet from flagging the non-constant format string.
var dynamicGet = gotext.Get

// TUIRenderer is the terminal-based renderer implementation
type TUIRenderer struct {
	out     io.Writer
	colored bool

	colorWall   color.Style
	colorFloor  color.Style
	colorGoblin color.Style
	colorElf    color.Style
	colorHeader color.Style
	colorSubtle color.Style
	colorDenied color.Style

	regexpStringFunctions *regexp.Regexp
}

// Option configures a TUIRenderer
type Option func(*TUIRenderer)

// WithOutput sends rendering to w instead of stdout
func WithOutput(w io.Writer) Option {
	return func(t *TUIRenderer) { t.out = w }
}

// WithColor forces colour on or off
func WithColor(enabled bool) Option {
	return func(t *TUIRenderer) { t.colored = enabled }
}

// New creates a new TUI renderer writing to stdout, coloured when stdout is a terminal
func New(opts ...Option) *TUIRenderer {
	t := &TUIRenderer{
		out:     os.Stdout,
		colored: terminal.IsInteractive(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Init initializes the TUI renderer (colors, etc.)
func (t *TUIRenderer) Init() {
	t.colorWall = color.Style{color.FgGray}
	t.colorFloor = color.Style{color.FgDarkGray}
	t.colorGoblin = color.Style{color.FgRed, color.OpBold}
	t.colorElf = color.Style{color.FgGreen, color.OpBold}
	t.colorHeader = color.Style{color.FgMagenta, color.OpBold}
	t.colorSubtle = color.Style{color.FgGray, color.OpBold}
	t.colorDenied = color.Style{color.FgRed}

	t.regexpStringFunctions = regexp.MustCompile(`([a-zA-Z_]*){([a-z A-Z0-9_,:()]+)}`)
}

// StyleText applies a style to text
func (t *TUIRenderer) StyleText(text string, style renderer.TextStyle) string {
	if !t.colored {
		return text
	}
	switch style {
	case renderer.StyleWall:
		return t.colorWall.Sprint(text)
	case renderer.StyleFloor:
		return t.colorFloor.Sprint(text)
	case renderer.StyleGoblin:
		return t.colorGoblin.Sprint(text)
	case renderer.StyleElf:
		return t.colorElf.Sprint(text)
	case renderer.StyleHeader:
		return t.colorHeader.Sprint(text)
	case renderer.StyleSubtle:
		return t.colorSubtle.Sprint(text)
	case renderer.StyleDenied:
		return t.colorDenied.Sprint(text)
	default:
		return text
	}
}

// FormatText formats a message with the markup system:
// GT{key} translates, GOBLIN{..} and ELF{..} colour by faction.
func (t *TUIRenderer) FormatText(msg string, args ...any) string {
	ret := fmt.Sprintf(msg, args...)

	matches := t.regexpStringFunctions.FindAllStringSubmatch(ret, -1)

	for _, match := range matches {
		function := match[1]
		operand := match[2]

		var val string
		switch function {
		case "GT":
			val = dynamicGet(operand)
		case "GOBLIN":
			val = t.StyleText(operand, renderer.StyleGoblin)
		case "ELF":
			val = t.StyleText(operand, renderer.StyleElf)
		default:
			val = t.StyleText(fmt.Sprintf("ERROR, function not found: %v -> %v", function, operand), renderer.StyleDenied)
		}

		ret = strings.Replace(ret, match[0], val, -1)
	}

	return ret
}

// ShowMessage displays a message to the user
func (t *TUIRenderer) ShowMessage(msg string) {
	fmt.Fprintln(t.out, t.FormatText("%s", msg))
}

// RenderRound prints a header rule, the board with per-row unit stats, and a blank line
func (t *TUIRenderer) RenderRound(s battle.Snapshot) {
	label := gotext.Get("Round %d", s.Round)
	if s.State == battle.BattleOver {
		label = gotext.Get("Battle over after %d rounds", s.Round)
	}
	fmt.Fprintln(t.out, t.rule(label))

	for row, line := range s.Rows {
		var sb strings.Builder
		for _, ch := range line {
			sb.WriteString(t.renderGlyph(ch))
		}
		if stats := s.Units[row]; len(stats) > 0 {
			labels := make([]string, len(stats))
			for i, st := range stats {
				labels[i] = t.StyleText(st.Label(), factionStyle(st.Faction))
			}
			sb.WriteString("   ")
			sb.WriteString(strings.Join(labels, t.StyleText(", ", renderer.StyleSubtle)))
		}
		fmt.Fprintln(t.out, sb.String())
	}
	fmt.Fprintln(t.out)
}

func (t *TUIRenderer) renderGlyph(ch rune) string {
	switch ch {
	case '#':
		return t.StyleText("#", renderer.StyleWall)
	case '.':
		return t.StyleText(".", renderer.StyleFloor)
	}
	if f, ok := unit.FactionForGlyph(ch); ok {
		return t.StyleText(string(ch), factionStyle(f))
	}
	return t.StyleText(string(ch), renderer.StyleNormal)
}

// rule builds a horizontal line with a centred label, sized to the terminal
func (t *TUIRenderer) rule(label string) string {
	width := terminal.RuleWidth()
	label = " " + label + " "
	side := (width - len(label)) / 2
	if side < 2 {
		side = 2
	}
	line := strings.Repeat("─", side) + label + strings.Repeat("─", side)
	return t.StyleText(line, renderer.StyleHeader)
}

func factionStyle(f unit.Faction) renderer.TextStyle {
	if f == unit.Elf {
		return renderer.StyleElf
	}
	return renderer.StyleGoblin
}
