package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/kwhitlock/fiberlab/internal/fiber"
	"github.com/kwhitlock/fiberlab/internal/metrics"
	"github.com/kwhitlock/fiberlab/internal/world"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

const historyLen = 120

// view builds the frame for the current world state. Each tract is drawn as
// a lane: filament backbones as runs of '=', crosslinkers 'x', motors 'M',
// anchors '#'. Bound linkers render bright, free ones dim.
type view struct {
	w       *world.World
	width   int
	bound   *metrics.BoundFraction
	energy  *metrics.TotalEnergy
	shrink  *metrics.Contraction
	history []float64
}

func newView(w *world.World, width int) *view {
	return &view{
		w:      w,
		width:  width,
		bound:  metrics.NewBoundFraction(),
		energy: metrics.NewTotalEnergy(),
		shrink: metrics.NewContraction(),
	}
}

func (v *view) observe(snap world.Snapshot) {
	v.bound.Reset()
	v.energy.Reset()
	v.bound.Observe(snap)
	v.energy.Observe(snap)
	v.shrink.Observe(snap)

	v.history = append(v.history, v.bound.Value())
	if len(v.history) > historyLen {
		v.history = v.history[1:]
	}
}

func (v *view) col(x float64) int {
	span := v.w.Options().Span
	c := int(x / span * float64(v.width))
	if c < 0 {
		c = 0
	}
	if c >= v.width {
		c = v.width - 1
	}
	return c
}

func (v *view) laneFor(t *world.Tract) string {
	lane := make([]rune, v.width)
	boundAt := make([]bool, v.width)
	for i := range lane {
		lane[i] = ' '
	}
	// filaments first so linkers overdraw them
	for _, p := range t.Proteins() {
		if p.Kind() != fiber.KindActin {
			continue
		}
		lo, hi := v.col(p.X()), v.col(p.X()+p.Length())
		for c := lo; c <= hi; c++ {
			lane[c] = '='
		}
	}
	for _, p := range t.Proteins() {
		var glyph rune
		switch p.Kind() {
		case fiber.KindActinin:
			glyph = 'x'
		case fiber.KindMotor:
			glyph = 'M'
		case fiber.KindAnchor:
			glyph = '#'
		default:
			continue
		}
		c := v.col(p.X())
		lane[c] = glyph
		boundAt[c] = p.Bound()
	}

	var b strings.Builder
	for i, r := range lane {
		s := string(r)
		switch {
		case r == '=':
			b.WriteString(dim.Render(s))
		case r == '#':
			b.WriteString(yellow.Render(s))
		case boundAt[i]:
			b.WriteString(green.Render(s))
		case r != ' ':
			b.WriteString(white.Render(s))
		default:
			b.WriteString(s)
		}
	}
	return b.String()
}

func (v *view) render(rep world.StepReport) string {
	var b strings.Builder

	b.WriteString(cyan.Render("fiberlab"))
	b.WriteString(dim.Render(fmt.Sprintf("  step %d  t=%.3fs", v.w.StepCount(), v.w.Time())))
	b.WriteString("\n")
	b.WriteString(dim.Render(strings.Repeat("-", v.width)) + "\n")

	tracts := v.w.Tracts()
	shown := tracts
	if len(shown) > 7 {
		shown = shown[:7]
	}
	for _, t := range shown {
		b.WriteString(fmt.Sprintf("%s %s\n",
			dim.Render(fmt.Sprintf("%2d|", t.Index)), v.laneFor(t)))
	}
	if len(tracts) > len(shown) {
		b.WriteString(dim.Render(fmt.Sprintf("   ... %d more tracts\n", len(tracts)-len(shown))))
	}
	b.WriteString(dim.Render(strings.Repeat("-", v.width)) + "\n")

	if len(v.history) > 1 {
		b.WriteString(asciigraph.Plot(v.history,
			asciigraph.Height(5),
			asciigraph.Width(v.width-10),
			asciigraph.Caption("bound fraction"),
		))
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s\n",
		dim.Render("bound"), green.Render(fmt.Sprintf("%.3f", v.bound.Value())),
		dim.Render("energy"), yellow.Render(fmt.Sprintf("%.1f pN.nm", v.energy.Value())),
		dim.Render("contraction"), magenta.Render(fmt.Sprintf("%+.3f", v.shrink.Value())),
	))
	b.WriteString(fmt.Sprintf("%s binds %d  unbinds %d  strokes %d",
		dim.Render("last step:"), rep.Binds, rep.Unbinds, rep.Strokes))
	if n := len(rep.Warnings); n > 0 {
		b.WriteString(yellow.Render(fmt.Sprintf("  !%d warnings", n)))
	}
	b.WriteString("\n")
	b.WriteString(dim.Render("space pause  +/- speed  q quit"))
	return b.String()
}

// frameInterval paces the render loop; the simulation runs as many steps
// per frame as the speed setting allows.
const frameInterval = 33 * time.Millisecond
