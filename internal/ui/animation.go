package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
)

// Phase is the clapperboard's position in its fixed sequence:
// show -> clap -> hide -> idle.
type Phase int

const (
	PhaseIdle Phase = iota // panel hidden, arm open, ticket present
	PhaseShow              // panel visible
	PhaseClap              // arm closed, ticket eaten
	PhaseHide              // panel hidden, still clapped
)

func (p Phase) String() string {
	switch p {
	case PhaseShow:
		return "show"
	case PhaseClap:
		return "clap"
	case PhaseHide:
		return "hide"
	default:
		return "idle"
	}
}

func (p Phase) panelShown() bool { return p == PhaseShow || p == PhaseClap }

func (p Phase) clapped() bool { return p == PhaseClap || p == PhaseHide }

// Timings are the pauses between phases. Their sum is the fixed length of
// one sequence regardless of network latency.
type Timings struct {
	Show  time.Duration // show -> clap
	Clap  time.Duration // clap -> hide
	Reset time.Duration // hide -> idle
}

// DefaultTimings is 600ms show, 300ms clap, 600ms reset.
func DefaultTimings() Timings {
	return Timings{Show: 600 * time.Millisecond, Clap: 300 * time.Millisecond, Reset: 600 * time.Millisecond}
}

// Total is the duration from show to idle.
func (t Timings) Total() time.Duration {
	return t.Show + t.Clap + t.Reset
}

// dropLines is how far the panel travels while easing in.
const dropLines = 3

// clapper eases the panel in and out with a spring.
type clapper struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
	target float64
}

func newClapper() clapper {
	return clapper{spring: harmonica.NewSpring(harmonica.FPS(60), 9.0, 0.75)}
}

func (c *clapper) setVisible(v bool) {
	c.target = 0
	if v {
		c.target = 1
	}
}

func (c clapper) settled() bool {
	return math.Abs(c.pos-c.target) < 0.005 && math.Abs(c.vel) < 0.005
}

// step advances one frame and reports whether the spring came to rest.
func (c *clapper) step() bool {
	c.pos, c.vel = c.spring.Update(c.pos, c.vel, c.target)
	if c.settled() {
		c.pos, c.vel = c.target, 0
		return true
	}
	return false
}

// offset is the number of blank lines above the panel.
func (c clapper) offset() int {
	p := math.Max(0, math.Min(1, c.pos))
	return int(math.Round((1 - p) * dropLines))
}

func (c clapper) onScreen() bool {
	return c.pos > 0.05
}

// renderClapper draws the panel carrying the captured genre and rating.
func renderClapper(genre, rating string, clapped bool, offset int) string {
	arm := ClapperArmOpen.Render("╱╲╱╲╱╲╱╲╱╲╱╲╱╲╱╲╱╲╱╲")
	if clapped {
		arm = ClapperArmShut.Render("▀█▀█▀█▀█▀█▀█▀█▀█▀█▀█")
	}
	if genre == "" {
		genre = "any"
	}
	body := fmt.Sprintf("%s %s\n%s %s",
		ClapperLabel.Render("GENRE "), genre,
		ClapperLabel.Render("RATING"), rating)

	panel := ClapperPanel.Render(lipgloss.JoinVertical(lipgloss.Left, arm, body))
	return strings.Repeat("\n", offset) + panel
}

// renderTicket draws the ticket stub; once eaten only its outline remains.
func renderTicket(genre, rating string, eaten bool) string {
	if eaten {
		return TicketEaten.Render("  · · ·  ")
	}
	if genre == "" {
		genre = "any genre"
	}
	return Ticket.Render(fmt.Sprintf("🎟  %s · %s+", genre, rating))
}
