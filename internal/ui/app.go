package ui

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/abelbrown/cinecluster/internal/cluster"
	"github.com/abelbrown/cinecluster/internal/otel"
)

// genreLoadFailed labels the single placeholder left after a failed genre load.
const genreLoadFailed = "Failed to load"

// Stage is where the cluster request orchestrator is in a trigger cycle.
type Stage int

const (
	StageIdle              Stage = iota // ready for a trigger
	StageAnimatingFetching              // request in flight
	StageSettling                       // request succeeded, animation finishing
	StageFailed                         // request failed, animation finishing
)

func (s Stage) String() string {
	switch s {
	case StageAnimatingFetching:
		return "animating+fetching"
	case StageSettling:
		return "settling"
	case StageFailed:
		return "failed"
	default:
		return "idle"
	}
}

// RatingRange bounds the rating slider.
type RatingRange struct {
	Min, Max, Step, Default float64
}

// DefaultRatingRange is 0..10 in half steps, starting at 7.
func DefaultRatingRange() RatingRange {
	return RatingRange{Min: 0, Max: 10, Step: 0.5, Default: 7}
}

// AppConfig carries the App's collaborators. I/O happens only inside the
// returned commands; the App itself never blocks.
type AppConfig struct {
	LoadGenres     func() tea.Cmd
	RequestCluster func(cycleID, genre, rating string) tea.Cmd

	Timings Timings
	Rating  RatingRange

	Events otel.Emitter     // optional
	Ring   *otel.RingBuffer // optional, feeds the debug overlay
}

type genreOption struct {
	label    string
	value    string
	disabled bool
}

type outcome int

const (
	outcomeNone outcome = iota
	outcomeOK
	outcomeFailed
)

// cycle is one trigger: animation plus request plus outcome.
type cycle struct {
	id      string
	genre   string
	rating  string
	pending bool
	outcome outcome
	started time.Time
}

// App is the root Bubble Tea model.
// It does not hold the API client; results arrive as messages.
type App struct {
	loadGenres     func() tea.Cmd
	requestCluster func(cycleID, genre, rating string) tea.Cmd
	timings        Timings
	ratings        RatingRange
	log            otel.Scope
	ring           *otel.RingBuffer

	keys    keyMap
	help    help.Model
	spinner spinner.Model
	vp      viewport.Model

	genres        []genreOption
	genreIdx      int
	genresLoading bool
	rating        float64

	state          *cluster.State
	resultsErr     error
	resultsVisible bool
	triggered      bool

	cycle   cycle
	phase   Phase
	clapper clapper
	framing bool

	showDebug bool
	width     int
	height    int
	ready     bool
}

// NewAppWithConfig creates the App.
func NewAppWithConfig(cfg AppConfig) App {
	rr := cfg.Rating
	if rr.Step <= 0 || rr.Max <= rr.Min {
		rr = DefaultRatingRange()
	}

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = StatusBarKey

	vp := viewport.New(80, 20)
	vp.KeyMap = viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown", " ")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
	}

	a := App{
		loadGenres:     cfg.LoadGenres,
		requestCluster: cfg.RequestCluster,
		timings:        cfg.Timings,
		ratings:        rr,
		log:            otel.NewScope(cfg.Events, "ui"),
		ring:           cfg.Ring,
		keys:           defaultKeyMap(),
		help:           help.New(),
		spinner:        sp,
		vp:             vp,
		genresLoading:  cfg.LoadGenres != nil,
		rating:         clampRating(rr.Default, rr),
		state:          &cluster.State{},
		clapper:        newClapper(),
	}
	a.refreshResults()
	return a
}

// Init starts the one-shot genre load.
func (a App) Init() tea.Cmd {
	if a.loadGenres == nil {
		return nil
	}
	a.log.Info(otel.KindGenresStart, "loading genres")
	return a.loadGenres()
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if otel.TraceEnabled() {
		if _, isFrame := msg.(frameMsg); !isFrame {
			a.log.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindMsgReceived, Msg: fmt.Sprintf("%T", msg)})
		}
	}

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = a.handleKey(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.help.Width = msg.Width
		a.refreshResults()

	case tea.MouseMsg:
		a.vp, cmd = a.vp.Update(msg)

	case GenresLoaded:
		a.applyGenres(msg)

	case ClusterLoaded:
		a.applyCluster(msg)

	case phaseMsg:
		cmd = a.advance(msg)

	case frameMsg:
		cmd = a.stepFrame()

	case spinner.TickMsg:
		if a.cycle.pending {
			a.spinner, cmd = a.spinner.Update(msg)
		}
	}

	a.layout()
	return a, cmd
}

// handleKey routes keys through the static key map.
func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	a.log.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindKeyPress, Msg: msg.String()})

	switch {
	case key.Matches(msg, a.keys.Quit):
		return tea.Quit

	case key.Matches(msg, a.keys.Debug):
		a.showDebug = !a.showDebug

	case key.Matches(msg, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll

	case key.Matches(msg, a.keys.PrevGenre):
		a.moveGenre(-1)

	case key.Matches(msg, a.keys.NextGenre):
		a.moveGenre(1)

	case key.Matches(msg, a.keys.RatingDown):
		a.rating = clampRating(a.rating-a.ratings.Step, a.ratings)

	case key.Matches(msg, a.keys.RatingUp):
		a.rating = clampRating(a.rating+a.ratings.Step, a.ratings)

	case key.Matches(msg, a.keys.Cluster):
		return a.trigger()

	case key.Matches(msg, a.keys.SortNone):
		a.applySort(cluster.SortNone)

	case key.Matches(msg, a.keys.SortTitle):
		a.applySort(cluster.SortTitle)

	case key.Matches(msg, a.keys.SortRating):
		a.applySort(cluster.SortRating)

	default:
		var cmd tea.Cmd
		a.vp, cmd = a.vp.Update(msg)
		return cmd
	}
	return nil
}

// applyGenres replaces the selector options. On failure a single disabled
// placeholder is left and the rest of the UI stays usable.
func (a *App) applyGenres(msg GenresLoaded) {
	a.genresLoading = false
	a.genreIdx = 0

	if msg.Err != nil {
		a.genres = []genreOption{{label: genreLoadFailed, disabled: true}}
		a.log.Error(otel.KindGenresError, msg.Err)
		return
	}

	a.genres = make([]genreOption, 0, len(msg.Genres))
	for _, g := range msg.Genres {
		a.genres = append(a.genres, genreOption{label: g, value: g})
	}
	a.log.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindGenresComplete, Count: len(msg.Genres)})
}

func (a *App) moveGenre(delta int) {
	n := len(a.genres)
	if n == 0 {
		return
	}
	a.genreIdx = ((a.genreIdx+delta)%n + n) % n
}

// trigger starts a cycle: the clapperboard sequence and the cluster request
// run side by side. A trigger during an active cycle is dropped.
func (a *App) trigger() tea.Cmd {
	if a.cycle.id != "" {
		a.log.Emit(otel.Event{Level: otel.LevelWarn, Kind: otel.KindCycleIgnored, CycleID: a.cycle.id, Msg: "cycle already active"})
		return nil
	}

	a.cycle = cycle{
		id:      uuid.NewString(),
		genre:   a.SelectedGenre(),
		rating:  FormatRating(a.rating),
		pending: true,
		started: time.Now(),
	}
	a.triggered = true
	a.resultsVisible = false
	a.refreshResults()

	a.log.Emit(otel.Event{
		Level:   otel.LevelInfo,
		Kind:    otel.KindClusterStart,
		CycleID: a.cycle.id,
		Genre:   a.cycle.genre,
		Rating:  a.cycle.rating,
	})

	cmds := []tea.Cmd{a.setPhase(PhaseShow), a.spinner.Tick}
	if a.requestCluster != nil {
		cmds = append(cmds, a.requestCluster(a.cycle.id, a.cycle.genre, a.cycle.rating))
	} else {
		a.cycle.pending = false
		a.cycle.outcome = outcomeFailed
		a.resultsErr = fmt.Errorf("no cluster service configured")
		a.resultsVisible = true
		a.refreshResults()
	}
	return tea.Batch(cmds...)
}

// applyCluster settles the current cycle's request. It does not wait for the
// animation: results are revealed even while the clapperboard is on screen.
func (a *App) applyCluster(msg ClusterLoaded) {
	if msg.CycleID == "" || msg.CycleID != a.cycle.id || !a.cycle.pending {
		a.log.Emit(otel.Event{Level: otel.LevelWarn, Kind: otel.KindClusterComplete, CycleID: msg.CycleID, Msg: "stale response dropped"})
		return
	}

	a.cycle.pending = false
	ev := otel.Event{CycleID: msg.CycleID, Genre: msg.Genre, Rating: msg.Rating, Dur: msg.Dur}
	if msg.Err != nil {
		a.cycle.outcome = outcomeFailed
		a.resultsErr = msg.Err
		ev.Level, ev.Kind, ev.Err = otel.LevelError, otel.KindClusterError, msg.Err.Error()
	} else {
		a.cycle.outcome = outcomeOK
		a.resultsErr = nil
		a.state.Replace(msg.Result)
		ev.Level, ev.Kind = otel.LevelInfo, otel.KindClusterComplete
		if msg.Result != nil {
			ev.Count = len(msg.Result.Clusters)
		}
	}
	a.log.Emit(ev)

	a.resultsVisible = true
	a.refreshResults()
	a.vp.GotoTop()
	a.finishCycle()
}

// advance moves the clapperboard to msg.phase and schedules the next one.
func (a *App) advance(msg phaseMsg) tea.Cmd {
	if msg.cycleID != a.cycle.id {
		return nil
	}
	return a.setPhase(msg.phase)
}

func (a *App) setPhase(p Phase) tea.Cmd {
	a.phase = p
	a.log.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindAnimPhase, CycleID: a.cycle.id, Msg: p.String()})

	var next tea.Cmd
	switch p {
	case PhaseShow:
		next = Delay(a.timings.Show, phaseMsg{cycleID: a.cycle.id, phase: PhaseClap})
	case PhaseClap:
		next = Delay(a.timings.Clap, phaseMsg{cycleID: a.cycle.id, phase: PhaseHide})
	case PhaseHide:
		next = Delay(a.timings.Reset, phaseMsg{cycleID: a.cycle.id, phase: PhaseIdle})
	case PhaseIdle:
		a.finishCycle()
	}
	return tea.Batch(next, a.retarget())
}

// finishCycle returns to idle once both the request and the animation are done.
func (a *App) finishCycle() {
	if a.cycle.id == "" || a.cycle.pending || a.phase != PhaseIdle {
		return
	}
	a.log.Emit(otel.Event{
		Level:   otel.LevelDebug,
		Kind:    otel.KindCycleIdle,
		CycleID: a.cycle.id,
		Dur:     time.Since(a.cycle.started),
	})
	a.cycle = cycle{}
}

// retarget points the panel spring at the current phase and starts the
// frame loop if it is not already running.
func (a *App) retarget() tea.Cmd {
	a.clapper.setVisible(a.phase.panelShown())
	if a.framing || a.clapper.settled() {
		return nil
	}
	a.framing = true
	return frameTick()
}

func (a *App) stepFrame() tea.Cmd {
	if a.clapper.step() {
		a.framing = false
		return nil
	}
	return frameTick()
}

// applySort re-sorts the cached result in place and re-renders from it.
// No request is made.
func (a *App) applySort(mode cluster.SortMode) {
	if a.resultsErr != nil || !a.resultsVisible {
		return
	}
	if !a.state.SetSort(mode) {
		return
	}
	a.log.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindSortApply, Msg: mode.String()})
	a.refreshResults()
}

// refreshResults re-renders the results surface into the viewport.
func (a *App) refreshResults() {
	a.vp.SetContent(a.resultsView())
}

func (a App) resultsView() string {
	switch {
	case !a.resultsVisible && !a.triggered:
		return HelpStyle.Render(hintMessage)
	case !a.resultsVisible:
		return ""
	case a.resultsErr != nil:
		return ErrorBanner.Width(max(a.width, 20)).Render(errorMessage)
	default:
		return RenderResults(a.state, a.width)
	}
}

// layout sizes the viewport to what the header and status bar leave over.
func (a *App) layout() {
	if !a.ready {
		return
	}
	h := a.height - lipgloss.Height(a.headerView()) - lipgloss.Height(a.statusView())
	a.vp.Width = a.width
	a.vp.Height = max(h, 3)
}

// View renders the UI.
func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}
	if a.showDebug {
		return debugOverlay(a.ring, a.width, a.height-1) + "\n" + debugStatusBar(a.width)
	}
	return lipgloss.JoinVertical(lipgloss.Left, a.headerView(), a.vp.View(), a.statusView())
}

func (a App) headerView() string {
	genre := a.genreView()
	rating := ControlValue.Render(fmt.Sprintf("%.1f", a.rating)) + " " + a.sliderView(20)

	controls := lipgloss.JoinHorizontal(lipgloss.Center,
		ControlLabel.Render("Genre "), genre,
		ControlLabel.Render("   Min rating "), rating,
	)

	ticketGenre, ticketRating := a.SelectedGenre(), FormatRating(a.rating)
	if a.cycle.id != "" {
		ticketGenre, ticketRating = a.cycle.genre, a.cycle.rating
	}

	rows := []string{
		Title.Render("🎬 cinecluster"),
		controls,
		renderTicket(ticketGenre, ticketRating, a.phase.clapped()),
	}
	if a.phase.panelShown() || a.clapper.onScreen() {
		rows = append(rows, renderClapper(a.cycle.genre, a.cycle.rating, a.phase.clapped(), a.clapper.offset()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (a App) genreView() string {
	switch {
	case a.genresLoading:
		return ControlDisabled.Render("loading…")
	case len(a.genres) == 0:
		return ControlDisabled.Render("no genres")
	}
	opt := a.genres[a.genreIdx]
	if opt.disabled {
		return ControlDisabled.Render(opt.label)
	}
	return ControlValue.Render("‹ "+opt.label+" ›") +
		StatusBarText.Render(fmt.Sprintf(" %d/%d", a.genreIdx+1, len(a.genres)))
}

func (a App) sliderView(width int) string {
	span := a.ratings.Max - a.ratings.Min
	filled := int(math.Round((a.rating - a.ratings.Min) / span * float64(width)))
	filled = max(0, min(width, filled))
	return SliderFill.Render(strings.Repeat("■", filled)) + SliderTrack.Render(strings.Repeat("□", width-filled))
}

func (a App) statusView() string {
	left := ""
	if a.cycle.pending {
		left = a.spinner.View() + StatusBarText.Render(" clustering… ")
	}
	return StatusBar.Width(a.width).Render(left + a.help.View(a.keys))
}

// SelectedGenre is the value the next trigger will send. The failure
// placeholder and an empty selector both yield "".
func (a App) SelectedGenre() string {
	if len(a.genres) == 0 {
		return ""
	}
	return a.genres[a.genreIdx].value
}

// GenreOptions returns the selector labels (for testing).
func (a App) GenreOptions() []string {
	out := make([]string, len(a.genres))
	for i, g := range a.genres {
		out[i] = g.label
	}
	return out
}

// Rating returns the slider value.
func (a App) Rating() float64 { return a.rating }

// Stage reports the orchestrator stage.
func (a App) Stage() Stage {
	switch {
	case a.cycle.id == "":
		return StageIdle
	case a.cycle.pending:
		return StageAnimatingFetching
	case a.cycle.outcome == outcomeFailed:
		return StageFailed
	default:
		return StageSettling
	}
}

// Phase reports the clapperboard phase.
func (a App) Phase() Phase { return a.phase }

// CycleID is the active cycle's ID, or "" when idle.
func (a App) CycleID() string { return a.cycle.id }

// ResultsVisible reports whether the results surface is revealed.
func (a App) ResultsVisible() bool { return a.resultsVisible }

// State exposes the result cache (for testing).
func (a App) State() *cluster.State { return a.state }

// ResultsView returns the current contents of the results surface.
func (a App) ResultsView() string { return a.resultsView() }

// FormatRating renders a rating as a query value with no trailing zeros,
// e.g. 7.5 -> "7.5", 7 -> "7".
func FormatRating(r float64) string {
	return strconv.FormatFloat(r, 'f', -1, 64)
}

func clampRating(v float64, rr RatingRange) float64 {
	v = math.Round(v*1e6) / 1e6
	return math.Max(rr.Min, math.Min(rr.Max, v))
}
