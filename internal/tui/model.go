// Package tui is the interactive terminal fretboard.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chase3718/lou-fretboard/internal/audition"
	"github.com/chase3718/lou-fretboard/internal/fretboard"
)

// Options configures a Model.
type Options struct {
	Context   context.Context // bounds auditions; defaults to Background
	Resolver  *fretboard.Resolver
	Evaluator *fretboard.Evaluator
	Tuning    fretboard.Tuning
	Frets     int // highest fret drawn; zero means fretboard.MaxFret
	State     fretboard.State
	Sink      audition.Auditioner // nil disables playback
	Duration  string
	Logger    *slog.Logger
}

// auditionMsg reports the result of a tap.
type auditionMsg struct {
	req audition.Request
	err error
}

// Model is the bubbletea model of the fretboard screen.
type Model struct {
	ctx      context.Context
	resolver *fretboard.Resolver
	eval     *fretboard.Evaluator
	tuning   fretboard.Tuning
	frets    int
	sink     audition.Auditioner
	duration string
	logger   *slog.Logger

	state     fretboard.State
	grid      *fretboard.Grid
	menu      int
	noteNames bool
	status    string
	err       error
	width     int

	keys   keyMap
	help   help.Model
	styles Styles
}

// New resolves the initial state and evaluates its board.
func New(opts Options) (Model, error) {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Resolver == nil {
		opts.Resolver = fretboard.NewResolver(fretboard.DefaultTheory(), opts.Logger)
	}
	if opts.Evaluator == nil {
		opts.Evaluator = fretboard.NewEvaluator(fretboard.DefaultTheory(), fretboard.WithLogger(opts.Logger))
	}
	if opts.Tuning == (fretboard.Tuning{}) {
		opts.Tuning = fretboard.StandardTuning
	}
	if opts.Frets <= 0 {
		opts.Frets = fretboard.MaxFret
	}
	if opts.State == (fretboard.State{}) {
		opts.State = fretboard.DefaultState()
	}
	if opts.Duration == "" {
		opts.Duration = audition.DefaultDuration
	}
	m := Model{
		ctx:      opts.Context,
		resolver: opts.Resolver,
		eval:     opts.Evaluator,
		tuning:   opts.Tuning,
		frets:    fretboard.ClampFret(opts.Frets),
		sink:     opts.Sink,
		duration: opts.Duration,
		logger:   opts.Logger,
		state:    opts.State,
		keys:     defaultKeyMap(),
		help:     help.New(),
		styles:   DefaultStyles(opts.Evaluator.Palette()),
	}
	if err := m.refresh(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// State returns the current selection.
func (m Model) State() fretboard.State { return m.state }

// Grid returns the evaluated board for the current selection.
func (m Model) Grid() *fretboard.Grid { return m.grid }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case auditionMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("play %s: %w", msg.req.Note, msg.err)
			return m, nil
		}
		m.err = nil
		m.status = "played " + msg.req.Note
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) && (msg.String() == "ctrl+c" || m.state.Popup == fretboard.PopupNone) {
			return m, tea.Quit
		}
		if m.state.Popup != fretboard.PopupNone {
			return m.updatePopup(msg)
		}
		return m.updateBoard(msg)
	}
	return m, nil
}

func (m Model) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		return m.apply(fretboard.CursorMoved{DString: -1}), nil
	case key.Matches(msg, m.keys.Down):
		return m.apply(fretboard.CursorMoved{DString: 1}), nil
	case key.Matches(msg, m.keys.Left):
		return m.apply(fretboard.CursorMoved{DFret: -1}), nil
	case key.Matches(msg, m.keys.Right):
		return m.apply(fretboard.CursorMoved{DFret: 1}), nil
	case key.Matches(msg, m.keys.Root):
		return m.openPopup(fretboard.PopupRoot), nil
	case key.Matches(msg, m.keys.Scale):
		return m.openPopup(fretboard.PopupScale), nil
	case key.Matches(msg, m.keys.Highlight):
		return m.openPopup(fretboard.PopupHighlight), nil
	case key.Matches(msg, m.keys.Labels):
		m.noteNames = !m.noteNames
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Tap):
		return m, m.tap()
	}
	return m, nil
}

func (m Model) updatePopup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.menuItems()
	switch {
	case key.Matches(msg, m.keys.Close):
		return m.apply(fretboard.PopupClosed{}), nil
	case key.Matches(msg, m.keys.Up):
		m.menu = (m.menu + len(items) - 1) % len(items)
	case key.Matches(msg, m.keys.Down):
		m.menu = (m.menu + 1) % len(items)
	case key.Matches(msg, m.keys.Tap):
		return m.apply(m.menuEvent(m.menu)), nil
	}
	return m, nil
}

// apply reduces ev into the state and re-evaluates the board when the
// selection changed. Errors are shown and leave the screen unchanged.
func (m Model) apply(ev fretboard.Event) Model {
	next, err := fretboard.Reduce(m.state, ev)
	if err != nil {
		m.err = err
		return m
	}
	prev := m.state
	m.state = next
	if prev.Root == next.Root && prev.Scale == next.Scale && prev.Highlight == next.Highlight {
		return m
	}
	if err := m.refresh(); err != nil {
		m.logger.Error("tui: board refresh failed", "err", err)
		m.state, m.err = prev, err
		return m
	}
	m.err = nil
	m.logger.Debug("tui: selection changed", "root", next.Root, "scale", next.Scale, "highlight", next.Highlight)
	return m
}

func (m *Model) refresh() error {
	scale, err := m.resolver.Resolve(m.state.Root, m.state.Scale)
	if err != nil {
		return err
	}
	grid, err := m.eval.Board(m.tuning, m.frets, scale, m.state.Highlight)
	if err != nil {
		return err
	}
	m.grid = grid
	m.state = m.state.MoveCursor(0, 0)
	if m.state.Cursor.Fret > m.frets {
		m.state.Cursor.Fret = m.frets
	}
	return nil
}

func (m Model) openPopup(p fretboard.Popup) Model {
	m = m.apply(fretboard.PopupOpened{Popup: p})
	m.menu = m.currentIndex()
	return m
}

func (m Model) menuItems() []string {
	switch m.state.Popup {
	case fretboard.PopupRoot:
		return fretboard.Roots[:]
	case fretboard.PopupScale:
		types := fretboard.ScaleTypes()
		out := make([]string, len(types))
		for i, t := range types {
			out[i] = t.Label()
		}
		return out
	case fretboard.PopupHighlight:
		hs := fretboard.Highlights()
		out := make([]string, len(hs))
		for i, h := range hs {
			out[i] = h.Label
		}
		return out
	}
	return nil
}

func (m Model) menuEvent(i int) fretboard.Event {
	switch m.state.Popup {
	case fretboard.PopupRoot:
		return fretboard.RootSelected{Root: fretboard.Roots[i]}
	case fretboard.PopupScale:
		return fretboard.ScaleSelected{Scale: fretboard.ScaleTypes()[i]}
	case fretboard.PopupHighlight:
		return fretboard.HighlightSelected{Highlight: fretboard.Highlights()[i].Value}
	}
	return fretboard.PopupClosed{}
}

// currentIndex is the menu row of the active selection.
func (m Model) currentIndex() int {
	switch m.state.Popup {
	case fretboard.PopupRoot:
		for i, r := range fretboard.Roots {
			if r == m.state.Root {
				return i
			}
		}
	case fretboard.PopupScale:
		for i, t := range fretboard.ScaleTypes() {
			if t == m.state.Scale {
				return i
			}
		}
	case fretboard.PopupHighlight:
		for i, h := range fretboard.Highlights() {
			if h.Value == m.state.Highlight {
				return i
			}
		}
	}
	return 0
}

// tap auditions the fret under the cursor off the update loop.
func (m Model) tap() tea.Cmd {
	if m.sink == nil {
		return nil
	}
	note, ok := m.grid.NoteAt(m.state.Cursor)
	if !ok {
		return nil
	}
	req := audition.Request{Position: m.state.Cursor, Note: note, Duration: m.duration}
	sink, ctx := m.sink, m.ctx
	return func() tea.Msg {
		return auditionMsg{req: req, err: sink.Audition(ctx, req)}
	}
}

func (m Model) View() string {
	st := m.styles
	var highlight string
	for _, h := range fretboard.Highlights() {
		if h.Value == m.state.Highlight {
			highlight = h.Label
		}
	}
	header := strings.Join([]string{
		st.Title.Render("lou-fretboard"),
		st.Label.Render("root ") + st.Value.Render(m.state.Root),
		st.Label.Render("scale ") + st.Value.Render(m.state.Scale.Label()),
		st.Label.Render("highlight ") + st.Value.Render(highlight),
	}, "   ")

	cursor := m.state.Cursor
	board := RenderBoard(m.grid, st, RenderOptions{Cursor: &cursor, NoteNames: m.noteNames})

	sections := []string{header, "", board, ""}
	if items := m.menuItems(); items != nil {
		title := strings.ToUpper(m.state.Popup.String()[:1]) + m.state.Popup.String()[1:]
		sections = append(sections, renderMenu(st, title, items, m.menu), "")
	}
	sections = append(sections, m.statusLine(), m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) statusLine() string {
	if m.err != nil {
		return m.styles.Error.Render(m.err.Error())
	}
	cur := m.state.Cursor
	note, _ := m.grid.NoteAt(cur)
	line := fmt.Sprintf("string %d fret %d  %s", cur.String+1, cur.Fret, note)
	if info, ok := m.grid.At(cur); ok {
		line += fmt.Sprintf("  %s (%s)", info.Degree, info.Interval)
	}
	if m.status != "" {
		line += "  · " + m.status
	}
	return m.styles.Status.Render(line)
}
