package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/tinytelemetry/pawprefs/internal/cardstack"
	"github.com/tinytelemetry/pawprefs/internal/logging"
	"github.com/tinytelemetry/pawprefs/internal/model"
)

// CardsPage shows the loading state and the swipeable card stack.
type CardsPage struct {
	deps    *Deps
	help    help.Model
	effects *cardstack.Effects

	drag      cardstack.Drag
	pressCol  int
	snap      *cardstack.Snapback
	animating bool

	width  int
	height int
}

// NewCardsPage creates the card stack page.
func NewCardsPage(deps *Deps) *CardsPage {
	return &CardsPage{
		deps:    deps,
		help:    help.New(),
		effects: cardstack.NewEffects(nil),
	}
}

func (p *CardsPage) ID() string { return cardsPageID }

// Init starts the first batch for the session's current generation.
func (p *CardsPage) Init() tea.Cmd {
	p.deps.publish()
	return tea.Batch(p.deps.loadCmd(p.deps.Session.Generation()), spinnerTick())
}

// Enter handles navigation back from the summary. A retry request resets
// the session and starts a fresh batch.
func (p *CardsPage) Enter(params any) tea.Cmd {
	if _, ok := params.(retryRequest); !ok {
		return p.Init()
	}
	gen := p.deps.Session.Reset()
	p.deps.Renderer.Purge()
	p.drag = cardstack.Drag{}
	p.snap = nil
	p.deps.logger().Info("session reset", zap.Uint64("generation", gen))
	p.deps.publish()
	return tea.Batch(p.deps.loadCmd(gen), spinnerTick())
}

func (p *CardsPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		p.help.Width = msg.Width
		return nil, nil

	case SpinnerTickMsg:
		if p.deps.Session.Phase() == model.PhaseLoading && p.deps.Session.LoadErr() == nil {
			return spinnerTick(), nil
		}
		return nil, nil

	case imagesLoadedMsg:
		return p.handleLoaded(msg)

	case frameMsg:
		return p.handleFrame(), nil

	case tea.KeyMsg:
		return p.handleKey(msg)

	case tea.MouseMsg:
		return p.handleMouse(msg)
	}
	return nil, nil
}

func (p *CardsPage) handleLoaded(msg imagesLoadedMsg) (tea.Cmd, *PageNav) {
	s := p.deps.Session
	log := logging.WithOperation(p.deps.logger(), opLoadImages, msg.requestID).With(
		zap.Uint64("generation", msg.gen),
		zap.Int("count", len(msg.items)),
		zap.Duration("took", msg.took),
	)

	if msg.err != nil {
		if s.LoadFailed(msg.gen, msg.err) {
			log.Error("image load failed", zap.Error(msg.err))
			p.deps.publish()
		}
		return nil, nil
	}

	if !s.Loaded(msg.gen, msg.items) {
		log.Debug("stale image batch released")
		return nil, nil
	}
	log.Info("images loaded")
	p.deps.publish()

	if hist, ok := s.TakeCompletion(); ok {
		return nil, &PageNav{PageID: resultsPageID, Params: hist}
	}
	return nil, nil
}

func (p *CardsPage) handleKey(msg tea.KeyMsg) (tea.Cmd, *PageNav) {
	keys := p.deps.Keys
	s := p.deps.Session

	switch {
	case key.Matches(msg, keys.ForceQuit), key.Matches(msg, keys.Quit):
		return tea.Quit, nil
	case key.Matches(msg, keys.Help):
		p.help.ShowAll = !p.help.ShowAll
		return nil, nil
	}

	switch s.Phase() {
	case model.PhaseLoading:
		if s.LoadErr() != nil && key.Matches(msg, keys.Retry) {
			gen := s.BeginLoad()
			p.deps.logger().Info("retrying image load", zap.Uint64("generation", gen))
			p.deps.publish()
			return tea.Batch(p.deps.loadCmd(gen), spinnerTick()), nil
		}
	case model.PhaseSwiping:
		switch {
		case key.Matches(msg, keys.Dislike):
			return p.swipe(model.Left, nil)
		case key.Matches(msg, keys.Like):
			return p.swipe(model.Right, nil)
		}
	}
	return nil, nil
}

func (p *CardsPage) handleMouse(msg tea.MouseMsg) (tea.Cmd, *PageNav) {
	s := p.deps.Session
	if s.Phase() != model.PhaseSwiping {
		return nil, nil
	}
	lay := p.layout()

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil, nil
		}
		switch {
		case lay.dislike.contains(msg.X, msg.Y):
			return p.swipe(model.Left, nil)
		case lay.like.contains(msg.X, msg.Y):
			return p.swipe(model.Right, nil)
		}
		top, ok := s.Top()
		if ok && lay.card.shifted(p.offsetCols()).contains(msg.X, msg.Y) {
			p.snap = nil
			p.pressCol = msg.X
			p.drag = cardstack.StartDrag(top.ID, msg.X)
		}

	case tea.MouseActionMotion:
		if p.drag.Active() {
			p.drag.Move(p.dragCol(msg.X))
		}

	case tea.MouseActionRelease:
		if !p.drag.Active() {
			return nil, nil
		}
		id := p.drag.ItemID
		x := p.drag.End()
		p.drag = cardstack.Drag{}

		dir, commit := cardstack.ResolveDrag(x)
		if commit {
			item := model.Item{ID: id}
			return p.swipe(dir, &item)
		}
		p.snap = cardstack.NewSnapback(x)
		return p.startFrames(), nil
	}
	return nil, nil
}

// dragCol maps a pointer column to the column fed to the drag, mirrored
// around the press point when ReverseDrag is set.
func (p *CardsPage) dragCol(col int) int {
	if p.deps.ReverseDrag {
		return 2*p.pressCol - col
	}
	return col
}

// swipe applies one classification and starts its feedback animation.
// When the deck empties the completed history is handed to the summary.
func (p *CardsPage) swipe(dir model.Direction, explicit *model.Item) (tea.Cmd, *PageNav) {
	s := p.deps.Session
	ev, ok := s.Swipe(dir, explicit)
	if !ok {
		return nil, nil
	}
	if explicit == nil {
		p.drag = cardstack.Drag{}
	}
	p.snap = nil

	p.effects.Spawn(dir, p.deps.now())
	p.deps.logger().Debug("card swiped",
		zap.Int("id", ev.Item.ID),
		zap.Stringer("direction", ev.Direction),
		zap.Int("remaining", s.Counts().Deck),
	)
	p.deps.publish()

	cmd := p.startFrames()
	if ev.Finished {
		if hist, ok := s.TakeCompletion(); ok {
			return cmd, &PageNav{PageID: resultsPageID, Params: hist}
		}
	}
	return cmd, nil
}

func (p *CardsPage) startFrames() tea.Cmd {
	if p.animating {
		return nil
	}
	p.animating = true
	return frameTick()
}

func (p *CardsPage) handleFrame() tea.Cmd {
	p.effects.Prune(p.deps.now())
	if p.snap != nil && p.snap.Step() {
		p.snap = nil
	}
	if p.effects.Len() > 0 || p.snap != nil {
		return frameTick()
	}
	p.animating = false
	return nil
}

// offsetX is the current horizontal displacement of the top card.
func (p *CardsPage) offsetX() float64 {
	switch {
	case p.drag.Active():
		return p.drag.X
	case p.snap != nil:
		return p.snap.X
	}
	return 0
}

func (p *CardsPage) offsetCols() int {
	return int(p.offsetX() / cardstack.CellUnits)
}
