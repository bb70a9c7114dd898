package tui

import tea "github.com/charmbracelet/bubbletea"

// App is the top-level Bubble Tea model that routes between pages.
type App struct {
	pages      map[string]Page
	activePage string
	width      int
	height     int
}

// NewApp creates a new App with the given pages. The first page is the default.
func NewApp(pages ...Page) *App {
	pageMap := make(map[string]Page, len(pages))
	var firstID string
	for i, p := range pages {
		pageMap[p.ID()] = p
		if i == 0 {
			firstID = p.ID()
		}
	}
	return &App{
		pages:      pageMap,
		activePage: firstID,
	}
}

// ActivePage returns the id of the page currently shown.
func (a *App) ActivePage() string { return a.activePage }

func (a *App) Init() tea.Cmd {
	if p, ok := a.pages[a.activePage]; ok {
		return p.Init()
	}
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Every page tracks the size so it can lay out before it is shown.
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		a.width = wsm.Width
		a.height = wsm.Height
		var cmds []tea.Cmd
		for _, p := range a.pages {
			cmd, _ := p.Update(msg)
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)
	}

	// Async results belong to the page that started them, whichever is active.
	if routed, ok := msg.(pageMsg); ok {
		if p, exists := a.pages[routed.targetPage()]; exists && routed.targetPage() != a.activePage {
			cmd, _ := p.Update(msg)
			return a, cmd
		}
	}

	p, ok := a.pages[a.activePage]
	if !ok {
		return a, nil
	}

	cmd, nav := p.Update(msg)

	if nav != nil {
		if next, exists := a.pages[nav.PageID]; exists {
			a.activePage = nav.PageID
			var enterCmd tea.Cmd
			if e, ok := next.(Enterable); ok {
				enterCmd = e.Enter(nav.Params)
			} else {
				enterCmd = next.Init()
			}
			return a, tea.Batch(cmd, enterCmd)
		}
	}

	return a, cmd
}

func (a *App) View() string {
	if p, ok := a.pages[a.activePage]; ok {
		return p.View(a.width, a.height)
	}
	return "No active page"
}

// NewWidget wires the cards and summary pages around deps. The cards page
// is shown first.
func NewWidget(deps *Deps) *App {
	if len(deps.Keys.Quit.Keys()) == 0 {
		deps.Keys = DefaultKeyMap()
	}
	return NewApp(NewCardsPage(deps), NewResultsPage(deps))
}
