package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/downhill-drift/internal/config"
	"github.com/vovakirdan/downhill-drift/internal/core"
	"github.com/vovakirdan/downhill-drift/internal/storage"
)

// MenuChoice is what the player picked in the launcher.
type MenuChoice int

const (
	MenuChoiceNone MenuChoice = iota
	MenuChoicePlay
	MenuChoiceScores
	MenuChoiceQuit
)

// MenuItem is one launcher line.
type MenuItem struct {
	Choice MenuChoice
	Label  string
}

var menuItems = []MenuItem{
	{Choice: MenuChoicePlay, Label: "Ride"},
	{Choice: MenuChoiceScores, Label: "Best runs"},
	{Choice: MenuChoiceQuit, Label: "Quit"},
}

var difficulties = []config.DifficultyPreset{
	config.DifficultyEasy,
	config.DifficultyNormal,
	config.DifficultyHard,
}

// MenuModel is the Bubble Tea model for the launcher.
type MenuModel struct {
	items      []MenuItem
	cursor     int
	difficulty int // Index into difficulties
	width      int
	height     int
	best       map[config.DifficultyPreset]int
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	embedded   bool // Selecting hands control back to the caller instead of exiting
	chosen     MenuChoice
}

// NewMenuModel creates a launcher with the given preset preselected.
// store may be nil; it only feeds the best-distance line.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, preset config.DifficultyPreset) MenuModel {
	m := MenuModel{
		items:     menuItems,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		best:      make(map[config.DifficultyPreset]int),
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
	for i, d := range difficulties {
		if d == preset {
			m.difficulty = i
		}
		if preset == "" && d == config.DifficultyNormal {
			m.difficulty = i
		}
	}
	if store != nil {
		for _, d := range difficulties {
			if best, err := store.BestDistance(string(d)); err == nil {
				m.best[d] = best
			}
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		return m.choose(MenuChoiceQuit)

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionLeft:
		m.difficulty = (m.difficulty + len(difficulties) - 1) % len(difficulties)

	case MenuActionRight:
		m.difficulty = (m.difficulty + 1) % len(difficulties)

	case MenuActionSelect:
		return m.choose(m.items[m.cursor].Choice)

	case MenuActionScoreboard:
		return m.choose(MenuChoiceScores)
	}

	return m, nil
}

func (m MenuModel) choose(c MenuChoice) (tea.Model, tea.Cmd) {
	m.chosen = c
	if m.embedded {
		return m, nil
	}
	return m, tea.Quit
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.chosen != MenuChoiceNone && !m.embedded {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	activeStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText("D O W N H I L L   D R I F T", m.width, titleStyle))
	b.WriteString("\n\n")

	preset := m.Difficulty()
	b.WriteString(centerText(fmt.Sprintf("< %s >", preset), m.width, activeStyle))
	b.WriteString("\n")
	best := "no runs yet"
	if d, ok := m.best[preset]; ok && d > 0 {
		best = fmt.Sprintf("best %d m", d)
	}
	b.WriteString(centerText(best, m.width, dimStyle))
	b.WriteString("\n\n")

	for i, item := range m.items {
		if i == m.cursor {
			b.WriteString(centerText("> "+item.Label, m.width, activeStyle))
		} else {
			b.WriteString(centerText("  "+item.Label, m.width, lipgloss.NewStyle()))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Up/Down: Navigate  |  Left/Right: Difficulty  |  Enter: Select  |  Q: Quit", m.width, dimStyle))
	b.WriteString("\n")

	return b.String()
}

// Chosen returns the player's pick, or MenuChoiceNone while the menu is open.
func (m MenuModel) Chosen() MenuChoice {
	return m.chosen
}

// Difficulty returns the selected preset.
func (m MenuModel) Difficulty() config.DifficultyPreset {
	return difficulties[m.difficulty]
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within the given width and styles it.
func centerText(text string, width int, style lipgloss.Style) string {
	rendered := style.Render(text)
	w := lipgloss.Width(rendered)
	if w >= width {
		return rendered
	}
	return strings.Repeat(" ", (width-w)/2) + rendered
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Choice     MenuChoice
	Difficulty config.DifficultyPreset
	Config     core.RuntimeConfig
}

// RunMenu runs the launcher and returns the selection.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, preset config.DifficultyPreset) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(store, cfg, preset),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Choice: MenuChoiceQuit, Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok || m.Chosen() == MenuChoiceNone {
		return MenuResult{Choice: MenuChoiceQuit, Config: cfg}, nil
	}

	return MenuResult{
		Choice:     m.Chosen(),
		Difficulty: m.Difficulty(),
		Config:     m.Config(),
	}, nil
}
