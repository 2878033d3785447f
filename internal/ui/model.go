// Package ui provides the Bubble Tea terminal interface for Satchel.
package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"satchel/internal/catalog"
	"satchel/internal/journal"
	"satchel/internal/prefs"
	"satchel/internal/session"
	"satchel/internal/storefront"
)

// View represents the current active view.
type View int

const (
	ViewShop View = iota
	ViewCart
	ViewActivity
)

const activityTailLimit = 50

// Options configures the UI.
type Options struct {
	Context     context.Context
	Client      *storefront.Client
	Session     *session.Session
	Catalog     *catalog.Store
	JournalPath string
	PollTick    time.Duration
	Prefs       prefs.Prefs
	PrefsPath   string
}

// loginState holds the login overlay's inputs and progress.
type loginState struct {
	active   bool
	busy     bool
	err      string
	inputs   [2]textinput.Model // email, password
	focusIdx int
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	client    *storefront.Client
	session   *session.Session
	catalog   *catalog.Store
	journal   string
	prefsPath string
	currency  string
	pollTick  time.Duration

	keys        keyMap
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool

	catalogSnap catalog.Snapshot
	sessSnap    session.Snapshot
	entries     []journal.Entry

	shopIndex int
	cartIndex int

	login    loginState
	showHelp bool
	notice   string
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = time.Second
	}

	currency := opts.Prefs.Currency
	if currency == "" {
		currency = "$"
	}

	m := Model{
		ctx:       ctx,
		client:    opts.Client,
		session:   opts.Session,
		catalog:   opts.Catalog,
		journal:   opts.JournalPath,
		prefsPath: opts.PrefsPath,
		currency:  currency,
		pollTick:  pollTick,
		keys:      DefaultKeyMap(),
		theme:     GetTheme(opts.Prefs.Theme),
	}
	m.initLoginInputs(opts.Prefs.Email)
	return m
}

// Run boots the TUI and blocks until the user quits or ctx is cancelled.
func Run(opts Options) error {
	program := tea.NewProgram(New(opts), tea.WithAltScreen())
	if ctx := opts.Context; ctx != nil {
		go func() {
			<-ctx.Done()
			program.Quit()
		}()
	}
	_, err := program.Run()
	return err
}

func (m *Model) initLoginInputs(email string) {
	emailInput := textinput.New()
	emailInput.Placeholder = "email"
	emailInput.SetValue(email)
	emailInput.CharLimit = 120

	passwordInput := textinput.New()
	passwordInput.Placeholder = "password"
	passwordInput.EchoMode = textinput.EchoPassword
	passwordInput.CharLimit = 120

	m.login.inputs = [2]textinput.Model{emailInput, passwordInput}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(m.pollTick),
		m.snapshotCmd(),
		tailJournalCmd(m.journal),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tickMsg:
		cmds := []tea.Cmd{tickCmd(m.pollTick), m.snapshotCmd()}
		if m.currentView == ViewActivity {
			cmds = append(cmds, tailJournalCmd(m.journal))
		}
		return m, tea.Batch(cmds...)

	case snapshotMsg:
		m.catalogSnap = msg.catalog
		m.sessSnap = msg.session
		m.clampSelections()
		return m, nil

	case journalMsg:
		m.entries = msg.entries
		return m, nil

	case opDoneMsg:
		if msg.err != nil {
			m.notice = msg.err.Error()
		} else if msg.notice != "" {
			m.notice = msg.notice
		}
		return m, m.snapshotCmd()

	case loginDoneMsg:
		m.login.busy = false
		if msg.err != nil {
			m.login.err = msg.err.Error()
			return m, nil
		}
		m.login.active = false
		m.login.err = ""
		m.notice = "signed in as " + msg.name
		m.rememberEmail()
		return m, m.snapshotCmd()
	}

	if m.login.active {
		return m.updateLoginInputs(msg)
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.login.active {
		return m.renderLogin()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help.
		m.showHelp = false
		return m, nil
	}

	if m.login.active {
		return m.handleLoginKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		m.currentView = (m.currentView + 1) % 3
		if m.currentView == ViewActivity {
			return m, tailJournalCmd(m.journal)
		}
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.currentView = ViewShop
		return m, nil

	case key.Matches(msg, m.keys.ViewShop):
		m.currentView = ViewShop
		return m, nil

	case key.Matches(msg, m.keys.ViewCart):
		m.currentView = ViewCart
		return m, nil

	case key.Matches(msg, m.keys.ViewActivity):
		m.currentView = ViewActivity
		return m, tailJournalCmd(m.journal)

	case key.Matches(msg, m.keys.Login):
		if m.sessSnap.Mode == session.ModeGuest {
			m.login.active = true
			m.login.err = ""
			m.login.focusIdx = 0
			m.login.inputs[0].Focus()
			m.login.inputs[1].Blur()
			return m, textinput.Blink
		}
		return m, nil

	case key.Matches(msg, m.keys.Logout):
		if m.sessSnap.Mode != session.ModeGuest {
			return m, m.logoutCmd()
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.refreshCmd()

	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.setSelection(0)
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.setSelection(1 << 30)
		return m, nil
	}

	switch m.currentView {
	case ViewShop:
		if key.Matches(msg, m.keys.Add) {
			if product, ok := m.selectedProduct(); ok {
				return m, m.addCmd(product)
			}
		}
	case ViewCart:
		switch {
		case key.Matches(msg, m.keys.Increment):
			if item, ok := m.selectedLine(); ok {
				return m, m.updateCmd(item.ID, item.Quantity+1)
			}
		case key.Matches(msg, m.keys.Decrement):
			if item, ok := m.selectedLine(); ok && item.Quantity > 1 {
				return m, m.updateCmd(item.ID, item.Quantity-1)
			}
		case key.Matches(msg, m.keys.Remove):
			if item, ok := m.selectedLine(); ok {
				return m, m.removeCmd(item.ID)
			}
		case key.Matches(msg, m.keys.ClearCart):
			return m, m.clearCmd()
		case key.Matches(msg, m.keys.Checkout):
			return m, m.checkoutCmd()
		}
	}

	return m, nil
}

func (m *Model) moveSelection(delta int) {
	switch m.currentView {
	case ViewShop:
		m.shopIndex += delta
	case ViewCart:
		m.cartIndex += delta
	}
	m.clampSelections()
}

func (m *Model) setSelection(index int) {
	switch m.currentView {
	case ViewShop:
		m.shopIndex = index
	case ViewCart:
		m.cartIndex = index
	}
	m.clampSelections()
}

func (m *Model) clampSelections() {
	m.shopIndex = clamp(m.shopIndex, len(m.catalogSnap.Products))
	m.cartIndex = clamp(m.cartIndex, len(m.sessSnap.Cart.Items))
}

func clamp(index, length int) int {
	if length == 0 {
		return 0
	}
	if index < 0 {
		return 0
	}
	if index >= length {
		return length - 1
	}
	return index
}

func (m Model) selectedProduct() (storefront.Product, bool) {
	products := m.catalogSnap.Products
	if len(products) == 0 || m.shopIndex >= len(products) {
		return storefront.Product{}, false
	}
	return products[m.shopIndex], true
}

func (m Model) selectedLine() (lineRef, bool) {
	items := m.sessSnap.Cart.Items
	if len(items) == 0 || m.cartIndex >= len(items) {
		return lineRef{}, false
	}
	item := items[m.cartIndex]
	return lineRef{ID: item.ID, Quantity: item.Quantity}, true
}

// lineRef identifies a cart line for a mutation command.
type lineRef struct {
	ID       string
	Quantity int
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	_ = prefs.Save(m.prefsPath, prefs.Prefs{
		Theme:    m.theme.Name,
		Email:    m.login.inputs[0].Value(),
		Currency: m.currency,
	})
}

func (m *Model) rememberEmail() {
	m.savePrefs()
}
