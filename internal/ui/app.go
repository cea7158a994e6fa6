package ui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/orderdesk/internal/api"
	"github.com/five82/orderdesk/internal/logtail"
	"github.com/five82/orderdesk/internal/orders"
	"github.com/five82/orderdesk/internal/prefs"
	"github.com/five82/orderdesk/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewOrders View = iota
	ViewEditor
	ViewProducts
	ViewLogs
)

// Options configures the UI.
type Options struct {
	Context  context.Context
	Orders   *state.OrderStore
	Products *state.ProductStore
	// Refresh reloads both stores. It is run off the UI goroutine.
	Refresh   func(context.Context)
	Mode      api.Mode
	Prefs     prefs.Prefs
	PrefsPath string
	LogPath   string
	Logger    *zap.Logger
}

type flashKind int

const (
	flashInfo flashKind = iota
	flashWarn
	flashDanger
)

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	orders    *state.OrderStore
	products  *state.ProductStore
	refresh   func(context.Context)
	mode      api.Mode
	prefs     prefs.Prefs
	prefsPath string
	logPath   string
	log       *zap.Logger

	keys        keyMap
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool
	spinner     spinner.Model

	orderSnap   state.OrderSnapshot
	productSnap state.ProductSnapshot
	orderRow    int
	productRow  int

	editor *editor
	modal  Modal

	logViewport viewport.Model
	logEntries  []logtail.Entry
	logErr      error

	flash     string
	flashKind flashKind
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	m := Model{
		ctx:         ctx,
		orders:      opts.Orders,
		products:    opts.Products,
		refresh:     opts.Refresh,
		mode:        opts.Mode,
		prefs:       opts.Prefs,
		prefsPath:   prefsPath,
		logPath:     opts.LogPath,
		log:         log.Named("ui"),
		keys:        DefaultKeyMap(),
		theme:       GetTheme(opts.Prefs.Theme),
		currentView: ViewOrders,
		spinner:     sp,
	}
	m.syncSnapshots()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if m.orders != nil {
		cmds = append(cmds, waitForChange(m.orders.Changes(), ordersChangedMsg{}))
	}
	if m.products != nil {
		cmds = append(cmds, waitForChange(m.products.Changes(), productsChangedMsg{}))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.logViewport = viewport.New(max(m.width-4, 1), max(m.height-5, 1))
		}
		m.ready = true
		m.updateLogViewport()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ordersChangedMsg:
		m.syncSnapshots()
		return m, waitForChange(m.orders.Changes(), ordersChangedMsg{})

	case productsChangedMsg:
		m.syncSnapshots()
		return m, waitForChange(m.products.Changes(), productsChangedMsg{})

	case orderSavedMsg:
		return m.handleOrderSaved(msg)

	case orderDeletedMsg:
		if msg.err != nil {
			m.setFlash(m.orderSnap.Error, flashDanger)
		} else {
			m.setFlash("Order deleted", flashInfo)
		}
		return m, nil

	case productSavedMsg:
		if msg.err != nil {
			m.setFlash(m.products.Snapshot().Error, flashDanger)
		} else {
			m.setFlash("Product "+msg.product.Name+" saved", flashInfo)
		}
		return m, nil

	case productDeletedMsg:
		if msg.err != nil {
			m.setFlash(m.products.Snapshot().Error, flashDanger)
		} else {
			m.setFlash("Product deleted", flashInfo)
		}
		return m, nil

	case pickedMsg:
		m.applyPicked(msg)
		return m, nil

	case removeLineMsg:
		m.applyRemoveLine(msg)
		return m, nil

	case productFormMsg:
		return m, m.saveProductCmd(msg.product, msg.isNew)

	case logsLoadedMsg:
		m.logEntries = msg.entries
		m.logErr = msg.err
		m.updateLogViewport()
		m.logViewport.GotoBottom()
		return m, nil
	}

	// Everything else (cursor blink and the like) goes to whatever owns input.
	if m.modal != nil {
		var cmd tea.Cmd
		m.modal, cmd, _ = m.modal.Update(msg, m.keys)
		return m, cmd
	}
	if m.currentView == ViewEditor && m.editor != nil {
		return m, m.editor.updateInput(msg)
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
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	return m.renderMain()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.modal != nil {
		var (
			cmd    tea.Cmd
			closed bool
		)
		m.modal, cmd, closed = m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
		}
		return m, cmd
	}
	m.flash = ""
	if m.currentView == ViewEditor {
		return m.handleEditorKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil
	case key.Matches(msg, m.keys.ViewOrders):
		m.currentView = ViewOrders
		return m, nil
	case key.Matches(msg, m.keys.ViewProducts):
		m.currentView = ViewProducts
		return m, nil
	case key.Matches(msg, m.keys.ViewLogs):
		m.currentView = ViewLogs
		return m, loadLogsCmd(m.logPath)
	case key.Matches(msg, m.keys.Back):
		m.currentView = ViewOrders
		return m, nil
	}

	switch m.currentView {
	case ViewOrders:
		return m.handleOrdersKey(msg)
	case ViewProducts:
		return m.handleProductsKey(msg)
	case ViewLogs:
		return m.handleLogsKey(msg)
	}
	return m, nil
}

func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.prefs.Theme = m.theme.Name
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.log.Warn("save prefs failed", zap.Error(err))
		m.setFlash("Could not save theme preference", flashWarn)
	}
}

func (m *Model) syncSnapshots() {
	if m.orders != nil {
		m.orderSnap = m.orders.Snapshot()
		m.orderRow = clampRow(m.orderRow, len(m.orderSnap.Items))
	}
	if m.products != nil {
		m.productSnap = m.products.Snapshot()
		m.productRow = clampRow(m.productRow, len(m.productSnap.Items))
	}
}

func (m *Model) setFlash(text string, kind flashKind) {
	m.flash = text
	m.flashKind = kind
}

func (m Model) loading() bool {
	return m.orderSnap.Loading || m.productSnap.Loading
}

func clampRow(row, n int) int {
	if n == 0 || row < 0 {
		return 0
	}
	if row >= n {
		return n - 1
	}
	return row
}

// moveRow applies the shared navigation keys to a row index.
func (m Model) moveRow(msg tea.KeyMsg, row, n int) (int, bool) {
	switch {
	case key.Matches(msg, m.keys.Down):
		return clampRow(row+1, n), true
	case key.Matches(msg, m.keys.Up):
		return clampRow(row-1, n), true
	case key.Matches(msg, m.keys.Top):
		return 0, true
	case key.Matches(msg, m.keys.Bottom):
		return clampRow(n-1, n), true
	}
	return row, false
}

// Messages

type ordersChangedMsg struct{}

type productsChangedMsg struct{}

type orderSavedMsg struct {
	order   orders.Order
	created bool
	err     error
}

type orderDeletedMsg struct {
	id  string
	err error
}

type productSavedMsg struct {
	product orders.Product
	err     error
}

type productDeletedMsg struct {
	id  string
	err error
}

type logsLoadedMsg struct {
	entries []logtail.Entry
	err     error
}

// Commands

func waitForChange(ch <-chan struct{}, msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return msg
	}
}

func (m Model) refreshCmd() tea.Cmd {
	if m.refresh == nil {
		return nil
	}
	ctx, refresh := m.ctx, m.refresh
	return func() tea.Msg {
		refresh(ctx)
		return nil
	}
}

const logTailLines = 500

func loadLogsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return logsLoadedMsg{err: errors.New("file logging is disabled")}
		}
		lines, err := logtail.Read(path, logTailLines)
		return logsLoadedMsg{entries: logtail.ParseAll(lines), err: err}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
