package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"github.com/rshade/tablectl/internal/cli/pagination"
	"github.com/rshade/tablectl/internal/datatable"
	"github.com/rshade/tablectl/internal/ingest"
	"github.com/rshade/tablectl/internal/logging"
)

// ViewState is the screen the browser is showing.
type ViewState int

const (
	// ViewStateList shows the table.
	ViewStateList ViewState = iota
	// ViewStateQuitting is entered when the user quits.
	ViewStateQuitting
)

// pageSizes are the steps the +/- keys move through.
var pageSizes = []int{5, 10, 20, 50, 100, 250, 500, 1000}

// ReloadMsg delivers records reloaded from the watched input files.
type ReloadMsg ingest.Reload

// yankedMsg reports the outcome of copying the page to the clipboard.
type yankedMsg struct {
	rows int
	err  error
}

// BrowserOptions configures a BrowserModel.
type BrowserOptions struct {
	// Title is shown above the table, typically the input file names.
	Title string
	// Columns fixes the displayed paths; empty means every discovered field.
	Columns []string
	// Locale formats numbers in the status line.
	Locale language.Tag
	// Reloads delivers watcher results; nil disables live reload.
	Reloads <-chan ingest.Reload
	// Copy writes text to the clipboard; nil uses the system clipboard.
	Copy func(string) error
}

// pageFeed receives page-change notifications from the controller. It is
// shared by every copy of the model.
type pageFeed struct {
	last    datatable.PageEvent
	changes int
}

// BrowserModel is the Bubble Tea model for the interactive table browser.
// Each Update is one check cycle: the message is applied to the controller,
// then Recompute runs and the table widget is rebuilt only when the
// controller produced a new revision.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type BrowserModel struct {
	state  ViewState
	ctx    context.Context
	logger zerolog.Logger

	ctrl    *datatable.Controller[ingest.Record]
	feed    *pageFeed
	catalog *pagination.FieldCatalog
	columns []string
	fixed   bool

	// Interactive components
	table    table.Model
	help     help.Model
	keys     keyMap
	showHelp bool

	// builtRevision is the controller revision the table rows were built from.
	builtRevision uint64
	built         bool
	rebuilds      int

	// Display configuration
	width  int
	height int
	title  string
	locale language.Tag

	reloads <-chan ingest.Reload
	copy    func(string) error

	notice    string
	noticeErr bool
}

// NewBrowserModel creates a browser over ctrl. The controller's input data
// provides the initial records.
func NewBrowserModel(
	ctx context.Context,
	ctrl *datatable.Controller[ingest.Record],
	opts BrowserOptions,
) BrowserModel {
	feed := &pageFeed{last: ctrl.Page()}
	ctrl.OnPageChange(func(ev datatable.PageEvent) {
		feed.last = ev
		feed.changes++
	})

	copyFn := opts.Copy
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	m := BrowserModel{
		state:   ViewStateList,
		ctx:     ctx,
		logger:  logging.Component(ctx, "tui"),
		ctrl:    ctrl,
		feed:    feed,
		columns: slices.Clone(opts.Columns),
		fixed:   len(opts.Columns) > 0,
		help:    help.New(),
		keys:    defaultKeyMap(),
		width:   defaultWidth,
		height:  defaultHeight,
		title:   opts.Title,
		locale:  opts.Locale,
		reloads: opts.Reloads,
		copy:    copyFn,
	}
	m.refreshCatalog()
	m.sync()
	return m
}

// Init initializes the model (Bubble Tea interface).
func (m BrowserModel) Init() tea.Cmd {
	return m.waitForReload()
}

// waitForReload blocks on the watcher channel and turns the next result into
// a ReloadMsg.
func (m BrowserModel) waitForReload() tea.Cmd {
	if m.reloads == nil {
		return nil
	}
	ch := m.reloads
	return func() tea.Msg {
		r, ok := <-ch
		if !ok {
			return nil
		}
		return ReloadMsg(r)
	}
}

// Update handles messages and updates the model state (Bubble Tea interface).
func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.built = false

	case ReloadMsg:
		m = m.handleReload(msg)
		cmd = m.waitForReload()

	case yankedMsg:
		if msg.err != nil {
			m.setNotice(fmt.Sprintf("copy failed: %v", msg.err), true)
		} else {
			m.setNotice(fmt.Sprintf("copied %d rows to clipboard", msg.rows), false)
		}

	case tea.KeyMsg:
		if m.state == ViewStateQuitting {
			return m, nil
		}
		m, cmd = m.handleKeypress(msg)

	default:
		m.table, cmd = m.table.Update(msg)
	}

	m.sync()
	return m, cmd
}

func (m BrowserModel) handleReload(msg ReloadMsg) BrowserModel {
	if msg.Err != nil {
		m.logger.Warn().Err(msg.Err).Msg("reload failed, keeping previous records")
		m.setNotice(fmt.Sprintf("reload failed: %v", msg.Err), true)
		return m
	}
	m.ctrl.SetInputData(msg.Records)
	m.refreshCatalog()
	m.logger.Debug().Int("record_count", len(msg.Records)).Msg("records reloaded")
	m.setNotice(fmt.Sprintf("reloaded %d rows at %s", len(msg.Records), msg.At.Format("15:04:05")), false)
	return m
}

//nolint:cyclop // Flat key dispatch.
func (m BrowserModel) handleKeypress(msg tea.KeyMsg) (BrowserModel, tea.Cmd) {
	page := m.ctrl.Page()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.state = ViewStateQuitting
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.built = false
	case key.Matches(msg, m.keys.NextPage):
		if page.ActivePage < m.ctrl.TotalPages() {
			m.ctrl.SetPage(page.ActivePage+1, page.RowsOnPage)
		}
	case key.Matches(msg, m.keys.PrevPage):
		if page.ActivePage > datatable.FirstPage {
			m.ctrl.SetPage(page.ActivePage-1, page.RowsOnPage)
		}
	case key.Matches(msg, m.keys.FirstPage):
		m.ctrl.SetPage(datatable.FirstPage, page.RowsOnPage)
	case key.Matches(msg, m.keys.LastPage):
		m.ctrl.SetPage(datatable.LastPage(page.DataLength, page.RowsOnPage), page.RowsOnPage)
	case key.Matches(msg, m.keys.MoreRows):
		m.ctrl.SetRowsOnPage(stepPageSize(page.RowsOnPage, 1))
	case key.Matches(msg, m.keys.FewerRows):
		m.ctrl.SetRowsOnPage(stepPageSize(page.RowsOnPage, -1))
	case key.Matches(msg, m.keys.CycleSort):
		m.cycleSort()
	case key.Matches(msg, m.keys.AddSortKey):
		m.addSortKey()
	case key.Matches(msg, m.keys.ReverseOrder):
		spec := m.ctrl.Sort()
		if len(spec.By) == 0 {
			break
		}
		spec.Order = spec.Order.Reverse()
		m.ctrl.SetSort(spec)
	case key.Matches(msg, m.keys.Yank):
		return m, m.yankPage()
	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

// stepPageSize moves to the next larger (dir > 0) or smaller page size.
// Show-all counts as larger than every step.
func stepPageSize(current, dir int) int {
	if current <= datatable.ShowAll {
		if dir > 0 {
			return current
		}
		return pageSizes[len(pageSizes)-1]
	}
	if dir > 0 {
		for _, size := range pageSizes {
			if size > current {
				return size
			}
		}
		return current
	}
	for i := len(pageSizes) - 1; i >= 0; i-- {
		if pageSizes[i] < current {
			return pageSizes[i]
		}
	}
	return current
}

// cycleSort sorts by the field after the current primary key, as the only key.
func (m *BrowserModel) cycleSort() {
	fields := m.sortableFields()
	if len(fields) == 0 {
		return
	}
	spec := m.ctrl.Sort()
	next := fields[0]
	if len(spec.By) > 0 {
		if i := slices.Index(fields, spec.By[0]); i >= 0 {
			next = fields[(i+1)%len(fields)]
		}
	}
	m.ctrl.SetSort(datatable.SortBy(spec.Order, next))
}

// addSortKey appends the first field not yet in the sort as a further key.
func (m *BrowserModel) addSortKey() {
	spec := m.ctrl.Sort()
	for _, f := range m.sortableFields() {
		if !slices.Contains(spec.By, f) {
			m.ctrl.SetSort(datatable.SortBy(spec.Order, append(spec.By, f)...))
			return
		}
	}
}

func (m *BrowserModel) sortableFields() []string {
	return m.columns
}

func (m BrowserModel) yankPage() tea.Cmd {
	rows := m.ctrl.Data()
	data, err := json.MarshalIndent(rows, "", "  ")
	copyFn := m.copy
	return func() tea.Msg {
		if err != nil {
			return yankedMsg{err: err}
		}
		return yankedMsg{rows: len(rows), err: copyFn(string(data))}
	}
}

func (m *BrowserModel) setNotice(text string, isErr bool) {
	m.notice = text
	m.noticeErr = isErr
}

func (m *BrowserModel) refreshCatalog() {
	m.catalog = pagination.DiscoverFields(m.ctrl.InputData())
	if !m.fixed {
		m.columns = m.catalog.GetValidFields()
	}
	m.built = false
}

// sync runs the check cycle and rebuilds the table widget when the visible
// rows changed.
func (m *BrowserModel) sync() {
	rows := m.ctrl.Recompute()
	if m.built && m.builtRevision == m.ctrl.Revision() {
		return
	}
	m.table = m.buildTable(rows)
	m.builtRevision = m.ctrl.Revision()
	m.built = true
	m.rebuilds++
}

func (m BrowserModel) buildTable(records []ingest.Record) table.Model {
	cells := Cells(records, m.columns)
	sortKeys := m.ctrl.Sort()

	columns := make([]table.Column, len(m.columns))
	for i, col := range m.columns {
		title := col
		if idx := slices.Index(sortKeys.By, col); idx >= 0 {
			title = fmt.Sprintf("%s %s%d", col, orderArrow(sortKeys.Order), idx+1)
		}
		width := max(len([]rune(title)), minColumnWidth)
		for _, row := range cells {
			width = max(width, len([]rune(row[i])))
		}
		columns[i] = table.Column{Title: title, Width: min(width, maxColumnWidth)}
	}

	rows := make([]table.Row, len(cells))
	for i, c := range cells {
		rows[i] = table.Row(c)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(m.tableHeight()),
	)

	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	t.SetStyles(s)

	return t
}

func (m BrowserModel) tableHeight() int {
	h := m.height - chromeHeight
	if m.showHelp {
		h -= len(m.keys.FullHelp())
	}
	return max(h, minTableRows)
}

func orderArrow(o datatable.SortOrder) string {
	if o.Normalize() == datatable.SortDesc {
		return "↓"
	}
	return "↑"
}

// Controller returns the controller driven by the browser.
func (m BrowserModel) Controller() *datatable.Controller[ingest.Record] {
	return m.ctrl
}
