package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/rshade/tablectl/internal/datatable"
	"github.com/rshade/tablectl/internal/ingest"
)

func makeRecords(n int) []ingest.Record {
	records := make([]ingest.Record, n)
	for i := range records {
		records[i] = ingest.Record{"id": i + 1, "name": fmt.Sprintf("row-%02d", n-i)}
	}
	return records
}

func newTestBrowser(t *testing.T, n, rows int, opts BrowserOptions) BrowserModel {
	t.Helper()
	ctrl := datatable.New[ingest.Record](datatable.WithRowsOnPage(rows))
	ctrl.SetInputData(makeRecords(n))
	if opts.Locale == language.Und {
		opts.Locale = language.English
	}
	return NewBrowserModel(context.Background(), ctrl, opts)
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func press(t *testing.T, m BrowserModel, msgs ...tea.Msg) BrowserModel {
	t.Helper()
	for _, msg := range msgs {
		updated, _ := m.Update(msg)
		m = updated.(BrowserModel)
	}
	return m
}

func firstID(m BrowserModel) any {
	data := m.ctrl.Data()
	if len(data) == 0 {
		return nil
	}
	return data[0]["id"]
}

func TestNewBrowserModel(t *testing.T) {
	m := newTestBrowser(t, 25, 10, BrowserOptions{Title: "people.json"})

	assert.Equal(t, ViewStateList, m.state)
	assert.Equal(t, []string{"id", "name"}, m.columns)
	assert.Len(t, m.ctrl.Data(), 10)
	assert.Equal(t, 1, m.rebuilds)
	assert.Len(t, m.table.Rows(), 10)
	assert.Nil(t, m.Init())

	view := m.View()
	assert.Contains(t, view, "people.json")
	assert.Contains(t, view, "Page 1 of 3")
}

func TestBrowserModel_Paging(t *testing.T) {
	m := newTestBrowser(t, 25, 10, BrowserOptions{})

	m = press(t, m, runeKey('n'))
	assert.Equal(t, 2, m.ctrl.Page().ActivePage)
	assert.Equal(t, 11, firstID(m))
	assert.Equal(t, 2, m.PageEvent().ActivePage)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 3, m.ctrl.Page().ActivePage)
	assert.Len(t, m.ctrl.Data(), 5)

	// Already on the last page.
	m = press(t, m, runeKey('n'))
	assert.Equal(t, 3, m.ctrl.Page().ActivePage)

	m = press(t, m, runeKey('g'))
	assert.Equal(t, 1, m.ctrl.Page().ActivePage)

	m = press(t, m, runeKey('p'))
	assert.Equal(t, 1, m.ctrl.Page().ActivePage)

	m = press(t, m, runeKey('G'))
	assert.Equal(t, 3, m.ctrl.Page().ActivePage)
	assert.Contains(t, m.View(), "Page 3 of 3")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 2, m.ctrl.Page().ActivePage)
	assert.Equal(t, 5, m.feed.changes)
}

func TestBrowserModel_RebuildsOnlyOnNewRevision(t *testing.T) {
	m := newTestBrowser(t, 25, 10, BrowserOptions{})
	rebuilds := m.rebuilds
	revision := m.ctrl.Revision()

	type tick struct{}
	m = press(t, m, tick{}, tick{}, runeKey('p'))
	assert.Equal(t, rebuilds, m.rebuilds)
	assert.Equal(t, revision, m.ctrl.Revision())

	m = press(t, m, runeKey('n'))
	assert.Equal(t, rebuilds+1, m.rebuilds)

	// A resize rebuilds the widget without recomputing.
	m = press(t, m, tea.WindowSizeMsg{Width: 80, Height: 20})
	assert.Equal(t, rebuilds+2, m.rebuilds)
	assert.Equal(t, revision+1, m.ctrl.Revision())
}

func TestBrowserModel_PageSizeKeepsFirstRow(t *testing.T) {
	m := newTestBrowser(t, 25, 10, BrowserOptions{})
	m = press(t, m, runeKey('G'))
	assert.Equal(t, 21, firstID(m))

	m = press(t, m, runeKey('+'))
	assert.Equal(t, 20, m.ctrl.Page().RowsOnPage)
	assert.Equal(t, 2, m.ctrl.Page().ActivePage)
	assert.Equal(t, 21, firstID(m))

	m = press(t, m, runeKey('-'), runeKey('-'))
	assert.Equal(t, 5, m.ctrl.Page().RowsOnPage)
	assert.Equal(t, 5, m.ctrl.Page().ActivePage)
	assert.Equal(t, 21, firstID(m))
}

func TestBrowserModel_SortKeys(t *testing.T) {
	m := newTestBrowser(t, 25, 10, BrowserOptions{})

	m = press(t, m, runeKey('s'))
	assert.Equal(t, datatable.SortBy(datatable.SortAsc, "id"), m.ctrl.Sort())
	assert.Equal(t, 1, firstID(m))

	m = press(t, m, runeKey('s'))
	assert.Equal(t, datatable.SortBy(datatable.SortAsc, "name"), m.ctrl.Sort())
	assert.Equal(t, 25, firstID(m))

	m = press(t, m, runeKey('S'))
	assert.Equal(t, datatable.SortBy(datatable.SortAsc, "name", "id"), m.ctrl.Sort())

	// Every field is already a key.
	m = press(t, m, runeKey('S'))
	assert.Equal(t, []string{"name", "id"}, m.ctrl.Sort().By)

	m = press(t, m, runeKey('r'))
	assert.Equal(t, datatable.SortDesc, m.ctrl.Sort().Order)
	assert.Equal(t, 1, firstID(m))
	assert.Contains(t, m.View(), "sort: name, id desc")

	m = press(t, m, runeKey('s'))
	assert.Equal(t, datatable.SortBy(datatable.SortDesc, "id"), m.ctrl.Sort())
}

func TestBrowserModel_ReverseWithoutSortIsNoop(t *testing.T) {
	m := newTestBrowser(t, 25, 10, BrowserOptions{})
	sortChanges := 0
	m.ctrl.OnSortChange(func(datatable.SortSpec) { sortChanges++ })
	revision := m.ctrl.Revision()

	m = press(t, m, runeKey('r'))
	assert.True(t, m.ctrl.Sort().IsZero())
	assert.Zero(t, sortChanges)
	assert.Equal(t, revision, m.ctrl.Revision())
	assert.Equal(t, 1, m.rebuilds)
	assert.Equal(t, 1, firstID(m))
}

func TestBrowserModel_FixedColumns(t *testing.T) {
	m := newTestBrowser(t, 3, 10, BrowserOptions{Columns: []string{"name"}})
	assert.Equal(t, []string{"name"}, m.columns)

	m = press(t, m, runeKey('s'), runeKey('s'))
	assert.Equal(t, []string{"name"}, m.ctrl.Sort().By)

	m = press(t, m, ReloadMsg{Records: []ingest.Record{{"name": "z", "extra": 1}}})
	assert.Equal(t, []string{"name"}, m.columns)
}

func TestBrowserModel_Yank(t *testing.T) {
	var copied string
	m := newTestBrowser(t, 4, 2, BrowserOptions{Copy: func(s string) error {
		copied = s
		return nil
	}})

	_, cmd := m.Update(runeKey('y'))
	require.NotNil(t, cmd)
	msg := cmd()

	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(copied), &rows))
	assert.Len(t, rows, 2)

	m = press(t, m, msg)
	assert.Contains(t, m.View(), "copied 2 rows to clipboard")

	m.copy = func(string) error { return errors.New("no clipboard") }
	_, cmd = m.Update(runeKey('y'))
	m = press(t, m, cmd())
	assert.True(t, m.noticeErr)
	assert.Contains(t, m.notice, "no clipboard")
}

func TestBrowserModel_Reload(t *testing.T) {
	reloads := make(chan ingest.Reload, 1)
	m := newTestBrowser(t, 25, 10, BrowserOptions{Reloads: reloads})
	m = press(t, m, runeKey('G'))
	require.Equal(t, 3, m.ctrl.Page().ActivePage)

	reloads <- ingest.Reload{Records: makeRecords(12), At: time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)}
	cmd := m.Init()
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, ReloadMsg{}, msg)

	updated, next := m.Update(msg)
	m = updated.(BrowserModel)
	assert.NotNil(t, next, "keeps listening for reloads")
	assert.Equal(t, 2, m.ctrl.Page().ActivePage, "active page clamped to the new last page")
	assert.Len(t, m.ctrl.Data(), 2)
	assert.Equal(t, "reloaded 12 rows at 15:04:05", m.notice)
	assert.Contains(t, m.View(), "watching")

	m = press(t, m, ReloadMsg{Err: errors.New("bad json")})
	assert.True(t, m.noticeErr)
	assert.Len(t, m.ctrl.InputData(), 12)

	close(reloads)
	assert.Nil(t, m.waitForReload()())
}

func TestBrowserModel_HelpAndQuit(t *testing.T) {
	m := newTestBrowser(t, 5, 10, BrowserOptions{})

	short := m.View()
	m = press(t, m, runeKey('?'))
	assert.True(t, m.showHelp)
	assert.Contains(t, m.View(), "add sort key")
	assert.NotContains(t, short, "add sort key")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m = updated.(BrowserModel)
	assert.Equal(t, ViewStateQuitting, m.state)
	assert.NotNil(t, cmd)
	assert.Empty(t, m.View())
}

func TestStepPageSize(t *testing.T) {
	tests := []struct {
		current, dir, want int
	}{
		{10, 1, 20},
		{10, -1, 5},
		{5, -1, 5},
		{7, 1, 10},
		{7, -1, 5},
		{1000, 1, 1000},
		{datatable.ShowAll, 1, datatable.ShowAll},
		{datatable.ShowAll, -1, 1000},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stepPageSize(tt.current, tt.dir), "step(%d, %d)", tt.current, tt.dir)
	}
}

func TestBrowserModel_ClosedReloadsStopListening(t *testing.T) {
	reloads := make(chan ingest.Reload)
	m := newTestBrowser(t, 5, 10, BrowserOptions{Reloads: reloads})
	close(reloads)

	cmd := m.Init()
	require.NotNil(t, cmd)
	assert.Nil(t, cmd())
}
