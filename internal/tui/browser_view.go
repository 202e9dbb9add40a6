package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/tablectl/internal/cli/pagination"
	"github.com/rshade/tablectl/internal/datatable"
)

// View renders the current view (Bubble Tea interface).
func (m BrowserModel) View() string {
	if m.state == ViewStateQuitting {
		return ""
	}

	sections := []string{m.renderTitle()}
	if len(m.columns) == 0 {
		sections = append(sections, SubtleStyle.Render("no fields to display"))
	} else {
		sections = append(sections, m.table.View())
	}
	sections = append(sections, m.renderStatusBar())
	if m.notice != "" {
		style := InfoStyle
		if m.noticeErr {
			style = ErrorStyle
		}
		sections = append(sections, style.Render(m.notice))
	}
	if m.showHelp {
		sections = append(sections, m.help.FullHelpView(m.keys.FullHelp()))
	} else {
		sections = append(sections, m.help.ShortHelpView(m.keys.ShortHelp()))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m BrowserModel) renderTitle() string {
	title := m.title
	if title == "" {
		title = "tablectl"
	}
	return TitleStyle.MaxWidth(m.width).Render(title)
}

// statusMeta combines the last page-change notification with the current
// record count.
func (m BrowserModel) statusMeta() pagination.PaginationMeta {
	ev := m.feed.last
	ev.DataLength = len(m.ctrl.InputData())
	return pagination.NewPaginationMeta(ev)
}

// renderStatusBar shows the page position and the active sort.
func (m BrowserModel) renderStatusBar() string {
	parts := []string{m.statusMeta().Summary(m.locale)}
	if label := m.getSortLabel(); label != "" {
		parts = append(parts, LabelStyle.Render("sort: ")+label)
	}
	if m.reloads != nil {
		parts = append(parts, SubtleStyle.Render("watching"))
	}
	return StatusBarStyle.MaxWidth(m.width).Render(strings.Join(parts, "  │  "))
}

func (m BrowserModel) getSortLabel() string {
	spec := m.ctrl.Sort()
	if spec.IsZero() {
		return ""
	}
	return strings.Join(spec.By, ", ") + " " + string(spec.Order.Normalize())
}

// PageEvent returns the last page change the controller published.
func (m BrowserModel) PageEvent() datatable.PageEvent {
	return m.feed.last
}
