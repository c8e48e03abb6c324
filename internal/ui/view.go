package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var sections []string

	title := titleStyle.Render("☂ RainViewer Live Weather Map")
	sections = append(sections, title, "")

	sections = append(sections, m.renderTabs(), "")

	if m.activePane == PaneMap {
		sections = append(sections, m.viewMapPane())
	} else {
		sections = append(sections, m.viewAlertsPane())
	}

	status := statusStyle
	if m.statusErr {
		status = statusErrorStyle
	}
	sections = append(sections, "", status.Render(m.status))

	if m.notice != "" {
		sections = append(sections, "", noticeStyle.Render(m.notice+"\n\nPress any key to continue."))
	}

	sections = append(sections, m.renderHelp())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderTabs() string {
	mapTab := tabStyle.Render("Map")
	alertsTab := tabStyle.Render("Alerts")
	if m.activePane == PaneMap {
		mapTab = activeTabStyle.Render("Map")
	} else {
		alertsTab = activeTabStyle.Render("Alerts")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, mapTab, " ", alertsTab)
}

// viewMapPane shows the current parameter set and the URL it produces.
func (m Model) viewMapPane() string {
	snap := m.snapshot
	alerts := m.alertSettings

	row := func(label, value string) string {
		return labelStyle.Render(fmt.Sprintf("%-16s", label)) + valueStyle.Render(value)
	}

	lines := []string{
		row("Latitude", fmt.Sprintf("%.4f", snap.Lat)),
		row("Longitude", fmt.Sprintf("%.4f", snap.Lon)),
		row("Zoom", fmt.Sprintf("%d", snap.Zoom)),
		row("Layer", string(snap.Layer)),
		row("Color scheme", fmt.Sprintf("%d", snap.ColorScheme)),
		row("Opacity", fmt.Sprintf("%d%%", snap.Opacity)),
		row("Legend", onOff(snap.ShowLegend)),
		row("Map labels", onOff(snap.ShowLabels)),
		row("Show snow", onOff(snap.ShowSnow)),
		row("Time step", fmt.Sprintf("%d", snap.Timestep)),
		"",
		row("Alert mode", string(alerts.Mode)),
		row("Area code", alerts.AreaCode),
		row("Auto-refresh", onOff(alerts.AutoRefresh)),
		row("Interval", fmt.Sprintf("%ds", alerts.IntervalSeconds)),
		"",
		labelStyle.Render("Map URL"),
		mutedStyle.Render(m.mapURL),
	}

	return paneStyle.Render(strings.Join(lines, "\n"))
}

// viewAlertsPane shows the alerts table and the selected alert's summary.
func (m Model) viewAlertsPane() string {
	var sections []string

	sections = append(sections, m.alertTable.View())

	if m.feed != nil && len(m.feed.Records) > 0 {
		cursor := m.alertTable.Cursor()
		if cursor >= 0 && cursor < len(m.feed.Records) {
			r := m.feed.Records[cursor]
			detail := severityStyle(r.Severity).Render(r.Event) +
				mutedStyle.Render("  "+r.AreaDesc)
			sections = append(sections, "", detail)
		}
	} else {
		sections = append(sections, "", mutedStyle.Render("No active alerts."))
	}

	return paneStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) renderHelp() string {
	if m.activePane == PaneMap {
		return helpStyle.Render(
			"↑↓←→: Pan • +/-: Zoom • l: Layer • k: Colors • [/]: Opacity • g/v/n: Toggles • t: Timestep\n" +
				"m: Alert mode • x: Area • a: Auto-refresh • i/I: Interval • r: Refresh now\n" +
				"c: Copy embed • o: Open map • E: ECCC alerts • S: Save settings • Tab: Alerts • q: Quit")
	}
	return helpStyle.Render(
		"↑/↓: Navigate • d: Open alert details • r: Refresh now • Tab: Map • q: Quit")
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
