// Package ui is the terminal front end: it renders the map parameters and
// the live alerts table, and drives the refresh engine from key commands.
package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dc404/weathermap/internal/mapurl"
	"github.com/dc404/weathermap/internal/models"
	"github.com/dc404/weathermap/internal/params"
	"github.com/dc404/weathermap/internal/scheduler"
	"github.com/dc404/weathermap/internal/settings"
)

// ecccAlertsURL is the Canadian federal alerts portal. It is only ever
// opened in the browser; nothing is fetched or parsed from it.
const ecccAlertsURL = "https://weather.gc.ca/warnings/index_e.html"

// panStep is how far one arrow press moves the viewed point, in degrees.
const panStep = 0.5

// stateCodes is the quick-pick list for area-mode queries.
var stateCodes = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "FL", "GA", "HI", "ID",
	"IL", "IN", "IA", "KS", "KY", "LA", "ME", "MD", "MA", "MI", "MN", "MS",
	"MO", "MT", "NE", "NV", "NH", "NJ", "NM", "NY", "NC", "ND", "OH", "OK",
	"OR", "PA", "RI", "SC", "SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV",
	"WI", "WY", "DC", "PR", "GU", "AS", "VI", "MP",
}

// Engine is the refresh-engine surface the view drives.
type Engine interface {
	Events() <-chan scheduler.Event
	UpdateParameters(params.Snapshot)
	UpdateAlertSettings(params.AlertSettings)
	TriggerNow()
	SetAutoRefresh(bool)
}

// ActivePane represents which pane is currently focused
type ActivePane int

const (
	PaneMap ActivePane = iota
	PaneAlerts
)

// Model represents the application's state
type Model struct {
	engine       Engine
	settingsPath string

	activePane ActivePane
	width      int
	height     int

	snapshot      params.Snapshot
	alertSettings params.AlertSettings

	mapURL string
	feed   *models.Feed

	alertTable table.Model

	status    string
	statusErr bool
	// notice is a blocking message (settings save outcome) cleared by the
	// next key press, unlike the passive fetch status line.
	notice string
}

// NewModel creates the application model around a running engine.
func NewModel(engine Engine, snap params.Snapshot, alerts params.AlertSettings, settingsPath string) Model {
	return Model{
		engine:        engine,
		settingsPath:  settingsPath,
		activePane:    PaneMap,
		snapshot:      snap,
		alertSettings: alerts,
		mapURL:        mapurl.Build(snap),
		alertTable:    newAlertTable(),
		status:        models.Placeholder,
	}
}

func newAlertTable() table.Model {
	columns := []table.Column{
		{Title: "Event", Width: 28},
		{Title: "Severity", Width: 10},
		{Title: "Urgency", Width: 10},
		{Title: "Certainty", Width: 10},
		{Title: "Ends", Width: 22},
		{Title: "Area/Office", Width: 34},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.Bold(true).Foreground(colorPrimary).BorderForeground(colorBorder)
	s.Selected = s.Selected.Foreground(lipgloss.Color("#0F121C")).Background(colorPrimary)
	t.SetStyles(s)
	return t
}

// Init starts listening for engine events.
func (m Model) Init() tea.Cmd {
	return waitForEngineEvent(m.engine.Events())
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if h := msg.Height - 14; h > 4 {
			m.alertTable.SetHeight(h)
		}
		return m, nil

	case engineEventMsg:
		m = m.applyEngineEvent(msg.event)
		return m, waitForEngineEvent(m.engine.Events())

	case clipboardCopiedMsg:
		if msg.err != nil {
			m.status, m.statusErr = fmt.Sprintf("Clipboard error: %v", msg.err), true
		} else {
			m.status, m.statusErr = "Embed HTML copied to clipboard.", false
		}
		return m, nil

	case browserOpenedMsg:
		if msg.err != nil {
			m.status, m.statusErr = fmt.Sprintf("Browser error: %v", msg.err), true
		}
		return m, nil

	case settingsSavedMsg:
		// Saves are the result of an explicit action, so the outcome is
		// acknowledged rather than folded into the status line.
		if msg.err != nil {
			m.notice = fmt.Sprintf("Failed to save settings: %v", msg.err)
		} else {
			m.notice = fmt.Sprintf("Settings saved to %s.", msg.path)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) applyEngineEvent(ev scheduler.Event) Model {
	switch ev := ev.(type) {
	case scheduler.MapURLChanged:
		m.mapURL = ev.URL
	case scheduler.FeedUpdated:
		m.feed = ev.Feed
		m.alertTable.SetRows(alertRows(ev.Feed))
		m.status = fmt.Sprintf("%d alerts (source: %s)", len(ev.Feed.Records), ev.Feed.SourceURL)
		m.statusErr = false
	case scheduler.FetchFailed:
		m.status = fmt.Sprintf("Alerts error: %v", ev.Err)
		m.statusErr = true
	}
	return m
}

func alertRows(feed *models.Feed) []table.Row {
	rows := make([]table.Row, 0, len(feed.Records))
	for _, r := range feed.Records {
		rows = append(rows, table.Row{r.Event, r.Severity, r.Urgency, r.Certainty, r.Ends, r.Office()})
	}
	return rows
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" || key == "q" {
		return m, tea.Quit
	}

	// A pending notice blocks everything else until acknowledged.
	if m.notice != "" {
		m.notice = ""
		return m, nil
	}

	switch key {
	case "tab":
		if m.activePane == PaneMap {
			m.activePane = PaneAlerts
		} else {
			m.activePane = PaneMap
		}
		return m, nil

	case "r":
		m.engine.TriggerNow()
		return m, nil

	case "a":
		m.alertSettings.AutoRefresh = !m.alertSettings.AutoRefresh
		m.engine.SetAutoRefresh(m.alertSettings.AutoRefresh)
		return m, nil

	case "i":
		return m.applyAlertSettings(func(s *params.AlertSettings) {
			s.IntervalSeconds = params.ClampInterval(s.IntervalSeconds + 30)
		})

	case "I":
		return m.applyAlertSettings(func(s *params.AlertSettings) {
			s.IntervalSeconds = params.ClampInterval(s.IntervalSeconds - 30)
		})

	case "m":
		return m.applyAlertSettings(func(s *params.AlertSettings) {
			s.Mode = nextMode(s.Mode)
		})

	case "x":
		return m.applyAlertSettings(func(s *params.AlertSettings) {
			s.AreaCode = nextStateCode(s.AreaCode)
		})

	case "c":
		return m, copyToClipboard(mapurl.EmbedHTML(m.snapshot))

	case "o":
		return m, openInBrowser(m.mapURL)

	case "E":
		return m, openInBrowser(ecccAlertsURL)

	case "d":
		if m.feed != nil {
			if cursor := m.alertTable.Cursor(); cursor >= 0 && cursor < len(m.feed.Records) {
				if url := m.feed.Records[cursor].DetailURL; url != "" {
					return m, openInBrowser(url)
				}
			}
		}
		return m, nil

	case "S":
		path := m.settingsPath
		snap, alerts := m.snapshot, m.alertSettings
		return m, func() tea.Msg {
			return settingsSavedMsg{path: path, err: settings.Save(path, snap, alerts)}
		}
	}

	if m.activePane == PaneMap {
		return m.handleMapKey(key)
	}

	var cmd tea.Cmd
	m.alertTable, cmd = m.alertTable.Update(msg)
	return m, cmd
}

// handleMapKey adjusts the map parameters. Every change produces a fresh
// snapshot handed to the engine; the engine echoes the new map URL back and
// re-queries point alerts when that mode is active.
func (m Model) handleMapKey(key string) (tea.Model, tea.Cmd) {
	snap := m.snapshot

	switch key {
	case "up":
		snap.Lat = clampFloat(snap.Lat+panStep, -90, 90)
	case "down":
		snap.Lat = clampFloat(snap.Lat-panStep, -90, 90)
	case "left":
		snap.Lon = clampFloat(snap.Lon-panStep, -180, 180)
	case "right":
		snap.Lon = clampFloat(snap.Lon+panStep, -180, 180)
	case "+", "=":
		snap.Zoom = params.ClampZoom(snap.Zoom + 1)
	case "-":
		snap.Zoom = params.ClampZoom(snap.Zoom - 1)
	case "l":
		if snap.Layer == params.LayerRadar {
			snap.Layer = params.LayerSatellite
		} else {
			snap.Layer = params.LayerRadar
		}
	case "k":
		snap.ColorScheme = (snap.ColorScheme + 1) % 10
	case "[":
		snap.Opacity = clampInt(snap.Opacity-5, 0, 100)
	case "]":
		snap.Opacity = clampInt(snap.Opacity+5, 0, 100)
	case "g":
		snap.ShowLegend = !snap.ShowLegend
	case "v":
		snap.ShowLabels = !snap.ShowLabels
	case "n":
		snap.ShowSnow = !snap.ShowSnow
	case "t":
		snap.Timestep = snap.Timestep%4 + 1
	default:
		return m, nil
	}

	m.snapshot = snap
	m.engine.UpdateParameters(snap)
	return m, nil
}

func (m Model) applyAlertSettings(change func(*params.AlertSettings)) (tea.Model, tea.Cmd) {
	s := m.alertSettings
	change(&s)
	m.alertSettings = s
	m.engine.UpdateAlertSettings(s)
	return m, nil
}

func nextMode(mode params.QueryMode) params.QueryMode {
	switch mode {
	case params.ModePoint:
		return params.ModeState
	case params.ModeState:
		return params.ModeZone
	default:
		return params.ModePoint
	}
}

func nextStateCode(current string) string {
	for i, code := range stateCodes {
		if code == current {
			return stateCodes[(i+1)%len(stateCodes)]
		}
	}
	return stateCodes[0]
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
