package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sd-personal/fsradio/internal/discovery"
	"github.com/sd-personal/fsradio/pkg/fsapi"
)

// refreshInterval is how often the dashboard polls the device for status
const refreshInterval = 2 * time.Second

// radioStatus is a point-in-time snapshot of the device state
type radioStatus struct {
	Power      bool
	Volume     int
	Muted      bool
	Mode       string
	PlayState  fsapi.PlayState
	NowPlaying *fsapi.NowPlaying
}

// Messages for async operations
type statusMsg struct {
	status *radioStatus
	err    error
}

type actionDoneMsg struct {
	label    string
	accepted bool
	err      error
}

type refreshTickMsg time.Time

// dashboardKeyMap defines key bindings for the dashboard screen
type dashboardKeyMap struct {
	PlayPause key.Binding
	Next      key.Binding
	Prev      key.Binding
	VolUp     key.Binding
	VolDown   key.Binding
	Mute      key.Binding
	Power     key.Binding
	Mode      key.Binding
	Refresh   key.Binding
	Back      key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k dashboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PlayPause, k.Next, k.Prev, k.VolUp, k.VolDown, k.Back}
}

// FullHelp returns keybindings for the expanded help view
func (k dashboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PlayPause, k.Next, k.Prev},
		{k.VolUp, k.VolDown, k.Mute},
		{k.Power, k.Mode, k.Refresh, k.Back},
	}
}

// DashboardModel is the interactive remote for a single radio
type DashboardModel struct {
	Device *discovery.Device
	Radio  *fsapi.Radio

	// Latest status snapshot; nil until the first fetch completes
	Status  *radioStatus
	Loading bool
	Err     error

	// Mode cycling state; fetched once after connect
	Modes []fsapi.Mode

	// Transient feedback line after an action
	Flash string

	// UI state
	Width   int
	Height  int
	Spinner spinner.Model
	Help    help.Model
	Keys    dashboardKeyMap

	backRequested bool
}

// NewDashboardModel creates a dashboard bound to the given device and client
func NewDashboardModel(device *discovery.Device, radio *fsapi.Radio) DashboardModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	keys := dashboardKeyMap{
		PlayPause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "play/pause"),
		),
		Next: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "previous"),
		),
		VolUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "volume up"),
		),
		VolDown: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "volume down"),
		),
		Mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute"),
		),
		Power: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "power"),
		),
		Mode: key.NewBinding(
			key.WithKeys("M"),
			key.WithHelp("M", "next mode"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Back: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "back"),
		),
	}

	return DashboardModel{
		Device:  device,
		Radio:   radio,
		Loading: true,
		Spinner: s,
		Help:    help.New(),
		Keys:    keys,
	}
}

// Init kicks off the first status fetch and the refresh ticker
func (m DashboardModel) Init() tea.Cmd {
	return tea.Batch(
		fetchStatus(m.Radio),
		fetchModes(m.Radio),
		m.Spinner.Tick,
		refreshTick(),
	)
}

// Update handles messages and updates the model
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case statusMsg:
		m.Loading = false
		if msg.err != nil {
			m.Err = msg.err
		} else {
			m.Err = nil
			m.Status = msg.status
		}

	case modesMsg:
		if msg.err == nil {
			m.Modes = msg.modes
		}

	case actionDoneMsg:
		if msg.err != nil {
			m.Flash = fmt.Sprintf("%s failed: %v", msg.label, msg.err)
		} else if !msg.accepted {
			m.Flash = fmt.Sprintf("%s not accepted by device", msg.label)
		} else {
			m.Flash = msg.label
		}
		// Pull fresh state so the panel reflects the action
		return m, fetchStatus(m.Radio)

	case refreshTickMsg:
		return m, tea.Batch(fetchStatus(m.Radio), refreshTick())

	case spinner.TickMsg:
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}

	return m, cmd
}

// handleKey dispatches remote-control keys to device actions
func (m DashboardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "q", "esc":
		m.backRequested = true
		return m, nil

	case " ":
		if m.Status != nil && m.Status.PlayState == fsapi.StatePlaying {
			return m, doAction("Paused", m.Radio.Pause)
		}
		return m, doAction("Playing", m.Radio.Play)

	case "n":
		return m, doAction("Next", m.Radio.Next)

	case "b":
		return m, doAction("Previous", m.Radio.Previous)

	case "+", "=":
		return m, m.adjustVolume(1)

	case "-", "_":
		return m, m.adjustVolume(-1)

	case "m":
		muted := m.Status != nil && m.Status.Muted
		label := "Muted"
		if muted {
			label = "Unmuted"
		}
		return m, doAction(label, func() (bool, error) {
			return m.Radio.SetMute(!muted)
		})

	case "p":
		on := m.Status != nil && m.Status.Power
		label := "Powered on"
		if on {
			label = "Standby"
		}
		return m, doAction(label, func() (bool, error) {
			return m.Radio.SetPower(!on)
		})

	case "M":
		return m, m.cycleMode()

	case "r":
		m.Flash = ""
		return m, fetchStatus(m.Radio)
	}

	return m, nil
}

// adjustVolume nudges the volume by delta from the last known level
func (m DashboardModel) adjustVolume(delta int) tea.Cmd {
	if m.Status == nil {
		return nil
	}
	target := m.Status.Volume + delta
	if target < 0 {
		target = 0
	}
	return doAction(fmt.Sprintf("Volume %d", target), func() (bool, error) {
		return m.Radio.SetVolume(target)
	})
}

// cycleMode switches the device to the next source mode
func (m DashboardModel) cycleMode() tea.Cmd {
	if len(m.Modes) == 0 || m.Status == nil {
		return nil
	}
	next := m.Modes[0]
	for i, mode := range m.Modes {
		if mode.Label == m.Status.Mode {
			next = m.Modes[(i+1)%len(m.Modes)]
			break
		}
	}
	return doAction(fmt.Sprintf("Mode: %s", next.Label), func() (bool, error) {
		return m.Radio.SetMode(next.Label)
	})
}

// IsBackRequested reports whether the user asked to return to discovery
func (m DashboardModel) IsBackRequested() bool {
	return m.backRequested
}

// View renders the dashboard screen
func (m DashboardModel) View() string {
	content := m.renderContent()
	helpText := m.Help.View(m.Keys)
	return RenderApplicationContainer(content, helpText, m.Width, m.Height)
}

// renderContent builds the status panel
func (m DashboardModel) renderContent() string {
	var b strings.Builder

	name := m.Device.Name
	if name == "" {
		name = m.Device.IP
	}
	b.WriteString(RenderTitle(name))
	b.WriteString("\n")

	if m.Loading {
		b.WriteString(fmt.Sprintf("  %s Connecting...\n", m.Spinner.View()))
		return b.String()
	}

	if m.Err != nil {
		b.WriteString(RenderError(fmt.Sprintf("Device unreachable: %v", m.Err)))
		b.WriteString("\n\n")
		b.WriteString(SubtitleStyle.Render("  Press r to retry or q to go back"))
		b.WriteString("\n")
		return b.String()
	}

	st := m.Status
	if st == nil {
		return b.String()
	}

	power := "Standby"
	powerStyle := lipgloss.NewStyle().Foreground(SubtleColor)
	if st.Power {
		power = "On"
		powerStyle = lipgloss.NewStyle().Foreground(SecondaryColor).Bold(true)
	}

	volume := fmt.Sprintf("%d", st.Volume)
	if st.Muted {
		volume += " (muted)"
	}

	b.WriteString(renderStatusRow("Power", powerStyle.Render(power)))
	b.WriteString(renderStatusRow("Mode", st.Mode))
	b.WriteString(renderStatusRow("Volume", volume))
	b.WriteString(renderStatusRow("State", st.PlayState.String()))
	b.WriteString("\n")

	if np := st.NowPlaying; np != nil && (np.Name != "" || np.Text != "") {
		b.WriteString("  ")
		b.WriteString(TrackStyle.Render(np.Name))
		b.WriteString("\n")
		if np.Text != "" {
			b.WriteString("  " + np.Text + "\n")
		}
		if np.Artist != "" || np.Album != "" {
			detail := np.Artist
			if np.Album != "" {
				if detail != "" {
					detail += " / "
				}
				detail += np.Album
			}
			b.WriteString("  " + SubtitleStyle.Render(detail) + "\n")
		}
		b.WriteString("\n")
	}

	if m.Flash != "" {
		b.WriteString("  " + FlashStyle.Render(m.Flash) + "\n")
	}

	return b.String()
}

// renderStatusRow renders one aligned label/value row
func renderStatusRow(label, value string) string {
	return "  " + LabelStyle.Render(label) + ValueStyle.Render(value) + "\n"
}

// modesMsg carries the device's source mode list
type modesMsg struct {
	modes []fsapi.Mode
	err   error
}

// fetchStatus returns a command that reads the full status snapshot
func fetchStatus(radio *fsapi.Radio) tea.Cmd {
	return func() tea.Msg {
		power, err := radio.Power()
		if err != nil {
			return statusMsg{err: err}
		}

		st := &radioStatus{Power: power}

		// Remaining reads are best effort; a node the device does not
		// support just leaves the zero value in place.
		if volume, err := radio.Volume(); err == nil {
			st.Volume = volume
		}
		if muted, err := radio.Mute(); err == nil {
			st.Muted = muted
		}
		if mode, err := radio.Mode(); err == nil {
			st.Mode = mode
		}
		if state, err := radio.PlayStatus(); err == nil {
			st.PlayState = state
		}
		if np, err := radio.NowPlaying(); err == nil {
			st.NowPlaying = np
		}

		return statusMsg{status: st}
	}
}

// fetchModes returns a command that reads the valid source modes once
func fetchModes(radio *fsapi.Radio) tea.Cmd {
	return func() tea.Msg {
		modes, err := radio.Modes()
		return modesMsg{modes: modes, err: err}
	}
}

// doAction runs a device write off the UI goroutine
func doAction(label string, fn func() (bool, error)) tea.Cmd {
	return func() tea.Msg {
		accepted, err := fn()
		return actionDoneMsg{label: label, accepted: accepted, err: err}
	}
}

// refreshTick schedules the next periodic status poll
func refreshTick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return refreshTickMsg(t)
	})
}
