package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sd-personal/fsradio/internal/discovery"
)

// Messages for async operations
type scanStartMsg struct{}
type scanCompleteMsg struct {
	devices []*discovery.Device
	err     error
}
type probeCompleteMsg struct {
	device *discovery.Device
	err    error
}

// discoveryKeyMap defines key bindings for the discovery screen
type discoveryKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Enter  key.Binding
	Rescan key.Binding
	Manual key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k discoveryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Enter, k.Rescan, k.Manual, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k discoveryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter},
		{k.Rescan, k.Manual, k.Quit},
	}
}

// inputKeyMap defines key bindings for the text entry modes (manual host, PIN)
type inputKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k inputKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Cancel}
}

// FullHelp returns keybindings for the expanded help view
func (k inputKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Confirm, k.Cancel},
	}
}

// scanningKeyMap defines key bindings while a scan is running
type scanningKeyMap struct {
	Manual key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k scanningKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Manual, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k scanningKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Manual, k.Quit},
	}
}

// emptyScreenKeyMap defines key bindings when no devices were found
type emptyScreenKeyMap struct {
	Rescan key.Binding
	Manual key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k emptyScreenKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Rescan, k.Manual, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k emptyScreenKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Rescan, k.Manual, k.Quit},
	}
}

// deviceItem wraps a Device for use with bubbles/list
type deviceItem struct {
	device *discovery.Device
}

// FilterValue implements list.Item; devices filter by name, IP, or hostname
func (d deviceItem) FilterValue() string {
	return d.device.Name + " " + d.device.IP + " " + d.device.Hostname
}

// Title returns the device name for list display
func (d deviceItem) Title() string {
	if d.device.Name != "" {
		return d.device.Name
	}
	return d.device.IP
}

// Description returns device details for list display
func (d deviceItem) Description() string {
	return fmt.Sprintf("%s:%d • %s", d.device.IP, d.device.Port, d.device.Version)
}

// deviceDelegate renders discovered radios as bordered cards
type deviceDelegate struct {
	width int
}

func (d deviceDelegate) Height() int { return 7 }

func (d deviceDelegate) Spacing() int { return 1 }

func (d deviceDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d deviceDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	di, ok := item.(deviceItem)
	if !ok {
		return
	}

	device := di.device
	selected := index == m.Index()

	name := device.Name
	if name == "" {
		name = device.IP
	}
	fw := device.Version
	if fw == "" {
		fw = "unknown"
	}

	var content strings.Builder
	if selected {
		content.WriteString(SelectedMenuItemStyle.Render("→ " + name))
	} else {
		content.WriteString("  " + name)
	}
	content.WriteString("\n\n")

	content.WriteString(fmt.Sprintf("  Address:  %s:%d\n", device.IP, device.Port))
	content.WriteString(fmt.Sprintf("  Firmware: %s\n", fw))

	statusStyle := lipgloss.NewStyle().Foreground(SecondaryColor).Bold(true)
	content.WriteString(fmt.Sprintf("  Status:   %s", statusStyle.Render("Ready")))

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderColor).
		Padding(1, 2).
		MarginLeft(2)

	cardWidth := d.width - 6
	if cardWidth < MinTerminalWidth-6 {
		cardWidth = MinTerminalWidth - 6
	}
	if cardWidth > MaxContentWidth-6 {
		cardWidth = MaxContentWidth - 6
	}
	cardStyle = cardStyle.Width(cardWidth)

	if selected {
		cardStyle = cardStyle.BorderForeground(HighlightColor)
	}

	fmt.Fprint(w, cardStyle.Render(content.String()))
}

// DiscoveryModel represents the device discovery screen state
type DiscoveryModel struct {
	// Discovery state
	Scanning   bool
	DeviceList list.Model
	Selected   bool
	Err        error

	// Manual host entry state
	ManualMode bool
	HostInput  textinput.Model
	Probing    bool
	ProbeErr   error

	// PIN entry state; shown after a device is chosen
	PINMode    bool
	PINInput   textinput.Model
	DefaultPIN string
	pending    *discovery.Device

	// UI state
	Width         int
	Height        int
	Spinner       spinner.Model
	ProgressBar   progress.Model
	ScanTimeout   time.Duration
	ScanStartTime time.Time
	Help          help.Model
	Keys          discoveryKeyMap
	InputKeys     inputKeyMap
	ScanningKeys  scanningKeyMap
	EmptyKeys     emptyScreenKeyMap
}

// NewDiscoveryModel creates a new discovery screen model. defaultPIN is used
// to prefill the PIN prompt when a device is selected.
func NewDiscoveryModel(scanTimeout time.Duration, defaultPIN string) DiscoveryModel {
	if scanTimeout <= 0 {
		scanTimeout = discovery.DefaultScanTimeout
	}
	if defaultPIN == "" {
		defaultPIN = "1234"
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	hostInput := textinput.New()
	hostInput.Placeholder = "192.168.1.42"
	hostInput.CharLimit = 64
	hostInput.Width = 30

	pinInput := textinput.New()
	pinInput.Placeholder = defaultPIN
	pinInput.CharLimit = 8
	pinInput.Width = 12

	progressBar := progress.New(progress.WithDefaultGradient())
	progressBar.Width = 40

	delegate := deviceDelegate{width: MinTerminalWidth}
	deviceList := list.New([]list.Item{}, delegate, 0, 0)
	deviceList.Title = "Discovered Radios"
	deviceList.SetShowStatusBar(false)
	deviceList.SetFilteringEnabled(true)
	deviceList.Styles.Title = TitleStyle

	keys := discoveryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "connect"),
		),
		Rescan: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rescan"),
		),
		Manual: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "manual host"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "quit"),
		),
	}

	inputKeys := inputKeyMap{
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}

	scanningKeys := scanningKeyMap{
		Manual: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "manual host"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
	}

	emptyKeys := emptyScreenKeyMap{
		Rescan: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rescan"),
		),
		Manual: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "manual host"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
	}

	return DiscoveryModel{
		DeviceList:   deviceList,
		HostInput:    hostInput,
		PINInput:     pinInput,
		DefaultPIN:   defaultPIN,
		Spinner:      s,
		ProgressBar:  progressBar,
		ScanTimeout:  scanTimeout,
		Help:         help.New(),
		Keys:         keys,
		InputKeys:    inputKeys,
		ScanningKeys: scanningKeys,
		EmptyKeys:    emptyKeys,
	}
}

// Init starts the network scan immediately
func (m DiscoveryModel) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return scanStartMsg{} },
		scanDevices(m.ScanTimeout),
		m.Spinner.Tick,
	)
}

// Update handles messages and updates the model
func (m DiscoveryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.PINMode {
			return m.updatePINMode(msg)
		}
		if m.ManualMode {
			return m.updateManualMode(msg)
		}
		return m.updateNormalMode(msg)

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.DeviceList.SetWidth(msg.Width - 4)
		m.DeviceList.SetHeight(msg.Height - 10)

	case scanStartMsg:
		m.Scanning = true
		m.ScanStartTime = time.Now()

	case scanCompleteMsg:
		m.Scanning = false
		m.Err = msg.err
		items := make([]list.Item, len(msg.devices))
		for i, dev := range msg.devices {
			items[i] = deviceItem{device: dev}
		}
		m.DeviceList.SetItems(items)

	case probeCompleteMsg:
		m.Probing = false
		if msg.err != nil {
			m.ProbeErr = msg.err
			m.ManualMode = true
			m.HostInput.Focus()
			return m, nil
		}
		newItem := deviceItem{device: msg.device}
		items := append([]list.Item{newItem}, m.DeviceList.Items()...)
		m.DeviceList.SetItems(items)
		m.DeviceList.Select(0)
		return m.promptForPIN(msg.device)

	case spinner.TickMsg:
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}

	if !m.ManualMode && !m.PINMode && !m.Scanning {
		m.DeviceList, cmd = m.DeviceList.Update(msg)
	}

	return m, cmd
}

// updateNormalMode handles keyboard input in the device list
func (m DiscoveryModel) updateNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "enter", " ":
		if selectedItem := m.DeviceList.SelectedItem(); selectedItem != nil {
			if item, ok := selectedItem.(deviceItem); ok {
				return m.promptForPIN(item.device)
			}
		}

	case "r":
		m.DeviceList.SetItems([]list.Item{})
		m.Err = nil
		return m, tea.Batch(
			func() tea.Msg { return scanStartMsg{} },
			scanDevices(m.ScanTimeout),
			m.Spinner.Tick,
		)

	case "m":
		m.ManualMode = true
		m.ProbeErr = nil
		m.HostInput.SetValue("")
		m.HostInput.Focus()
	}

	return m, nil
}

// promptForPIN switches to PIN entry for the chosen device
func (m DiscoveryModel) promptForPIN(device *discovery.Device) (tea.Model, tea.Cmd) {
	m.pending = device
	m.PINMode = true
	m.PINInput.SetValue("")
	m.PINInput.Focus()
	return m, nil
}

// updateManualMode handles keyboard input during manual host entry
func (m DiscoveryModel) updateManualMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "ctrl+c", "esc":
		m.ManualMode = false
		m.ProbeErr = nil
		m.HostInput.SetValue("")
		m.HostInput.Blur()
		return m, nil

	case "enter":
		host := strings.TrimSpace(m.HostInput.Value())
		if host != "" {
			m.ManualMode = false
			m.Probing = true
			m.ProbeErr = nil
			m.HostInput.Blur()
			return m, tea.Batch(probeHost(host), m.Spinner.Tick)
		}
	}

	m.HostInput, cmd = m.HostInput.Update(msg)
	return m, cmd
}

// updatePINMode handles keyboard input during PIN entry
func (m DiscoveryModel) updatePINMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "ctrl+c", "esc":
		m.PINMode = false
		m.pending = nil
		m.PINInput.Blur()
		return m, nil

	case "enter":
		m.PINMode = false
		m.Selected = true
		m.PINInput.Blur()
		return m, nil
	}

	m.PINInput, cmd = m.PINInput.Update(msg)
	return m, cmd
}

// View renders the discovery screen
func (m DiscoveryModel) View() string {
	width := m.Width
	if width == 0 {
		width = MinTerminalWidth
	}

	var content string
	switch {
	case m.PINMode:
		content = m.renderPINEntry()
	case m.ManualMode:
		content = m.renderManualEntry()
	case m.Scanning || m.Probing:
		content = m.renderScanning(width)
	default:
		content = m.renderDeviceResults()
	}

	var helpText string
	switch {
	case m.PINMode, m.ManualMode:
		helpText = m.Help.View(m.InputKeys)
	case m.Scanning:
		helpText = m.Help.View(m.ScanningKeys)
	case len(m.DeviceList.Items()) > 0:
		helpText = m.Help.View(m.Keys)
	default:
		helpText = m.Help.View(m.EmptyKeys)
	}

	return RenderApplicationContainer(content, helpText, m.Width, m.Height)
}

// renderScanning renders a centered scanning progress display
func (m DiscoveryModel) renderScanning(width int) string {
	title := fmt.Sprintf("%s SEARCHING FOR RADIOS", m.Spinner.View())
	subtitle := "Scanning your network for Frontier Silicon devices..."
	if m.Probing {
		title = fmt.Sprintf("%s CONTACTING DEVICE", m.Spinner.View())
		subtitle = "Fetching device description..."
	}

	elapsed := time.Since(m.ScanStartTime)
	elapsedSec := int(elapsed.Seconds())
	total := int(m.ScanTimeout.Seconds())
	if total <= 0 {
		total = 1
	}
	progressPercent := elapsedSec * 100 / total
	if progressPercent > 100 {
		progressPercent = 100
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		"",
		TitleStyle.Render(title),
		"",
		SubtitleStyle.Render(subtitle),
		"",
		m.ProgressBar.ViewAs(float64(progressPercent)/100.0),
		"",
		SubtitleStyle.Render(fmt.Sprintf("Elapsed: %ds", elapsedSec)),
		"",
	)

	return lipgloss.Place(width, 0, lipgloss.Center, lipgloss.Top, content)
}

// renderDeviceResults renders the device list or a "no devices found" message
func (m DiscoveryModel) renderDeviceResults() string {
	var b strings.Builder

	b.WriteString("\n")

	if m.Err != nil {
		b.WriteString(RenderError(fmt.Sprintf("Scan failed: %v", m.Err)))
		b.WriteString("\n\n")
		b.WriteString("  Troubleshooting:\n")
		b.WriteString("    • Ensure the radio is powered on\n")
		b.WriteString("    • Check that you are on the same network as the radio\n")
		b.WriteString("    • Try a manual host entry (press 'm')\n")
	} else if len(m.DeviceList.Items()) == 0 {
		warningStyle := lipgloss.NewStyle().Foreground(WarningColor).Bold(true)
		b.WriteString("  ")
		b.WriteString(warningStyle.Render("⚠ No radios found on your network"))
		b.WriteString("\n\n")
		b.WriteString("  Troubleshooting:\n")
		b.WriteString("    • Ensure the radio is powered on and connected to WiFi\n")
		b.WriteString("    • Some radios stop answering mDNS in standby\n")
		b.WriteString("    • Try a manual host entry (press 'm')\n")
		b.WriteString("\n")
	} else {
		b.WriteString(m.DeviceList.View())
	}

	return b.String()
}

// renderManualEntry renders the manual host entry dialog
func (m DiscoveryModel) renderManualEntry() string {
	var b strings.Builder

	b.WriteString(RenderSubtitle("Enter the radio's IP address or hostname"))
	b.WriteString("\n\n")

	if m.ProbeErr != nil {
		b.WriteString(RenderError(fmt.Sprintf("Could not reach device: %v", m.ProbeErr)))
		b.WriteString("\n\n")
	}

	b.WriteString("  Host: ")
	b.WriteString(m.HostInput.View())
	b.WriteString("\n\n")

	return b.String()
}

// renderPINEntry renders the PIN prompt for the chosen device
func (m DiscoveryModel) renderPINEntry() string {
	var b strings.Builder

	name := ""
	if m.pending != nil {
		name = m.pending.Name
		if name == "" {
			name = m.pending.IP
		}
	}

	b.WriteString(RenderSubtitle(fmt.Sprintf("Connect to %s", name)))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("  PIN (blank for %s): ", m.DefaultPIN))
	b.WriteString(m.PINInput.View())
	b.WriteString("\n\n")

	return b.String()
}

// GetSelectedDevice returns the chosen device, if any
func (m DiscoveryModel) GetSelectedDevice() *discovery.Device {
	if m.Selected {
		return m.pending
	}
	return nil
}

// GetPIN returns the PIN entered for the chosen device, falling back to the
// default when the prompt was left blank.
func (m DiscoveryModel) GetPIN() string {
	pin := strings.TrimSpace(m.PINInput.Value())
	if pin == "" {
		return m.DefaultPIN
	}
	return pin
}

// scanDevices returns a command that performs mDNS device discovery
func scanDevices(timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		scanner := discovery.NewScanner()
		scanner.Timeout = timeout

		devices, err := scanner.ScanForDevices()
		return scanCompleteMsg{devices: devices, err: err}
	}
}

// probeHost returns a command that contacts a manually entered host
func probeHost(host string) tea.Cmd {
	return func() tea.Msg {
		device, err := discovery.ProbeHost(host, 80, discovery.DefaultProbeTimeout)
		return probeCompleteMsg{device: device, err: err}
	}
}
