package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/sd-personal/fsradio/internal/config"
	"github.com/sd-personal/fsradio/internal/discovery"
	"github.com/sd-personal/fsradio/internal/logging"
	"github.com/sd-personal/fsradio/pkg/fsapi"
)

// Screen represents the current active screen in the application
type Screen string

const (
	ScreenDiscovery Screen = "discovery"
	ScreenDashboard Screen = "dashboard"
)

// AppModel is the top-level coordinator model that manages screen transitions
type AppModel struct {
	CurrentScreen Screen

	DiscoveryModel DiscoveryModel
	DashboardModel DashboardModel

	// Shared application state
	SelectedDevice *discovery.Device
	PIN            string
	Registry       *config.Registry

	Width  int
	Height int
}

// NewAppModel creates the application model. When device is non-nil the app
// starts directly on the dashboard; otherwise it starts with discovery.
func NewAppModel(registry *config.Registry, device *discovery.Device, pin string) AppModel {
	scanTimeout := time.Duration(registry.Preferences.DiscoverTimeout) * time.Second
	defaultPIN := registry.Preferences.DefaultPIN

	model := AppModel{
		CurrentScreen:  ScreenDiscovery,
		SelectedDevice: device,
		PIN:            pin,
		Registry:       registry,
		DiscoveryModel: NewDiscoveryModel(scanTimeout, defaultPIN),
	}

	if device != nil {
		model.CurrentScreen = ScreenDashboard
		model.DashboardModel = newDashboardFor(device, pin)
	}

	return model
}

// newDashboardFor builds a dashboard with a client for the device
func newDashboardFor(device *discovery.Device, pin string) DashboardModel {
	client := fsapi.New(device.APIURL, pin, fsapi.DefaultTimeout)
	return NewDashboardModel(device, fsapi.NewRadio(client))
}

// Init initializes the current screen
func (m AppModel) Init() tea.Cmd {
	switch m.CurrentScreen {
	case ScreenDashboard:
		return m.DashboardModel.Init()
	default:
		return m.DiscoveryModel.Init()
	}
}

// Update handles all messages and routes them to the active screen
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.DiscoveryModel.Width = msg.Width
		m.DiscoveryModel.Height = msg.Height
		m.DashboardModel.Width = msg.Width
		m.DashboardModel.Height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	return m.updateCurrentScreen(msg)
}

// updateCurrentScreen routes updates to the currently active screen
func (m AppModel) updateCurrentScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.CurrentScreen {
	case ScreenDiscovery:
		updated, c := m.DiscoveryModel.Update(msg)
		m.DiscoveryModel = updated.(DiscoveryModel)
		cmd = c

		if m.DiscoveryModel.Selected {
			device := m.DiscoveryModel.GetSelectedDevice()
			if device != nil {
				m.SelectedDevice = device
				m.PIN = m.DiscoveryModel.GetPIN()
				m.rememberDevice(device)
				return m.transitionTo(ScreenDashboard)
			}
		}

	case ScreenDashboard:
		updated, c := m.DashboardModel.Update(msg)
		m.DashboardModel = updated.(DashboardModel)
		cmd = c

		if m.DashboardModel.IsBackRequested() {
			return m.transitionTo(ScreenDiscovery)
		}
	}

	return m, cmd
}

// rememberDevice persists the chosen device and PIN to the registry
func (m AppModel) rememberDevice(device *discovery.Device) {
	if m.Registry == nil {
		return
	}

	entry := m.Registry.GetDevice(device.IP)
	if entry == nil {
		entry = &config.Device{}
	}
	entry.Nickname = device.Name
	entry.PIN = m.PIN
	entry.APIURL = device.APIURL
	entry.Port = device.Port
	m.Registry.RememberDevice(device.IP, entry)

	if err := m.Registry.Save(); err != nil {
		logging.Warn("failed to save device registry", zap.Error(err))
	}
}

// transitionTo switches to a new screen, reinitializing its model
func (m AppModel) transitionTo(screen Screen) (tea.Model, tea.Cmd) {
	m.CurrentScreen = screen

	var cmd tea.Cmd

	switch screen {
	case ScreenDiscovery:
		scanTimeout := time.Duration(m.Registry.Preferences.DiscoverTimeout) * time.Second
		m.DiscoveryModel = NewDiscoveryModel(scanTimeout, m.Registry.Preferences.DefaultPIN)
		m.DiscoveryModel.Width = m.Width
		m.DiscoveryModel.Height = m.Height
		cmd = m.DiscoveryModel.Init()

	case ScreenDashboard:
		if m.SelectedDevice != nil {
			m.DashboardModel = newDashboardFor(m.SelectedDevice, m.PIN)
			m.DashboardModel.Width = m.Width
			m.DashboardModel.Height = m.Height
			cmd = m.DashboardModel.Init()
		}
	}

	return m, cmd
}

// View renders the current screen
func (m AppModel) View() string {
	switch m.CurrentScreen {
	case ScreenDashboard:
		return m.DashboardModel.View()
	default:
		return m.DiscoveryModel.View()
	}
}

// Run starts the interactive remote in full-screen mode
func Run(registry *config.Registry, device *discovery.Device, pin string) error {
	app := NewAppModel(registry, device, pin)
	program := tea.NewProgram(app, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
