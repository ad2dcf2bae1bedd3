package config

import "time"

// Registry represents the entire user configuration file.
// This stores user-defined metadata for devices and application preferences.
type Registry struct {
	Version     int                `yaml:"version"`
	Devices     map[string]*Device `yaml:"devices,omitempty"` // Keyed by device host (IP or hostname)
	Preferences *Preferences       `yaml:"preferences,omitempty"`
}

// Device represents user-defined metadata for a single radio.
// This is keyed by the device's host in the Registry.
type Device struct {
	Nickname string    `yaml:"nickname,omitempty"` // User-friendly name
	PIN      string    `yaml:"pin,omitempty"`      // Device access PIN (factory default "1234")
	APIURL   string    `yaml:"api_url,omitempty"`  // Resolved fsapi base URL
	Port     int       `yaml:"port,omitempty"`     // HTTP port of the description document
	LastSeen time.Time `yaml:"last_seen,omitempty"`
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	DefaultDevice   string `yaml:"default_device,omitempty"` // Host used when --host is not given
	DefaultPIN      string `yaml:"default_pin,omitempty"`    // PIN used for devices without an entry
	DiscoverTimeout int    `yaml:"discover_timeout"`         // mDNS discovery timeout in seconds
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version: 1,
		Devices: make(map[string]*Device),
		Preferences: &Preferences{
			DefaultPIN:      "1234",
			DiscoverTimeout: 10,
		},
	}
}

// GetDevice returns the entry for a host, or nil if unknown.
func (r *Registry) GetDevice(host string) *Device {
	if r.Devices == nil {
		return nil
	}
	return r.Devices[host]
}

// RememberDevice records or updates a device entry after a successful
// connection or discovery.
func (r *Registry) RememberDevice(host string, device *Device) {
	if r.Devices == nil {
		r.Devices = make(map[string]*Device)
	}
	device.LastSeen = time.Now()
	r.Devices[host] = device
}

// PINFor returns the PIN configured for a host, falling back to the
// default PIN preference.
func (r *Registry) PINFor(host string) string {
	if device := r.GetDevice(host); device != nil && device.PIN != "" {
		return device.PIN
	}
	if r.Preferences != nil && r.Preferences.DefaultPIN != "" {
		return r.Preferences.DefaultPIN
	}
	return "1234"
}
