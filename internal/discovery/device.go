package discovery

import (
	"fmt"
	"time"
)

// Device represents a discovered Frontier Silicon device on the network
type Device struct {
	// Name is the device's advertised friendly name (e.g. "Kitchen Radio")
	Name string

	// Hostname is the mDNS hostname the device was found under
	Hostname string

	// IP is the IPv4 address (e.g. "192.168.1.14")
	IP string

	// Port is the HTTP port the description document was served on
	Port int

	// APIURL is the fsapi base URL from the device description
	APIURL string

	// Version is the device firmware version string
	Version string

	// DiscoveredAt is when the device was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the device
func (d *Device) String() string {
	return fmt.Sprintf("%s at %s:%d (%s)", d.Name, d.IP, d.Port, d.Version)
}

// DescriptionURL returns the device description URL the device answered on
func (d *Device) DescriptionURL() string {
	return fmt.Sprintf("http://%s:%d/device", d.IP, d.Port)
}
