package discovery

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/sd-personal/fsradio/internal/logging"
	"github.com/sd-personal/fsradio/pkg/fsapi"
)

const (
	// ServiceType is the mDNS service type browsed for candidates.
	// Frontier Silicon devices advertise a plain HTTP service without a
	// vendor-specific type, so every HTTP responder is a candidate until
	// its description document says otherwise.
	ServiceType = "_http._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default timeout for device discovery
	DefaultScanTimeout = 10 * time.Second

	// DefaultProbeTimeout is the per-candidate timeout for the description
	// document probe
	DefaultProbeTimeout = 2 * time.Second

	// descriptionPath is where devices serve their description document
	descriptionPath = "/device"
)

// Scanner handles mDNS discovery of Frontier Silicon devices
type Scanner struct {
	// Timeout is the maximum time to wait for mDNS responses
	Timeout time.Duration

	// ProbeTimeout bounds each candidate's description probe
	ProbeTimeout time.Duration
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout:      DefaultScanTimeout,
		ProbeTimeout: DefaultProbeTimeout,
	}
}

// ScanForDevices discovers all Frontier Silicon devices on the local network
func (s *Scanner) ScanForDevices() ([]*Device, error) {
	return s.ScanForDevicesWithContext(context.Background())
}

// ScanForDevicesWithContext discovers devices with a custom context.
// Every mDNS HTTP responder is probed for a device description document;
// only hosts answering with a <netRemote> document are returned.
func (s *Scanner) ScanForDevicesWithContext(ctx context.Context) ([]*Device, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	// Probe candidates as they arrive; mDNS answers trickle in over the
	// whole scan window, so probes run concurrently with browsing. The
	// collector owns all bookkeeping and returns only after the entries
	// channel is closed and every in-flight probe has finished, so a late
	// entry can never race the final result.
	resultCh := make(chan []*Device, 1)
	go func() { resultCh <- s.collect(entries) }()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	// zeroconf closes the entries channel once the context expires
	devices := <-resultCh

	return devices, nil
}

// collect drains service entries, probing each new candidate concurrently,
// and returns the confirmed devices sorted by IP. It does not return until
// the channel is closed and all probes have completed.
func (s *Scanner) collect(entries <-chan *zeroconf.ServiceEntry) []*Device {
	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		devices []*Device
		seen    = make(map[string]bool)
	)

	for entry := range entries {
		for _, candidate := range s.parseServiceEntry(entry) {
			key := fmt.Sprintf("%s:%d", candidate.IP, candidate.Port)
			if seen[key] {
				continue
			}
			seen[key] = true

			wg.Add(1)
			go func(candidate *Device) {
				defer wg.Done()
				if device := s.probe(candidate); device != nil {
					mu.Lock()
					devices = append(devices, device)
					mu.Unlock()
				}
			}(candidate)
		}
	}
	wg.Wait()

	sort.Slice(devices, func(i, j int) bool { return devices[i].IP < devices[j].IP })

	logging.Info("Discovery finished",
		zap.Int("candidates", len(seen)),
		zap.Int("devices", len(devices)),
	)

	return devices
}

// parseServiceEntry converts a zeroconf service entry to candidate devices,
// one per advertised IPv4 address
func (s *Scanner) parseServiceEntry(entry *zeroconf.ServiceEntry) []*Device {
	if entry == nil || entry.Port == 0 {
		return nil
	}

	candidates := make([]*Device, 0, len(entry.AddrIPv4))
	for _, addr := range entry.AddrIPv4 {
		candidates = append(candidates, &Device{
			Hostname:     entry.HostName,
			IP:           addr.String(),
			Port:         entry.Port,
			DiscoveredAt: time.Now(),
		})
	}
	return candidates
}

// probe fetches a candidate's description document. Candidates that do not
// answer with a Frontier Silicon description are silently dropped; most
// mDNS HTTP responders are printers and routers.
func (s *Scanner) probe(candidate *Device) *Device {
	url := fmt.Sprintf("http://%s:%d%s", candidate.IP, candidate.Port, descriptionPath)

	desc, err := fsapi.FetchDescription(url, s.ProbeTimeout)
	if err != nil {
		logging.LogDeviceProbe(candidate.IP, false, err)
		return nil
	}

	candidate.Name = desc.FriendlyName
	candidate.APIURL = desc.APIURL
	candidate.Version = desc.Version

	logging.LogDeviceProbe(candidate.IP, true, nil)
	return candidate
}

// DiscoverDevices is a convenience wrapper that scans with the default
// timeout
func DiscoverDevices(timeout time.Duration) ([]*Device, error) {
	scanner := NewScanner()
	if timeout > 0 {
		scanner.Timeout = timeout
	}
	return scanner.ScanForDevices()
}

// ProbeHost checks a single known host for a Frontier Silicon device
// without an mDNS scan. Useful when the device IP is already known.
func ProbeHost(host string, port int, timeout time.Duration) (*Device, error) {
	if port == 0 {
		port = 80
	}
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}

	url := fmt.Sprintf("http://%s:%d%s", host, port, descriptionPath)
	desc, err := fsapi.FetchDescription(url, timeout)
	if err != nil {
		return nil, err
	}

	return &Device{
		Name:         desc.FriendlyName,
		IP:           host,
		Port:         port,
		APIURL:       desc.APIURL,
		Version:      desc.Version,
		DiscoveredAt: time.Now(),
	}, nil
}
