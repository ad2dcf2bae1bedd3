package discovery

import (
	"net"
	"testing"

	"github.com/grandcat/zeroconf"
)

func TestScanner_parseServiceEntry(t *testing.T) {
	scanner := NewScanner()

	tests := []struct {
		name    string
		entry   *zeroconf.ServiceEntry
		wantLen int
		wantIP  string
	}{
		{
			name: "single IPv4 address",
			entry: &zeroconf.ServiceEntry{
				HostName: "MEDION.local.",
				Port:     80,
				AddrIPv4: []net.IP{net.ParseIP("192.168.1.14")},
			},
			wantLen: 1,
			wantIP:  "192.168.1.14",
		},
		{
			name: "multiple IPv4 addresses yield one candidate each",
			entry: &zeroconf.ServiceEntry{
				HostName: "radio.local.",
				Port:     8080,
				AddrIPv4: []net.IP{net.ParseIP("10.0.0.5"), net.ParseIP("10.0.1.5")},
			},
			wantLen: 2,
			wantIP:  "10.0.0.5",
		},
		{
			name:    "nil entry",
			entry:   nil,
			wantLen: 0,
		},
		{
			name: "zero port",
			entry: &zeroconf.ServiceEntry{
				HostName: "radio.local.",
				AddrIPv4: []net.IP{net.ParseIP("10.0.0.5")},
			},
			wantLen: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidates := scanner.parseServiceEntry(tt.entry)
			if len(candidates) != tt.wantLen {
				t.Fatalf("parseServiceEntry() returned %d candidates, want %d",
					len(candidates), tt.wantLen)
			}
			if tt.wantLen > 0 && candidates[0].IP != tt.wantIP {
				t.Errorf("IP = %q, want %q", candidates[0].IP, tt.wantIP)
			}
		})
	}
}

func TestScanner_CollectDrainsLateEntries(t *testing.T) {
	// An entry arriving just before the channel closes must still be
	// probed and included; collect may only return once all probes are
	// done.
	_, host, port := newDescriptionServer(t)
	ip := net.ParseIP(host)
	if ip == nil {
		t.Fatalf("unexpected server host %q", host)
	}

	scanner := NewScanner()
	entries := make(chan *zeroconf.ServiceEntry)

	resultCh := make(chan []*Device, 1)
	go func() { resultCh <- scanner.collect(entries) }()

	entry := &zeroconf.ServiceEntry{
		HostName: "radio.local.",
		Port:     port,
		AddrIPv4: []net.IP{ip},
	}
	entries <- entry
	// Same host again: must be deduplicated, not probed twice
	entries <- entry
	close(entries)

	devices := <-resultCh
	if len(devices) != 1 {
		t.Fatalf("collect() returned %d devices, want 1", len(devices))
	}
	if devices[0].Name != "Attic Radio" {
		t.Errorf("Name = %q, want Attic Radio", devices[0].Name)
	}
	if devices[0].IP != host {
		t.Errorf("IP = %q, want %q", devices[0].IP, host)
	}
}

func TestScanner_CollectEmptyChannel(t *testing.T) {
	scanner := NewScanner()
	entries := make(chan *zeroconf.ServiceEntry)
	close(entries)

	if devices := scanner.collect(entries); len(devices) != 0 {
		t.Errorf("collect() returned %d devices, want 0", len(devices))
	}
}
