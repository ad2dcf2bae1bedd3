package discovery

import (
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/sd-personal/fsradio/pkg/fsapi"
)

func TestDevice_String(t *testing.T) {
	device := &Device{
		Name:    "Kitchen Radio",
		IP:      "192.168.1.14",
		Port:    80,
		Version: "ir-mmi-FS2026-0500-0085",
	}

	s := device.String()
	if !strings.Contains(s, "Kitchen Radio") || !strings.Contains(s, "192.168.1.14:80") {
		t.Errorf("String() = %q", s)
	}
}

func TestDevice_DescriptionURL(t *testing.T) {
	device := &Device{IP: "192.168.1.14", Port: 8080}

	if got := device.DescriptionURL(); got != "http://192.168.1.14:8080/device" {
		t.Errorf("DescriptionURL() = %q", got)
	}
}

// newDescriptionServer serves a Frontier Silicon description document on
// /device and returns the server plus its host and port
func newDescriptionServer(t *testing.T) (*httptest.Server, string, int) {
	t.Helper()
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/device" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = fmt.Fprintf(w, `<netRemote><friendlyName>Attic Radio</friendlyName>`+
			`<version>ir-mmi-FS2026-0500-0085</version>`+
			`<webfsapi>%s/fsapi</webfsapi></netRemote>`, server.URL)
	}))
	t.Cleanup(server.Close)

	host, portStr, err := net.SplitHostPort(strings.TrimPrefix(server.URL, "http://"))
	if err != nil {
		t.Fatalf("SplitHostPort: %v", err)
	}
	port, _ := strconv.Atoi(portStr)
	return server, host, port
}

func TestProbeHost_FrontierSilicon(t *testing.T) {
	server, host, port := newDescriptionServer(t)

	device, err := ProbeHost(host, port, time.Second)
	if err != nil {
		t.Fatalf("ProbeHost() error = %v", err)
	}

	if device.Name != "Attic Radio" {
		t.Errorf("Name = %q, want Attic Radio", device.Name)
	}
	if device.APIURL != server.URL+"/fsapi" {
		t.Errorf("APIURL = %q", device.APIURL)
	}
	if device.Version != "ir-mmi-FS2026-0500-0085" {
		t.Errorf("Version = %q", device.Version)
	}
}

func TestProbeHost_NotADevice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body>printer status</body></html>`))
	}))
	t.Cleanup(server.Close)

	host, portStr, _ := net.SplitHostPort(strings.TrimPrefix(server.URL, "http://"))
	port, _ := strconv.Atoi(portStr)

	_, err := ProbeHost(host, port, time.Second)
	if !fsapi.IsParseError(err) {
		t.Errorf("ProbeHost() error = %v, want parse error", err)
	}
}

func TestProbeHost_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	host, portStr, _ := net.SplitHostPort(strings.TrimPrefix(server.URL, "http://"))
	port, _ := strconv.Atoi(portStr)
	server.Close()

	_, err := ProbeHost(host, port, 200*time.Millisecond)
	if !fsapi.IsConnectivityError(err) {
		t.Errorf("ProbeHost() error = %v, want connectivity error", err)
	}
}

func TestScannerProbe_DropsNonDevices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	host, portStr, _ := net.SplitHostPort(strings.TrimPrefix(server.URL, "http://"))
	port, _ := strconv.Atoi(portStr)

	scanner := NewScanner()
	candidate := &Device{IP: host, Port: port, DiscoveredAt: time.Now()}

	if device := scanner.probe(candidate); device != nil {
		t.Errorf("probe() = %+v, want nil for non-device", device)
	}
}

func TestScannerProbe_AcceptsDevices(t *testing.T) {
	_, host, port := newDescriptionServer(t)

	scanner := NewScanner()
	candidate := &Device{IP: host, Port: port, DiscoveredAt: time.Now()}

	device := scanner.probe(candidate)
	if device == nil {
		t.Fatal("probe() = nil, want device")
	}
	if device.Name != "Attic Radio" {
		t.Errorf("Name = %q", device.Name)
	}
}

func TestNewScanner_Defaults(t *testing.T) {
	scanner := NewScanner()

	if scanner.Timeout != DefaultScanTimeout {
		t.Errorf("Timeout = %v, want %v", scanner.Timeout, DefaultScanTimeout)
	}
	if scanner.ProbeTimeout != DefaultProbeTimeout {
		t.Errorf("ProbeTimeout = %v, want %v", scanner.ProbeTimeout, DefaultProbeTimeout)
	}
}
