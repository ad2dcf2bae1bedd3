// Package discovery locates Frontier Silicon devices on the local network.
//
// Frontier Silicon radios advertise a plain "_http._tcp" mDNS service with
// no vendor-specific marker, so discovery works in two steps:
//  1. Browse mDNS for HTTP services within a scan window
//  2. Probe each responder's "/device" description URL; hosts answering
//     with a <netRemote> document are Frontier Silicon devices
//
// Candidates that fail the probe (printers, routers, NAS boxes) are dropped
// silently. Probes run concurrently while the scan window is open, so a
// full scan takes the scan timeout plus at most one probe timeout.
//
// # Usage Example
//
//	devices, err := discovery.DiscoverDevices(10 * time.Second)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, device := range devices {
//	    fmt.Printf("Found: %s at %s (API: %s)\n",
//	        device.Name, device.IP, device.APIURL)
//	}
//
// # Network Requirements
//
//   - Multicast support on the network interface
//   - Devices on the same local network segment
//   - Firewall allowing mDNS (UDP port 5353)
package discovery
