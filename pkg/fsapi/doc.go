// Package fsapi provides an HTTP client for the Frontier Silicon device API.
//
// Frontier Silicon modules power network audio receivers from Medion, Hama,
// Auna, Roberts and others. The devices expose a local HTTP control API
// ("fsapi"): every read and write is a single GET request carrying a numeric
// PIN, answered with a small XML document. This package wraps that protocol
// behind typed accessors so callers never touch raw requests or XML.
//
// # Protocol
//
// Reads use GET/{node}, writes use SET/{node}?value=…, and enumerable nodes
// are paged with LIST_GET_NEXT/{node}/{key}?maxItems=…. Leaf values are
// tagged by element name: c8_array (text), u8 (small integer / boolean) and
// u32 (wide integer). List responses carry <item key="n"> elements with
// named field children. The device answers <status>FS_OK</status> for
// accepted calls; any other status means the call was rejected or the node
// is unsupported.
//
// Every call is stateless: the PIN rides on each request, no session is
// created, nothing is cached and no request is retried internally.
//
// # Usage Example
//
//	// Connect via the device description document
//	client, err := fsapi.Resolve("http://192.168.1.14/device", "1234", 2*time.Second)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	radio := fsapi.NewRadio(client)
//
//	name, _ := radio.FriendlyName()
//	state, _ := radio.PlayStatus()
//	fmt.Printf("%s is %s\n", name, state)
//
//	if ok, _ := radio.SetVolume(8); !ok {
//	    fmt.Println("device rejected the volume change")
//	}
//
// # Error Handling
//
// Hard failures (transport errors, malformed XML) are returned as
// *DeviceError values classified by category (timeout, connection refused,
// DNS, HTTP status, parse). Soft failures are not errors: a node the device
// does not support reads as a zero value, and a rejected write returns
// false. Helper predicates (IsConnectivityError, IsParseError, …) classify
// errors without unwrapping.
//
// # Thread Safety
//
// Client and Radio hold no mutable state beyond the connection tuple and
// are safe for concurrent use. Ordering between concurrent calls against
// the same device is undefined; that is the device's concern.
package fsapi
