package fsapi

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	// StatusOK is the status string a device answers for an accepted call.
	// Every other status ("FS_NODE_DOES_NOT_EXIST", "FS_NODE_BLOCKED", …)
	// signals a rejected or unsupported call; the vocabulary is an open
	// set and is never enumerated here.
	StatusOK = "FS_OK"

	// DefaultTimeout is the default HTTP request timeout. Frontier Silicon
	// devices sit on the local network and answer within milliseconds.
	DefaultTimeout = 1 * time.Second

	// DefaultMaxItems is the default page size for enumerable node reads
	DefaultMaxItems = 100
)

// Client is a stateless client for one Frontier Silicon device. Every call
// issues exactly one HTTP GET carrying the device PIN; no session is
// established, nothing is cached and no request is ever retried internally.
//
// A Client is safe for concurrent use: it holds no mutable state beyond the
// connection tuple, and the underlying http.Client is safe for concurrent
// requests. Ordering between concurrent calls is the device's concern.
type Client struct {
	// APIURL is the device's fsapi base URL (e.g. "http://192.168.1.14:80/fsapi")
	APIURL string

	// PIN is the numeric access PIN carried on every request (device
	// default is usually "1234")
	PIN string

	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client

	// MaxItems is the page size used when reading enumerable nodes
	MaxItems int
}

// New creates a client for a device whose fsapi base URL is already known
func New(apiURL, pin string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		APIURL:     strings.TrimRight(apiURL, "/"),
		PIN:        pin,
		HTTPClient: &http.Client{Timeout: timeout},
		MaxItems:   DefaultMaxItems,
	}
}

// Resolve fetches a device's description document and creates a client for
// the fsapi base URL it advertises. deviceURL is the description URL,
// typically "http://{ip}/device".
func Resolve(deviceURL, pin string, timeout time.Duration) (*Client, error) {
	desc, err := FetchDescription(deviceURL, timeout)
	if err != nil {
		return nil, err
	}
	return New(desc.APIURL, pin, timeout), nil
}

// SetTimeout sets the HTTP request timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// call performs a single fsapi GET request and parses the response body.
// Exactly one HTTP request is issued; transport and parse failures are
// returned as typed errors, and a 404 answer (node unknown to the device)
// is returned as a nil document with no error.
func (c *Client) call(path, node string, params url.Values) (*xmlNode, error) {
	if params == nil {
		params = url.Values{}
	}
	params.Set("pin", c.PIN)

	requestURL := c.APIURL + "/" + path + "?" + params.Encode()
	resp, err := c.HTTPClient.Get(requestURL)
	if err != nil {
		return nil, newConnectivityError("request failed", node, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, newHTTPError(resp.StatusCode,
			fmt.Sprintf("unexpected status code: %d", resp.StatusCode), node)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newConnectivityError("failed to read response body", node, err)
	}

	return parseDocument(body, node)
}

// Get reads a scalar node. The second return value is false when the device
// does not support the node (missing node, non-OK status or empty value);
// this is an expected outcome for optional properties, not an error.
//
// Some firmwares omit the <status> element on reads and answer with the
// bare value; a read is only treated as unsupported when a status is
// present and not FS_OK, or when the value itself is missing.
func (c *Client) Get(node string) (Value, bool, error) {
	doc, err := c.call("GET/"+node, node, nil)
	if err != nil {
		return Value{}, false, err
	}
	if doc == nil {
		return Value{}, false, nil
	}
	if status := documentStatus(doc); status != "" && status != StatusOK {
		return Value{}, false, nil
	}
	return decodeValueNode(doc, node)
}

// GetText reads a c8_array node
func (c *Client) GetText(node string) (string, bool, error) {
	v, ok, err := c.Get(node)
	if err != nil || !ok {
		return "", ok, err
	}
	if v.Kind() != KindText {
		return "", false, newParseError("expected a c8_array value, got "+v.Kind().String(), node, nil)
	}
	return v.Text(), true, nil
}

// GetInt reads a u8 node (the device also uses u8 for booleans)
func (c *Client) GetInt(node string) (int, bool, error) {
	v, ok, err := c.Get(node)
	if err != nil || !ok {
		return 0, ok, err
	}
	if v.Kind() != KindInt {
		return 0, false, newParseError("expected a u8 value, got "+v.Kind().String(), node, nil)
	}
	return v.Int(), true, nil
}

// GetLong reads a u32 node
func (c *Client) GetLong(node string) (int, bool, error) {
	v, ok, err := c.Get(node)
	if err != nil || !ok {
		return 0, ok, err
	}
	if v.Kind() != KindLong {
		return 0, false, newParseError("expected a u32 value, got "+v.Kind().String(), node, nil)
	}
	return v.Int(), true, nil
}

// GetBool reads a u8 node and interprets it as a boolean
func (c *Client) GetBool(node string) (bool, bool, error) {
	n, ok, err := c.GetInt(node)
	return n != 0, ok, err
}

// GetList reads an enumerable node, following pagination until the device
// reports the end of the list. An unsupported node yields an empty slice.
func (c *Client) GetList(node string) ([]Item, error) {
	maxItems := c.MaxItems
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}

	items := make([]Item, 0)
	from := -1
	for {
		params := url.Values{}
		params.Set("maxItems", strconv.Itoa(maxItems))

		path := "LIST_GET_NEXT/" + node + "/" + strconv.Itoa(from)
		doc, err := c.call(path, node, params)
		if err != nil {
			return nil, err
		}
		if doc == nil || documentStatus(doc) != StatusOK {
			// Unsupported node, or the device rejected the page request;
			// whatever was collected so far is the list.
			return items, nil
		}

		page, err := decodeItems(doc, node)
		if err != nil {
			return nil, err
		}
		items = append(items, page...)

		if len(page) == 0 || len(page) < maxItems || hasListEnd(doc) {
			return items, nil
		}
		from = page[len(page)-1].Key
	}
}

// Set writes a value to a node. The boolean result reports whether the
// device accepted the write: a rejected command (non-OK status or unknown
// node) returns false with no error, since rejection is an expected
// outcome. Only transport and parse failures are errors.
func (c *Client) Set(node, value string) (bool, error) {
	params := url.Values{}
	params.Set("value", value)

	doc, err := c.call("SET/"+node, node, params)
	if err != nil {
		return false, err
	}
	if doc == nil {
		return false, nil
	}
	return documentStatus(doc) == StatusOK, nil
}

// SetInt writes an integer value to a node
func (c *Client) SetInt(node string, value int) (bool, error) {
	return c.Set(node, strconv.Itoa(value))
}

// SetBool writes a boolean value to a node as 0 or 1
func (c *Client) SetBool(node string, value bool) (bool, error) {
	n := 0
	if value {
		n = 1
	}
	return c.SetInt(node, n)
}

// Ping performs a cheap reachability check against the device.
// Returns nil if the device answered the request at the transport level,
// whether or not it accepted the PIN.
func (c *Client) Ping() error {
	_, _, err := c.Get("netRemote.sys.power")
	return err
}
