package fsapi

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Description is a device's self-description document, served outside the
// fsapi URL space (typically at "http://{ip}/device"). It is the only
// unauthenticated call a device answers and is how the fsapi base URL is
// learned.
type Description struct {
	// FriendlyName is the user-visible device name
	FriendlyName string

	// Version is the device firmware version string
	Version string

	// APIURL is the advertised fsapi base URL from the <webfsapi> element
	APIURL string
}

// FetchDescription retrieves and parses a device description document
func FetchDescription(deviceURL string, timeout time.Duration) (*Description, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	httpClient := &http.Client{Timeout: timeout}

	resp, err := httpClient.Get(deviceURL)
	if err != nil {
		return nil, newConnectivityError("device description request failed", "", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, newHTTPError(resp.StatusCode,
			fmt.Sprintf("unexpected status code: %d", resp.StatusCode), "")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newConnectivityError("failed to read device description", "", err)
	}

	return parseDescription(body)
}

// parseDescription decodes a <netRemote> description document
func parseDescription(body []byte) (*Description, error) {
	root, err := parseDocument(body, "")
	if err != nil {
		return nil, err
	}
	if root.XMLName.Local != "netRemote" {
		return nil, newParseError(
			"not a device description document (root <"+root.XMLName.Local+">)", "", nil)
	}

	webfsapi := root.child("webfsapi")
	if webfsapi == nil || strings.TrimSpace(webfsapi.Text) == "" {
		return nil, newParseError("description lacks a webfsapi element", "", nil)
	}

	desc := &Description{
		APIURL: strings.TrimSpace(webfsapi.Text),
	}
	if name := root.child("friendlyName"); name != nil {
		desc.FriendlyName = strings.TrimSpace(name.Text)
	}
	if version := root.child("version"); version != nil {
		desc.Version = strings.TrimSpace(version.Text)
	}
	return desc, nil
}
