// Package tui implements the interactive remote control for Frontier
// Silicon internet radios.
//
// Built on the Bubble Tea framework, it follows the Elm architecture with
// immutable state updates and a Model-Update-View pattern. Two screens make
// up the application:
//
//   - Discovery: mDNS scan for radios, manual host entry, PIN prompt
//   - Dashboard: live status panel with remote-control key bindings
//
// Both screens render through a shared container (RenderApplicationContainer)
// that draws the bordered panel, header, and context-sensitive footer.
//
// # Framework Components
//
//   - bubbles/spinner: scan and connect indicators
//   - bubbles/textinput: host and PIN entry
//   - bubbles/progress: scan progress bar
//   - bubbles/list: discovered device cards with filtering
//   - bubbles/help: context-aware key binding footer
//   - lipgloss: styling and layout
//
// # Usage
//
//	registry, _ := config.LoadRegistry()
//	if err := tui.Run(registry, nil, ""); err != nil {
//	    log.Fatal(err)
//	}
//
// Passing a non-nil device skips discovery and opens the dashboard directly.
//
// # Key Bindings
//
//   - Discovery: ↑/↓ navigate, enter connect, r rescan, m manual host, q quit
//   - Dashboard: space play/pause, n/b next/previous, +/- volume, m mute,
//     p power, M next mode, r refresh, q back
//
// The dashboard polls the device every two seconds. Reads beyond the power
// state are best effort so a radio that lacks a node still renders.
package tui
