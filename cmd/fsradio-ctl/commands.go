package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sd-personal/fsradio/internal/config"
	"github.com/sd-personal/fsradio/internal/discovery"
	"github.com/sd-personal/fsradio/internal/logging"
	"github.com/sd-personal/fsradio/internal/ui"
	"github.com/sd-personal/fsradio/internal/wizard/tui"
	"github.com/sd-personal/fsradio/pkg/fsapi"
)

// Command flags
var (
	hostFlag    string
	pinFlag     string
	timeoutFlag int
	scanTimeout int
	logLevel    string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&hostFlag, "host", "", "Device IP address or hostname (skips discovery)")
	rootCmd.PersistentFlags().StringVar(&pinFlag, "pin", "", "Device access PIN (default from registry, factory default 1234)")
	rootCmd.PersistentFlags().IntVar(&timeoutFlag, "timeout", 0, "HTTP request timeout in milliseconds")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(remoteCmd)
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(eqCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(pauseCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(prevCmd)
	rootCmd.AddCommand(volumeCmd)
	rootCmd.AddCommand(powerCmd)
	rootCmd.AddCommand(presetCmd)
}

// requestTimeout returns the HTTP timeout from the --timeout flag
func requestTimeout() time.Duration {
	if timeoutFlag > 0 {
		return time.Duration(timeoutFlag) * time.Millisecond
	}
	return fsapi.DefaultTimeout
}

// resolveHost picks the target host from the --host flag, the registry
// default, or a network scan that finds exactly one radio.
func resolveHost(registry *config.Registry) (string, error) {
	if hostFlag != "" {
		return hostFlag, nil
	}

	if registry.Preferences != nil && registry.Preferences.DefaultDevice != "" {
		return registry.Preferences.DefaultDevice, nil
	}

	fmt.Println("No device specified, attempting auto-discovery...")
	devices, err := discovery.DiscoverDevices(5 * time.Second)
	if err != nil {
		return "", fmt.Errorf("discovery failed: %w", err)
	}

	if len(devices) == 0 {
		return "", fmt.Errorf("no radios found. Use --host to specify one manually")
	}

	if len(devices) > 1 {
		fmt.Printf("Found %d radios:\n", len(devices))
		for i, device := range devices {
			fmt.Printf("%d. %s (%s)\n", i+1, device.Name, device.IP)
		}
		return "", fmt.Errorf("multiple radios found. Use --host to specify which one")
	}

	device := devices[0]
	fmt.Printf("Found radio: %s (%s)\n\n", device.Name, device.IP)
	return device.IP, nil
}

// resolveRadio builds a Radio for the target device. The fsapi base URL is
// taken from the registry when the device was seen before, otherwise the
// description document is fetched and the resolved URL is remembered.
func resolveRadio() (*fsapi.Radio, string, error) {
	registry, err := config.LoadRegistry()
	if err != nil {
		return nil, "", fmt.Errorf("failed to load configuration: %w", err)
	}

	host, err := resolveHost(registry)
	if err != nil {
		return nil, "", err
	}

	pin := pinFlag
	if pin == "" {
		pin = registry.PINFor(host)
	}

	timeout := requestTimeout()

	if entry := registry.GetDevice(host); entry != nil && entry.APIURL != "" {
		return fsapi.NewRadio(fsapi.New(entry.APIURL, pin, timeout)), host, nil
	}

	deviceURL := fmt.Sprintf("http://%s/device", host)
	client, err := fsapi.Resolve(deviceURL, pin, timeout)
	if err != nil {
		return nil, "", fmt.Errorf("failed to contact %s: %w", host, err)
	}

	entry := registry.GetDevice(host)
	if entry == nil {
		entry = &config.Device{PIN: pin}
	}
	entry.APIURL = client.APIURL
	registry.RememberDevice(host, entry)
	_ = registry.Save()

	return fsapi.NewRadio(client), host, nil
}

// remoteCmd launches the interactive full-screen remote
var remoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "Launch the interactive remote",
	Long: `Launch an interactive full-screen remote control.

The remote provides:
- Network discovery of radios (mDNS)
- A live status panel with now-playing information
- Playback, volume, power, and source mode control

This is the default command when fsradio-ctl is run without arguments.`,
	Example: `  # Launch with auto-discovery
  fsradio-ctl remote
  # Or simply (remote is default):
  fsradio-ctl

  # Launch directly against a known radio
  fsradio-ctl remote --host 192.168.1.42
  fsradio-ctl --host 192.168.1.42 --pin 1234`,
	RunE: runRemote,
}

func runRemote(cmd *cobra.Command, args []string) error {
	registry, err := config.LoadRegistry()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	var device *discovery.Device
	pin := pinFlag

	if hostFlag != "" {
		if pin == "" {
			pin = registry.PINFor(hostFlag)
		}

		// Verify the radio answers before entering the alternate screen
		probed, err := discovery.ProbeHost(hostFlag, 80, requestTimeout())
		if err != nil {
			return fmt.Errorf("failed to contact radio at %s: %w", hostFlag, err)
		}
		device = probed
	}

	if err := tui.Run(registry, device, pin); err != nil {
		return fmt.Errorf("remote error: %w", err)
	}

	return nil
}

// discoverCmd scans the network for radios
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Scan for radios on the network",
	Long: `Scan for Frontier Silicon radios using mDNS/DNS-SD discovery.

Every mDNS responder is probed for the device description document, so only
hosts that actually speak the Frontier Silicon API are listed.`,
	Example: `  # Scan for 10 seconds (default)
  fsradio-ctl discover

  # Quick 3-second scan
  fsradio-ctl discover --scan-timeout 3`,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().IntVar(&scanTimeout, "scan-timeout", 10, "Scan timeout in seconds")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	fmt.Printf("Scanning for radios (timeout: %ds)...\n\n", scanTimeout)

	devices, err := discovery.DiscoverDevices(time.Duration(scanTimeout) * time.Second)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(devices) == 0 {
		fmt.Println("No radios found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Ensure the radio is powered on and connected to WiFi")
		fmt.Println("  - Some radios stop answering mDNS in standby")
		fmt.Println("  - Use --host to specify the address manually")
		return nil
	}

	rows := make([][]string, len(devices))
	for i, device := range devices {
		rows[i] = []string{device.Name, device.IP, strconv.Itoa(device.Port), device.Version}
	}
	fmt.Println(ui.RenderTable([]string{"Name", "IP", "Port", "Firmware"}, rows))

	fmt.Println("Use 'fsradio-ctl status --host <ip>' to view device status")
	fmt.Println("Use 'fsradio-ctl remote' for the interactive remote")

	return nil
}

// statusCmd shows a full device status summary
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show device status",
	Long: `Display the current status of a radio: power state, source mode,
volume, playback state and now-playing information.`,
	Example: `  # Status with auto-discovery
  fsradio-ctl status

  # Status of a specific radio
  fsradio-ctl status --host 192.168.1.42`,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	radio, host, err := resolveRadio()
	if err != nil {
		return err
	}

	name, err := radio.FriendlyName()
	if err != nil {
		return fmt.Errorf("failed to reach %s: %w", host, err)
	}
	if name == "" {
		name = host
	}

	fmt.Println(ui.RenderTitle(name, ui.GetTerminalWidth()))

	power, _ := radio.Power()
	powerText := "standby"
	if power {
		powerText = "on"
	}
	fmt.Println(ui.RenderStatusLine("Power", powerText))

	if mode, err := radio.Mode(); err == nil && mode != "" {
		fmt.Println(ui.RenderStatusLine("Mode", mode))
	}

	volume, _ := radio.Volume()
	muted, _ := radio.Mute()
	volumeText := strconv.Itoa(volume)
	if muted {
		volumeText += " (muted)"
	}
	fmt.Println(ui.RenderStatusLine("Volume", volumeText))

	state, _ := radio.PlayStatus()
	fmt.Println(ui.RenderStatusLine("State", state.String()))

	if np, err := radio.NowPlaying(); err == nil {
		if np.Name != "" {
			fmt.Println(ui.RenderStatusLine("Playing", np.Name))
		}
		if np.Text != "" {
			fmt.Println(ui.RenderStatusLine("Info", np.Text))
		}
		if np.Artist != "" {
			fmt.Println(ui.RenderStatusLine("Artist", np.Artist))
		}
		if np.Album != "" {
			fmt.Println(ui.RenderStatusLine("Album", np.Album))
		}
	}

	return nil
}

// getCmd reads a property or raw node
var getCmd = &cobra.Command{
	Use:   "get <property|node>",
	Short: "Read a device property",
	Long: `Read a named property or a raw fsapi node from the device.

Known property names are short aliases like "volume" or "power"; anything
starting with "netRemote." is treated as a raw node path. Use
'fsradio-ctl get list' to see all known property names.`,
	Example: `  # Read by property name
  fsradio-ctl get volume --host 192.168.1.42

  # Read a raw node
  fsradio-ctl get netRemote.sys.info.radioId --host 192.168.1.42

  # List known property names
  fsradio-ctl get list`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	name := args[0]

	if name == "list" {
		rows := [][]string{}
		for _, p := range fsapi.Properties() {
			rows = append(rows, []string{string(p), p.Node(), p.Kind().String(), p.Access().String()})
		}
		fmt.Println(ui.RenderTable([]string{"Property", "Node", "Type", "Access"}, rows))
		return nil
	}

	radio, host, err := resolveRadio()
	if err != nil {
		return err
	}

	if p, ok := fsapi.LookupProperty(name); ok {
		started := time.Now()
		value, supported, err := radio.Client.GetProperty(p)
		if err != nil {
			return err
		}
		logging.LogNodeRead(host, p.Node(), supported, time.Since(started))
		if !supported {
			fmt.Printf("%s %s is not supported by this device\n", ui.FailureMarker, name)
			return nil
		}
		printValue(string(p), value)
		return nil
	}

	if !strings.HasPrefix(name, "netRemote.") {
		return fmt.Errorf("unknown property %q (raw nodes must start with \"netRemote.\")", name)
	}

	started := time.Now()
	value, supported, err := radio.Client.Get(name)
	if err != nil {
		return err
	}
	logging.LogNodeRead(host, name, supported, time.Since(started))
	if !supported {
		fmt.Printf("%s %s is not supported by this device\n", ui.FailureMarker, name)
		return nil
	}
	printValue(name, value)
	return nil
}

// printValue renders a decoded node value for terminal output
func printValue(name string, value fsapi.Value) {
	if value.Kind() == fsapi.KindList {
		items := value.List()
		fmt.Printf("%s (%d items):\n", name, len(items))
		for _, item := range items {
			fields := make([]string, 0, len(item.Fields))
			for fieldName, fieldValue := range item.Fields {
				fields = append(fields, fmt.Sprintf("%s=%s", fieldName, fieldValue.Encode()))
			}
			fmt.Printf("  [%d] %s\n", item.Key, strings.Join(fields, " "))
		}
		return
	}
	fmt.Printf("%s = %s\n", name, value.Encode())
}

// setCmd writes a property or raw node
var setCmd = &cobra.Command{
	Use:   "set <property|node> <value>",
	Short: "Write a device property",
	Long: `Write a named property or a raw fsapi node on the device.

The device may refuse a write (wrong mode, value out of range); refusals are
reported but are not errors.`,
	Example: `  # Set by property name
  fsradio-ctl set volume 12 --host 192.168.1.42

  # Write a raw node
  fsradio-ctl set netRemote.sys.audio.mute 1 --host 192.168.1.42`,
	Args: cobra.ExactArgs(2),
	RunE: runSet,
}

func runSet(cmd *cobra.Command, args []string) error {
	name, value := args[0], args[1]

	radio, host, err := resolveRadio()
	if err != nil {
		return err
	}

	var accepted bool
	node := name
	if p, ok := fsapi.LookupProperty(name); ok {
		node = p.Node()
		accepted, err = radio.Client.SetProperty(p, value)
	} else if strings.HasPrefix(name, "netRemote.") {
		accepted, err = radio.Client.Set(name, value)
	} else {
		return fmt.Errorf("unknown property %q (raw nodes must start with \"netRemote.\")", name)
	}
	if err != nil {
		return err
	}
	logging.LogNodeWrite(host, node, value, accepted)

	if accepted {
		fmt.Printf("%s %s = %s\n", ui.SuccessMarker, name, value)
	} else {
		fmt.Printf("%s device refused to set %s\n", ui.FailureMarker, name)
	}
	return nil
}

// modesCmd lists the device's source modes
var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List source modes",
	Long:  `List the source modes the radio supports (Internet Radio, DAB, FM, AUX, ...).`,
	RunE:  runModes,
}

func runModes(cmd *cobra.Command, args []string) error {
	radio, _, err := resolveRadio()
	if err != nil {
		return err
	}

	modes, err := radio.Modes()
	if err != nil {
		return err
	}
	current, _ := radio.Mode()

	rows := make([][]string, len(modes))
	for i, mode := range modes {
		marker := ""
		if mode.Label == current && current != "" {
			marker = ui.SuccessMarker
		}
		rows[i] = []string{strconv.Itoa(mode.ID), mode.Label, marker}
	}
	fmt.Println(ui.RenderTable([]string{"ID", "Mode", "Active"}, rows))

	fmt.Println("Use 'fsradio-ctl set mode <id>' to switch modes")
	return nil
}

// presetsCmd lists the presets of the current mode
var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List presets",
	Long: `List the station presets of the radio's current source mode.

Empty preset slots are shown without a name.`,
	RunE: runPresets,
}

func runPresets(cmd *cobra.Command, args []string) error {
	radio, _, err := resolveRadio()
	if err != nil {
		return err
	}

	presets, err := radio.Presets()
	if err != nil {
		return err
	}

	if len(presets) == 0 {
		fmt.Println("No presets available in the current mode.")
		return nil
	}

	rows := make([][]string, len(presets))
	for i, preset := range presets {
		rows[i] = []string{strconv.Itoa(preset.ID), preset.Name}
	}
	fmt.Println(ui.RenderTable([]string{"Slot", "Name"}, rows))

	fmt.Println("Use 'fsradio-ctl preset <name>' to select a preset")
	return nil
}

// eqCmd lists equaliser presets
var eqCmd = &cobra.Command{
	Use:   "eq [label]",
	Short: "Show or set the equaliser preset",
	Long: `Without arguments, list the equaliser presets the radio offers and mark
the active one. With a label argument, switch to that preset.`,
	Example: `  # List equaliser presets
  fsradio-ctl eq

  # Switch to a preset
  fsradio-ctl eq Jazz --host 192.168.1.42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEQ,
}

func runEQ(cmd *cobra.Command, args []string) error {
	radio, _, err := resolveRadio()
	if err != nil {
		return err
	}

	if len(args) == 1 {
		accepted, err := radio.SetEQPreset(args[0])
		if err != nil {
			return err
		}
		if accepted {
			fmt.Printf("%s equaliser set to %s\n", ui.SuccessMarker, args[0])
		} else {
			fmt.Printf("%s device refused equaliser preset %s\n", ui.FailureMarker, args[0])
		}
		return nil
	}

	presets, err := radio.EQPresets()
	if err != nil {
		return err
	}
	current, _ := radio.EQPreset()

	rows := make([][]string, len(presets))
	for i, preset := range presets {
		marker := ""
		if preset.Label == current && current != "" {
			marker = ui.SuccessMarker
		}
		rows[i] = []string{strconv.Itoa(preset.ID), preset.Label, marker}
	}
	fmt.Println(ui.RenderTable([]string{"ID", "Preset", "Active"}, rows))

	return nil
}

// runControl runs one playback transport action and reports the result
func runControl(label string, action func(*fsapi.Radio) (bool, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		radio, _, err := resolveRadio()
		if err != nil {
			return err
		}

		accepted, err := action(radio)
		if err != nil {
			return err
		}

		if accepted {
			fmt.Printf("%s %s\n", ui.SuccessMarker, label)
		} else {
			fmt.Printf("%s device refused: %s\n", ui.FailureMarker, label)
		}
		return nil
	}
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start playback",
	RunE:  runControl("play", (*fsapi.Radio).Play),
}

var pauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause playback",
	RunE:  runControl("pause", (*fsapi.Radio).Pause),
}

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Skip to the next track or station",
	RunE:  runControl("next", (*fsapi.Radio).Next),
}

var prevCmd = &cobra.Command{
	Use:   "prev",
	Short: "Skip to the previous track or station",
	RunE:  runControl("previous", (*fsapi.Radio).Previous),
}

// volumeCmd shows or sets the volume
var volumeCmd = &cobra.Command{
	Use:   "volume [level]",
	Short: "Show or set the volume",
	Long: `Without arguments, print the current volume and the number of volume
steps the device supports. With a level argument, set the volume.`,
	Example: `  # Show volume
  fsradio-ctl volume

  # Set volume to 12
  fsradio-ctl volume 12 --host 192.168.1.42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVolume,
}

func runVolume(cmd *cobra.Command, args []string) error {
	radio, _, err := resolveRadio()
	if err != nil {
		return err
	}

	if len(args) == 1 {
		level, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid volume level %q", args[0])
		}

		accepted, err := radio.SetVolume(level)
		if err != nil {
			return err
		}
		if accepted {
			fmt.Printf("%s volume set to %d\n", ui.SuccessMarker, level)
		} else {
			fmt.Printf("%s device refused volume %d\n", ui.FailureMarker, level)
		}
		return nil
	}

	volume, err := radio.Volume()
	if err != nil {
		return err
	}
	steps, _ := radio.VolumeSteps()
	muted, _ := radio.Mute()

	if steps > 0 {
		fmt.Printf("Volume: %d / %d\n", volume, steps-1)
	} else {
		fmt.Printf("Volume: %d\n", volume)
	}
	if muted {
		fmt.Println("Muted: yes")
	}
	return nil
}

// powerCmd shows or sets the power state
var powerCmd = &cobra.Command{
	Use:   "power [on|off]",
	Short: "Show or set the power state",
	Long: `Without arguments, print the current power state. With "on" or "off",
switch the radio on or into standby.`,
	Example: `  # Show power state
  fsradio-ctl power

  # Switch the radio on
  fsradio-ctl power on --host 192.168.1.42

  # Put the radio into standby
  fsradio-ctl power off --host 192.168.1.42`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE:      runPower,
}

func runPower(cmd *cobra.Command, args []string) error {
	radio, _, err := resolveRadio()
	if err != nil {
		return err
	}

	if len(args) == 1 {
		var on bool
		switch args[0] {
		case "on":
			on = true
		case "off":
			on = false
		default:
			return fmt.Errorf("invalid power state %q (use on or off)", args[0])
		}

		accepted, err := radio.SetPower(on)
		if err != nil {
			return err
		}
		if accepted {
			fmt.Printf("%s power %s\n", ui.SuccessMarker, args[0])
		} else {
			fmt.Printf("%s device refused power %s\n", ui.FailureMarker, args[0])
		}
		return nil
	}

	power, err := radio.Power()
	if err != nil {
		return err
	}
	if power {
		fmt.Println("Power: on")
	} else {
		fmt.Println("Power: standby")
	}
	return nil
}

// presetCmd selects a preset by name
var presetCmd = &cobra.Command{
	Use:   "preset <name>",
	Short: "Select a preset by name",
	Long: `Select a station preset of the current source mode by its name.

Use 'fsradio-ctl presets' to list the available presets first.`,
	Example: `  fsradio-ctl preset "BBC Radio 4" --host 192.168.1.42`,
	Args:    cobra.ExactArgs(1),
	RunE:    runPreset,
}

func runPreset(cmd *cobra.Command, args []string) error {
	radio, _, err := resolveRadio()
	if err != nil {
		return err
	}

	accepted, err := radio.SelectPreset(args[0])
	if err != nil {
		return err
	}

	if accepted {
		fmt.Printf("%s selected preset %s\n", ui.SuccessMarker, args[0])
	} else {
		fmt.Printf("%s device refused preset %s\n", ui.FailureMarker, args[0])
	}
	return nil
}
