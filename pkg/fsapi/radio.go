package fsapi

// PlayState is the device's reported playback state
type PlayState int

const (
	// StateStopped means nothing is queued for playback
	StateStopped PlayState = 0
	// StateUnknown is reported during transitions (e.g. buffering)
	StateUnknown PlayState = 1
	// StatePlaying means audio is playing
	StatePlaying PlayState = 2
	// StatePaused means playback is paused
	StatePaused PlayState = 3
)

// String returns a human-readable playback state name
func (s PlayState) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// Play control codes for the netRemote.play.control node
const (
	controlPlay     = 1
	controlPause    = 2
	controlNext     = 3
	controlPrevious = 4
)

// Mode is one entry of the device's operating mode list (e.g. "Internet
// radio", "Spotify", "AUX in")
type Mode struct {
	// ID is the mode's numeric key
	ID int

	// Label is the user-visible mode name
	Label string
}

// Preset is one station preset from the device's navigation preset list
type Preset struct {
	// ID is the preset's numeric key
	ID int

	// Name is the user-visible preset name (empty for unused slots)
	Name string
}

// EQPreset is one equalizer preset option
type EQPreset struct {
	// ID is the preset's numeric key
	ID int

	// Label is the user-visible preset name (e.g. "Normal", "Rock")
	Label string
}

// NowPlaying bundles the playback metadata nodes into one snapshot.
// Fields the device does not populate for the current source are empty.
type NowPlaying struct {
	Name     string // Station or track name
	Text     string // Scrolling info text (often "artist - title")
	Artist   string
	Album    string
	Graphics string // Artwork URI
}

// Radio exposes typed accessors for the well-known device properties.
// Each accessor is a thin call into the client's generic node operations;
// getters absorb "not supported" answers into zero values, so optional
// metadata reads never fail on devices that omit them.
type Radio struct {
	Client *Client
}

// NewRadio creates the typed accessor surface over a client
func NewRadio(c *Client) *Radio {
	return &Radio{Client: c}
}

// Power reads the device power state
func (r *Radio) Power() (bool, error) {
	on, _, err := r.Client.GetBool(PropPower.Node())
	return on, err
}

// SetPower switches the device on or off
func (r *Radio) SetPower(on bool) (bool, error) {
	return r.Client.SetBool(PropPower.Node(), on)
}

// FriendlyName reads the device's user-visible name
func (r *Radio) FriendlyName() (string, error) {
	name, _, err := r.Client.GetText(PropFriendlyName.Node())
	return name, err
}

// SetFriendlyName renames the device
func (r *Radio) SetFriendlyName(name string) (bool, error) {
	return r.Client.Set(PropFriendlyName.Node(), name)
}

// Volume reads the current volume step
func (r *Radio) Volume() (int, error) {
	v, _, err := r.Client.GetInt(PropVolume.Node())
	return v, err
}

// SetVolume sets the volume step. The device rejects values above its
// maximum, which surfaces as a false result, not an error.
func (r *Radio) SetVolume(volume int) (bool, error) {
	return r.Client.SetInt(PropVolume.Node(), volume)
}

// VolumeSteps reads the number of volume steps the device supports
func (r *Radio) VolumeSteps() (int, error) {
	v, _, err := r.Client.GetInt(PropVolumeSteps.Node())
	return v, err
}

// Mute reads the mute state
func (r *Radio) Mute() (bool, error) {
	muted, _, err := r.Client.GetBool(PropMute.Node())
	return muted, err
}

// SetMute sets the mute state
func (r *Radio) SetMute(muted bool) (bool, error) {
	return r.Client.SetBool(PropMute.Node(), muted)
}

// PlayStatus reads the playback state
func (r *Radio) PlayStatus() (PlayState, error) {
	status, ok, err := r.Client.GetInt(PropPlayStatus.Node())
	if err != nil || !ok {
		return StateUnknown, err
	}
	return PlayState(status), nil
}

// PlayInfoName reads the current station or track name
func (r *Radio) PlayInfoName() (string, error) {
	name, _, err := r.Client.GetText(PropPlayInfoName.Node())
	return name, err
}

// PlayInfoText reads the scrolling info text
func (r *Radio) PlayInfoText() (string, error) {
	text, _, err := r.Client.GetText(PropPlayInfoText.Node())
	return text, err
}

// PlayInfoArtist reads the current artist
func (r *Radio) PlayInfoArtist() (string, error) {
	artist, _, err := r.Client.GetText(PropPlayInfoArtist.Node())
	return artist, err
}

// PlayInfoAlbum reads the current album
func (r *Radio) PlayInfoAlbum() (string, error) {
	album, _, err := r.Client.GetText(PropPlayInfoAlbum.Node())
	return album, err
}

// PlayInfoGraphics reads the current artwork URI
func (r *Radio) PlayInfoGraphics() (string, error) {
	uri, _, err := r.Client.GetText(PropPlayInfoGraphics.Node())
	return uri, err
}

// NowPlaying reads all playback metadata nodes into one snapshot. Nodes the
// device omits stay empty; only hard failures are errors.
func (r *Radio) NowPlaying() (*NowPlaying, error) {
	np := &NowPlaying{}
	reads := []struct {
		node string
		dest *string
	}{
		{PropPlayInfoName.Node(), &np.Name},
		{PropPlayInfoText.Node(), &np.Text},
		{PropPlayInfoArtist.Node(), &np.Artist},
		{PropPlayInfoAlbum.Node(), &np.Album},
		{PropPlayInfoGraphics.Node(), &np.Graphics},
	}
	for _, read := range reads {
		text, _, err := r.Client.GetText(read.node)
		if err != nil {
			return nil, err
		}
		*read.dest = text
	}
	return np, nil
}

// playControl sends a transport control code
func (r *Radio) playControl(code int) (bool, error) {
	return r.Client.SetInt(PropPlayControl.Node(), code)
}

// Play starts or resumes playback
func (r *Radio) Play() (bool, error) { return r.playControl(controlPlay) }

// Pause pauses playback
func (r *Radio) Pause() (bool, error) { return r.playControl(controlPause) }

// Next skips to the next track or station
func (r *Radio) Next() (bool, error) { return r.playControl(controlNext) }

// Previous skips to the previous track or station
func (r *Radio) Previous() (bool, error) { return r.playControl(controlPrevious) }

// Position reads the playback position in milliseconds
func (r *Radio) Position() (int, error) {
	pos, _, err := r.Client.GetLong(PropPosition.Node())
	return pos, err
}

// SetPosition seeks to a playback position in milliseconds
func (r *Radio) SetPosition(position int) (bool, error) {
	return r.Client.SetInt(PropPosition.Node(), position)
}

// Duration reads the current track duration in milliseconds
func (r *Radio) Duration() (int, error) {
	d, _, err := r.Client.GetLong(PropDuration.Node())
	return d, err
}

// NavState reads the navigation state. Navigation resets to disabled
// whenever the device changes mode.
func (r *Radio) NavState() (bool, error) {
	enabled, _, err := r.Client.GetBool(PropNavState.Node())
	return enabled, err
}

// SetNavState enables or disables navigation
func (r *Radio) SetNavState(enabled bool) (bool, error) {
	return r.Client.SetBool(PropNavState.Node(), enabled)
}

// Modes lists the device's operating modes
func (r *Radio) Modes() ([]Mode, error) {
	items, err := r.Client.GetList(PropModes.Node())
	if err != nil {
		return nil, err
	}
	modes := make([]Mode, 0, len(items))
	for _, item := range items {
		modes = append(modes, Mode{ID: item.Key, Label: item.Text("label")})
	}
	return modes, nil
}

// Mode reads the current operating mode and resolves it to its label.
// Returns "" when the device reports a mode absent from its own mode list.
func (r *Radio) Mode() (string, error) {
	current, ok, err := r.Client.GetLong(PropMode.Node())
	if err != nil || !ok {
		return "", err
	}
	modes, err := r.Modes()
	if err != nil {
		return "", err
	}
	for _, mode := range modes {
		if mode.ID == current {
			return mode.Label, nil
		}
	}
	return "", nil
}

// SetMode switches the device to the mode with the given label
func (r *Radio) SetMode(label string) (bool, error) {
	modes, err := r.Modes()
	if err != nil {
		return false, err
	}
	for _, mode := range modes {
		if mode.Label == label {
			return r.Client.SetInt(PropMode.Node(), mode.ID)
		}
	}
	return false, newValidationError("unknown mode: " + label)
}

// Presets lists the device's station presets. Unused slots come back with
// empty names.
func (r *Radio) Presets() ([]Preset, error) {
	items, err := r.Client.GetList(PropPresets.Node())
	if err != nil {
		return nil, err
	}
	presets := make([]Preset, 0, len(items))
	for _, item := range items {
		presets = append(presets, Preset{ID: item.Key, Name: item.Text("name")})
	}
	return presets, nil
}

// SelectPreset tunes the device to the preset with the given name.
// Navigation must be enabled for the device to accept the selection.
func (r *Radio) SelectPreset(name string) (bool, error) {
	presets, err := r.Presets()
	if err != nil {
		return false, err
	}
	for _, preset := range presets {
		if preset.Name == name {
			return r.Client.SetInt(PropSelectPreset.Node(), preset.ID)
		}
	}
	return false, newValidationError("unknown preset: " + name)
}

// EQPresets lists the device's equalizer presets
func (r *Radio) EQPresets() ([]EQPreset, error) {
	items, err := r.Client.GetList(PropEQPresets.Node())
	if err != nil {
		return nil, err
	}
	presets := make([]EQPreset, 0, len(items))
	for _, item := range items {
		presets = append(presets, EQPreset{ID: item.Key, Label: item.Text("label")})
	}
	return presets, nil
}

// EQPreset reads the current equalizer preset and resolves it to its label
func (r *Radio) EQPreset() (string, error) {
	current, ok, err := r.Client.GetInt(PropEQPreset.Node())
	if err != nil || !ok {
		return "", err
	}
	presets, err := r.EQPresets()
	if err != nil {
		return "", err
	}
	for _, preset := range presets {
		if preset.ID == current {
			return preset.Label, nil
		}
	}
	return "", nil
}

// SetEQPreset switches the equalizer to the preset with the given label
func (r *Radio) SetEQPreset(label string) (bool, error) {
	presets, err := r.EQPresets()
	if err != nil {
		return false, err
	}
	for _, preset := range presets {
		if preset.Label == label {
			return r.Client.SetInt(PropEQPreset.Node(), preset.ID)
		}
	}
	return false, newValidationError("unknown equalizer preset: " + label)
}
