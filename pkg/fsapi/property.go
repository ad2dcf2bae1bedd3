package fsapi

import (
	"sort"
	"strconv"
)

// Access describes whether a property can be read, written or both
type Access int

const (
	// ReadOnly properties reject writes
	ReadOnly Access = iota
	// ReadWrite properties accept reads and writes
	ReadWrite
	// WriteOnly properties are actions with no readable state
	WriteOnly
)

func (a Access) String() string {
	switch a {
	case ReadOnly:
		return "read-only"
	case ReadWrite:
		return "read-write"
	case WriteOnly:
		return "write-only"
	default:
		return "unknown"
	}
}

// Property identifies one device attribute by its friendly name. The set of
// properties is fixed: each maps statically to an fsapi node path, an
// expected value kind and an access mode. There is no per-property logic
// beyond this table.
type Property string

const (
	PropFriendlyName     Property = "friendly_name"
	PropPower            Property = "power"
	PropMute             Property = "mute"
	PropVolume           Property = "volume"
	PropVolumeSteps      Property = "volume_steps"
	PropMode             Property = "mode"
	PropModes            Property = "modes"
	PropPlayStatus       Property = "play_status"
	PropPlayControl      Property = "play_control"
	PropPlayInfoName     Property = "play_info_name"
	PropPlayInfoText     Property = "play_info_text"
	PropPlayInfoArtist   Property = "play_info_artist"
	PropPlayInfoAlbum    Property = "play_info_album"
	PropPlayInfoGraphics Property = "play_info_graphics"
	PropPosition         Property = "position"
	PropDuration         Property = "duration"
	PropNavState         Property = "nav_state"
	PropPresets          Property = "presets"
	PropSelectPreset     Property = "select_preset"
	PropEQPresets        Property = "eq_presets"
	PropEQPreset         Property = "eq_preset"
)

// propertySpec is one row of the property table
type propertySpec struct {
	Node   string
	Kind   Kind
	Access Access
}

var propertyTable = map[Property]propertySpec{
	PropFriendlyName:     {"netRemote.sys.info.friendlyName", KindText, ReadWrite},
	PropPower:            {"netRemote.sys.power", KindInt, ReadWrite},
	PropMute:             {"netRemote.sys.audio.mute", KindInt, ReadWrite},
	PropVolume:           {"netRemote.sys.audio.volume", KindInt, ReadWrite},
	PropVolumeSteps:      {"netRemote.sys.caps.volumeSteps", KindInt, ReadOnly},
	PropMode:             {"netRemote.sys.mode", KindLong, ReadWrite},
	PropModes:            {"netRemote.sys.caps.validModes", KindList, ReadOnly},
	PropPlayStatus:       {"netRemote.play.status", KindInt, ReadOnly},
	PropPlayControl:      {"netRemote.play.control", KindInt, WriteOnly},
	PropPlayInfoName:     {"netRemote.play.info.name", KindText, ReadOnly},
	PropPlayInfoText:     {"netRemote.play.info.text", KindText, ReadOnly},
	PropPlayInfoArtist:   {"netRemote.play.info.artist", KindText, ReadOnly},
	PropPlayInfoAlbum:    {"netRemote.play.info.album", KindText, ReadOnly},
	PropPlayInfoGraphics: {"netRemote.play.info.graphicUri", KindText, ReadOnly},
	PropPosition:         {"netRemote.play.position", KindLong, ReadWrite},
	PropDuration:         {"netRemote.play.info.duration", KindLong, ReadOnly},
	PropNavState:         {"netRemote.nav.state", KindInt, ReadWrite},
	PropPresets:          {"netRemote.nav.presets", KindList, ReadOnly},
	PropSelectPreset:     {"netRemote.nav.action.selectPreset", KindLong, WriteOnly},
	PropEQPresets:        {"netRemote.sys.caps.eqPresets", KindList, ReadOnly},
	PropEQPreset:         {"netRemote.sys.audio.eqPreset", KindInt, ReadWrite},
}

// Node returns the fsapi node path the property maps to
func (p Property) Node() string {
	return propertyTable[p].Node
}

// Kind returns the property's expected value kind
func (p Property) Kind() Kind {
	return propertyTable[p].Kind
}

// Access returns the property's access mode
func (p Property) Access() Access {
	return propertyTable[p].Access
}

// Valid reports whether the property is a known table entry
func (p Property) Valid() bool {
	_, ok := propertyTable[p]
	return ok
}

// LookupProperty resolves a friendly name to a known Property
func LookupProperty(name string) (Property, bool) {
	p := Property(name)
	return p, p.Valid()
}

// Properties returns all known properties sorted by name
func Properties() []Property {
	props := make([]Property, 0, len(propertyTable))
	for p := range propertyTable {
		props = append(props, p)
	}
	sort.Slice(props, func(i, j int) bool { return props[i] < props[j] })
	return props
}

// GetProperty reads a property through the generic node operations. The
// second return value is false for unsupported properties, mirroring Get.
func (c *Client) GetProperty(p Property) (Value, bool, error) {
	spec, ok := propertyTable[p]
	if !ok {
		return Value{}, false, newValidationError("unknown property: " + string(p))
	}
	if spec.Access == WriteOnly {
		return Value{}, false, newValidationError(string(p) + " is write-only")
	}

	if spec.Kind == KindList {
		items, err := c.GetList(spec.Node)
		if err != nil {
			return Value{}, false, err
		}
		return ListValue(items), true, nil
	}

	v, ok, err := c.Get(spec.Node)
	if err != nil || !ok {
		return Value{}, ok, err
	}
	if v.Kind() != spec.Kind {
		return Value{}, false, newParseError(
			"expected a "+spec.Kind.String()+" value, got "+v.Kind().String(), spec.Node, nil)
	}
	return v, true, nil
}

// SetProperty writes a property through the generic node operations. The
// value is validated against the property's kind before the request is
// built; numeric kinds require a decimal integer.
func (c *Client) SetProperty(p Property, value string) (bool, error) {
	spec, ok := propertyTable[p]
	if !ok {
		return false, newValidationError("unknown property: " + string(p))
	}
	if spec.Access == ReadOnly {
		return false, newValidationError(string(p) + " is read-only")
	}

	switch spec.Kind {
	case KindText:
		return c.Set(spec.Node, value)
	case KindInt, KindLong:
		n, err := strconv.Atoi(value)
		if err != nil {
			return false, newValidationError(string(p) + " requires an integer value")
		}
		return c.SetInt(spec.Node, n)
	default:
		return false, newValidationError(string(p) + " is not writable")
	}
}
