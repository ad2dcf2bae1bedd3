package fsapi

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

// fakeRadioResponses is a canned node map resembling a powered-on internet
// radio tuned to a station
var fakeRadioResponses = map[string]string{
	"GET/netRemote.sys.power":             `<fsapi><status>FS_OK</status><value><u8>1</u8></value></fsapi>`,
	"GET/netRemote.sys.info.friendlyName": `<fsapi><status>FS_OK</status><value><c8_array>Kitchen Radio</c8_array></value></fsapi>`,
	"GET/netRemote.sys.audio.volume":      `<fsapi><status>FS_OK</status><value><u8>8</u8></value></fsapi>`,
	"GET/netRemote.sys.caps.volumeSteps":  `<fsapi><status>FS_OK</status><value><u8>21</u8></value></fsapi>`,
	"GET/netRemote.sys.audio.mute":        `<fsapi><status>FS_OK</status><value><u8>0</u8></value></fsapi>`,
	"GET/netRemote.play.status":           `<fsapi><status>FS_OK</status><value><u8>2</u8></value></fsapi>`,
	"GET/netRemote.play.info.name":        `<fsapi><status>FS_OK</status><value><c8_array>WDR 2</c8_array></value></fsapi>`,
	"GET/netRemote.play.info.text":        `<fsapi><status>FS_OK</status><value><c8_array>Now: the news</c8_array></value></fsapi>`,
	"GET/netRemote.play.info.artist":      `<fsapi><status>FS_NODE_DOES_NOT_EXIST</status></fsapi>`,
	"GET/netRemote.play.info.album":       `<fsapi><status>FS_NODE_DOES_NOT_EXIST</status></fsapi>`,
	"GET/netRemote.play.info.graphicUri":  `<fsapi><status>FS_OK</status><value><c8_array>http://example/logo.png</c8_array></value></fsapi>`,
	"GET/netRemote.play.info.duration":    `<fsapi><status>FS_OK</status><value><u32>0</u32></value></fsapi>`,
	"GET/netRemote.play.position":         `<fsapi><status>FS_OK</status><value><u32>152000</u32></value></fsapi>`,
	"GET/netRemote.sys.mode":              `<fsapi><status>FS_OK</status><value><u32>0</u32></value></fsapi>`,
	"GET/netRemote.sys.audio.eqPreset":    `<fsapi><status>FS_OK</status><value><u8>1</u8></value></fsapi>`,
	"LIST_GET_NEXT/netRemote.sys.caps.validModes/-1": `<fsapi><status>FS_OK</status>` +
		`<item key="0"><field name="label"><c8_array>Internet radio</c8_array></field></item>` +
		`<item key="1"><field name="label"><c8_array>Music player</c8_array></field></item>` +
		`<item key="2"><field name="label"><c8_array>AUX in</c8_array></field></item>` +
		`<listend/></fsapi>`,
	"LIST_GET_NEXT/netRemote.nav.presets/-1": `<fsapi><status>FS_OK</status>` +
		`<item key="0"><field name="name"><c8_array>WDR 2</c8_array></field></item>` +
		`<item key="1"><field name="name"><c8_array>1LIVE</c8_array></field></item>` +
		`<item key="2"><field name="name"><c8_array></c8_array></field></item>` +
		`<listend/></fsapi>`,
	"LIST_GET_NEXT/netRemote.sys.caps.eqPresets/-1": `<fsapi><status>FS_OK</status>` +
		`<item key="0"><field name="label"><c8_array>Normal</c8_array></field></item>` +
		`<item key="1"><field name="label"><c8_array>Jazz</c8_array></field></item>` +
		`<listend/></fsapi>`,
}

func newFakeRadio(t *testing.T) *Radio {
	t.Helper()
	server := newFakeDevice(t, fakeRadioResponses)
	return NewRadio(New(server.URL, testPIN, 0))
}

func TestRadio_Power(t *testing.T) {
	radio := newFakeRadio(t)

	on, err := radio.Power()
	if err != nil {
		t.Fatalf("Power() error = %v", err)
	}
	if !on {
		t.Error("Power() = false, want true for u8 value 1")
	}
}

func TestRadio_PlayStatus(t *testing.T) {
	radio := newFakeRadio(t)

	state, err := radio.PlayStatus()
	if err != nil {
		t.Fatalf("PlayStatus() error = %v", err)
	}
	if state != StatePlaying {
		t.Errorf("PlayStatus() = %v, want playing", state)
	}
	if state.String() != "playing" {
		t.Errorf("String() = %q, want playing", state.String())
	}
}

func TestRadio_PlayStatus_Unsupported(t *testing.T) {
	server := newFakeDevice(t, map[string]string{})
	radio := NewRadio(New(server.URL, testPIN, 0))

	state, err := radio.PlayStatus()
	if err != nil {
		t.Fatalf("PlayStatus() error = %v", err)
	}
	if state != StateUnknown {
		t.Errorf("PlayStatus() = %v, want unknown for missing node", state)
	}
}

func TestRadio_NowPlaying(t *testing.T) {
	radio := newFakeRadio(t)

	np, err := radio.NowPlaying()
	if err != nil {
		t.Fatalf("NowPlaying() error = %v", err)
	}
	if np.Name != "WDR 2" {
		t.Errorf("Name = %q, want WDR 2", np.Name)
	}
	if np.Text != "Now: the news" {
		t.Errorf("Text = %q", np.Text)
	}
	// Artist and album are unsupported on this device and must stay empty
	// without failing the whole snapshot
	if np.Artist != "" || np.Album != "" {
		t.Errorf("Artist/Album = %q/%q, want empty", np.Artist, np.Album)
	}
	if np.Graphics != "http://example/logo.png" {
		t.Errorf("Graphics = %q", np.Graphics)
	}
}

func TestRadio_Modes(t *testing.T) {
	radio := newFakeRadio(t)

	modes, err := radio.Modes()
	if err != nil {
		t.Fatalf("Modes() error = %v", err)
	}
	if len(modes) != 3 {
		t.Fatalf("len(modes) = %d, want 3", len(modes))
	}
	if modes[2].ID != 2 || modes[2].Label != "AUX in" {
		t.Errorf("modes[2] = %+v", modes[2])
	}
}

func TestRadio_Mode_ResolvesLabel(t *testing.T) {
	radio := newFakeRadio(t)

	label, err := radio.Mode()
	if err != nil {
		t.Fatalf("Mode() error = %v", err)
	}
	if label != "Internet radio" {
		t.Errorf("Mode() = %q, want Internet radio", label)
	}
}

func TestRadio_SetMode(t *testing.T) {
	var setValue string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/SET/netRemote.sys.mode" {
			setValue = r.URL.Query().Get("value")
			_, _ = w.Write([]byte(`<fsapi><status>FS_OK</status></fsapi>`))
			return
		}
		if body, ok := fakeRadioResponses[r.URL.Path[1:]]; ok {
			_, _ = w.Write([]byte(body))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	radio := NewRadio(New(server.URL, testPIN, 0))

	ok, err := radio.SetMode("AUX in")
	if err != nil {
		t.Fatalf("SetMode() error = %v", err)
	}
	if !ok {
		t.Error("SetMode() = false, want true")
	}
	if setValue != "2" {
		t.Errorf("mode value = %q, want 2", setValue)
	}
}

func TestRadio_SetMode_UnknownLabel(t *testing.T) {
	radio := newFakeRadio(t)

	_, err := radio.SetMode("Gramophone")
	if !IsValidationError(err) {
		t.Errorf("SetMode() error = %v, want validation error", err)
	}
}

func TestRadio_Presets(t *testing.T) {
	radio := newFakeRadio(t)

	presets, err := radio.Presets()
	if err != nil {
		t.Fatalf("Presets() error = %v", err)
	}
	if len(presets) != 3 {
		t.Fatalf("len(presets) = %d, want 3", len(presets))
	}
	// Preset slot 2 is unused; an empty name is still a valid slot
	if presets[2].Name != "" {
		t.Errorf("presets[2].Name = %q, want empty", presets[2].Name)
	}
}

func TestRadio_SelectPreset(t *testing.T) {
	var selected string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/SET/netRemote.nav.action.selectPreset" {
			selected = r.URL.Query().Get("value")
			_, _ = w.Write([]byte(`<fsapi><status>FS_OK</status></fsapi>`))
			return
		}
		if body, ok := fakeRadioResponses[r.URL.Path[1:]]; ok {
			_, _ = w.Write([]byte(body))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	radio := NewRadio(New(server.URL, testPIN, 0))

	ok, err := radio.SelectPreset("1LIVE")
	if err != nil {
		t.Fatalf("SelectPreset() error = %v", err)
	}
	if !ok {
		t.Error("SelectPreset() = false, want true")
	}
	if selected != "1" {
		t.Errorf("preset value = %q, want 1", selected)
	}
}

func TestRadio_EQPreset_ResolvesLabel(t *testing.T) {
	radio := newFakeRadio(t)

	label, err := radio.EQPreset()
	if err != nil {
		t.Fatalf("EQPreset() error = %v", err)
	}
	if label != "Jazz" {
		t.Errorf("EQPreset() = %q, want Jazz", label)
	}
}

func TestRadio_PlayControls(t *testing.T) {
	var controls []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/SET/netRemote.play.control" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		controls = append(controls, r.URL.Query().Get("value"))
		_, _ = w.Write([]byte(`<fsapi><status>FS_OK</status></fsapi>`))
	}))
	t.Cleanup(server.Close)

	radio := NewRadio(New(server.URL, testPIN, 0))

	calls := []func() (bool, error){radio.Play, radio.Pause, radio.Next, radio.Previous}
	for _, call := range calls {
		if ok, err := call(); err != nil || !ok {
			t.Fatalf("play control = %v, error %v", ok, err)
		}
	}

	want := []string{"1", "2", "3", "4"}
	if len(controls) != len(want) {
		t.Fatalf("controls = %v", controls)
	}
	for i := range want {
		if controls[i] != want[i] {
			t.Errorf("controls[%d] = %q, want %q", i, controls[i], want[i])
		}
	}
}

func TestRadio_SetVolume_Rejected(t *testing.T) {
	server := newFakeDevice(t, map[string]string{
		"SET/netRemote.sys.audio.volume": `<fsapi><status>FS_FAIL</status></fsapi>`,
	})
	radio := NewRadio(New(server.URL, testPIN, 0))

	ok, err := radio.SetVolume(99)
	if err != nil {
		t.Fatalf("SetVolume() error = %v, rejection is not an error", err)
	}
	if ok {
		t.Error("SetVolume() = true, want false for rejected value")
	}
}

func TestRadio_VolumeRoundTrip(t *testing.T) {
	// Reading a writable property, re-encoding it and writing it back
	// must round-trip to an accepted command
	var wroteBack string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/GET/netRemote.sys.audio.volume":
			_, _ = w.Write([]byte(`<fsapi><status>FS_OK</status><value><u8>8</u8></value></fsapi>`))
		case "/SET/netRemote.sys.audio.volume":
			wroteBack = r.URL.Query().Get("value")
			_, _ = w.Write([]byte(`<fsapi><status>FS_OK</status></fsapi>`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)

	client := New(server.URL, testPIN, 0)

	v, ok, err := client.GetProperty(PropVolume)
	if err != nil || !ok {
		t.Fatalf("GetProperty() = ok %v, error %v", ok, err)
	}

	accepted, err := client.SetProperty(PropVolume, v.Encode())
	if err != nil {
		t.Fatalf("SetProperty() error = %v", err)
	}
	if !accepted {
		t.Error("round-trip write rejected")
	}
	if wroteBack != "8" {
		t.Errorf("wrote back %q, want 8", wroteBack)
	}
}

func TestRadio_Position(t *testing.T) {
	radio := newFakeRadio(t)

	pos, err := radio.Position()
	if err != nil {
		t.Fatalf("Position() error = %v", err)
	}
	if pos != 152000 {
		t.Errorf("Position() = %d, want 152000", pos)
	}
}

// Guard against fake handlers forgetting URL decoding: a friendly name with
// spaces must survive the query encoding round trip
func TestRadio_SetFriendlyName_Encoding(t *testing.T) {
	var raw, decoded string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw = r.URL.RawQuery
		decoded = r.URL.Query().Get("value")
		_, _ = w.Write([]byte(`<fsapi><status>FS_OK</status></fsapi>`))
	}))
	t.Cleanup(server.Close)

	radio := NewRadio(New(server.URL, testPIN, 0))
	if _, err := radio.SetFriendlyName("Living Room Radio"); err != nil {
		t.Fatalf("SetFriendlyName() error = %v", err)
	}
	if decoded != "Living Room Radio" {
		t.Errorf("decoded value = %q", decoded)
	}
	if _, err := url.ParseQuery(raw); err != nil {
		t.Errorf("raw query %q does not parse: %v", raw, err)
	}
}
