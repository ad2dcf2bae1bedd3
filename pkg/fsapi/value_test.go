package fsapi

import (
	"strings"
	"testing"
)

func mustParse(t *testing.T, body string) *xmlNode {
	t.Helper()
	root, err := parseDocument([]byte(body), "test.node")
	if err != nil {
		t.Fatalf("parseDocument() error = %v", err)
	}
	return root
}

func TestDecodeValueNode_Text(t *testing.T) {
	root := mustParse(t, `<fsapi><status>FS_OK</status><value><c8_array>Kitchen Radio</c8_array></value></fsapi>`)

	v, ok, err := decodeValueNode(root, "test.node")
	if err != nil {
		t.Fatalf("decodeValueNode() error = %v", err)
	}
	if !ok {
		t.Fatal("decodeValueNode() ok = false, want true")
	}
	if v.Kind() != KindText {
		t.Errorf("Kind() = %v, want KindText", v.Kind())
	}
	if v.Text() != "Kitchen Radio" {
		t.Errorf("Text() = %q, want %q", v.Text(), "Kitchen Radio")
	}
}

func TestDecodeValueNode_Int(t *testing.T) {
	root := mustParse(t, `<fsapi><status>FS_OK</status><value><u8>1</u8></value></fsapi>`)

	v, ok, err := decodeValueNode(root, "test.node")
	if err != nil || !ok {
		t.Fatalf("decodeValueNode() = ok %v, error %v", ok, err)
	}
	if v.Kind() != KindInt {
		t.Errorf("Kind() = %v, want KindInt", v.Kind())
	}
	if !v.Bool() {
		t.Error("Bool() = false, want true")
	}
}

func TestDecodeValueNode_Long(t *testing.T) {
	root := mustParse(t, `<fsapi><status>FS_OK</status><value><u32>123456</u32></value></fsapi>`)

	v, ok, err := decodeValueNode(root, "test.node")
	if err != nil || !ok {
		t.Fatalf("decodeValueNode() = ok %v, error %v", ok, err)
	}
	if v.Kind() != KindLong {
		t.Errorf("Kind() = %v, want KindLong", v.Kind())
	}
	if v.Int() != 123456 {
		t.Errorf("Int() = %d, want 123456", v.Int())
	}
}

func TestDecodeValueNode_Empty(t *testing.T) {
	root := mustParse(t, `<fsapi><status>FS_OK</status><value></value></fsapi>`)

	_, ok, err := decodeValueNode(root, "test.node")
	if err != nil {
		t.Fatalf("decodeValueNode() error = %v", err)
	}
	if ok {
		t.Error("decodeValueNode() ok = true for empty value, want false")
	}
}

func TestDecodeValueNode_UnknownElement(t *testing.T) {
	root := mustParse(t, `<fsapi><status>FS_OK</status><value><s16>-4</s16></value></fsapi>`)

	_, _, err := decodeValueNode(root, "test.node")
	if !IsParseError(err) {
		t.Errorf("decodeValueNode() error = %v, want parse error", err)
	}
}

func TestDecodeItems_RootItems(t *testing.T) {
	// Real devices answer list pages with items directly under the root
	root := mustParse(t, `<fsapi>
		<status>FS_OK</status>
		<item key="0"><field name="label"><c8_array>Internet radio</c8_array></field></item>
		<item key="1"><field name="label"><c8_array>Spotify</c8_array></field></item>
		<listend/>
	</fsapi>`)

	items, err := decodeItems(root, "test.node")
	if err != nil {
		t.Fatalf("decodeItems() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	if items[0].Key != 0 || items[1].Key != 1 {
		t.Errorf("keys = %d, %d, want 0, 1", items[0].Key, items[1].Key)
	}
	if items[1].Text("label") != "Spotify" {
		t.Errorf("items[1] label = %q, want Spotify", items[1].Text("label"))
	}
	if !hasListEnd(root) {
		t.Error("hasListEnd() = false, want true")
	}
}

func TestDecodeItems_WrappedList(t *testing.T) {
	root := mustParse(t, `<fsapi>
		<status>FS_OK</status>
		<value><list>
			<item key="3">
				<field name="name"><c8_array>BBC Radio 4</c8_array></field>
				<field name="type"><u8>1</u8></field>
			</item>
		</list></value>
	</fsapi>`)

	items, err := decodeItems(root, "test.node")
	if err != nil {
		t.Fatalf("decodeItems() error = %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}

	item := items[0]
	if item.Key != 3 {
		t.Errorf("Key = %d, want 3", item.Key)
	}
	if len(item.Fields) != 2 {
		t.Errorf("len(Fields) = %d, want 2", len(item.Fields))
	}
	if item.Text("name") != "BBC Radio 4" {
		t.Errorf("name = %q, want BBC Radio 4", item.Text("name"))
	}
	if item.Int("type") != 1 {
		t.Errorf("type = %d, want 1", item.Int("type"))
	}
}

func TestDecodeItems_Empty(t *testing.T) {
	root := mustParse(t, `<fsapi><status>FS_OK</status><listend/></fsapi>`)

	items, err := decodeItems(root, "test.node")
	if err != nil {
		t.Fatalf("decodeItems() error = %v", err)
	}
	if items == nil {
		t.Fatal("decodeItems() = nil, want empty slice")
	}
	if len(items) != 0 {
		t.Errorf("len(items) = %d, want 0", len(items))
	}
}

func TestDecodeItems_FieldWithoutChildren(t *testing.T) {
	// A field with no element children is a bare text leaf keyed by its
	// name attribute, or by its tag when unnamed
	root := mustParse(t, `<fsapi>
		<status>FS_OK</status>
		<item key="0">
			<field name="label">DAB</field>
			<version>2.1</version>
		</item>
	</fsapi>`)

	items, err := decodeItems(root, "test.node")
	if err != nil {
		t.Fatalf("decodeItems() error = %v", err)
	}
	if items[0].Text("label") != "DAB" {
		t.Errorf("label = %q, want DAB", items[0].Text("label"))
	}
	if items[0].Text("version") != "2.1" {
		t.Errorf("version = %q, want 2.1", items[0].Text("version"))
	}
}

func TestDecodeItems_NestedList(t *testing.T) {
	root := mustParse(t, `<fsapi>
		<status>FS_OK</status>
		<item key="0">
			<field name="label"><c8_array>Favourites</c8_array></field>
			<field name="entries">
				<item key="0"><field name="name"><c8_array>WDR 2</c8_array></field></item>
				<item key="1"><field name="name"><c8_array>1LIVE</c8_array></field></item>
			</field>
		</item>
	</fsapi>`)

	items, err := decodeItems(root, "test.node")
	if err != nil {
		t.Fatalf("decodeItems() error = %v", err)
	}

	entries := items[0].Field("entries")
	if entries.Kind() != KindList {
		t.Fatalf("entries kind = %v, want KindList", entries.Kind())
	}
	nested := entries.List()
	if len(nested) != 2 {
		t.Fatalf("len(nested) = %d, want 2", len(nested))
	}
	if nested[1].Text("name") != "1LIVE" {
		t.Errorf("nested[1] name = %q, want 1LIVE", nested[1].Text("name"))
	}
}

func TestDecodeItems_DepthGuard(t *testing.T) {
	// Build a response nested deeper than the decoder supports
	var b strings.Builder
	b.WriteString(`<fsapi><status>FS_OK</status>`)
	for i := 0; i < maxListDepth+1; i++ {
		b.WriteString(`<item key="0"><field name="nested">`)
	}
	b.WriteString(`<c8_array>too deep</c8_array>`)
	for i := 0; i < maxListDepth+1; i++ {
		b.WriteString(`</field></item>`)
	}
	b.WriteString(`</fsapi>`)

	root := mustParse(t, b.String())

	_, err := decodeItems(root, "test.node")
	if !IsParseError(err) {
		t.Errorf("decodeItems() error = %v, want parse error for excessive nesting", err)
	}
}

func TestValue_ZeroOnKindMismatch(t *testing.T) {
	v := TextValue("hello")

	if v.Int() != 0 {
		t.Errorf("Int() on text value = %d, want 0", v.Int())
	}
	if v.Bool() {
		t.Error("Bool() on text value = true, want false")
	}
	if v.List() != nil {
		t.Error("List() on text value should be nil")
	}

	n := IntValue(7)
	if n.Text() != "" {
		t.Errorf("Text() on int value = %q, want empty", n.Text())
	}
}

func TestValue_Encode(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{TextValue("Kitchen"), "Kitchen"},
		{IntValue(12), "12"},
		{LongValue(123456), "123456"},
		{ListValue(nil), ""},
	}

	for _, tt := range tests {
		if got := tt.v.Encode(); got != tt.want {
			t.Errorf("Encode() = %q, want %q", got, tt.want)
		}
	}
}

func TestParseDocument_Invalid(t *testing.T) {
	_, err := parseDocument([]byte("this is not xml <"), "test.node")
	if !IsParseError(err) {
		t.Errorf("parseDocument() error = %v, want parse error", err)
	}
}
