package fsapi

import (
	"encoding/xml"
	"strconv"
	"strings"
)

// Kind identifies the shape of a value carried in an fsapi response.
// The device tags leaf values by XML element name: c8_array for text,
// u8 for small integers and booleans, u32 for wide integers. Enumerable
// nodes answer with a sequence of keyed items instead of a leaf.
type Kind int

const (
	// KindText is a c8_array string value
	KindText Kind = iota
	// KindInt is a u8 integer value (also used for booleans, 0/1)
	KindInt
	// KindLong is a u32 integer value
	KindLong
	// KindList is an ordered sequence of keyed items
	KindList
)

// String returns the fsapi element name for leaf kinds
func (k Kind) String() string {
	switch k {
	case KindText:
		return "c8_array"
	case KindInt:
		return "u8"
	case KindLong:
		return "u32"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// maxListDepth bounds recursive list decoding. The real API never nests
// items more than two levels deep; the guard protects against pathological
// responses.
const maxListDepth = 4

// Value is a tagged variant holding one decoded response value.
// Accessors return the zero value when asked for a kind the value
// does not hold.
type Value struct {
	kind Kind
	text string
	num  int
	list []Item
}

// TextValue creates a text value
func TextValue(s string) Value { return Value{kind: KindText, text: s} }

// IntValue creates a u8 value
func IntValue(n int) Value { return Value{kind: KindInt, num: n} }

// LongValue creates a u32 value
func LongValue(n int) Value { return Value{kind: KindLong, num: n} }

// ListValue creates a list value
func ListValue(items []Item) Value { return Value{kind: KindList, list: items} }

// Kind returns the shape of the value
func (v Value) Kind() Kind { return v.kind }

// Text returns the string payload, or "" for non-text values
func (v Value) Text() string {
	if v.kind != KindText {
		return ""
	}
	return v.text
}

// Int returns the integer payload, or 0 for non-numeric values
func (v Value) Int() int {
	if v.kind != KindInt && v.kind != KindLong {
		return 0
	}
	return v.num
}

// Bool interprets a u8 payload as a boolean (any non-zero value is true)
func (v Value) Bool() bool {
	return (v.kind == KindInt || v.kind == KindLong) && v.num != 0
}

// List returns the item payload, or nil for non-list values
func (v Value) List() []Item {
	if v.kind != KindList {
		return nil
	}
	return v.list
}

// IsZero reports whether the value is the zero value for its kind
func (v Value) IsZero() bool {
	switch v.kind {
	case KindText:
		return v.text == ""
	case KindInt, KindLong:
		return v.num == 0
	case KindList:
		return len(v.list) == 0
	}
	return true
}

// Encode renders the value the way a SET call expects it on the wire.
// Text passes through unchanged; numeric kinds are rendered in decimal.
func (v Value) Encode() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindInt, KindLong:
		return strconv.Itoa(v.num)
	}
	return ""
}

// Item is one entry of an enumerable node, e.g. one playback mode or one
// station preset. The device assigns each entry a numeric key; named fields
// carry the entry's attributes.
type Item struct {
	// Key is the item's numeric key from the key="n" attribute
	Key int

	// Fields maps field names to their decoded values
	Fields map[string]Value
}

// Field returns the named field's value, or the zero Value if absent
func (i Item) Field(name string) Value {
	return i.Fields[name]
}

// Text returns the named field as a string
func (i Item) Text(name string) string {
	return i.Fields[name].Text()
}

// Int returns the named field as an integer
func (i Item) Int(name string) int {
	return i.Fields[name].Int()
}

// xmlNode is a generic tree node used to walk arbitrary fsapi documents.
// The device's schema is too loose for fixed structs: field elements are
// named by attribute, and list items may nest.
type xmlNode struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []xmlNode  `xml:",any"`
	Text     string     `xml:",chardata"`
}

// child returns the first direct child with the given element name, or nil
func (n *xmlNode) child(name string) *xmlNode {
	for i := range n.Children {
		if n.Children[i].XMLName.Local == name {
			return &n.Children[i]
		}
	}
	return nil
}

// attr returns the named attribute's value, or ""
func (n *xmlNode) attr(name string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// parseDocument parses a raw response body into a generic node tree
func parseDocument(body []byte, node string) (*xmlNode, error) {
	var root xmlNode
	if err := xml.Unmarshal(body, &root); err != nil {
		return nil, newParseError("response is not valid XML", node, err)
	}
	return &root, nil
}

// documentStatus extracts the <status> text of an fsapi response, or ""
func documentStatus(root *xmlNode) string {
	status := root.child("status")
	if status == nil {
		return ""
	}
	return strings.TrimSpace(status.Text)
}

// decodeLeaf decodes a single leaf element (c8_array, u8 or u32) into a
// Value. Returns false if the element is not a known leaf kind.
func decodeLeaf(n *xmlNode) (Value, bool) {
	text := strings.TrimSpace(n.Text)
	switch n.XMLName.Local {
	case "c8_array":
		return TextValue(text), true
	case "u8":
		num, err := strconv.Atoi(text)
		if err != nil {
			return Value{}, false
		}
		return IntValue(num), true
	case "u32":
		num, err := strconv.Atoi(text)
		if err != nil {
			return Value{}, false
		}
		return LongValue(num), true
	}
	return Value{}, false
}

// decodeValueNode decodes the <value> wrapper of a scalar GET response.
// An empty or absent wrapper decodes to ok=false, which callers surface
// as "property not supported" rather than an error.
func decodeValueNode(root *xmlNode, node string) (Value, bool, error) {
	valueNode := root.child("value")
	if valueNode == nil || len(valueNode.Children) == 0 {
		return Value{}, false, nil
	}
	leaf := &valueNode.Children[0]
	v, ok := decodeLeaf(leaf)
	if !ok {
		return Value{}, false, newParseError(
			"unexpected value element <"+leaf.XMLName.Local+">", node, nil)
	}
	return v, true, nil
}

// decodeItems decodes the items of a list response. Devices emit <item>
// elements either directly under the fsapi root or wrapped in
// <value><list>; both shapes are accepted. An empty list decodes to an
// empty slice, never an error.
func decodeItems(root *xmlNode, node string) ([]Item, error) {
	container := root
	if valueNode := root.child("value"); valueNode != nil {
		if listNode := valueNode.child("list"); listNode != nil {
			container = listNode
		}
	}
	return decodeItemChildren(container, node, 0)
}

// decodeItemChildren walks the <item> children of a container node,
// recursing into nested lists up to maxListDepth.
func decodeItemChildren(container *xmlNode, node string, depth int) ([]Item, error) {
	if depth >= maxListDepth {
		return nil, newParseError("list nesting exceeds supported depth", node, nil)
	}

	items := make([]Item, 0)
	for i := range container.Children {
		itemNode := &container.Children[i]
		if itemNode.XMLName.Local != "item" {
			continue
		}

		item := Item{Fields: make(map[string]Value)}
		if key := itemNode.attr("key"); key != "" {
			parsed, err := strconv.Atoi(key)
			if err != nil {
				return nil, newParseError("item key is not numeric: "+key, node, err)
			}
			item.Key = parsed
		}

		for j := range itemNode.Children {
			fieldNode := &itemNode.Children[j]
			value, err := decodeField(fieldNode, node, depth)
			if err != nil {
				return nil, err
			}
			item.Fields[fieldName(fieldNode)] = value
		}

		items = append(items, item)
	}
	return items, nil
}

// decodeField decodes one field of a list item. A field wrapping a leaf
// element decodes to that leaf; a field with <item> children is a nested
// list; a field with no element children is a bare text leaf.
func decodeField(fieldNode *xmlNode, node string, depth int) (Value, error) {
	if len(fieldNode.Children) == 0 {
		return TextValue(strings.TrimSpace(fieldNode.Text)), nil
	}

	if fieldNode.child("item") != nil {
		nested, err := decodeItemChildren(fieldNode, node, depth+1)
		if err != nil {
			return Value{}, err
		}
		return ListValue(nested), nil
	}

	leaf := &fieldNode.Children[0]
	v, ok := decodeLeaf(leaf)
	if !ok {
		return Value{}, newParseError(
			"unexpected field element <"+leaf.XMLName.Local+">", node, nil)
	}
	return v, nil
}

// fieldName returns the name a field is keyed by: the name="…" attribute
// when present, otherwise the element's own tag
func fieldName(fieldNode *xmlNode) string {
	if name := fieldNode.attr("name"); name != "" {
		return name
	}
	return fieldNode.XMLName.Local
}

// hasListEnd reports whether the response marks the end of an enumerable
// node with a <listend/> element
func hasListEnd(root *xmlNode) bool {
	if root.child("listend") != nil {
		return true
	}
	if valueNode := root.child("value"); valueNode != nil {
		if listNode := valueNode.child("list"); listNode != nil {
			return listNode.child("listend") != nil
		}
	}
	return false
}
