package xmlpull

// Element is an open or closed tag instance.
type Element struct {
	attrs map[string]string
	name  string
	data  string
}

// NewElement returns an element with no attributes and empty data.
func NewElement(name string) *Element {
	return &Element{name: name, attrs: make(map[string]string)}
}

// Name returns the element name.
func (e *Element) Name() string {
	if e == nil {
		return ""
	}
	return e.name
}

// Attributes returns the attribute map. The map is owned by the element.
func (e *Element) Attributes() map[string]string {
	if e == nil {
		return nil
	}
	return e.attrs
}

// Data returns the text accumulated so far.
func (e *Element) Data() string {
	if e == nil {
		return ""
	}
	return e.data
}

// AppendData concatenates s onto the element data.
// Text interrupted by a child element arrives in several calls.
func (e *Element) AppendData(s string) {
	e.data += s
}

// AddAttribute sets key to value, returning the previous value if one existed.
// The last write wins.
func (e *Element) AddAttribute(key, value string) (string, bool) {
	if e.attrs == nil {
		e.attrs = make(map[string]string)
	}
	prev, ok := e.attrs[key]
	e.attrs[key] = value
	return prev, ok
}
