package xmlpull

// Kind identifies what a ReadNext call consumed.
type Kind byte

const (
	KindNone Kind = iota
	// KindElement reports an opening tag followed by a child element.
	KindElement
	// KindData reports text attached to the current element.
	// It is also returned right after an opening tag, with possibly empty text.
	KindData
	// KindClosingTag reports a closing tag; the stack was popped.
	KindClosingTag
	// KindAltClosing reports a self-closing tag; nothing was pushed.
	KindAltClosing
)

// String returns a stable name for the kind, suitable for debugging.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindElement:
		return "Element"
	case KindData:
		return "Data"
	case KindClosingTag:
		return "ClosingTag"
	case KindAltClosing:
		return "AltClosing"
	default:
		return "Unknown"
	}
}
