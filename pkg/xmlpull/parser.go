package xmlpull

import "strings"

// Parser is a pull tokenizer over an in-memory XML buffer.
// It is not safe for concurrent use.
type Parser struct {
	err     error
	closed  *Element
	input   string
	stack   []*Element
	optsRaw Options
	opts    parserOptions
	cursor  int
	started bool
}

// NewParser creates a parser positioned at the start of input.
func NewParser(input string, opts ...Options) *Parser {
	p := &Parser{}
	p.Reset(input, opts...)
	return p
}

// Reset prepares the parser for reading input with new options.
func (p *Parser) Reset(input string, opts ...Options) {
	if p == nil {
		return
	}
	joined := JoinOptions(opts...)
	p.optsRaw = joined
	p.opts = resolveOptions(joined)
	p.input = input
	p.cursor = 0
	clear(p.stack)
	p.stack = p.stack[:0]
	p.closed = nil
	p.err = nil
	p.started = false
}

// Options returns the options snapshot the parser was configured with.
func (p *Parser) Options() Options {
	var zero Options
	if p == nil {
		return zero
	}
	return p.optsRaw
}

// ReadNext consumes exactly one syntactic unit and reports its kind.
// Errors are terminal: once ReadNext fails it keeps returning the same error
// until Reset is called.
func (p *Parser) ReadNext() (Kind, error) {
	if p.err != nil {
		return KindNone, p.err
	}
	kind, err := p.readNext()
	if err != nil {
		return KindNone, p.fail(err)
	}
	return kind, nil
}

func (p *Parser) fail(err error) error {
	p.err = &SyntaxError{Offset: p.cursor, Path: p.Path(), Err: err}
	return p.err
}

func (p *Parser) readNext() (Kind, error) {
	if p.cursor >= len(p.input) {
		return KindNone, ErrOutOfRange
	}
	p.closed = nil
	if !p.started {
		p.started = true
		p.skipSpace()
		if err := p.skipProlog(); err != nil {
			return KindNone, err
		}
	}
	if err := p.skipTrivia(); err != nil {
		return KindNone, err
	}
	if p.cursor >= len(p.input) {
		if len(p.stack) > 0 {
			return KindNone, errUnclosedElement
		}
		return KindNone, ErrOutOfRange
	}

	switch {
	case p.hasPrefix("</"):
		return p.readClosingTag()
	case p.hasPrefix("<?"):
		return KindNone, errMisplacedPI
	case p.hasPrefix("<!"):
		return KindNone, errUnsupportedMarkup
	case p.input[p.cursor] == '<':
		return p.readElement()
	}
	return p.readData()
}

func (p *Parser) readElement() (Kind, error) {
	p.cursor++ // '<'
	start := p.cursor
	for p.cursor < len(p.input) {
		c := p.input[p.cursor]
		if c == '>' || c == '/' || isSpace(c) {
			break
		}
		p.cursor++
	}
	if p.cursor >= len(p.input) {
		return KindNone, errUnterminatedTag
	}
	if p.cursor == start {
		return KindNone, errEmptyName
	}
	elem := NewElement(p.input[start:p.cursor])

	p.skipSpace()
	if err := p.readAttributes(elem); err != nil {
		return KindNone, err
	}

	if p.input[p.cursor] == '/' {
		if !p.hasPrefix("/>") {
			return KindNone, errUnterminatedTag
		}
		p.cursor += 2
		p.closed = elem
		if err := p.skipTrailer(); err != nil {
			return KindNone, err
		}
		return KindAltClosing, nil
	}

	p.cursor++ // '>'
	if err := p.push(elem); err != nil {
		return KindNone, err
	}
	if err := p.skipTrivia(); err != nil {
		return KindNone, err
	}
	if p.cursor >= len(p.input) {
		return KindNone, errUnclosedElement
	}

	closing := p.hasPrefix("</")
	if p.input[p.cursor] == '<' && !closing {
		return KindElement, nil
	}
	if closing && !p.opts.emitEmptyData {
		return KindElement, nil
	}
	return p.readData()
}

// readAttributes parses key="value" pairs and leaves the cursor on '>' or '/'.
func (p *Parser) readAttributes(elem *Element) error {
	for {
		if p.cursor >= len(p.input) {
			return errUnterminatedTag
		}
		if c := p.input[p.cursor]; c == '>' || c == '/' {
			return nil
		}

		start := p.cursor
		for p.cursor < len(p.input) && p.input[p.cursor] != '=' {
			if c := p.input[p.cursor]; c == '>' || c == '/' || c == '<' {
				return errMissingEquals
			}
			p.cursor++
		}
		if p.cursor >= len(p.input) {
			return errUnterminatedTag
		}
		key := trimRightSpace(p.input[start:p.cursor])
		if key == "" {
			return errEmptyName
		}
		p.cursor++ // '='

		p.skipSpace()
		if p.cursor >= len(p.input) {
			return errUnterminatedTag
		}
		if p.input[p.cursor] != '"' {
			return errMissingQuote
		}
		p.cursor++

		value, err := p.readText('"', errUnterminatedAttr)
		if err != nil {
			return err
		}
		p.cursor++ // '"'
		elem.AddAttribute(key, value)
		p.skipSpace()
	}
}

func (p *Parser) readClosingTag() (Kind, error) {
	top := p.top()
	if top == nil {
		return KindNone, ErrEmptyStack
	}
	start := p.cursor + 2
	end := strings.IndexByte(p.input[start:], '>')
	if end < 0 {
		return KindNone, errUnterminatedTag
	}
	if p.opts.strictEndTags && trimRightSpace(p.input[start:start+end]) != top.name {
		return KindNone, errMismatchedEndTag
	}
	p.cursor = start + end + 1
	p.pop()
	if err := p.skipTrailer(); err != nil {
		return KindNone, err
	}
	return KindClosingTag, nil
}

func (p *Parser) readData() (Kind, error) {
	top := p.top()
	if top == nil {
		return KindNone, ErrEmptyStack
	}
	text, err := p.readText('<', errUnclosedElement)
	if err != nil {
		return KindNone, err
	}
	top.AppendData(trimRightSpace(text))
	return KindData, nil
}

// skipTrailer consumes whitespace and comments after the outermost element so
// that a finished document leaves the cursor at the end of input.
func (p *Parser) skipTrailer() error {
	if len(p.stack) > 0 {
		return nil
	}
	return p.skipTrivia()
}

func (p *Parser) push(elem *Element) error {
	if p.opts.maxDepth > 0 && len(p.stack) >= p.opts.maxDepth {
		return errDepthLimit
	}
	p.stack = append(p.stack, elem)
	return nil
}

func (p *Parser) pop() {
	n := len(p.stack) - 1
	p.closed = p.stack[n]
	p.stack[n] = nil
	p.stack = p.stack[:n]
}

func (p *Parser) top() *Element {
	if len(p.stack) == 0 {
		return nil
	}
	return p.stack[len(p.stack)-1]
}

// Cursor returns the index of the next unread byte.
func (p *Parser) Cursor() int {
	return p.cursor
}

// Done reports whether the whole input has been consumed.
func (p *Parser) Done() bool {
	return p.cursor >= len(p.input)
}

// Depth returns the number of open elements.
func (p *Parser) Depth() int {
	return len(p.stack)
}

// HasCurrentElement reports whether any element is open.
func (p *Parser) HasCurrentElement() bool {
	return len(p.stack) > 0
}

// CurrentElement returns the innermost open element.
func (p *Parser) CurrentElement() (*Element, error) {
	top := p.top()
	if top == nil {
		return nil, ErrEmptyStack
	}
	return top, nil
}

// CurrentAttributes returns the attributes of the innermost open element.
func (p *Parser) CurrentAttributes() (map[string]string, error) {
	top, err := p.CurrentElement()
	if err != nil {
		return nil, err
	}
	return top.Attributes(), nil
}

// CurrentData returns the data of the innermost open element.
func (p *Parser) CurrentData() (string, error) {
	top, err := p.CurrentElement()
	if err != nil {
		return "", err
	}
	return top.Data(), nil
}

// Closed returns the element closed by the last ReadNext call: the one popped
// by a closing tag, or the transient element of a self-closing tag. It is nil
// after any other step.
func (p *Parser) Closed() *Element {
	return p.closed
}

// Names returns the names of the open elements, outermost first.
func (p *Parser) Names() []string {
	names := make([]string, len(p.stack))
	for i, elem := range p.stack {
		names[i] = elem.name
	}
	return names
}

// Path renders the open elements as "/a/b", or "/" when none are open.
func (p *Parser) Path() string {
	if len(p.stack) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, elem := range p.stack {
		b.WriteByte('/')
		b.WriteString(elem.name)
	}
	return b.String()
}
