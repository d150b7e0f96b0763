package xmlpull

import "strings"

var standardEntities = map[string]string{
	"lt":   "<",
	"gt":   ">",
	"amp":  "&",
	"apos": "'",
	"quot": "\"",
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	default:
		return false
	}
}

// trimRightSpace drops trailing bytes matched by isSpace. Multi-byte runes
// such as U+00A0 are kept, so both ends of a text run agree.
func trimRightSpace(s string) string {
	end := len(s)
	for end > 0 && isSpace(s[end-1]) {
		end--
	}
	return s[:end]
}

func (p *Parser) hasPrefix(prefix string) bool {
	return strings.HasPrefix(p.input[p.cursor:], prefix)
}

func (p *Parser) skipSpace() {
	for p.cursor < len(p.input) && isSpace(p.input[p.cursor]) {
		p.cursor++
	}
}

func (p *Parser) skipComment() (bool, error) {
	if !p.hasPrefix("<!--") {
		return false, nil
	}
	end := strings.Index(p.input[p.cursor+4:], "-->")
	if end < 0 {
		return false, errUnterminatedComment
	}
	p.cursor += 4 + end + 3
	return true, nil
}

// skipTrivia drops whitespace and any run of comments.
func (p *Parser) skipTrivia() error {
	for {
		p.skipSpace()
		skipped, err := p.skipComment()
		if err != nil {
			return err
		}
		if !skipped {
			return nil
		}
	}
}

func (p *Parser) skipProlog() error {
	if !p.hasPrefix("<?") {
		return nil
	}
	end := strings.Index(p.input[p.cursor+2:], "?>")
	if end < 0 {
		return errUnterminatedProlog
	}
	p.cursor += 2 + end + 2
	return nil
}

// entityAhead reports whether the '&' at the cursor may start one of the
// predefined entities. Only the first letter is checked.
func (p *Parser) entityAhead() bool {
	if p.cursor+1 >= len(p.input) {
		return false
	}
	switch p.input[p.cursor+1] {
	case 'a', 'l', 'g', 'q':
		return true
	default:
		return false
	}
}

// readEntity consumes "&name;" and writes its replacement to b.
// Unknown names are dropped unless StrictEntities is set.
func (p *Parser) readEntity(b *strings.Builder) error {
	start := p.cursor + 1
	i := start
	for ; i < len(p.input); i++ {
		c := p.input[i]
		if c == ';' {
			break
		}
		if c == '<' || c == '&' || c == '"' || isSpace(c) {
			return errUnterminatedEntity
		}
	}
	if i >= len(p.input) {
		return errUnterminatedEntity
	}
	name := p.input[start:i]
	if value, ok := standardEntities[name]; ok {
		b.WriteString(value)
	} else if p.opts.strictEntities {
		return errUnknownEntity
	}
	p.cursor = i + 1
	return nil
}

// readText copies input up to stop, resolving entities on the way.
// The cursor is left on stop. eofErr is returned if stop is never found.
func (p *Parser) readText(stop byte, eofErr error) (string, error) {
	var b strings.Builder
	for {
		if p.cursor >= len(p.input) {
			return "", eofErr
		}
		c := p.input[p.cursor]
		switch {
		case c == stop:
			return b.String(), nil
		case c == '&' && p.entityAhead():
			if err := p.readEntity(&b); err != nil {
				return "", err
			}
		default:
			b.WriteByte(c)
			p.cursor++
		}
	}
}
