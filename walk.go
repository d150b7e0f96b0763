package pullxml

import (
	"github.com/jacoelho/pullxml/pkg/xmlpull"
	"github.com/pkg/errors"
)

// ErrStop can be returned by a Walk callback to end the walk without error.
var ErrStop = errors.New("stop walk")

// Event describes one parser step.
type Event struct {
	// Element is the innermost open element after the step. For closing and
	// self-closing steps it is the element that was closed.
	Element *xmlpull.Element
	Path    string
	Kind    xmlpull.Kind
	Depth   int
	Cursor  int
	// Opened reports that the step read an opening tag.
	Opened bool
}

// Walk calls ReadNext until the input is exhausted and passes every step to fn.
func Walk(p *xmlpull.Parser, fn func(Event) error) error {
	if p == nil {
		return errors.New("nil parser")
	}
	for !p.Done() {
		before := p.Depth()
		kind, err := p.ReadNext()
		if err != nil {
			return errors.Wrap(err, "walk")
		}

		ev := Event{
			Kind:   kind,
			Path:   p.Path(),
			Depth:  p.Depth(),
			Cursor: p.Cursor(),
		}
		switch kind {
		case xmlpull.KindClosingTag:
			ev.Element = p.Closed()
		case xmlpull.KindAltClosing:
			ev.Element = p.Closed()
			ev.Opened = true
		default:
			ev.Element, _ = p.CurrentElement()
			ev.Opened = p.Depth() > before
		}

		if err := fn(ev); err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}
			return err
		}
	}
	return nil
}

// Counts tallies the steps of a walk.
type Counts struct {
	Opened int
	Closed int
	Data   int
}

// Count walks p to the end and counts opened elements, closed elements, and
// data steps. For a well-formed document Opened equals Closed.
func Count(p *xmlpull.Parser) (Counts, error) {
	var c Counts
	err := Walk(p, func(ev Event) error {
		if ev.Opened {
			c.Opened++
		}
		switch ev.Kind {
		case xmlpull.KindClosingTag, xmlpull.KindAltClosing:
			c.Closed++
		case xmlpull.KindData:
			c.Data++
		}
		return nil
	})
	return c, err
}
