// Package interactive steps through a document one ReadNext call at a time,
// asking the user on each step whether to show data or attributes and whether
// to keep going.
package interactive

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/jacoelho/pullxml/pkg/xmlpull"
	"github.com/pkg/errors"
)

const (
	promptStart    = "Parse next element? (y) "
	promptContinue = "Continue parsing? (y) "
	promptReadSkip = "Press r to read or s to skip. "
)

// Session holds the terminal streams for one interactive run.
type Session struct {
	in     *bufio.Reader
	out    io.Writer
	logger log.Logger
	err    error
}

// New creates a session reading answers from in and writing prompts to out.
func New(in io.Reader, out io.Writer, logger log.Logger) *Session {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Session{in: bufio.NewReader(in), out: out, logger: logger}
}

// RunPasted asks for the document on the first input line and then runs it.
func (s *Session) RunPasted(opts ...xmlpull.Options) error {
	s.println("Welcome to the interactive XML parser!")
	s.println("Paste your raw XML text here: ")
	line, ok := s.readLine()
	if !ok || strings.TrimSpace(line) == "" {
		return errors.New("no XML input")
	}
	return s.Run(xmlpull.NewParser(line, opts...))
}

// Run steps p until the user stops or the input is exhausted.
func (s *Session) Run(p *xmlpull.Parser) error {
	s.print(promptStart)
	more := s.command() == 'y'
	for more && !p.Done() {
		before := p.Depth()
		kind, err := p.ReadNext()
		if err != nil {
			return errors.Wrap(err, "interactive step")
		}
		level.Debug(s.logger).Log("msg", "parsed step", "kind", kind, "path", p.Path(), "cursor", p.Cursor())
		more = s.step(p, kind, p.Depth() > before)
	}
	s.println()
	s.println("No further input detected. Parsing is complete.")
	return s.err
}

func (s *Session) step(p *xmlpull.Parser, kind xmlpull.Kind, opened bool) bool {
	var elem *xmlpull.Element
	switch kind {
	case xmlpull.KindClosingTag, xmlpull.KindAltClosing:
		elem = p.Closed()
	default:
		elem, _ = p.CurrentElement()
	}

	if (opened || kind == xmlpull.KindAltClosing) && len(elem.Attributes()) > 0 {
		s.printf("\nCurrent path: %s\n", p.Path())
		s.print("This element has attribute(s). " + promptReadSkip)
		if s.command() == 'r' {
			s.println(formatAttributes(elem.Attributes()))
		}
		if !s.askContinue(p) {
			return false
		}
	}

	s.printf("\nCurrent path: %s\n", p.Path())
	switch kind {
	case xmlpull.KindElement:
		s.print("Child element(s) detected. ")
	case xmlpull.KindData:
		s.print("Data detected. " + promptReadSkip)
		if s.command() == 'r' {
			s.println(elem.Data())
		}
		s.println()
	case xmlpull.KindClosingTag:
		s.print("Element fully parsed. ")
	case xmlpull.KindAltClosing:
		s.printf("Self-closing element %s parsed. ", elem.Name())
	}
	return s.askContinue(p)
}

// askContinue prompts only while input remains.
func (s *Session) askContinue(p *xmlpull.Parser) bool {
	if p.Done() {
		s.println()
		return false
	}
	s.print(promptContinue)
	return s.command() == 'y'
}

// command reads one answer line and returns its first non-space byte.
func (s *Session) command() byte {
	line, _ := s.readLine()
	line = strings.TrimSpace(line)
	if line == "" {
		return 0
	}
	return line[0]
}

func (s *Session) readLine() (string, bool) {
	line, err := s.in.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimRight(line, "\r\n"), true
}

func (s *Session) print(msg string) {
	s.printf("%s", msg)
}

func (s *Session) println(args ...any) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintln(s.out, args...)
}

func (s *Session) printf(format string, args ...any) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.out, format, args...)
}

func formatAttributes(attrs map[string]string) string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+attrs[k])
	}
	return "{" + strings.Join(pairs, ", ") + "}"
}
