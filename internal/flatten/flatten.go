// Package flatten turns a parser walk into path/value rows.
//
// The row layout follows the map shape produced by github.com/clbanning/mxj:
// attributes become "-name" keys, and text of an element that also carries
// attributes or children lives under "#text".
package flatten

import (
	"sort"
	"strings"

	"github.com/jacoelho/pullxml"
	"github.com/jacoelho/pullxml/pkg/xmlpull"
	"github.com/pkg/errors"
)

const (
	defaultAttributePrefix = "-"
	defaultTextKey         = "#text"
)

type flattenOpts struct {
	attributePrefix string
	textKey         string
}

// FlattenOpts configures Flatten.
type FlattenOpts func(*flattenOpts)

// WithAttributePrefix sets the prefix added to attribute names.
func WithAttributePrefix(prefix string) FlattenOpts {
	return func(fo *flattenOpts) {
		fo.attributePrefix = prefix
	}
}

// WithTextKey sets the key used for text next to attributes or children.
func WithTextKey(key string) FlattenOpts {
	return func(fo *flattenOpts) {
		fo.textKey = key
	}
}

type frame struct {
	hasChild bool
}

// Flatten walks p to the end of input and returns its rows in document order.
// Attributes of one element are emitted sorted by name.
func Flatten(p *xmlpull.Parser, opts ...FlattenOpts) ([]Row, error) {
	fo := &flattenOpts{
		attributePrefix: defaultAttributePrefix,
		textKey:         defaultTextKey,
	}
	for _, opt := range opts {
		opt(fo)
	}

	rows := []Row{}
	var frames []frame

	err := pullxml.Walk(p, func(ev pullxml.Event) error {
		switch {
		case ev.Kind == xmlpull.KindAltClosing:
			if len(frames) > 0 {
				frames[len(frames)-1].hasChild = true
			}
			path := append(splitPath(ev.Path), ev.Element.Name())
			rows = fo.appendAttributes(rows, path, ev.Element)
			rows = fo.appendText(rows, path, ev.Element, false)
		case ev.Opened:
			if len(frames) > 0 {
				frames[len(frames)-1].hasChild = true
			}
			frames = append(frames, frame{})
			rows = fo.appendAttributes(rows, splitPath(ev.Path), ev.Element)
		case ev.Kind == xmlpull.KindClosingTag:
			if len(frames) == 0 {
				return errors.Errorf("closing tag without frame at %s", ev.Path)
			}
			top := frames[len(frames)-1]
			frames = frames[:len(frames)-1]
			path := append(splitPath(ev.Path), ev.Element.Name())
			rows = fo.appendText(rows, path, ev.Element, top.hasChild)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "flattening")
	}
	return rows, nil
}

func (fo *flattenOpts) appendAttributes(rows []Row, path []string, elem *xmlpull.Element) []Row {
	attrs := elem.Attributes()
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		rows = append(rows, Row{Path: extend(path, fo.attributePrefix+k), Value: attrs[k]})
	}
	return rows
}

func (fo *flattenOpts) appendText(rows []Row, path []string, elem *xmlpull.Element, hasChild bool) []Row {
	data := elem.Data()
	if hasChild || len(elem.Attributes()) > 0 {
		if data == "" {
			return rows
		}
		return append(rows, Row{Path: extend(path, fo.textKey), Value: data})
	}
	return append(rows, Row{Path: path, Value: data})
}

func splitPath(path string) []string {
	trimmed := strings.TrimPrefix(path, "/")
	if trimmed == "" {
		return []string{}
	}
	return strings.Split(trimmed, "/")
}

func extend(path []string, key string) []string {
	out := make([]string, len(path), len(path)+1)
	copy(out, path)
	return append(out, key)
}
