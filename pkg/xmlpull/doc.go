// Package xmlpull provides a pull-style tokenizer for a restricted XML dialect.
// A Parser advances through an in-memory buffer one syntactic unit per ReadNext
// call and keeps only the stack of open elements; no tree is built.
//
// The dialect covers elements, double-quoted attributes, comments, a leading
// XML declaration, and the five predefined entities. Namespaces, DTDs, CDATA
// sections, processing instructions and character references are not supported.
package xmlpull
