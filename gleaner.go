// Package gleaner provides a fluent API for extracting diagrams and
// problem statements from math contest documents.
//
// Basic usage:
//
//	report, warnings, err := gleaner.Open("contest.pdf").Diagrams()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", gleaner.FormatWarnings(warnings))
//	}
//
// With options:
//
//	report, _, err := gleaner.Open("contest.pdf").
//	    Pages(2, 3, 4).
//	    ExcludeInstructionsHeader(1).
//	    OutputDir("diagrams").
//	    Diagrams()
//
// For advanced use cases, the lower-level document, detect, merge, and
// export packages are also available.
package gleaner

import (
	"github.com/hferris/gleaner/document"
)

// Open opens a contest document and returns a Pipeline for fluent
// configuration. The returned Pipeline must be closed when done, either
// explicitly via Close() or implicitly when calling a terminal operation
// like Diagrams().
//
// Example:
//
//	report, warnings, err := gleaner.Open("contest.pdf").Diagrams()
func Open(filename string) *Pipeline {
	return &Pipeline{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromDocument creates a Pipeline from an already-opened document.
// This is useful when you need more control over the document lifecycle.
// Note: The caller is responsible for closing the document.
//
// Example:
//
//	doc, err := document.OpenPDF("contest.pdf")
//	if err != nil {
//	    // handle error
//	}
//	defer doc.Close()
//	report, warnings, err := gleaner.FromDocument(doc).Diagrams()
func FromDocument(doc document.Document) *Pipeline {
	return &Pipeline{
		doc:       doc,
		ownsDoc:   false,
		docOpened: true,
		options:   defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := gleaner.Must(gleaner.Open("contest.pdf").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustResult is a helper that wraps a terminal operation and panics if
// the error is non-nil. It discards warnings and returns just the value.
// It is intended for use in scripts or tests where error handling would
// be cumbersome.
//
// Example:
//
//	report := gleaner.MustResult(gleaner.Open("contest.pdf").Diagrams())
func MustResult[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
