// Package webgrab fetches a contest question "print" page and extracts
// the problem text and diagram images from it.
//
// The print endpoint serves either an HTML page or raw PDF bytes; PDF
// responses are saved for the document pipeline, HTML responses go
// through DOM heuristics to locate the problem container while skipping
// the site header. Extraction recall is best-effort: the heuristics are
// selector guesswork over pages that carry no stable markup.
package webgrab
