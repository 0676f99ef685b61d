// Package problems reconstructs individual contest problems from a
// document's text layer and embedded images, and renders them to a
// compilable LaTeX document.
//
// Splitting is heuristic: a line opening with a problem number starts a
// new problem, every following line continues it, and images extracted
// from a page attach to the problem active when the page ends. Recall is
// best-effort by design; the text layer of contest PDFs is noisy.
package problems
