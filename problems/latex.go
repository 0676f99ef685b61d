package problems

import (
	"fmt"
	"os"
	"strings"
)

const latexPreamble = `\documentclass[12pt]{article}
\usepackage{graphicx}
\usepackage{enumitem}
\setlength{\parindent}{0pt}
\begin{document}
\section*{Extracted Contest Problems}
`

// latexEscaper escapes the characters LaTeX treats specially in problem
// text. Backslash first so the others' escapes survive.
var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
)

// WriteLaTeX renders the problems to a compilable LaTeX article at path.
func WriteLaTeX(probs []Problem, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	var buf strings.Builder
	buf.WriteString(latexPreamble)
	for _, p := range probs {
		fmt.Fprintf(&buf, "\\textbf{Problem %d} \\\\\n", p.Number)
		buf.WriteString(latexEscaper.Replace(p.Text))
		buf.WriteString("\n\n")
		for _, img := range p.Images {
			fmt.Fprintf(&buf, "\\\\ \\includegraphics[width=0.7\\linewidth]{%s}\n\n", img)
		}
		buf.WriteString("\\vspace{1em}\n\n")
	}
	buf.WriteString("\\end{document}\n")

	if _, err := f.WriteString(buf.String()); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
