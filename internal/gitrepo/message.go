package gitrepo

import "strings"

// StripCommentLines removes lines beginning with '#', as returned from
// an external editor session over the commit-message tempfile.
func StripCommentLines(msg string) string {
	lines := strings.Split(msg, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(line, "#") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// PrettifyMessage normalizes a commit message: trailing whitespace is
// trimmed from each line, runs of blank lines collapse to one, and the
// result carries exactly one trailing newline. An all-blank message
// prettifies to the empty string.
func PrettifyMessage(msg string) string {
	var out []string
	blankRun := 0
	for _, line := range strings.Split(msg, "\n") {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			blankRun++
			continue
		}
		if blankRun > 0 && len(out) > 0 {
			out = append(out, "")
		}
		blankRun = 0
		out = append(out, line)
	}
	if len(out) == 0 {
		return ""
	}
	return strings.Join(out, "\n") + "\n"
}
