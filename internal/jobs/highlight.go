package jobs

import (
	"bytes"
	"path/filepath"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/chmouel/gogitui/internal/notify"
)

// HighlightKey identifies one syntax-highlight request for the
// SingleJob keying: the file path (for lexer
// selection) plus the exact content being rendered, since the diff and
// blame panes both highlight snippets of the same file at different
// revisions.
type HighlightKey struct {
	Path    string
	Content string
}

// HighlightResult is one ANSI-rendered line per input line, so the diff
// and blame panes can overlay their own gutters without re-tokenizing.
type HighlightResult struct {
	Lines []string
}

// NewHighlightJob wires chroma's lexer/formatter/style pipeline into a
// SingleJob: each request tokenizes content under the lexer matched to
// Path's extension and renders it with the 8-bit terminal formatter,
// reporting completion over sender as AppNotification.
func NewHighlightJob(sender notify.Sender, themeName string) *SingleJob[HighlightKey, HighlightResult] {
	style := styles.Get(themeName)
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.TTY256

	run := func(key HighlightKey) (HighlightResult, error) {
		lexer := lexers.Match(filepath.Base(key.Path))
		if lexer == nil {
			lexer = lexers.Fallback
		}
		lexer = chroma.Coalesce(lexer)

		iterator, err := lexer.Tokenise(nil, key.Content)
		if err != nil {
			return HighlightResult{}, err
		}
		var buf bytes.Buffer
		if err := formatter.Format(&buf, style, iterator); err != nil {
			return HighlightResult{}, err
		}
		lines := bytes.Split(buf.Bytes(), []byte("\n"))
		result := make([]string, len(lines))
		for i, l := range lines {
			result[i] = string(l)
		}
		return HighlightResult{Lines: result}, nil
	}

	onDone := func(key HighlightKey, result HighlightResult, err error) {
		if err != nil {
			sender.Send(notify.AppNotification{Kind: notify.AppSyntaxHighlightDone, Err: err})
			return
		}
		sender.Send(notify.AppNotification{Kind: notify.AppSyntaxHighlightDone, Percent: 100})
	}

	return NewSingleJob(run, onDone)
}
