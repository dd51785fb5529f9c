package gitrepo

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// CommitSummary is the minimal per-commit record the Log Walker
// pages through: just enough to render a revlog line and to let a filter
// predicate decide whether to keep it.
type CommitSummary struct {
	ID      CommitId
	Subject string
	Author  string
}

const logFieldSep = "\x1f"

// RevList runs `git rev-list` rooted at start (empty means HEAD),
// skipping the first skip commits and returning up to limit of them, in
// the walk's natural (reverse chronological) order. It is the primitive
// the Log Walker drives incrementally: "each fetch() call
// advances the walk by a bounded slice".
func (h *Handle) RevList(ctx context.Context, start string, skip, limit int) ([]CommitSummary, error) {
	if start == "" {
		start = "HEAD"
	}
	args := []string{
		"rev-list",
		fmt.Sprintf("--skip=%d", skip),
		fmt.Sprintf("--max-count=%d", limit),
		"--pretty=format:" + logFieldSep + "%H" + logFieldSep + "%an" + logFieldSep + "%s",
		start,
	}
	out, err := h.run(ctx, args)
	if err != nil {
		return nil, err
	}
	var result []CommitSummary
	scanner := bufio.NewScanner(strings.NewReader(out))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, logFieldSep) {
			continue // the "commit <sha>" line --pretty still emits before the format line
		}
		fields := strings.SplitN(line[len(logFieldSep):], logFieldSep, 3)
		if len(fields) != 3 {
			continue
		}
		result = append(result, CommitSummary{
			ID:      NewCommitId(fields[0]),
			Author:  fields[1],
			Subject: fields[2],
		})
	}
	return result, nil
}
