package gitrepo

import (
	"context"
	"strings"
)

// TagInfo describes one tag and the commit it points at (peeled for
// annotated tags).
type TagInfo struct {
	Name       string
	Target     CommitId
	Annotation string // first line of the annotation, empty for lightweight tags
}

// Tags lists all tags, name-sorted.
func (h *Handle) Tags(ctx context.Context) ([]TagInfo, error) {
	format := "%(refname:short)" + logFieldSep + "%(objectname)" + logFieldSep + "%(*objectname)" + logFieldSep + "%(contents:subject)"
	raw, err := h.run(ctx, []string{"for-each-ref", "--sort=refname", "--format=" + format, "refs/tags"})
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}
	var tags []TagInfo
	for _, line := range strings.Split(raw, "\n") {
		fields := strings.Split(line, logFieldSep)
		if len(fields) < 4 {
			continue
		}
		// %(*objectname) is the peeled commit for annotated tags and
		// empty for lightweight ones.
		target := fields[2]
		annotation := fields[3]
		if target == "" {
			target = fields[1]
			annotation = ""
		}
		tags = append(tags, TagInfo{Name: fields[0], Target: NewCommitId(target), Annotation: annotation})
	}
	return tags, nil
}

// CreateTag creates a tag at target. A non-empty message makes it an
// annotated tag.
func (h *Handle) CreateTag(ctx context.Context, name string, target CommitId, message string) error {
	args := []string{"tag"}
	if message != "" {
		args = append(args, "-a", "-m", message)
	}
	args = append(args, name)
	if !target.IsZero() {
		args = append(args, target.String())
	}
	_, err := h.runChecked(ctx, args)
	return err
}

// DeleteTag removes a local tag.
func (h *Handle) DeleteTag(ctx context.Context, name string) error {
	_, err := h.runChecked(ctx, []string{"tag", "-d", name})
	return err
}

// PushTags pushes all local tags to remote, streaming progress events.
func (h *Handle) PushTags(ctx context.Context, remote string, onProgress ProgressFunc) error {
	return h.runStreaming(ctx, []string{"push", "--progress", "--tags", remote}, onProgress)
}
