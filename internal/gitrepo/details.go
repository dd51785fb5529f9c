package gitrepo

import (
	"context"
	"strconv"
	"strings"
)

func parseUnix(s string) int64 {
	v, _ := strconv.ParseInt(s, 10, 64)
	return v
}

// CommitSignature is the author or committer identity on a commit.
type CommitSignature struct {
	Name  string
	Email string
	Time  int64 // unix seconds
}

// CommitMessageParts splits a raw commit message into subject and body.
type CommitMessageParts struct {
	Subject string
	Body    string
}

// Combine reassembles the full message the way git stores it.
func (m CommitMessageParts) Combine() string {
	if m.Body == "" {
		return m.Subject + "\n"
	}
	body := m.Body
	if !strings.HasSuffix(body, "\n") {
		body += "\n"
	}
	return m.Subject + "\n\n" + body
}

// CommitDetails is everything the commit-details pane renders.
type CommitDetails struct {
	ID        CommitId
	Author    CommitSignature
	Committer CommitSignature
	Parents   []CommitId
	Message   CommitMessageParts
}

// GetCommitDetails reads full metadata for one commit.
func (h *Handle) GetCommitDetails(ctx context.Context, id CommitId) (CommitDetails, error) {
	format := strings.Join([]string{
		"%an", "%ae", "%at",
		"%cn", "%ce", "%ct",
		"%P",
		"%B",
	}, logFieldSep)
	raw, err := h.run(ctx, []string{"show", "--no-patch", "--format=" + format, id.String()})
	if err != nil {
		return CommitDetails{}, err
	}
	fields := strings.SplitN(raw, logFieldSep, 8)
	if len(fields) < 8 {
		return CommitDetails{}, ErrGeneric{Message: "unexpected show output for " + id.ShortString()}
	}
	details := CommitDetails{
		ID:        id,
		Author:    CommitSignature{Name: fields[0], Email: fields[1], Time: parseUnix(fields[2])},
		Committer: CommitSignature{Name: fields[3], Email: fields[4], Time: parseUnix(fields[5])},
		Parents:   parseParents(fields[6]),
	}
	subject, body, _ := strings.Cut(strings.TrimRight(fields[7], "\n"), "\n")
	details.Message = CommitMessageParts{Subject: subject, Body: strings.TrimLeft(body, "\n")}
	return details, nil
}

// CommitFiles lists the paths touched by a commit, for the commit-files
// pane and its notification.
func (h *Handle) CommitFiles(ctx context.Context, id CommitId) ([]StatusItem, error) {
	raw, err := h.run(ctx, []string{"show", "--name-status", "--format=", id.String()})
	if err != nil {
		return nil, err
	}
	var items []StatusItem
	for _, line := range strings.Split(raw, "\n") {
		if line == "" {
			continue
		}
		status, rest, ok := strings.Cut(line, "\t")
		if !ok {
			continue
		}
		kind := StatusModified
		switch status[0] {
		case 'A':
			kind = StatusNew
		case 'D':
			kind = StatusDeleted
		case 'R':
			kind = StatusRenamed
			// rename lines carry "old\tnew"; report the new path
			if _, newPath, ok := strings.Cut(rest, "\t"); ok {
				rest = newPath
			}
		case 'T':
			kind = StatusTypechange
		}
		items = append(items, StatusItem{Path: rest, Kind: kind})
	}
	return items, nil
}
