// Package gitrepo opens a repository and exposes the primitive Git
// read/write operations every other package builds on. It shells out to
// the git binary the same way the surrounding TUI packages do, rather
// than linking a Git implementation in-process.
package gitrepo

import (
	"encoding/hex"
	"fmt"
)

// CommitId is an opaque object identifier (20-byte sha1 or 32-byte sha256).
// Equality and ShortString are the only meaningful operations; byte order
// carries no semantic weight.
type CommitId struct {
	raw string // hex-encoded, lowercase
}

// NewCommitId wraps a hex object id. It does not validate length so that
// abbreviated ids returned by some plumbing commands still round-trip.
func NewCommitId(hex string) CommitId { return CommitId{raw: hex} }

// IsZero reports whether this is the empty/unset commit id.
func (c CommitId) IsZero() bool { return c.raw == "" }

// String returns the full hex id.
func (c CommitId) String() string { return c.raw }

// ShortString returns the conventional 7-hex-character prefix, or the
// full id when it is already shorter than that.
func (c CommitId) ShortString() string {
	if len(c.raw) <= 7 {
		return c.raw
	}
	return c.raw[:7]
}

// Equal reports identifier equality by content.
func (c CommitId) Equal(other CommitId) bool { return c.raw == other.raw }

func validHex(s string) bool {
	_, err := hex.DecodeString(s)
	return err == nil
}

// RepoPath is a tagged union over the two ways a repository can be
// addressed: a conventional directory (workdir = parent of .git) or an
// explicit split between gitdir and workdir (bare repo reused as a
// workdir, or any other custom separation).
type RepoPath struct {
	// Dir is set for the Path(dir) variant; empty otherwise.
	Dir string
	// GitDir/WorkDir are set for the Workdir{gitdir, workdir} variant.
	GitDir  string
	WorkDir string
}

// NewPathRepo constructs the conventional Path(dir) variant.
func NewPathRepo(dir string) RepoPath { return RepoPath{Dir: dir} }

// NewSplitRepo constructs the Workdir{gitdir, workdir} variant.
func NewSplitRepo(gitDir, workDir string) RepoPath {
	return RepoPath{GitDir: gitDir, WorkDir: workDir}
}

// IsSplit reports whether this RepoPath uses the explicit gitdir/workdir form.
func (p RepoPath) IsSplit() bool { return p.GitDir != "" || p.WorkDir != "" }

func (p RepoPath) String() string {
	if p.IsSplit() {
		return fmt.Sprintf("gitdir=%s workdir=%s", p.GitDir, p.WorkDir)
	}
	return p.Dir
}

// StatusItemKind enumerates the kinds of change a StatusItem can carry.
type StatusItemKind int

const (
	StatusNew StatusItemKind = iota
	StatusModified
	StatusDeleted
	StatusRenamed
	StatusTypechange
	StatusConflicted
)

func (k StatusItemKind) String() string {
	switch k {
	case StatusNew:
		return "New"
	case StatusModified:
		return "Modified"
	case StatusDeleted:
		return "Deleted"
	case StatusRenamed:
		return "Renamed"
	case StatusTypechange:
		return "Typechange"
	case StatusConflicted:
		return "Conflicted"
	default:
		return "Unknown"
	}
}

// StatusItem is the source of truth StatusTree builds from.
type StatusItem struct {
	Path string
	Kind StatusItemKind
}

// BranchFilter selects which refs Branches() reports.
type BranchFilter int

const (
	BranchLocal BranchFilter = iota
	BranchRemote
)

// BranchDetails is a tagged union: Local branches report upstream/remote
// and whether they are currently checked out; remote branches report
// whether a local branch tracks them.
type BranchDetails struct {
	IsLocal bool

	// Local fields.
	IsHead   bool
	Upstream string // empty if unset
	Remote   string // empty if unset

	// Remote fields.
	HasTracking bool
}

// BranchInfo describes a single local or remote branch.
type BranchInfo struct {
	Name              string
	Reference         string
	TopCommit         CommitId
	TopCommitMessage  string
	Details           BranchDetails
}

// DiffTargetKind enumerates the comparison a diff is computed against.
type DiffTargetKind int

const (
	DiffWorkdirVsIndex DiffTargetKind = iota
	DiffIndexVsHead
	DiffCommit
	DiffCommitPair
	DiffStash
)

// DiffTarget selects what a diff is computed between.
type DiffTarget struct {
	Kind DiffTargetKind
	A    CommitId // Commit(id) uses A; CommitPair(a,b) uses A and B
	B    CommitId
	Stash CommitId
}

// DiffOptions tunes the unified-diff generation.
type DiffOptions struct {
	IgnoreWhitespace bool
	ContextLines     int
	InterhunkLines   int
}

// DefaultDiffOptions mirrors git's own defaults.
func DefaultDiffOptions() DiffOptions {
	return DiffOptions{ContextLines: 3, InterhunkLines: 0}
}

// ResetKind distinguishes git reset modes for the Reset confirmable action.
type ResetKind int

const (
	ResetSoft ResetKind = iota
	ResetMixed
	ResetHard
)

func (k ResetKind) gitFlag() string {
	switch k {
	case ResetSoft:
		return "--soft"
	case ResetHard:
		return "--hard"
	default:
		return "--mixed"
	}
}
