// Package statustree implements the status-view specialisation of the
// file tree: it wraps an unfolded path sequence, folds single-child
// directory chains only at draw time, and preserves selection and
// collapsed state across the incremental updates the repo watcher tick
// drives.
package statustree

import (
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/chmouel/gogitui/internal/gitrepo"
)

// Kind mirrors filetree.Kind so callers don't need to import both
// packages just to switch on a row's shape.
type Kind int

const (
	KindFile Kind = iota
	KindPath
)

// Item is one row of the underlying (unfolded) sequence.
type Item struct {
	FullPath  string
	Indent    int
	Kind      Kind
	Collapsed bool
	Visible   bool
	// FoldedAway is true for a directory row that single-child folding
	// absorbs into a descendant's display row; it is never itself
	// selectable or independently rendered.
	FoldedAway bool
	Status     gitrepo.StatusItem // zero value for Kind == KindPath
}

// Tree is the StatusTree view model.
type Tree struct {
	items       []Item
	available   []int // indices into items that are selectable/navigable
	selection   int   // index into items, -1 when empty
	collapsed   map[string]bool
	currentHash uint64
	pending     bool
}

// New returns an empty, pending StatusTree.
func New() *Tree {
	return &Tree{collapsed: make(map[string]bool), pending: true, selection: -1}
}

// Pending reports whether Update has never been called successfully;
// renderers substitute a "Loading..." placeholder while this is true.
func (t *Tree) Pending() bool { return t.pending }

// Items returns the full unfolded sequence. Callers must not mutate it.
func (t *Tree) Items() []Item { return t.items }

// Available returns the indices navigable by MoveSelection, in display order.
func (t *Tree) Available() []int { return t.available }

// Selection returns the current selection index into Items(), or -1.
func (t *Tree) Selection() int { return t.selection }

func hashItems(items []gitrepo.StatusItem) uint64 {
	h := xxhash.New()
	for _, it := range items {
		_, _ = h.Write([]byte(it.Path))
		_, _ = h.Write([]byte{byte(it.Kind)})
	}
	return h.Sum64()
}

// Update rebuilds the tree from items:
// a no-op when hash(items) equals the previously stored hash, otherwise
// a rebuild that preserves collapsed directories and the selected path
// (falling back to the previous index, clamped) before re-deriving
// visibility.
func (t *Tree) Update(items []gitrepo.StatusItem) {
	newHash := hashItems(items)
	if !t.pending && newHash == t.currentHash {
		return
	}
	t.currentHash = newHash

	var previousPath string
	previousIndex := t.selection
	if t.selection >= 0 && t.selection < len(t.items) {
		previousPath = t.items[t.selection].FullPath
	}

	paths := make([]string, len(items))
	statusByPath := make(map[string]gitrepo.StatusItem, len(items))
	for i, it := range items {
		paths[i] = it.Path
		statusByPath[it.Path] = it
	}

	t.items = buildUnfolded(paths, statusByPath, t.collapsed)
	t.available = computeAvailable(t.items)
	t.pending = false

	if previousPath != "" {
		if idx := t.indexOfPath(previousPath); idx >= 0 {
			t.selection = idx
			t.ensureSelectionVisible()
			return
		}
	}
	if len(t.items) == 0 {
		t.selection = -1
		return
	}
	if previousIndex < 0 {
		previousIndex = 0
	}
	if previousIndex >= len(t.items) {
		previousIndex = len(t.items) - 1
	}
	t.selection = previousIndex
	t.ensureSelectionVisible()
}

func (t *Tree) indexOfPath(path string) int {
	for i, it := range t.items {
		if it.FullPath == path {
			return i
		}
	}
	return -1
}

// ensureSelectionVisible walks backward while the current selection is
// hidden or folded away.
func (t *Tree) ensureSelectionVisible() {
	for t.selection >= 0 && t.selection < len(t.items) &&
		(!t.items[t.selection].Visible || t.items[t.selection].FoldedAway) {
		t.selection--
	}
	if t.selection < 0 && len(t.items) > 0 {
		for i, it := range t.items {
			if it.Visible && !it.FoldedAway {
				t.selection = i
				break
			}
		}
	}
}

func buildUnfolded(paths []string, statusByPath map[string]gitrepo.StatusItem, collapsed map[string]bool) []Item {
	dirIndent := make(map[string]int)
	isFile := make(map[string]bool)
	for _, p := range paths {
		if p == "" {
			continue
		}
		segments := strings.Split(p, "/")
		for i := range segments {
			sub := strings.Join(segments[:i+1], "/")
			if i == len(segments)-1 {
				isFile[sub] = true
			} else if _, ok := dirIndent[sub]; !ok {
				dirIndent[sub] = i
			}
		}
	}

	all := make([]string, 0, len(dirIndent)+len(isFile))
	for d := range dirIndent {
		all = append(all, d)
	}
	for f := range isFile {
		all = append(all, f)
	}
	sort.Strings(all)

	childCount := make(map[string]int)
	for _, p := range all {
		parent := parentOf(p)
		childCount[parent]++
	}

	items := make([]Item, 0, len(all))
	for _, p := range all {
		if isFile[p] {
			items = append(items, Item{
				FullPath: p,
				Indent:   strings.Count(p, "/"),
				Kind:     KindFile,
				Visible:  true,
				Status:   statusByPath[p],
			})
			continue
		}
		items = append(items, Item{
			FullPath:  p,
			Indent:    dirIndent[p],
			Kind:      KindPath,
			Collapsed: collapsed[p],
			Visible:   true,
		})
	}

	markFoldedAway(items, childCount, isFile)
	computeVisibility(items)
	return items
}

// markFoldedAway marks every directory row that single-child folding
// would splice into a descendant display row; the item itself stays
// in the sequence but is excluded
// from Available().
func markFoldedAway(items []Item, childCount map[string]int, isFile map[string]bool) {
	byPath := make(map[string]int, len(items))
	for i, it := range items {
		byPath[it.FullPath] = i
	}
	for i := range items {
		if items[i].Kind != KindPath {
			continue
		}
		if childCount[items[i].FullPath] != 1 {
			continue
		}
		child := soleChild(items, items[i].FullPath)
		if child == "" || isFile[child] {
			continue
		}
		items[i].FoldedAway = true
	}
}

func soleChild(items []Item, dir string) string {
	prefix := dir + "/"
	for _, it := range items {
		if strings.HasPrefix(it.FullPath, prefix) && !strings.Contains(it.FullPath[len(prefix):], "/") {
			return it.FullPath
		}
	}
	return ""
}

func parentOf(path string) string {
	idx := strings.LastIndex(path, "/")
	if idx < 0 {
		return ""
	}
	return path[:idx]
}

func isAncestorPath(ancestor, path string) bool {
	return path == ancestor || strings.HasPrefix(path, ancestor+"/")
}

type visStackEntry struct {
	path           string
	subtreeVisible bool
}

func computeVisibility(items []Item) {
	var stack []visStackEntry
	for i := range items {
		p := items[i].FullPath
		for len(stack) > 0 && !isAncestorPath(stack[len(stack)-1].path, p) {
			stack = stack[:len(stack)-1]
		}
		parentVisible := true
		if len(stack) > 0 {
			parentVisible = stack[len(stack)-1].subtreeVisible
		}
		items[i].Visible = parentVisible
		if items[i].Kind == KindPath {
			stack = append(stack, visStackEntry{path: p, subtreeVisible: parentVisible && !items[i].Collapsed})
		}
	}
}

// computeAvailable derives the navigable index list: visible items that
// are not themselves folded away.
func computeAvailable(items []Item) []int {
	out := make([]int, 0, len(items))
	for i, it := range items {
		if it.Visible && !it.FoldedAway {
			out = append(out, i)
		}
	}
	return out
}

// DisplayLabel returns the row's rendered text: for a folded chain's
// surviving directory this is "parent/.../dir"; otherwise the row's own
// last path segment.
func (t *Tree) DisplayLabel(index int) string {
	if index < 0 || index >= len(t.items) {
		return ""
	}
	it := t.items[index]
	if it.Kind == KindFile {
		return lastSegment(it.FullPath)
	}
	// Walk back over any immediately-preceding folded-away ancestors of
	// this directory to build the joined label.
	var chain []string
	chain = append(chain, lastSegment(it.FullPath))
	for i := index - 1; i >= 0; i-- {
		cand := t.items[i]
		if cand.Kind != KindPath || !cand.FoldedAway {
			break
		}
		if !isImmediateParentInChain(cand.FullPath, it.FullPath) {
			break
		}
		chain = append([]string{lastSegment(cand.FullPath)}, chain...)
		it.FullPath = cand.FullPath
	}
	return strings.Join(chain, "/")
}

func isImmediateParentInChain(candidate, of string) bool {
	return parentOf(of) == candidate
}

func lastSegment(path string) string {
	idx := strings.LastIndex(path, "/")
	if idx < 0 {
		return path
	}
	return path[idx+1:]
}

// Toggle collapses or expands the Path at index, matching filetree's
// Collapse/Expand semantics but persisting the collapsed set by path so
// it survives the next Update.
func (t *Tree) Toggle(index int) {
	if index < 0 || index >= len(t.items) || t.items[index].Kind != KindPath {
		return
	}
	p := t.items[index].FullPath
	t.collapsed[p] = !t.collapsed[p]
	t.items[index].Collapsed = t.collapsed[p]
	computeVisibility(t.items)
	t.available = computeAvailable(t.items)
	t.ensureSelectionVisible()
}

// MoveSelection is filetree.MoveSelection's vocabulary plus Home/End/
// PageUp/PageDown, navigated over Available() only.
type MoveSelection int

const (
	MoveUp MoveSelection = iota
	MoveDown
	MoveHome
	MoveEnd
	MovePageUp
	MovePageDown
)

// MoveSelectionWith steps the selection; pageSize is the current view
// height for Page{Up,Down}.
func (t *Tree) MoveSelectionWith(move MoveSelection, pageSize int) {
	if len(t.available) == 0 {
		return
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	pos := t.availablePos()
	switch move {
	case MoveUp:
		if pos > 0 {
			t.selection = t.available[pos-1]
		}
	case MoveDown:
		if pos < len(t.available)-1 {
			t.selection = t.available[pos+1]
		}
	case MoveHome:
		t.selection = t.available[0]
	case MoveEnd:
		t.selection = t.available[len(t.available)-1]
	case MovePageUp:
		newPos := pos - pageSize
		if newPos < 0 {
			newPos = 0
		}
		t.selection = t.available[newPos]
	case MovePageDown:
		newPos := pos + pageSize
		if newPos >= len(t.available) {
			newPos = len(t.available) - 1
		}
		t.selection = t.available[newPos]
	}
}

func (t *Tree) availablePos() int {
	for i, idx := range t.available {
		if idx == t.selection {
			return i
		}
	}
	return 0
}

// SelectedStatus returns the StatusItem at the current selection, if the
// row is a file.
func (t *Tree) SelectedStatus() (gitrepo.StatusItem, bool) {
	if t.selection < 0 || t.selection >= len(t.items) {
		return gitrepo.StatusItem{}, false
	}
	it := t.items[t.selection]
	if it.Kind != KindFile {
		return gitrepo.StatusItem{}, false
	}
	return it.Status, true
}
