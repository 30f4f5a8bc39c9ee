package dataset

import (
	"fmt"
	"slices"
	"strings"

	"github.com/hupe1980/obsview/indexset"
)

// RootName is the name of the synthesized group containing every observation.
const RootName = "root"

const rootPath = "/"

// Node is one group in the arena.
type Node struct {
	Name     string
	Path     string
	Parent   int // -1 for the root
	Children []int

	obsIDs    []int
	hasObsIDs bool
}

// IsRoot reports whether the node is the synthesized root.
func (n *Node) IsRoot() bool { return n.Parent < 0 }

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// HasObsIDs reports whether the group defined an obs_id array.
func (n *Node) HasObsIDs() bool { return n.hasObsIDs }

// GroupTree is a flat, immutable arena of group nodes. Node 0 is the root.
type GroupTree struct {
	nodes  []Node
	n      int
	byPath map[string]int
	byName map[string][]int
}

// BuildTree walks src depth-first and builds the group arena for a dataset of n
// observations. Every obs_id array is compacted against n while reading.
func BuildTree(src GroupSource, n int) (*GroupTree, error) {
	t := &GroupTree{
		nodes:  []Node{{Name: RootName, Path: rootPath, Parent: -1}},
		n:      n,
		byPath: map[string]int{rootPath: 0},
		byName: make(map[string][]int),
	}

	type frame struct {
		idx  int
		path string
	}
	stack := []frame{{idx: 0, path: rootPath}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		names, err := src.Subgroups(f.path)
		if err != nil {
			return nil, fmt.Errorf("list subgroups of %s: %w", f.path, err)
		}

		children := make([]int, 0, len(names))
		for _, name := range names {
			p := JoinPath(f.path, name)
			if _, dup := t.byPath[p]; dup {
				return nil, fmt.Errorf("duplicate group path %s", p)
			}

			raw, ok, err := src.ObsIDs(p)
			if err != nil {
				return nil, fmt.Errorf("read obs_id of %s: %w", p, err)
			}

			idx := len(t.nodes)
			node := Node{Name: name, Path: p, Parent: f.idx, hasObsIDs: ok}
			if ok {
				node.obsIDs = Compact(raw, n)
			}
			t.nodes = append(t.nodes, node)
			t.byPath[p] = idx
			t.byName[name] = append(t.byName[name], idx)
			children = append(children, idx)
		}
		t.nodes[f.idx].Children = children

		// Push in reverse so children are visited in source order.
		for i := len(children) - 1; i >= 0; i-- {
			c := children[i]
			stack = append(stack, frame{idx: c, path: t.nodes[c].Path})
		}
	}

	return t, nil
}

// Compact removes masked entries (the fill value, negatives, indices >= n) from
// a raw obs_id array and returns the remainder sorted and deduplicated.
func Compact(raw RawIndex, n int) []int {
	out := make([]int, 0, len(raw.Values))
	for _, v := range raw.Values {
		if raw.Fill != nil && v == *raw.Fill {
			continue
		}
		if v < 0 || v >= int64(n) {
			continue
		}
		out = append(out, int(v))
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// ObservationCount returns the N the tree was built against.
func (t *GroupTree) ObservationCount() int { return t.n }

// Len returns the number of nodes, including the root.
func (t *GroupTree) Len() int { return len(t.nodes) }

// Root returns the synthesized root node.
func (t *GroupTree) Root() *Node { return &t.nodes[0] }

// Node returns the node at arena index i.
func (t *GroupTree) Node(i int) *Node { return &t.nodes[i] }

// Lookup resolves a group reference to its arena index. The reference is either
// "root", an absolute path, or a bare name that is unique in the tree.
func (t *GroupTree) Lookup(name string) (int, error) {
	if name == RootName || name == rootPath {
		return 0, nil
	}
	if strings.HasPrefix(name, "/") {
		if idx, ok := t.byPath[strings.TrimSuffix(name, "/")]; ok {
			return idx, nil
		}
		return -1, fmt.Errorf("%w: %s", ErrGroupNotFound, name)
	}
	switch matches := t.byName[name]; len(matches) {
	case 0:
		return -1, fmt.Errorf("%w: %s", ErrGroupNotFound, name)
	case 1:
		return matches[0], nil
	default:
		paths := make([]string, len(matches))
		for i, m := range matches {
			paths[i] = t.nodes[m].Path
		}
		return -1, fmt.Errorf("%w: %s matches %s", ErrAmbiguousGroup, name, strings.Join(paths, ", "))
	}
}

// ResolveObsIDs returns the compacted observation indices of a group: ascending,
// deduplicated, masked entries removed. The root resolves to [0, N). A group
// without an obs_id array resolves to an empty list.
func (t *GroupTree) ResolveObsIDs(name string) ([]int, error) {
	idx, err := t.Lookup(name)
	if err != nil {
		return nil, err
	}
	if idx == 0 {
		return indexset.Range(t.n).Indices(), nil
	}
	return append([]int{}, t.nodes[idx].obsIDs...), nil
}

// IndexSet returns the group's observations as a set.
func (t *GroupTree) IndexSet(name string) (*indexset.Set, error) {
	idx, err := t.Lookup(name)
	if err != nil {
		return nil, err
	}
	if idx == 0 {
		return indexset.Range(t.n), nil
	}
	return indexset.FromSlice(t.nodes[idx].obsIDs), nil
}

// ExpandSelection replaces every internal (non-leaf) group with the paths of all
// its descendant leaves, recursively. The internal group itself is not kept.
// Leaves are returned as absolute paths, "root" is passed through unchanged, and
// duplicates are dropped keeping first occurrence.
func (t *GroupTree) ExpandSelection(names []string) ([]string, error) {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	add := func(s string) {
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	for _, name := range names {
		idx, err := t.Lookup(name)
		if err != nil {
			return nil, err
		}
		if idx == 0 {
			add(RootName)
			continue
		}
		for _, leaf := range t.leavesUnder(idx) {
			add(t.nodes[leaf].Path)
		}
	}
	return out, nil
}

func (t *GroupTree) leavesUnder(idx int) []int {
	if t.nodes[idx].IsLeaf() {
		return []int{idx}
	}
	var out []int
	stack := []int{idx}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := &t.nodes[cur]
		if node.IsLeaf() {
			out = append(out, cur)
			continue
		}
		for i := len(node.Children) - 1; i >= 0; i-- {
			stack = append(stack, node.Children[i])
		}
	}
	return out
}

// Leaves returns the paths of every leaf group in depth-first order.
func (t *GroupTree) Leaves() []string {
	if t.Root().IsLeaf() {
		return nil
	}
	leaves := t.leavesUnder(0)
	out := make([]string, len(leaves))
	for i, l := range leaves {
		out[i] = t.nodes[l].Path
	}
	return out
}

// ParentGroups returns the paths of every group whose obs_id array contains obs,
// in depth-first order. The root is not reported.
func (t *GroupTree) ParentGroups(obs int) []string {
	var out []string
	_ = t.Walk(func(n *Node, _ int) error {
		if n.IsRoot() || !n.hasObsIDs {
			return nil
		}
		if _, found := slices.BinarySearch(n.obsIDs, obs); found {
			out = append(out, n.Path)
		}
		return nil
	})
	return out
}

// WalkFunc is called for each node during traversal. Returning an error stops
// the walk and is returned by Walk.
type WalkFunc func(n *Node, depth int) error

// Walk visits every node depth-first, parents before children, starting at root.
func (t *GroupTree) Walk(fn WalkFunc) error {
	type frame struct{ idx, depth int }
	stack := []frame{{0, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := &t.nodes[f.idx]
		if err := fn(node, f.depth); err != nil {
			return err
		}
		for i := len(node.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{node.Children[i], f.depth + 1})
		}
	}
	return nil
}
