package dataset

import (
	"fmt"
	"strings"
)

// RawIndex is a group's obs_id array as stored in the file, before compaction.
type RawIndex struct {
	Values []int64

	// Fill is the masked-entry marker (the variable's _FillValue), if any.
	Fill *int64
}

// GroupSource is a read-only view of a native group hierarchy.
//
// Paths are slash-separated and absolute; "/" denotes the file's top level.
type GroupSource interface {
	// Subgroups returns the names of the direct children of the group at path.
	Subgroups(path string) ([]string, error)

	// ObsIDs returns the raw obs_id array of the group at path. ok is false
	// when the group does not define one.
	ObsIDs(path string) (raw RawIndex, ok bool, err error)
}

// MapGroup describes one group of a MapSource.
type MapGroup struct {
	Name string

	// ObsIDs is the raw index array; nil means the group has no obs_id variable.
	ObsIDs []int64
	Fill   *int64

	Children []MapGroup
}

// MapSource is an in-memory GroupSource.
type MapSource struct {
	byPath map[string]*MapGroup
	top    []string
}

// NewMapSource creates a MapSource with the given top-level groups.
func NewMapSource(groups ...MapGroup) *MapSource {
	s := &MapSource{byPath: make(map[string]*MapGroup)}
	for i := range groups {
		s.top = append(s.top, groups[i].Name)
		s.index("/", &groups[i])
	}
	return s
}

func (s *MapSource) index(parent string, g *MapGroup) {
	p := JoinPath(parent, g.Name)
	s.byPath[p] = g
	for i := range g.Children {
		s.index(p, &g.Children[i])
	}
}

// Subgroups implements GroupSource.
func (s *MapSource) Subgroups(path string) ([]string, error) {
	if path == "/" {
		return s.top, nil
	}
	g, ok := s.byPath[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGroupNotFound, path)
	}
	names := make([]string, len(g.Children))
	for i, c := range g.Children {
		names[i] = c.Name
	}
	return names, nil
}

// ObsIDs implements GroupSource.
func (s *MapSource) ObsIDs(path string) (RawIndex, bool, error) {
	g, ok := s.byPath[path]
	if !ok {
		return RawIndex{}, false, fmt.Errorf("%w: %s", ErrGroupNotFound, path)
	}
	if g.ObsIDs == nil {
		return RawIndex{}, false, nil
	}
	return RawIndex{Values: g.ObsIDs, Fill: g.Fill}, true, nil
}

// JoinPath joins a parent group path and a child name.
func JoinPath(parent, name string) string {
	if parent == "" || parent == "/" {
		return "/" + name
	}
	return strings.TrimSuffix(parent, "/") + "/" + name
}

// Leaf is a convenience constructor for a MapGroup without children.
func Leaf(name string, ids ...int64) MapGroup {
	if ids == nil {
		ids = []int64{}
	}
	return MapGroup{Name: name, ObsIDs: ids}
}

// Parent is a convenience constructor for a MapGroup with children and no obs_id.
func Parent(name string, children ...MapGroup) MapGroup {
	return MapGroup{Name: name, Children: children}
}
