package ncfile

import (
	"fmt"
	"slices"
	"strings"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"

	"github.com/hupe1980/obsview/dataset"
)

// File is a decoded observation file.
type File struct {
	Dataset *dataset.Dataset
	Tree    *dataset.GroupTree

	// Attributes holds the global attributes.
	Attributes map[string]any
}

// Read decodes the observation file at path.
func Read(path string, optFns ...func(o *Options)) (*File, error) {
	opts := DefaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	g, err := netcdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// Subgroups share the root's file handle, so only the root is closed.
	defer g.Close()

	return decode(g, opts)
}

func decode(root api.Group, opts Options) (*File, error) {
	vars := root.ListVariables()
	has := func(name string) bool { return name != "" && slices.Contains(vars, name) }

	cols := dataset.Columns{Variables: make(map[string][]float64)}

	var err error
	for _, req := range []struct {
		name string
		dst  *[]float64
	}{
		{opts.Lat, &cols.Lat},
		{opts.Lon, &cols.Lon},
		{opts.Time, &cols.Time},
	} {
		if *req.dst, err = readFloats(root, req.name); err != nil {
			return nil, err
		}
	}

	if has(opts.Vertical) {
		if cols.Vertical, err = readFloats(root, opts.Vertical); err != nil {
			return nil, err
		}
	}

	if has(opts.QC) {
		v, err := root.GetVariable(opts.QC)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", opts.QC, err)
		}
		if cols.QC, err = toInt32s(opts.QC, v.Values); err != nil {
			return nil, err
		}
	} else {
		cols.QC = make([]int32, len(cols.Lat))
		for i := range cols.QC {
			cols.QC[i] = dataset.QCUnassigned
		}
	}

	extra := opts.Variables
	if extra == nil {
		for _, name := range DefaultVariables {
			if has(name) {
				extra = append(extra, name)
			}
		}
	}
	for _, name := range extra {
		if cols.Variables[name], err = readFloats(root, name); err != nil {
			return nil, err
		}
	}

	ds, err := dataset.New(cols)
	if err != nil {
		return nil, err
	}

	tree, err := dataset.BuildTree(newGroupSource(root, opts.ObsID), ds.Len())
	if err != nil {
		return nil, err
	}

	return &File{
		Dataset:    ds,
		Tree:       tree,
		Attributes: attributes(root.Attributes()),
	}, nil
}

func readFloats(g api.Group, name string) ([]float64, error) {
	if name == "" || !slices.Contains(g.ListVariables(), name) {
		return nil, fmt.Errorf("%w: %s", ErrMissingVariable, name)
	}
	v, err := g.GetVariable(name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return toFloat64s(name, v.Values)
}

func attributes(m api.AttributeMap) map[string]any {
	out := make(map[string]any)
	if m == nil {
		return out
	}
	for _, k := range m.Keys() {
		if v, ok := m.Get(k); ok {
			out[k] = v
		}
	}
	return out
}

// groupSource adapts an api.Group hierarchy to dataset.GroupSource.
type groupSource struct {
	root   api.Group
	obsID  string
	groups map[string]api.Group
}

func newGroupSource(root api.Group, obsID string) *groupSource {
	return &groupSource{
		root:   root,
		obsID:  obsID,
		groups: map[string]api.Group{"/": root},
	}
}

func (s *groupSource) group(path string) (api.Group, error) {
	if g, ok := s.groups[path]; ok {
		return g, nil
	}

	parentPath, name := "/", strings.TrimPrefix(path, "/")
	if i := strings.LastIndex(path, "/"); i > 0 {
		parentPath, name = path[:i], path[i+1:]
	}

	parent, err := s.group(parentPath)
	if err != nil {
		return nil, err
	}
	g, err := parent.GetGroup(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", dataset.ErrGroupNotFound, path, err)
	}
	s.groups[path] = g
	return g, nil
}

func (s *groupSource) Subgroups(path string) ([]string, error) {
	g, err := s.group(path)
	if err != nil {
		return nil, err
	}
	return g.ListSubgroups(), nil
}

func (s *groupSource) ObsIDs(path string) (dataset.RawIndex, bool, error) {
	g, err := s.group(path)
	if err != nil {
		return dataset.RawIndex{}, false, err
	}
	if !slices.Contains(g.ListVariables(), s.obsID) {
		return dataset.RawIndex{}, false, nil
	}

	v, err := g.GetVariable(s.obsID)
	if err != nil {
		return dataset.RawIndex{}, false, fmt.Errorf("read %s: %w", s.obsID, err)
	}
	values, err := toInt64s(path+"/"+s.obsID, v.Values)
	if err != nil {
		return dataset.RawIndex{}, false, err
	}

	raw := dataset.RawIndex{Values: values}
	if v.Attributes != nil {
		if fv, ok := v.Attributes.Get("_FillValue"); ok {
			if fill, ok := scalarInt64(fv); ok {
				raw.Fill = &fill
			}
		}
	}
	return raw, true, nil
}
