package testutil

import (
	"github.com/batchatco/go-native-netcdf/netcdf/api"
	"github.com/batchatco/go-native-netcdf/netcdf/cdf"
	"github.com/batchatco/go-native-netcdf/netcdf/util"

	"github.com/hupe1980/obsview/dataset"
)

// WriteCDF writes c as a classic netCDF file with DART variable names over an
// "obs" dimension. Classic files carry no groups.
func WriteCDF(path string, c dataset.Columns) error {
	w, err := cdf.OpenWriter(path)
	if err != nil {
		return err
	}

	add := func(name string, values any, units string) error {
		attrs, err := util.NewOrderedMap([]string{"units"}, map[string]any{"units": units})
		if err != nil {
			return err
		}
		return w.AddVar(name, api.Variable{
			Values:     values,
			Dimensions: []string{"obs"},
			Attributes: attrs,
		})
	}

	vars := []struct {
		name   string
		values any
		units  string
	}{
		{"lat", c.Lat, "degrees_north"},
		{"lon", c.Lon, "degrees_east"},
		{"time", c.Time, "days"},
		{"qc", c.QC, "1"},
	}
	if c.Vertical != nil {
		vars = append(vars, struct {
			name   string
			values any
			units  string
		}{"vertical", c.Vertical, "hPa"})
	}
	for _, v := range vars {
		if err := add(v.name, v.values, v.units); err != nil {
			_ = w.Close()
			return err
		}
	}
	if obs, ok := c.Variables["observation"]; ok {
		if err := add("observation", obs, "1"); err != nil {
			_ = w.Close()
			return err
		}
	}
	return w.Close()
}
