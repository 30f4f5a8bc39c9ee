// Package ncfile reads DART/IODA style observation files (netCDF4 or classic
// CDF) into a dataset.Dataset and its dataset.GroupTree.
//
// The top level holds per-observation variables over the obs dimension (lat,
// lon, vertical, time, qc and any payload variables). Groups nest arbitrarily
// and each may carry an obs_id variable listing member observations; masked
// entries are marked with the variable's _FillValue.
package ncfile
