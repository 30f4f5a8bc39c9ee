// Package testutil provides testing utilities for obsview.
//
// This package is intended for use in tests and benchmarks only.
// It generates random observation datasets and group hierarchies, computes
// subsets by brute force as ground truth, and writes classic netCDF files.
//
// # Random Datasets
//
//	rng := testutil.NewRNG(seed)
//	cols := rng.Observations(1000)
//	groups := rng.Groups(1000, 3, 2) // 3 top-level groups, 2 levels deep
//
// # Ground Truth
//
//	want := testutil.ExactSubset(cols, memberships, testutil.Predicate{...})
package testutil
