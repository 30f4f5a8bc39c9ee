// Package dataset holds the in-memory observation dataset and its group hierarchy.
//
// A Dataset is an immutable collection of N observations addressed by index
// [0, N). Coordinates, time and quality-control codes are stored column-wise.
//
// A GroupTree is built once from a GroupSource and stored as a flat arena of
// nodes linked by parent/child indices. Node 0 is always the synthesized
// "root" group that implicitly contains every observation. Raw obs_id arrays are
// compacted (masked and out-of-range entries removed, sorted, deduplicated) while
// the tree is built, so lookups never re-filter them.
//
// Groups can be referenced by full path ("/Ocean/Argo") or by bare name
// ("Argo") when the bare name is unique in the tree.
package dataset
