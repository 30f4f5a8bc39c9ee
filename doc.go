// Package obsview narrows hierarchical observation datasets (DART / IODA style
// netCDF files) to subsets.
//
// A dataset is a set of N observations with per-observation latitude,
// longitude, vertical coordinate, time and quality-control code, plus a tree of
// named groups, each listing member observations by index. A subset is the
// conjunction of four independent stages, run in order:
//
//  1. groups: union or intersection of the selected groups' observations
//  2. spatial: inclusive latitude/longitude bounding box
//  3. temporal: inclusive time window
//  4. qc: retain-list of QC codes (an empty list, or one containing 8, keeps all)
//
// # Quick Start
//
//	eng := obsview.New(obsview.WithLogLevel(slog.LevelInfo))
//
//	data, err := eng.OpenFile(ctx, "obs_seq.final.nc")
//	if err != nil { ... }
//
//	qc, _ := filter.NewQCSelection(0, 1)
//	res, err := eng.Subset(data, obsview.SubsetRequest{
//	    Groups: obsview.GroupSelection{Names: []string{"Radiosonde", "Ocean"}, Mode: indexset.Union},
//	    Box:    filter.BoundingBox{LatMin: filter.Bound(-30), LatMax: filter.Bound(30)},
//	    QC:     qc,
//	})
//	if err != nil { ... }
//	if res.Warning != nil {
//	    fmt.Println(res.Warning) // e.g. "no observations left after spatial filter"
//	}
//	fmt.Println(res.Indices, res.View.Len())
//
// # Remote Files
//
// Load stages any blobstore.BlobStore (local directory, MinIO, S3) onto local
// disk with parallel range reads and decompresses .gz, .zst and .lz4 payloads:
//
//	store := s3.NewStore(awss3.NewFromConfig(cfg), "obs-bucket", "dart/")
//	data, err := eng.Load(ctx, store, "obs_seq.final.nc.zst")
//
// # Errors
//
// Unknown groups yield *GroupNotFoundError and structurally invalid requests
// (intersection of fewer than two groups, NaN bounds, ambiguous names) yield
// *InvalidFilterError. A request that removes every observation is not an
// error: SubsetResult.Warning names the stage that emptied it.
package obsview
