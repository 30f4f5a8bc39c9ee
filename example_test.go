package obsview_test

import (
	"fmt"
	"log"

	"github.com/hupe1980/obsview"
	"github.com/hupe1980/obsview/dataset"
	"github.com/hupe1980/obsview/filter"
	"github.com/hupe1980/obsview/indexset"
)

// Example_groups demonstrates union and intersection of groups.
func Example_groups() {
	ds, err := dataset.New(dataset.Columns{
		Lat:  make([]float64, 10),
		Lon:  make([]float64, 10),
		Time: make([]float64, 10),
		QC:   make([]int32, 10),
	})
	if err != nil {
		log.Fatal(err)
	}

	tree, err := dataset.BuildTree(dataset.NewMapSource(
		dataset.Leaf("A", 0, 1, 2, 3),
		dataset.Leaf("B", 2, 3, 4, 5),
	), ds.Len())
	if err != nil {
		log.Fatal(err)
	}

	for _, mode := range []indexset.Mode{indexset.Union, indexset.Intersection} {
		res, err := obsview.ComputeSubset(ds, tree, obsview.SubsetRequest{
			Groups: obsview.GroupSelection{Names: []string{"A", "B"}, Mode: mode},
		})
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(mode, res.Indices)
	}
	// Output:
	// union [0 1 2 3 4 5]
	// intersection [2 3]
}

// Example_emptyResult demonstrates the warning attached to an empty subset.
func Example_emptyResult() {
	ds, err := dataset.New(dataset.Columns{
		Lat:  []float64{-20, -5, 0, 5, 20},
		Lon:  []float64{0, 0, 0, 0, 0},
		Time: []float64{1, 2, 3, 4, 5},
		QC:   []int32{0, 1, 2, 8, 0},
	})
	if err != nil {
		log.Fatal(err)
	}

	res, err := obsview.ComputeSubset(ds, nil, obsview.SubsetRequest{
		Box:    filter.BoundingBox{LatMin: filter.Bound(-10), LatMax: filter.Bound(10)},
		Window: filter.TimeWindow{Min: filter.Bound(100)},
	})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(len(res.Indices), res.Warning)
	// Output: 0 no observations left after temporal filter
}
