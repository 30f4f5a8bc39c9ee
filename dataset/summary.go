package dataset

import "math"

// Extent is the closed range of a finite-valued column. Valid is false when the
// column holds no finite values.
type Extent struct {
	Min, Max float64
	Valid    bool
}

// Summary describes a dataset at a glance.
type Summary struct {
	Observations int
	Lat          Extent
	Lon          Extent
	Vertical     Extent
	Time         Extent

	// QCCounts[c] is the number of observations with QC code c, for c in 0..7.
	QCCounts [QCUnassigned]int
	// Unassigned counts observations with code 8.
	Unassigned int
	// OutOfRange counts codes outside [0, 8].
	OutOfRange int

	Variables []string
}

// Summarize computes extents and the QC distribution of d.
func (d *Dataset) Summarize() Summary {
	s := Summary{
		Observations: d.n,
		Lat:          extentOf(d.lat),
		Lon:          extentOf(d.lon),
		Vertical:     extentOf(d.vertical),
		Time:         extentOf(d.time),
		Variables:    d.VariableNames(),
	}
	for _, code := range d.qc {
		switch {
		case code >= 0 && code < QCUnassigned:
			s.QCCounts[code]++
		case code == QCUnassigned:
			s.Unassigned++
		default:
			s.OutOfRange++
		}
	}
	return s
}

func extentOf(v []float64) Extent {
	e := Extent{Min: math.Inf(1), Max: math.Inf(-1)}
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			continue
		}
		e.Min = min(e.Min, x)
		e.Max = max(e.Max, x)
		e.Valid = true
	}
	if !e.Valid {
		return Extent{}
	}
	return e
}
