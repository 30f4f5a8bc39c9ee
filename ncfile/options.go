package ncfile

// Options names the variables Read looks for.
type Options struct {
	Lat      string
	Lon      string
	Vertical string
	Time     string
	QC       string
	ObsID    string

	// Variables lists extra per-observation variables to load. Nil loads
	// DefaultVariables when present in the file.
	Variables []string
}

// DefaultVariables are the payload variables loaded when Options.Variables is nil.
var DefaultVariables = []string{"observation"}

// DefaultOptions returns the DART variable naming.
func DefaultOptions() Options {
	return Options{
		Lat:      "lat",
		Lon:      "lon",
		Vertical: "vertical",
		Time:     "time",
		QC:       "qc",
		ObsID:    "obs_id",
	}
}
