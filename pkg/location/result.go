package location

// Source records how a location was determined.
type Source string

const (
	SourceDevice  Source = "gps"
	SourceNetwork Source = "ip"
	SourceManual  Source = "manual"
	SourceDefault Source = "default"
)

// Valid reports whether s is one of the known provenance tags.
func (s Source) Valid() bool {
	switch s {
	case SourceDevice, SourceNetwork, SourceManual, SourceDefault:
		return true
	}
	return false
}

// Persistable reports whether results with this source may be stored.
// Default results are never stored so a later run retries detection.
func (s Source) Persistable() bool {
	return s.Valid() && s != SourceDefault
}

// Result is a resolved location name and its provenance.
type Result struct {
	Location string `json:"location"`
	Source   Source `json:"source"`
}
