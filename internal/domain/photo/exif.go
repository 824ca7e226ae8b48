package photo

import "time"

// ExifData is a sparse snapshot of camera metadata extracted at ingestion.
// Every field is optional; extraction failure degrades to the zero value
// rather than failing ingestion.
type ExifData struct {
	DateTaken    *time.Time `json:"date_taken,omitempty"`
	Camera       string     `json:"camera,omitempty"`
	Lens         string     `json:"lens,omitempty"`
	ISO          int        `json:"iso,omitempty"`
	Aperture     string     `json:"aperture,omitempty"`
	ShutterSpeed string     `json:"shutter_speed,omitempty"`
	FocalLength  string     `json:"focal_length,omitempty"`
}

// IsEmpty reports whether no metadata was extracted
func (e ExifData) IsEmpty() bool {
	return e.DateTaken == nil &&
		e.Camera == "" &&
		e.Lens == "" &&
		e.ISO == 0 &&
		e.Aperture == "" &&
		e.ShutterSpeed == "" &&
		e.FocalLength == ""
}
