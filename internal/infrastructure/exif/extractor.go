package exif

import (
	"bytes"
	"fmt"
	"strings"

	goexif "github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"

	"github.com/wanderlens/backend/internal/application/ingestion"
	"github.com/wanderlens/backend/internal/domain/photo"
	"github.com/wanderlens/backend/internal/domain/shared/valueobject"
)

// Ensure Extractor implements the ingestion port
var _ ingestion.ExifExtractor = (*Extractor)(nil)

// Extractor reads EXIF metadata out of JPEG and TIFF bytes. Extraction is
// best-effort: images without EXIF return empty metadata and a nil location,
// not an error.
type Extractor struct{}

// NewExtractor creates a new Extractor
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract decodes camera metadata and the embedded GPS coordinate. The
// returned GeoPoint is nil when the image carries no usable GPS tags.
func (e *Extractor) Extract(data []byte) (photo.ExifData, *valueobject.GeoPoint, error) {
	x, err := goexif.Decode(bytes.NewReader(data))
	if err != nil {
		// PNGs and stripped JPEGs have no EXIF block at all
		return photo.ExifData{}, nil, nil
	}

	meta := photo.ExifData{
		Camera:       cameraName(x),
		Lens:         stringTag(x, goexif.LensModel),
		ISO:          intTag(x, goexif.ISOSpeedRatings),
		Aperture:     apertureString(x),
		ShutterSpeed: shutterString(x),
		FocalLength:  focalLengthString(x),
	}

	if taken, err := x.DateTime(); err == nil {
		utc := taken.UTC()
		meta.DateTaken = &utc
	}

	var location *valueobject.GeoPoint
	if lat, lng, err := x.LatLong(); err == nil {
		if point, perr := valueobject.NewGeoPoint(lat, lng); perr == nil {
			location = &point
		}
	}

	return meta, location, nil
}

// cameraName joins make and model, dropping the make when the model
// already repeats it
func cameraName(x *goexif.Exif) string {
	maker := stringTag(x, goexif.Make)
	model := stringTag(x, goexif.Model)

	switch {
	case model == "":
		return maker
	case maker == "" || strings.HasPrefix(strings.ToLower(model), strings.ToLower(maker)):
		return model
	default:
		return maker + " " + model
	}
}

func apertureString(x *goexif.Exif) string {
	num, den, ok := ratTag(x, goexif.FNumber)
	if !ok || den == 0 {
		return ""
	}
	return fmt.Sprintf("f/%.1f", float64(num)/float64(den))
}

func shutterString(x *goexif.Exif) string {
	num, den, ok := ratTag(x, goexif.ExposureTime)
	if !ok || den == 0 || num == 0 {
		return ""
	}
	if num >= den {
		return fmt.Sprintf("%gs", float64(num)/float64(den))
	}
	// Normalize to the conventional 1/N form
	return fmt.Sprintf("1/%d", den/num)
}

func focalLengthString(x *goexif.Exif) string {
	num, den, ok := ratTag(x, goexif.FocalLength)
	if !ok || den == 0 {
		return ""
	}
	value := float64(num) / float64(den)
	if value == float64(int64(value)) {
		return fmt.Sprintf("%dmm", int64(value))
	}
	return fmt.Sprintf("%.1fmm", value)
}

func stringTag(x *goexif.Exif, name goexif.FieldName) string {
	tag, err := x.Get(name)
	if err != nil {
		return ""
	}
	value, err := tag.StringVal()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(value)
}

func intTag(x *goexif.Exif, name goexif.FieldName) int {
	tag, err := x.Get(name)
	if err != nil {
		return 0
	}
	value, err := tag.Int(0)
	if err != nil {
		return 0
	}
	return value
}

func ratTag(x *goexif.Exif, name goexif.FieldName) (int64, int64, bool) {
	tag, err := x.Get(name)
	if err != nil || tag.Format() != tiff.RatVal {
		return 0, 0, false
	}
	num, den, err := tag.Rat2(0)
	if err != nil {
		return 0, 0, false
	}
	return num, den, true
}
