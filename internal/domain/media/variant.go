package media

// ResizeMode controls how a variant's dimensions are applied
type ResizeMode string

const (
	// ResizeFill crops to exactly the given dimensions
	ResizeFill ResizeMode = "fill"
	// ResizeLimit scales down to fit within the given bound, never upscales
	ResizeLimit ResizeMode = "limit"
)

// VariantSpec describes a derived rendition of a stored original
type VariantSpec struct {
	Name   string
	Width  int
	Height int
	Mode   ResizeMode
}

// Display variants produced for every stored photo. Only display variants
// carry the watermark; originals are stored untouched.
var (
	VariantThumbnail = VariantSpec{Name: "thumbnail", Width: 300, Height: 300, Mode: ResizeFill}
	VariantMedium    = VariantSpec{Name: "medium", Width: 800, Mode: ResizeLimit}
	VariantLarge     = VariantSpec{Name: "large", Width: 1920, Mode: ResizeLimit}
)

// DisplayVariants lists every derived rendition in generation order
func DisplayVariants() []VariantSpec {
	return []VariantSpec{VariantThumbnail, VariantMedium, VariantLarge}
}

// Watermarked reports whether the variant carries the text overlay.
// Thumbnails are too small for legible text and stay clean.
func (v VariantSpec) Watermarked() bool {
	return v.Name != VariantThumbnail.Name
}
