package place

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wanderlens/backend/internal/domain/shared/valueobject"
)

func TestNewPlace(t *testing.T) {
	loc, _ := valueobject.NewGeoPoint(12.9507, 77.5848)
	p, err := NewPlace("  Lalbagh Botanical Garden ", loc, "Bengaluru", "Karnataka", "India", "560004")

	assert.NoError(t, err)
	assert.Equal(t, "Lalbagh Botanical Garden", p.Name)
	assert.Equal(t, int64(0), p.PhotoCount)
}

func TestNewPlace_EmptyName(t *testing.T) {
	loc, _ := valueobject.NewGeoPoint(0, 0)
	_, err := NewPlace("   ", loc, "", "", "", "")
	assert.Error(t, err)
}

func TestPlace_Matches_WithinThreshold(t *testing.T) {
	loc, _ := valueobject.NewGeoPoint(12.9716, 77.5946)
	p, _ := NewPlace("Cubbon Park", loc, "Bengaluru", "Karnataka", "India", "")

	// Roughly 200 m away
	near, _ := valueobject.NewGeoPoint(12.9716, 77.5964)
	assert.True(t, p.Matches("Cubbon Park", near))

	// Same name but roughly 5 km away
	far, _ := valueobject.NewGeoPoint(12.9716, 77.6406)
	assert.False(t, p.Matches("Cubbon Park", far))
}

func TestPlace_Matches_NameMismatch(t *testing.T) {
	loc, _ := valueobject.NewGeoPoint(12.9716, 77.5946)
	p, _ := NewPlace("Cubbon Park", loc, "Bengaluru", "Karnataka", "India", "")

	assert.False(t, p.Matches("Lalbagh", loc))
}

func TestPlace_IncrementPhotoCount(t *testing.T) {
	loc, _ := valueobject.NewGeoPoint(12.9716, 77.5946)
	p, _ := NewPlace("Cubbon Park", loc, "", "", "", "")

	p.IncrementPhotoCount()
	p.IncrementPhotoCount()
	assert.Equal(t, int64(2), p.PhotoCount)
}
