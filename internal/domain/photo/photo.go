package photo

import (
	"time"

	"github.com/google/uuid"
	"github.com/wanderlens/backend/internal/domain/shared"
	"github.com/wanderlens/backend/internal/domain/shared/valueobject"
)

// ApprovalStatus represents the moderation state of a photo
type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "pending"  // Awaiting moderation
	StatusApproved ApprovalStatus = "approved" // Approved and rewarded
	StatusRejected ApprovalStatus = "rejected" // Rejected with a reason
)

// IsValid checks if the status is a valid ApprovalStatus
func (s ApprovalStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// String returns the string representation of ApprovalStatus
func (s ApprovalStatus) String() string {
	return string(s)
}

// IsTerminal returns true if no further moderation transition is defined
func (s ApprovalStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// SourceKind identifies how a photo entered the system
type SourceKind string

const (
	SourceDirectUpload SourceKind = "direct_upload"
	SourceBulkUpload   SourceKind = "bulk_upload"
	SourceGooglePhotos SourceKind = "google_photos"
)

// IsValid checks if the source kind is valid
func (k SourceKind) IsValid() bool {
	switch k {
	case SourceDirectUpload, SourceBulkUpload, SourceGooglePhotos:
		return true
	}
	return false
}

// String returns the string representation of SourceKind
func (k SourceKind) String() string {
	return string(k)
}

// RequiresDedupKey reports whether photos from this source must carry a
// source dedup key. Scraped imports are re-synced repeatedly and are only
// recognizable by the hash of their source locator.
func (k SourceKind) RequiresDedupKey() bool {
	return k == SourceGooglePhotos
}

// FileInfo holds basic metadata about the stored media bytes
type FileInfo struct {
	FileName string `json:"file_name"`
	FileSize int64  `json:"file_size"`
	MimeType string `json:"mime_type"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// Photo is the aggregate root for a contributed travel photo.
// It is created in pending state by ingestion and mutated only by the
// moderation workflow afterwards.
type Photo struct {
	shared.BaseAggregateRoot
	OwnerID uuid.UUID `json:"owner_id"`

	// Media store identity and display URLs
	AssetID     string `json:"asset_id"` // stable media store id, unique
	OriginalURL string `json:"original_url"`

	File FileInfo `json:"file"`

	Source         SourceKind `json:"source"`
	SourceDedupKey *string    `json:"source_dedup_key,omitempty"` // set only for scraped imports

	// Location; denormalized place fields survive later registry changes
	// so display never depends on a live join
	Location  *valueobject.GeoPoint `json:"-"`
	PlaceID   *uuid.UUID            `json:"place_id,omitempty"`
	PlaceName string                `json:"place_name,omitempty"`
	City      string                `json:"city,omitempty"`
	State     string                `json:"state,omitempty"`
	Country   string                `json:"country,omitempty"`

	Exif ExifData `json:"exif_data"`

	Status          ApprovalStatus `json:"approval_status"`
	RejectionReason string         `json:"rejection_reason,omitempty"`
	ApprovedAt      *time.Time     `json:"approved_at,omitempty"`
	ApprovedBy      *uuid.UUID     `json:"approved_by,omitempty"`
	RewardGiven     bool           `json:"reward_given"`

	Views int64 `json:"views"`
	Likes int64 `json:"likes"`
}

// NewPhoto creates a pending photo for the given owner and stored asset
func NewPhoto(ownerID uuid.UUID, assetID, originalURL string, file FileInfo, source SourceKind) (*Photo, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner ID cannot be empty")
	}
	if assetID == "" {
		return nil, shared.NewDomainError("INVALID_ASSET", "Asset ID cannot be empty")
	}
	if !source.IsValid() {
		return nil, shared.NewDomainError("INVALID_SOURCE", "Photo source is not valid")
	}

	return &Photo{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OwnerID:           ownerID,
		AssetID:           assetID,
		OriginalURL:       originalURL,
		File:              file,
		Source:            source,
		Status:            StatusPending,
	}, nil
}

// SetDedupKey attaches the source dedup key used to recognize re-imports
func (p *Photo) SetDedupKey(key string) error {
	if key == "" {
		return shared.NewDomainError("INVALID_DEDUP_KEY", "Dedup key cannot be empty")
	}
	p.SourceDedupKey = &key
	return nil
}

// SetLocation records the photo coordinates
func (p *Photo) SetLocation(point valueobject.GeoPoint) {
	p.Location = &point
}

// AssignPlace links the photo to a resolved place and denormalizes the
// display fields onto the photo itself
func (p *Photo) AssignPlace(placeID uuid.UUID, placeName, city, state, country string) {
	p.PlaceID = &placeID
	p.PlaceName = placeName
	p.City = city
	p.State = state
	p.Country = country
}

// CanApprove returns true if the photo is actionable for approval
func (p *Photo) CanApprove() bool {
	return p.Status == StatusPending
}

// Approve transitions the photo to approved and marks the reward as given.
// Re-approving is a conflict, not a no-op: approval credits the owner's
// wallet and must never run twice for the same photo.
func (p *Photo) Approve(actorID uuid.UUID) error {
	if p.Status == StatusApproved {
		return shared.NewDomainError("ALREADY_APPROVED", "Photo is already approved")
	}
	if p.Status == StatusRejected {
		return shared.NewDomainError("NOT_ACTIONABLE", "Rejected photos cannot be approved")
	}

	now := time.Now()
	p.Status = StatusApproved
	p.ApprovedAt = &now
	p.ApprovedBy = &actorID
	p.RewardGiven = true
	p.UpdatedAt = now
	return nil
}

// DefaultRejectionReason is stored when a moderator rejects without a reason
const DefaultRejectionReason = "Does not meet quality standards"

// Reject transitions the photo to rejected, storing the given reason or a
// default text when none is supplied. A rejected photo was never rewarded,
// so there is no ledger effect.
func (p *Photo) Reject(reason string) error {
	if p.Status == StatusRejected {
		return shared.NewDomainError("ALREADY_REJECTED", "Photo is already rejected")
	}
	if p.Status == StatusApproved {
		return shared.NewDomainError("NOT_ACTIONABLE", "Approved photos cannot be rejected")
	}

	if reason == "" {
		reason = DefaultRejectionReason
	}
	p.Status = StatusRejected
	p.RejectionReason = reason
	p.Touch()
	return nil
}

// CanBeDeletedBy reports whether the given actor may delete this photo
func (p *Photo) CanBeDeletedBy(actorID uuid.UUID, isAdmin bool) bool {
	return isAdmin || p.OwnerID == actorID
}

// RecordView increments the view counter
func (p *Photo) RecordView() {
	p.Views++
}

// HasLocation reports whether the photo carries coordinates
func (p *Photo) HasLocation() bool {
	return p.Location != nil
}
