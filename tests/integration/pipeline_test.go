package integration

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wanderlens/backend/internal/application/ingestion"
	"github.com/wanderlens/backend/internal/application/moderation"
	"github.com/wanderlens/backend/internal/application/places"
	"github.com/wanderlens/backend/internal/application/wallet"
	"github.com/wanderlens/backend/internal/domain/ledger"
	"github.com/wanderlens/backend/internal/domain/member"
	"github.com/wanderlens/backend/internal/domain/photo"
	"github.com/wanderlens/backend/internal/domain/shared"
	"github.com/wanderlens/backend/internal/domain/shared/valueobject"
	"github.com/wanderlens/backend/internal/infrastructure/exif"
	"github.com/wanderlens/backend/internal/infrastructure/persistence"
	"github.com/wanderlens/backend/internal/infrastructure/storage"
)

// fixedGeoResolver returns the same resolved location for every lookup so
// tests do not reach an external geocoding API.
type fixedGeoResolver struct {
	loc places.ResolvedLocation
}

func (r fixedGeoResolver) ReverseGeocode(_ context.Context, _ valueobject.GeoPoint) (places.ResolvedLocation, error) {
	return r.loc, nil
}

func (r fixedGeoResolver) ForwardGeocode(_ context.Context, _ string) (places.ResolvedLocation, error) {
	return r.loc, nil
}

type pipelineEnv struct {
	photoRepo  *persistence.GormPhotoRepository
	userRepo   *persistence.GormUserRepository
	txRepo     *persistence.GormTransactionRepository
	placeRepo  *persistence.GormPlaceRepository
	ingest     *ingestion.Service
	moderation *moderation.Service
	wallet     *wallet.Service
}

func newPipelineEnv(t *testing.T, tdb *TestDB) *pipelineEnv {
	t.Helper()

	logger := zap.NewNop()
	photoRepo := persistence.NewGormPhotoRepository(tdb.DB)
	userRepo := persistence.NewGormUserRepository(tdb.DB)
	txRepo := persistence.NewGormTransactionRepository(tdb.DB)
	placeRepo := persistence.NewGormPlaceRepository(tdb.DB)

	store := storage.NewMemoryMediaStore()
	registry := places.NewRegistryService(placeRepo, logger)
	geo := fixedGeoResolver{loc: places.ResolvedLocation{
		PlaceName: "Cubbon Park",
		City:      "Bengaluru",
		State:     "Karnataka",
		Country:   "India",
	}}

	return &pipelineEnv{
		photoRepo:  photoRepo,
		userRepo:   userRepo,
		txRepo:     txRepo,
		placeRepo:  placeRepo,
		ingest:     ingestion.NewService(photoRepo, store, geo, exif.NewExtractor(), registry, logger),
		moderation: moderation.NewService(photoRepo, userRepo, txRepo, placeRepo, store, decimal.NewFromInt(10), logger),
		wallet:     wallet.NewService(userRepo, txRepo, logger),
	}
}

func createUser(t *testing.T, env *pipelineEnv, name, email string) *member.User {
	t.Helper()
	u, err := member.NewUser(name, email)
	require.NoError(t, err)
	require.NoError(t, env.userRepo.Save(context.Background(), u))
	return u
}

func TestPhotoPipeline(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewTestDB(t)
	env := newPipelineEnv(t, tdb)
	ctx := context.Background()

	owner := createUser(t, env, "Asha", "asha@example.com")
	admin := createUser(t, env, "Admin", "admin@example.com")

	// Plain bytes carry no EXIF; extraction degrades and the manual
	// location drives place resolution.
	location, err := valueobject.NewGeoPoint(12.9763, 77.5929)
	require.NoError(t, err)
	res, err := env.ingest.Ingest(ctx, ingestion.IngestRequest{
		OwnerID:        owner.ID,
		Data:           []byte("not really a jpeg but enough for the pipeline"),
		FileName:       "cubbon.jpg",
		MimeType:       "image/jpeg",
		Source:         photo.SourceDirectUpload,
		ManualLocation: &location,
	})
	require.NoError(t, err)
	require.False(t, res.Duplicate)
	require.NotNil(t, res.Photo)

	stored, err := env.photoRepo.FindByID(ctx, res.Photo.ID)
	require.NoError(t, err)
	assert.Equal(t, photo.StatusPending, stored.Status)
	assert.True(t, stored.HasLocation())
	assert.Equal(t, "Cubbon Park", stored.PlaceName)
	assert.Equal(t, "Bengaluru", stored.City)
	require.NotNil(t, stored.PlaceID)

	// Approval credits the owner's wallet and writes a reward transaction.
	approved, err := env.moderation.Approve(ctx, stored.ID, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, photo.StatusApproved, approved.Status)
	assert.True(t, approved.RewardGiven)

	summary, err := env.wallet.GetSummary(ctx, owner.ID, ledger.Filter{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.True(t, summary.Balance.Equal(decimal.NewFromInt(10)), "balance %s", summary.Balance)
	require.Len(t, summary.Transactions, 1)
	assert.Equal(t, ledger.TypeReward, summary.Transactions[0].Type)

	// The place photo count reflects the approved photo.
	place, err := env.placeRepo.FindByID(ctx, *stored.PlaceID)
	require.NoError(t, err)
	require.NotNil(t, place)
	assert.Equal(t, int64(1), place.PhotoCount)

	// Wallet and ledger agree.
	ok, err := env.wallet.VerifyConservation(ctx, owner.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	// Re-approving the same photo is rejected.
	_, err = env.moderation.Approve(ctx, stored.ID, admin.ID)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "ALREADY_APPROVED", derr.Code)
}

func TestNearbyPhotosShareOnePlace(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewTestDB(t)
	env := newPipelineEnv(t, tdb)
	ctx := context.Background()

	owner := createUser(t, env, "Kiran", "kiran@example.com")
	admin := createUser(t, env, "Admin", "curator@example.com")

	// Two shots a few hundred meters apart resolve to the same place
	// instead of minting a second one.
	first, err := valueobject.NewGeoPoint(12.9763, 77.5929)
	require.NoError(t, err)
	second, err := valueobject.NewGeoPoint(12.9780, 77.5950)
	require.NoError(t, err)

	resA, err := env.ingest.Ingest(ctx, ingestion.IngestRequest{
		OwnerID:        owner.ID,
		Data:           []byte("bandstand from the east"),
		FileName:       "bandstand-east.jpg",
		MimeType:       "image/jpeg",
		Source:         photo.SourceDirectUpload,
		ManualLocation: &first,
	})
	require.NoError(t, err)
	resB, err := env.ingest.Ingest(ctx, ingestion.IngestRequest{
		OwnerID:        owner.ID,
		Data:           []byte("bandstand from the west"),
		FileName:       "bandstand-west.jpg",
		MimeType:       "image/jpeg",
		Source:         photo.SourceDirectUpload,
		ManualLocation: &second,
	})
	require.NoError(t, err)

	photoA, err := env.photoRepo.FindByID(ctx, resA.Photo.ID)
	require.NoError(t, err)
	photoB, err := env.photoRepo.FindByID(ctx, resB.Photo.ID)
	require.NoError(t, err)
	require.NotNil(t, photoA.PlaceID)
	require.NotNil(t, photoB.PlaceID)
	assert.Equal(t, *photoA.PlaceID, *photoB.PlaceID)

	_, err = env.moderation.Approve(ctx, photoA.ID, admin.ID)
	require.NoError(t, err)
	_, err = env.moderation.Approve(ctx, photoB.ID, admin.ID)
	require.NoError(t, err)

	place, err := env.placeRepo.FindByID(ctx, *photoA.PlaceID)
	require.NoError(t, err)
	require.NotNil(t, place)
	assert.Equal(t, int64(2), place.PhotoCount)
}

func TestAlbumImportDeduplication(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewTestDB(t)
	env := newPipelineEnv(t, tdb)
	ctx := context.Background()

	owner := createUser(t, env, "Ravi", "ravi@example.com")

	req := ingestion.IngestRequest{
		OwnerID:        owner.ID,
		Data:           []byte("album item bytes"),
		FileName:       "item.jpg",
		MimeType:       "image/jpeg",
		Source:         photo.SourceGooglePhotos,
		SourceDedupKey: "0f343b0931126a20f133d67c2b018a3b",
	}

	first, err := env.ingest.Ingest(ctx, req)
	require.NoError(t, err)
	assert.False(t, first.Duplicate)

	// Importing the same source item again short-circuits on the dedup key.
	second, err := env.ingest.Ingest(ctx, req)
	require.NoError(t, err)
	assert.True(t, second.Duplicate)
	assert.Equal(t, first.Photo.ID, second.Photo.ID)

	_, total, err := env.photoRepo.FindAll(ctx, photo.Filter{OwnerID: &owner.ID, Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestRedemptionAgainstEarnedRewards(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewTestDB(t)
	env := newPipelineEnv(t, tdb)
	ctx := context.Background()

	owner := createUser(t, env, "Meera", "meera@example.com")
	admin := createUser(t, env, "Admin", "mod@example.com")

	res, err := env.ingest.Ingest(ctx, ingestion.IngestRequest{
		OwnerID:  owner.ID,
		Data:     []byte("reward me"),
		FileName: "sunset.jpg",
		MimeType: "image/jpeg",
		Source:   photo.SourceDirectUpload,
	})
	require.NoError(t, err)

	_, err = env.moderation.Approve(ctx, res.Photo.ID, admin.ID)
	require.NoError(t, err)

	tx, err := env.wallet.Redeem(ctx, owner.ID, decimal.NewFromInt(4), "Coffee voucher")
	require.NoError(t, err)
	assert.Equal(t, ledger.TypeRedemption, tx.Type)
	assert.True(t, tx.Amount.Equal(decimal.NewFromInt(-4)))

	summary, err := env.wallet.GetSummary(ctx, owner.ID, ledger.Filter{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.True(t, summary.Balance.Equal(decimal.NewFromInt(6)), "balance %s", summary.Balance)

	// Redeeming more than the balance fails and leaves the ledger intact.
	_, err = env.wallet.Redeem(ctx, owner.ID, decimal.NewFromInt(100), "Too much")
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "INSUFFICIENT_BALANCE", derr.Code)

	ok, err := env.wallet.VerifyConservation(ctx, owner.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}
