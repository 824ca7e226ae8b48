package moderation

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wanderlens/backend/internal/domain/ledger"
	"github.com/wanderlens/backend/internal/domain/member"
	"github.com/wanderlens/backend/internal/domain/photo"
	"github.com/wanderlens/backend/internal/domain/place"
	"github.com/wanderlens/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// MediaStore is the slice of the media store needed for moderation:
// deleting a photo removes its stored bytes first.
type MediaStore interface {
	Delete(ctx context.Context, assetID string) error
}

// Service governs the photo approval lifecycle and the coupled wallet and
// ledger mutations. Approval credits the contributor exactly once; deletion
// of a rewarded photo reverses the credit.
type Service struct {
	photoRepo    photo.Repository
	userRepo     member.Repository
	txRepo       ledger.Repository
	placeRepo    place.Repository
	store        MediaStore
	rewardAmount decimal.Decimal
	logger       *zap.Logger
}

// NewService creates a new moderation Service
func NewService(
	photoRepo photo.Repository,
	userRepo member.Repository,
	txRepo ledger.Repository,
	placeRepo place.Repository,
	store MediaStore,
	rewardAmount decimal.Decimal,
	logger *zap.Logger,
) *Service {
	return &Service{
		photoRepo:    photoRepo,
		userRepo:     userRepo,
		txRepo:       txRepo,
		placeRepo:    placeRepo,
		store:        store,
		rewardAmount: rewardAmount,
		logger:       logger,
	}
}

// Approve transitions a pending photo to approved and performs the coupled
// mutations: wallet credit, reward transaction, place photo count. The photo
// write commits first: a photo stuck at pending with no transaction is
// always recoverable by re-running approval, whereas a transaction with no
// approved photo is not. Re-approving reports a conflict, never a double
// credit.
func (s *Service) Approve(ctx context.Context, photoID, actorID uuid.UUID) (*photo.Photo, error) {
	p, err := s.findPhoto(ctx, photoID)
	if err != nil {
		return nil, err
	}

	if err := p.Approve(actorID); err != nil {
		return nil, err
	}
	if err := s.photoRepo.SaveWithLock(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save photo: %w", err)
	}

	user, err := s.findUser(ctx, p.OwnerID)
	if err != nil {
		return nil, err
	}
	if err := user.CreditWallet(s.rewardAmount); err != nil {
		return nil, err
	}
	if err := s.userRepo.SaveWithLock(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to credit wallet: %w", err)
	}

	tx, err := ledger.NewRewardTransaction(p.OwnerID, p.ID, s.rewardAmount)
	if err != nil {
		return nil, err
	}
	if err := s.txRepo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to record reward transaction: %w", err)
	}

	if p.PlaceID != nil {
		if err := s.incrementPlaceCount(ctx, *p.PlaceID); err != nil {
			return nil, err
		}
	}

	s.logger.Info("photo approved",
		zap.String("photo_id", p.ID.String()),
		zap.String("owner_id", p.OwnerID.String()),
		zap.String("actor_id", actorID.String()),
		zap.String("reward", s.rewardAmount.String()),
	)
	return p, nil
}

// Reject transitions a photo to rejected, storing the reason or a default
// text. There is no ledger effect: a rejected photo was never rewarded.
func (s *Service) Reject(ctx context.Context, photoID uuid.UUID, reason string) (*photo.Photo, error) {
	p, err := s.findPhoto(ctx, photoID)
	if err != nil {
		return nil, err
	}

	if err := p.Reject(reason); err != nil {
		return nil, err
	}
	if err := s.photoRepo.SaveWithLock(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save photo: %w", err)
	}

	s.logger.Info("photo rejected",
		zap.String("photo_id", p.ID.String()),
		zap.String("reason", p.RejectionReason),
	)
	return p, nil
}

// Delete removes a photo's media and record. Permitted for the owner or an
// administrator. When the photo had been rewarded, the wallet credit is
// reversed and a refund transaction appended; the refund keeps the photo id
// as the audit trail even though the photo itself is gone.
func (s *Service) Delete(ctx context.Context, photoID, actorID uuid.UUID, isAdmin bool) error {
	p, err := s.findPhoto(ctx, photoID)
	if err != nil {
		return err
	}
	if !p.CanBeDeletedBy(actorID, isAdmin) {
		return shared.NewDomainError("FORBIDDEN", "Only the owner or an administrator can delete this photo")
	}

	if err := s.store.Delete(ctx, p.AssetID); err != nil {
		return shared.NewDomainError("MEDIA_STORE_FAILURE", fmt.Sprintf("Failed to delete media: %v", err))
	}
	if err := s.photoRepo.Delete(ctx, p.ID); err != nil {
		return fmt.Errorf("failed to delete photo: %w", err)
	}

	if p.RewardGiven {
		if err := s.refundReward(ctx, p); err != nil {
			return err
		}
	}

	s.logger.Info("photo deleted",
		zap.String("photo_id", p.ID.String()),
		zap.String("actor_id", actorID.String()),
		zap.Bool("refunded", p.RewardGiven),
	)
	return nil
}

func (s *Service) refundReward(ctx context.Context, p *photo.Photo) error {
	user, err := s.findUser(ctx, p.OwnerID)
	if err != nil {
		return err
	}
	if err := user.DebitWallet(s.rewardAmount); err != nil {
		return err
	}
	if err := s.userRepo.SaveWithLock(ctx, user); err != nil {
		return fmt.Errorf("failed to reverse wallet credit: %w", err)
	}

	tx, err := ledger.NewRefundTransaction(p.OwnerID, p.ID, s.rewardAmount)
	if err != nil {
		return err
	}
	if err := s.txRepo.Create(ctx, tx); err != nil {
		return fmt.Errorf("failed to record refund transaction: %w", err)
	}
	return nil
}

func (s *Service) incrementPlaceCount(ctx context.Context, placeID uuid.UUID) error {
	pl, err := s.placeRepo.FindByID(ctx, placeID)
	if err != nil {
		return fmt.Errorf("failed to load place: %w", err)
	}
	if pl == nil {
		return shared.NewDomainError("PLACE_NOT_FOUND", "Photo references a place that does not exist")
	}
	pl.IncrementPhotoCount()
	if err := s.placeRepo.SaveWithLock(ctx, pl); err != nil {
		return fmt.Errorf("failed to update place count: %w", err)
	}
	return nil
}

// PendingQueue lists photos awaiting moderation, oldest first so the
// longest-waiting submission is reviewed next.
func (s *Service) PendingQueue(ctx context.Context, page, pageSize int) ([]*photo.Photo, int64, error) {
	status := photo.StatusPending
	return s.photoRepo.FindAll(ctx, photo.Filter{
		Status:   &status,
		OrderBy:  "created_at",
		OrderDir: "asc",
		Page:     page,
		PageSize: pageSize,
	})
}

// Stats aggregates the admin dashboard numbers
type Stats struct {
	Photos             photo.StatusCounts `json:"photos"`
	RewardsGiven       int64              `json:"rewards_given"`
	TotalUsers         int64              `json:"total_users"`
	TotalWalletBalance decimal.Decimal    `json:"total_wallet_balance"`
}

// GetStats computes platform-wide moderation and reward figures
func (s *Service) GetStats(ctx context.Context) (*Stats, error) {
	counts, err := s.photoRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count photos: %w", err)
	}
	rewards, err := s.txRepo.CountByTypeAndStatus(ctx, ledger.TypeReward, ledger.StatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to count rewards: %w", err)
	}
	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	balance, err := s.userRepo.SumWalletBalances(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sum balances: %w", err)
	}

	return &Stats{
		Photos:             counts,
		RewardsGiven:       rewards,
		TotalUsers:         users,
		TotalWalletBalance: balance,
	}, nil
}

func (s *Service) findPhoto(ctx context.Context, id uuid.UUID) (*photo.Photo, error) {
	p, err := s.photoRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, shared.NewDomainError("PHOTO_NOT_FOUND", "Photo not found")
	}
	return p, nil
}

func (s *Service) findUser(ctx context.Context, id uuid.UUID) (*member.User, error) {
	u, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}
	return u, nil
}
