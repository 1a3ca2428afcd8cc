package media

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"augeo-server/services/admin-api/internal/config"
	"augeo-server/services/admin-api/internal/infrastructure/metrics"
	"augeo-server/services/admin-api/internal/utils/platformerrors"
)

// Repository defines the metadata store operations needed by the service.
type Repository interface {
	Create(ctx context.Context, asset *Asset) error
	GetByID(ctx context.Context, id uuid.UUID) (*Asset, error)
	ListByItem(ctx context.Context, itemID uuid.UUID) ([]Asset, error)
	// UpdateStatusIf transitions id from expected to next. It fails with a
	// conflict when the current status no longer matches expected, so
	// concurrent transitions resolve to exactly one winner.
	UpdateStatusIf(ctx context.Context, id uuid.UUID, expected, next string) (*Asset, error)
	SetScanResult(ctx context.Context, id uuid.UUID, expected, next, thumbnailPath string) (*Asset, error)
	Reorder(ctx context.Context, itemID uuid.UUID, ordered []uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	SumSizeByItem(ctx context.Context, itemID uuid.UUID) (int64, error)
}

// ItemRepository resolves parent auction items.
type ItemRepository interface {
	GetByIDAndEvent(ctx context.Context, itemID, eventID uuid.UUID) (*AuctionItem, error)
}

// BlobGrantor issues scoped, time-boxed access to blob storage objects.
type BlobGrantor interface {
	GrantRead(ctx context.Context, blobName string, ttl time.Duration) (string, error)
	GrantWrite(ctx context.Context, blobName, mimeType string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, blobName string) error
}

// JobQueue publishes asynchronous processing jobs after a confirmed upload.
type JobQueue interface {
	PublishScan(ctx context.Context, job ScanJob) error
	PublishThumbnail(ctx context.Context, job ThumbnailJob) error
}

// Service orchestrates the upload session workflow, reordering and deletion.
type Service struct {
	cfg     *config.Config
	repo    Repository
	items   ItemRepository
	grantor BlobGrantor
	queue   JobQueue
	log     zerolog.Logger
}

func NewService(cfg *config.Config, repo Repository, items ItemRepository, grantor BlobGrantor, queue JobQueue, log zerolog.Logger) *Service {
	return &Service{
		cfg:     cfg,
		repo:    repo,
		items:   items,
		grantor: grantor,
		queue:   queue,
		log:     log.With().Str("component", "media-service").Logger(),
	}
}

// RequestUpload validates limits, persists a pending metadata record and
// returns a write-scoped grant for its blob name.
func (s *Service) RequestUpload(ctx context.Context, eventID, itemID uuid.UUID, req UploadRequest) (*UploadGrant, error) {
	if _, err := s.items.GetByIDAndEvent(ctx, itemID, eventID); err != nil {
		return nil, err
	}

	if req.FileSize <= 0 {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation,
			"file_size must be a positive number of bytes",
			nil,
			"3f1c9a7e-2d54-4b86-9e0f-8c1a5b2d7e43",
		)
	}
	// Size exactly equal to the ceiling is allowed.
	if req.FileSize > s.cfg.MaxFileBytes {
		metrics.RecordUpload(req.MediaType, "rejected_size")
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeSizeLimitExceeded,
			fmt.Sprintf("file size %d bytes exceeds the per-file limit of %d bytes", req.FileSize, s.cfg.MaxFileBytes),
			nil,
			"8a4d2f61-7c3b-4e95-b1a8-6d9e0c5f2a17",
		)
	}

	// Best-effort aggregate check: read-then-decide without a transactional
	// lock spanning the grant call. Two concurrent requests may both pass;
	// the final size is only authoritative once uploads are confirmed.
	currentTotal, err := s.repo.SumSizeByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if currentTotal+req.FileSize > s.cfg.MaxTotalBytes {
		metrics.RecordUpload(req.MediaType, "rejected_size")
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeSizeLimitExceeded,
			fmt.Sprintf("total media size would exceed the %d byte limit for this item", s.cfg.MaxTotalBytes),
			nil,
			"b7e5c3d9-1a82-4f6e-8b0d-4c7a9e2f5d61",
		)
	}

	allowed := s.cfg.AllowedTypes(req.MediaType)
	if allowed == nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation,
			fmt.Sprintf("invalid media type %q", req.MediaType),
			nil,
			"5d8b1e4a-9f27-4c63-a5e1-2b8d6f0c9a35",
		)
	}
	if !mimetype.EqualsAny(req.MimeType, allowed...) {
		metrics.RecordUpload(req.MediaType, "rejected_type")
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeUnsupportedType,
			fmt.Sprintf("file type %s is not allowed for %s media", req.MimeType, req.MediaType),
			nil,
			"e2a6d9f4-3c18-4b75-9d2e-7f5a1c8b3e60",
		)
	}

	id := uuid.New()
	fileName := path.Base(req.FileName)
	blobName := fmt.Sprintf("events/%s/items/%s/%s/%s", eventID, itemID, id, fileName)

	asset := &Asset{
		ID:            id,
		AuctionItemID: itemID,
		MediaType:     req.MediaType,
		FileName:      fileName,
		MimeType:      req.MimeType,
		FileSize:      req.FileSize,
		BlobName:      blobName,
		Status:        StatusPending,
	}
	if err := s.repo.Create(ctx, asset); err != nil {
		return nil, err
	}

	// If the grantor fails past this point the pending row stays behind.
	// That is accepted garbage: it never confirms, never counts against the
	// listing, and carries no bytes.
	uploadURL, err := s.grantor.GrantWrite(ctx, blobName, req.MimeType, s.cfg.WriteGrantTTL)
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeStorageUnavailable,
			"blob storage is unavailable; try again later",
			err,
			"c9f2e7b5-6d41-4a38-8c5f-0e3b9d7a2f84",
		)
	}

	metrics.RecordUpload(req.MediaType, "requested")
	s.log.Info().
		Str("event_id", eventID.String()).
		Str("item_id", itemID.String()).
		Str("media_id", id.String()).
		Int64("file_size", req.FileSize).
		Msg("issued upload grant")

	return &UploadGrant{
		AssetID:   id,
		UploadURL: uploadURL,
		ExpiresAt: time.Now().UTC().Add(s.cfg.WriteGrantTTL),
	}, nil
}

// ConfirmUpload transitions a pending asset to uploaded and enqueues
// asynchronous scanning. Of two concurrent confirmations exactly one wins.
func (s *Service) ConfirmUpload(ctx context.Context, eventID, itemID, mediaID uuid.UUID) (*Asset, error) {
	if _, err := s.items.GetByIDAndEvent(ctx, itemID, eventID); err != nil {
		return nil, err
	}

	asset, err := s.repo.UpdateStatusIf(ctx, mediaID, StatusPending, StatusUploaded)
	if err != nil {
		return nil, err
	}

	// Fire-and-forget: scan and thumbnail jobs never block or fail the
	// confirmation that already committed.
	if err := s.queue.PublishScan(ctx, ScanJob{AssetID: asset.ID, BlobName: asset.BlobName}); err != nil {
		s.log.Error().Err(err).Str("media_id", asset.ID.String()).Msg("failed to enqueue scan job")
	}
	if asset.MediaType == TypeImage {
		job := ThumbnailJob{
			AssetID:   asset.ID,
			BlobName:  asset.BlobName,
			Thumbnail: thumbnailPathFor(asset.BlobName),
		}
		if err := s.queue.PublishThumbnail(ctx, job); err != nil {
			s.log.Error().Err(err).Str("media_id", asset.ID.String()).Msg("failed to enqueue thumbnail job")
		}
	}

	metrics.RecordUpload(asset.MediaType, "confirmed")
	return asset, nil
}

// CompleteScan settles an uploaded asset into scanned or quarantined.
//
// Duplicate callbacks repeating the terminal outcome are ignored and return
// the current row; a callback that would flip a terminal verdict fails as a
// conflict so a flapping scanner cannot rewrite history.
func (s *Service) CompleteScan(ctx context.Context, mediaID uuid.UUID, passed bool, details string) (*Asset, error) {
	asset, err := s.repo.GetByID(ctx, mediaID)
	if err != nil {
		return nil, err
	}

	next := StatusQuarantined
	if passed {
		next = StatusScanned
	}

	if asset.Status == StatusScanned || asset.Status == StatusQuarantined {
		if asset.Status == next {
			return asset, nil
		}
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeInvalidState,
			fmt.Sprintf("scan result conflict: media is already %s", asset.Status),
			nil,
			"a1d7f3c8-5e92-4b06-9f4a-8c2e6d0b7a53",
		)
	}

	thumbnail := ""
	if passed && asset.MediaType == TypeImage {
		thumbnail = thumbnailPathFor(asset.BlobName)
	}

	updated, err := s.repo.SetScanResult(ctx, mediaID, StatusUploaded, next, thumbnail)
	if err != nil {
		return nil, err
	}

	if passed {
		metrics.RecordScanResult("clean")
		s.log.Info().Str("media_id", mediaID.String()).Msg("media approved after scan")
	} else {
		metrics.RecordScanResult("infected")
		s.log.Warn().Str("media_id", mediaID.String()).Str("details", details).Msg("media quarantined after scan")
	}
	return updated, nil
}

// List returns the item's assets ordered by display_order. Draft items are
// restricted to authenticated callers.
func (s *Service) List(ctx context.Context, eventID, itemID uuid.UUID, authenticated bool) ([]Asset, error) {
	item, err := s.items.GetByIDAndEvent(ctx, itemID, eventID)
	if err != nil {
		return nil, err
	}
	if item.IsDraft() && !authenticated {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeUnauthorized,
			"authentication required to view media for a draft item",
			nil,
			"6b3e9d1f-8a47-4c25-b0e6-5d9f2a8c4e71",
		)
	}
	return s.repo.ListByItem(ctx, itemID)
}

// Reorder applies a client-supplied total order over the item's assets.
// The id list must be exactly the current sibling set: no duplicates, no
// missing ids, no foreign ids. All-or-nothing.
func (s *Service) Reorder(ctx context.Context, eventID, itemID uuid.UUID, ordered []uuid.UUID) ([]Asset, error) {
	if _, err := s.items.GetByIDAndEvent(ctx, itemID, eventID); err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]struct{}, len(ordered))
	for _, id := range ordered {
		if _, dup := seen[id]; dup {
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerDomain,
				platformerrors.ErrorTypeValidation,
				fmt.Sprintf("duplicate media id %s in reorder list", id),
				nil,
				"9c5a2e8d-4f16-4b73-a8d0-1e6b3f9c5d27",
			)
		}
		seen[id] = struct{}{}
	}

	current, err := s.repo.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if len(current) != len(ordered) {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation,
			fmt.Sprintf("reorder list has %d ids but the item has %d media records; all ids must be included", len(ordered), len(current)),
			nil,
			"d4f8b2a6-7e31-4c59-9b1d-0a5c8e3f6d92",
		)
	}
	for _, asset := range current {
		if _, ok := seen[asset.ID]; !ok {
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerDomain,
				platformerrors.ErrorTypeValidation,
				fmt.Sprintf("media id %s is missing from the reorder list", asset.ID),
				nil,
				"2e7c5f9b-3d84-4a16-8e2b-6f0d9a4c7b38",
			)
		}
	}

	if err := s.repo.Reorder(ctx, itemID, ordered); err != nil {
		return nil, err
	}
	return s.repo.ListByItem(ctx, itemID)
}

// Delete removes the metadata row after a best-effort blob deletion. A blob
// deletion failure is logged and swallowed; the row removal is the
// authoritative success signal.
func (s *Service) Delete(ctx context.Context, eventID, itemID, mediaID uuid.UUID) error {
	if _, err := s.items.GetByIDAndEvent(ctx, itemID, eventID); err != nil {
		return err
	}

	asset, err := s.repo.GetByID(ctx, mediaID)
	if err != nil {
		return err
	}

	if err := s.grantor.Delete(ctx, asset.BlobName); err != nil {
		s.log.Error().Err(err).Str("blob_name", asset.BlobName).Msg("failed to delete blob; removing metadata anyway")
	}
	if asset.ThumbnailPath != "" {
		if err := s.grantor.Delete(ctx, asset.ThumbnailPath); err != nil {
			s.log.Error().Err(err).Str("blob_name", asset.ThumbnailPath).Msg("failed to delete thumbnail blob")
		}
	}

	return s.repo.Delete(ctx, mediaID)
}

// ReadGrants mints best-effort signed read URLs for scanned assets, keyed by
// asset id. A grantor failure skips the asset rather than failing the listing.
func (s *Service) ReadGrants(ctx context.Context, assets []Asset) map[uuid.UUID]string {
	urls := make(map[uuid.UUID]string, len(assets))
	for _, asset := range assets {
		if asset.Status != StatusScanned {
			continue
		}
		url, err := s.grantor.GrantRead(ctx, asset.BlobName, s.cfg.ReadGrantTTL)
		if err != nil {
			s.log.Warn().Err(err).Str("media_id", asset.ID.String()).Msg("failed to mint read grant")
			continue
		}
		urls[asset.ID] = url
	}
	return urls
}

func thumbnailPathFor(blobName string) string {
	return "thumbnails/" + blobName
}
