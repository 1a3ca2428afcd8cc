package media_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"augeo-server/services/admin-api/internal/config"
	"augeo-server/services/admin-api/internal/domain/media"
	"augeo-server/services/admin-api/internal/utils/platformerrors"
)

// fakeRepo is an in-memory metadata store with the same compare-and-swap
// semantics as the gorm implementation.
type fakeRepo struct {
	mu     sync.Mutex
	assets map[uuid.UUID]*media.Asset
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{assets: make(map[uuid.UUID]*media.Asset)}
}

func (r *fakeRepo) Create(_ context.Context, asset *media.Asset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *asset
	cp.CreatedAt = time.Now().UTC()
	r.assets[asset.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*media.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	asset, ok := r.assets[id]
	if !ok {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeNotFound, fmt.Sprintf("media %s not found", id), nil, "test-not-found")
	}
	cp := *asset
	return &cp, nil
}

func (r *fakeRepo) ListByItem(_ context.Context, itemID uuid.UUID) ([]media.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []media.Asset
	for _, asset := range r.assets {
		if asset.AuctionItemID == itemID {
			out = append(out, *asset)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *fakeRepo) UpdateStatusIf(ctx context.Context, id uuid.UUID, expected, next string) (*media.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	asset, ok := r.assets[id]
	if !ok {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeNotFound, fmt.Sprintf("media %s not found", id), nil, "test-not-found")
	}
	if asset.Status != expected {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeInvalidState,
			fmt.Sprintf("status conflict: media is %s, expected %s", asset.Status, expected), nil, "test-conflict")
	}
	asset.Status = next
	cp := *asset
	return &cp, nil
}

func (r *fakeRepo) SetScanResult(ctx context.Context, id uuid.UUID, expected, next, thumbnailPath string) (*media.Asset, error) {
	asset, err := r.UpdateStatusIf(ctx, id, expected, next)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assets[id].ThumbnailPath = thumbnailPath
	asset.ThumbnailPath = thumbnailPath
	return asset, nil
}

func (r *fakeRepo) Reorder(ctx context.Context, itemID uuid.UUID, ordered []uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for idx, id := range ordered {
		asset, ok := r.assets[id]
		if !ok || asset.AuctionItemID != itemID {
			return platformerrors.NewError(ctx, platformerrors.LayerRepository,
				platformerrors.ErrorTypeValidation,
				fmt.Sprintf("media %s does not belong to item %s", id, itemID), nil, "test-foreign")
		}
		asset.DisplayOrder = idx
	}
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.assets[id]; !ok {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeNotFound, fmt.Sprintf("media %s not found", id), nil, "test-not-found")
	}
	delete(r.assets, id)
	return nil
}

func (r *fakeRepo) SumSizeByItem(_ context.Context, itemID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total int64
	for _, asset := range r.assets {
		if asset.AuctionItemID == itemID {
			total += asset.FileSize
		}
	}
	return total, nil
}

type fakeItems struct {
	items map[uuid.UUID]media.AuctionItem
}

func (f *fakeItems) GetByIDAndEvent(ctx context.Context, itemID, eventID uuid.UUID) (*media.AuctionItem, error) {
	item, ok := f.items[itemID]
	if !ok || item.EventID != eventID {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeNotFound,
			fmt.Sprintf("auction item %s not found in this event", itemID), nil, "test-item-missing")
	}
	return &item, nil
}

type fakeGrantor struct {
	mu          sync.Mutex
	writeGrants []string
	readGrants  []string
	deleted     []string
	writeErr    error
	deleteErr   error
}

func (g *fakeGrantor) GrantRead(_ context.Context, blobName string, _ time.Duration) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.readGrants = append(g.readGrants, blobName)
	return "https://blobs.test/" + blobName + "?sig=read", nil
}

func (g *fakeGrantor) GrantWrite(_ context.Context, blobName, _ string, _ time.Duration) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.writeErr != nil {
		return "", g.writeErr
	}
	g.writeGrants = append(g.writeGrants, blobName)
	return "https://blobs.test/" + blobName + "?sig=write", nil
}

func (g *fakeGrantor) Delete(_ context.Context, blobName string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.deleteErr != nil {
		return g.deleteErr
	}
	g.deleted = append(g.deleted, blobName)
	return nil
}

type fakeQueue struct {
	mu         sync.Mutex
	scans      []media.ScanJob
	thumbnails []media.ThumbnailJob
}

func (q *fakeQueue) PublishScan(_ context.Context, job media.ScanJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.scans = append(q.scans, job)
	return nil
}

func (q *fakeQueue) PublishThumbnail(_ context.Context, job media.ThumbnailJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.thumbnails = append(q.thumbnails, job)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		MaxFileBytes:         10 * 1024 * 1024,
		MaxTotalBytes:        50 * 1024 * 1024,
		ReadGrantTTL:         24 * time.Hour,
		WriteGrantTTL:        time.Hour,
		AllowedImageTypes:    []string{"image/jpeg", "image/png", "image/webp", "image/gif"},
		AllowedVideoTypes:    []string{"video/mp4", "video/quicktime"},
		AllowedDocumentTypes: []string{"application/pdf"},
	}
}

type fixture struct {
	service *media.Service
	repo    *fakeRepo
	grantor *fakeGrantor
	queue   *fakeQueue
	eventID uuid.UUID
	itemID  uuid.UUID
}

func newFixture(t *testing.T, itemStatus string) *fixture {
	t.Helper()
	eventID := uuid.New()
	itemID := uuid.New()
	repo := newFakeRepo()
	grantor := &fakeGrantor{}
	queue := &fakeQueue{}
	items := &fakeItems{items: map[uuid.UUID]media.AuctionItem{
		itemID: {ID: itemID, EventID: eventID, Status: itemStatus},
	}}
	service := media.NewService(testConfig(), repo, items, grantor, queue, zerolog.Nop())
	return &fixture{
		service: service,
		repo:    repo,
		grantor: grantor,
		queue:   queue,
		eventID: eventID,
		itemID:  itemID,
	}
}

func errorType(t *testing.T, err error) platformerrors.ErrorType {
	t.Helper()
	var perr *platformerrors.PlatformError
	if !errors.As(err, &perr) {
		t.Fatalf("expected a platform error, got %v", err)
	}
	return perr.GetErrorType()
}

func TestRequestUploadIssuesGrantForExactBlob(t *testing.T) {
	f := newFixture(t, "published")
	ctx := context.Background()

	grant, err := f.service.RequestUpload(ctx, f.eventID, f.itemID, media.UploadRequest{
		FileName:  "photo.png",
		MimeType:  "image/png",
		FileSize:  500_000,
		MediaType: media.TypeImage,
	})
	if err != nil {
		t.Fatalf("RequestUpload: %v", err)
	}
	if grant.UploadURL == "" {
		t.Fatal("expected a non-empty upload URL")
	}

	wantBlob := fmt.Sprintf("events/%s/items/%s/%s/photo.png", f.eventID, f.itemID, grant.AssetID)
	if len(f.grantor.writeGrants) != 1 || f.grantor.writeGrants[0] != wantBlob {
		t.Fatalf("write grant scoped to %v, want exactly [%s]", f.grantor.writeGrants, wantBlob)
	}

	asset, err := f.repo.GetByID(ctx, grant.AssetID)
	if err != nil {
		t.Fatalf("GetByID after request: %v", err)
	}
	if asset.Status != media.StatusPending {
		t.Fatalf("new asset status = %s, want %s", asset.Status, media.StatusPending)
	}
	if asset.BlobName != wantBlob {
		t.Fatalf("asset blob name = %s, want %s", asset.BlobName, wantBlob)
	}
}

func TestRequestUploadRejectsOversizedFile(t *testing.T) {
	f := newFixture(t, "published")

	_, err := f.service.RequestUpload(context.Background(), f.eventID, f.itemID, media.UploadRequest{
		FileName:  "huge.png",
		MimeType:  "image/png",
		FileSize:  10*1024*1024 + 1,
		MediaType: media.TypeImage,
	})
	if got := errorType(t, err); got != platformerrors.ErrorTypeSizeLimitExceeded {
		t.Fatalf("error type = %s, want %s", got, platformerrors.ErrorTypeSizeLimitExceeded)
	}

	assets, _ := f.repo.ListByItem(context.Background(), f.itemID)
	if len(assets) != 0 {
		t.Fatalf("rejected request left %d rows behind", len(assets))
	}
}

func TestRequestUploadAllowsExactCeiling(t *testing.T) {
	f := newFixture(t, "published")

	_, err := f.service.RequestUpload(context.Background(), f.eventID, f.itemID, media.UploadRequest{
		FileName:  "exact.png",
		MimeType:  "image/png",
		FileSize:  10 * 1024 * 1024,
		MediaType: media.TypeImage,
	})
	if err != nil {
		t.Fatalf("size equal to the ceiling must pass: %v", err)
	}
}

func TestRequestUploadEnforcesAggregateLimit(t *testing.T) {
	f := newFixture(t, "published")
	ctx := context.Background()

	// Five files at the per-file maximum fill the 50 MiB aggregate exactly.
	for i := 0; i < 5; i++ {
		_, err := f.service.RequestUpload(ctx, f.eventID, f.itemID, media.UploadRequest{
			FileName:  fmt.Sprintf("part-%d.png", i),
			MimeType:  "image/png",
			FileSize:  10 * 1024 * 1024,
			MediaType: media.TypeImage,
		})
		if err != nil {
			t.Fatalf("upload %d: %v", i, err)
		}
	}

	_, err := f.service.RequestUpload(ctx, f.eventID, f.itemID, media.UploadRequest{
		FileName:  "straw.png",
		MimeType:  "image/png",
		FileSize:  1,
		MediaType: media.TypeImage,
	})
	if got := errorType(t, err); got != platformerrors.ErrorTypeSizeLimitExceeded {
		t.Fatalf("error type = %s, want %s", got, platformerrors.ErrorTypeSizeLimitExceeded)
	}
}

func TestRequestUploadRejectsDisallowedMime(t *testing.T) {
	f := newFixture(t, "published")

	_, err := f.service.RequestUpload(context.Background(), f.eventID, f.itemID, media.UploadRequest{
		FileName:  "clip.avi",
		MimeType:  "video/x-msvideo",
		FileSize:  1024,
		MediaType: media.TypeVideo,
	})
	if got := errorType(t, err); got != platformerrors.ErrorTypeUnsupportedType {
		t.Fatalf("error type = %s, want %s", got, platformerrors.ErrorTypeUnsupportedType)
	}
}

func TestRequestUploadRejectsUnknownMediaType(t *testing.T) {
	f := newFixture(t, "published")

	_, err := f.service.RequestUpload(context.Background(), f.eventID, f.itemID, media.UploadRequest{
		FileName:  "x.bin",
		MimeType:  "application/octet-stream",
		FileSize:  1024,
		MediaType: "archive",
	})
	if got := errorType(t, err); got != platformerrors.ErrorTypeValidation {
		t.Fatalf("error type = %s, want %s", got, platformerrors.ErrorTypeValidation)
	}
}

func TestRequestUploadUnknownItem(t *testing.T) {
	f := newFixture(t, "published")

	_, err := f.service.RequestUpload(context.Background(), f.eventID, uuid.New(), media.UploadRequest{
		FileName:  "photo.png",
		MimeType:  "image/png",
		FileSize:  1024,
		MediaType: media.TypeImage,
	})
	if got := errorType(t, err); got != platformerrors.ErrorTypeNotFound {
		t.Fatalf("error type = %s, want %s", got, platformerrors.ErrorTypeNotFound)
	}
}

func TestRequestUploadStorageUnavailable(t *testing.T) {
	f := newFixture(t, "published")
	f.grantor.writeErr = errors.New("credentials not configured")

	_, err := f.service.RequestUpload(context.Background(), f.eventID, f.itemID, media.UploadRequest{
		FileName:  "photo.png",
		MimeType:  "image/png",
		FileSize:  1024,
		MediaType: media.TypeImage,
	})
	if got := errorType(t, err); got != platformerrors.ErrorTypeStorageUnavailable {
		t.Fatalf("error type = %s, want %s", got, platformerrors.ErrorTypeStorageUnavailable)
	}

	// The pending row survives as accepted garbage.
	assets, _ := f.repo.ListByItem(context.Background(), f.itemID)
	if len(assets) != 1 || assets[0].Status != media.StatusPending {
		t.Fatalf("expected one orphaned pending row, got %+v", assets)
	}
}

func TestConfirmUploadPublishesJobs(t *testing.T) {
	f := newFixture(t, "published")
	ctx := context.Background()

	grant, err := f.service.RequestUpload(ctx, f.eventID, f.itemID, media.UploadRequest{
		FileName:  "photo.jpg",
		MimeType:  "image/jpeg",
		FileSize:  2048,
		MediaType: media.TypeImage,
	})
	if err != nil {
		t.Fatalf("RequestUpload: %v", err)
	}

	asset, err := f.service.ConfirmUpload(ctx, f.eventID, f.itemID, grant.AssetID)
	if err != nil {
		t.Fatalf("ConfirmUpload: %v", err)
	}
	if asset.Status != media.StatusUploaded {
		t.Fatalf("status = %s, want %s", asset.Status, media.StatusUploaded)
	}
	if len(f.queue.scans) != 1 || f.queue.scans[0].AssetID != grant.AssetID {
		t.Fatalf("expected one scan job for %s, got %+v", grant.AssetID, f.queue.scans)
	}
	if len(f.queue.thumbnails) != 1 {
		t.Fatalf("expected a thumbnail job for the image, got %d", len(f.queue.thumbnails))
	}
	if want := "thumbnails/" + asset.BlobName; f.queue.thumbnails[0].Thumbnail != want {
		t.Fatalf("thumbnail path = %s, want %s", f.queue.thumbnails[0].Thumbnail, want)
	}
}

func TestConfirmUploadConcurrentSingleWinner(t *testing.T) {
	f := newFixture(t, "published")
	ctx := context.Background()

	grant, err := f.service.RequestUpload(ctx, f.eventID, f.itemID, media.UploadRequest{
		FileName:  "photo.png",
		MimeType:  "image/png",
		FileSize:  2048,
		MediaType: media.TypeImage,
	})
	if err != nil {
		t.Fatalf("RequestUpload: %v", err)
	}

	const racers = 8
	errs := make(chan error, racers)
	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.service.ConfirmUpload(ctx, f.eventID, f.itemID, grant.AssetID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var wins, conflicts int
	for err := range errs {
		if err == nil {
			wins++
			continue
		}
		if got := errorType(t, err); got != platformerrors.ErrorTypeInvalidState {
			t.Fatalf("loser error type = %s, want %s", got, platformerrors.ErrorTypeInvalidState)
		}
		conflicts++
	}
	if wins != 1 {
		t.Fatalf("exactly one confirmation must win, got %d wins and %d conflicts", wins, conflicts)
	}
}

func TestCompleteScanSettlesAndIsIdempotent(t *testing.T) {
	f := newFixture(t, "published")
	ctx := context.Background()

	grant, _ := f.service.RequestUpload(ctx, f.eventID, f.itemID, media.UploadRequest{
		FileName:  "photo.png",
		MimeType:  "image/png",
		FileSize:  2048,
		MediaType: media.TypeImage,
	})
	if _, err := f.service.ConfirmUpload(ctx, f.eventID, f.itemID, grant.AssetID); err != nil {
		t.Fatalf("ConfirmUpload: %v", err)
	}

	asset, err := f.service.CompleteScan(ctx, grant.AssetID, true, "")
	if err != nil {
		t.Fatalf("CompleteScan: %v", err)
	}
	if asset.Status != media.StatusScanned {
		t.Fatalf("status = %s, want %s", asset.Status, media.StatusScanned)
	}
	if want := "thumbnails/" + asset.BlobName; asset.ThumbnailPath != want {
		t.Fatalf("thumbnail path = %s, want %s", asset.ThumbnailPath, want)
	}

	// Duplicate callback with the same verdict is accepted unchanged.
	again, err := f.service.CompleteScan(ctx, grant.AssetID, true, "")
	if err != nil {
		t.Fatalf("duplicate CompleteScan: %v", err)
	}
	if again.Status != media.StatusScanned || again.DisplayOrder != asset.DisplayOrder {
		t.Fatalf("duplicate callback changed the row: %+v", again)
	}

	// Flipping the verdict is a conflict.
	_, err = f.service.CompleteScan(ctx, grant.AssetID, false, "late positive")
	if got := errorType(t, err); got != platformerrors.ErrorTypeInvalidState {
		t.Fatalf("error type = %s, want %s", got, platformerrors.ErrorTypeInvalidState)
	}
}

func TestCompleteScanQuarantines(t *testing.T) {
	f := newFixture(t, "published")
	ctx := context.Background()

	grant, _ := f.service.RequestUpload(ctx, f.eventID, f.itemID, media.UploadRequest{
		FileName:  "evil.pdf",
		MimeType:  "application/pdf",
		FileSize:  2048,
		MediaType: media.TypeFlyer,
	})
	if _, err := f.service.ConfirmUpload(ctx, f.eventID, f.itemID, grant.AssetID); err != nil {
		t.Fatalf("ConfirmUpload: %v", err)
	}

	asset, err := f.service.CompleteScan(ctx, grant.AssetID, false, "EICAR signature")
	if err != nil {
		t.Fatalf("CompleteScan: %v", err)
	}
	if asset.Status != media.StatusQuarantined {
		t.Fatalf("status = %s, want %s", asset.Status, media.StatusQuarantined)
	}
	if asset.ThumbnailPath != "" {
		t.Fatalf("quarantined asset must not get a thumbnail, got %s", asset.ThumbnailPath)
	}
}

func TestCompleteScanBeforeConfirmFails(t *testing.T) {
	f := newFixture(t, "published")
	ctx := context.Background()

	grant, _ := f.service.RequestUpload(ctx, f.eventID, f.itemID, media.UploadRequest{
		FileName:  "photo.png",
		MimeType:  "image/png",
		FileSize:  2048,
		MediaType: media.TypeImage,
	})

	_, err := f.service.CompleteScan(ctx, grant.AssetID, true, "")
	if got := errorType(t, err); got != platformerrors.ErrorTypeInvalidState {
		t.Fatalf("error type = %s, want %s", got, platformerrors.ErrorTypeInvalidState)
	}
}

func TestListRestrictsDraftItems(t *testing.T) {
	f := newFixture(t, "draft")
	ctx := context.Background()

	_, err := f.service.List(ctx, f.eventID, f.itemID, false)
	if got := errorType(t, err); got != platformerrors.ErrorTypeUnauthorized {
		t.Fatalf("error type = %s, want %s", got, platformerrors.ErrorTypeUnauthorized)
	}

	if _, err := f.service.List(ctx, f.eventID, f.itemID, true); err != nil {
		t.Fatalf("authenticated listing of a draft item: %v", err)
	}
}

func uploadN(t *testing.T, f *fixture, n int) []uuid.UUID {
	t.Helper()
	ids := make([]uuid.UUID, 0, n)
	for i := 0; i < n; i++ {
		grant, err := f.service.RequestUpload(context.Background(), f.eventID, f.itemID, media.UploadRequest{
			FileName:  fmt.Sprintf("photo-%d.png", i),
			MimeType:  "image/png",
			FileSize:  1024,
			MediaType: media.TypeImage,
		})
		if err != nil {
			t.Fatalf("upload %d: %v", i, err)
		}
		ids = append(ids, grant.AssetID)
	}
	return ids
}

func TestReorderAssignsPositions(t *testing.T) {
	f := newFixture(t, "published")
	ids := uploadN(t, f, 3)
	a, b, c := ids[0], ids[1], ids[2]

	assets, err := f.service.Reorder(context.Background(), f.eventID, f.itemID, []uuid.UUID{c, a, b})
	if err != nil {
		t.Fatalf("Reorder: %v", err)
	}

	want := map[uuid.UUID]int{c: 0, a: 1, b: 2}
	for _, asset := range assets {
		if asset.DisplayOrder != want[asset.ID] {
			t.Fatalf("asset %s display_order = %d, want %d", asset.ID, asset.DisplayOrder, want[asset.ID])
		}
	}
	if assets[0].ID != c || assets[1].ID != a || assets[2].ID != b {
		t.Fatalf("listing not in requested order: %v %v %v", assets[0].ID, assets[1].ID, assets[2].ID)
	}
}

func TestReorderRejectsIncompleteList(t *testing.T) {
	f := newFixture(t, "published")
	ids := uploadN(t, f, 3)
	a, c := ids[0], ids[2]

	_, err := f.service.Reorder(context.Background(), f.eventID, f.itemID, []uuid.UUID{c, a})
	if got := errorType(t, err); got != platformerrors.ErrorTypeValidation {
		t.Fatalf("error type = %s, want %s", got, platformerrors.ErrorTypeValidation)
	}

	// Existing order must be untouched after the failed reorder.
	assets, _ := f.repo.ListByItem(context.Background(), f.itemID)
	for _, asset := range assets {
		if asset.DisplayOrder != 0 {
			t.Fatalf("failed reorder mutated display_order on %s", asset.ID)
		}
	}
}

func TestReorderRejectsDuplicates(t *testing.T) {
	f := newFixture(t, "published")
	ids := uploadN(t, f, 2)

	_, err := f.service.Reorder(context.Background(), f.eventID, f.itemID, []uuid.UUID{ids[0], ids[0]})
	if got := errorType(t, err); got != platformerrors.ErrorTypeValidation {
		t.Fatalf("error type = %s, want %s", got, platformerrors.ErrorTypeValidation)
	}
}

func TestReorderRejectsForeignIDs(t *testing.T) {
	f := newFixture(t, "published")
	ids := uploadN(t, f, 2)

	_, err := f.service.Reorder(context.Background(), f.eventID, f.itemID, []uuid.UUID{ids[0], uuid.New()})
	if got := errorType(t, err); got != platformerrors.ErrorTypeValidation {
		t.Fatalf("error type = %s, want %s", got, platformerrors.ErrorTypeValidation)
	}
}

func TestDeleteSurvivesBlobFailure(t *testing.T) {
	f := newFixture(t, "published")
	ctx := context.Background()
	ids := uploadN(t, f, 1)

	f.grantor.deleteErr = errors.New("network timeout")
	if err := f.service.Delete(ctx, f.eventID, f.itemID, ids[0]); err != nil {
		t.Fatalf("Delete must succeed despite blob failure: %v", err)
	}

	if _, err := f.repo.GetByID(ctx, ids[0]); err == nil {
		t.Fatal("metadata row still present after delete")
	}
}

func TestDeleteUnknownAsset(t *testing.T) {
	f := newFixture(t, "published")

	err := f.service.Delete(context.Background(), f.eventID, f.itemID, uuid.New())
	if got := errorType(t, err); got != platformerrors.ErrorTypeNotFound {
		t.Fatalf("error type = %s, want %s", got, platformerrors.ErrorTypeNotFound)
	}
}

func TestReadGrantsOnlyForScannedAssets(t *testing.T) {
	f := newFixture(t, "published")
	ctx := context.Background()

	grant, _ := f.service.RequestUpload(ctx, f.eventID, f.itemID, media.UploadRequest{
		FileName:  "photo.png",
		MimeType:  "image/png",
		FileSize:  2048,
		MediaType: media.TypeImage,
	})
	pendingAssets, _ := f.repo.ListByItem(ctx, f.itemID)

	if urls := f.service.ReadGrants(ctx, pendingAssets); len(urls) != 0 {
		t.Fatalf("pending assets must not get read grants, got %v", urls)
	}

	f.service.ConfirmUpload(ctx, f.eventID, f.itemID, grant.AssetID)
	f.service.CompleteScan(ctx, grant.AssetID, true, "")
	scannedAssets, _ := f.repo.ListByItem(ctx, f.itemID)

	urls := f.service.ReadGrants(ctx, scannedAssets)
	if len(urls) != 1 || urls[grant.AssetID] == "" {
		t.Fatalf("expected a read grant for the scanned asset, got %v", urls)
	}
}

func TestUploadLifecycleEndToEnd(t *testing.T) {
	f := newFixture(t, "published")
	ctx := context.Background()

	grant, err := f.service.RequestUpload(ctx, f.eventID, f.itemID, media.UploadRequest{
		FileName:  "photo.png",
		MimeType:  "image/png",
		FileSize:  500_000,
		MediaType: media.TypeImage,
	})
	if err != nil {
		t.Fatalf("RequestUpload: %v", err)
	}

	if _, err := f.service.ConfirmUpload(ctx, f.eventID, f.itemID, grant.AssetID); err != nil {
		t.Fatalf("ConfirmUpload: %v", err)
	}
	if _, err := f.service.CompleteScan(ctx, grant.AssetID, true, ""); err != nil {
		t.Fatalf("CompleteScan: %v", err)
	}

	assets, err := f.service.List(ctx, f.eventID, f.itemID, true)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(assets) != 1 {
		t.Fatalf("listing has %d assets, want 1", len(assets))
	}
	if assets[0].ID != grant.AssetID || assets[0].Status != media.StatusScanned || assets[0].DisplayOrder != 0 {
		t.Fatalf("unexpected final asset: %+v", assets[0])
	}
}
