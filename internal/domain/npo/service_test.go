package npo_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"augeo-server/services/admin-api/internal/config"
	"augeo-server/services/admin-api/internal/domain/npo"
	"augeo-server/services/admin-api/internal/infrastructure/notification"
	"augeo-server/services/admin-api/internal/utils/platformerrors"
)

type fakeNPORepo struct {
	apps map[uuid.UUID]*npo.Application
}

func (r *fakeNPORepo) GetByID(ctx context.Context, id uuid.UUID) (*npo.Application, error) {
	app, ok := r.apps[id]
	if !ok {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeNotFound, fmt.Sprintf("NPO %s not found", id), nil, "test-not-found")
	}
	cp := *app
	return &cp, nil
}

func (r *fakeNPORepo) ListPending(_ context.Context, offset, limit int) ([]npo.Application, int64, error) {
	var pending []npo.Application
	for _, app := range r.apps {
		if app.Status == npo.StatusPendingApproval {
			pending = append(pending, *app)
		}
	}
	total := int64(len(pending))
	if offset >= len(pending) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(pending) {
		end = len(pending)
	}
	return pending[offset:end], total, nil
}

func (r *fakeNPORepo) ReviewIf(ctx context.Context, id uuid.UUID, expected, next, notes string) (*npo.Application, error) {
	app, ok := r.apps[id]
	if !ok {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeNotFound, fmt.Sprintf("NPO %s not found", id), nil, "test-not-found")
	}
	if app.Status != expected {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeInvalidState,
			fmt.Sprintf("review conflict: application is already %s", app.Status), nil, "test-conflict")
	}
	app.Status = next
	app.ReviewNotes = notes
	cp := *app
	return &cp, nil
}

type recordingNotifier struct {
	sent []notification.Email
	err  error
}

func (n *recordingNotifier) Notify(_ context.Context, email notification.Email) error {
	n.sent = append(n.sent, email)
	return n.err
}

func newReviewFixture() (*npo.Service, *fakeNPORepo, *recordingNotifier, uuid.UUID) {
	id := uuid.New()
	repo := &fakeNPORepo{apps: map[uuid.UUID]*npo.Application{
		id: {ID: id, Name: "Helping Hands", ContactEmail: "contact@helpinghands.org", Status: npo.StatusPendingApproval},
	}}
	notifier := &recordingNotifier{}
	cfg := &config.Config{FrontendAdminURL: "https://admin.augeo.app"}
	return npo.NewService(cfg, repo, notifier, zerolog.Nop()), repo, notifier, id
}

func TestReviewApprove(t *testing.T) {
	service, repo, notifier, id := newReviewFixture()

	app, err := service.Review(context.Background(), id, npo.DecisionApprove, "looks good")
	if err != nil {
		t.Fatalf("Review: %v", err)
	}
	if app.Status != npo.StatusApproved {
		t.Fatalf("status = %s, want %s", app.Status, npo.StatusApproved)
	}
	if repo.apps[id].ReviewNotes != "looks good" {
		t.Fatalf("review notes not persisted: %q", repo.apps[id].ReviewNotes)
	}
	if len(notifier.sent) != 1 || notifier.sent[0].To != "contact@helpinghands.org" {
		t.Fatalf("expected one approval email to the applicant, got %+v", notifier.sent)
	}
}

func TestReviewReject(t *testing.T) {
	service, _, notifier, id := newReviewFixture()

	app, err := service.Review(context.Background(), id, npo.DecisionReject, "missing 501(c)(3) paperwork")
	if err != nil {
		t.Fatalf("Review: %v", err)
	}
	if app.Status != npo.StatusRejected {
		t.Fatalf("status = %s, want %s", app.Status, npo.StatusRejected)
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("expected one rejection email, got %d", len(notifier.sent))
	}
}

func TestReviewInvalidDecision(t *testing.T) {
	service, _, _, id := newReviewFixture()

	_, err := service.Review(context.Background(), id, "maybe", "")
	var perr *platformerrors.PlatformError
	if !errors.As(err, &perr) || perr.GetErrorType() != platformerrors.ErrorTypeValidation {
		t.Fatalf("expected a validation error, got %v", err)
	}
}

func TestReviewAlreadyDecidedConflicts(t *testing.T) {
	service, _, _, id := newReviewFixture()
	ctx := context.Background()

	if _, err := service.Review(ctx, id, npo.DecisionApprove, ""); err != nil {
		t.Fatalf("first review: %v", err)
	}
	_, err := service.Review(ctx, id, npo.DecisionReject, "changed my mind")
	var perr *platformerrors.PlatformError
	if !errors.As(err, &perr) || perr.GetErrorType() != platformerrors.ErrorTypeInvalidState {
		t.Fatalf("expected an invalid-state conflict, got %v", err)
	}
}

func TestReviewDecisionStandsOnNotificationFailure(t *testing.T) {
	service, repo, notifier, id := newReviewFixture()
	notifier.err = fmt.Errorf("%w: smtp down", notification.ErrDeliveryFailed)

	app, err := service.Review(context.Background(), id, npo.DecisionApprove, "ok")
	if err != nil {
		t.Fatalf("notification failure must not fail the review: %v", err)
	}
	if app.Status != npo.StatusApproved || repo.apps[id].Status != npo.StatusApproved {
		t.Fatal("approval did not stick despite committed state change")
	}
}

func TestListPendingClampsLimit(t *testing.T) {
	service, repo, _, _ := newReviewFixture()
	for i := 0; i < 60; i++ {
		id := uuid.New()
		repo.apps[id] = &npo.Application{ID: id, Status: npo.StatusPendingApproval}
	}

	apps, total, err := service.ListPending(context.Background(), 0, 500)
	if err != nil {
		t.Fatalf("ListPending: %v", err)
	}
	if total != 61 {
		t.Fatalf("total = %d, want 61", total)
	}
	if len(apps) != 50 {
		t.Fatalf("page size = %d, want the clamped 50", len(apps))
	}
}
