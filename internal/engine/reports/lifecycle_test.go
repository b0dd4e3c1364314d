package reports_test

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/threadguard/threadguard/internal/database/models"
	"github.com/threadguard/threadguard/internal/database/types"
	"github.com/threadguard/threadguard/internal/database/types/enum"
	"github.com/threadguard/threadguard/internal/engine/reports"
	"github.com/threadguard/threadguard/internal/setup/config"
	"github.com/threadguard/threadguard/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type reportKey struct {
	commentID  uint64
	reporterID uint64
}

type memReportStore struct {
	byID  map[uuid.UUID]*types.Report
	taken map[reportKey]struct{}
	mu    sync.Mutex
}

func newMemReportStore() *memReportStore {
	return &memReportStore{
		byID:  make(map[uuid.UUID]*types.Report),
		taken: make(map[reportKey]struct{}),
	}
}

func (s *memReportStore) Insert(_ context.Context, report *types.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := reportKey{commentID: report.CommentID, reporterID: report.ReporterID}
	if _, exists := s.taken[key]; exists {
		return models.ErrDuplicateReport
	}

	s.taken[key] = struct{}{}
	clone := *report
	s.byID[report.ID] = &clone

	return nil
}

func (s *memReportStore) Get(_ context.Context, reportID uuid.UUID) (*types.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	report, ok := s.byID[reportID]
	if !ok {
		return nil, models.ErrReportNotFound
	}

	clone := *report

	return &clone, nil
}

func (s *memReportStore) UpdateStatus(
	_ context.Context, reportID uuid.UUID, from, to enum.ReportStatus,
	reviewerID uint64, notes string, now time.Time,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	report, ok := s.byID[reportID]
	if !ok || report.Status != from {
		return models.ErrStaleReport
	}

	report.Status = to
	report.UpdatedAt = now

	if reviewerID != 0 {
		report.ReviewerID = reviewerID
	}
	if notes != "" {
		report.Notes = notes
	}

	return nil
}

func (s *memReportStore) CountActive(_ context.Context, commentID uint64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0

	for _, report := range s.byID {
		if report.CommentID == commentID && report.Status != enum.ReportStatusDismissed {
			count++
		}
	}

	return count, nil
}

func (s *memReportStore) GetPending(
	_ context.Context, _ *types.ReportCursor, limit int,
) ([]*types.Report, *types.ReportCursor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var pending []*types.Report

	for _, report := range s.byID {
		if report.Status == enum.ReportStatusPending {
			clone := *report
			pending = append(pending, &clone)
		}
	}

	sort.Slice(pending, func(i, j int) bool {
		if pending[i].Priority != pending[j].Priority {
			return pending[i].Priority > pending[j].Priority
		}

		return pending[i].FiledAt.Before(pending[j].FiledAt)
	})

	if len(pending) > limit {
		pending = pending[:limit]
	}

	return pending, nil, nil
}

type autoCall struct {
	actionType enum.ActionType
	userID     uint64
	commentID  uint64
}

type memAuto struct {
	calls []autoCall
	mu    sync.Mutex
}

func (m *memAuto) AutoAct(
	_ context.Context, actionType enum.ActionType,
	targetUserID, targetCommentID uint64, _ string, _ time.Time,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, autoCall{actionType: actionType, userID: targetUserID, commentID: targetCommentID})

	return nil
}

func (m *memAuto) all() []autoCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]autoCall(nil), m.calls...)
}

func newLifecycle(store *memReportStore, auto *memAuto) *reports.Lifecycle {
	cfg := &config.Reports{AutoWarnThreshold: 3, AutoMuteThreshold: 5, AutoBanThreshold: 10}

	return reports.NewLifecycle(store, auto, utils.NewKeyMutex[uuid.UUID](), cfg, zap.NewNop())
}

func TestFileDuplicate(t *testing.T) {
	t.Parallel()

	store := newMemReportStore()
	lifecycle := newLifecycle(store, &memAuto{})
	ctx := t.Context()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	_, err := lifecycle.File(ctx, 100, 1, 2, enum.ReportReasonSpam, "", now)
	require.NoError(t, err)

	// Same reporter on the same comment is rejected
	_, err = lifecycle.File(ctx, 100, 1, 2, enum.ReportReasonOffensive, "", now)
	require.ErrorIs(t, err, models.ErrDuplicateReport)

	// A different reporter on the same comment succeeds
	_, err = lifecycle.File(ctx, 100, 1, 3, enum.ReportReasonSpam, "", now)
	require.NoError(t, err)
}

func TestFilePriority(t *testing.T) {
	t.Parallel()

	store := newMemReportStore()
	lifecycle := newLifecycle(store, &memAuto{})
	ctx := t.Context()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	harassment, err := lifecycle.File(ctx, 100, 1, 2, enum.ReportReasonHarassment, "", now)
	require.NoError(t, err)
	assert.Equal(t, 5, harassment.Priority)

	spoiler, err := lifecycle.File(ctx, 101, 1, 2, enum.ReportReasonSpoiler, "", now)
	require.NoError(t, err)
	assert.Equal(t, 2, spoiler.Priority)
}

func TestReviewTransitions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		from    enum.ReportStatus
		to      enum.ReportStatus
		wantErr bool
	}{
		{name: "pending to reviewed", from: enum.ReportStatusPending, to: enum.ReportStatusReviewed},
		{name: "pending to resolved", from: enum.ReportStatusPending, to: enum.ReportStatusResolved},
		{name: "reviewed to resolved", from: enum.ReportStatusReviewed, to: enum.ReportStatusResolved},
		{name: "reviewed to dismissed", from: enum.ReportStatusReviewed, to: enum.ReportStatusDismissed},
		{name: "escalated to resolved", from: enum.ReportStatusEscalated, to: enum.ReportStatusResolved},
		{name: "resolved is terminal", from: enum.ReportStatusResolved, to: enum.ReportStatusReviewed, wantErr: true},
		{name: "dismissed is terminal", from: enum.ReportStatusDismissed, to: enum.ReportStatusResolved, wantErr: true},
		{name: "reviewed cannot revert", from: enum.ReportStatusReviewed, to: enum.ReportStatusReviewed, wantErr: true},
		{name: "review never escalates", from: enum.ReportStatusPending, to: enum.ReportStatusEscalated, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := newMemReportStore()
			lifecycle := newLifecycle(store, &memAuto{})
			ctx := t.Context()
			now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

			report, err := lifecycle.File(ctx, 100, 1, 2, enum.ReportReasonSpam, "", now)
			require.NoError(t, err)

			// Force the starting status directly in the store
			store.mu.Lock()
			store.byID[report.ID].Status = tt.from
			store.mu.Unlock()

			updated, err := lifecycle.Review(ctx, report.ID, 50, tt.to, "checked", now.Add(time.Minute))
			if tt.wantErr {
				require.ErrorIs(t, err, reports.ErrInvalidTransition)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.to, updated.Status)
			assert.Equal(t, uint64(50), updated.ReviewerID)
		})
	}
}

func TestAccumulationThresholds(t *testing.T) {
	t.Parallel()

	store := newMemReportStore()
	auto := &memAuto{}
	lifecycle := newLifecycle(store, auto)
	ctx := t.Context()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	// Reports 1 and 2: quiet. Report 3: warn. Report 5: mute.
	for reporter := uint64(1); reporter <= 6; reporter++ {
		_, err := lifecycle.File(ctx, 100, 42, reporter+10, enum.ReportReasonSpam, "", now)
		require.NoError(t, err)
	}

	calls := auto.all()
	require.Len(t, calls, 2)
	assert.Equal(t, enum.ActionTypeWarnUser, calls[0].actionType)
	assert.Equal(t, uint64(42), calls[0].userID)
	assert.Equal(t, enum.ActionTypeMuteUser, calls[1].actionType)
	assert.Equal(t, uint64(42), calls[1].userID)
	assert.Equal(t, uint64(100), calls[1].commentID)
}

func TestAccumulationConcurrentFilings(t *testing.T) {
	t.Parallel()

	store := newMemReportStore()
	auto := &memAuto{}
	lifecycle := newLifecycle(store, auto)
	ctx := t.Context()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	// Twelve reporters race on the same comment. The count must land on
	// every threshold exactly once even when filings interleave, so each
	// automated action fires once and none is skipped.
	var wg sync.WaitGroup

	for reporter := uint64(1); reporter <= 12; reporter++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := lifecycle.File(ctx, 100, 42, reporter+10, enum.ReportReasonSpam, "", now)
			assert.NoError(t, err)
		}()
	}

	wg.Wait()

	calls := auto.all()
	require.Len(t, calls, 3)
	assert.Equal(t, enum.ActionTypeWarnUser, calls[0].actionType)
	assert.Equal(t, enum.ActionTypeMuteUser, calls[1].actionType)
	assert.Equal(t, enum.ActionTypeBanUser, calls[2].actionType)

	for _, call := range calls {
		assert.Equal(t, uint64(42), call.userID)
		assert.Equal(t, uint64(100), call.commentID)
	}
}

func TestAccumulationSkipsDismissed(t *testing.T) {
	t.Parallel()

	store := newMemReportStore()
	auto := &memAuto{}
	lifecycle := newLifecycle(store, auto)
	ctx := t.Context()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	first, err := lifecycle.File(ctx, 100, 42, 11, enum.ReportReasonSpam, "", now)
	require.NoError(t, err)

	_, err = lifecycle.Review(ctx, first.ID, 50, enum.ReportStatusDismissed, "", now)
	require.NoError(t, err)

	// Two more reports: active count is 2, not 3, so no warning yet
	for reporter := uint64(12); reporter <= 13; reporter++ {
		_, err := lifecycle.File(ctx, 100, 42, reporter, enum.ReportReasonSpam, "", now)
		require.NoError(t, err)
	}

	assert.Empty(t, auto.all())

	// The next report reaches 3 active and warns
	_, err = lifecycle.File(ctx, 100, 42, 14, enum.ReportReasonSpam, "", now)
	require.NoError(t, err)
	require.Len(t, auto.all(), 1)
	assert.Equal(t, enum.ActionTypeWarnUser, auto.all()[0].actionType)
}

func TestQueueOrdering(t *testing.T) {
	t.Parallel()

	store := newMemReportStore()
	lifecycle := newLifecycle(store, &memAuto{})
	ctx := t.Context()
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	_, err := lifecycle.File(ctx, 100, 1, 11, enum.ReportReasonOther, "", base)
	require.NoError(t, err)
	_, err = lifecycle.File(ctx, 101, 1, 11, enum.ReportReasonHarassment, "", base.Add(2*time.Minute))
	require.NoError(t, err)
	_, err = lifecycle.File(ctx, 102, 1, 11, enum.ReportReasonHarassment, "", base.Add(time.Minute))
	require.NoError(t, err)

	queue, _, err := lifecycle.Queue(ctx, nil, 10)
	require.NoError(t, err)
	require.Len(t, queue, 3)

	// Highest priority first, oldest first within a priority
	assert.Equal(t, uint64(102), queue[0].CommentID)
	assert.Equal(t, uint64(101), queue[1].CommentID)
	assert.Equal(t, uint64(100), queue[2].CommentID)
}
