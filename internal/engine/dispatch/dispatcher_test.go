package dispatch_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/threadguard/threadguard/internal/database/models"
	"github.com/threadguard/threadguard/internal/database/types"
	"github.com/threadguard/threadguard/internal/database/types/enum"
	"github.com/threadguard/threadguard/internal/engine/dispatch"
	"github.com/threadguard/threadguard/internal/setup/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var errCommentStoreDown = errors.New("comment store down")

type memActors struct {
	actors map[uint64]*types.Actor
	mu     sync.Mutex
}

func newMemActors(actors ...*types.Actor) *memActors {
	m := &memActors{actors: make(map[uint64]*types.Actor)}
	for _, actor := range actors {
		m.actors[actor.ID] = actor
	}

	return m
}

func (m *memActors) Get(_ context.Context, actorID uint64) (*types.Actor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	actor, ok := m.actors[actorID]
	if !ok {
		return nil, models.ErrActorNotFound
	}

	clone := *actor

	return &clone, nil
}

func (m *memActors) get(actorID uint64) *types.Actor {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.actors[actorID]
}

func (m *memActors) SetBanned(_ context.Context, actorID uint64, banned bool, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.actors[actorID].Banned = banned
	m.actors[actorID].UpdatedAt = now

	return nil
}

func (m *memActors) SetShadowBanned(_ context.Context, actorID uint64, shadowBanned bool, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.actors[actorID].ShadowBanned = shadowBanned
	m.actors[actorID].UpdatedAt = now

	return nil
}

func (m *memActors) SetMutedUntil(_ context.Context, actorID uint64, until, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.actors[actorID].MutedUntil = until
	m.actors[actorID].UpdatedAt = now

	return nil
}

func (m *memActors) SetRole(_ context.Context, actorID uint64, role enum.Role, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.actors[actorID].Role = role
	m.actors[actorID].UpdatedAt = now

	return nil
}

type commentCall struct {
	actionType enum.ActionType
	commentID  uint64
}

type memComments struct {
	calls []commentCall
	fail  bool
	mu    sync.Mutex
}

func (m *memComments) Apply(
	_ context.Context, actionType enum.ActionType, commentID uint64, _ map[string]any, _ time.Time,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.fail {
		return errCommentStoreDown
	}

	m.calls = append(m.calls, commentCall{actionType: actionType, commentID: commentID})

	return nil
}

type memAudit struct {
	rows     []*types.ModerationAction
	failures int
	mu       sync.Mutex
}

func (m *memAudit) Insert(_ context.Context, action *types.ModerationAction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failures > 0 {
		m.failures--
		return errors.New("audit store down")
	}

	m.rows = append(m.rows, action)

	return nil
}

func (m *memAudit) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.rows)
}

func testDispatchConfig() *config.Dispatch {
	return &config.Dispatch{DedupeSeconds: 60, MuteHours: 24, AuditAttempts: 3}
}

func newDispatcher(actors *memActors, comments *memComments, audit *memAudit) *dispatch.Dispatcher {
	return dispatch.NewDispatcher(actors, comments, audit, nil, testDispatchConfig(), zap.NewNop())
}

func TestDispatchBan(t *testing.T) {
	t.Parallel()

	actors := newMemActors(&types.Actor{ID: 1, Role: enum.RoleUser})
	audit := &memAudit{}
	dispatcher := newDispatcher(actors, &memComments{}, audit)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	action, err := dispatcher.Dispatch(t.Context(), enum.ActionTypeBanUser, 50, 1, 0, nil, "repeat offender", now)
	require.NoError(t, err)
	assert.Equal(t, enum.ActionTypeBanUser, action.ActionType)
	assert.False(t, action.System())
	assert.True(t, actors.get(1).Banned)
	assert.Equal(t, 1, audit.count())
}

func TestDispatchDedupe(t *testing.T) {
	t.Parallel()

	actors := newMemActors(&types.Actor{ID: 1, Role: enum.RoleUser})
	audit := &memAudit{}
	dispatcher := newDispatcher(actors, &memComments{}, audit)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	first, err := dispatcher.Dispatch(t.Context(), enum.ActionTypeWarnUser, 50, 1, 0, nil, "first", now)
	require.NoError(t, err)

	// Identical intent inside the window returns the prior record
	second, err := dispatcher.Dispatch(t.Context(), enum.ActionTypeWarnUser, 60, 1, 0, nil, "second", now.Add(time.Second))
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, audit.count())

	// A different target is a separate intent
	actors.mu.Lock()
	actors.actors[2] = &types.Actor{ID: 2, Role: enum.RoleUser}
	actors.mu.Unlock()

	third, err := dispatcher.Dispatch(t.Context(), enum.ActionTypeWarnUser, 50, 2, 0, nil, "other user", now)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, third.ID)
	assert.Equal(t, 2, audit.count())

	// Once the window has passed the same intent applies again
	fourth, err := dispatcher.Dispatch(t.Context(), enum.ActionTypeWarnUser, 50, 1, 0, nil, "again", now.Add(61*time.Second))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, fourth.ID)
	assert.Equal(t, 3, audit.count())
}

func TestDispatchMute(t *testing.T) {
	t.Parallel()

	actors := newMemActors(&types.Actor{ID: 1, Role: enum.RoleUser})
	dispatcher := newDispatcher(actors, &memComments{}, &memAudit{})
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	// Default duration comes from configuration
	_, err := dispatcher.Dispatch(t.Context(), enum.ActionTypeMuteUser, 0, 1, 0, nil, "spam", now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(24*time.Hour), actors.get(1).MutedUntil)
	assert.True(t, actors.get(1).Muted(now))

	// An explicit duration in the details wins
	actors.actors[2] = &types.Actor{ID: 2, Role: enum.RoleUser}
	details := map[string]any{"duration": 2 * time.Hour}

	_, err = dispatcher.Dispatch(t.Context(), enum.ActionTypeMuteUser, 0, 2, 0, details, "minor", now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(2*time.Hour), actors.get(2).MutedUntil)
}

func TestDispatchCommentActions(t *testing.T) {
	t.Parallel()

	comments := &memComments{}
	dispatcher := newDispatcher(newMemActors(), comments, &memAudit{})
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	_, err := dispatcher.Dispatch(t.Context(), enum.ActionTypeDeleteComment, 50, 0, 100, nil, "rule match", now)
	require.NoError(t, err)
	require.Len(t, comments.calls, 1)
	assert.Equal(t, enum.ActionTypeDeleteComment, comments.calls[0].actionType)
	assert.Equal(t, uint64(100), comments.calls[0].commentID)
}

func TestDispatchMissingTarget(t *testing.T) {
	t.Parallel()

	dispatcher := newDispatcher(newMemActors(), &memComments{}, &memAudit{})
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	_, err := dispatcher.Dispatch(t.Context(), enum.ActionTypeBanUser, 50, 0, 0, nil, "", now)
	require.ErrorIs(t, err, dispatch.ErrMissingTarget)

	_, err = dispatcher.Dispatch(t.Context(), enum.ActionTypeDeleteComment, 50, 0, 0, nil, "", now)
	require.ErrorIs(t, err, dispatch.ErrMissingTarget)
}

func TestDispatchFailedStateChange(t *testing.T) {
	t.Parallel()

	comments := &memComments{fail: true}
	audit := &memAudit{}
	dispatcher := newDispatcher(newMemActors(), comments, audit)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	// No audit row for an action that did not take effect
	_, err := dispatcher.Dispatch(t.Context(), enum.ActionTypeLockThread, 50, 0, 100, nil, "", now)
	require.ErrorIs(t, err, errCommentStoreDown)
	assert.Equal(t, 0, audit.count())
}

func TestDispatchAuditRetry(t *testing.T) {
	t.Parallel()

	actors := newMemActors(&types.Actor{ID: 1, Role: enum.RoleUser})
	audit := &memAudit{failures: 2}
	dispatcher := newDispatcher(actors, &memComments{}, audit)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	// Two transient audit failures are absorbed by the retry
	action, err := dispatcher.Dispatch(t.Context(), enum.ActionTypeBanUser, 50, 1, 0, nil, "", now)
	require.NoError(t, err)
	assert.NotNil(t, action)
	assert.Equal(t, 1, audit.count())
}

func TestDispatchAuditExhausted(t *testing.T) {
	t.Parallel()

	actors := newMemActors(&types.Actor{ID: 1, Role: enum.RoleUser})
	audit := &memAudit{failures: 100}
	dispatcher := newDispatcher(actors, &memComments{}, audit)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	// The state change is applied and never rolled back
	action, err := dispatcher.Dispatch(t.Context(), enum.ActionTypeBanUser, 50, 1, 0, nil, "", now)
	require.ErrorIs(t, err, dispatch.ErrAuditFailed)
	assert.NotNil(t, action)
	assert.True(t, actors.get(1).Banned)

	// The intent is still deduplicated so the ban is not re-applied
	again, err := dispatcher.Dispatch(t.Context(), enum.ActionTypeBanUser, 50, 1, 0, nil, "", now)
	require.NoError(t, err)
	assert.Equal(t, action.ID, again.ID)
}

func TestDispatchRoleSteps(t *testing.T) {
	t.Parallel()

	actors := newMemActors(
		&types.Actor{ID: 1, Role: enum.RoleUser},
		&types.Actor{ID: 2, Role: enum.RoleAdmin},
	)
	dispatcher := newDispatcher(actors, &memComments{}, &memAudit{})
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	_, err := dispatcher.Dispatch(t.Context(), enum.ActionTypePromoteUser, 50, 1, 0, nil, "", now)
	require.NoError(t, err)
	assert.Equal(t, enum.RoleModerator, actors.get(1).Role)

	// Demoting a user below user is rejected
	actors.actors[3] = &types.Actor{ID: 3, Role: enum.RoleUser}
	_, err = dispatcher.Dispatch(t.Context(), enum.ActionTypeDemoteUser, 50, 3, 0, nil, "", now)
	require.ErrorIs(t, err, dispatch.ErrRoleBound)

	// Promoting an admin to super admin is rejected
	_, err = dispatcher.Dispatch(t.Context(), enum.ActionTypePromoteUser, 50, 2, 0, nil, "", now)
	require.ErrorIs(t, err, dispatch.ErrRoleBound)
}
