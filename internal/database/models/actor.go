package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/threadguard/threadguard/internal/database/dbretry"
	"github.com/threadguard/threadguard/internal/database/types"
	"github.com/threadguard/threadguard/internal/database/types/enum"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// ErrActorNotFound is returned when an actor ID has no matching row.
var ErrActorNotFound = errors.New("actor not found")

// ActorModel handles database operations for actor standing.
type ActorModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewActor creates a new actor model.
func NewActor(db *bun.DB, logger *zap.Logger) *ActorModel {
	return &ActorModel{
		db:     db,
		logger: logger.Named("db_actor"),
	}
}

// Get retrieves an actor by ID.
func (r *ActorModel) Get(ctx context.Context, actorID uint64) (*types.Actor, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.Actor, error) {
		actor := new(types.Actor)

		err := r.db.NewSelect().
			Model(actor).
			Where("id = ?", actorID).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrActorNotFound
			}
			return nil, fmt.Errorf("failed to get actor: %w", err)
		}

		return actor, nil
	})
}

// Upsert inserts an actor or updates its standing fields.
func (r *ActorModel) Upsert(ctx context.Context, actor *types.Actor) error {
	return dbretry.NoResult(ctx, func(ctx context.Context) error {
		_, err := r.db.NewInsert().
			Model(actor).
			On("CONFLICT (id) DO UPDATE").
			Set("role = EXCLUDED.role").
			Set("banned = EXCLUDED.banned").
			Set("shadow_banned = EXCLUDED.shadow_banned").
			Set("muted_until = EXCLUDED.muted_until").
			Set("updated_at = EXCLUDED.updated_at").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to upsert actor: %w", err)
		}
		return nil
	})
}

// SetBanned updates the banned flag for an actor.
func (r *ActorModel) SetBanned(ctx context.Context, actorID uint64, banned bool, now time.Time) error {
	return r.updateStanding(ctx, actorID, "banned = ?", banned, now)
}

// SetShadowBanned updates the shadow ban flag for an actor.
func (r *ActorModel) SetShadowBanned(ctx context.Context, actorID uint64, shadowBanned bool, now time.Time) error {
	return r.updateStanding(ctx, actorID, "shadow_banned = ?", shadowBanned, now)
}

// SetMutedUntil updates the mute expiry for an actor.
// A zero time clears the mute.
func (r *ActorModel) SetMutedUntil(ctx context.Context, actorID uint64, until time.Time, now time.Time) error {
	return r.updateStanding(ctx, actorID, "muted_until = ?", until, now)
}

// SetRole updates the role for an actor.
func (r *ActorModel) SetRole(ctx context.Context, actorID uint64, role enum.Role, now time.Time) error {
	return r.updateStanding(ctx, actorID, "role = ?", role, now)
}

// updateStanding applies a single standing column change, failing with
// ErrActorNotFound when the actor does not exist.
func (r *ActorModel) updateStanding(
	ctx context.Context, actorID uint64, set string, value any, now time.Time,
) error {
	return dbretry.NoResult(ctx, func(ctx context.Context) error {
		res, err := r.db.NewUpdate().
			Model((*types.Actor)(nil)).
			Set(set, value).
			Set("updated_at = ?", now).
			Where("id = ?", actorID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to update actor standing: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check affected rows: %w", err)
		}
		if affected == 0 {
			return ErrActorNotFound
		}

		return nil
	})
}
