package profile

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/khoahotran/career-path/internal/application/service"
	"github.com/khoahotran/career-path/internal/application/session"
	"github.com/khoahotran/career-path/internal/domain/catalog"
	"github.com/khoahotran/career-path/internal/domain/profile"
	"github.com/khoahotran/career-path/pkg/apperror"
	"github.com/khoahotran/career-path/pkg/logger"
)

// maxStaleRetries bounds how often a mutation is recomputed after another
// writer bumped the profile version.
const maxStaleRetries = 3

// sharedReadTimeout bounds a coalesced store read, which outlives the request
// that started it.
const sharedReadTimeout = 10 * time.Second

var tracer = otel.Tracer("profile_usecase")

type ProfileUseCase struct {
	store     profile.Store
	cache     profile.Cache
	catalog   catalog.Repository
	publisher service.ProfileEventPublisher
	logger    logger.Logger

	policy atomic.Value
	locks  *keyedMutex
	reads  singleflight.Group
}

// NewProfileUseCase wires the profile state manager. cache and publisher may be nil.
func NewProfileUseCase(
	store profile.Store,
	cache profile.Cache,
	cat catalog.Repository,
	publisher service.ProfileEventPublisher,
	policy profile.TimelineSwitchPolicy,
	log logger.Logger,
) *ProfileUseCase {
	uc := &ProfileUseCase{
		store:     store,
		cache:     cache,
		catalog:   cat,
		publisher: publisher,
		logger:    log,
		locks:     newKeyedMutex(),
	}
	uc.SetTimelineSwitchPolicy(policy)
	return uc
}

func (uc *ProfileUseCase) SetTimelineSwitchPolicy(p profile.TimelineSwitchPolicy) {
	if p == "" {
		p = profile.TimelinePreserve
	}
	uc.policy.Store(p)
}

func (uc *ProfileUseCase) timelinePolicy() profile.TimelineSwitchPolicy {
	return uc.policy.Load().(profile.TimelineSwitchPolicy)
}

func requireSession(sess *session.Session) error {
	if !sess.Authenticated() {
		return apperror.NewUnauthenticated("no signed-in user in session")
	}
	return nil
}

// GetProfile returns the stored profile, or an unsaved default one.
func (uc *ProfileUseCase) GetProfile(ctx context.Context, sess *session.Session) (*profile.UserProfile, error) {
	ctx, span := tracer.Start(ctx, "GetProfile")
	defer span.End()

	if err := requireSession(sess); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("owner_id", sess.UserID.String()))

	if uc.cache != nil {
		cached, err := uc.cache.Get(ctx, sess.UserID)
		if err != nil {
			uc.logger.Warn("Profile cache read failed, falling back to store", zap.String("owner_id", sess.UserID.String()), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	v, err, _ := uc.reads.Do(sess.UserID.String(), func() (any, error) {
		readCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedReadTimeout)
		defer cancel()

		p, err := uc.store.FindByOwner(readCtx, sess.UserID)
		if err != nil {
			return nil, err
		}
		if uc.cache != nil {
			if err := uc.cache.Set(readCtx, p); err != nil {
				uc.logger.Warn("Profile cache write failed", zap.String("owner_id", sess.UserID.String()), zap.Error(err))
			}
		}
		return p, nil
	})
	if errors.Is(err, profile.ErrProfileNotFound) {
		return profile.NewUserProfile(sess.UserID), nil
	}
	if err != nil {
		span.RecordError(err)
		return nil, apperror.NewPersistenceFailed(nil, "failed to load profile", err)
	}
	// The shared singleflight result must not leak to callers.
	return v.(*profile.UserProfile).Clone(), nil
}

type applyFunc func(draft *profile.UserProfile) (profile.Patch, error)

// mutate runs apply against the latest stored snapshot of the caller's
// profile and writes the resulting patch. A missing profile is created from
// defaults. An empty patch skips the write.
func (uc *ProfileUseCase) mutate(ctx context.Context, sess *session.Session, m profile.Mutation, apply applyFunc) (*profile.UserProfile, bool, error) {
	if err := requireSession(sess); err != nil {
		return nil, false, err
	}

	unlock, err := uc.locks.Lock(ctx, sess.UserID)
	if err != nil {
		return nil, false, apperror.NewPersistenceFailed(m, "request ended before the change was applied", err)
	}
	defer unlock()

	l := uc.logger.With(zap.String("owner_id", sess.UserID.String()), zap.String("mutation", string(m.Kind)))

	for attempt := 0; attempt <= maxStaleRetries; attempt++ {
		current, err := uc.store.FindByOwner(ctx, sess.UserID)
		switch {
		case errors.Is(err, profile.ErrProfileNotFound):
			current = nil
		case err != nil:
			l.Error("Failed to load profile", err)
			return nil, false, apperror.NewPersistenceFailed(m, "failed to load profile", err)
		}

		var draft *profile.UserProfile
		if current == nil {
			draft = profile.NewUserProfile(sess.UserID)
		} else {
			draft = current.Clone()
		}

		patch, err := apply(draft)
		if err != nil {
			return nil, false, err
		}
		if patch.Empty() {
			return draft, false, nil
		}

		var saved *profile.UserProfile
		if current == nil {
			saved, err = uc.store.Create(ctx, draft)
			if errors.Is(err, profile.ErrProfileExists) {
				l.Debug("Profile created concurrently, recomputing", zap.Int("attempt", attempt))
				continue
			}
		} else {
			saved, err = uc.store.Update(ctx, current.ID, current.Version, patch)
			if errors.Is(err, profile.ErrStaleVersion) {
				l.Debug("Stale profile version, recomputing", zap.Int("attempt", attempt), zap.Int64("version", current.Version))
				continue
			}
		}
		if err != nil {
			l.Error("Failed to persist profile", err)
			return nil, false, apperror.NewPersistenceFailed(m, "failed to save profile", err)
		}

		uc.cacheSnapshot(ctx, saved)
		return saved, true, nil
	}

	return nil, false, apperror.NewPersistenceFailed(m, fmt.Sprintf("profile changed %d times during the update", maxStaleRetries+1), profile.ErrStaleVersion)
}

// cacheSnapshot writes the saved profile through to the cache while the owner
// lock is held. A read that loaded an older version cannot replace it, since
// the cache keeps the highest version. If the write fails the entry is dropped.
func (uc *ProfileUseCase) cacheSnapshot(ctx context.Context, saved *profile.UserProfile) {
	uc.reads.Forget(saved.OwnerID.String())
	if uc.cache == nil {
		return
	}
	err := uc.cache.Set(ctx, saved)
	if err == nil {
		return
	}
	uc.logger.Warn("Failed to cache saved profile", zap.String("owner_id", saved.OwnerID.String()), zap.Error(err))
	if err := uc.cache.Invalidate(ctx, saved.OwnerID); err != nil {
		uc.logger.Warn("Failed to invalidate cached profile", zap.String("owner_id", saved.OwnerID.String()), zap.Error(err))
	}
}

func (uc *ProfileUseCase) publish(ctx context.Context, saved *profile.UserProfile, e profile.Event) {
	if uc.publisher == nil {
		return
	}
	e.OwnerID = saved.OwnerID
	e.ProfileID = saved.ID
	e.OccurredAt = time.Now().UTC()
	if err := uc.publisher.PublishProfileEvent(ctx, e); err != nil {
		uc.logger.Error("Failed to publish profile event", err, zap.String("event_type", string(e.EventType)), zap.String("owner_id", saved.OwnerID.String()))
	}
}
