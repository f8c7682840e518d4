package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"nanny-match/internal/domain/onboarding"
)

// RegistryCache is the subset of the Redis client the registry cache needs.
type RegistryCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

// CachedRegistry serves the per-role and per-step lookups the onboarding
// screens hit on every page load from the cache. Filtered listings and
// ResolveField, which gates answer writes, always reach the wrapped registry.
// Cache failures fall back to it as well. Cached reads may trail registry
// changes by up to one TTL.
type CachedRegistry struct {
	onboarding.Registry

	cache  RegistryCache
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedRegistry(inner onboarding.Registry, cache RegistryCache, ttl time.Duration, logger *zap.Logger) *CachedRegistry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedRegistry{Registry: inner, cache: cache, ttl: ttl, logger: logger}
}

// RegistryCacheKey hashes the lookup name and its arguments into a stable key.
// Arguments are trimmed but keep their case, matching how the registry
// compares keys.
func RegistryCacheKey(lookup string, args ...string) string {
	norm := make([]string, 0, len(args))
	for _, a := range args {
		norm = append(norm, strings.TrimSpace(a))
	}
	b, _ := json.Marshal(norm)
	sum := sha256.Sum256(b)
	return "onboarding:" + lookup + ":" + hex.EncodeToString(sum[:])
}

type cachedConfiguration struct {
	Config *onboarding.Configuration `json:"config"`
}

func (r *CachedRegistry) get(ctx context.Context, key string, out any) bool {
	hit, err := r.cache.GetJSON(ctx, key, out)
	if err != nil {
		r.logger.Debug("registry cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return hit
}

func (r *CachedRegistry) put(ctx context.Context, key string, v any) {
	if err := r.cache.SetJSON(ctx, key, v, r.ttl); err != nil {
		r.logger.Debug("registry cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (r *CachedRegistry) DefaultConfiguration(ctx context.Context, role string) (*onboarding.Configuration, error) {
	key := RegistryCacheKey("default_config", role)
	var cached cachedConfiguration
	if r.get(ctx, key, &cached) {
		return cached.Config, nil
	}

	cfg, err := r.Registry.DefaultConfiguration(ctx, role)
	if err != nil {
		return nil, err
	}
	r.put(ctx, key, cachedConfiguration{Config: cfg})
	return cfg, nil
}

func (r *CachedRegistry) StepsByRole(ctx context.Context, role string) ([]onboarding.Step, error) {
	key := RegistryCacheKey("steps_by_role", role)
	var cached []onboarding.Step
	if r.get(ctx, key, &cached) {
		return cached, nil
	}

	steps, err := r.Registry.StepsByRole(ctx, role)
	if err != nil {
		return nil, err
	}
	r.put(ctx, key, steps)
	return steps, nil
}

func (r *CachedRegistry) ActiveFieldsByStep(ctx context.Context, stepID uuid.UUID) ([]onboarding.Field, error) {
	key := RegistryCacheKey("active_fields", stepID.String())
	var cached []onboarding.Field
	if r.get(ctx, key, &cached) {
		return cached, nil
	}

	fields, err := r.Registry.ActiveFieldsByStep(ctx, stepID)
	if err != nil {
		return nil, err
	}
	r.put(ctx, key, fields)
	return fields, nil
}
