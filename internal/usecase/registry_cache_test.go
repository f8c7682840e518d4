package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"nanny-match/internal/domain/onboarding"
)

type memJSONCache struct {
	values map[string][]byte
	err    error
}

func (m *memJSONCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	b, ok := m.values[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (m *memJSONCache) SetJSON(_ context.Context, key string, v any, _ time.Duration) error {
	if m.err != nil {
		return m.err
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.values[key] = b
	return nil
}

type countingRegistry struct {
	mockRegistry
	defaultCalls int
	resolveCalls int
}

func (c *countingRegistry) DefaultConfiguration(ctx context.Context, role string) (*onboarding.Configuration, error) {
	c.defaultCalls++
	return c.mockRegistry.DefaultConfiguration(ctx, role)
}

func (c *countingRegistry) ResolveField(ctx context.Context, ref onboarding.FieldRef) (onboarding.Field, error) {
	c.resolveCalls++
	return c.mockRegistry.ResolveField(ctx, ref)
}

func TestCachedRegistry_DefaultConfigurationHit(t *testing.T) {
	cfg := &onboarding.Configuration{ID: uuid.New(), TargetRole: "parent", Name: "Parent"}
	inner := &countingRegistry{mockRegistry: mockRegistry{defaultCfg: cfg}}
	r := NewCachedRegistry(inner, &memJSONCache{values: map[string][]byte{}}, time.Minute, nil)

	for i := 0; i < 3; i++ {
		got, err := r.DefaultConfiguration(context.Background(), "parent")
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if got == nil || got.ID != cfg.ID {
			t.Fatalf("unexpected config: %+v", got)
		}
	}
	if inner.defaultCalls != 1 {
		t.Fatalf("expected one registry call, got %d", inner.defaultCalls)
	}
}

func TestCachedRegistry_CachesMissingDefault(t *testing.T) {
	inner := &countingRegistry{}
	r := NewCachedRegistry(inner, &memJSONCache{values: map[string][]byte{}}, time.Minute, nil)

	for i := 0; i < 2; i++ {
		got, err := r.DefaultConfiguration(context.Background(), "nanny")
		if err != nil || got != nil {
			t.Fatalf("expected nil config, got %+v err=%v", got, err)
		}
	}
	if inner.defaultCalls != 1 {
		t.Fatalf("expected one registry call, got %d", inner.defaultCalls)
	}
}

func TestCachedRegistry_ResolveFieldReadsThrough(t *testing.T) {
	inner := &countingRegistry{mockRegistry: mockRegistry{err: onboarding.ErrFieldNotFound}}
	r := NewCachedRegistry(inner, &memJSONCache{values: map[string][]byte{}}, time.Minute, nil)
	ref := onboarding.FieldRef{ConfigID: uuid.New(), StepKey: "basic_info", FieldKey: "child_age"}

	if _, err := r.ResolveField(context.Background(), ref); !errors.Is(err, onboarding.ErrFieldNotFound) {
		t.Fatalf("expected ErrFieldNotFound, got %v", err)
	}

	inner.err = nil
	inner.field = onboarding.Field{ID: uuid.New(), FieldKey: "child_age", FieldType: onboarding.FieldNumber}
	if f, err := r.ResolveField(context.Background(), ref); err != nil || f.FieldType != onboarding.FieldNumber {
		t.Fatalf("unexpected field %+v err=%v", f, err)
	}

	inner.field.FieldType = onboarding.FieldText
	f, err := r.ResolveField(context.Background(), ref)
	if err != nil || f.FieldType != onboarding.FieldText {
		t.Fatalf("expected the changed field type to be visible at once, got %+v err=%v", f, err)
	}
	if inner.resolveCalls != 3 {
		t.Fatalf("expected every resolve to reach the registry, got %d calls", inner.resolveCalls)
	}
}

func TestCachedRegistry_CacheFailureFallsBack(t *testing.T) {
	cfg := &onboarding.Configuration{ID: uuid.New()}
	inner := &countingRegistry{mockRegistry: mockRegistry{defaultCfg: cfg}}
	r := NewCachedRegistry(inner, &memJSONCache{err: errors.New("redis down")}, time.Minute, nil)

	got, err := r.DefaultConfiguration(context.Background(), "parent")
	if err != nil || got.ID != cfg.ID {
		t.Fatalf("expected fallback to registry, got %+v err=%v", got, err)
	}
}

func TestRegistryCacheKey(t *testing.T) {
	if RegistryCacheKey("steps_by_role", " parent ") != RegistryCacheKey("steps_by_role", "parent") {
		t.Fatalf("expected keys to match after trimming")
	}
	if RegistryCacheKey("field", "child_age") == RegistryCacheKey("field", "Child_Age") {
		t.Fatalf("expected keys to stay case sensitive")
	}
	if RegistryCacheKey("steps_by_role", "parent") == RegistryCacheKey("default_config", "parent") {
		t.Fatalf("expected lookup name to be part of the key")
	}
}
