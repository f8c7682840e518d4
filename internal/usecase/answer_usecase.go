package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"nanny-match/internal/domain/answer"
	"nanny-match/internal/domain/onboarding"
	"nanny-match/internal/pkg/apperr"
)

// AnswerNotifier is told about every committed answer write.
type AnswerNotifier interface {
	AnswerSaved(a answer.Answer, inserted bool)
}

type AnswerInput struct {
	ConfigID    string
	StepKey     string
	FieldKey    string
	Value       answer.Value
	IsCompleted bool
}

type SavedAnswer struct {
	answer.Answer
	Inserted bool
}

type AnswerUsecase interface {
	Save(ctx context.Context, userID uuid.UUID, in AnswerInput) (SavedAnswer, error)
	List(ctx context.Context, userID uuid.UUID, configID string) ([]answer.Answer, error)
}

type Answers struct {
	store    answer.Store
	registry onboarding.Registry
	notifier AnswerNotifier
	logger   *zap.Logger
}

func NewAnswerUsecase(store answer.Store, registry onboarding.Registry, notifier AnswerNotifier, logger *zap.Logger) *Answers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Answers{store: store, registry: registry, notifier: notifier, logger: logger}
}

// Save upserts the caller's answer for one field. The field must exist in the
// configuration and its type must accept the value's kind.
func (u *Answers) Save(ctx context.Context, userID uuid.UUID, in AnswerInput) (SavedAnswer, error) {
	const op = "answers.save"

	if userID == uuid.Nil {
		return SavedAnswer{}, apperr.Validation(op, "user id is required")
	}
	configID, err := uuid.Parse(strings.TrimSpace(in.ConfigID))
	if err != nil {
		return SavedAnswer{}, apperr.Validation(op, "config_id must be a uuid")
	}
	stepKey := strings.TrimSpace(in.StepKey)
	fieldKey := strings.TrimSpace(in.FieldKey)
	if stepKey == "" || fieldKey == "" {
		return SavedAnswer{}, apperr.Validation(op, "step_key and field_key are required")
	}
	if in.Value.IsZero() {
		return SavedAnswer{}, apperr.Validation(op, "exactly one value is required")
	}

	field, err := u.registry.ResolveField(ctx, onboarding.FieldRef{ConfigID: configID, StepKey: stepKey, FieldKey: fieldKey})
	if err != nil {
		if errors.Is(err, onboarding.ErrFieldNotFound) {
			return SavedAnswer{}, apperr.NotFound(op, "field %s.%s not found in configuration %s", stepKey, fieldKey, configID)
		}
		return SavedAnswer{}, u.fail(op, err)
	}
	if !field.Accepts(in.Value.Kind()) {
		return SavedAnswer{}, apperr.Validation(op, "field %s of type %s does not accept %s values", fieldKey, field.FieldType, in.Value.Kind())
	}

	sub := answer.Submission{
		UserID:      userID,
		ConfigID:    configID,
		StepKey:     stepKey,
		FieldKey:    fieldKey,
		Value:       in.Value,
		IsCompleted: in.IsCompleted,
	}
	ack, err := u.store.Save(ctx, sub)
	if err != nil {
		return SavedAnswer{}, u.fail(op, err)
	}

	saved := SavedAnswer{
		Answer: answer.Answer{
			ID:          ack.ID,
			UserID:      sub.UserID,
			ConfigID:    sub.ConfigID,
			StepKey:     sub.StepKey,
			FieldKey:    sub.FieldKey,
			Value:       sub.Value,
			IsCompleted: sub.IsCompleted,
			CreatedAt:   ack.CreatedAt,
			UpdatedAt:   ack.UpdatedAt,
		},
		Inserted: ack.Inserted,
	}

	u.logger.Debug("answer saved",
		zap.String("user_id", userID.String()),
		zap.String("config_id", configID.String()),
		zap.String("step_key", stepKey),
		zap.String("field_key", fieldKey),
		zap.Bool("inserted", ack.Inserted),
	)
	if u.notifier != nil {
		u.notifier.AnswerSaved(saved.Answer, saved.Inserted)
	}
	return saved, nil
}

func (u *Answers) List(ctx context.Context, userID uuid.UUID, configID string) ([]answer.Answer, error) {
	const op = "answers.list"

	if userID == uuid.Nil {
		return nil, apperr.Validation(op, "user id is required")
	}
	cfg, err := optionalUUID(op, "config_id", configID)
	if err != nil {
		return nil, err
	}
	out, err := u.store.List(ctx, userID, cfg)
	if err != nil {
		return nil, u.fail(op, err)
	}
	return out, nil
}

func (u *Answers) fail(op string, err error) error {
	err = classify(op, err)
	if apperr.IsStorage(err) {
		u.logger.Error("answer store failed", zap.String("op", op), zap.Error(err))
	}
	return err
}
