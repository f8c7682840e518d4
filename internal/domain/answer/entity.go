package answer

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Answer is one user's stored response to one questionnaire field.
type Answer struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	ConfigID    uuid.UUID
	StepKey     string
	FieldKey    string
	Value       Value
	IsCompleted bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Submission is the unit written by Store.Save; (UserID, ConfigID, StepKey,
// FieldKey) identifies the row it lands in.
type Submission struct {
	UserID      uuid.UUID
	ConfigID    uuid.UUID
	StepKey     string
	FieldKey    string
	Value       Value
	IsCompleted bool
}

type Ack struct {
	ID        uuid.UUID
	Inserted  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Store interface {
	Save(ctx context.Context, s Submission) (Ack, error)
	List(ctx context.Context, userID uuid.UUID, configID *uuid.UUID) ([]Answer, error)
}
