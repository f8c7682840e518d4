package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"nanny-match/internal/domain/answer"
)

const EventAnswerSaved = "onboarding_answer_saved"

type AnswerSavedEvent struct {
	Type        string       `json:"type"`
	AnswerID    uuid.UUID    `json:"answer_id"`
	ConfigID    uuid.UUID    `json:"config_id"`
	StepKey     string       `json:"step_key"`
	FieldKey    string       `json:"field_key"`
	Value       answer.Value `json:"value"`
	IsCompleted bool         `json:"is_completed"`
	Inserted    bool         `json:"inserted"`
	Timestamp   string       `json:"timestamp"`
}

// Notifier publishes answer writes to the owning user's connections.
type Notifier struct {
	hub *Hub
	now func() time.Time
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub, now: time.Now}
}

func (n *Notifier) AnswerSaved(a answer.Answer, inserted bool) {
	if n == nil || n.hub == nil {
		return
	}

	evt := AnswerSavedEvent{
		Type:        EventAnswerSaved,
		AnswerID:    a.ID,
		ConfigID:    a.ConfigID,
		StepKey:     a.StepKey,
		FieldKey:    a.FieldKey,
		Value:       a.Value,
		IsCompleted: a.IsCompleted,
		Inserted:    inserted,
		Timestamp:   n.now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	n.hub.Broadcast(a.UserID, b)
}
