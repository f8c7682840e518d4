package usecase

import (
	"context"

	"github.com/google/uuid"

	"nanny-match/internal/domain/answer"
	"nanny-match/internal/domain/onboarding"
	"nanny-match/internal/query"
	"nanny-match/internal/repository"
)

type mockRegistry struct {
	configs    []onboarding.Configuration
	defaultCfg *onboarding.Configuration
	steps      []onboarding.Step
	fields     []onboarding.Field
	field      onboarding.Field
	err        error

	lastConfigFilter onboarding.ConfigFilter
	lastStepFilter   onboarding.StepFilter
	lastFieldFilter  onboarding.FieldFilter
	lastRef          onboarding.FieldRef
}

func (m *mockRegistry) Configurations(_ context.Context, f onboarding.ConfigFilter) ([]onboarding.Configuration, error) {
	m.lastConfigFilter = f
	return m.configs, m.err
}

func (m *mockRegistry) DefaultConfiguration(context.Context, string) (*onboarding.Configuration, error) {
	return m.defaultCfg, m.err
}

func (m *mockRegistry) Steps(_ context.Context, f onboarding.StepFilter) ([]onboarding.Step, error) {
	m.lastStepFilter = f
	return m.steps, m.err
}

func (m *mockRegistry) StepsByRole(context.Context, string) ([]onboarding.Step, error) {
	return m.steps, m.err
}

func (m *mockRegistry) Fields(_ context.Context, f onboarding.FieldFilter) ([]onboarding.Field, error) {
	m.lastFieldFilter = f
	return m.fields, m.err
}

func (m *mockRegistry) ActiveFieldsByStep(context.Context, uuid.UUID) ([]onboarding.Field, error) {
	return m.fields, m.err
}

func (m *mockRegistry) ResolveField(_ context.Context, ref onboarding.FieldRef) (onboarding.Field, error) {
	m.lastRef = ref
	return m.field, m.err
}

// memAnswerStore keys rows the same way the database unique constraint does.
type memAnswerStore struct {
	rows    map[string]answer.Answer
	order   []string
	saveErr error
}

func newMemAnswerStore() *memAnswerStore {
	return &memAnswerStore{rows: map[string]answer.Answer{}}
}

func answerKey(userID, configID uuid.UUID, step, field string) string {
	return userID.String() + "|" + configID.String() + "|" + step + "|" + field
}

func (m *memAnswerStore) Save(_ context.Context, s answer.Submission) (answer.Ack, error) {
	if m.saveErr != nil {
		return answer.Ack{}, m.saveErr
	}
	k := answerKey(s.UserID, s.ConfigID, s.StepKey, s.FieldKey)
	existing, ok := m.rows[k]
	a := answer.Answer{
		ID: uuid.New(), UserID: s.UserID, ConfigID: s.ConfigID,
		StepKey: s.StepKey, FieldKey: s.FieldKey, Value: s.Value, IsCompleted: s.IsCompleted,
	}
	if ok {
		a.ID = existing.ID
	} else {
		m.order = append(m.order, k)
	}
	m.rows[k] = a
	return answer.Ack{ID: a.ID, Inserted: !ok}, nil
}

func (m *memAnswerStore) List(_ context.Context, userID uuid.UUID, configID *uuid.UUID) ([]answer.Answer, error) {
	out := make([]answer.Answer, 0)
	for _, k := range m.order {
		a := m.rows[k]
		if a.UserID != userID {
			continue
		}
		if configID != nil && a.ConfigID != *configID {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

type recordingNotifier struct {
	events []answer.Answer
}

func (r *recordingNotifier) AnswerSaved(a answer.Answer, _ bool) { r.events = append(r.events, a) }

type mockTableRepo struct {
	rows   []query.Row
	err    error
	calls  int
	params repository.TableListParams
	table  string
}

func (m *mockTableRepo) List(_ context.Context, d *query.Descriptor, p repository.TableListParams) ([]query.Row, query.Compiled, error) {
	m.calls++
	m.params = p
	m.table = d.Name()
	if m.err != nil {
		return nil, query.Compiled{}, m.err
	}
	c, err := query.Compile(d, p.Predicates, p.Order)
	if err != nil {
		return nil, query.Compiled{}, err
	}
	return m.rows, c, nil
}

func (m *mockTableRepo) Count(context.Context, *query.Descriptor) (int64, error) {
	return int64(len(m.rows)), m.err
}
