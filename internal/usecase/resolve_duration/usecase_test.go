package resolve_duration

import (
	"context"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	durationRepo "github.com/m04kA/SMC-SalonScheduling/internal/infra/storage/durationrule"
	resourceRepo "github.com/m04kA/SMC-SalonScheduling/internal/infra/storage/resource"
	subjectRepo "github.com/m04kA/SMC-SalonScheduling/internal/infra/storage/subject"
	"github.com/m04kA/SMC-SalonScheduling/pkg/ptr"
	"github.com/m04kA/SMC-SalonScheduling/pkg/txmanager"
)

type ruleKey struct{ subjectType, resource int64 }

type fakeRules struct {
	rules map[ruleKey]*domain.DurationRule
	err   error
}

func (f *fakeRules) Get(_ context.Context, subjectTypeID, resourceID int64) (*domain.DurationRule, error) {
	if f.err != nil {
		return nil, f.err
	}
	rule, ok := f.rules[ruleKey{subjectTypeID, resourceID}]
	if !ok {
		return nil, durationRepo.ErrRuleNotFound
	}
	return rule, nil
}

type fakeSubjects struct {
	types map[int64]*domain.SubjectType
}

func (f *fakeSubjects) GetSubjectType(_ context.Context, id int64) (*domain.SubjectType, error) {
	if t, ok := f.types[id]; ok {
		return t, nil
	}
	return nil, subjectRepo.ErrSubjectTypeNotFound
}

type fakeResources struct {
	resources map[int64]*domain.Resource
}

func (f *fakeResources) GetByID(_ context.Context, id int64) (*domain.Resource, error) {
	if r, ok := f.resources[id]; ok {
		return r, nil
	}
	return nil, resourceRepo.ErrResourceNotFound
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newUseCase(rules *fakeRules) *UseCase {
	subjects := &fakeSubjects{types: map[int64]*domain.SubjectType{
		1: {ID: 1, Name: "Poodle", IsActive: true},
		2: {ID: 2, Name: "Retired breed", IsActive: false},
	}}
	resources := &fakeResources{resources: map[int64]*domain.Resource{
		10: {ID: 10, Name: "Table 1", IsActive: true},
		11: {ID: 11, Name: "Table 2", IsActive: true},
	}}
	return NewUseCase(rules, subjects, resources, nopLogger{})
}

func TestExecute_Supported(t *testing.T) {
	uc := newUseCase(&fakeRules{rules: map[ruleKey]*domain.DurationRule{
		{1, 10}: {ID: 1, SubjectTypeID: 1, ResourceID: 10, Minutes: ptr.Ptr(45)},
	}})

	resp, err := uc.Execute(context.Background(), &Request{SubjectTypeID: 1, ResourceID: 10, SelectionKey: "dog-1/table-1"})
	require.NoError(t, err)
	assert.Equal(t, "dog-1/table-1", resp.SelectionKey)
	assert.Equal(t, domain.DurationSupported, resp.Status)
	assert.Equal(t, 45, resp.Minutes)
}

func TestExecute_Unsupported(t *testing.T) {
	uc := newUseCase(&fakeRules{rules: map[ruleKey]*domain.DurationRule{
		{1, 10}: {ID: 1, SubjectTypeID: 1, ResourceID: 10, Reason: ptr.Ptr("too large for this table")},
	}})

	resp, err := uc.Execute(context.Background(), &Request{SubjectTypeID: 1, ResourceID: 10})
	require.NoError(t, err)
	assert.Equal(t, domain.DurationUnsupported, resp.Status)
	assert.Equal(t, "too large for this table", resp.Reason)
	assert.Zero(t, resp.Minutes)

	// отсутствие правила тоже unsupported
	resp, err = uc.Execute(context.Background(), &Request{SubjectTypeID: 1, ResourceID: 11})
	require.NoError(t, err)
	assert.Equal(t, domain.DurationUnsupported, resp.Status)
	assert.NotEmpty(t, resp.Reason)
}

func TestExecute_LookupErrorIsNotDefaulted(t *testing.T) {
	uc := newUseCase(&fakeRules{err: errors.New("connection reset")})

	resp, err := uc.Execute(context.Background(), &Request{SubjectTypeID: 1, ResourceID: 10})
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrInternal)
	assert.NotErrorIs(t, err, domain.ErrValidation)
}

func TestResolve_SerializationFailureStaysRetryable(t *testing.T) {
	uc := newUseCase(&fakeRules{err: &pq.Error{Code: "40001"}})

	_, err := uc.Resolve(context.Background(), 1, 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternal)
	// запись выполняется в DoSerializable: конфликт должен дойти до менеджера транзакций
	assert.True(t, txmanager.IsRetryable(err))
}

func TestExecute_Validation(t *testing.T) {
	uc := newUseCase(&fakeRules{})

	tests := []struct {
		name string
		req  *Request
		want error
	}{
		{"missing subject type", &Request{ResourceID: 10}, ErrInvalidInput},
		{"missing resource", &Request{SubjectTypeID: 1}, ErrInvalidInput},
		{"unknown subject type", &Request{SubjectTypeID: 99, ResourceID: 10}, ErrSubjectTypeNotFound},
		{"unknown resource", &Request{SubjectTypeID: 1, ResourceID: 99}, ErrResourceNotFound},
		{"inactive subject type", &Request{SubjectTypeID: 2, ResourceID: 10}, ErrInactive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}
