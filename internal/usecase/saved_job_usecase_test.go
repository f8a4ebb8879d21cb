package usecase

import (
	"context"
	"errors"
	"testing"

	"career-match/internal/domain/job"
	"career-match/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSavedRepo struct {
	saved map[uuid.UUID]bool
	known map[uuid.UUID]job.Posting
	err   error
}

func (m *mockSavedRepo) Save(_ context.Context, _, jobID uuid.UUID) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	if _, ok := m.known[jobID]; !ok {
		return false, repository.ErrJobNotFound
	}
	if m.saved[jobID] {
		return false, nil
	}
	m.saved[jobID] = true
	return true, nil
}

func (m *mockSavedRepo) Remove(_ context.Context, _, jobID uuid.UUID) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	if !m.saved[jobID] {
		return false, nil
	}
	delete(m.saved, jobID)
	return true, nil
}

func (m *mockSavedRepo) List(context.Context, uuid.UUID, int, int) ([]job.Posting, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]job.Posting, 0, len(m.saved))
	for id := range m.saved {
		out = append(out, m.known[id])
	}
	return out, nil
}

func TestSavedJobs_Lifecycle(t *testing.T) {
	jobID := uuid.New()
	repo := &mockSavedRepo{saved: map[uuid.UUID]bool{}, known: map[uuid.UUID]job.Posting{jobID: {ID: jobID}}}
	u := NewSavedJobUsecase(repo, quietLogger())
	userID := uuid.New()
	ctx := context.Background()

	created, err := u.Save(ctx, userID, jobID)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = u.Save(ctx, userID, jobID)
	require.NoError(t, err)
	assert.False(t, created)

	list, err := u.List(ctx, userID, 0, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, u.Remove(ctx, userID, jobID))
	assert.ErrorIs(t, u.Remove(ctx, userID, jobID), ErrNotFound)
}

func TestSavedJobs_Errors(t *testing.T) {
	repo := &mockSavedRepo{saved: map[uuid.UUID]bool{}, known: map[uuid.UUID]job.Posting{}}
	u := NewSavedJobUsecase(repo, quietLogger())
	ctx := context.Background()

	_, err := u.Save(ctx, uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = u.Save(ctx, uuid.Nil, uuid.New())
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = u.Save(ctx, uuid.New(), uuid.Nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = u.List(ctx, uuid.New(), 100, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	broken := NewSavedJobUsecase(&mockSavedRepo{err: errors.New("down")}, quietLogger())
	_, err = broken.List(ctx, uuid.New(), 10, 0)
	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, broken.Remove(ctx, uuid.New(), uuid.New()), ErrInternal)
}
