package feedback

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-itinerary-planner/internal/types"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Save(ctx context.Context, f types.Feedback) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockRepository) List(ctx context.Context, limit, offset int) ([]types.Feedback, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Feedback), args.Error(1)
}

func (m *MockRepository) Summary(ctx context.Context) (types.FeedbackSummary, error) {
	args := m.Called(ctx)
	return args.Get(0).(types.FeedbackSummary), args.Error(1)
}

func TestServiceImpl_Submit(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("stores normalised feedback", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewServiceImpl(repo, testLogger())
		svc.now = func() time.Time { return fixed }

		repo.On("Save", mock.Anything, mock.MatchedBy(func(f types.Feedback) bool {
			return f.Category == "other" && f.Comment == "great trip" && f.CreatedAt.Equal(fixed)
		})).Return(nil).Once()

		resp, err := svc.Submit(ctx, types.FeedbackRequest{Satisfaction: 5, Comment: "  great trip "})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.FeedbackID)
		assert.Equal(t, fixed, resp.Timestamp)
		repo.AssertExpectations(t)
	})

	t.Run("rejects invalid feedback", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewServiceImpl(repo, testLogger())

		_, err := svc.Submit(ctx, types.FeedbackRequest{Satisfaction: 0})
		var verr *types.ValidationError
		require.ErrorAs(t, err, &verr)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewServiceImpl(repo, testLogger())
		boom := errors.New("disk full")
		repo.On("Save", mock.Anything, mock.Anything).Return(boom)

		_, err := svc.Submit(ctx, types.FeedbackRequest{Satisfaction: 3})
		assert.ErrorIs(t, err, boom)
	})
}

func TestServiceImpl_List(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewServiceImpl(repo, testLogger())

	repo.On("List", mock.Anything, DefaultPageSize, 0).Return([]types.Feedback{}, nil).Once()
	repo.On("List", mock.Anything, 10, 20).Return([]types.Feedback{{Satisfaction: 4}}, nil).Once()

	items, err := svc.List(ctx, 500, -3)
	require.NoError(t, err)
	assert.Empty(t, items)

	items, err = svc.List(ctx, 10, 20)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	repo.AssertExpectations(t)
}

func TestServiceImpl_Summary(t *testing.T) {
	repo := new(MockRepository)
	svc := NewServiceImpl(repo, testLogger())
	repo.On("Summary", mock.Anything).Return(types.FeedbackSummary{Count: 2}, nil)

	s, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, s.Count)
}
