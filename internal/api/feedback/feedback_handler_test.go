package feedback

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-itinerary-planner/internal/types"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Submit(ctx context.Context, req types.FeedbackRequest) (*types.FeedbackResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.FeedbackResponse), args.Error(1)
}

func (m *MockService) List(ctx context.Context, limit, offset int) ([]types.Feedback, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Feedback), args.Error(1)
}

func (m *MockService) Summary(ctx context.Context) (types.FeedbackSummary, error) {
	args := m.Called(ctx)
	return args.Get(0).(types.FeedbackSummary), args.Error(1)
}

func TestHandlerImpl_Submit(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc, testLogger())
		id := uuid.New()
		svc.On("Submit", mock.Anything, mock.MatchedBy(func(r types.FeedbackRequest) bool { return r.Satisfaction == 4 })).
			Return(&types.FeedbackResponse{FeedbackID: id, Message: "ok", Timestamp: time.Now()}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/feedback", bytes.NewBufferString(`{"satisfaction": 4, "category": "places"}`))
		rr := httptest.NewRecorder()
		h.Submit(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)
		var resp types.FeedbackResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, id, resp.FeedbackID)
	})

	t.Run("malformed body", func(t *testing.T) {
		h := NewHandler(new(MockService), testLogger())
		req := httptest.NewRequest(http.MethodPost, "/api/v1/feedback", bytes.NewBufferString(`{"satisfaction":`))
		rr := httptest.NewRecorder()
		h.Submit(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("validation error", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc, testLogger())
		svc.On("Submit", mock.Anything, mock.Anything).
			Return(nil, &types.ValidationError{Fields: []types.FieldError{{Field: "satisfaction", Message: "must be at least 1"}}})

		req := httptest.NewRequest(http.MethodPost, "/api/v1/feedback", bytes.NewBufferString(`{"satisfaction": 0}`))
		rr := httptest.NewRecorder()
		h.Submit(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "satisfaction")
	})

	t.Run("store failure", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc, testLogger())
		svc.On("Submit", mock.Anything, mock.Anything).Return(nil, errors.New("down"))

		req := httptest.NewRequest(http.MethodPost, "/api/v1/feedback", bytes.NewBufferString(`{"satisfaction": 3}`))
		rr := httptest.NewRecorder()
		h.Submit(rr, req)
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestHandlerImpl_ListAndSummary(t *testing.T) {
	svc := new(MockService)
	h := NewHandler(svc, testLogger())
	svc.On("List", mock.Anything, 5, 10).Return([]types.Feedback{{Satisfaction: 5, Category: "ui"}}, nil)
	svc.On("Summary", mock.Anything).Return(types.FeedbackSummary{Count: 1, ByCategory: map[string]int{"ui": 1}}, nil)

	rr := httptest.NewRecorder()
	h.List(rr, httptest.NewRequest(http.MethodGet, "/api/v1/admin/feedback?limit=5&offset=10", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var items []types.Feedback
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &items))
	assert.Len(t, items, 1)

	rr = httptest.NewRecorder()
	h.Summary(rr, httptest.NewRequest(http.MethodGet, "/api/v1/admin/feedback/summary", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"count":1`)
}
