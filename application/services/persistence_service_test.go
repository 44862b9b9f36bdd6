package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/zaheyak/Content-Studio-sub000/domain/config"
	"github.com/zaheyak/Content-Studio-sub000/domain/content"
	"github.com/zaheyak/Content-Studio-sub000/domain/core/valueobjects"
	"github.com/zaheyak/Content-Studio-sub000/domain/events"
	pkgerrors "github.com/zaheyak/Content-Studio-sub000/pkg/errors"
	"github.com/zaheyak/Content-Studio-sub000/pkg/observability"
)

func lesson(t *testing.T, id string) valueobjects.LessonID {
	t.Helper()
	l, err := valueobjects.NewLessonID(id)
	require.NoError(t, err)
	return l
}

func sampleData() content.MindMapData {
	return content.MindMapData{
		Nodes: []content.NodeData{
			{ID: "root", Label: "Cells", X: 400, Y: 300, Level: 0},
			{ID: "leaf", Label: "Nucleus", X: 600, Y: 300, Level: 1},
		},
		Connections:     []content.ConnectionData{{From: "root", To: "leaf"}},
		NodeCount:       2,
		ConnectionCount: 1,
	}
}

func newPersistence(repo *MockContentRepository, pub *MockEventPublisher, cache *mapCache) *PersistenceService {
	svc := NewPersistenceService(repo, nil, nil, config.DefaultDomainConfig(), observability.NewNopCollector(), nil, zap.NewNop())
	if pub != nil {
		svc.publisher = pub
	}
	if cache != nil {
		svc.cache = cache
	}
	return svc
}

func TestPersistenceService_LoadMissingIsEmpty(t *testing.T) {
	repo := new(MockContentRepository)
	id := lesson(t, "lesson-1")
	repo.On("GetFormat", mock.Anything, id, content.KindMindMap).Return(nil, pkgerrors.NewNotFoundError("mindmap"))

	svc := newPersistence(repo, nil, nil)
	g, err := svc.Load(context.Background(), id)

	require.NoError(t, err)
	assert.True(t, g.IsEmpty())
}

func TestPersistenceService_LoadRestoresGraph(t *testing.T) {
	repo := new(MockContentRepository)
	id := lesson(t, "lesson-1")
	repo.On("GetFormat", mock.Anything, id, content.KindMindMap).
		Return(content.MindMap{Method: content.MethodManual, Data: sampleData()}, nil).Once()

	svc := newPersistence(repo, nil, newMapCache())

	g, err := svc.Load(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 2, g.NodeCount())
	assert.Equal(t, 1, g.ConnectionCount())

	// second load is served from cache
	_, found, err := svc.LoadData(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, found)
	repo.AssertNumberOfCalls(t, "GetFormat", 1)
}

func TestPersistenceService_LoadPropagatesErrors(t *testing.T) {
	repo := new(MockContentRepository)
	id := lesson(t, "lesson-1")
	repo.On("GetFormat", mock.Anything, id, content.KindMindMap).Return(nil, pkgerrors.NewDatabaseError("GetItem", errors.New("throttled")))

	_, err := newPersistence(repo, nil, nil).Load(context.Background(), id)

	require.Error(t, err)
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeDatabase))
}

func TestPersistenceService_SavePublishesCompletion(t *testing.T) {
	repo := new(MockContentRepository)
	pub := new(MockEventPublisher)
	id := lesson(t, "lesson-7")

	repo.On("SaveFormat", mock.Anything, id, content.MindMap{Method: content.MethodGenerated, Data: sampleData()}).Return(nil)
	pub.On("Publish", mock.Anything, mock.MatchedBy(func(e events.DomainEvent) bool {
		done, ok := e.(events.MindMapCompleted)
		return ok &&
			done.LessonID == "lesson-7" &&
			done.Content.Type == content.KindMindMap &&
			done.Content.Method == content.MethodGenerated &&
			done.Content.Completed
	})).Return(nil)

	err := newPersistence(repo, pub, nil).Save(context.Background(), id, sampleData(), content.MethodGenerated)

	require.NoError(t, err)
	repo.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestPersistenceService_SaveFailures(t *testing.T) {
	tests := []struct {
		name      string
		saveErr   error
		pubErr    error
		wantCode  string
		published bool
	}{
		{name: "repository failure", saveErr: errors.New("boom"), wantCode: "SAVE_FAILED"},
		{name: "publish failure", pubErr: errors.New("bus down"), wantCode: "EVENT_PUBLISH_FAILED", published: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockContentRepository)
			pub := new(MockEventPublisher)
			id := lesson(t, "lesson-1")
			repo.On("SaveFormat", mock.Anything, id, mock.Anything).Return(tt.saveErr)
			pub.On("Publish", mock.Anything, mock.Anything).Return(tt.pubErr)

			err := newPersistence(repo, pub, nil).Save(context.Background(), id, sampleData(), content.MethodManual)

			require.Error(t, err)
			var domainErr *pkgerrors.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, tt.wantCode, domainErr.Code)
			if tt.published {
				pub.AssertNumberOfCalls(t, "Publish", 1)
			} else {
				pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestPersistenceService_SaveInvalidatesCache(t *testing.T) {
	repo := new(MockContentRepository)
	id := lesson(t, "lesson-1")
	repo.On("SaveFormat", mock.Anything, id, mock.Anything).Return(nil)
	cache := newMapCache()
	_ = cache.Set(context.Background(), cacheKey(id), content.EmptyMindMapData(), 60)

	svc := newPersistence(repo, nil, cache)
	require.NoError(t, svc.Save(context.Background(), id, sampleData(), content.MethodManual))

	_, cached := cache.Get(context.Background(), cacheKey(id))
	assert.False(t, cached)
}
