package dynamodb

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/zaheyak/Content-Studio-sub000/domain/content"
	"github.com/zaheyak/Content-Studio-sub000/domain/core/valueobjects"
	pkgerrors "github.com/zaheyak/Content-Studio-sub000/pkg/errors"
	"github.com/zaheyak/Content-Studio-sub000/pkg/observability"
)

// fakeTable keeps items by PK and SK and answers key-prefix queries one item
// per page so pagination is exercised.
type fakeTable struct {
	mu    sync.Mutex
	items map[string]map[string]types.AttributeValue
	fail  error
}

func newFakeTable() *fakeTable {
	return &fakeTable{items: make(map[string]map[string]types.AttributeValue)}
}

func str(av types.AttributeValue) string {
	if s, ok := av.(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func itemKey(item map[string]types.AttributeValue) string {
	return str(item["PK"]) + "|" + str(item["SK"])
}

func (f *fakeTable) PutItem(ctx context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	f.items[itemKey(in.Item)] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeTable) GetItem(ctx context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	return &dynamodb.GetItemOutput{Item: f.items[itemKey(in.Key)]}, nil
}

func (f *fakeTable) DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, itemKey(in.Key))
	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *fakeTable) Query(ctx context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}

	var pk string
	for _, v := range in.ExpressionAttributeValues {
		if s := str(v); strings.HasPrefix(s, "LESSON#") {
			pk = s
		}
	}

	keys := make([]string, 0, len(f.items))
	for k := range f.items {
		if strings.HasPrefix(k, pk+"|FORMAT#") {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	start := 0
	if in.ExclusiveStartKey != nil {
		start = sort.SearchStrings(keys, itemKey(in.ExclusiveStartKey)) + 1
	}
	if start >= len(keys) {
		return &dynamodb.QueryOutput{}, nil
	}

	item := f.items[keys[start]]
	out := &dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{item}}
	if start+1 < len(keys) {
		out.LastEvaluatedKey = map[string]types.AttributeValue{"PK": item["PK"], "SK": item["SK"]}
	}
	return out, nil
}

func newRepo(table *fakeTable) *ContentRepository {
	return NewContentRepository(table, "content-studio", observability.NewNopCollector(), zap.NewNop())
}

func lessonID(t *testing.T) valueobjects.LessonID {
	t.Helper()
	id, err := valueobjects.NewLessonID("lesson-42")
	require.NoError(t, err)
	return id
}

func mindMap() content.MindMap {
	return content.MindMap{
		Method: content.MethodManual,
		Data: content.MindMapData{
			Nodes: []content.NodeData{
				{ID: "root", Label: "Ecosystems", X: 400, Y: 300, Level: 0, Color: "#3b82f6"},
				{ID: "n1", Label: "Producers", X: 600, Y: 300, Level: 1, Color: "#10b981"},
			},
			Connections:     []content.ConnectionData{{From: "root", To: "n1"}},
			NodeCount:       2,
			ConnectionCount: 1,
		},
	}
}

func TestContentRepository_SaveAndGetMindMap(t *testing.T) {
	table := newFakeTable()
	repo := newRepo(table)
	id := lessonID(t)

	require.NoError(t, repo.SaveFormat(context.Background(), id, mindMap()))

	stored := table.items["LESSON#lesson-42|FORMAT#mindmap"]
	require.NotNil(t, stored)
	assert.Equal(t, "CONTENT_FORMAT", str(stored["EntityType"]))
	assert.IsType(t, &types.AttributeValueMemberM{}, stored["MindMap"])

	got, err := repo.GetFormat(context.Background(), id, content.KindMindMap)
	require.NoError(t, err)
	assert.Equal(t, mindMap(), got)
	assert.True(t, got.Completed())
}

func TestContentRepository_EmptyMindMapKeepsSlices(t *testing.T) {
	repo := newRepo(newFakeTable())
	id := lessonID(t)
	require.NoError(t, repo.SaveFormat(context.Background(), id, content.MindMap{Method: content.MethodManual, Data: content.EmptyMindMapData()}))

	got, err := repo.GetFormat(context.Background(), id, content.KindMindMap)

	require.NoError(t, err)
	mm := got.(content.MindMap)
	assert.NotNil(t, mm.Data.Nodes)
	assert.NotNil(t, mm.Data.Connections)
	assert.False(t, mm.Completed())
}

func TestContentRepository_OtherFormatsRoundTripAsJSON(t *testing.T) {
	table := newFakeTable()
	repo := newRepo(table)
	id := lessonID(t)
	text := content.Text{Method: content.MethodUpload, Data: content.TextData{Body: "Energy flows through food chains."}}

	require.NoError(t, repo.SaveFormat(context.Background(), id, text))
	assert.Contains(t, str(table.items["LESSON#lesson-42|FORMAT#text"]["Data"]), "food chains")

	got, err := repo.GetFormat(context.Background(), id, content.KindText)
	require.NoError(t, err)
	assert.Equal(t, text, got)
}

func TestContentRepository_GetMissing(t *testing.T) {
	_, err := newRepo(newFakeTable()).GetFormat(context.Background(), lessonID(t), content.KindMindMap)

	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestContentRepository_ListFormatsPaginates(t *testing.T) {
	table := newFakeTable()
	repo := newRepo(table)
	id := lessonID(t)
	other, err := valueobjects.NewLessonID("lesson-7")
	require.NoError(t, err)

	require.NoError(t, repo.SaveFormat(context.Background(), id, mindMap()))
	require.NoError(t, repo.SaveFormat(context.Background(), id, content.Code{Method: content.MethodManual, Data: content.CodeData{Language: "go", Source: "package main"}}))
	require.NoError(t, repo.SaveFormat(context.Background(), id, content.Video{Method: content.MethodUpload, Data: content.VideoData{URL: "https://cdn.example/v.mp4"}}))
	require.NoError(t, repo.SaveFormat(context.Background(), other, mindMap()))

	formats, err := repo.ListFormats(context.Background(), id)

	require.NoError(t, err)
	kinds := []content.Kind{}
	for _, f := range formats {
		kinds = append(kinds, f.Kind())
	}
	assert.Equal(t, []content.Kind{content.KindCode, content.KindMindMap, content.KindVideo}, kinds)
}

func TestContentRepository_Delete(t *testing.T) {
	table := newFakeTable()
	repo := newRepo(table)
	id := lessonID(t)
	require.NoError(t, repo.SaveFormat(context.Background(), id, mindMap()))

	require.NoError(t, repo.DeleteFormat(context.Background(), id, content.KindMindMap))

	_, err := repo.GetFormat(context.Background(), id, content.KindMindMap)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestContentRepository_ClientErrorsAreDatabaseErrors(t *testing.T) {
	table := newFakeTable()
	table.fail = errors.New("ProvisionedThroughputExceededException")
	repo := newRepo(table)
	id := lessonID(t)

	tests := []struct {
		name string
		call func() error
	}{
		{"save", func() error { return repo.SaveFormat(context.Background(), id, mindMap()) }},
		{"get", func() error { _, err := repo.GetFormat(context.Background(), id, content.KindMindMap); return err }},
		{"list", func() error { _, err := repo.ListFormats(context.Background(), id); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeDatabase))
		})
	}
}
