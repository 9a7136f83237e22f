package mcpServer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/akolanti/CampusAI/internal/domain/commonModels"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type searchFunc func(ctx context.Context, courseId, question string) ([]commonModels.RetrievalMatch, error)

func (f searchFunc) Search(ctx context.Context, courseId, question string) ([]commonModels.RetrievalMatch, error) {
	return f(ctx, courseId, question)
}

func connect(t *testing.T, s Searcher) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	serverSession, err := NewServer(s, "test").Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func TestSearchTool(t *testing.T) {
	var gotCourse, gotQuestion string
	session := connect(t, searchFunc(func(_ context.Context, courseId, question string) ([]commonModels.RetrievalMatch, error) {
		gotCourse, gotQuestion = courseId, question
		return []commonModels.RetrievalMatch{
			{MaterialId: "m1", Ordinal: 3, Content: "Mitochondria produce ATP.", Similarity: 0.82},
		}, nil
	}))

	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      SearchToolName,
		Arguments: map[string]any{"courseId": "bio-101", "question": "What do mitochondria do?"},
	})

	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Equal(t, "bio-101", gotCourse)
	assert.Equal(t, "What do mitochondria do?", gotQuestion)

	raw, err := json.Marshal(res.StructuredContent)
	require.NoError(t, err)
	var out SearchOutput
	require.NoError(t, json.Unmarshal(raw, &out))
	require.Len(t, out.Matches, 1)
	assert.Equal(t, "Mitochondria produce ATP.", out.Matches[0].Content)
	assert.Equal(t, 3, out.Matches[0].Ordinal)
}

func TestSearchToolError(t *testing.T) {
	session := connect(t, searchFunc(func(context.Context, string, string) ([]commonModels.RetrievalMatch, error) {
		return nil, errors.New("course is required")
	}))

	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      SearchToolName,
		Arguments: map[string]any{"courseId": "", "question": "q"},
	})

	if err == nil {
		assert.True(t, res.IsError)
	}
}

func TestToolIsListed(t *testing.T) {
	session := connect(t, searchFunc(func(context.Context, string, string) ([]commonModels.RetrievalMatch, error) {
		return nil, nil
	}))

	tools, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, tools.Tools, 1)
	assert.Equal(t, SearchToolName, tools.Tools[0].Name)
	assert.NotNil(t, tools.Tools[0].InputSchema)
}
