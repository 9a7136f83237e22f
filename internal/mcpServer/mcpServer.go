package mcpServer

import (
	"context"
	"net/http"

	"github.com/akolanti/CampusAI/internal/config"
	"github.com/akolanti/CampusAI/internal/domain/commonModels"
	"github.com/akolanti/CampusAI/pkg/logger_i"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const SearchToolName = "search_course_materials"

type Searcher interface {
	Search(ctx context.Context, courseId, question string) ([]commonModels.RetrievalMatch, error)
}

type SearchInput struct {
	CourseId string `json:"courseId" jsonschema:"id of the course whose materials are searched"`
	Question string `json:"question" jsonschema:"the student's question"`
}

type SearchMatch struct {
	MaterialId string  `json:"materialId,omitempty"`
	Ordinal    int     `json:"ordinal"`
	Content    string  `json:"content"`
	Similarity float32 `json:"similarity"`
}

type SearchOutput struct {
	Matches []SearchMatch `json:"matches"`
}

// NewServer exposes course material retrieval as an MCP tool, so agents can ground
// their own answers in a course without going through the chat endpoint.
func NewServer(searcher Searcher, version string) *mcp.Server {
	logger := logger_i.NewLogger("mcp")
	server := mcp.NewServer(&mcp.Implementation{Name: "campusai", Version: version}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        SearchToolName,
		Description: "Search a course's uploaded materials and return the most relevant passages, most similar first.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, in SearchInput) (*mcp.CallToolResult, SearchOutput, error) {
		matches, err := searcher.Search(ctx, in.CourseId, in.Question)
		if err != nil {
			logger.With("traceId", ctx.Value(config.TRACE_ID_KEY)).Warn("Search tool failed", "courseId", in.CourseId, "error", err)
			return nil, SearchOutput{}, err
		}
		out := SearchOutput{Matches: make([]SearchMatch, 0, len(matches))}
		for _, m := range matches {
			out.Matches = append(out.Matches, SearchMatch{
				MaterialId: m.MaterialId,
				Ordinal:    m.Ordinal,
				Content:    m.Content,
				Similarity: m.Similarity,
			})
		}
		return nil, out, nil
	})
	return server
}

// Handler serves the MCP server over the streamable HTTP transport.
func Handler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return server }, nil)
}
