package mcp

import (
	"github.com/2beens/gymcoach/internal/catalog"
	"github.com/2beens/gymcoach/internal/storage"
	"github.com/2beens/gymcoach/internal/substitution"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewServer builds an MCP server with gym coach tools: exercise catalog, alternatives,
// saved programs, active adaptations and workout history.
// Mounted on the main backend at /mcp and served over stdio by cmd/coach_mcp.
func NewServer(store storage.Store, exercises *catalog.Catalog, suggestions suggestionSource, version string) *server.MCPServer {
	svc := NewContextService(store, exercises, substitution.NewResolver(exercises), suggestions)
	h := NewHandler(svc)

	s := server.NewMCPServer("gymcoach-context", version,
		server.WithToolCapabilities(false),
		server.WithInstructions("Gym coach context server. Query the exercise catalog, substitutes, saved programs, pending progressive-overload adaptations and finalized workouts."),
	)

	s.AddTools(
		server.ServerTool{
			Tool: mcp.NewTool("list_exercises",
				mcp.WithDescription("Returns catalog exercises (id, name, muscle group, region, movement pattern, category, declared alternatives). Optional filters: muscle_group, category."),
				mcp.WithString("muscle_group", mcp.Description("Filter by primary muscle group (e.g. chest, legs)")),
				mcp.WithString("category", mcp.Description("Filter by category (e.g. compound, isolation)")),
			),
			Handler: h.ListExercisesTool(),
		},
		server.ServerTool{
			Tool: mcp.NewTool("get_alternatives",
				mcp.WithDescription("Returns ranked substitutes for an exercise: its declared alternatives first, then catalog neighbours with the same muscle group and category."),
				mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name as it appears in the catalog")),
			),
			Handler: h.AlternativesTool(),
		},
		server.ServerTool{
			Tool: mcp.NewTool("list_programs",
				mcp.WithDescription("Returns the saved workout programs with their shape (flat or weekly), day count and exercise count."),
			),
			Handler: h.ListProgramsTool(),
		},
		server.ServerTool{
			Tool: mcp.NewTool("get_active_adaptations",
				mcp.WithDescription("Returns the analyzer's adaptation suggestions for a program that were not implemented yet, highest priority first."),
				mcp.WithString("program_id", mcp.Required(), mcp.Description("Saved program id")),
			),
			Handler: h.ActiveAdaptationsTool(),
		},
		server.ServerTool{
			Tool: mcp.NewTool("get_workout_history",
				mcp.WithDescription("Returns finalized workout sessions, newest first, with completed sets, survey answers and health metrics."),
				mcp.WithString("program_id", mcp.Description("Only sessions of this program")),
				mcp.WithNumber("limit", mcp.Description("Max sessions to return. Defaults to 10.")),
			),
			Handler: h.RecentSessionsTool(),
		},
	)

	return s
}
