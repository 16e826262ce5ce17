package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	log "github.com/sirupsen/logrus"
)

// Handler handles MCP tool requests and responses: parses input, calls the service, formats MCP result.
type Handler struct {
	service contextService
}

func NewHandler(service contextService) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) ListExercisesTool() server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		list, err := h.service.ListExercises(ctx, ExerciseFilter{
			MuscleGroup: req.GetString("muscle_group", ""),
			Category:    req.GetString("category", ""),
		})
		if err != nil {
			return toolError("Error listing exercises", err), nil
		}
		return jsonResult(map[string]any{
			"exercises": list,
			"total":     len(list),
		}), nil
	}
}

func (h *Handler) AlternativesTool() server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		exercise, err := req.RequireString("exercise")
		if err != nil {
			return mcp.NewToolResultError("exercise parameter is required"), nil
		}
		alternatives, err := h.service.Alternatives(ctx, exercise)
		if err != nil {
			return toolError("Error resolving alternatives", err), nil
		}
		return jsonResult(map[string]any{
			"exercise":     exercise,
			"alternatives": alternatives,
		}), nil
	}
}

func (h *Handler) ListProgramsTool() server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		programs, err := h.service.ListPrograms(ctx)
		if err != nil {
			return toolError("Error listing programs", err), nil
		}
		return jsonResult(programs), nil
	}
}

func (h *Handler) ActiveAdaptationsTool() server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		programID, err := req.RequireString("program_id")
		if err != nil {
			return mcp.NewToolResultError("program_id parameter is required"), nil
		}
		adaptations, err := h.service.ActiveAdaptations(ctx, programID)
		if err != nil {
			return toolError("Error fetching adaptations", err), nil
		}
		return jsonResult(map[string]any{
			"adaptations": adaptations,
			"total":       len(adaptations),
		}), nil
	}
}

func (h *Handler) RecentSessionsTool() server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sessions, err := h.service.RecentSessions(
			ctx,
			req.GetString("program_id", ""),
			req.GetInt("limit", defaultHistoryLimit),
		)
		if err != nil {
			return toolError("Error loading workout history", err), nil
		}
		return jsonResult(sessions), nil
	}
}

func toolError(msg string, err error) *mcp.CallToolResult {
	log.Errorf("mcp: %s: %s", msg, err)
	return mcp.NewToolResultError(msg + ": " + err.Error())
}

func jsonResult(v any) *mcp.CallToolResult {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed")
	}
	return result
}
