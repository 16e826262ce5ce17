package coach

import (
	"net/http"

	"github.com/2beens/gymcoach/internal/adaptation"
	"github.com/2beens/gymcoach/internal/program"
	"github.com/2beens/gymcoach/internal/telemetry/tracing"
	"github.com/2beens/gymcoach/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type applyRequest struct {
	Adaptation *program.Adaptation `json:"adaptation"`
}

func (h *Handler) HandleListAdaptations(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.adaptations.list")
	defer span.End()

	programID := mux.Vars(r)["id"]
	span.SetAttributes(attribute.String("program.id", programID))

	active, err := h.suggestions.Active(ctx, programID)
	if err != nil {
		writeError(w, "list adaptations", err)
		return
	}

	pkg.WriteJSON(w, struct {
		Adaptations []program.Adaptation `json:"adaptations"`
		Total       int                  `json:"total"`
	}{
		Adaptations: active,
		Total:       len(active),
	}, http.StatusOK)
}

func (h *Handler) HandleApply(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.adaptations.apply")
	defer span.End()

	programID := mux.Vars(r)["id"]
	span.SetAttributes(attribute.String("program.id", programID))

	var req applyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, "apply adaptation", err)
		return
	}
	if req.Adaptation == nil || len(req.Adaptation.Changes) == 0 {
		pkg.WriteJSONError(w, "adaptation with changes required", http.StatusBadRequest)
		return
	}

	result, err := h.applicator.Apply(ctx, programID, *req.Adaptation)
	if err != nil {
		writeError(w, "apply adaptation", err)
		return
	}
	h.writeResult(w, programID, result)
}

func (h *Handler) HandleApplyAll(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.adaptations.applyAll")
	defer span.End()

	programID := mux.Vars(r)["id"]
	span.SetAttributes(attribute.String("program.id", programID))

	active, err := h.suggestions.Active(ctx, programID)
	if err != nil {
		writeError(w, "apply all adaptations", err)
		return
	}

	result, err := h.applicator.ApplyAll(ctx, programID, active)
	if err != nil {
		writeError(w, "apply all adaptations", err)
		return
	}
	h.writeResult(w, programID, result)
}

func (h *Handler) writeResult(w http.ResponseWriter, programID string, result adaptation.Result) {
	if !result.PlanFound {
		pkg.WriteJSONError(w, program.ErrPlanNotFound.Error(), http.StatusNotFound)
		return
	}
	log.Debugf("program %s: applied %d, suppressed %d", programID, len(result.Applied), len(result.Suppressed))
	pkg.WriteJSON(w, result, http.StatusOK)
}
