package coach

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/2beens/gymcoach/internal/catalog"
	"github.com/2beens/gymcoach/internal/finalize"
	"github.com/2beens/gymcoach/internal/history"
	"github.com/2beens/gymcoach/internal/middleware"
	"github.com/2beens/gymcoach/internal/program"
	"github.com/2beens/gymcoach/internal/session"
	"github.com/2beens/gymcoach/internal/storage"
	"github.com/2beens/gymcoach/internal/substitution"
	"github.com/2beens/gymcoach/internal/telemetry/metrics"
	"github.com/2beens/gymcoach/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

var ErrInvalidRequest = errors.New("invalid request")

type Handler struct {
	store          storage.Store
	catalog        *catalog.Catalog
	resolver       *substitution.Resolver
	sessions       *session.Manager
	finalizer      SessionFinalizer
	applicator     AdaptationApplicator
	suggestions    SuggestionSource
	heartRate      HeartRateMonitor
	metricsManager *metrics.Manager

	// record of the active session whose persist failed, retried on the next finish;
	// guarded by the session manager lock
	pending *pendingRecord
}

type pendingRecord struct {
	ctrl   *session.Controller
	record *history.WorkoutSession
}

type NewHandlerParams struct {
	Store          storage.Store
	Catalog        *catalog.Catalog
	Sessions       *session.Manager
	Finalizer      SessionFinalizer
	Applicator     AdaptationApplicator
	Suggestions    SuggestionSource
	HeartRate      HeartRateMonitor
	MetricsManager *metrics.Manager
}

func NewHandler(params NewHandlerParams) *Handler {
	return &Handler{
		store:          params.Store,
		catalog:        params.Catalog,
		resolver:       substitution.NewResolver(params.Catalog),
		sessions:       params.Sessions,
		finalizer:      params.Finalizer,
		applicator:     params.Applicator,
		suggestions:    params.Suggestions,
		heartRate:      params.HeartRate,
		metricsManager: params.MetricsManager,
	}
}

func (h *Handler) SetupRoutes(
	mainRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	applyAllowedPerMin int,
) {
	mainRouter.HandleFunc("/catalog/exercises", h.HandleListExercises).Methods("GET", "OPTIONS").Name("catalog-exercises")
	mainRouter.HandleFunc("/catalog/exercises/{name}/alternatives", h.HandleAlternatives).Methods("GET", "OPTIONS").Name("catalog-alternatives")

	mainRouter.HandleFunc("/session", h.HandleStartSession).Methods("POST", "OPTIONS").Name("session-start")
	mainRouter.HandleFunc("/session", h.HandleGetSession).Methods("GET", "OPTIONS").Name("session-get")
	mainRouter.HandleFunc("/session/sets/complete", h.HandleCompleteSet).Methods("POST", "OPTIONS").Name("session-set-complete")
	mainRouter.HandleFunc("/session/sets/edit", h.HandleEditSet).Methods("POST", "OPTIONS").Name("session-set-edit")
	mainRouter.HandleFunc("/session/sets/add", h.HandleAddSet).Methods("POST", "OPTIONS").Name("session-set-add")
	mainRouter.HandleFunc("/session/sets/remove", h.HandleRemoveSet).Methods("POST", "OPTIONS").Name("session-set-remove")
	mainRouter.HandleFunc("/session/advance", h.HandleAdvance).Methods("POST", "OPTIONS").Name("session-advance")
	mainRouter.HandleFunc("/session/exercise/{index}/navigate", h.HandleNavigate).Methods("POST", "OPTIONS").Name("session-navigate")
	mainRouter.HandleFunc("/session/exercise/{index}/skip", h.HandleSkip).Methods("POST", "OPTIONS").Name("session-skip")
	mainRouter.HandleFunc("/session/exercise/{index}/unskip", h.HandleUnskip).Methods("POST", "OPTIONS").Name("session-unskip")
	mainRouter.HandleFunc("/session/exercise/{index}/substitute", h.HandleSubstitute).Methods("POST", "OPTIONS").Name("session-substitute")
	mainRouter.HandleFunc("/session/finish", h.HandleFinish).Methods("POST", "OPTIONS").Name("session-finish")

	mainRouter.HandleFunc("/history/{id}/survey", h.HandleSubmitSurvey).Methods("POST", "OPTIONS").Name("history-survey")

	// registered before the apply subrouter, which shares the path prefix
	mainRouter.HandleFunc("/programs/{id}/adaptations", h.HandleListAdaptations).Methods("GET", "OPTIONS").Name("adaptations-list")

	applySubrouter := mainRouter.PathPrefix("/programs/{id}/adaptations").Subrouter()
	applySubrouter.HandleFunc("/apply", h.HandleApply).Methods("POST", "OPTIONS").Name("adaptations-apply")
	applySubrouter.HandleFunc("/apply-all", h.HandleApplyAll).Methods("POST", "OPTIONS").Name("adaptations-apply-all")

	// each apply rewrites all saved plans
	applySubrouter.Use(middleware.RateLimit(rateLimiter, "adaptations-apply", applyAllowedPerMin, h.metricsManager))
}

// decodeJSON reads the request body into dest. An empty body leaves dest untouched.
func decodeJSON(r *http.Request, dest any) error {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return nil
}

func pathIndex(r *http.Request) (int, error) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return index, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, session.ErrMissingWeightReps),
		errors.Is(err, session.ErrSetsIncomplete),
		errors.Is(err, session.ErrNoNextExercise),
		errors.Is(err, session.ErrIndexOutOfRange),
		errors.Is(err, session.ErrExerciseSkipped),
		errors.Is(err, session.ErrLastSet),
		errors.Is(err, session.ErrNotFinalizable),
		errors.Is(err, finalize.ErrSurveyIncomplete):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrNoActiveSession),
		errors.Is(err, program.ErrPlanNotFound),
		errors.Is(err, program.ErrDayNotFound),
		errors.Is(err, finalize.ErrSessionNotFound),
		errors.Is(err, errExerciseNotInCatalog):
		return http.StatusNotFound
	case errors.Is(err, program.ErrInvalidProgram):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Errorf("%s: %s", op, err)
		pkg.WriteJSONError(w, op+" failed", status)
		return
	}
	log.Debugf("%s: %s", op, err)

	// session validation messages are shown to the user as they are
	msg := err.Error()
	if errors.Is(err, ErrInvalidRequest) {
		msg = ErrInvalidRequest.Error()
	}
	pkg.WriteJSONError(w, msg, status)
}
