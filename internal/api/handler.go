package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eugenenazirov/loading-assistant/internal/calculator"
	"github.com/eugenenazirov/loading-assistant/internal/manifest"
	"github.com/eugenenazirov/loading-assistant/internal/storage"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

const maxImportBytes = 5 << 20

// Handler wires calculator and storage dependencies into HTTP handlers.
type Handler struct {
	calculator calculator.Calculator
	storage    storage.Storage
	logger     *zap.Logger

	clock func() time.Time
	newID func() string

	// mu serialises plan reads with the auto-selection they may trigger.
	mu            sync.Mutex
	planUpdatedAt time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// WithIDGenerator overrides how ids are assigned to new packages.
func WithIDGenerator(newID func() string) HandlerOption {
	return func(h *Handler) {
		h.newID = newID
	}
}

// WithHandlerLogger sets the logger used for domain events such as imports.
func WithHandlerLogger(logger *zap.Logger) HandlerOption {
	return func(h *Handler) {
		h.logger = logger
	}
}

// NewHandler constructs a Handler with the provided dependencies.
func NewHandler(calc calculator.Calculator, store storage.Storage, opts ...HandlerOption) *Handler {
	h := &Handler{
		calculator: calc,
		storage:    store,
		logger:     zap.NewNop(),
		clock: func() time.Time {
			return time.Now().UTC()
		},
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.planUpdatedAt = h.clock()
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleListContainers(w http.ResponseWriter, r *http.Request) {
	_ = r
	writeJSON(w, http.StatusOK, containersResponse{Containers: h.calculator.Catalog().Containers()})
}

func (h *Handler) handleListPackages(w http.ResponseWriter, r *http.Request) {
	_ = r
	packages, err := h.storage.ListPackages()
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, packagesResponse{Packages: packages, Count: len(packages)})
}

func (h *Handler) handleAddPackages(w http.ResponseWriter, r *http.Request) {
	var req addPackagesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}
	if len(req.Packages) == 0 {
		writeError(w, http.StatusBadRequest, "Invalid packages", "packages must contain at least one package")
		return
	}

	for i := range req.Packages {
		if req.Packages[i].ID == "" {
			req.Packages[i].ID = h.newID()
		}
	}

	if err := h.storage.AddPackages(req.Packages...); err != nil {
		h.writeStorageError(w, err)
		return
	}
	h.markPlanUpdated()

	h.respondWithPlan(w, http.StatusCreated)
}

func (h *Handler) handleRemovePackage(w http.ResponseWriter, r *http.Request) {
	if err := h.storage.RemovePackage(r.PathValue("id")); err != nil {
		h.writeStorageError(w, err)
		return
	}
	h.markPlanUpdated()

	h.respondWithPlan(w, http.StatusOK)
}

func (h *Handler) handleClearPackages(w http.ResponseWriter, r *http.Request) {
	_ = r
	if err := h.storage.ClearPackages(); err != nil {
		writeInternalError(w, err)
		return
	}
	h.markPlanUpdated()

	h.respondWithPlan(w, http.StatusOK)
}

func (h *Handler) handleImportPackages(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxImportBytes)
	result, err := manifest.ParsePackagesCSV(body, manifest.WithIDGenerator(h.newID))
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, "File too large", fmt.Sprintf("import files are limited to %d bytes", tooLarge.Limit))
		case errors.Is(err, manifest.ErrMissingColumns):
			writeError(w, http.StatusBadRequest, "Invalid file", err.Error(), "Download the template from /api/export/template.csv")
		case errors.Is(err, manifest.ErrNoValidPackages):
			writeJSON(w, http.StatusUnprocessableEntity, importErrorResponse{
				Error:   "No valid packages",
				Details: err.Error(),
				Skipped: result.Skipped,
			})
		default:
			writeError(w, http.StatusBadRequest, "Invalid file", err.Error())
		}
		return
	}

	if err := h.storage.AddPackages(result.Packages...); err != nil {
		h.writeStorageError(w, err)
		return
	}
	h.markPlanUpdated()

	h.logger.Info("packages imported",
		zap.Int("imported", len(result.Packages)),
		zap.Int("skipped", len(result.Skipped)),
		zap.String("request_id", requestIDFromContext(r.Context())),
	)

	plan, err := h.currentPlan()
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, importResponse{
		Imported: len(result.Packages),
		Skipped:  result.Skipped,
		Plan:     plan,
	})
}

func (h *Handler) handleSelectContainer(w http.ResponseWriter, r *http.Request) {
	var req selectContainerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}
	if req.ContainerID == "" {
		writeError(w, http.StatusBadRequest, "Invalid request", "containerId is required")
		return
	}

	if err := h.storage.SelectContainer(req.ContainerID); err != nil {
		h.writeStorageError(w, err)
		return
	}
	h.markPlanUpdated()

	h.respondWithPlan(w, http.StatusOK)
}

func (h *Handler) handleClearSelection(w http.ResponseWriter, r *http.Request) {
	_ = r
	if err := h.storage.ClearSelection(); err != nil {
		writeInternalError(w, err)
		return
	}
	h.markPlanUpdated()

	h.respondWithPlan(w, http.StatusOK)
}

func (h *Handler) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	_ = r
	h.respondWithPlan(w, http.StatusOK)
}

func (h *Handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var req calculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	for i, pkg := range req.Packages {
		if err := pkg.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid packages", fmt.Sprintf("package %d: %v", i, err))
			return
		}
	}

	start := time.Now()
	suggested := h.calculator.SuggestContainer(req.Packages)
	container := suggested
	if req.ContainerID != "" {
		chosen, ok := h.calculator.Catalog().Find(req.ContainerID)
		if !ok {
			writeError(w, http.StatusBadRequest, "Unknown container", fmt.Sprintf("container %q is not in the catalog", req.ContainerID),
				"List available containers with GET /api/containers")
			return
		}
		container = chosen
	}
	stats := h.calculator.LoadingStats(req.Packages, container)
	elapsed := time.Since(start)

	resp := calculateResponse{
		SuggestedContainer: suggested,
		Container:          container,
		Stats:              stats,
		Status:             stats.Status(),
		Overloaded:         stats.Overloaded(),
		CalculationTimeMs:  elapsed.Milliseconds(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleExportPackages(w http.ResponseWriter, r *http.Request) {
	_ = r
	packages, err := h.storage.ListPackages()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	setAttachment(w, "text/csv; charset=utf-8", manifest.PackagesFilename(h.clock()))
	if err := manifest.WritePackagesCSV(w, packages); err != nil {
		h.logger.Error("write packages export", zap.Error(err))
	}
}

func (h *Handler) handleExportTemplate(w http.ResponseWriter, r *http.Request) {
	_ = r
	setAttachment(w, "text/csv; charset=utf-8", "package-import-template.csv")
	if err := manifest.WriteTemplateCSV(w); err != nil {
		h.logger.Error("write import template", zap.Error(err))
	}
}

func (h *Handler) handleExportReport(w http.ResponseWriter, r *http.Request) {
	_ = r
	plan, err := h.currentPlan()
	if err != nil {
		writeInternalError(w, err)
		return
	}
	if len(plan.Packages) == 0 || plan.SelectedContainer == nil {
		writeError(w, http.StatusConflict, "Nothing to report", "add packages and select a container before exporting a report")
		return
	}

	now := h.clock()
	setAttachment(w, "text/plain; charset=utf-8", manifest.ReportFilename(now))
	err = manifest.WriteReport(w, manifest.Report{
		GeneratedAt: now,
		Container:   *plan.SelectedContainer,
		Packages:    plan.Packages,
		Stats:       plan.Stats,
	})
	if err != nil {
		h.logger.Error("write loading report", zap.Error(err))
	}
}

func (h *Handler) respondWithPlan(w http.ResponseWriter, status int) {
	plan, err := h.currentPlan()
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, status, plan)
}

// currentPlan snapshots the workspace. With packages present and no container
// chosen, the suggested container becomes the selection.
func (h *Handler) currentPlan() (planResponse, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	packages, err := h.storage.ListPackages()
	if err != nil {
		return planResponse{}, err
	}

	var suggested *calculator.Container
	if len(packages) > 0 {
		s := h.calculator.SuggestContainer(packages)
		suggested = &s
	}

	selected, ok, err := h.storage.SelectedContainer()
	if err != nil {
		return planResponse{}, err
	}
	if !ok && suggested != nil {
		if err := h.storage.SelectContainer(suggested.ID); err != nil {
			return planResponse{}, err
		}
		selected, ok = *suggested, true
	}

	resp := planResponse{
		Packages:           packages,
		SuggestedContainer: suggested,
		UpdatedAt:          h.planUpdatedAt,
	}
	if ok {
		stats := h.calculator.LoadingStats(packages, selected)
		resp.SelectedContainer = &selected
		resp.Stats = stats
		resp.Status = stats.Status()
		resp.Overloaded = stats.Overloaded()
	}
	return resp, nil
}

func (h *Handler) markPlanUpdated() {
	h.mu.Lock()
	h.planUpdatedAt = h.clock()
	h.mu.Unlock()
}

func (h *Handler) writeStorageError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, calculator.ErrInvalidPackage):
		writeError(w, http.StatusBadRequest, "Invalid packages", err.Error())
	case errors.Is(err, storage.ErrDuplicatePackage):
		writeError(w, http.StatusConflict, "Duplicate package", err.Error())
	case errors.Is(err, storage.ErrPackageNotFound):
		writeError(w, http.StatusNotFound, "Package not found", err.Error())
	case errors.Is(err, storage.ErrUnknownContainer):
		writeError(w, http.StatusNotFound, "Container not found", err.Error(), "List available containers with GET /api/containers")
	default:
		writeInternalError(w, err)
	}
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type addPackagesRequest struct {
	Packages []calculator.Package `json:"packages"`
}

type selectContainerRequest struct {
	ContainerID string `json:"containerId"`
}

type calculateRequest struct {
	Packages    []calculator.Package `json:"packages"`
	ContainerID string               `json:"containerId,omitempty"`
}

type calculateResponse struct {
	SuggestedContainer calculator.Container    `json:"suggestedContainer"`
	Container          calculator.Container    `json:"container"`
	Stats              calculator.LoadingStats `json:"stats"`
	Status             calculator.Status       `json:"status"`
	Overloaded         bool                    `json:"overloaded"`
	CalculationTimeMs  int64                   `json:"calculationTimeMs"`
}

type planResponse struct {
	Packages           []calculator.Package    `json:"packages"`
	SuggestedContainer *calculator.Container   `json:"suggestedContainer"`
	SelectedContainer  *calculator.Container   `json:"selectedContainer"`
	Stats              calculator.LoadingStats `json:"stats"`
	Status             calculator.Status       `json:"status,omitempty"`
	Overloaded         bool                    `json:"overloaded"`
	UpdatedAt          time.Time               `json:"updatedAt"`
}

type importResponse struct {
	Imported int                 `json:"imported"`
	Skipped  []manifest.RowError `json:"skipped,omitempty"`
	Plan     planResponse        `json:"plan"`
}

type importErrorResponse struct {
	Error   string              `json:"error"`
	Details string              `json:"details,omitempty"`
	Skipped []manifest.RowError `json:"skipped,omitempty"`
}

type containersResponse struct {
	Containers []calculator.Container `json:"containers"`
}

type packagesResponse struct {
	Packages []calculator.Package `json:"packages"`
	Count    int                  `json:"count"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string, suggestion ...string) {
	resp := errorResponse{
		Error:   message,
		Details: details,
	}
	if len(suggestion) > 0 {
		resp.Suggestion = suggestion[0]
	}
	writeJSON(w, status, resp)
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}

func setAttachment(w http.ResponseWriter, contentType, filename string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
}
