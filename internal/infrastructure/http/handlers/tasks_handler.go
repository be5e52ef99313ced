package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/abraaosantosdeveloper/taskmanager/internal/application/task"
	"github.com/abraaosantosdeveloper/taskmanager/internal/domain"
	domerrors "github.com/abraaosantosdeveloper/taskmanager/internal/domain/errors"
	"github.com/abraaosantosdeveloper/taskmanager/internal/infrastructure/http/middleware"
)

// TasksHandler handles /tasks/*. Every route sits behind the request gate;
// the owner id always comes from the resolved user, never from the body.
type TasksHandler struct {
	create       *task.CreateTask
	list         *task.ListTasks
	get          *task.GetTask
	update       *task.UpdateTask
	updateStatus *task.UpdateStatus
	delete       *task.DeleteTask
	statistics   *task.GetStatistics
	log          zerolog.Logger
}

func NewTasksHandler(create *task.CreateTask, list *task.ListTasks, get *task.GetTask, update *task.UpdateTask, updateStatus *task.UpdateStatus, del *task.DeleteTask, statistics *task.GetStatistics, log zerolog.Logger) *TasksHandler {
	return &TasksHandler{
		create:       create,
		list:         list,
		get:          get,
		update:       update,
		updateStatus: updateStatus,
		delete:       del,
		statistics:   statistics,
		log:          log,
	}
}

type taskJSON struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
	CompletedAt *string `json:"completed_at"`
}

func taskToJSON(t *domain.Task) taskJSON {
	var completedAt *string
	if t.CompletedAt != nil {
		s := t.CompletedAt.Format(time.RFC3339)
		completedAt = &s
	}
	return taskJSON{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		CompletedAt: completedAt,
	}
}

func (h *TasksHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized access")
		return
	}
	tasks, err := h.list.Execute(r.Context(), user.ID)
	if err != nil {
		h.log.Error().Err(err).Msg("list tasks failed")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	items := make([]taskJSON, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, taskToJSON(t))
	}
	writeSuccess(w, http.StatusOK, "Success", items)
}

func (h *TasksHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized access")
		return
	}
	id, ok := taskID(w, r)
	if !ok {
		return
	}
	t, err := h.get.Execute(r.Context(), id, user.ID)
	if err != nil {
		h.writeTaskError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Success", taskToJSON(t))
}

func (h *TasksHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized access")
		return
	}
	var body struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Status      string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	t, err := h.create.Execute(r.Context(), task.CreateTaskInput{
		OwnerID:     user.ID,
		Title:       body.Title,
		Description: body.Description,
		Status:      body.Status,
	})
	if err != nil {
		if errors.Is(err, domerrors.ErrInvalidInput) {
			writeValidationError(w, map[string]string{"title": "Title is required", "status": "Status must be pending, in_progress or completed"})
			return
		}
		h.log.Error().Err(err).Msg("create task failed")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeSuccess(w, http.StatusCreated, "Task created successfully", taskToJSON(t))
}

func (h *TasksHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized access")
		return
	}
	id, ok := taskID(w, r)
	if !ok {
		return
	}
	var body struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	t, err := h.update.Execute(r.Context(), task.UpdateTaskInput{
		ID:          id,
		OwnerID:     user.ID,
		Title:       body.Title,
		Description: body.Description,
	})
	if err != nil {
		if errors.Is(err, domerrors.ErrInvalidInput) {
			writeValidationError(w, map[string]string{"title": "Title is required"})
			return
		}
		h.writeTaskError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Task updated successfully", taskToJSON(t))
}

func (h *TasksHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized access")
		return
	}
	id, ok := taskID(w, r)
	if !ok {
		return
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	t, err := h.updateStatus.Execute(r.Context(), task.UpdateStatusInput{
		ID:      id,
		OwnerID: user.ID,
		Status:  body.Status,
	})
	if err != nil {
		if errors.Is(err, domerrors.ErrInvalidInput) {
			writeValidationError(w, map[string]string{"status": "Invalid status"})
			return
		}
		h.writeTaskError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Status updated successfully", taskToJSON(t))
}

func (h *TasksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized access")
		return
	}
	id, ok := taskID(w, r)
	if !ok {
		return
	}
	if err := h.delete.Execute(r.Context(), id, user.ID); err != nil {
		h.writeTaskError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Task deleted successfully", nil)
}

func (h *TasksHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized access")
		return
	}
	stats, err := h.statistics.Execute(r.Context(), user.ID)
	if err != nil {
		h.log.Error().Err(err).Msg("statistics failed")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeSuccess(w, http.StatusOK, "Success", map[string]int64{
		"total":       stats.Total,
		"pending":     stats.Pending,
		"in_progress": stats.InProgress,
		"completed":   stats.Completed,
	})
}

func (h *TasksHandler) writeTaskError(w http.ResponseWriter, err error) {
	if errors.Is(err, domerrors.ErrTaskNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	h.log.Error().Err(err).Msg("task operation failed")
	writeError(w, http.StatusInternalServerError, "Internal server error")
}

// taskID parses the {id} route parameter; on failure it writes a 400 and
// reports false.
func taskID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid task id")
		return 0, false
	}
	return id, true
}
