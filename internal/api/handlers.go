// Package api exposes HTTP handlers for the activities service.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/SwatiNandaEY/skills-getting-started-with-github-copilot/internal/domain"
)

// Handler coordinates HTTP requests with the domain service.
type Handler struct {
	service *domain.Service
}

// NewHandler builds a Handler.
func NewHandler(service *domain.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires endpoints to the mux. The static file tree is mounted
// separately by the caller.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/", root)
	mux.HandleFunc("/activities", h.activities)
	mux.HandleFunc("/activities/", h.activityAction)
	mux.HandleFunc("/healthz", healthz)
}

// root redirects the bare path to the static portal page.
func root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "Not Found")
		return
	}
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "unsupported method")
		return
	}
	http.Redirect(w, r, "/static/index.html", http.StatusTemporaryRedirect)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) activities(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listActivities(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "unsupported method")
	}
}

// activityAction dispatches /activities/{name}/signup and
// /activities/{name}/unregister. The name segment arrives URL-decoded, so
// activity names with spaces work unchanged.
func (h *Handler) activityAction(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/activities/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" {
		writeError(w, http.StatusNotFound, "Not Found")
		return
	}
	name, action := parts[0], parts[1]

	switch action {
	case "signup":
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "unsupported method")
			return
		}
		h.signup(w, r, name)
	case "unregister":
		if r.Method != http.MethodDelete {
			writeError(w, http.StatusMethodNotAllowed, "unsupported method")
			return
		}
		h.unregister(w, r, name)
	default:
		writeError(w, http.StatusNotFound, "Not Found")
	}
}

func (h *Handler) listActivities(w http.ResponseWriter, r *http.Request) {
	activities := h.service.ListActivities(r.Context())

	resp := make(map[string]ActivityView, len(activities))
	for name, activity := range activities {
		resp[name] = toActivityView(activity)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request, name string) {
	email := r.URL.Query().Get("email")
	if strings.TrimSpace(email) == "" {
		writeError(w, http.StatusBadRequest, "email query parameter is required")
		return
	}

	result, err := h.service.Signup(r.Context(), name, email)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrActivityNotFound):
			writeError(w, http.StatusNotFound, "Activity not found")
		case errors.Is(err, domain.ErrAlreadySignedUp):
			writeError(w, http.StatusBadRequest, fmt.Sprintf("%s is already signed up for %s", email, name))
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: result.Message})
}

func (h *Handler) unregister(w http.ResponseWriter, r *http.Request, name string) {
	email := r.URL.Query().Get("email")
	if strings.TrimSpace(email) == "" {
		writeError(w, http.StatusBadRequest, "email query parameter is required")
		return
	}

	result, err := h.service.Unregister(r.Context(), name, email)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrActivityNotFound):
			writeError(w, http.StatusNotFound, "Activity not found")
		case errors.Is(err, domain.ErrNotRegistered):
			writeError(w, http.StatusNotFound, fmt.Sprintf("%s is not registered for %s", email, name))
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: result.Message})
}

// ActivityView is the wire shape of one catalog entry.
type ActivityView struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// MessageResponse confirms a successful roster change.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse carries a human-readable failure detail.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

func toActivityView(activity domain.Activity) ActivityView {
	participants := activity.Participants
	if participants == nil {
		participants = []string{}
	}
	return ActivityView{
		Description:     activity.Description,
		Schedule:        activity.Schedule,
		MaxParticipants: activity.MaxParticipants,
		Participants:    participants,
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, ErrorResponse{Detail: detail})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
