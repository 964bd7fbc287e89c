package server

import (
	"encoding/json"
	"net/http"

	"github.com/leapstack-labs/promptfield/internal/session"
	"github.com/leapstack-labs/promptfield/pkg/catalog"
	"github.com/leapstack-labs/promptfield/pkg/core"
	"github.com/leapstack-labs/promptfield/pkg/mapping"
	"github.com/leapstack-labs/promptfield/pkg/matcher"
	"github.com/leapstack-labs/promptfield/pkg/render"
	"github.com/leapstack-labs/promptfield/pkg/scanner"
	"github.com/leapstack-labs/promptfield/pkg/validate"
)

// promptsRequest carries the two authored prompt templates. Empty
// fields fall back to the configured prompts.
type promptsRequest struct {
	SystemPrompt string `json:"systemPrompt"`
	UserPrompt   string `json:"userPrompt"`
}

func (s *Server) prompts(req promptsRequest) (string, string) {
	cfg := s.cfg.Load()
	system, user := req.SystemPrompt, req.UserPrompt
	if system == "" {
		system = cfg.Prompts.System
	}
	if user == "" {
		user = cfg.Prompts.User
	}
	return system, user
}

func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	var req promptsRequest
	if !decode(w, r, &req) {
		return
	}
	system, user := s.prompts(req)

	writeJSON(w, http.StatusOK, map[string]any{
		"placeholders": scanner.Detect(system, user),
	})
}

// suggestResponse is the reconciled mapping set with its view model.
type suggestResponse struct {
	Mappings []core.FieldMapping `json:"mappings"`
	Rows     []mapping.StatusRow `json:"rows"`
	Stats    mapping.Stats       `json:"stats"`
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	var req promptsRequest
	if !decode(w, r, &req) {
		return
	}
	system, user := s.prompts(req)
	key := s.sessionKey(w, r)

	placeholders := scanner.Detect(system, user)
	cat := catalog.FromTable(s.provider.Current())
	detected := matcher.Suggest(placeholders, cat)

	var persisted []core.FieldMapping
	if rec := s.manager.Load(key); rec != nil {
		persisted = rec.FieldMappings
	}

	store := mapping.NewStore(s.logger)
	store.SetThreshold(s.cfg.Load().Matcher.AutoMapThreshold)
	store.Reconcile(detected, persisted)

	if err := s.manager.Save(key, session.Record{
		SystemPrompt:  system,
		UserPrompt:    user,
		FieldMappings: store.Entries(),
	}); err != nil {
		s.logger.Warn("failed to persist session", "error", err)
	}

	writeJSON(w, http.StatusOK, suggestResponse{
		Mappings: store.Entries(),
		Rows:     store.Summary(),
		Stats:    store.Stats(),
	})
}

// renderRequest renders prompt text with explicit mappings, or with the
// session's persisted mappings when none are given.
type renderRequest struct {
	PromptText string              `json:"promptText"`
	Mappings   []core.FieldMapping `json:"mappings"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if !decode(w, r, &req) {
		return
	}

	mappings := req.Mappings
	if mappings == nil {
		if rec := s.manager.Load(s.sessionKey(w, r)); rec != nil {
			mappings = rec.FieldMappings
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"rendered": render.Template(req.PromptText, mappings, s.provider.Current()),
	})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	cfg := s.cfg.Load()
	v := validate.New(s.evaluator, s.logger)
	result := v.Validate(r.Context(), s.provider.Current(), cfg.Validation)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalog.FromTable(s.provider.Current()))
}

func (s *Server) handleSessionGet(w http.ResponseWriter, r *http.Request) {
	rec := s.manager.Load(s.sessionKey(w, r))
	if rec == nil {
		writeJSON(w, http.StatusOK, map[string]any{"session": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"session": rec})
}

func (s *Server) handleSessionPut(w http.ResponseWriter, r *http.Request) {
	var rec session.Record
	if !decode(w, r, &rec) {
		return
	}
	if err := s.manager.Save(s.sessionKey(w, r), rec); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to persist session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decode reads a JSON body, writing a 400 on failure.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Body == nil || r.ContentLength == 0 {
		return true
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
