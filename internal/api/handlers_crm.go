package api

import (
	"net/http"

	"github.com/curtisos/curtisos/internal/domain"
	"github.com/curtisos/curtisos/internal/service"
)

// Leads

func (s *Server) handleListLeads(w http.ResponseWriter, r *http.Request) {
	leads, err := s.svc.Leads.List(r.Context(), domain.LeadFilter{
		Context: queryContext(r),
		Status:  domain.LeadStatus(r.URL.Query().Get("status")),
	})
	list(s, w, r, leads, err)
}

func (s *Server) handleConvertLead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	var req service.ConvertLeadRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	conv, err := s.svc.Leads.Convert(r.Context(), id, req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, conv)
}

// Clients

func (s *Server) handleListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := s.svc.Clients.List(r.Context(), domain.ClientFilter{
		Context: queryContext(r),
		Status:  domain.ClientStatus(r.URL.Query().Get("status")),
	})
	list(s, w, r, clients, err)
}

// Projects

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	clientID, err := queryInt64(r, "clientId")
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	projects, err := s.svc.Projects.List(r.Context(), domain.ProjectFilter{
		Context:  queryContext(r),
		Status:   domain.ProjectStatus(r.URL.Query().Get("status")),
		ClientID: clientID,
	})
	list(s, w, r, projects, err)
}

func (s *Server) handleProjectBlockers(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	blockers, err := s.svc.Projects.Blockers(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if blockers == nil {
		blockers = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"blockers": blockers})
}

// Tasks

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	projectID, err := queryInt64(r, "projectId")
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	q := r.URL.Query()
	tasks, err := s.svc.Tasks.List(r.Context(), domain.TaskFilter{
		Context:   queryContext(r),
		Status:    domain.TaskStatus(q.Get("status")),
		Priority:  domain.Priority(q.Get("priority")),
		ProjectID: projectID,
	})
	list(s, w, r, tasks, err)
}

// Dev plans

func (s *Server) handleListDevPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := s.svc.DevPlans.List(r.Context())
	list(s, w, r, plans, err)
}

func (s *Server) handleCreateDevPlan(w http.ResponseWriter, r *http.Request) {
	var plan domain.DevPlan
	if err := decodeJSON(r, &plan); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	view, err := s.svc.DevPlans.Create(r.Context(), &plan)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}
