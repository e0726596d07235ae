// Package api exposes the services as a JSON HTTP API.
package api

import (
	"context"
	"net/http"

	"github.com/curtisos/curtisos/internal/service"
	"go.uber.org/zap"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Options struct {
	Log          *zap.Logger
	MaxBodyBytes int64
	DB           Pinger
}

type Server struct {
	svc     *service.Services
	log     *zap.Logger
	maxBody int64
	db      Pinger
}

// NewHandler builds the routed, middleware-wrapped handler.
func NewHandler(svc *service.Services, opts Options) http.Handler {
	s := &Server{svc: svc, log: opts.Log, maxBody: opts.MaxBodyBytes, db: opts.DB}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	s.log = s.log.Named("api")
	if s.maxBody <= 0 {
		s.maxBody = 1 << 20
	}

	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return s.requestID(s.accessLog(s.recoverer(s.limitBody(mux))))
}

func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", s.handleHealth)

	// Leads
	mux.HandleFunc("GET /api/leads", s.handleListLeads)
	mux.HandleFunc("POST /api/leads", create(s, s.svc.Leads.Create))
	mux.HandleFunc("GET /api/leads/{id}", get(s, s.svc.Leads.GetByID))
	mux.HandleFunc("PATCH /api/leads/{id}", update(s, s.svc.Leads.Update))
	mux.HandleFunc("DELETE /api/leads/{id}", remove(s, s.svc.Leads.Delete))
	mux.HandleFunc("POST /api/leads/{id}/convert", s.handleConvertLead)

	// Clients
	mux.HandleFunc("GET /api/clients", s.handleListClients)
	mux.HandleFunc("POST /api/clients", create(s, s.svc.Clients.Create))
	mux.HandleFunc("GET /api/clients/{id}", get(s, s.svc.Clients.GetByID))
	mux.HandleFunc("PATCH /api/clients/{id}", update(s, s.svc.Clients.Update))
	mux.HandleFunc("DELETE /api/clients/{id}", remove(s, s.svc.Clients.Delete))
	mux.HandleFunc("GET /api/clients/{id}/projects", get(s, s.svc.Clients.Projects))

	// Projects
	mux.HandleFunc("GET /api/projects", s.handleListProjects)
	mux.HandleFunc("POST /api/projects", create(s, s.svc.Projects.Create))
	mux.HandleFunc("GET /api/projects/{id}", get(s, s.svc.Projects.GetByID))
	mux.HandleFunc("PATCH /api/projects/{id}", update(s, s.svc.Projects.Update))
	mux.HandleFunc("DELETE /api/projects/{id}", remove(s, s.svc.Projects.Delete))
	mux.HandleFunc("GET /api/projects/{id}/tasks", get(s, s.svc.Projects.Tasks))
	mux.HandleFunc("GET /api/projects/{id}/dev-plan", get(s, s.svc.Projects.DevPlan))
	mux.HandleFunc("GET /api/projects/{id}/blockers", s.handleProjectBlockers)

	// Tasks
	mux.HandleFunc("GET /api/tasks", s.handleListTasks)
	mux.HandleFunc("POST /api/tasks", create(s, s.svc.Tasks.Create))
	mux.HandleFunc("GET /api/tasks/{id}", get(s, s.svc.Tasks.GetByID))
	mux.HandleFunc("PATCH /api/tasks/{id}", update(s, s.svc.Tasks.Update))
	mux.HandleFunc("DELETE /api/tasks/{id}", remove(s, s.svc.Tasks.Delete))

	// Dev plans
	mux.HandleFunc("GET /api/dev-plans", s.handleListDevPlans)
	mux.HandleFunc("POST /api/dev-plans", s.handleCreateDevPlan)
	mux.HandleFunc("GET /api/dev-plans/{id}", get(s, s.svc.DevPlans.GetByID))
	mux.HandleFunc("PATCH /api/dev-plans/{id}", update(s, s.svc.DevPlans.Update))
	mux.HandleFunc("DELETE /api/dev-plans/{id}", remove(s, s.svc.DevPlans.Delete))
	mux.HandleFunc("PATCH /api/dev-plans/{id}/stage", update(s, s.svc.DevPlans.AdvanceStage))

	// Episodes
	mux.HandleFunc("GET /api/episodes", s.handleListEpisodes)
	mux.HandleFunc("POST /api/episodes", create(s, s.svc.Episodes.Create))
	mux.HandleFunc("GET /api/episodes/{id}", get(s, s.svc.Episodes.GetByID))
	mux.HandleFunc("PATCH /api/episodes/{id}", update(s, s.svc.Episodes.Update))
	mux.HandleFunc("DELETE /api/episodes/{id}", remove(s, s.svc.Episodes.Delete))

	// Emails
	mux.HandleFunc("GET /api/emails", s.handleListEmails)
	mux.HandleFunc("GET /api/emails/stats", s.handleEmailStats)
	mux.HandleFunc("POST /api/emails/sync", s.handleSyncEmails)
	mux.HandleFunc("GET /api/emails/{id}", get(s, s.svc.Emails.GetByID))
	mux.HandleFunc("DELETE /api/emails/{id}", remove(s, s.svc.Emails.Delete))
	mux.HandleFunc("PATCH /api/emails/{id}/responded", s.handleMarkResponded)
	mux.HandleFunc("POST /api/emails/{id}/reply", update(s, s.svc.Emails.Reply))

	// Revenue
	mux.HandleFunc("GET /api/revenue", s.handleListRevenue)
	mux.HandleFunc("GET /api/revenue/metrics", s.handleRevenueMetrics)
	mux.HandleFunc("POST /api/revenue", create(s, s.svc.Revenue.Create))
	mux.HandleFunc("GET /api/revenue/{id}", get(s, s.svc.Revenue.GetByID))
	mux.HandleFunc("PATCH /api/revenue/{id}", update(s, s.svc.Revenue.Update))
	mux.HandleFunc("DELETE /api/revenue/{id}", remove(s, s.svc.Revenue.Delete))

	// Reports
	mux.HandleFunc("GET /api/reports", s.handleListReports)
	mux.HandleFunc("POST /api/reports", create(s, s.svc.Reports.Create))
	mux.HandleFunc("GET /api/reports/{id}", get(s, s.svc.Reports.GetByID))
	mux.HandleFunc("PATCH /api/reports/{id}", update(s, s.svc.Reports.Update))
	mux.HandleFunc("DELETE /api/reports/{id}", remove(s, s.svc.Reports.Delete))

	// Tags
	mux.HandleFunc("GET /api/tags", s.handleListTags)
	mux.HandleFunc("POST /api/tags", create(s, s.svc.Tags.Create))
	mux.HandleFunc("GET /api/tags/{id}", get(s, s.svc.Tags.GetByID))
	mux.HandleFunc("PATCH /api/tags/{id}", update(s, s.svc.Tags.Update))
	mux.HandleFunc("DELETE /api/tags/{id}", remove(s, s.svc.Tags.Delete))
	mux.HandleFunc("GET /api/tags/{id}/entities", get(s, s.svc.Tags.Entities))
	mux.HandleFunc("POST /api/tags/{id}/assign", s.handleAssignTag)
	mux.HandleFunc("DELETE /api/tags/{id}/assign/{entityType}/{entityId}", s.handleUnassignTag)
	mux.HandleFunc("GET /api/tags/for/{entityType}/{entityId}", s.handleTagsForEntity)

	// Aggregates
	mux.HandleFunc("GET /api/activities", s.handleListActivities)
	mux.HandleFunc("GET /api/dashboard", s.handleDashboard)
	mux.HandleFunc("GET /api/export", s.handleExport)

	// AI
	mux.HandleFunc("POST /api/ai/task-suggestions", advise(s, s.aiTaskSuggestions))
	mux.HandleFunc("POST /api/ai/apply-task-suggestion", s.handleApplyTaskSuggestion)
	mux.HandleFunc("POST /api/ai/client-insights", advise(s, s.aiClientInsights))
	mux.HandleFunc("POST /api/ai/prospects", advise(s, s.aiProspects))
	mux.HandleFunc("POST /api/ai/task-advice", advise(s, s.aiTaskAdvice))
	mux.HandleFunc("POST /api/ai/dashboard-insights", advise(s, s.aiDashboardInsights))
	mux.HandleFunc("POST /api/ai/email-triage", advise(s, s.aiEmailTriage))
	mux.HandleFunc("POST /api/ai/draft-reply", advise(s, s.aiDraftReply))
	mux.HandleFunc("POST /api/ai/deal-health", advise(s, s.aiDealHealth))
	mux.HandleFunc("POST /api/ai/nudge", advise(s, s.aiNudge))
	mux.HandleFunc("POST /api/ai/content-ideas", advise(s, s.aiContentIdeas))
	mux.HandleFunc("POST /api/ai/blockers", advise(s, s.aiBlockerAnalysis))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.PingContext(r.Context()); err != nil {
			s.log.Warn("health check failed", zap.String("request_id", RequestID(r.Context())), zap.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
