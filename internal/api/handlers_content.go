package api

import (
	"net/http"

	"github.com/curtisos/curtisos/internal/domain"
	"github.com/curtisos/curtisos/internal/service"
)

func (s *Server) handleListEpisodes(w http.ResponseWriter, r *http.Request) {
	episodes, err := s.svc.Episodes.List(r.Context(), domain.EpisodeStatus(r.URL.Query().Get("status")))
	list(s, w, r, episodes, err)
}

func (s *Server) handleListRevenue(w http.ResponseWriter, r *http.Request) {
	entries, err := s.svc.Revenue.List(r.Context(), queryContext(r))
	list(s, w, r, entries, err)
}

func (s *Server) handleRevenueMetrics(w http.ResponseWriter, r *http.Request) {
	m, err := s.svc.Revenue.Metrics(r.Context(), queryContext(r))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := s.svc.Reports.List(r.Context(), domain.ReportFilter{
		Kind:    domain.ReportKind(r.URL.Query().Get("kind")),
		Context: queryContext(r),
	})
	list(s, w, r, reports, err)
}

// Emails

func (s *Server) handleListEmails(w http.ResponseWriter, r *http.Request) {
	needs, err := queryBool(r, "needsResponse")
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	emails, err := s.svc.Emails.List(r.Context(), domain.EmailFilter{
		Context:       queryContext(r),
		NeedsResponse: needs,
	})
	list(s, w, r, emails, err)
}

func (s *Server) handleEmailStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.svc.Emails.Stats(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleSyncEmails(w http.ResponseWriter, r *http.Request) {
	res, err := s.svc.EmailSync.Sync(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleMarkResponded(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	body := struct {
		Responded *bool `json:"responded"`
	}{}
	if err := decodeJSON(r, &body); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	responded := body.Responded == nil || *body.Responded
	email, err := s.svc.Emails.MarkResponded(r.Context(), id, responded)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, email)
}

// Tags

func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.svc.Tags.List(r.Context())
	list(s, w, r, tags, err)
}

func (s *Server) handleAssignTag(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	var body struct {
		EntityType domain.EntityType `json:"entityType"`
		EntityID   int64             `json:"entityId"`
	}
	if err := decodeJSON(r, &body); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	a, err := s.svc.Tags.Assign(r.Context(), id, body.EntityType, body.EntityID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (s *Server) handleUnassignTag(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	entityID, err := pathID(r, "entityId")
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	et := domain.EntityType(r.PathValue("entityType"))
	if err := s.svc.Tags.Unassign(r.Context(), id, et, entityID); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTagsForEntity(w http.ResponseWriter, r *http.Request) {
	entityID, err := pathID(r, "entityId")
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	tags, err := s.svc.Tags.ForEntity(r.Context(), domain.EntityType(r.PathValue("entityType")), entityID)
	list(s, w, r, tags, err)
}

// Aggregates

func (s *Server) handleListActivities(w http.ResponseWriter, r *http.Request) {
	entityID, err := queryInt64(r, "entityId")
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	limit, err := queryInt64(r, "limit")
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	f := domain.ActivityFilter{EntityType: domain.EntityType(r.URL.Query().Get("entityType"))}
	if entityID != nil {
		f.EntityID = *entityID
	}
	if limit != nil {
		f.Limit = int(*limit)
	}
	acts, err := s.svc.Activities.List(r.Context(), f)
	list(s, w, r, acts, err)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	counts, err := s.svc.Dashboard.Counts(r.Context(), queryContext(r))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := s.svc.Export.Export(r.Context(), service.ExportRequest{
		Tables: service.ParseTables(q.Get("tables")),
		Format: q.Get("format"),
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", res.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+res.Filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(res.Body)
}
