package api

import (
	"context"
	"net/http"

	"github.com/curtisos/curtisos/internal/domain"
	"github.com/curtisos/curtisos/internal/service"
)

// aiRequest is the union of every advisory request body.
type aiRequest struct {
	ProjectID int64          `json:"projectId"`
	ClientID  int64          `json:"clientId"`
	TaskID    int64          `json:"taskId"`
	EmailID   int64          `json:"emailId"`
	LeadID    int64          `json:"leadId"`
	Criteria  string         `json:"criteria"`
	Context   domain.Context `json:"context"`
	Tone      string         `json:"tone"`
	Topic     string         `json:"topic"`
}

// advise decodes an aiRequest, runs call and writes its result. Model
// failures are already folded into the result, so only lookup and input
// errors reach writeServiceError.
func advise(s *Server, call func(context.Context, aiRequest) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req aiRequest
		if err := decodeJSON(r, &req); err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		res, err := call(r.Context(), req)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func (s *Server) aiTaskSuggestions(ctx context.Context, req aiRequest) (any, error) {
	return s.svc.AI.TaskSuggestions(ctx, req.ProjectID)
}

func (s *Server) aiClientInsights(ctx context.Context, req aiRequest) (any, error) {
	return s.svc.AI.ClientInsights(ctx, req.ClientID)
}

func (s *Server) aiProspects(ctx context.Context, req aiRequest) (any, error) {
	return s.svc.AI.Prospects(ctx, req.Criteria, req.Context)
}

func (s *Server) aiTaskAdvice(ctx context.Context, req aiRequest) (any, error) {
	return s.svc.AI.TaskAdvice(ctx, req.TaskID)
}

func (s *Server) aiDashboardInsights(ctx context.Context, _ aiRequest) (any, error) {
	return s.svc.AI.DashboardInsights(ctx)
}

func (s *Server) aiEmailTriage(ctx context.Context, req aiRequest) (any, error) {
	return s.svc.AI.EmailTriage(ctx, req.EmailID)
}

func (s *Server) aiDraftReply(ctx context.Context, req aiRequest) (any, error) {
	return s.svc.AI.DraftReply(ctx, req.EmailID, req.Tone)
}

func (s *Server) aiDealHealth(ctx context.Context, req aiRequest) (any, error) {
	return s.svc.AI.DealHealth(ctx, req.LeadID)
}

func (s *Server) aiNudge(ctx context.Context, req aiRequest) (any, error) {
	return s.svc.AI.Nudge(ctx, req.LeadID)
}

func (s *Server) aiContentIdeas(ctx context.Context, req aiRequest) (any, error) {
	return s.svc.AI.ContentIdeas(ctx, req.Topic)
}

func (s *Server) aiBlockerAnalysis(ctx context.Context, req aiRequest) (any, error) {
	return s.svc.AI.BlockerAnalysis(ctx, req.ProjectID)
}

func (s *Server) handleApplyTaskSuggestion(w http.ResponseWriter, r *http.Request) {
	var req service.ApplySuggestionRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	task, err := s.svc.AI.ApplyTaskSuggestion(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}
