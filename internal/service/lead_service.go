package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/curtisos/curtisos/internal/db"
	"github.com/curtisos/curtisos/internal/domain"
	"github.com/curtisos/curtisos/internal/repository"
	"go.uber.org/zap"
)

// ConvertLeadRequest customises the project created by a conversion.
type ConvertLeadRequest struct {
	ProjectName string   `json:"projectName"`
	Budget      *float64 `json:"budget"`
}

// LeadConversion is everything a conversion wrote.
type LeadConversion struct {
	Lead    *domain.Lead    `json:"lead"`
	Client  *domain.Client  `json:"client"`
	Project *domain.Project `json:"project"`
}

type leadService struct {
	leads    repository.LeadRepo
	uow      db.UnitOfWork
	acts     activityLog
	observer UseCaseObserver
	now      Clock
}

func NewLeadService(
	leads repository.LeadRepo,
	activities repository.ActivityRepo,
	uow db.UnitOfWork,
	log *zap.Logger,
	observers ...UseCaseObserver,
) LeadService {
	return &leadService{
		leads:    leads,
		uow:      uow,
		acts:     activityLog{repo: activities, log: orNop(log)},
		observer: useCaseObserverOrNoop(observers),
		now:      utcNow,
	}
}

func (s *leadService) Create(ctx context.Context, l *domain.Lead) error {
	l.Normalize()
	if err := l.Validate(); err != nil {
		return err
	}
	now := s.now()
	l.CreatedAt, l.UpdatedAt = now, now
	if err := s.leads.Create(ctx, l); err != nil {
		return err
	}
	s.acts.record(ctx, newActivity(domain.ActivityCreated, domain.EntityLead, l.ID, l.Context, now,
		"Lead %s created", l.DisplayName()))
	return nil
}

func (s *leadService) GetByID(ctx context.Context, id int64) (*domain.Lead, error) {
	return s.leads.GetByID(ctx, id)
}

func (s *leadService) List(ctx context.Context, f domain.LeadFilter) ([]*domain.Lead, error) {
	if err := checkContextFilter(f.Context); err != nil {
		return nil, err
	}
	if f.Status != "" && !f.Status.Valid() {
		return nil, domain.Invalid("status", "unknown lead status %q", f.Status)
	}
	return s.leads.List(ctx, f)
}

func (s *leadService) Update(ctx context.Context, id int64, patch domain.LeadPatch) (*domain.Lead, error) {
	l, err := s.leads.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	before := l.Status
	patch.Apply(l)
	if err := l.Validate(); err != nil {
		return nil, err
	}
	now := s.now()
	l.UpdatedAt = now
	if err := s.leads.Update(ctx, l); err != nil {
		return nil, err
	}
	s.acts.record(ctx, newActivity(changeKind(before, l.Status), domain.EntityLead, l.ID, l.Context, now,
		"%s", changeDescription("Lead "+l.DisplayName(), before, l.Status)))
	return l, nil
}

func (s *leadService) Delete(ctx context.Context, id int64) error {
	l, err := s.leads.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.leads.Delete(ctx, id); err != nil {
		return err
	}
	s.acts.record(ctx, newActivity(domain.ActivityDeleted, domain.EntityLead, id, l.Context, s.now(),
		"Lead %s deleted", l.DisplayName()))
	return nil
}

// Convert creates the client, its first project and the converted activity
// and marks the lead won, all in one transaction.
func (s *leadService) Convert(ctx context.Context, id int64, req ConvertLeadRequest) (result *LeadConversion, err error) {
	fields := map[string]any{"lead_id": id}
	defer observe(ctx, s.observer, "convert-lead", fields, &err)()

	if req.Budget != nil && *req.Budget < 0 {
		return nil, domain.Invalid("budget", "must not be negative")
	}

	now := s.now()
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		leads := repository.NewSQLiteLeadRepo(tx)
		clients := repository.NewSQLiteClientRepo(tx)
		projects := repository.NewSQLiteProjectRepo(tx)
		activities := repository.NewSQLiteActivityRepo(tx)

		lead, err := leads.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if lead.Status == domain.LeadWon {
			return domain.Invalid("status", "lead %d is already won", id)
		}

		client := domain.ClientFromLead(lead)
		client.CreatedAt, client.UpdatedAt = now, now
		if err := clients.Create(ctx, client); err != nil {
			return fmt.Errorf("creating client: %w", err)
		}

		project := &domain.Project{
			Name:        strings.TrimSpace(req.ProjectName),
			Description: fmt.Sprintf("Converted from lead #%d", lead.ID),
			ClientID:    &client.ID,
			Context:     lead.Context,
			Budget:      lead.Value,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if project.Name == "" {
			project.Name = lead.DisplayName() + " Website"
		}
		if req.Budget != nil {
			project.Budget = *req.Budget
		}
		project.Normalize()
		if err := project.Validate(); err != nil {
			return err
		}
		if err := projects.Create(ctx, project); err != nil {
			return fmt.Errorf("creating project: %w", err)
		}

		lead.Status = domain.LeadWon
		lead.UpdatedAt = now
		if err := leads.Update(ctx, lead); err != nil {
			return fmt.Errorf("marking lead won: %w", err)
		}

		act := newActivity(domain.ActivityConverted, domain.EntityLead, lead.ID, lead.Context, now,
			"Lead %s converted to client #%d with project %q", lead.DisplayName(), client.ID, project.Name)
		if err := activities.Create(ctx, act); err != nil {
			return fmt.Errorf("recording conversion: %w", err)
		}

		result = &LeadConversion{Lead: lead, Client: client, Project: project}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["client_id"] = result.Client.ID
	fields["project_id"] = result.Project.ID
	return result, nil
}
