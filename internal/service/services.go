package service

import (
	"database/sql"

	"github.com/curtisos/curtisos/internal/db"
	"github.com/curtisos/curtisos/internal/intelligence"
	"github.com/curtisos/curtisos/internal/mail"
	"github.com/curtisos/curtisos/internal/repository"
	"go.uber.org/zap"
)

// Deps are the collaborators every service is built from. Mail may be nil
// when no mailbox is configured.
type Deps struct {
	DB         *sql.DB
	UoW        db.UnitOfWork
	Advisor    intelligence.Advisor
	Mail       mail.Provider
	MailConfig mail.Config
	Log        *zap.Logger
	Observer   UseCaseObserver
}

// Services bundles the application's use cases.
type Services struct {
	Leads      LeadService
	Clients    ClientService
	Projects   ProjectService
	Tasks      TaskService
	DevPlans   DevPlanService
	Episodes   EpisodeService
	Emails     EmailService
	EmailSync  EmailSyncService
	Revenue    RevenueService
	Reports    ReportService
	Tags       TagService
	Activities ActivityService
	Dashboard  DashboardService
	Export     ExportService
	AI         AIService
}

// New wires the SQLite repositories into every service.
func New(d Deps) *Services {
	log := orNop(d.Log)
	uow := d.UoW
	if uow == nil {
		uow = db.NewSQLiteUnitOfWork(d.DB)
	}
	obs := d.Observer
	if obs == nil {
		obs = NoopUseCaseObserver{}
	}

	leads := repository.NewSQLiteLeadRepo(d.DB)
	clients := repository.NewSQLiteClientRepo(d.DB)
	projects := repository.NewSQLiteProjectRepo(d.DB)
	tasks := repository.NewSQLiteTaskRepo(d.DB)
	plans := repository.NewSQLiteDevPlanRepo(d.DB)
	episodes := repository.NewSQLiteEpisodeRepo(d.DB)
	emails := repository.NewSQLiteEmailRepo(d.DB)
	revenue := repository.NewSQLiteRevenueRepo(d.DB)
	reports := repository.NewSQLiteReportRepo(d.DB)
	tags := repository.NewSQLiteTagRepo(d.DB)
	activities := repository.NewSQLiteActivityRepo(d.DB)
	dashboard := repository.NewSQLiteDashboardRepo(d.DB)

	taskSvc := NewTaskService(tasks, activities, log)

	return &Services{
		Leads:      NewLeadService(leads, activities, uow, log, obs),
		Clients:    NewClientService(clients, projects, activities, log),
		Projects:   NewProjectService(projects, tasks, plans, activities, log),
		Tasks:      taskSvc,
		DevPlans:   NewDevPlanService(plans, projects, activities, uow, log, obs),
		Episodes:   NewEpisodeService(episodes, activities, log),
		Emails:     NewEmailService(emails, activities, d.Mail, uow, log, obs),
		EmailSync:  NewEmailSyncService(emails, activities, d.Mail, d.Advisor, d.MailConfig, uow, log, obs),
		Revenue:    NewRevenueService(revenue, activities, log),
		Reports:    NewReportService(reports, activities, log),
		Tags:       NewTagService(tags, EntityCheckers(leads, clients, projects, tasks, episodes, emails), activities, log),
		Activities: NewActivityService(activities),
		Dashboard:  NewDashboardService(dashboard),
		Export:     NewExportService(repository.NewSQLiteExportRepo(d.DB), obs),
		AI: NewAIService(AIRepos{
			Leads:      leads,
			Clients:    clients,
			Projects:   projects,
			Tasks:      tasks,
			Plans:      plans,
			Episodes:   episodes,
			Emails:     emails,
			Revenue:    revenue,
			Activities: activities,
			Dashboard:  dashboard,
		}, d.Advisor, taskSvc),
	}
}
