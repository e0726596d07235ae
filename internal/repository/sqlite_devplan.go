package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/curtisos/curtisos/internal/db"
	"github.com/curtisos/curtisos/internal/domain"
)

// SQLiteDevPlanRepo implements DevPlanRepo using a SQLite database.
type SQLiteDevPlanRepo struct {
	db db.DBTX
}

// NewSQLiteDevPlanRepo creates a new SQLiteDevPlanRepo.
func NewSQLiteDevPlanRepo(conn db.DBTX) *SQLiteDevPlanRepo {
	return &SQLiteDevPlanRepo{db: conn}
}

const devPlanColumns = `id, project_id, name, current_stage,
	planning_start_date, planning_end_date, build_start_date, build_end_date,
	revise_start_date, revise_end_date, live_start_date,
	planning_notes, build_notes, revise_notes, live_notes, created_at, updated_at`

func (r *SQLiteDevPlanRepo) Create(ctx context.Context, d *domain.DevPlan) error {
	query := `INSERT INTO dev_plans (project_id, name, current_stage,
		planning_start_date, planning_end_date, build_start_date, build_end_date,
		revise_start_date, revise_end_date, live_start_date,
		planning_notes, build_notes, revise_notes, live_notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		d.ProjectID, d.Name, string(d.CurrentStage),
		nullableTimeToString(d.PlanningStartDate), nullableTimeToString(d.PlanningEndDate),
		nullableTimeToString(d.BuildStartDate), nullableTimeToString(d.BuildEndDate),
		nullableTimeToString(d.ReviseStartDate), nullableTimeToString(d.ReviseEndDate),
		nullableTimeToString(d.LiveStartDate),
		d.PlanningNotes, d.BuildNotes, d.ReviseNotes, d.LiveNotes,
		timeToString(d.CreatedAt), timeToString(d.UpdatedAt),
	)
	if err != nil {
		return translate(err, "inserting dev plan")
	}
	d.ID, err = res.LastInsertId()
	return err
}

func (r *SQLiteDevPlanRepo) GetByID(ctx context.Context, id int64) (*domain.DevPlan, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+devPlanColumns+` FROM dev_plans WHERE id = ?`, id)
	d, err := scanDevPlan(row)
	if err != nil {
		return nil, translate(err, "getting dev plan")
	}
	return d, nil
}

func (r *SQLiteDevPlanRepo) GetByProject(ctx context.Context, projectID int64) (*domain.DevPlan, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+devPlanColumns+` FROM dev_plans WHERE project_id = ?`, projectID)
	d, err := scanDevPlan(row)
	if err != nil {
		return nil, translate(err, "getting dev plan by project")
	}
	return d, nil
}

func (r *SQLiteDevPlanRepo) List(ctx context.Context) ([]*domain.DevPlan, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+devPlanColumns+` FROM dev_plans ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing dev plans: %w", err)
	}
	return collect(rows, "dev plans", scanDevPlan)
}

func (r *SQLiteDevPlanRepo) Update(ctx context.Context, d *domain.DevPlan) error {
	query := `UPDATE dev_plans SET name = ?, current_stage = ?,
		planning_start_date = ?, planning_end_date = ?, build_start_date = ?, build_end_date = ?,
		revise_start_date = ?, revise_end_date = ?, live_start_date = ?,
		planning_notes = ?, build_notes = ?, revise_notes = ?, live_notes = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		d.Name, string(d.CurrentStage),
		nullableTimeToString(d.PlanningStartDate), nullableTimeToString(d.PlanningEndDate),
		nullableTimeToString(d.BuildStartDate), nullableTimeToString(d.BuildEndDate),
		nullableTimeToString(d.ReviseStartDate), nullableTimeToString(d.ReviseEndDate),
		nullableTimeToString(d.LiveStartDate),
		d.PlanningNotes, d.BuildNotes, d.ReviseNotes, d.LiveNotes,
		timeToString(d.UpdatedAt), d.ID,
	)
	if err != nil {
		return translate(err, "updating dev plan")
	}
	return requireAffected(res, "updating dev plan")
}

func (r *SQLiteDevPlanRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM dev_plans WHERE id = ?`, id)
	if err != nil {
		return translate(err, "deleting dev plan")
	}
	return requireAffected(res, "deleting dev plan")
}

func scanDevPlan(s scanner) (*domain.DevPlan, error) {
	var d domain.DevPlan
	var stage, createdAt, updatedAt string
	var planStart, planEnd, buildStart, buildEnd, reviseStart, reviseEnd, liveStart sql.NullString

	err := s.Scan(
		&d.ID, &d.ProjectID, &d.Name, &stage,
		&planStart, &planEnd, &buildStart, &buildEnd,
		&reviseStart, &reviseEnd, &liveStart,
		&d.PlanningNotes, &d.BuildNotes, &d.ReviseNotes, &d.LiveNotes,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning dev plan: %w", err)
	}

	d.CurrentStage = domain.Stage(stage)
	d.PlanningStartDate = parseNullableTime(planStart)
	d.PlanningEndDate = parseNullableTime(planEnd)
	d.BuildStartDate = parseNullableTime(buildStart)
	d.BuildEndDate = parseNullableTime(buildEnd)
	d.ReviseStartDate = parseNullableTime(reviseStart)
	d.ReviseEndDate = parseNullableTime(reviseEnd)
	d.LiveStartDate = parseNullableTime(liveStart)
	if d.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if d.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}
