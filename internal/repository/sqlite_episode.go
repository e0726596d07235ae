package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/curtisos/curtisos/internal/db"
	"github.com/curtisos/curtisos/internal/domain"
)

// SQLiteEpisodeRepo implements EpisodeRepo using a SQLite database.
type SQLiteEpisodeRepo struct {
	db db.DBTX
}

// NewSQLiteEpisodeRepo creates a new SQLiteEpisodeRepo.
func NewSQLiteEpisodeRepo(conn db.DBTX) *SQLiteEpisodeRepo {
	return &SQLiteEpisodeRepo{db: conn}
}

const episodeColumns = `id, title, episode_number, status, guest, record_date, publish_date, notes, created_at, updated_at`

func (r *SQLiteEpisodeRepo) Create(ctx context.Context, e *domain.Episode) error {
	query := `INSERT INTO episodes (title, episode_number, status, guest, record_date, publish_date, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		e.Title, nullableInt(e.EpisodeNumber), string(e.Status), e.Guest,
		nullableTimeToString(e.RecordDate), nullableTimeToString(e.PublishDate), e.Notes,
		timeToString(e.CreatedAt), timeToString(e.UpdatedAt),
	)
	if err != nil {
		return translate(err, "inserting episode")
	}
	e.ID, err = res.LastInsertId()
	return err
}

func (r *SQLiteEpisodeRepo) GetByID(ctx context.Context, id int64) (*domain.Episode, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+episodeColumns+` FROM episodes WHERE id = ?`, id)
	e, err := scanEpisode(row)
	if err != nil {
		return nil, translate(err, "getting episode")
	}
	return e, nil
}

func (r *SQLiteEpisodeRepo) List(ctx context.Context, status domain.EpisodeStatus) ([]*domain.Episode, error) {
	var w where
	w.eqStr("status", string(status))
	query := `SELECT ` + episodeColumns + ` FROM episodes` + w.String() + `
		ORDER BY episode_number IS NULL, episode_number DESC, created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("listing episodes: %w", err)
	}
	return collect(rows, "episodes", scanEpisode)
}

// ListRecent returns the most recently created episodes.
func (r *SQLiteEpisodeRepo) ListRecent(ctx context.Context, limit int) ([]*domain.Episode, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+episodeColumns+` FROM episodes ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent episodes: %w", err)
	}
	return collect(rows, "episodes", scanEpisode)
}

func (r *SQLiteEpisodeRepo) Update(ctx context.Context, e *domain.Episode) error {
	query := `UPDATE episodes SET title = ?, episode_number = ?, status = ?, guest = ?,
		record_date = ?, publish_date = ?, notes = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		e.Title, nullableInt(e.EpisodeNumber), string(e.Status), e.Guest,
		nullableTimeToString(e.RecordDate), nullableTimeToString(e.PublishDate), e.Notes,
		timeToString(e.UpdatedAt), e.ID,
	)
	if err != nil {
		return translate(err, "updating episode")
	}
	return requireAffected(res, "updating episode")
}

func (r *SQLiteEpisodeRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM episodes WHERE id = ?`, id)
	if err != nil {
		return translate(err, "deleting episode")
	}
	return requireAffected(res, "deleting episode")
}

func scanEpisode(s scanner) (*domain.Episode, error) {
	var e domain.Episode
	var status, createdAt, updatedAt string
	var number sql.NullInt64
	var recordDate, publishDate sql.NullString

	err := s.Scan(
		&e.ID, &e.Title, &number, &status, &e.Guest,
		&recordDate, &publishDate, &e.Notes, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning episode: %w", err)
	}

	e.Status = domain.EpisodeStatus(status)
	e.EpisodeNumber = intPtr(number)
	e.RecordDate = parseNullableTime(recordDate)
	e.PublishDate = parseNullableTime(publishDate)
	if e.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if e.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}
