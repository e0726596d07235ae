package repository

import (
	"context"
	"fmt"

	"github.com/curtisos/curtisos/internal/db"
	"github.com/curtisos/curtisos/internal/domain"
)

// SQLiteTagRepo implements TagRepo using a SQLite database.
type SQLiteTagRepo struct {
	db db.DBTX
}

// NewSQLiteTagRepo creates a new SQLiteTagRepo.
func NewSQLiteTagRepo(conn db.DBTX) *SQLiteTagRepo {
	return &SQLiteTagRepo{db: conn}
}

const tagColumns = `id, name, color, created_at`

func (r *SQLiteTagRepo) Create(ctx context.Context, t *domain.Tag) error {
	res, err := r.db.ExecContext(ctx, `INSERT INTO tags (name, color, created_at) VALUES (?, ?, ?)`,
		t.Name, t.Color, timeToString(t.CreatedAt))
	if err != nil {
		return translate(err, "inserting tag")
	}
	t.ID, err = res.LastInsertId()
	return err
}

func (r *SQLiteTagRepo) GetByID(ctx context.Context, id int64) (*domain.Tag, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+tagColumns+` FROM tags WHERE id = ?`, id)
	t, err := scanTag(row)
	if err != nil {
		return nil, translate(err, "getting tag")
	}
	return t, nil
}

func (r *SQLiteTagRepo) List(ctx context.Context) ([]*domain.Tag, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+tagColumns+` FROM tags ORDER BY name COLLATE NOCASE`)
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	return collect(rows, "tags", scanTag)
}

func (r *SQLiteTagRepo) Update(ctx context.Context, t *domain.Tag) error {
	res, err := r.db.ExecContext(ctx, `UPDATE tags SET name = ?, color = ? WHERE id = ?`, t.Name, t.Color, t.ID)
	if err != nil {
		return translate(err, "updating tag")
	}
	return requireAffected(res, "updating tag")
}

func (r *SQLiteTagRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id)
	if err != nil {
		return translate(err, "deleting tag")
	}
	return requireAffected(res, "deleting tag")
}

// Assign links a tag to an entity. Assigning twice is a conflict.
func (r *SQLiteTagRepo) Assign(ctx context.Context, a *domain.TagAssignment) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tag_assignments (tag_id, entity_type, entity_id, created_at) VALUES (?, ?, ?, ?)`,
		a.TagID, string(a.EntityType), a.EntityID, timeToString(a.CreatedAt))
	if err != nil {
		return translate(err, "assigning tag")
	}
	return nil
}

func (r *SQLiteTagRepo) Unassign(ctx context.Context, tagID int64, entityType domain.EntityType, entityID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM tag_assignments WHERE tag_id = ? AND entity_type = ? AND entity_id = ?`,
		tagID, string(entityType), entityID)
	if err != nil {
		return translate(err, "unassigning tag")
	}
	return requireAffected(res, "unassigning tag")
}

func (r *SQLiteTagRepo) ListAssignments(ctx context.Context, tagID int64) ([]*domain.TagAssignment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT tag_id, entity_type, entity_id, created_at FROM tag_assignments
		WHERE tag_id = ? ORDER BY entity_type, entity_id`, tagID)
	if err != nil {
		return nil, fmt.Errorf("listing tag assignments: %w", err)
	}
	return collect(rows, "tag assignments", func(s scanner) (*domain.TagAssignment, error) {
		var a domain.TagAssignment
		var entityType, createdAt string
		if err := s.Scan(&a.TagID, &entityType, &a.EntityID, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning tag assignment: %w", err)
		}
		a.EntityType = domain.EntityType(entityType)
		var err error
		if a.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
			return nil, err
		}
		return &a, nil
	})
}

func (r *SQLiteTagRepo) ListForEntity(ctx context.Context, entityType domain.EntityType, entityID int64) ([]*domain.Tag, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT t.id, t.name, t.color, t.created_at FROM tags t
		JOIN tag_assignments a ON a.tag_id = t.id
		WHERE a.entity_type = ? AND a.entity_id = ?
		ORDER BY t.name COLLATE NOCASE`, string(entityType), entityID)
	if err != nil {
		return nil, fmt.Errorf("listing tags for entity: %w", err)
	}
	return collect(rows, "tags", scanTag)
}

func scanTag(s scanner) (*domain.Tag, error) {
	var t domain.Tag
	var createdAt string
	if err := s.Scan(&t.ID, &t.Name, &t.Color, &createdAt); err != nil {
		return nil, fmt.Errorf("scanning tag: %w", err)
	}
	var err error
	if t.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	return &t, nil
}
