package repo

import (
	"context"

	dom "taskboard/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TagRepo interface {
	Create(ctx context.Context, t dom.Tag) (dom.Tag, error)
	List(ctx context.Context) ([]dom.Tag, error)
}

type PGTagRepo struct {
	db *pgxpool.Pool
}

func NewPGTagRepo(db *pgxpool.Pool) *PGTagRepo {
	return &PGTagRepo{db: db}
}

func (r *PGTagRepo) Create(ctx context.Context, t dom.Tag) (dom.Tag, error) {
	var out dom.Tag
	err := r.db.QueryRow(ctx,
		`INSERT INTO tags (id, name, color) VALUES ($1, $2, $3) RETURNING id, name, color`,
		t.ID, t.Name, t.Color,
	).Scan(&out.ID, &out.Name, &out.Color)
	return out, err
}

func (r *PGTagRepo) List(ctx context.Context) ([]dom.Tag, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, color FROM tags ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := []dom.Tag{}
	for rows.Next() {
		var t dom.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
