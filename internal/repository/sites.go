package repository

import (
	"context"
	"time"

	"github.com/grafiki-ochrony/guard-roster/backend/internal/domain"
)

func (r *Repository) CreateSite(site *domain.Site) error {
	query := `
		INSERT INTO sites (name)
		VALUES ($1)
		RETURNING id, created_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, site.Name).Scan(&site.ID, &site.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetSiteByID(id int64) (*domain.Site, error) {
	query := `
		SELECT name, created_at FROM sites WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	site := &domain.Site{
		ID: id,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(&site.Name, &site.CreatedAt); err != nil {
		return nil, err
	}

	return site, nil
}

func (r *Repository) GetAllSites() ([]*domain.Site, error) {
	query := `
		SELECT id, name, created_at FROM sites ORDER BY name
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sites := make([]*domain.Site, 0)
	for rows.Next() {
		site := &domain.Site{}
		if err := rows.Scan(&site.ID, &site.Name, &site.CreatedAt); err != nil {
			return nil, err
		}
		sites = append(sites, site)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sites, nil
}

func (r *Repository) DeleteSite(id int64) error {
	query := `
		DELETE FROM sites WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
