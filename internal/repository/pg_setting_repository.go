package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/mgzon/backend/internal/model"
)

// pgSettingRepository stores the site configuration in a single row
// constrained to id = 1.
type pgSettingRepository struct {
	db DB
}

// NewPgSettingRepository returns a PostgreSQL-backed SettingRepository.
func NewPgSettingRepository(db DB) SettingRepository {
	return &pgSettingRepository{db: db}
}

const settingColumns = `site_name, slogan, description, base_url,
	contact_email, contact_phone, contact_address, carousels, categories, updated_at`

func scanSetting(row pgx.Row) (*model.Setting, error) {
	s := &model.Setting{}
	err := row.Scan(
		&s.SiteName, &s.Slogan, &s.Description, &s.BaseURL,
		&s.ContactEmail, &s.ContactPhone, &s.ContactAddress,
		&s.Carousels, &s.Categories, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *pgSettingRepository) Get(ctx context.Context) (*model.Setting, error) {
	s, err := scanSetting(r.db.QueryRow(ctx,
		`SELECT `+settingColumns+` FROM settings WHERE id = 1`))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return s, err
}

// Upsert writes the singleton row and returns it as stored.
func (r *pgSettingRepository) Upsert(ctx context.Context, s *model.Setting) (*model.Setting, error) {
	carousels, err := json.Marshal(s.Carousels)
	if err != nil {
		return nil, err
	}
	categories, err := json.Marshal(s.Categories)
	if err != nil {
		return nil, err
	}

	return scanSetting(r.db.QueryRow(ctx,
		`INSERT INTO settings (id, site_name, slogan, description, base_url,
			contact_email, contact_phone, contact_address, carousels, categories)
		 VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8::jsonb, $9::jsonb)
		 ON CONFLICT (id) DO UPDATE SET
			site_name = EXCLUDED.site_name,
			slogan = EXCLUDED.slogan,
			description = EXCLUDED.description,
			base_url = EXCLUDED.base_url,
			contact_email = EXCLUDED.contact_email,
			contact_phone = EXCLUDED.contact_phone,
			contact_address = EXCLUDED.contact_address,
			carousels = EXCLUDED.carousels,
			categories = EXCLUDED.categories,
			updated_at = NOW()
		 RETURNING `+settingColumns,
		s.SiteName, s.Slogan, s.Description, s.BaseURL,
		s.ContactEmail, s.ContactPhone, s.ContactAddress,
		string(carousels), string(categories),
	))
}
