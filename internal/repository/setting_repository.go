package repository

import (
	"context"

	"github.com/mgzon/backend/internal/model"
)

// SettingRepository handles the singleton site configuration row.
type SettingRepository interface {
	// Get returns the settings row, or ErrNotFound when none has been
	// written yet.
	Get(ctx context.Context) (*model.Setting, error)

	// Upsert writes the settings row (creating it if absent) and returns
	// the row as stored, reflecting any store-side normalization.
	Upsert(ctx context.Context, s *model.Setting) (*model.Setting, error)
}
