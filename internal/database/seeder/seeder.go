// Package seeder loads reference data the service expects to exist.
package seeder

import (
	"context"

	"jobconnect/internal/database"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
