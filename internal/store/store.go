// Package store persists clients, generated vector sets, the audit trail and
// the algorithm catalogue.
package store

import (
	"context"
	"errors"

	"cryptomobile/internal/models"
)

var ErrNotFound = errors.New("not found")

// DefaultAuditLimit caps ListAudit results.
const DefaultAuditLimit = 200

type Store interface {
	CreateClient(ctx context.Context, c *models.Client) error
	ListClients(ctx context.Context) ([]models.Client, error)
	GetClient(ctx context.Context, id string) (models.Client, error)
	UpdateClient(ctx context.Context, c *models.Client) error
	DeleteClient(ctx context.Context, id string) error

	SaveVector(ctx context.Context, v *models.Vector) error
	GetVector(ctx context.Context, id string) (models.Vector, error)

	AppendAudit(ctx context.Context, e *models.AuditLog) error
	// ListAudit returns the newest entries first. An empty subject lists
	// every subject.
	ListAudit(ctx context.Context, subject string, limit int) ([]models.AuditLog, error)

	SyncAlgorithms(ctx context.Context, algs []models.Algorithm) error
	ListAlgorithms(ctx context.Context) ([]models.Algorithm, error)
}
