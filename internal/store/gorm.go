package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cryptomobile/internal/models"
)

type gormStore struct {
	db *gorm.DB
}

// Open connects to Postgres and migrates the schema.
func Open(dsn string) (Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return NewGorm(db)
}

func NewGorm(db *gorm.DB) (Store, error) {
	if err := db.AutoMigrate(&models.Client{}, &models.Vector{}, &models.AuditLog{}, &models.Algorithm{}); err != nil {
		return nil, err
	}
	return &gormStore{db: db}, nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *gormStore) CreateClient(ctx context.Context, c *models.Client) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return s.db.WithContext(ctx).Create(c).Error
}

func (s *gormStore) ListClients(ctx context.Context) ([]models.Client, error) {
	var cs []models.Client
	err := s.db.WithContext(ctx).Order("created_at desc").Find(&cs).Error
	return cs, err
}

func (s *gormStore) GetClient(ctx context.Context, id string) (models.Client, error) {
	var c models.Client
	err := s.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return c, notFound(err)
}

func (s *gormStore) UpdateClient(ctx context.Context, c *models.Client) error {
	c.UpdatedAt = time.Now()
	res := s.db.WithContext(ctx).Model(&models.Client{}).Where("id = ?", c.ID).Updates(map[string]any{
		"company_name":    c.CompanyName,
		"product_name":    c.ProductName,
		"product_version": c.ProductVersion,
		"updated_at":      c.UpdatedAt,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore) DeleteClient(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.Client{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore) SaveVector(ctx context.Context, v *models.Vector) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return s.db.WithContext(ctx).Create(v).Error
}

func (s *gormStore) GetVector(ctx context.Context, id string) (models.Vector, error) {
	var v models.Vector
	err := s.db.WithContext(ctx).First(&v, "id = ?", id).Error
	return v, notFound(err)
}

func (s *gormStore) AppendAudit(ctx context.Context, e *models.AuditLog) error {
	return s.db.WithContext(ctx).Create(e).Error
}

func (s *gormStore) ListAudit(ctx context.Context, subject string, limit int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > DefaultAuditLimit {
		limit = DefaultAuditLimit
	}
	q := s.db.WithContext(ctx).Order("created_at desc").Limit(limit)
	if subject != "" {
		q = q.Where("subject = ?", subject)
	}
	var logs []models.AuditLog
	err := q.Find(&logs).Error
	return logs, err
}

func (s *gormStore) SyncAlgorithms(ctx context.Context, algs []models.Algorithm) error {
	if len(algs) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		UpdateAll: true,
	}).Create(&algs).Error
}

func (s *gormStore) ListAlgorithms(ctx context.Context) ([]models.Algorithm, error) {
	var algs []models.Algorithm
	err := s.db.WithContext(ctx).Order("name").Find(&algs).Error
	return algs, err
}
