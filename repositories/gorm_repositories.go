package repositories

import (
	"context"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// useTx picks the transaction handle when one is in flight, otherwise the
// base connection.
func useTx(db *gorm.DB, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return db
}

type GormTxManager struct {
	db *gorm.DB
}

func NewGormTxManager(db *gorm.DB) *GormTxManager {
	return &GormTxManager{db: db}
}

func (m *GormTxManager) WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return m.db.WithContext(ctx).Transaction(fn)
}

// BuildContainer wires every repository against one database handle and one
// Redis client.
func BuildContainer(db *gorm.DB, rdb *redis.Client) *Container {
	return &Container{
		TxManager:      NewGormTxManager(db),
		Users:          NewGormUserRepository(db),
		Projects:       NewGormProjectRepository(db),
		Collaborations: NewGormCollaborationRepository(db),
		Shares:         NewGormShareRepository(db),
		UploadSessions: NewGormUploadSessionRepository(db),
		Components:     NewGormComponentRepository(db),
		Catalog:        NewGormCatalogRepository(db),
		Settings:       NewGormSettingsRepository(db),
		ShareAccess:    NewRedisShareAccessRepository(rdb),
	}
}
