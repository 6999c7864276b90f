package repository

import (
	"errors"

	"storefront/entity"

	"gorm.io/gorm"
)

// StateRepository stores container snapshots as versioned JSON blobs, one
// row per (namespace, owner).
type StateRepository struct {
	DB *gorm.DB
}

func NewStateRepository(db *gorm.DB) *StateRepository {
	return &StateRepository{DB: db}
}

// Get returns the stored blob, or nil when the owner has nothing persisted
// under the namespace.
func (r *StateRepository) Get(namespace, owner string) (*entity.StateBlob, error) {
	var blob entity.StateBlob
	err := r.DB.Where("namespace = ? AND owner = ?", namespace, owner).First(&blob).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &blob, nil
}

// Put upserts the blob for (namespace, owner) at the given schema version.
func (r *StateRepository) Put(namespace, owner string, version int, data []byte) error {
	var blob entity.StateBlob
	err := r.DB.Where("namespace = ? AND owner = ?", namespace, owner).First(&blob).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		blob = entity.StateBlob{Namespace: namespace, Owner: owner, Version: version, Data: data}
		return r.DB.Create(&blob).Error
	}
	if err != nil {
		return err
	}
	blob.Version = version
	blob.Data = data
	return r.DB.Save(&blob).Error
}

func (r *StateRepository) Delete(namespace, owner string) error {
	return r.DB.Where("namespace = ? AND owner = ?", namespace, owner).
		Delete(&entity.StateBlob{}).Error
}
