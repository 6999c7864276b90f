package entity

import (
	"time"
)

// StateBlob is one durably stored container snapshot: a versioned JSON
// document per (namespace, owner). Namespaces never share a row, and the
// version is consulted by a migration function before the blob is used.
// Deletes are hard deletes; a soft-deleted row would still occupy the
// unique (namespace, owner) slot and block the next write.
type StateBlob struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Namespace string    `json:"namespace" gorm:"uniqueIndex:idx_state_ns_owner"`
	Owner     string    `json:"owner" gorm:"uniqueIndex:idx_state_ns_owner"`
	Version   int       `json:"version"`
	Data      []byte    `json:"data" gorm:"type:blob"`
}
