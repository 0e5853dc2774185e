package model

import (
	"time"
)

// Blob is a key-addressed JSON document of the database blob store.
type Blob struct {
	Key       string    `gorm:"primaryKey;size:191" json:"key"`
	Data      []byte    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Blob) TableName() string {
	return "blobs"
}
