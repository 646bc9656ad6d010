// Package model holds the GORM persistence models mirroring the database
// schema. Mapping to and from domain entities happens in the repositories.
package model

import "time"

// UserModel mirrors the 'users' table. Email is unique across all providers;
// the composite (provider, provider_id) index ties one external identity to
// exactly one row. ProviderID stays NULL for local accounts so they never
// collide on that index. Racing inserts are resolved by these indexes, not by
// application-level checks.
type UserModel struct {
	ID              int64   `gorm:"primaryKey;autoIncrement"`
	FullName        string  `gorm:"type:varchar(100);not null"`
	Email           string  `gorm:"type:varchar(200);uniqueIndex;not null"`
	PasswordHash    string  `gorm:"type:varchar(255)"`
	Provider        string  `gorm:"type:varchar(50);uniqueIndex:idx_users_provider_provider_id"`
	ProviderID      *string `gorm:"type:varchar(255);uniqueIndex:idx_users_provider_provider_id"`
	AvatarURL       string `gorm:"type:text"`
	Bio             string `gorm:"type:text"`
	PreferredEmail  string `gorm:"type:varchar(200)"`
	IsEmailVerified bool   `gorm:"not null;default:false"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
