package models

import "time"

// TontineMembership assigns a user to a numbered position within a
// tontine. The unique indexes are the arbiter for concurrent joins:
// the database rejects a duplicate position or a duplicate user
// atomically, and the repository translates the rejection into the
// matching conflict error.
type TontineMembership struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TontineID uint      `gorm:"not null;uniqueIndex:idx_tontine_position;uniqueIndex:idx_tontine_user" json:"tontine_id"`
	Tontine   *Tontine  `gorm:"foreignKey:TontineID" json:"tontine,omitempty"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_tontine_user" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Position  int       `gorm:"not null;uniqueIndex:idx_tontine_position" json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (TontineMembership) TableName() string {
	return "tontine_memberships"
}
