// Package models contains data structures for the application's domain models.
package models

import (
	"slices"
	"strings"
	"time"

	"conduit/internal/auth"

	"gorm.io/gorm"
)

// User is a registered account.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null;size:64" json:"username"`
	Email     string    `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Bio       string    `gorm:"type:text" json:"bio"`
	Image     string    `json:"image"`
	Hash      string    `gorm:"type:text" json:"-"`
	Salt      string    `gorm:"size:64" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// FavoriteIDs and FollowingIDs are loaded on demand from the join tables.
	FavoriteIDs  []uint `gorm:"-" json:"-"`
	FollowingIDs []uint `gorm:"-" json:"-"`
}

// BeforeSave stores username and email lowercase so lookups are case-insensitive.
func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Username = strings.ToLower(strings.TrimSpace(u.Username))
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	return nil
}

// SetPassword replaces the stored hash and salt.
func (u *User) SetPassword(password string) error {
	hash, salt, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	u.Hash = hash
	u.Salt = salt
	return nil
}

// ValidPassword reports whether password matches the stored hash.
func (u *User) ValidPassword(password string) bool {
	return auth.VerifyPassword(password, u.Hash, u.Salt)
}

func (u *User) IsFavorite(articleID uint) bool {
	return slices.Contains(u.FavoriteIDs, articleID)
}

func (u *User) IsFollowing(userID uint) bool {
	return slices.Contains(u.FollowingIDs, userID)
}

// Follow marks userID as followed. Already followed ids are left untouched.
func (u *User) Follow(userID uint) {
	if !u.IsFollowing(userID) {
		u.FollowingIDs = append(u.FollowingIDs, userID)
	}
}

func (u *User) Unfollow(userID uint) {
	u.FollowingIDs = slices.DeleteFunc(u.FollowingIDs, func(id uint) bool { return id == userID })
}

// Favorite marks articleID as favorited. Already favorited ids are left untouched.
func (u *User) Favorite(articleID uint) {
	if !u.IsFavorite(articleID) {
		u.FavoriteIDs = append(u.FavoriteIDs, articleID)
	}
}

func (u *User) Unfavorite(articleID uint) {
	u.FavoriteIDs = slices.DeleteFunc(u.FavoriteIDs, func(id uint) bool { return id == articleID })
}

// Follow is a directed edge from follower to followee.
type Follow struct {
	FollowerID uint `gorm:"primaryKey;autoIncrement:false"`
	FolloweeID uint `gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt  time.Time
}

// Favorite records that a user favorited an article.
type Favorite struct {
	UserID    uint `gorm:"primaryKey;autoIncrement:false"`
	ArticleID uint `gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time
}
