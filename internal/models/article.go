package models

import (
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// Article is a published post owned by exactly one author.
type Article struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	Slug           string       `gorm:"uniqueIndex;not null;size:255" json:"slug"`
	Title          string       `gorm:"not null" json:"title"`
	Description    string       `gorm:"type:text" json:"description"`
	Body           string       `gorm:"type:text;not null" json:"body"`
	FavoritesCount int          `gorm:"not null;default:0" json:"favorites_count"`
	AuthorID       uint         `gorm:"not null;index" json:"author_id"`
	Author         User         `gorm:"foreignKey:AuthorID" json:"author"`
	Tags           []ArticleTag `gorm:"foreignKey:ArticleID" json:"-"`
	Comments       []Comment    `gorm:"foreignKey:ArticleID" json:"-"`
	CreatedAt      time.Time    `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// ArticleTag is one tag of an article. The pair is unique, so a tag list behaves as a set.
type ArticleTag struct {
	ArticleID uint   `gorm:"primaryKey;autoIncrement:false"`
	Tag       string `gorm:"primaryKey;size:128;index"`
}

// BeforeCreate assigns a slug on first save. Later saves never touch it.
func (a *Article) BeforeCreate(_ *gorm.DB) error {
	if a.Slug == "" {
		a.Slug = NewSlug(a.Title)
	}
	return nil
}

// NewSlug derives a URL-safe slug from title with a random suffix.
func NewSlug(title string) string {
	suffix := strconv.FormatInt(rand.Int64N(36*36*36*36*36*36), 36)
	base := slug.Make(title)
	if base == "" {
		return suffix
	}
	return base + "-" + suffix
}

// SetTags replaces the tag set, dropping blanks and duplicates.
func (a *Article) SetTags(tags []string) {
	a.Tags = a.Tags[:0]
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		a.Tags = append(a.Tags, ArticleTag{ArticleID: a.ID, Tag: t})
	}
}

// TagList returns the tag values sorted alphabetically.
func (a *Article) TagList() []string {
	list := make([]string, 0, len(a.Tags))
	for _, t := range a.Tags {
		list = append(list, t.Tag)
	}
	slices.Sort(list)
	return list
}
