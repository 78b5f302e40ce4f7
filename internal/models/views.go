package models

import "time"

// DefaultImage is shown for profiles without an image.
const DefaultImage = "https://static.productionready.io/images/smiley-cyrus.jpg"

// AuthView is the authenticated user's own representation.
type AuthView struct {
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Token    string  `json:"token"`
	Bio      *string `json:"bio"`
	Image    *string `json:"image"`
}

// ProfileView is a user as seen by someone else.
type ProfileView struct {
	Username  string `json:"username"`
	Bio       string `json:"bio"`
	Image     string `json:"image"`
	Following bool   `json:"following"`
}

type ArticleView struct {
	Slug           string      `json:"slug"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Body           string      `json:"body"`
	TagList        []string    `json:"tagList"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
	Favorited      bool        `json:"favorited"`
	FavoritesCount int         `json:"favoritesCount"`
	Author         ProfileView `json:"author"`
}

type CommentView struct {
	ID        uint        `json:"id"`
	Body      string      `json:"body"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
	Author    ProfileView `json:"author"`
}

// ToAuthView projects u for its owner, embedding a freshly issued token.
func (u *User) ToAuthView(token string) AuthView {
	return AuthView{
		Username: u.Username,
		Email:    u.Email,
		Token:    token,
		Bio:      nullable(u.Bio),
		Image:    nullable(u.Image),
	}
}

// ToProfileView projects u for viewer, which may be nil for anonymous requests.
func (u *User) ToProfileView(viewer *User) ProfileView {
	image := u.Image
	if image == "" {
		image = DefaultImage
	}
	return ProfileView{
		Username:  u.Username,
		Bio:       u.Bio,
		Image:     image,
		Following: viewer != nil && viewer.IsFollowing(u.ID),
	}
}

// ToView projects a for viewer, which may be nil. The author must be loaded.
func (a *Article) ToView(viewer *User) ArticleView {
	return ArticleView{
		Slug:           a.Slug,
		Title:          a.Title,
		Description:    a.Description,
		Body:           a.Body,
		TagList:        a.TagList(),
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
		Favorited:      viewer != nil && viewer.IsFavorite(a.ID),
		FavoritesCount: a.FavoritesCount,
		Author:         a.Author.ToProfileView(viewer),
	}
}

func (c *Comment) ToView(viewer *User) CommentView {
	return CommentView{
		ID:        c.ID,
		Body:      c.Body,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Author:    c.Author.ToProfileView(viewer),
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
