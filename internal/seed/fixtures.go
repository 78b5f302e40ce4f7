// Package seed loads demo data through the service layer, from YAML fixtures or generated with gofakeit.
package seed

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"gopkg.in/yaml.v3"
)

// DefaultPassword is used for fixture users that do not set one.
const DefaultPassword = "password123"

// Fixtures describes users and the content they own.
type Fixtures struct {
	Users    []UserFixture    `yaml:"users"`
	Articles []ArticleFixture `yaml:"articles"`
}

type UserFixture struct {
	Username string   `yaml:"username"`
	Email    string   `yaml:"email"`
	Password string   `yaml:"password"`
	Bio      string   `yaml:"bio"`
	Image    string   `yaml:"image"`
	Follows  []string `yaml:"follows"`
}

type ArticleFixture struct {
	Author      string           `yaml:"author"`
	Title       string           `yaml:"title"`
	Description string           `yaml:"description"`
	Body        string           `yaml:"body"`
	Tags        []string         `yaml:"tags"`
	FavoritedBy []string         `yaml:"favorited_by"`
	Comments    []CommentFixture `yaml:"comments"`
}

type CommentFixture struct {
	Author string `yaml:"author"`
	Body   string `yaml:"body"`
}

// LoadFixtures reads a YAML fixture file.
func LoadFixtures(path string) (*Fixtures, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}
	return ParseFixtures(raw)
}

// ParseFixtures decodes YAML fixtures and checks that every reference names a declared user.
func ParseFixtures(raw []byte) (*Fixtures, error) {
	var fx Fixtures
	if err := yaml.Unmarshal(raw, &fx); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}

	known := make(map[string]bool, len(fx.Users))
	for _, u := range fx.Users {
		known[strings.ToLower(u.Username)] = true
	}
	check := func(where, username string) error {
		if !known[strings.ToLower(username)] {
			return fmt.Errorf("%s references unknown user %q", where, username)
		}
		return nil
	}
	for _, u := range fx.Users {
		for _, f := range u.Follows {
			if err := check("user "+u.Username, f); err != nil {
				return nil, err
			}
		}
	}
	for _, a := range fx.Articles {
		if err := check("article "+a.Title, a.Author); err != nil {
			return nil, err
		}
		for _, f := range a.FavoritedBy {
			if err := check("article "+a.Title, f); err != nil {
				return nil, err
			}
		}
		for _, c := range a.Comments {
			if err := check("comment on "+a.Title, c.Author); err != nil {
				return nil, err
			}
		}
	}
	return &fx, nil
}

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]+`)

var tagPool = []string{
	"go", "rest", "databases", "testing", "devops", "security",
	"frontend", "backend", "career", "opensource", "cloud", "performance",
}

// Generate builds random fixtures. The same seed always yields the same data.
func Generate(seed int64, numUsers, numArticles int) *Fixtures {
	f := gofakeit.New(seed)
	fx := &Fixtures{}

	for i := 0; i < numUsers; i++ {
		name := strings.ToLower(nonAlnum.ReplaceAllString(f.FirstName()+f.LastName(), ""))
		username := fmt.Sprintf("%s%d", name, i+1)
		fx.Users = append(fx.Users, UserFixture{
			Username: username,
			Email:    username + "@example.com",
			Password: DefaultPassword,
			Bio:      f.Sentence(8),
			Image:    fmt.Sprintf("https://i.pravatar.cc/150?u=%s", username),
		})
	}
	if numUsers == 0 {
		return fx
	}

	for i := range fx.Users {
		for j := range fx.Users {
			if i != j && f.Number(1, 4) == 1 {
				fx.Users[i].Follows = append(fx.Users[i].Follows, fx.Users[j].Username)
			}
		}
	}

	for i := 0; i < numArticles; i++ {
		author := fx.Users[f.Number(0, numUsers-1)].Username
		article := ArticleFixture{
			Author:      author,
			Title:       strings.TrimSuffix(f.Sentence(f.Number(3, 7)), "."),
			Description: f.Sentence(12),
			Body:        f.Paragraph(3, 4, 12, "\n\n"),
		}
		for n := f.Number(0, 3); n > 0; n-- {
			article.Tags = append(article.Tags, f.RandomString(tagPool))
		}
		for _, u := range fx.Users {
			if f.Number(1, 3) == 1 {
				article.FavoritedBy = append(article.FavoritedBy, u.Username)
			}
		}
		for n := f.Number(0, 3); n > 0; n-- {
			article.Comments = append(article.Comments, CommentFixture{
				Author: fx.Users[f.Number(0, numUsers-1)].Username,
				Body:   f.Sentence(f.Number(5, 15)),
			})
		}
		fx.Articles = append(fx.Articles, article)
	}
	return fx
}
