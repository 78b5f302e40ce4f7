package service

import (
	"context"

	"conduit/internal/models"
	"conduit/internal/repository"
	"conduit/internal/validation"
)

type CommentService struct {
	comments repository.CommentRepository
	users    repository.UserRepository
}

type CreateCommentInput struct {
	AuthorID uint
	Article  *models.Article
	Body     string
}

type DeleteCommentInput struct {
	ActorID uint
	Article *models.Article
	Comment *models.Comment
}

func NewCommentService(comments repository.CommentRepository, users repository.UserRepository) *CommentService {
	return &CommentService{comments: comments, users: users}
}

func (s *CommentService) Lookup(ctx context.Context, id uint) (*models.Comment, error) {
	return s.comments.GetByID(ctx, id)
}

func (s *CommentService) Create(ctx context.Context, in CreateCommentInput) (models.CommentView, error) {
	author, err := loadActor(ctx, s.users, in.AuthorID)
	if err != nil {
		return models.CommentView{}, err
	}
	errs := validation.Errors{}
	errs.Required("body", in.Body)
	if err := errs.Err(); err != nil {
		return models.CommentView{}, err
	}

	comment := &models.Comment{
		Body:      in.Body,
		ArticleID: in.Article.ID,
		AuthorID:  author.ID,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return models.CommentView{}, err
	}
	comment.Author = *author
	return comment.ToView(author), nil
}

// List returns the article's comments, newest first.
func (s *CommentService) List(ctx context.Context, article *models.Article, viewerID uint) ([]models.CommentView, error) {
	viewer, err := loadViewer(ctx, s.users, viewerID)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByArticle(ctx, article.ID)
	if err != nil {
		return nil, err
	}
	views := make([]models.CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, c.ToView(viewer))
	}
	return views, nil
}

func (s *CommentService) Delete(ctx context.Context, in DeleteCommentInput) error {
	actor, err := loadActor(ctx, s.users, in.ActorID)
	if err != nil {
		return err
	}
	if in.Comment.ArticleID != in.Article.ID {
		return models.NewNotFoundError("Comment", in.Comment.ID)
	}
	if in.Comment.AuthorID != actor.ID {
		return models.NewForbiddenError("only the author may delete this comment")
	}
	return s.comments.Delete(ctx, in.Comment.ID)
}
