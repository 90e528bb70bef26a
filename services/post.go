package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/cppla/yatube/models"
)

// PostService creates, edits and lists posts and their comments.
type PostService struct {
	db *gorm.DB
}

// NewPostService creates a PostService.
func NewPostService(db *gorm.DB) *PostService {
	return &PostService{db: db}
}

// PostPreloads are the associations every listing item carries.
var PostPreloads = []string{"Author", "Group"}

// All returns every post, newest first.
func (s *PostService) All(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Model(&models.Post{}).Order(newestFirst)
}

// ByGroup returns the group identified by slug and its posts, newest first.
func (s *PostService) ByGroup(ctx context.Context, slug string) (*models.Group, *gorm.DB, error) {
	var group models.Group
	if err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&group).Error; err != nil {
		return nil, nil, notFound(err)
	}
	q := s.db.WithContext(ctx).Model(&models.Post{}).
		Where("posts.group_id = ?", group.ID).
		Order(newestFirst)
	return &group, q, nil
}

// ByAuthor returns the posts of authorID, newest first.
func (s *PostService) ByAuthor(ctx context.Context, authorID uint) *gorm.DB {
	return s.db.WithContext(ctx).Model(&models.Post{}).
		Where("posts.author_id = ?", authorID).
		Order(newestFirst)
}

// Get loads a post with author, group and comments in creation order.
func (s *PostService) Get(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Group").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC, comments.id ASC")
		}).
		Preload("Comments.Author").
		First(&post, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &post, nil
}

// Create stores a new post by authorID.
func (s *PostService) Create(ctx context.Context, authorID uint, form PostForm) (*models.Post, error) {
	form = cleanPostForm(form)
	if err := s.checkPostForm(ctx, form); err != nil {
		return nil, err
	}
	post := models.Post{
		AuthorID: authorID,
		Text:     form.Text,
		GroupID:  form.GroupID,
		Image:    form.Image,
	}
	if err := s.db.WithContext(ctx).Create(&post).Error; err != nil {
		return nil, insertError("create post", err)
	}
	return s.Get(ctx, post.ID)
}

// Update replaces text, group and image of post id. Only the author may edit.
func (s *PostService) Update(ctx context.Context, id, editorID uint, form PostForm) (*models.Post, error) {
	var post models.Post
	if err := s.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, notFound(err)
	}
	if post.AuthorID != editorID {
		return nil, ErrPermissionDenied
	}

	form = cleanPostForm(form)
	if err := s.checkPostForm(ctx, form); err != nil {
		return nil, err
	}

	// Select forces writing a nil group_id when the post leaves its group
	err := s.db.WithContext(ctx).Model(&post).
		Select("Text", "GroupID", "Image").
		Updates(models.Post{Text: form.Text, GroupID: form.GroupID, Image: form.Image}).Error
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return s.Get(ctx, post.ID)
}

// AddComment appends a comment by authorID to post postID.
func (s *PostService) AddComment(ctx context.Context, postID, authorID uint, form CommentForm) (*models.Comment, error) {
	form.Text = strings.TrimSpace(form.Text)
	if err := validateForm(form, commentFormFields); err != nil {
		return nil, err
	}

	var post models.Post
	if err := s.db.WithContext(ctx).Select("id").First(&post, postID).Error; err != nil {
		return nil, notFound(err)
	}

	comment := models.Comment{PostID: post.ID, AuthorID: authorID, Text: form.Text}
	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, insertError("create comment", err)
	}
	if err := s.db.WithContext(ctx).Preload("Author").First(&comment, comment.ID).Error; err != nil {
		return nil, fmt.Errorf("load comment: %w", err)
	}
	return &comment, nil
}

// insertError reports a vanished author or post as ErrNotFound.
func insertError(op string, err error) error {
	if classifyConstraint(err) == constraintForeignKey {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

// cleanPostForm trims input; text is stored as entered and escaped only on output.
func cleanPostForm(form PostForm) PostForm {
	form.Text = strings.TrimSpace(form.Text)
	if form.GroupID != nil && *form.GroupID == 0 {
		form.GroupID = nil
	}
	return form
}

func (s *PostService) checkPostForm(ctx context.Context, form PostForm) error {
	if err := validateForm(form, postFormFields); err != nil {
		return err
	}
	if form.GroupID == nil {
		return nil
	}
	var group models.Group
	err := s.db.WithContext(ctx).Select("id").First(&group, *form.GroupID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fieldError("group", "Select a valid choice. That choice is not one of the available choices.")
	}
	return err
}
