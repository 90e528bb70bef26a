package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/cppla/yatube/models"
)

// GroupService creates and reads groups.
type GroupService struct {
	db *gorm.DB
}

// NewGroupService creates a GroupService.
func NewGroupService(db *gorm.DB) *GroupService {
	return &GroupService{db: db}
}

// List returns every group ordered by title.
func (s *GroupService) List(ctx context.Context) ([]models.Group, error) {
	groups := []models.Group{}
	err := s.db.WithContext(ctx).Order("title ASC, id ASC").Find(&groups).Error
	return groups, err
}

// BySlug loads one group.
func (s *GroupService) BySlug(ctx context.Context, slug string) (*models.Group, error) {
	var group models.Group
	if err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&group).Error; err != nil {
		return nil, notFound(err)
	}
	return &group, nil
}

// Create stores a new group. A taken slug is reported as a field error.
func (s *GroupService) Create(ctx context.Context, form GroupForm) (*models.Group, error) {
	form.Title = strings.TrimSpace(form.Title)
	form.Slug = strings.TrimSpace(form.Slug)
	form.Description = strings.TrimSpace(form.Description)
	if err := validateForm(form, groupFormFields); err != nil {
		return nil, err
	}

	group := models.Group{Title: form.Title, Slug: form.Slug, Description: form.Description}
	err := s.db.WithContext(ctx).Create(&group).Error
	if classifyConstraint(err) == constraintUnique {
		return nil, fieldError("slug", "Group with this slug already exists.")
	}
	if err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}
	return &group, nil
}
