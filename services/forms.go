package services

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	return v
}

// PostForm is the input for creating or editing a post.
type PostForm struct {
	Text    string `json:"text" form:"text" validate:"required"`
	GroupID *uint  `json:"group" form:"group"`
	Image   string `json:"image" form:"image" validate:"omitempty,max=512"`
}

// CommentForm is the input for adding a comment.
type CommentForm struct {
	Text string `json:"text" form:"text" validate:"required"`
}

// GroupForm is the input for creating a group.
type GroupForm struct {
	Title       string `json:"title" form:"title" validate:"required,max=200"`
	Slug        string `json:"slug" form:"slug" validate:"required,max=64,slug"`
	Description string `json:"description" form:"description" validate:"required"`
}

// RegisterForm is the input for creating an account.
type RegisterForm struct {
	Username string `json:"username" form:"username" validate:"required,min=3,max=64,alphanumunicode"`
	Email    string `json:"email" form:"email" validate:"omitempty,email,max=255"`
	Password string `json:"password" form:"password" validate:"required,min=6,max=72"`
}

var fieldMessages = map[string]string{
	"required":        "This field is required.",
	"max":             "Ensure this value is not too long.",
	"min":             "Ensure this value is long enough.",
	"email":           "Enter a valid email address.",
	"slug":            "Enter a valid slug consisting of letters, numbers, underscores or hyphens.",
	"alphanumunicode": "Only letters and digits are allowed.",
}

// validateForm runs struct tag validation and maps failures to json field names.
func validateForm(form interface{}, jsonNames map[string]string) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{Fields: map[string]string{}}
	for _, fe := range verrs {
		name := jsonNames[fe.Field()]
		if name == "" {
			name = fe.Field()
		}
		msg, ok := fieldMessages[fe.Tag()]
		if !ok {
			msg = "Enter a valid value."
		}
		out.Fields[name] = msg
	}
	return out
}

var (
	postFormFields     = map[string]string{"Text": "text", "GroupID": "group", "Image": "image"}
	commentFormFields  = map[string]string{"Text": "text"}
	groupFormFields    = map[string]string{"Title": "title", "Slug": "slug", "Description": "description"}
	registerFormFields = map[string]string{"Username": "username", "Email": "email", "Password": "password"}
)
