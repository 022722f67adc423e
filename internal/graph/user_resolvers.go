package graph

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"grove/internal/auth"
	"grove/internal/models"
	"grove/internal/services"
	"grove/internal/store"
	"grove/internal/utils"

	"github.com/graphql-go/graphql"
)

func (r *Resolver) resolveMe(p graphql.ResolveParams) (interface{}, error) {
	userID, ok := auth.UserID(p.Context)
	if !ok {
		return nil, nil
	}
	user, err := r.Users.ByID(p.Context, userID)
	if errors.Is(err, store.ErrNotFound) {
		// Stale session pointing at a user that no longer exists.
		return nil, nil
	}
	return user, err
}

func (r *Resolver) resolveRegister(p graphql.ResolveParams) (interface{}, error) {
	username := p.Args["username"].(string)
	email := p.Args["email"].(string)
	password := p.Args["password"].(string)

	var fieldErrs []FieldError
	if len(username) <= 2 {
		fieldErrs = append(fieldErrs, FieldError{Field: "username", Message: "length must be greater than 2"})
	}
	if strings.Contains(username, "@") {
		fieldErrs = append(fieldErrs, FieldError{Field: "username", Message: "cannot include an @"})
	}
	if !strings.Contains(email, "@") {
		fieldErrs = append(fieldErrs, FieldError{Field: "email", Message: "invalid email"})
	}
	if len(password) <= 2 {
		fieldErrs = append(fieldErrs, FieldError{Field: "password", Message: "length must be greater than 2"})
	}
	if len(fieldErrs) > 0 {
		return &UserResponse{Errors: fieldErrs}, nil
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{Username: username, Email: email, Password: hash}
	switch err := r.Users.Create(p.Context, &user); {
	case errors.Is(err, store.ErrDuplicateUsername):
		return &UserResponse{Errors: []FieldError{{Field: "username", Message: "username already taken"}}}, nil
	case errors.Is(err, store.ErrDuplicateEmail):
		return &UserResponse{Errors: []FieldError{{Field: "email", Message: "email already registered"}}}, nil
	case err != nil:
		return nil, err
	}

	if err := auth.Login(p.Context, user.ID); err != nil {
		return nil, err
	}
	return &UserResponse{User: &user}, nil
}

func (r *Resolver) resolveLogin(p graphql.ResolveParams) (interface{}, error) {
	usernameOrEmail := p.Args["usernameOrEmail"].(string)
	password := p.Args["password"].(string)

	var (
		user *models.User
		err  error
	)
	if strings.Contains(usernameOrEmail, "@") {
		user, err = r.Users.ByEmail(p.Context, usernameOrEmail)
	} else {
		user, err = r.Users.ByUsername(p.Context, usernameOrEmail)
	}
	if errors.Is(err, store.ErrNotFound) {
		return &UserResponse{Errors: []FieldError{{Field: "usernameOrEmail", Message: "that user doesn't exist"}}}, nil
	}
	if err != nil {
		return nil, err
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return &UserResponse{Errors: []FieldError{{Field: "password", Message: "incorrect password"}}}, nil
	}

	if err := auth.Login(p.Context, user.ID); err != nil {
		return nil, err
	}
	return &UserResponse{User: user}, nil
}

func (r *Resolver) resolveLogout(p graphql.ResolveParams) (interface{}, error) {
	if err := auth.Logout(p.Context); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Resolver) resolveForgotPassword(p graphql.ResolveParams) (interface{}, error) {
	email := p.Args["email"].(string)

	user, err := r.Users.ByEmail(p.Context, email)
	if errors.Is(err, store.ErrNotFound) {
		// Don't reveal whether the address is registered.
		return true, nil
	}
	if err != nil {
		return nil, err
	}

	token, err := r.Tokens.Create(p.Context, user.ID)
	if err != nil {
		log.Printf("Failed to create reset token for user %d: %v", user.ID, err)
		return nil, err
	}

	link := fmt.Sprintf("%s/change-password/%s", r.FrontendURL, token)
	r.Mail.SendPasswordResetEmail(user.Email, link)
	return true, nil
}

func (r *Resolver) resolveChangePassword(p graphql.ResolveParams) (interface{}, error) {
	token := p.Args["token"].(string)
	newPassword := p.Args["newPassword"].(string)

	if len(newPassword) <= 2 {
		return &UserResponse{Errors: []FieldError{{Field: "newPassword", Message: "length must be greater than 2"}}}, nil
	}

	userID, err := r.Tokens.Verify(p.Context, token)
	if errors.Is(err, services.ErrInvalidToken) {
		return &UserResponse{Errors: []FieldError{{Field: "token", Message: "token expired"}}}, nil
	}
	if err != nil {
		return nil, err
	}

	user, err := r.Users.ByID(p.Context, userID)
	if errors.Is(err, store.ErrNotFound) {
		return &UserResponse{Errors: []FieldError{{Field: "token", Message: "user no longer exists"}}}, nil
	}
	if err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return nil, err
	}
	if err := r.Users.UpdatePassword(p.Context, user.ID, hash); err != nil {
		return nil, err
	}

	// Single use: the token dies with the successful change.
	if err := r.Tokens.Invalidate(p.Context, token); err != nil {
		log.Printf("Failed to invalidate reset token: %v", err)
	}

	if err := auth.Login(p.Context, user.ID); err != nil {
		return nil, err
	}
	user.Password = hash
	return &UserResponse{User: user}, nil
}
