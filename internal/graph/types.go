package graph

import (
	"grove/internal/auth"
	"grove/internal/loaders"
	"grove/internal/models"
	"grove/internal/store"
	"grove/internal/utils"

	"github.com/graphql-go/graphql"
)

// FieldError points a validation failure at the form field that caused
// it, so clients can render inline feedback instead of parsing error
// strings.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// UserResponse is the result shape of every auth mutation: either a
// user or a list of field errors, never both.
type UserResponse struct {
	Errors []FieldError `json:"errors"`
	User   *models.User `json:"user"`
}

// PaginatedPosts is one page plus the flag and cursor for the next one.
type PaginatedPosts struct {
	Posts      []*models.Post `json:"posts"`
	HasMore    bool           `json:"hasMore"`
	NextCursor *string        `json:"nextCursor"`
}

const snippetLength = 50

var userType = graphql.NewObject(graphql.ObjectConfig{
	Name: "User",
	Fields: graphql.Fields{
		"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"username":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"email":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
	},
})

var fieldErrorType = graphql.NewObject(graphql.ObjectConfig{
	Name: "FieldError",
	Fields: graphql.Fields{
		"field":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"message": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

var postType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Post",
	Fields: graphql.Fields{
		"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"title":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"text":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"points":    &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"creatorId": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		"updatedAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		"textSnippet": &graphql.Field{
			Type: graphql.NewNonNull(graphql.String),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				post := p.Source.(*models.Post)
				runes := []rune(post.Text)
				if len(runes) <= snippetLength {
					return post.Text, nil
				}
				return string(runes[:snippetLength]), nil
			},
		},
		"textHtml": &graphql.Field{
			Type: graphql.NewNonNull(graphql.String),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				post := p.Source.(*models.Post)
				return utils.RenderMarkdown(post.Text), nil
			},
		},
		// creator and voteStatus hand the executor a thunk so that all
		// loads issued while resolving a page collapse into one batched
		// query per loader.
		"creator": &graphql.Field{
			Type: graphql.NewNonNull(userType),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				post := p.Source.(*models.Post)
				l := loaders.For(p.Context)
				if l == nil {
					return nil, ErrNoLoaders
				}
				thunk := l.Users.Load(p.Context, post.CreatorID)
				return func() (interface{}, error) { return thunk() }, nil
			},
		},
		"voteStatus": &graphql.Field{
			Type: graphql.Int,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				post := p.Source.(*models.Post)
				userID, ok := auth.UserID(p.Context)
				if !ok {
					return nil, nil
				}
				l := loaders.For(p.Context)
				if l == nil {
					return nil, ErrNoLoaders
				}
				thunk := l.Votes.Load(p.Context, store.VoteKey{PostID: post.ID, UserID: userID})
				return func() (interface{}, error) {
					vote, err := thunk()
					if err != nil {
						return nil, err
					}
					if vote == nil {
						return nil, nil
					}
					return vote.Value, nil
				}, nil
			},
		},
	},
})

var userResponseType = graphql.NewObject(graphql.ObjectConfig{
	Name: "UserResponse",
	Fields: graphql.Fields{
		"errors": &graphql.Field{Type: graphql.NewList(graphql.NewNonNull(fieldErrorType))},
		"user":   &graphql.Field{Type: userType},
	},
})

var paginatedPostsType = graphql.NewObject(graphql.ObjectConfig{
	Name: "PaginatedPosts",
	Fields: graphql.Fields{
		"posts":      &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(postType)))},
		"hasMore":    &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		"nextCursor": &graphql.Field{Type: graphql.String},
	},
})
