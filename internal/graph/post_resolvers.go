package graph

import (
	"errors"

	"grove/internal/auth"
	"grove/internal/models"
	"grove/internal/store"

	"github.com/graphql-go/graphql"
)

func (r *Resolver) resolvePost(p graphql.ResolveParams) (interface{}, error) {
	id := uint(p.Args["id"].(int))

	post, err := r.Posts.Get(p.Context, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (r *Resolver) resolvePosts(p graphql.ResolveParams) (interface{}, error) {
	limit := p.Args["limit"].(int)

	var cursor *store.Cursor
	if raw, ok := p.Args["cursor"].(string); ok && raw != "" {
		c, err := store.DecodeCursor(raw)
		if err != nil {
			return nil, err
		}
		cursor = &c
	}

	posts, hasMore, err := r.Posts.List(p.Context, limit, cursor)
	if err != nil {
		return nil, err
	}

	page := &PaginatedPosts{
		Posts:   make([]*models.Post, len(posts)),
		HasMore: hasMore,
	}
	for i := range posts {
		page.Posts[i] = &posts[i]
	}
	if hasMore && len(posts) > 0 {
		last := posts[len(posts)-1]
		next := store.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}.Encode()
		page.NextCursor = &next
	}
	return page, nil
}

func (r *Resolver) resolveCreatePost(p graphql.ResolveParams) (interface{}, error) {
	userID, ok := auth.UserID(p.Context)
	if !ok {
		return nil, ErrNotAuthenticated
	}

	post := models.Post{
		Title:     p.Args["title"].(string),
		Text:      p.Args["text"].(string),
		CreatorID: userID,
	}
	if err := r.Posts.Create(p.Context, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *Resolver) resolveUpdatePost(p graphql.ResolveParams) (interface{}, error) {
	userID, ok := auth.UserID(p.Context)
	if !ok {
		return nil, ErrNotAuthenticated
	}

	id := uint(p.Args["id"].(int))
	title := p.Args["title"].(string)
	text := p.Args["text"].(string)

	post, err := r.Posts.Update(p.Context, id, userID, title, text)
	if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrForbidden) {
		// Missing and not-yours are indistinguishable on the wire.
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (r *Resolver) resolveDeletePost(p graphql.ResolveParams) (interface{}, error) {
	userID, ok := auth.UserID(p.Context)
	if !ok {
		return nil, ErrNotAuthenticated
	}

	id := uint(p.Args["id"].(int))
	switch err := r.Posts.Delete(p.Context, id, userID); {
	case errors.Is(err, store.ErrNotFound):
		return false, nil
	case errors.Is(err, store.ErrForbidden):
		return false, errors.New("not authorized")
	case err != nil:
		return nil, err
	}
	return true, nil
}

func (r *Resolver) resolveVote(p graphql.ResolveParams) (interface{}, error) {
	// Session check runs before the post lookup; an anonymous vote on a
	// missing post reports not-authenticated.
	userID, ok := auth.UserID(p.Context)
	if !ok {
		return nil, ErrNotAuthenticated
	}

	postID := uint(p.Args["postId"].(int))
	value := p.Args["value"].(int)

	switch err := r.Votes.Apply(p.Context, postID, userID, value); {
	case errors.Is(err, store.ErrNotFound):
		return false, nil
	case err != nil:
		return nil, err
	}
	return true, nil
}
