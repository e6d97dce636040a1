package graph

import (
	"time"

	"github.com/graphql-go/graphql"
	"github.com/yukikurage/deep-thoughts-api/internal/models"
)

// AuthPayload is the result of signup and login: a signed token plus the
// user it belongs to. It is never persisted.
type AuthPayload struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// Sources arrive either as values (list elements) or pointers (single
// results), so every field resolver normalizes through one of these.

func userSource(p graphql.ResolveParams) *models.User {
	switch u := p.Source.(type) {
	case *models.User:
		return u
	case models.User:
		return &u
	}
	return nil
}

func thoughtSource(p graphql.ResolveParams) *models.Thought {
	switch t := p.Source.(type) {
	case *models.Thought:
		return t
	case models.Thought:
		return &t
	}
	return nil
}

func reactionSource(p graphql.ResolveParams) *models.Reaction {
	switch re := p.Source.(type) {
	case *models.Reaction:
		return re
	case models.Reaction:
		return &re
	}
	return nil
}

// NewSchema builds the executable schema: the User/Thought/Reaction/Auth
// types and the query and mutation roots wired to the resolver.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	reactionType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Reaction",
		Fields: graphql.Fields{
			"_id": &graphql.Field{
				Type: graphql.ID,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if re := reactionSource(p); re != nil {
						return re.ID, nil
					}
					return nil, nil
				},
			},
			"reactionBody": &graphql.Field{Type: graphql.String},
			"username":     &graphql.Field{Type: graphql.String},
			"createdAt": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if re := reactionSource(p); re != nil {
						return formatTime(re.CreatedAt), nil
					}
					return nil, nil
				},
			},
		},
	})

	thoughtType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Thought",
		Fields: graphql.Fields{
			"_id": &graphql.Field{
				Type: graphql.ID,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if t := thoughtSource(p); t != nil {
						return t.ID, nil
					}
					return nil, nil
				},
			},
			"thoughtText": &graphql.Field{Type: graphql.String},
			"username":    &graphql.Field{Type: graphql.String},
			"createdAt": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if t := thoughtSource(p); t != nil {
						return formatTime(t.CreatedAt), nil
					}
					return nil, nil
				},
			},
			"reactionCount": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if t := thoughtSource(p); t != nil {
						return t.ReactionCount(), nil
					}
					return 0, nil
				},
			},
			"reactions": &graphql.Field{Type: graphql.NewList(reactionType)},
		},
	})

	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"_id": &graphql.Field{
				Type: graphql.ID,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if u := userSource(p); u != nil {
						return u.ID, nil
					}
					return nil, nil
				},
			},
			"username": &graphql.Field{Type: graphql.String},
			"email":    &graphql.Field{Type: graphql.String},
			"friendCount": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if u := userSource(p); u != nil {
						return u.FriendCount(), nil
					}
					return 0, nil
				},
			},
			"thoughts": &graphql.Field{Type: graphql.NewList(thoughtType)},
		},
	})
	// Self-referencing field added after construction.
	userType.AddFieldConfig("friends", &graphql.Field{Type: graphql.NewList(userType)})

	authType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Auth",
		Fields: graphql.Fields{
			"token": &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"user":  &graphql.Field{Type: userType},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"me": &graphql.Field{
				Type:    userType,
				Resolve: r.resolveMe,
			},
			"users": &graphql.Field{
				Type:    graphql.NewList(userType),
				Resolve: r.resolveUsers,
			},
			"user": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"username": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resolveUser,
			},
			"thoughts": &graphql.Field{
				Type: graphql.NewList(thoughtType),
				Args: graphql.FieldConfigArgument{
					"username": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: r.resolveThoughts,
			},
			"thought": &graphql.Field{
				Type: thoughtType,
				Args: graphql.FieldConfigArgument{
					"_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.resolveThought,
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"login": &graphql.Field{
				Type: authType,
				Args: graphql.FieldConfigArgument{
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resolveLogin,
			},
			"addUser": &graphql.Field{
				Type: authType,
				Args: graphql.FieldConfigArgument{
					"username": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resolveAddUser,
			},
			"addThought": &graphql.Field{
				Type: thoughtType,
				Args: graphql.FieldConfigArgument{
					"thoughtText": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resolveAddThought,
			},
			"addReaction": &graphql.Field{
				Type: thoughtType,
				Args: graphql.FieldConfigArgument{
					"thoughtId":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"reactionBody": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resolveAddReaction,
			},
			"addFriend": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"friendId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.resolveAddFriend,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}
