package graph

import (
	"errors"
	"strconv"

	"github.com/graphql-go/graphql"
	"github.com/yukikurage/deep-thoughts-api/internal/auth"
	apierrors "github.com/yukikurage/deep-thoughts-api/internal/errors"
	"github.com/yukikurage/deep-thoughts-api/internal/services"
)

var (
	// ErrNotLoggedIn rejects the me query when the request is anonymous.
	ErrNotLoggedIn = apierrors.New(apierrors.CodeUnauthenticated, "Not logged in")
	// ErrLoginRequired rejects identity-requiring mutations when the
	// request is anonymous.
	ErrLoginRequired = apierrors.New(apierrors.CodeUnauthenticated, "You need to be logged in!")
)

// Resolver implements every schema operation. Authorization is decided
// here, per operation, from the identity the middleware attached to the
// request context; rejected operations never reach the data layer.
type Resolver struct {
	auth     *services.AuthService
	users    *services.UserService
	thoughts *services.ThoughtService
}

// NewResolver creates a new Resolver.
func NewResolver(authService *services.AuthService, userService *services.UserService, thoughtService *services.ThoughtService) *Resolver {
	return &Resolver{
		auth:     authService,
		users:    userService,
		thoughts: thoughtService,
	}
}

func (r *Resolver) resolveMe(p graphql.ResolveParams) (interface{}, error) {
	identity, ok := auth.IdentityFromContext(p.Context)
	if !ok {
		return nil, ErrNotLoggedIn
	}

	user, err := r.auth.Me(identity.UserID)
	if err != nil {
		return nil, translateError(err)
	}
	return user, nil
}

func (r *Resolver) resolveUsers(p graphql.ResolveParams) (interface{}, error) {
	users, err := r.users.Users()
	if err != nil {
		return nil, translateError(err)
	}
	return users, nil
}

func (r *Resolver) resolveUser(p graphql.ResolveParams) (interface{}, error) {
	username, _ := p.Args["username"].(string)

	user, err := r.users.User(username)
	if err != nil {
		return nil, translateError(err)
	}
	if user == nil {
		return nil, nil
	}
	return user, nil
}

func (r *Resolver) resolveThoughts(p graphql.ResolveParams) (interface{}, error) {
	username, _ := p.Args["username"].(string)

	thoughts, err := r.thoughts.Thoughts(username)
	if err != nil {
		return nil, translateError(err)
	}
	return thoughts, nil
}

func (r *Resolver) resolveThought(p graphql.ResolveParams) (interface{}, error) {
	id, err := parseID(p.Args["_id"])
	if err != nil {
		return nil, err
	}

	thought, err := r.thoughts.Thought(id)
	if err != nil {
		return nil, translateError(err)
	}
	if thought == nil {
		return nil, nil
	}
	return thought, nil
}

func (r *Resolver) resolveLogin(p graphql.ResolveParams) (interface{}, error) {
	email, _ := p.Args["email"].(string)
	password, _ := p.Args["password"].(string)

	user, token, err := r.auth.Login(email, password)
	if err != nil {
		return nil, translateError(err)
	}
	return &AuthPayload{Token: token, User: user}, nil
}

func (r *Resolver) resolveAddUser(p graphql.ResolveParams) (interface{}, error) {
	username, _ := p.Args["username"].(string)
	email, _ := p.Args["email"].(string)
	password, _ := p.Args["password"].(string)

	user, token, err := r.auth.Signup(services.SignupInput{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, translateError(err)
	}
	return &AuthPayload{Token: token, User: user}, nil
}

func (r *Resolver) resolveAddThought(p graphql.ResolveParams) (interface{}, error) {
	identity, ok := auth.IdentityFromContext(p.Context)
	if !ok {
		return nil, ErrLoginRequired
	}

	thoughtText, _ := p.Args["thoughtText"].(string)

	thought, err := r.thoughts.AddThought(identity.UserID, identity.Username, thoughtText)
	if err != nil {
		return nil, translateError(err)
	}
	return thought, nil
}

func (r *Resolver) resolveAddReaction(p graphql.ResolveParams) (interface{}, error) {
	identity, ok := auth.IdentityFromContext(p.Context)
	if !ok {
		return nil, ErrLoginRequired
	}

	thoughtID, err := parseID(p.Args["thoughtId"])
	if err != nil {
		return nil, err
	}

	reactionBody, _ := p.Args["reactionBody"].(string)

	thought, err := r.thoughts.AddReaction(thoughtID, identity.Username, reactionBody)
	if err != nil {
		return nil, translateError(err)
	}
	return thought, nil
}

func (r *Resolver) resolveAddFriend(p graphql.ResolveParams) (interface{}, error) {
	identity, ok := auth.IdentityFromContext(p.Context)
	if !ok {
		return nil, ErrLoginRequired
	}

	friendID, err := parseID(p.Args["friendId"])
	if err != nil {
		return nil, err
	}

	user, err := r.users.AddFriend(identity.UserID, friendID)
	if err != nil {
		return nil, translateError(err)
	}
	return user, nil
}

// translateError maps service sentinels to coded API errors; anything
// unrecognized propagates unchanged as an opaque operation error.
func translateError(err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		return apierrors.New(apierrors.CodeInvalidCredentials, err.Error())
	case errors.Is(err, services.ErrUsernameOrEmailTaken):
		return apierrors.New(apierrors.CodeInvalidInput, err.Error())
	case errors.Is(err, services.ErrThoughtNotFound),
		errors.Is(err, services.ErrUserNotFound):
		return apierrors.New(apierrors.CodeNotFound, err.Error())
	default:
		return err
	}
}

// parseID decodes a GraphQL ID argument into a numeric id.
func parseID(value interface{}) (uint64, error) {
	switch id := value.(type) {
	case string:
		n, err := strconv.ParseUint(id, 10, 64)
		if err != nil {
			return 0, apierrors.New(apierrors.CodeInvalidInput, "invalid id")
		}
		return n, nil
	case int:
		if id < 0 {
			return 0, apierrors.New(apierrors.CodeInvalidInput, "invalid id")
		}
		return uint64(id), nil
	case float64:
		if id < 0 {
			return 0, apierrors.New(apierrors.CodeInvalidInput, "invalid id")
		}
		return uint64(id), nil
	}
	return 0, apierrors.New(apierrors.CodeInvalidInput, "invalid id")
}
