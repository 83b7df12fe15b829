package utils

import (
	"context"
	"strings"

	"github.com/kataras/iris/v12"
	"golang.org/x/exp/slices"

	"github.com/Startup925/realestate/models"
)

const (
	userKey  = "user"
	tokenKey = "accessToken"
)

// UserResolver looks up the live user behind a verified token.
type UserResolver interface {
	UserByID(ctx context.Context, id string) (*models.User, error)
}

// Authenticate verifies the bearer token and loads its user. Tokens of
// deleted users are rejected even before they expire.
func Authenticate(tokens *TokenIssuer, users UserResolver) iris.Handler {
	return func(ctx iris.Context) {
		raw := BearerToken(ctx)
		if raw == "" {
			WriteError(ctx, Unauthenticated("Missing bearer token"))
			return
		}

		claims, err := tokens.Verify(raw)
		if err != nil {
			WriteError(ctx, err)
			return
		}

		user, err := users.UserByID(ctx.Request().Context(), claims.UserID)
		if err != nil {
			if KindOf(err) == KindNotFound {
				err = Unauthenticated("User not found")
			}
			WriteError(ctx, err)
			return
		}

		ctx.Values().Set(userKey, user)
		ctx.Values().Set("userID", user.ID)
		ctx.Values().Set(tokenKey, raw)
		ctx.Next()
	}
}

func BearerToken(ctx iris.Context) string {
	header := ctx.GetHeader("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

// CurrentUser returns the user set by Authenticate, nil on public routes.
func CurrentUser(ctx iris.Context) *models.User {
	user, _ := ctx.Values().Get(userKey).(*models.User)
	return user
}

// CurrentToken returns the raw access token of the request.
func CurrentToken(ctx iris.Context) string {
	return ctx.Values().GetString(tokenKey)
}

// RequireRoles rejects users whose role is not in roles.
func RequireRoles(roles ...models.Role) iris.Handler {
	return func(ctx iris.Context) {
		user := CurrentUser(ctx)
		if user == nil {
			WriteError(ctx, Unauthenticated("Authentication required"))
			return
		}
		if !slices.Contains(roles, user.Role) {
			WriteError(ctx, Forbidden("Access denied for role "+string(user.Role)))
			return
		}
		ctx.Next()
	}
}

// AdminOnlyMiddleware ensures the requester has the admin role
func AdminOnlyMiddleware(ctx iris.Context) {
	user := CurrentUser(ctx)
	if user == nil || user.Role != models.RoleAdmin {
		JSONError(ctx, iris.StatusForbidden, "forbidden", "admin access required")
		return
	}
	ctx.Next()
}
