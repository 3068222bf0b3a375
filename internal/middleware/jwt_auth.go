package middleware

import (
	"context"
	"strings"

	"github.com/anonto42/movieshare/backend/internal/apperrors"
	"github.com/anonto42/movieshare/backend/internal/auth"
	"github.com/anonto42/movieshare/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// UserContextKey is where the authenticated *models.User is stored on the echo context.
const UserContextKey = "user"

const invalidToken = "Invalid or expired token"

// UserFinder resolves a token subject to a user.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// JWTAuthMiddleware checks for a valid bearer token and loads its user.
// Every failure is reported as the same 401.
func JWTAuthMiddleware(tokens *auth.TokenManager, users UserFinder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return apperrors.Unauthenticated(invalidToken)
			}

			claims, err := tokens.Validate(tokenString)
			if err != nil {
				return apperrors.Wrap(apperrors.KindUnauthenticated, invalidToken, err)
			}

			user, err := users.FindByEmail(c.Request().Context(), claims.Subject)
			if err != nil {
				if apperrors.Is(err, apperrors.KindNotFound) {
					return apperrors.Wrap(apperrors.KindUnauthenticated, invalidToken, err)
				}
				return err
			}

			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}

// bearerToken extracts the token from "Bearer <token>".
func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}
