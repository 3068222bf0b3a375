package handlers

import (
	"context"
	"net/http"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/anonto42/movieshare/backend/internal/apperrors"
	"github.com/anonto42/movieshare/backend/internal/auth"
	"github.com/anonto42/movieshare/backend/internal/models"
	"github.com/anonto42/movieshare/backend/internal/services"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// FirebaseVerifier checks Firebase ID tokens. *auth.Client from the Firebase SDK satisfies it.
type FirebaseVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	logger   *zap.Logger
	identity *services.IdentityService
	tokens   *auth.TokenManager
	firebase FirebaseVerifier
}

// NewAuthHandler creates a new AuthHandler. firebase may be nil, which disables /login/firebase.
func NewAuthHandler(logger *zap.Logger, identity *services.IdentityService, tokens *auth.TokenManager, firebase FirebaseVerifier) *AuthHandler {
	return &AuthHandler{
		logger:   logger,
		identity: identity,
		tokens:   tokens,
		firebase: firebase,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.POST("/login/firebase", h.FirebaseLogin)
	g.GET("/me", h.Me, requireAuth)
	g.GET("/dashboard", h.Dashboard, requireAuth)
}

// Register handles local user registration with email and password
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return apperrors.Internal(err)
	}

	if _, err := h.identity.Create(c.Request().Context(), req.Username, req.Email, hashedPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{"msg": "User registered successfully!"})
}

// Login exchanges email and password for an access token
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.identity.FindByEmail(c.Request().Context(), req.Email)
	if err != nil {
		if apperrors.Is(err, apperrors.KindNotFound) {
			return apperrors.Validation("Invalid email")
		}
		return err
	}
	if !auth.VerifyPassword(req.Password, user.Password) {
		return apperrors.Validation("Incorrect password")
	}

	return h.issueToken(c, user)
}

// FirebaseLoginRequest defines the request body for Firebase login
type FirebaseLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// FirebaseLogin verifies a Firebase ID token and issues a local token,
// registering the account on first sight.
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	if h.firebase == nil {
		return apperrors.NotFound("Firebase login is not enabled")
	}

	var req FirebaseLoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	token, err := h.firebase.VerifyIDToken(ctx, req.IDToken)
	if err != nil {
		return apperrors.Wrap(apperrors.KindUnauthenticated, "Invalid Firebase ID token", err)
	}

	email, _ := token.Claims["email"].(string)
	if email == "" {
		return apperrors.Validation("Firebase account has no email address")
	}
	// accounts are matched by email, so an unproven address must not sign in
	if verified, _ := token.Claims["email_verified"].(bool); !verified {
		return apperrors.Unauthenticated("Firebase email address is not verified")
	}

	user, err := h.identity.FindByEmail(ctx, email)
	if apperrors.Is(err, apperrors.KindNotFound) {
		user, err = h.registerFirebaseUser(ctx, token.UID, email)
	}
	if err != nil {
		return err
	}
	return h.issueToken(c, user)
}

// registerFirebaseUser creates a local account that can only sign in through Firebase.
func (h *AuthHandler) registerFirebaseUser(ctx context.Context, uid, email string) (*models.User, error) {
	// unguessable password so the local login path stays closed
	hashedPassword, err := auth.HashPassword(uuid.NewString())
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	user, err := h.identity.Create(ctx, "fb_"+uid, email, hashedPassword)
	if err != nil {
		return nil, err
	}
	h.logger.Info("registered firebase user", zap.Uint("user_id", user.ID))
	return user, nil
}

func (h *AuthHandler) issueToken(c echo.Context, user *models.User) error {
	accessToken, err := h.tokens.Issue(user.Email, h.tokens.TTL())
	if err != nil {
		return apperrors.Internal(err)
	}
	return c.JSON(http.StatusOK, models.TokenResponse{
		AccessToken: accessToken,
		TokenType:   auth.TokenType,
	})
}

// Me returns the authenticated user's identity
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := getUserFromContext(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user.ToMe())
}

func (h *AuthHandler) Dashboard(c echo.Context) error {
	user, err := getUserFromContext(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Welcome to your dashboard, " + user.Username + "!",
		"email":   user.Email,
		"joined":  user.CreatedAt,
	})
}
