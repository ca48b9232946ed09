package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/hk_loans_app/internal/core/ports/services"
	"github.com/SscSPs/hk_loans_app/internal/dto"
	"github.com/SscSPs/hk_loans_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// authHandler handles login and self-registration.
type authHandler struct {
	authService portssvc.AuthSvcFacade
}

func newAuthHandler(as portssvc.AuthSvcFacade) *authHandler {
	return &authHandler{authService: as}
}

// registerAuthRoutes sets up the public authentication routes. login is applied to /login only.
func registerAuthRoutes(rg *gin.RouterGroup, authService portssvc.AuthSvcFacade, login gin.HandlerFunc) {
	h := newAuthHandler(authService)

	rg.POST("/login", login, h.login)
	rg.POST("/register", h.register)
}

// login godoc
// @Summary User login
// @Description Authenticates a user and returns a JWT token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Account disabled"
// @Failure 429 {object} ErrorResponse
// @Router /login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req, "Login") {
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, err, "Failed to log in")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// register godoc
// @Summary Register new user
// @Description Creates a tenant account.
// @Tags auth
// @Accept json
// @Produce json
// @Param user body dto.RegisterRequest true "User details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Username taken"
// @Router /register [post]
func (h *authHandler) register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req, "Register") {
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, err, "Failed to register user")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("User registered", slog.String("user_id", user.UserID))
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}
