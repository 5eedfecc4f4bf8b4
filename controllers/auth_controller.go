package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"storefront/models"
	"storefront/repositories"
	"storefront/utils"
)

type AuthController struct {
	users  *repositories.UserRepository
	issuer *utils.TokenIssuer
}

func NewAuthController(users *repositories.UserRepository, issuer *utils.TokenIssuer) *AuthController {
	return &AuthController{users: users, issuer: issuer}
}

type demoUserView struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type demoUsersView struct {
	DemoUsers []demoUserView `json:"demo_users"`
	Note      string         `json:"note"`
}

// @Summary Login
// @Description Exchange email and password for a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{Detail: err.Error()})
		return
	}

	user, err := ctrl.users.Authenticate(req.Email, req.Password)
	if err != nil {
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Detail: repositories.ErrInvalidCredentials.Error()})
		return
	}

	token, err := ctrl.issuer.GenerateToken(user.ID, user.Email, user.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Detail: "Could not issue token"})
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		UserID:      user.ID,
		Email:       user.Email,
		Name:        user.Name,
	})
}

// @Summary Demo users
// @Description List the onboarding accounts without their passwords
// @Tags Auth
// @Produce json
// @Success 200 {object} models.DemoUsersResponse
// @Router /auth/users [get]
func (ctrl *AuthController) DemoUsers(c *gin.Context) {
	identities := ctrl.users.DemoIdentities()
	users := make([]demoUserView, 0, len(identities))
	for _, id := range identities {
		users = append(users, demoUserView{Email: id.Email, Password: "***", Name: id.Name})
	}
	c.JSON(http.StatusOK, demoUsersView{
		DemoUsers: users,
		Note:      "Use these credentials to log in. Passwords are hidden for security.",
	})
}

// @Summary Verify token
// @Description Check whether a bearer token is still accepted
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.VerifyRequest true "Token"
// @Success 200 {object} models.TokenVerification
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/verify [post]
func (ctrl *AuthController) Verify(c *gin.Context) {
	var req models.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{Detail: err.Error()})
		return
	}

	claims, err := ctrl.issuer.ValidateToken(req.Token)
	if errors.Is(err, jwt.ErrTokenExpired) {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Detail: "Token has expired"})
		return
	}
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Detail: "Invalid token"})
		return
	}

	c.JSON(http.StatusOK, models.TokenVerification{Valid: true, UserID: claims.UserID, Email: claims.Email})
}
