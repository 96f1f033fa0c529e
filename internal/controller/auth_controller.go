package controller

import (
	"remedial_edu_backend/internal/model"
	"remedial_edu_backend/internal/service"
	"remedial_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

type registerRequest struct {
	Name     string         `json:"name" binding:"required"`
	Email    string         `json:"email" binding:"required,email"`
	Password string         `json:"password" binding:"required,min=8"`
	Role     model.UserRole `json:"role"`
	School   string         `json:"school"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register godoc
// @Summary Register a teacher account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body registerRequest true "account details"
// @Success 201 {object} model.User
// @Router /api/register [post]
func (ctl *AuthController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		School:   req.School,
	}
	if err := ctl.AuthService.Register(user); err != nil {
		respondServiceError(c, err)
		return
	}
	util.Created(c, user)
}

// Login godoc
// @Summary Log in and receive a JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param body body loginRequest true "credentials"
// @Success 200 {object} map[string]interface{}
// @Router /api/login [post]
func (ctl *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	token, user, err := ctl.AuthService.Login(req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	util.OK(c, gin.H{"token": token, "user": user})
}

// Profile returns the authenticated user's own record.
func (ctl *AuthController) Profile(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	user, err := ctl.AuthService.Profile(claims.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	util.Success(c, user)
}
