package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Yamir213/sistema-licencias-ica/internal/middleware"
	"github.com/Yamir213/sistema-licencias-ica/internal/repos"
	"github.com/Yamir213/sistema-licencias-ica/internal/services"
	"github.com/Yamir213/sistema-licencias-ica/internal/types"
)

type AuthHandler struct {
	authService services.AuthService
	userRepo    repos.UserRepo
}

func NewAuthHandler(authService services.AuthService, userRepo repos.UserRepo) *AuthHandler {
	return &AuthHandler{authService: authService, userRepo: userRepo}
}

func (ah *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email           string `json:"email"`
		Password        string `json:"password"`
		Nombres         string `json:"nombres"`
		ApellidoPaterno string `json:"apellido_paterno"`
		ApellidoMaterno string `json:"apellido_materno"`
		DNI             string `json:"dni"`
		Telefono        string `json:"telefono"`
		Direccion       string `json:"direccion"`
		Distrito        string `json:"distrito"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	user := types.User{
		Email:           req.Email,
		Nombres:         req.Nombres,
		ApellidoPaterno: req.ApellidoPaterno,
		ApellidoMaterno: req.ApellidoMaterno,
		DNI:             req.DNI,
		Telefono:        req.Telefono,
		Direccion:       req.Direccion,
		Distrito:        req.Distrito,
		TipoUsuario:     types.RolCiudadano,
	}
	created, err := ah.authService.Register(c.Request.Context(), &user, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, created)
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	token, user, err := ah.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "credenciales inválidas"})
		return
	}

	expiresIn := int(ah.authService.AccessTTL().Seconds())
	c.SetCookie("access_token", token, expiresIn, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"expires_in":   expiresIn,
		"usuario":      user,
	})
}

func (ah *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie("access_token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (ah *AuthHandler) Me(c *gin.Context) {
	user, err := ah.userRepo.GetByID(c.Request.Context(), nil, middleware.UsuarioID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, user)
}
