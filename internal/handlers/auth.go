package handlers

import (
	"fmt"
	"net/http"

	"miniblog/internal/models"
	"miniblog/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthHandler struct {
	db *gorm.DB
}

func NewAuthHandler(database *gorm.DB) *AuthHandler {
	return &AuthHandler{db: database}
}

// validateRegister runs the registration checks in order and returns the
// first failing message. Order matters: username, then password, then the
// duplicate check. Later rules are never evaluated after a failure.
func (h *AuthHandler) validateRegister(username, password string) string {
	if username == "" {
		return "Username is required."
	}
	if password == "" {
		return "Password is required."
	}
	var count int64
	h.db.Model(&models.User{}).Where("username = ?", username).Count(&count)
	if count > 0 {
		return fmt.Sprintf("User %s is already registered.", username)
	}
	return ""
}

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	Render(c, http.StatusOK, "auth/register.html", nil)
}

func (h *AuthHandler) Register(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	if msg := h.validateRegister(username, password); msg != "" {
		Render(c, http.StatusOK, "auth/register.html", gin.H{"Error": msg, "Username": username})
		return
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Registration failed")
		return
	}

	user := models.User{
		Username: username,
		Password: hash,
	}
	if err := h.db.Create(&user).Error; err != nil {
		// Unique index race, same message as the ordered check
		Render(c, http.StatusOK, "auth/register.html", gin.H{
			"Error":    fmt.Sprintf("User %s is already registered.", username),
			"Username": username,
		})
		return
	}

	c.Redirect(http.StatusFound, "/auth/login")
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	Render(c, http.StatusOK, "auth/login.html", nil)
}

func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	var user models.User
	if err := h.db.Where("username = ?", username).First(&user).Error; err != nil {
		Render(c, http.StatusOK, "auth/login.html", gin.H{"Error": "Incorrect username.", "Username": username})
		return
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		Render(c, http.StatusOK, "auth/login.html", gin.H{"Error": "Incorrect password.", "Username": username})
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()

	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, "/")
}
