package main

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/snackschicken/delivery-api/internal/auth"
	"github.com/snackschicken/delivery-api/internal/config"
	"github.com/snackschicken/delivery-api/internal/httpx"
	"github.com/snackschicken/delivery-api/internal/user"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginHandler godoc
// @Summary Exchange admin credentials for a token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body loginRequest true "email and password"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func loginHandler(cfg config.Config, tokens *auth.JWT, users user.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid JSON body"})
			return
		}
		emailOK := subtle.ConstantTimeCompare([]byte(req.Email), []byte(cfg.AdminEmail)) == 1
		if !emailOK || !auth.CheckPassword(cfg.AdminPassHash, req.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		// A stable id per admin email keeps /auth/user working across logins.
		u := &user.User{
			ID:        uuid.NewSHA1(uuid.NameSpaceOID, []byte(cfg.AdminEmail)).String(),
			Email:     cfg.AdminEmail,
			FirstName: "Admin",
		}
		if err := users.Upsert(c.Request.Context(), u); err != nil {
			writeError(c, err)
			return
		}

		token, err := tokens.Issue(auth.Identity{Subject: u.ID, Email: u.Email, Name: u.FirstName})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token, "user": u})
	}
}

// logoutHandler godoc
// @Summary Log out (tokens are discarded client-side)
// @Tags auth
// @Success 204
// @Router /auth/logout [post]
func logoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	}
}

// currentUserHandler godoc
// @Summary The authenticated user
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} user.User
// @Failure 401 {object} map[string]string
// @Router /auth/user [get]
func currentUserHandler(users user.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := httpx.Identity(c)
		u, err := users.GetByID(c.Request.Context(), id.Subject)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, u)
	}
}
