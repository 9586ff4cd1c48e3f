package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/projectmate/backend/internal/models"
	"github.com/projectmate/backend/internal/utils"
)

const (
	ContextUserID = "user_id"
	ContextEmail  = "email"
	ContextRole   = "role"
	ContextUser   = "current_user"
)

// AuthRequired is a middleware that checks for a valid JWT token
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"code": 401, "message": "authorization header required"})
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"code": 401, "message": "invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"code": 401, "message": "invalid or expired token"})
			c.Abort()
			return
		}
		if claims.TokenType != utils.TokenTypeAccess {
			c.JSON(http.StatusUnauthorized, gin.H{"code": 401, "message": "access token required"})
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, claims.Role)

		c.Next()
	}
}

// ActiveUserRequired loads the authenticated user and rejects inactive
// or penalized accounts. Penalized accounts get 423 with the penalty
// expiry so clients can show when the suspension lifts.
func ActiveUserRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := GetUserID(c)
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"code": 401, "message": "authentication required"})
			c.Abort()
			return
		}

		var user models.User
		if err := models.GetDB().First(&user, "id = ?", userID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"code": 401, "message": "user not found"})
			c.Abort()
			return
		}

		if !user.IsActive {
			c.JSON(http.StatusForbidden, gin.H{"code": 403, "message": "account is deactivated"})
			c.Abort()
			return
		}

		if user.IsUnderPenalty() {
			c.JSON(http.StatusLocked, gin.H{
				"code":          423,
				"message":       "account is suspended due to repeated no-shows",
				"penalty_until": user.PenaltyUntil.Format(time.RFC3339),
			})
			c.Abort()
			return
		}

		c.Set(ContextUser, &user)
		c.Next()
	}
}

// LeaderRequired restricts the route to users who may own projects.
// Prefers the DB-loaded user over the token claim so a role change
// takes effect without waiting out the token lifetime.
func LeaderRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetRole(c)
		if user := GetUser(c); user != nil {
			role = string(user.Role)
		}
		if role != string(models.RoleLeader) && role != string(models.RoleBoth) {
			c.JSON(http.StatusForbidden, gin.H{"code": 403, "message": "leader role required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserID gets the current user ID from context
func GetUserID(c *gin.Context) string {
	if id, exists := c.Get(ContextUserID); exists {
		return id.(string)
	}
	return ""
}

// GetRole gets the current user role from context
func GetRole(c *gin.Context) string {
	if role, exists := c.Get(ContextRole); exists {
		return role.(string)
	}
	return ""
}

// GetUser returns the user loaded by ActiveUserRequired, or nil.
func GetUser(c *gin.Context) *models.User {
	if u, exists := c.Get(ContextUser); exists {
		return u.(*models.User)
	}
	return nil
}
