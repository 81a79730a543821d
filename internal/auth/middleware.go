package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"rewards_admin/internal/models"
	"rewards_admin/internal/permissions"
)

// Claims is the JWT claims structure issued at login.
type Claims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

const (
	claimsKey = "claims"
	userKey   = "currentUser"
)

// JWT returns a Gin middleware that validates tokens from either the
// Authorization header or a "token" cookie, verifies the admin user still
// exists and is active, and stores the user on the request context. The
// user row is re-read on every request so a permission edit is visible to
// the very next check.
func JWT(db *gorm.DB, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := c.GetHeader("Authorization")

		if tokenStr == "" {
			if cookie, err := c.Cookie("token"); err == nil {
				tokenStr = "Bearer " + cookie
			}
		}

		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		tokenStr = strings.TrimPrefix(tokenStr, "Bearer ")
		tokenStr = strings.TrimSpace(tokenStr)

		token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(*Claims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			return
		}

		var user models.AdminUser
		if err := db.First(&user, "id = ?", claims.UserID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}
		if !user.IsActive {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "account deactivated"})
			return
		}

		c.Set(claimsKey, claims)
		SetCurrentUser(c, &user)
		c.Next()
	}
}

// SetCurrentUser stores the acting admin user on the request context.
func SetCurrentUser(c *gin.Context, u *models.AdminUser) {
	c.Set(userKey, u)
}

// CurrentUser returns the authenticated admin user, or nil outside the
// JWT middleware.
func CurrentUser(c *gin.Context) *models.AdminUser {
	if v, ok := c.Get(userKey); ok {
		if u, ok := v.(*models.AdminUser); ok {
			return u
		}
	}
	return nil
}

// CurrentIdentity classifies the request's user for authorization checks.
// A request with no user resolves to the unauthenticated identity, which
// denies everything.
func CurrentIdentity(c *gin.Context) permissions.Identity {
	return permissions.IdentityOf(CurrentUser(c))
}

// CurrentClaims returns the parsed JWT claims, or nil outside the JWT
// middleware.
func CurrentClaims(c *gin.Context) *Claims {
	if v, ok := c.Get(claimsKey); ok {
		if cl, ok := v.(*Claims); ok {
			return cl
		}
	}
	return nil
}
