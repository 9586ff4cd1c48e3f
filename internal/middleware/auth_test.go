package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/projectmate/backend/internal/models"
	"github.com/projectmate/backend/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.SetJWTSecret("test-secret-for-middleware-testing")
}

func setupTestDB(t *testing.T) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	models.SetDB(db)
	if err := models.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
}

func TestAuthRequired_NoHeader(t *testing.T) {
	router := gin.New()
	router.Use(AuthRequired())
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestAuthRequired_InvalidFormat(t *testing.T) {
	router := gin.New()
	router.Use(AuthRequired())
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	testCases := []string{
		"InvalidToken",
		"Basic token123",
		"Bearer",
	}

	for _, authHeader := range testCases {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", authHeader)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("header %q: expected status %d, got %d", authHeader, http.StatusUnauthorized, w.Code)
		}
	}
}

func TestAuthRequired_InvalidToken(t *testing.T) {
	router := gin.New()
	router.Use(AuthRequired())
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer invalid.jwt.token")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestAuthRequired_ValidToken(t *testing.T) {
	token, _ := utils.GenerateToken("user-1", "test@example.com", "LEADER", utils.TokenTypeAccess, 24)

	router := gin.New()
	router.Use(AuthRequired())
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"user_id": GetUserID(c),
			"role":    GetRole(c),
		})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
}

func TestAuthRequired_RejectsRefreshToken(t *testing.T) {
	token, _ := utils.GenerateToken("user-1", "test@example.com", "LEADER", utils.TokenTypeRefresh, 168)

	router := gin.New()
	router.Use(AuthRequired())
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("refresh token on an API route: expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestActiveUserRequired_PenalizedAccount(t *testing.T) {
	setupTestDB(t)

	until := time.Now().Add(24 * time.Hour)
	user := models.User{
		Email:        "penalized@example.com",
		PasswordHash: "x",
		Name:         "Penalized",
		Role:         models.RoleMember,
		IsActive:     true,
		NoShowCount:  3,
		PenaltyUntil: &until,
	}
	if err := models.GetDB().Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(ContextUserID, user.ID)
		c.Next()
	})
	router.Use(ActiveUserRequired())
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusLocked {
		t.Errorf("expected status %d, got %d", http.StatusLocked, w.Code)
	}
}

func TestActiveUserRequired_ExpiredPenalty(t *testing.T) {
	setupTestDB(t)

	until := time.Now().Add(-time.Hour)
	user := models.User{
		Email:        "recovered@example.com",
		PasswordHash: "x",
		Name:         "Recovered",
		Role:         models.RoleMember,
		IsActive:     true,
		NoShowCount:  3,
		PenaltyUntil: &until,
	}
	if err := models.GetDB().Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(ContextUserID, user.ID)
		c.Next()
	})
	router.Use(ActiveUserRequired())
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d once penalty expired, got %d", http.StatusOK, w.Code)
	}
}

func TestActiveUserRequired_InactiveAccount(t *testing.T) {
	setupTestDB(t)

	user := models.User{
		Email:        "inactive@example.com",
		PasswordHash: "x",
		Name:         "Inactive",
		Role:         models.RoleMember,
		IsActive:     false,
	}
	if err := models.GetDB().Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	// GORM default:true would override a zero-value false on insert.
	models.GetDB().Model(&user).Update("is_active", false)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(ContextUserID, user.ID)
		c.Next()
	})
	router.Use(ActiveUserRequired())
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, w.Code)
	}
}

func TestLeaderRequired(t *testing.T) {
	tests := []struct {
		role     string
		expected int
	}{
		{"LEADER", http.StatusOK},
		{"BOTH", http.StatusOK},
		{"MEMBER", http.StatusForbidden},
		{"", http.StatusForbidden},
	}

	for _, tt := range tests {
		router := gin.New()
		router.Use(func(c *gin.Context) {
			if tt.role != "" {
				c.Set(ContextRole, tt.role)
			}
			c.Next()
		})
		router.Use(LeaderRequired())
		router.GET("/leader", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/leader", nil)
		router.ServeHTTP(w, req)

		if w.Code != tt.expected {
			t.Errorf("role %q: expected status %d, got %d", tt.role, tt.expected, w.Code)
		}
	}
}

func TestLeaderRequired_PrefersLoadedUserOverClaim(t *testing.T) {
	tests := []struct {
		name      string
		claimRole string
		userRole  models.UserRole
		expected  int
	}{
		{"demoted since token issued", "LEADER", models.RoleMember, http.StatusForbidden},
		{"promoted since token issued", "MEMBER", models.RoleLeader, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(func(c *gin.Context) {
				c.Set(ContextRole, tt.claimRole)
				c.Set(ContextUser, &models.User{Role: tt.userRole, IsActive: true})
				c.Next()
			})
			router.Use(LeaderRequired())
			router.GET("/leader", func(c *gin.Context) {
				c.JSON(200, gin.H{"status": "ok"})
			})

			w := httptest.NewRecorder()
			req, _ := http.NewRequest("GET", "/leader", nil)
			router.ServeHTTP(w, req)

			if w.Code != tt.expected {
				t.Errorf("expected status %d, got %d", tt.expected, w.Code)
			}
		})
	}
}

func TestGetUserID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if id := GetUserID(c); id != "" {
		t.Errorf("expected empty string for missing user_id, got %q", id)
	}

	c.Set(ContextUserID, "user-42")
	if id := GetUserID(c); id != "user-42" {
		t.Errorf("expected %q, got %q", "user-42", id)
	}
}

func TestGetRole(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if role := GetRole(c); role != "" {
		t.Errorf("expected empty string for missing role, got %q", role)
	}

	c.Set(ContextRole, "LEADER")
	if role := GetRole(c); role != "LEADER" {
		t.Errorf("expected %q, got %q", "LEADER", role)
	}
}
