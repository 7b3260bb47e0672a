package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"tienda-api/internal/models"
)

var testSecret = []byte("test-secret")

func newProtectedRouter() *gin.Engine {
	router := gin.New()
	admin := router.Group("", AuthMiddleware(testSecret), RequireAdmin())
	admin.DELETE("/v1/categories/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
	})
	return router
}

func signToken(t *testing.T, role string) string {
	t.Helper()
	claims := Claims{
		UserID: primitive.NewObjectID().Hex(),
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)
	return signed
}

func performAuthRequest(router http.Handler, token string) int {
	req := httptest.NewRequest(http.MethodDelete, "/v1/categories/"+primitive.NewObjectID().Hex(), nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w.Code
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	router := newProtectedRouter()
	assert.Equal(t, http.StatusUnauthorized, performAuthRequest(router, ""))
}

func TestAuthMiddlewareRejectsGarbageToken(t *testing.T) {
	router := newProtectedRouter()
	assert.Equal(t, http.StatusUnauthorized, performAuthRequest(router, "not-a-jwt"))
}

func TestRequireAdminRejectsRegularUser(t *testing.T) {
	router := newProtectedRouter()
	assert.Equal(t, http.StatusForbidden, performAuthRequest(router, signToken(t, models.RoleUser)))
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	router := newProtectedRouter()
	assert.Equal(t, http.StatusOK, performAuthRequest(router, signToken(t, models.RoleAdmin)))
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	repo := newFakeUserRepo()
	hashed, err := bcrypt.GenerateFromPassword([]byte("super-secret-1"), bcrypt.DefaultCost)
	require.NoError(t, err)
	repo.add(&models.User{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: string(hashed),
		Role:     models.RoleAdmin,
	})

	h := NewAuthHandler(repo, testSecret)
	router := gin.New()
	router.POST("/v1/auth/login", h.Login)

	w := performRequest(router, http.MethodPost, "/v1/auth/login", gin.H{
		"email":    "ana@example.com",
		"password": "super-secret-1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.Token)

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(body.Token, claims, func(t *jwt.Token) (interface{}, error) {
		return testSecret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)
	assert.True(t, token.Valid)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, body.User.ID.Hex(), claims.UserID)
}

func TestLoginWrongPasswordUnauthorized(t *testing.T) {
	repo := newFakeUserRepo()
	hashed, _ := bcrypt.GenerateFromPassword([]byte("super-secret-1"), bcrypt.DefaultCost)
	repo.add(&models.User{Name: "Ana", Email: "ana@example.com", Password: string(hashed)})

	h := NewAuthHandler(repo, testSecret)
	router := gin.New()
	router.POST("/v1/auth/login", h.Login)

	w := performRequest(router, http.MethodPost, "/v1/auth/login", gin.H{
		"email":    "ana@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginUnknownEmailUnauthorized(t *testing.T) {
	h := NewAuthHandler(newFakeUserRepo(), testSecret)
	router := gin.New()
	router.POST("/v1/auth/login", h.Login)

	w := performRequest(router, http.MethodPost, "/v1/auth/login", gin.H{
		"email":    "nadie@example.com",
		"password": "whatever",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
