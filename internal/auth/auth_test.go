package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWT() JWT {
	return JWT{Secret: []byte("test-secret"), TokenTTL: time.Hour, Issuer: "bagbuilder"}
}

func TestIssueAnonymous(t *testing.T) {
	j := testJWT()
	s, err := j.IssueAnonymous()
	require.NoError(t, err)

	_, err = uuid.Parse(s.UserID)
	assert.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), s.ExpiresAt, 5*time.Second)

	claims, err := j.Verify(s.Token)
	require.NoError(t, err)
	assert.Equal(t, s.UserID, claims.UserID())
	assert.True(t, claims.Anonymous)
	assert.Equal(t, "bagbuilder", claims.Issuer)
}

func TestVerifyRejects(t *testing.T) {
	j := testJWT()

	t.Run("WrongSecret", func(t *testing.T) {
		other := testJWT()
		other.Secret = []byte("other")
		s, err := other.IssueFor("u1")
		require.NoError(t, err)
		_, err = j.Verify(s.Token)
		assert.Error(t, err)
	})

	t.Run("Expired", func(t *testing.T) {
		tok, _, err := j.Sign(Claims{RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		}})
		require.NoError(t, err)
		_, err = j.Verify(tok)
		assert.Error(t, err)
	})

	t.Run("NoSubject", func(t *testing.T) {
		tok, _, err := j.Sign(Claims{})
		require.NoError(t, err)
		_, err = j.Verify(tok)
		assert.EqualError(t, err, "token has no subject")
	})

	t.Run("WrongIssuer", func(t *testing.T) {
		tok, _, err := j.Sign(Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "u1", Issuer: "someone-else"}})
		require.NoError(t, err)
		_, err = j.Verify(tok)
		assert.Error(t, err)
	})
}

func TestIssueForRequiresUser(t *testing.T) {
	_, err := testJWT().IssueFor("")
	assert.Error(t, err)
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	j := testJWT()

	r := gin.New()
	r.GET("/me", Middleware(j), func(c *gin.Context) {
		c.String(http.StatusOK, UserID(c))
	})

	s, err := j.IssueFor("alice")
	require.NoError(t, err)

	testCases := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"valid token", "Bearer " + s.Token, http.StatusOK, "alice"},
		{"lower-case scheme", "bearer " + s.Token, http.StatusOK, "alice"},
		{"missing header", "", http.StatusUnauthorized, `{"code":401,"message":"missing bearer token"}`},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, `{"code":401,"message":"missing bearer token"}`},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized, `{"code":401,"message":"invalid token"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)
			assert.Equal(t, tc.wantBody, w.Body.String())
		})
	}
}

func TestUserIDWithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, "", UserID(c))
}
