package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gdugdh24/skillswap-backend/internal/delivery/http/handler"
	"github.com/gdugdh24/skillswap-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/skillswap-backend/internal/pkg/jwt"
	"github.com/gdugdh24/skillswap-backend/internal/repository/memory"
	"github.com/gdugdh24/skillswap-backend/internal/usecase/auth"
	"github.com/gdugdh24/skillswap-backend/internal/usecase/catalog"
	"github.com/gdugdh24/skillswap-backend/internal/usecase/matching"
	"github.com/gdugdh24/skillswap-backend/internal/usecase/profile"
	"github.com/gdugdh24/skillswap-backend/internal/usecase/user"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testServer struct {
	engine *gin.Engine
	store  *memory.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := log.New(io.Discard, "", 0)
	s := memory.NewStore()
	userRepo := memory.NewUserRepository(s)
	profileRepo := memory.NewProfileRepository(s)
	skillRepo := memory.NewSkillRepository(s)
	interestRepo := memory.NewInterestRepository(s)

	users := user.NewUserUseCase(userRepo, bcrypt.MinCost)
	jwtSvc := jwt.NewHMACService(strings.Repeat("a", 32), strings.Repeat("r", 32), time.Minute, time.Hour)
	authUC := auth.NewAuthUseCase(users, memory.NewRefreshTokenStore(s), jwtSvc)
	profiles := profile.NewProfileUseCase(profileRepo, userRepo, skillRepo, interestRepo, users)
	matcher := matching.NewMatchingUseCase(userRepo, profileRepo, memory.NewMatchRepository(s), nil, logger)

	router := NewRouter(
		handler.NewAuthHandler(authUC),
		handler.NewUserHandler(users),
		handler.NewProfileHandler(profiles),
		handler.NewCatalogHandler(catalog.NewSkillUseCase(skillRepo)),
		handler.NewCatalogHandler(catalog.NewInterestUseCase(interestRepo)),
		handler.NewMatchHandler(matcher),
		middleware.NewAuthMiddleware(authUC),
		logger,
	)
	return &testServer{engine: router.Setup(), store: s}
}

func (ts *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.engine.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type registerBody struct {
	User struct {
		ID int `json:"id"`
	} `json:"user"`
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
	Message string `json:"message"`
}

func (ts *testServer) register(t *testing.T, username string) registerBody {
	t.Helper()
	rec := ts.do(t, nethttp.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	})
	require.Equal(t, nethttp.StatusCreated, rec.Code, rec.Body.String())
	return decode[registerBody](t, rec)
}

func (ts *testServer) tag(t *testing.T, token, kind, field, name string) int {
	t.Helper()
	rec := ts.do(t, nethttp.MethodPost, "/api/v1/"+kind, token, gin.H{field: name})
	require.Equal(t, nethttp.StatusCreated, rec.Code, rec.Body.String())
	return decode[struct {
		ID int `json:"id"`
	}](t, rec).ID
}

func (ts *testServer) setTags(t *testing.T, token string, skillIDs, interestIDs []int) {
	t.Helper()
	rec := ts.do(t, nethttp.MethodPatch, "/api/v1/profile/me", token, gin.H{
		"skill_ids":    skillIDs,
		"interest_ids": interestIDs,
	})
	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, nethttp.MethodGet, "/health", "", nil)
	assert.Equal(t, nethttp.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = ts.do(t, nethttp.MethodHead, "/health", "", nil)
	assert.Equal(t, nethttp.StatusOK, rec.Code)
}

func TestRegister(t *testing.T) {
	ts := newTestServer(t)

	body := ts.register(t, "alice")
	assert.NotZero(t, body.User.ID)
	assert.NotEmpty(t, body.Access)
	assert.NotEmpty(t, body.Refresh)
	assert.Equal(t, "User created successfully.", body.Message)
}

func TestRegister_InvalidInput(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name  string
		body  gin.H
		field string
	}{
		{"bad email", gin.H{"username": "alice", "email": "nope", "password": "password123"}, "email"},
		{"missing username", gin.H{"email": "a@example.com", "password": "password123"}, "username"},
		{"short password", gin.H{"username": "alice", "email": "a@example.com", "password": "x"}, "password"},
		{"blank username", gin.H{"username": "     ", "email": "a@example.com", "password": "password123"}, "username"},
		{"padded short username", gin.H{"username": "a    ", "email": "a@example.com", "password": "password123"}, "username"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(t, nethttp.MethodPost, "/api/v1/auth/register", "", tt.body)
			require.Equal(t, nethttp.StatusBadRequest, rec.Code)

			resp := decode[handler.ValidationErrorResponse](t, rec)
			assert.Contains(t, resp.Fields, tt.field)
		})
	}
}

func TestRegister_Duplicate(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "alice")

	rec := ts.do(t, nethttp.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username": "alice",
		"email":    "alice2@example.com",
		"password": "password123",
	})
	require.Equal(t, nethttp.StatusBadRequest, rec.Code)
	resp := decode[handler.ValidationErrorResponse](t, rec)
	assert.Contains(t, resp.Fields, "username")
}

func TestLoginRefreshLogout(t *testing.T) {
	ts := newTestServer(t)
	reg := ts.register(t, "alice")

	rec := ts.do(t, nethttp.MethodPost, "/api/v1/auth/token", "", gin.H{"username": "alice", "password": "wrong-password"})
	assert.Equal(t, nethttp.StatusUnauthorized, rec.Code)

	rec = ts.do(t, nethttp.MethodPost, "/api/v1/auth/token", "", gin.H{"username": "alice", "password": "password123"})
	require.Equal(t, nethttp.StatusOK, rec.Code)
	pair := decode[auth.TokenPair](t, rec)

	rec = ts.do(t, nethttp.MethodPost, "/api/v1/auth/token/refresh", "", gin.H{"refresh": pair.Refresh})
	require.Equal(t, nethttp.StatusOK, rec.Code)
	rotated := decode[auth.TokenPair](t, rec)

	rec = ts.do(t, nethttp.MethodPost, "/api/v1/auth/token/refresh", "", gin.H{"refresh": pair.Refresh})
	assert.Equal(t, nethttp.StatusUnauthorized, rec.Code)

	bob := ts.register(t, "bob")
	rec = ts.do(t, nethttp.MethodPost, "/api/v1/auth/logout", bob.Access, gin.H{"refresh": rotated.Refresh})
	assert.Equal(t, nethttp.StatusUnauthorized, rec.Code)

	rec = ts.do(t, nethttp.MethodPost, "/api/v1/auth/logout", reg.Access, gin.H{"refresh": rotated.Refresh})
	require.Equal(t, nethttp.StatusOK, rec.Code)

	rec = ts.do(t, nethttp.MethodPost, "/api/v1/auth/token/refresh", "", gin.H{"refresh": rotated.Refresh})
	assert.Equal(t, nethttp.StatusUnauthorized, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{
		"/api/v1/users",
		"/api/v1/profiles",
		"/api/v1/skills",
		"/api/v1/interests",
		"/api/v1/matches",
		"/api/v1/matches/find_matches",
		"/api/v1/profile/me",
	} {
		rec := ts.do(t, nethttp.MethodGet, path, "", nil)
		assert.Equal(t, nethttp.StatusUnauthorized, rec.Code, path)
	}

	rec := ts.do(t, nethttp.MethodGet, "/api/v1/users", "not-a-token", nil)
	assert.Equal(t, nethttp.StatusUnauthorized, rec.Code)
}

func TestFindMatchesFlow(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.register(t, "alice")
	bob := ts.register(t, "bob")
	carol := ts.register(t, "carol")

	python := ts.tag(t, alice.Access, "skills", "skill_name", "Python")
	guitarSkill := ts.tag(t, alice.Access, "skills", "skill_name", "Guitar")
	pythonInterest := ts.tag(t, alice.Access, "interests", "interest_name", "python")
	guitar := ts.tag(t, alice.Access, "interests", "interest_name", "Guitar")

	ts.setTags(t, alice.Access, []int{python}, []int{guitar})
	ts.setTags(t, bob.Access, []int{guitarSkill}, []int{pythonInterest})
	// carol only teaches what alice wants, nothing in return.
	ts.setTags(t, carol.Access, []int{guitarSkill}, []int{})

	rec := ts.do(t, nethttp.MethodGet, "/api/v1/matches/find_matches", alice.Access, nil)
	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())

	type matchBody struct {
		ID                int  `json:"id"`
		User1             int  `json:"user1"`
		User2             int  `json:"user2"`
		IsAcceptedByUser1 bool `json:"is_accepted_by_user1"`
		IsAcceptedByUser2 bool `json:"is_accepted_by_user2"`
	}
	found := decode[[]matchBody](t, rec)
	require.Len(t, found, 1)
	assert.Equal(t, alice.User.ID, found[0].User1)
	assert.Equal(t, bob.User.ID, found[0].User2)
	assert.True(t, found[0].IsAcceptedByUser1)
	assert.False(t, found[0].IsAcceptedByUser2)

	// Repeating the search does not create a second row.
	rec = ts.do(t, nethttp.MethodGet, "/api/v1/matches/find_matches", alice.Access, nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Equal(t, 1, ts.store.MatchCount())

	rec = ts.do(t, nethttp.MethodGet, "/api/v1/matches/find_matches", bob.Access, nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	mutual := decode[[]matchBody](t, rec)
	require.Len(t, mutual, 1)
	assert.Equal(t, found[0].ID, mutual[0].ID)
	assert.True(t, mutual[0].IsAcceptedByUser1)
	assert.True(t, mutual[0].IsAcceptedByUser2)

	path := "/api/v1/matches/" + jsonInt(found[0].ID)
	rec = ts.do(t, nethttp.MethodGet, path, bob.Access, nil)
	assert.Equal(t, nethttp.StatusOK, rec.Code)
	rec = ts.do(t, nethttp.MethodGet, path, carol.Access, nil)
	assert.Equal(t, nethttp.StatusNotFound, rec.Code)

	rec = ts.do(t, nethttp.MethodGet, "/api/v1/matches", carol.Access, nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestMyProfile(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.register(t, "alice")
	python := ts.tag(t, alice.Access, "skills", "skill_name", "Python")

	rec := ts.do(t, nethttp.MethodPatch, "/api/v1/profile/me", alice.Access, gin.H{
		"first_name": "Alice",
		"country":    "Germany",
		"skill_ids":  []int{python},
	})
	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())

	rec = ts.do(t, nethttp.MethodGet, "/api/v1/profile/me", alice.Access, nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)

	me := decode[struct {
		ID        int    `json:"id"`
		FirstName string `json:"first_name"`
		Profile   struct {
			User    int    `json:"user"`
			Country string `json:"country"`
			Skills  []struct {
				Name string `json:"skill_name"`
			} `json:"skills"`
		} `json:"profile"`
	}](t, rec)
	assert.Equal(t, alice.User.ID, me.ID)
	assert.Equal(t, "Alice", me.FirstName)
	assert.Equal(t, alice.User.ID, me.Profile.User)
	assert.Equal(t, "Germany", me.Profile.Country)
	require.Len(t, me.Profile.Skills, 1)
	assert.Equal(t, "Python", me.Profile.Skills[0].Name)

	rec = ts.do(t, nethttp.MethodPut, "/api/v1/profile/me", alice.Access, gin.H{"first_name": "Al"})
	require.Equal(t, nethttp.StatusBadRequest, rec.Code)
	resp := decode[handler.ValidationErrorResponse](t, rec)
	assert.Contains(t, resp.Fields, "username")
}

func TestCatalogEndpoints(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.register(t, "alice")

	rec := ts.do(t, nethttp.MethodPost, "/api/v1/skills", alice.Access, gin.H{"skill_name": ""})
	require.Equal(t, nethttp.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[handler.ValidationErrorResponse](t, rec).Fields, "skill_name")

	rec = ts.do(t, nethttp.MethodPost, "/api/v1/skills", alice.Access, gin.H{"skill_name": 12})
	require.Equal(t, nethttp.StatusBadRequest, rec.Code)

	id := ts.tag(t, alice.Access, "skills", "skill_name", "Cooking")
	path := "/api/v1/skills/" + jsonInt(id)

	rec = ts.do(t, nethttp.MethodPatch, path, alice.Access, gin.H{"skill_name": "Baking"})
	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":`+jsonInt(id)+`,"skill_name":"Baking"}`, rec.Body.String())

	rec = ts.do(t, nethttp.MethodGet, "/api/v1/skills?search=bak", alice.Access, nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]interface{}](t, rec), 1)

	rec = ts.do(t, nethttp.MethodGet, "/api/v1/skills?limit=abc", alice.Access, nil)
	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)

	rec = ts.do(t, nethttp.MethodDelete, path, alice.Access, nil)
	assert.Equal(t, nethttp.StatusNoContent, rec.Code)

	rec = ts.do(t, nethttp.MethodGet, path, alice.Access, nil)
	assert.Equal(t, nethttp.StatusNotFound, rec.Code)

	rec = ts.do(t, nethttp.MethodGet, "/api/v1/skills/abc", alice.Access, nil)
	assert.Equal(t, nethttp.StatusNotFound, rec.Code)
}

func TestUserEndpoints(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.register(t, "alice")
	ts.register(t, "bob")

	rec := ts.do(t, nethttp.MethodGet, "/api/v1/users?limit=1", alice.Access, nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]interface{}](t, rec), 1)

	path := "/api/v1/users/" + jsonInt(alice.User.ID)
	rec = ts.do(t, nethttp.MethodPatch, path, alice.Access, gin.H{"email": "bob@example.com"})
	require.Equal(t, nethttp.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[handler.ValidationErrorResponse](t, rec).Fields, "email")

	rec = ts.do(t, nethttp.MethodGet, path, alice.Access, nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = ts.do(t, nethttp.MethodGet, "/api/v1/users/999", alice.Access, nil)
	assert.Equal(t, nethttp.StatusNotFound, rec.Code)
}

func jsonInt(n int) string {
	raw, _ := json.Marshal(n)
	return string(raw)
}
