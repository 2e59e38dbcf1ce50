package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	catalogAdapter "github.com/khoahotran/career-path/adapters/catalog"
	authUC "github.com/khoahotran/career-path/internal/application/usecase/auth"
	catalogUC "github.com/khoahotran/career-path/internal/application/usecase/catalog"
	chatUC "github.com/khoahotran/career-path/internal/application/usecase/chat"
	feedbackUC "github.com/khoahotran/career-path/internal/application/usecase/feedback"
	profileUC "github.com/khoahotran/career-path/internal/application/usecase/profile"
	statsUC "github.com/khoahotran/career-path/internal/application/usecase/stats"
	teamUC "github.com/khoahotran/career-path/internal/application/usecase/team"
	"github.com/khoahotran/career-path/internal/domain/profile"
	"github.com/khoahotran/career-path/internal/domain/team"
	"github.com/khoahotran/career-path/internal/domain/user"
	"github.com/khoahotran/career-path/pkg/auth"
	"github.com/khoahotran/career-path/pkg/logger"
)

type RouterTestSuite struct {
	suite.Suite
	router   *gin.Engine
	jwtSvc   *auth.JWTService
	profiles *memoryProfiles
	llm      *scriptedLLM
	student  string
	admin    string
}

func TestRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	suite.Run(t, new(RouterTestSuite))
}

func (s *RouterTestSuite) SetupTest() {
	log := logger.NewNop()
	cat, err := catalogAdapter.NewEmbeddedRepository()
	s.Require().NoError(err)

	s.jwtSvc = auth.NewJWTService("router-test-secret", time.Hour)
	s.profiles = &memoryProfiles{byOwner: map[uuid.UUID]*profile.UserProfile{}}
	s.llm = &scriptedLLM{reply: "Consider B.Tech in CSE 😊"}
	users := &memoryUsers{byEmail: map[string]*user.User{}}
	statsRepo := emptyStats{}

	profileUseCase := profileUC.NewProfileUseCase(s.profiles, nil, cat, nil, profile.TimelinePreserve, log)
	statsUseCase := statsUC.NewStatsUseCase(statsRepo, cat, log)

	s.router = NewRouter(Handlers{
		Auth: NewAuthHandler(
			authUC.NewLoginUseCase(users, s.jwtSvc, log),
			authUC.NewRegisterUseCase(users, log),
			log,
		),
		Catalog:  NewCatalogHandler(catalogUC.NewCatalogUseCase(cat, log), statsUseCase, log),
		RSS:      NewRSSHandler(catalogUC.NewRSSUseCase(cat, "http://localhost:8080", log), log),
		Chat:     NewChatHandler(chatUC.NewChatUseCase(s.llm, log), log),
		Profile:  NewProfileHandler(profileUseCase, log),
		Feedback: NewFeedbackHandler(feedbackUC.NewFeedbackUseCase(&memoryFeedback{}, nopFeedbackPublisher{}, log), statsUseCase, log),
		Team: NewTeamHandler(teamUC.NewTeamUseCase(&memoryTeam{members: map[uuid.UUID]team.Member{}}, nopUploader{}, log), log),
	}, s.jwtSvc, time.Second, log)

	s.student, err = s.jwtSvc.GenerateToken(uuid.New(), "student@example.com", auth.RoleStudent)
	s.Require().NoError(err)
	s.admin, err = s.jwtSvc.GenerateToken(uuid.New(), "admin@example.com", auth.RoleAdmin)
	s.Require().NoError(err)
}

func (s *RouterTestSuite) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func (s *RouterTestSuite) decode(rr *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

func (s *RouterTestSuite) TestHealth() {
	rr := s.do(http.MethodGet, "/api/health", "", nil)
	s.Equal(http.StatusOK, rr.Code)
}

func (s *RouterTestSuite) TestProfileRoutesRequireToken() {
	rr := s.do(http.MethodPost, "/api/me/careers/3/toggle", "", nil)
	s.Equal(http.StatusUnauthorized, rr.Code)
	s.Equal("unauthenticated", s.decode(rr)["error"])
	s.Zero(s.profiles.calls)

	rr = s.do(http.MethodGet, "/api/me/profile", "not-a-jwt", nil)
	s.Equal(http.StatusUnauthorized, rr.Code)
}

func (s *RouterTestSuite) TestToggleCareerTwice() {
	rr := s.do(http.MethodPost, "/api/me/careers/3/toggle", s.student, nil)
	s.Require().Equal(http.StatusOK, rr.Code)
	body := s.decode(rr)
	s.Equal(true, body["saved"])
	s.Equal([]any{float64(3)}, body["profile"].(map[string]any)["saved_careers"])

	rr = s.do(http.MethodPost, "/api/me/careers/3/toggle", s.student, nil)
	s.Require().Equal(http.StatusOK, rr.Code)
	body = s.decode(rr)
	s.Equal(false, body["saved"])
	s.Equal([]any{}, body["profile"].(map[string]any)["saved_careers"])
}

func (s *RouterTestSuite) TestGetProfileBeforeFirstSave() {
	rr := s.do(http.MethodGet, "/api/me/profile", s.student, nil)
	s.Require().Equal(http.StatusOK, rr.Code)
	p := s.decode(rr)["profile"].(map[string]any)
	s.Nil(p["id"])
	s.Equal([]any{}, p["saved_scholarships"])
	s.Equal(map[string]any{}, p["roadmap_progress"])
}

func (s *RouterTestSuite) TestToggleStep() {
	rr := s.do(http.MethodPost, "/api/me/courses/5/steps/2/toggle", s.student, gin.H{"timeline": "2months"})
	s.Require().Equal(http.StatusOK, rr.Code)
	body := s.decode(rr)
	s.Equal(true, body["completed"])
	s.Equal(float64(25), body["percent"])
	s.Equal(map[string]any{"timeline": "2months", "completed_steps": []any{float64(2)}}, body["progress"])

	rr = s.do(http.MethodGet, "/api/me/courses/5/progress", s.student, nil)
	s.Require().Equal(http.StatusOK, rr.Code)
	s.Equal(float64(25), s.decode(rr)["percent"])
}

func (s *RouterTestSuite) TestToggleStepValidation() {
	rr := s.do(http.MethodPost, "/api/me/courses/5/steps/2/toggle", s.student, gin.H{"timeline": "3weeks"})
	s.Equal(http.StatusBadRequest, rr.Code)

	rr = s.do(http.MethodPost, "/api/me/courses/5/steps/9/toggle", s.student, gin.H{"timeline": "1month"})
	s.Equal(http.StatusBadRequest, rr.Code)

	rr = s.do(http.MethodPost, "/api/me/courses/abc/steps/0/toggle", s.student, gin.H{"timeline": "1month"})
	s.Equal(http.StatusBadRequest, rr.Code)
}

func (s *RouterTestSuite) TestPersistenceFailureIsRetryable() {
	s.profiles.failNext = errUnavailable
	rr := s.do(http.MethodPost, "/api/me/scholarships/4/toggle", s.student, nil)
	s.Equal(http.StatusServiceUnavailable, rr.Code)
	body := s.decode(rr)
	s.Equal(true, body["retryable"])
	attempted := body["attempted"].(map[string]any)
	s.Equal(string(profile.MutationToggleScholarship), attempted["kind"])
}

func (s *RouterTestSuite) TestUpdateGoals() {
	rr := s.do(http.MethodPut, "/api/me/profile/goals", s.student, gin.H{
		"career_goal": "Software Engineer", "target_year": "2027", "current_class": "11th", "preferred_stream": "Science",
	})
	s.Require().Equal(http.StatusOK, rr.Code)
	p := s.decode(rr)["profile"].(map[string]any)
	s.Equal("Software Engineer", p["career_goal"])
	s.Equal(true, p["motivational_enabled"])

	rr = s.do(http.MethodPut, "/api/me/profile/goals", s.student, gin.H{"target_year": "1999"})
	s.Equal(http.StatusBadRequest, rr.Code)
}

func (s *RouterTestSuite) TestCatalogRoutes() {
	rr := s.do(http.MethodGet, "/api/careers?category=Medical", "", nil)
	s.Require().Equal(http.StatusOK, rr.Code)
	s.NotZero(s.decode(rr)["count"])

	rr = s.do(http.MethodGet, "/api/courses/999", "", nil)
	s.Require().Equal(http.StatusOK, rr.Code)
	s.Equal(true, s.decode(rr)["coming_soon"])

	rr = s.do(http.MethodGet, "/api/careers/popular", "", nil)
	s.Require().Equal(http.StatusOK, rr.Code)
	s.Len(s.decode(rr)["data"], 1)

	rr = s.do(http.MethodGet, "/api/updates/rss", "", nil)
	s.Require().Equal(http.StatusOK, rr.Code)
	s.Contains(rr.Header().Get("Content-Type"), "application/xml")
}

func (s *RouterTestSuite) TestChat() {
	rr := s.do(http.MethodPost, "/api/chat", "", gin.H{"message": "Data Science career"})
	s.Require().Equal(http.StatusOK, rr.Code)
	s.Equal(ChatResponse{Reply: "Consider B.Tech in CSE 😊"}, s.chatBody(rr))

	s.llm.err = errUnavailable
	rr = s.do(http.MethodPost, "/api/chat", "", gin.H{"message": "Data Science career"})
	s.Require().Equal(http.StatusOK, rr.Code)
	s.Equal(ChatResponse{Reply: chatUC.Fallback, Failed: true}, s.chatBody(rr))

	rr = s.do(http.MethodPost, "/api/chat", "", gin.H{})
	s.Equal(http.StatusBadRequest, rr.Code)
}

func (s *RouterTestSuite) chatBody(rr *httptest.ResponseRecorder) ChatResponse {
	var out ChatResponse
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

func (s *RouterTestSuite) TestAuthFlow() {
	rr := s.do(http.MethodPost, "/api/auth/register", "", gin.H{"email": "new@example.com", "password": "password1", "name": "New"})
	s.Require().Equal(http.StatusCreated, rr.Code)

	rr = s.do(http.MethodPost, "/api/auth/register", "", gin.H{"email": "new@example.com", "password": "password1"})
	s.Equal(http.StatusConflict, rr.Code)

	rr = s.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "new@example.com", "password": "wrong-pass"})
	s.Equal(http.StatusUnauthorized, rr.Code)

	rr = s.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "new@example.com", "password": "password1"})
	s.Require().Equal(http.StatusOK, rr.Code)
	token, _ := s.decode(rr)["access_token"].(string)
	s.NotEmpty(token)

	rr = s.do(http.MethodGet, "/api/me/progress", token, nil)
	s.Equal(http.StatusOK, rr.Code)
}

func (s *RouterTestSuite) TestContactAndAdmin() {
	rr := s.do(http.MethodPost, "/api/contact", "", gin.H{"name": "Asha", "state": "Karnataka", "message": "Loved the roadmaps"})
	s.Require().Equal(http.StatusCreated, rr.Code)

	rr = s.do(http.MethodPost, "/api/contact", "", gin.H{"name": "Asha", "state": "Atlantis", "message": "Hi"})
	s.Equal(http.StatusBadRequest, rr.Code)

	rr = s.do(http.MethodGet, "/api/admin/feedback", s.student, nil)
	s.Equal(http.StatusForbidden, rr.Code)

	rr = s.do(http.MethodGet, "/api/admin/feedback", s.admin, nil)
	s.Require().Equal(http.StatusOK, rr.Code)
	s.Len(s.decode(rr)["data"], 1)

	rr = s.do(http.MethodDelete, "/api/admin/feedback/"+uuid.NewString(), s.admin, nil)
	s.Equal(http.StatusNotFound, rr.Code)
}

func (s *RouterTestSuite) TestTeamAdmin() {
	rr := s.do(http.MethodPost, "/api/team", s.student, gin.H{"name": "Ravi", "role": "Mentor"})
	s.Equal(http.StatusForbidden, rr.Code)

	rr = s.do(http.MethodPost, "/api/team", s.admin, gin.H{"name": "Ravi", "role": "Mentor", "email": "ravi@example.com"})
	s.Require().Equal(http.StatusCreated, rr.Code)

	rr = s.do(http.MethodGet, "/api/team", "", nil)
	s.Require().Equal(http.StatusOK, rr.Code)
	members := s.decode(rr)["data"].([]any)
	s.Require().Len(members, 1)
	s.NotContains(members[0].(map[string]any), "email")
}
