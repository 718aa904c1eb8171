package httptransport

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"shopez/internal/catalog"
	"shopez/internal/session/service"
	"shopez/internal/session/store"
	"shopez/internal/sessiontoken"
	"shopez/pkg/platform/audit/publisher"
	auditmemory "shopez/pkg/platform/audit/store/memory"
	"shopez/pkg/testutil"
)

// RouterSuite drives the assembled router end to end: real service, real
// in-memory store, real token issuer.
type RouterSuite struct {
	suite.Suite
	router http.Handler
}

func (s *RouterSuite) SetupTest() {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	auditPub := publisher.NewPublisher(auditmemory.NewInMemoryStore())
	sessions := service.New(store.NewInMemory(),
		service.WithLogger(log),
		service.WithAuditPublisher(auditPub),
	)
	tokens := sessiontoken.NewIssuer("test-signing-key", "test", time.Hour)

	s.router = NewRouter(Deps{
		Logger:   log,
		Sessions: sessions,
		Tokens:   tokens,
		Catalog:  catalog.Default(),
		Audit:    auditPub,
	})
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

type envelope struct {
	Error       string `json:"error"`
	Description string `json:"error_description"`
}

type userBody struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type cartItemBody struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
}

type cartBody struct {
	Items []cartItemBody `json:"items"`
	Count int            `json:"count"`
	Total int64          `json:"total"`
}

type formBody struct {
	Values map[string]string `json:"values"`
	Errors map[string]string `json:"errors"`
}

type snapshotBody struct {
	SessionID   string              `json:"session_id"`
	Screen      string              `json:"screen"`
	User        *userBody           `json:"user"`
	Cart        cartBody            `json:"cart"`
	Forms       map[string]formBody `json:"forms"`
	InfoMessage string              `json:"info_message"`
}

type submitBody struct {
	Submitted bool              `json:"submitted"`
	Errors    map[string]string `json:"errors"`
	Snapshot  snapshotBody      `json:"snapshot"`
}

func (s *RouterSuite) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = testutil.NewJSONRequest(s.T(), method, path, body)
	} else {
		req = testutil.NewRequest(s.T(), method, path)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *RouterSuite) openSession() string {
	rec := s.do(http.MethodPost, "/session", "", nil)
	s.Require().Equal(http.StatusCreated, rec.Code)

	var resp struct {
		Token    string       `json:"token"`
		Snapshot snapshotBody `json:"snapshot"`
	}
	testutil.DecodeJSON(s.T(), rec, &resp)
	s.Require().NotEmpty(resp.Token)
	s.Require().Equal("auth", resp.Snapshot.Screen)
	return resp.Token
}

func (s *RouterSuite) login(token, email, password string) *httptest.ResponseRecorder {
	return s.do(http.MethodPost, "/auth/login", token, map[string]any{
		"values": map[string]string{"email": email, "password": password},
	})
}

func (s *RouterSuite) TestOpenSession() {
	s.openSession()
}

func (s *RouterSuite) TestSessionRequiresToken() {
	rec := s.do(http.MethodGet, "/session", "", nil)
	s.Equal(http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodGet, "/session", "not-a-token", nil)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *RouterSuite) TestSignUpFlow() {
	token := s.openSession()

	rec := s.do(http.MethodPost, "/auth/signup", token, map[string]any{
		"values": map[string]string{
			"name":            "Ann",
			"email":           "ann@x.com",
			"password":        "secret1",
			"confirmPassword": "secret1",
		},
	})
	s.Require().Equal(http.StatusOK, rec.Code)

	var resp submitBody
	testutil.DecodeJSON(s.T(), rec, &resp)
	s.True(resp.Submitted)
	s.Equal("dashboard", resp.Snapshot.Screen)
	s.Require().NotNil(resp.Snapshot.User)
	s.Equal("ann@x.com", resp.Snapshot.User.Email)
	s.NotEmpty(resp.Snapshot.InfoMessage)

	signIn, ok := resp.Snapshot.Forms["sign_in"]
	s.Require().True(ok, "sign-in form pre-filled after sign-up")
	s.Equal("ann@x.com", signIn.Values["email"])
	s.Equal("", signIn.Values["password"])
}

func (s *RouterSuite) TestSignUpValidationErrors() {
	token := s.openSession()

	rec := s.do(http.MethodPost, "/auth/signup", token, map[string]any{
		"values": map[string]string{"name": "Al", "email": "x", "password": "", "confirmPassword": ""},
	})
	s.Require().Equal(http.StatusOK, rec.Code)

	var resp submitBody
	testutil.DecodeJSON(s.T(), rec, &resp)
	s.False(resp.Submitted)
	s.Equal("Name must be at least 3 characters", resp.Errors["name"])
	s.Equal("Email must contain @", resp.Errors["email"])
	s.Equal("Password is required", resp.Errors["password"])
	s.Equal("Please confirm your password", resp.Errors["confirmPassword"])
	s.Equal("auth", resp.Snapshot.Screen)
}

func (s *RouterSuite) TestLoginRejection() {
	token := s.openSession()

	rec := s.login(token, "nobody@x.com", "wrongpass")
	s.Require().Equal(http.StatusUnauthorized, rec.Code)

	var env envelope
	testutil.DecodeJSON(s.T(), rec, &env)
	s.Equal("unauthorized", env.Error)
	s.Contains(env.Description, "Invalid credentials")
}

func (s *RouterSuite) TestStorefrontFlow() {
	token := s.openSession()

	rec := s.login(token, "demo@shop.com", "demo123")
	s.Require().Equal(http.StatusOK, rec.Code)
	var loginResp submitBody
	testutil.DecodeJSON(s.T(), rec, &loginResp)
	s.Require().True(loginResp.Submitted)
	s.Equal("dashboard", loginResp.Snapshot.Screen)

	// Add the same product twice; each add is its own line.
	for i := 0; i < 2; i++ {
		rec = s.do(http.MethodPost, "/cart/items", token, map[string]any{"product_id": 1})
		s.Require().Equal(http.StatusOK, rec.Code)
	}

	rec = s.do(http.MethodGet, "/cart", token, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var cart cartBody
	testutil.DecodeJSON(s.T(), rec, &cart)
	s.Equal(2, cart.Count)
	s.Equal(int64(1000), cart.Total)

	rec = s.do(http.MethodPost, "/session/view", token, map[string]any{"view": "cart"})
	s.Require().Equal(http.StatusOK, rec.Code)
	var snap snapshotBody
	testutil.DecodeJSON(s.T(), rec, &snap)
	s.Equal("cart", snap.Screen)

	rec = s.do(http.MethodPost, "/session/logout", token, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	testutil.DecodeJSON(s.T(), rec, &snap)
	s.Equal("auth", snap.Screen)
	s.Zero(snap.Cart.Count)
}

func (s *RouterSuite) TestCloseSession() {
	token := s.openSession()

	rec := s.do(http.MethodDelete, "/session", token, nil)
	s.Require().Equal(http.StatusNoContent, rec.Code)

	rec = s.do(http.MethodGet, "/session", token, nil)
	s.Equal(http.StatusNotFound, rec.Code, "closed sessions are gone, not reset")
}

func (s *RouterSuite) TestNavigationRequiresLogin() {
	token := s.openSession()

	rec := s.do(http.MethodPost, "/session/view", token, map[string]any{"view": "cart"})
	s.Equal(http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodPost, "/session/view", token, map[string]any{"view": "auth"})
	s.Equal(http.StatusBadRequest, rec.Code, "auth is not a navigable view")
}

func (s *RouterSuite) TestAddToCartUnknownProduct() {
	token := s.openSession()
	s.Require().Equal(http.StatusOK, s.login(token, "demo@shop.com", "demo123").Code)

	rec := s.do(http.MethodPost, "/cart/items", token, map[string]any{"product_id": 999})
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *RouterSuite) TestEditFieldClearsError() {
	token := s.openSession()

	rec := s.login(token, "", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var resp submitBody
	testutil.DecodeJSON(s.T(), rec, &resp)
	s.Require().False(resp.Submitted)

	rec = s.do(http.MethodPost, "/forms/sign_in/fields", token, map[string]any{
		"field": "email", "value": "d",
	})
	s.Require().Equal(http.StatusOK, rec.Code)
	var snap snapshotBody
	testutil.DecodeJSON(s.T(), rec, &snap)
	form, ok := snap.Forms["sign_in"]
	s.Require().True(ok)
	s.NotContains(form.Errors, "email")
	s.Contains(form.Errors, "password")
}

func (s *RouterSuite) TestCatalogIsPublic() {
	rec := s.do(http.MethodGet, "/catalog", "", nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var resp struct {
		Products []struct {
			ID    int64  `json:"id"`
			Name  string `json:"name"`
			Price int64  `json:"price"`
		} `json:"products"`
	}
	testutil.DecodeJSON(s.T(), rec, &resp)
	s.Len(resp.Products, 6)
	s.Equal("Classic Shirt", resp.Products[0].Name)
}

func (s *RouterSuite) TestAuditTrail() {
	token := s.openSession()
	s.Require().Equal(http.StatusOK, s.login(token, "demo@shop.com", "demo123").Code)

	rec := s.do(http.MethodGet, "/audit/recent", "", nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var resp struct {
		Events []struct {
			Action string `json:"action"`
		} `json:"events"`
	}
	testutil.DecodeJSON(s.T(), rec, &resp)
	s.Require().NotEmpty(resp.Events)
	s.Equal("login_succeeded", resp.Events[len(resp.Events)-1].Action)
}

func (s *RouterSuite) TestHealthz() {
	rec := s.do(http.MethodGet, "/healthz", "", nil)
	s.Equal(http.StatusOK, rec.Code)
}
