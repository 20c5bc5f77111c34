package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"github.com/rasoilabs/pos-backend/internal/user/domain"
)

type fakeUserRepo struct {
	users map[string]domain.User
}

func (f *fakeUserRepo) Create(u *domain.User) error { return nil }

func (f *fakeUserRepo) FindByID(id uint) (*domain.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			user := u
			return &user, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeUserRepo) FindByUsername(username string) (*domain.User, error) {
	u, ok := f.users[username]
	if !ok {
		return nil, errors.New("not found")
	}
	return &u, nil
}

func (f *fakeUserRepo) FindAll(limit, offset int) ([]domain.User, error) {
	var users []domain.User
	for _, u := range f.users {
		users = append(users, u)
	}
	return users, nil
}

func (f *fakeUserRepo) Count() (int64, error) { return int64(len(f.users)), nil }

func newTestRouter() *mux.Router {
	handler := NewUserHandler(&fakeUserRepo{users: map[string]domain.User{
		"admin":   {ID: 1, Username: "admin", PIN: "1234", Role: domain.RoleAdmin},
		"cashier": {ID: 2, Username: "cashier", PIN: "5678", Role: domain.RoleCashier},
	}})
	router := mux.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

func postLogin(t *testing.T, router *mux.Router, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestLoginEndpoint(t *testing.T) {
	router := newTestRouter()

	rec := postLogin(t, router, `{"username":"admin","pin":"1234"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			User struct {
				ID       uint   `json:"id"`
				Username string `json:"username"`
				Role     string `json:"role"`
			} `json:"user"`
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if !resp.Success || resp.Data.Token == "" {
		t.Errorf("response = %+v, want success with token", resp)
	}
	if resp.Data.User.Role != domain.RoleAdmin {
		t.Errorf("role = %q, want admin", resp.Data.User.Role)
	}
	if strings.Contains(rec.Body.String(), "1234") {
		t.Error("PIN leaked in login response")
	}
}

// The unauthorized body must not reveal whether the username exists.
func TestLoginEndpointGenericUnauthorized(t *testing.T) {
	router := newTestRouter()

	wrongPIN := postLogin(t, router, `{"username":"admin","pin":"0000"}`)
	unknownUser := postLogin(t, router, `{"username":"nobody","pin":"1234"}`)

	for _, rec := range []*httptest.ResponseRecorder{wrongPIN, unknownUser} {
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	}
	if wrongPIN.Body.String() != unknownUser.Body.String() {
		t.Errorf("bodies differ: %q vs %q", wrongPIN.Body.String(), unknownUser.Body.String())
	}
}

func TestLoginEndpointBadRequests(t *testing.T) {
	router := newTestRouter()

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"username":`},
		{"missing pin", `{"username":"admin"}`},
		{"missing username", `{"pin":"1234"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := postLogin(t, router, tt.body); rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestListUsersRequiresAdminToken(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 without token", rec.Code)
	}
}
