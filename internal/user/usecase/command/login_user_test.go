package command

import (
	"errors"
	"testing"

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

func (f *fakeUserRepo) FindAll(limit, offset int) ([]domain.User, error) { return nil, nil }
func (f *fakeUserRepo) Count() (int64, error)                            { return int64(len(f.users)), nil }

func newLoginHandler() *LoginUserHandler {
	return NewLoginUserHandler(&fakeUserRepo{users: map[string]domain.User{
		"admin": {ID: 1, Username: "admin", PIN: "1234", Role: domain.RoleAdmin},
	}})
}

func TestLoginSuccess(t *testing.T) {
	handler := newLoginHandler()

	resp, err := handler.Handle(LoginUserCommand{Username: "admin", PIN: "1234"})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a token")
	}
	if resp.User.Username != "admin" || resp.User.Role != domain.RoleAdmin {
		t.Errorf("user = %+v, want admin/admin", resp.User)
	}
}

// Wrong PIN and unknown username must be indistinguishable to the caller.
func TestLoginFailuresAreUniform(t *testing.T) {
	handler := newLoginHandler()

	_, wrongPIN := handler.Handle(LoginUserCommand{Username: "admin", PIN: "9999"})
	_, unknownUser := handler.Handle(LoginUserCommand{Username: "ghost", PIN: "1234"})

	if !errors.Is(wrongPIN, ErrInvalidCredentials) {
		t.Errorf("wrong PIN error = %v, want ErrInvalidCredentials", wrongPIN)
	}
	if !errors.Is(unknownUser, ErrInvalidCredentials) {
		t.Errorf("unknown user error = %v, want ErrInvalidCredentials", unknownUser)
	}
	if wrongPIN.Error() != unknownUser.Error() {
		t.Errorf("error messages differ: %q vs %q", wrongPIN.Error(), unknownUser.Error())
	}
}

func TestLoginMissingFields(t *testing.T) {
	handler := newLoginHandler()

	if _, err := handler.Handle(LoginUserCommand{PIN: "1234"}); err == nil {
		t.Error("expected error for missing username")
	}
	if _, err := handler.Handle(LoginUserCommand{Username: "admin"}); err == nil {
		t.Error("expected error for missing pin")
	}
}
