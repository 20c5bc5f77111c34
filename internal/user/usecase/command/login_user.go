package command

import (
	"fmt"

	"github.com/rasoilabs/pos-backend/internal/user/domain"
	"github.com/rasoilabs/pos-backend/pkg/apperror"
	"github.com/rasoilabs/pos-backend/pkg/auth"
)

// LoginUserCommand represents the command to log in a cashier or admin
type LoginUserCommand struct {
	Username string
	PIN      string
}

// LoginResponse represents the response after successful login
type LoginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// LoginUserHandler handles the login command
type LoginUserHandler struct {
	repo domain.UserRepository
}

// NewLoginUserHandler creates a new login handler
func NewLoginUserHandler(repo domain.UserRepository) *LoginUserHandler {
	return &LoginUserHandler{repo: repo}
}

// ErrInvalidCredentials is returned for both unknown users and wrong PINs,
// so callers cannot enumerate usernames.
var ErrInvalidCredentials = fmt.Errorf("invalid credentials")

// Handle executes the login command
func (h *LoginUserHandler) Handle(cmd LoginUserCommand) (*LoginResponse, error) {
	if cmd.Username == "" {
		return nil, apperror.Invalid("username is required")
	}
	if cmd.PIN == "" {
		return nil, apperror.Invalid("pin is required")
	}

	user, err := h.repo.FindByUsername(cmd.Username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if user.PIN != cmd.PIN {
		return nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginResponse{
		Token: token,
		User:  user,
	}, nil
}
