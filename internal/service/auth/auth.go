package auth

import (
	"context"
	"time"

	xerrors "fleetflow-service/internal/pkg/errors"
	"fleetflow-service/internal/pkg/session"
	"fleetflow-service/internal/pkg/token"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Operator is one dashboard account.
type Operator struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	passwordHash []byte
}

// LoginResult is what a successful login returns to the handler.
type LoginResult struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Service authenticates dashboard operators. Accounts are a fixed roster;
// there is no self-service signup.
type Service struct {
	operators map[string]*Operator
	roster    []*Operator
	tokens    *token.Manager
	sessions  *session.Manager
	logger    *zap.Logger
}

// Account seeds one operator with a plaintext password, hashed at startup.
type Account struct {
	Email    string
	Password string
	Name     string
	Role     string
}

// DemoAccounts is the default operator roster.
func DemoAccounts() []Account {
	return []Account{
		{Email: "manager@fleetflow.com", Password: "fleet123", Name: "Arjun Mehta", Role: "Fleet Manager"},
		{Email: "dispatch@fleetflow.com", Password: "fleet123", Name: "Priya Sharma", Role: "Dispatcher"},
		{Email: "safety@fleetflow.com", Password: "fleet123", Name: "Vikram Singh", Role: "Safety Officer"},
		{Email: "finance@fleetflow.com", Password: "fleet123", Name: "Neha Gupta", Role: "Financial Analyst"},
	}
}

func NewService(accounts []Account, tokens *token.Manager, sessions *session.Manager, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	operators := make(map[string]*Operator, len(accounts))
	roster := make([]*Operator, 0, len(accounts))
	for _, a := range accounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(a.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, xerrors.Wrap(err, "hash operator password")
		}
		op := &Operator{
			Email:        a.Email,
			Name:         a.Name,
			Role:         a.Role,
			passwordHash: hash,
		}
		operators[a.Email] = op
		roster = append(roster, op)
	}

	return &Service{
		operators: operators,
		roster:    roster,
		tokens:    tokens,
		sessions:  sessions,
		logger:    logger,
	}, nil
}

// Login checks credentials, signs a token and opens a session.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	op, ok := s.operators[email]
	if !ok {
		return nil, xerrors.Unauthorizedf("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword(op.passwordHash, []byte(password)); err != nil {
		return nil, xerrors.Unauthorizedf("invalid email or password")
	}

	signed, jti, err := s.tokens.Generate(op.Email, op.Name, op.Role)
	if err != nil {
		return nil, err
	}

	expiresAt := time.Now().Add(s.tokens.TTL())
	if err := s.sessions.Create(ctx, &session.Data{
		JTI:       jti,
		Email:     op.Email,
		Name:      op.Name,
		Role:      op.Role,
		LoginAt:   time.Now(),
		ExpiresAt: expiresAt,
	}); err != nil {
		return nil, err
	}

	s.logger.Info("operator logged in", zap.String("email", op.Email), zap.String("role", op.Role))
	return &LoginResult{
		Token:     signed,
		Email:     op.Email,
		Name:      op.Name,
		Role:      op.Role,
		ExpiresAt: expiresAt,
	}, nil
}

// Validate verifies a token signature and its live session.
func (s *Service) Validate(ctx context.Context, tokenString string) (*token.Claims, error) {
	claims, err := s.tokens.Verify(tokenString)
	if err != nil {
		return nil, err
	}
	if _, err := s.sessions.Get(ctx, claims.ID); err != nil {
		return nil, err
	}
	return claims, nil
}

// Logout deletes the session behind a token jti.
func (s *Service) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.tokens.Verify(tokenString)
	if err != nil {
		return err
	}
	if err := s.sessions.Delete(ctx, claims.ID); err != nil {
		return err
	}
	s.logger.Info("operator logged out", zap.String("email", claims.Subject))
	return nil
}

// Roles lists the roster for the login screen, without credentials.
func (s *Service) Roles() []Operator {
	out := make([]Operator, 0, len(s.roster))
	for _, op := range s.roster {
		out = append(out, Operator{Email: op.Email, Name: op.Name, Role: op.Role})
	}
	return out
}
