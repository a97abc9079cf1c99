package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"stadly/internal/customers"
	"stadly/internal/shared/config"
)

// --- Mock Repository ---

type mockRepo struct {
	createCustomerFn     func(ctx context.Context, customer *customers.Customer) error
	getCustomerByEmailFn func(ctx context.Context, email string) (*customers.Customer, error)
	getCustomerByIDFn    func(ctx context.Context, id string) (*customers.Customer, error)
	updatePasswordFn     func(ctx context.Context, customerID string, hashedPassword string) error
	emailExistsFn        func(ctx context.Context, email string) (bool, error)
}

func (m *mockRepo) CreateCustomer(ctx context.Context, customer *customers.Customer) error {
	return m.createCustomerFn(ctx, customer)
}
func (m *mockRepo) GetCustomerByEmail(ctx context.Context, email string) (*customers.Customer, error) {
	return m.getCustomerByEmailFn(ctx, email)
}
func (m *mockRepo) GetCustomerByID(ctx context.Context, id string) (*customers.Customer, error) {
	return m.getCustomerByIDFn(ctx, id)
}
func (m *mockRepo) UpdateCustomerPassword(ctx context.Context, customerID string, hashedPassword string) error {
	return m.updatePasswordFn(ctx, customerID, hashedPassword)
}
func (m *mockRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	return m.emailExistsFn(ctx, email)
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			JWTExpiresIn:     15 * time.Minute,
			RefreshExpiresIn: 24 * time.Hour,
		},
	}
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

// --- Tests ---

func TestRegister_HashesPasswordAndIssuesTokens(t *testing.T) {
	var created *customers.Customer
	repo := &mockRepo{
		emailExistsFn: func(ctx context.Context, email string) (bool, error) { return false, nil },
		createCustomerFn: func(ctx context.Context, customer *customers.Customer) error {
			customer.ID = uuid.New()
			created = customer
			return nil
		},
	}
	svc := NewService(repo, testConfig())

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		FirstName: "Priya",
		LastName:  "Sharma",
		Email:     "priya@example.com",
		Password:  "qwerty",
	})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.NotEqual(t, "qwerty", created.Password, "password must be stored hashed")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("qwerty")))
	assert.Equal(t, customers.RoleCustomer, created.Role)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, created.ID.String(), claims.CustomerID)
	assert.Equal(t, "access", claims.Type)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := &mockRepo{
		emailExistsFn: func(ctx context.Context, email string) (bool, error) { return true, nil },
	}
	svc := NewService(repo, testConfig())

	_, err := svc.Register(context.Background(), &RegisterRequest{
		FirstName: "Priya",
		LastName:  "Sharma",
		Email:     "priya@example.com",
		Password:  "qwerty",
	})

	assert.ErrorIs(t, err, ErrCustomerExists)
}

func TestLogin_Success(t *testing.T) {
	customerID := uuid.New()
	repo := &mockRepo{
		getCustomerByEmailFn: func(ctx context.Context, email string) (*customers.Customer, error) {
			return &customers.Customer{
				ID:       customerID,
				Email:    email,
				Password: hashed(t, "qwerty"),
				Role:     customers.RoleCustomer,
			}, nil
		},
	}
	svc := NewService(repo, testConfig())

	resp, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "priya@example.com",
		Password: "qwerty",
	})

	require.NoError(t, err)
	assert.Equal(t, customerID.String(), resp.Customer.ID)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := &mockRepo{
		getCustomerByEmailFn: func(ctx context.Context, email string) (*customers.Customer, error) {
			return &customers.Customer{Password: hashed(t, "qwerty")}, nil
		},
	}
	svc := NewService(repo, testConfig())

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "priya@example.com",
		Password: "hunter2",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	repo := &mockRepo{
		getCustomerByEmailFn: func(ctx context.Context, email string) (*customers.Customer, error) {
			return nil, ErrCustomerNotFound
		},
	}
	svc := NewService(repo, testConfig())

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "nobody@example.com",
		Password: "qwerty",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshToken_RejectsAccessToken(t *testing.T) {
	customerID := uuid.New()
	repo := &mockRepo{
		getCustomerByEmailFn: func(ctx context.Context, email string) (*customers.Customer, error) {
			return &customers.Customer{
				ID:       customerID,
				Email:    email,
				Password: hashed(t, "qwerty"),
				Role:     customers.RoleCustomer,
			}, nil
		},
	}
	svc := NewService(repo, testConfig())

	resp, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "priya@example.com",
		Password: "qwerty",
	})
	require.NoError(t, err)

	_, err = svc.RefreshToken(context.Background(), resp.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshToken_IssuesNewPair(t *testing.T) {
	customerID := uuid.New()
	customer := &customers.Customer{
		ID:       customerID,
		Email:    "priya@example.com",
		Password: hashed(t, "qwerty"),
		Role:     customers.RoleCustomer,
	}
	repo := &mockRepo{
		getCustomerByEmailFn: func(ctx context.Context, email string) (*customers.Customer, error) {
			return customer, nil
		},
		getCustomerByIDFn: func(ctx context.Context, id string) (*customers.Customer, error) {
			return customer, nil
		},
	}
	svc := NewService(repo, testConfig())

	resp, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "priya@example.com",
		Password: "qwerty",
	})
	require.NoError(t, err)

	pair, err := svc.RefreshToken(context.Background(), resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
}

func TestValidateToken_RejectsTampered(t *testing.T) {
	svc := NewService(&mockRepo{}, testConfig())

	_, err := svc.ValidateToken("eyJhbGciOiJIUzI1NiJ9.not-a-real-token.sig")

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestChangePassword_WrongCurrentPassword(t *testing.T) {
	customerID := uuid.New()
	repo := &mockRepo{
		getCustomerByIDFn: func(ctx context.Context, id string) (*customers.Customer, error) {
			return &customers.Customer{ID: customerID, Password: hashed(t, "qwerty")}, nil
		},
	}
	svc := NewService(repo, testConfig())

	err := svc.ChangePassword(context.Background(), customerID.String(), &ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "new-password",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestChangePassword_StoresNewHash(t *testing.T) {
	customerID := uuid.New()
	var storedHash string
	repo := &mockRepo{
		getCustomerByIDFn: func(ctx context.Context, id string) (*customers.Customer, error) {
			return &customers.Customer{ID: customerID, Password: hashed(t, "qwerty")}, nil
		},
		updatePasswordFn: func(ctx context.Context, id string, hash string) error {
			storedHash = hash
			return nil
		},
	}
	svc := NewService(repo, testConfig())

	err := svc.ChangePassword(context.Background(), customerID.String(), &ChangePasswordRequest{
		CurrentPassword: "qwerty",
		NewPassword:     "new-password",
	})

	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(storedHash), []byte("new-password")))
}
