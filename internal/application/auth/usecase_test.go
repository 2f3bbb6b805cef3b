package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atokurn/financex-sub001/internal/application/auth"
	"github.com/atokurn/financex-sub001/internal/application/dto"
	"github.com/atokurn/financex-sub001/internal/domain"
	"github.com/atokurn/financex-sub001/internal/domain/entity"
	pkgjwt "github.com/atokurn/financex-sub001/pkg/jwt"
)

type memUserRepo struct {
	users map[string]entity.User // por email
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]entity.User)}
}

func (r *memUserRepo) Create(u *entity.User) error {
	if _, ok := r.users[u.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	r.users[u.Email] = *u
	return nil
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindByEmail(email string) (*entity.User, error) {
	if u, ok := r.users[email]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *memUserRepo) Update(u *entity.User) error {
	r.users[u.Email] = *u
	return nil
}

func (r *memUserRepo) List(limit, offset int) ([]*entity.User, error) { return nil, nil }

func (r *memUserRepo) Delete(id string) error { return nil }

var testJWTCfg = auth.JWTConfig{
	Secret:     "test-secret-key-for-unit-tests",
	ExpMinutes: 60,
	Issuer:     "financex-test",
}

func TestRegisterUser(t *testing.T) {
	repo := newMemUserRepo()
	uc := auth.NewAuthUseCase(repo, testJWTCfg)

	out, err := uc.RegisterUser(dto.RegisterRequest{
		Email:    "ana@financex.local",
		Password: "secreta-123",
		Name:     "Ana",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleStaff, out.Role, "rol por defecto staff")
	assert.Equal(t, "active", out.Status)

	stored := repo.users["ana@financex.local"]
	assert.NotEqual(t, "secreta-123", stored.PasswordHash, "el password nunca se guarda plano")
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	repo := newMemUserRepo()
	uc := auth.NewAuthUseCase(repo, testJWTCfg)

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@financex.local", Password: "secreta-123"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(dto.RegisterRequest{Email: "ana@financex.local", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterUser_Validaciones(t *testing.T) {
	uc := auth.NewAuthUseCase(newMemUserRepo(), testJWTCfg)

	_, err := uc.RegisterUser(dto.RegisterRequest{Password: "secreta-123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin email")

	_, err = uc.RegisterUser(dto.RegisterRequest{Email: "ana@financex.local"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin password")

	_, err = uc.RegisterUser(dto.RegisterRequest{
		Email: "ana@financex.local", Password: "secreta-123", Role: "superuser",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "rol desconocido")
}

func TestLogin(t *testing.T) {
	repo := newMemUserRepo()
	uc := auth.NewAuthUseCase(repo, testJWTCfg)

	_, err := uc.RegisterUser(dto.RegisterRequest{
		Email: "ana@financex.local", Password: "secreta-123", Role: entity.RoleAdmin,
	})
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Email: "ana@financex.local", Password: "secreta-123"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)

	userID, email, role, err := pkgjwt.Parse(testJWTCfg.Secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, userID)
	assert.Equal(t, "ana@financex.local", email)
	assert.Equal(t, entity.RoleAdmin, role)
}

func TestLogin_Errores(t *testing.T) {
	repo := newMemUserRepo()
	uc := auth.NewAuthUseCase(repo, testJWTCfg)

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@financex.local", Password: "secreta-123"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "nadie@financex.local", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.Login(dto.LoginRequest{Email: "ana@financex.local", Password: "clave-mala"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// Usuario suspendido no puede entrar aunque la clave sea correcta
	u := repo.users["ana@financex.local"]
	u.Status = "suspended"
	repo.users["ana@financex.local"] = u

	_, err = uc.Login(dto.LoginRequest{Email: "ana@financex.local", Password: "secreta-123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
