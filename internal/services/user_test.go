package services_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/student-housing/internal/errs"
	"github.com/sbilibin2017/student-housing/internal/models"
	"github.com/sbilibin2017/student-housing/internal/policy"
	"github.com/sbilibin2017/student-housing/internal/services"
)

type userMocks struct {
	reader   *services.MockUserReader
	writer   *services.MockUserWriter
	identity *services.MockIdentityProvider
	jwt      *services.MockJWTGenerator
}

func newUserService(t *testing.T) (*services.UserService, userMocks) {
	ctrl := gomock.NewController(t)
	m := userMocks{
		reader:   services.NewMockUserReader(ctrl),
		writer:   services.NewMockUserWriter(ctrl),
		identity: services.NewMockIdentityProvider(ctrl),
		jwt:      services.NewMockJWTGenerator(ctrl),
	}
	return services.NewUserService(m.reader, m.writer, m.identity, m.jwt, []string{"@uc.cl"}), m
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()
	in := models.RegisterInput{Email: "ana@uc.cl", Name: "Ana", Password: "s3cret!", Role: "estudiante"}

	t.Run("success", func(t *testing.T) {
		svc, m := newUserService(t)
		m.reader.EXPECT().GetByEmail(ctx, "ana@uc.cl").Return(nil, nil)
		m.identity.EXPECT().ProvisionIdentity(ctx, "ana@uc.cl", "s3cret!", "Ana").
			Return(&models.Identity{ExternalID: "local|1", Email: "ana@uc.cl"}, nil)
		m.writer.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, u *models.User) (*models.User, error) {
				assert.Equal(t, models.RoleStudent, u.Role)
				assert.Equal(t, "local|1", u.ExternalID)
				out := *u
				out.ID = 1
				return &out, nil
			})

		u, err := svc.Register(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, int64(1), u.ID)
	})

	t.Run("student outside institutional domain", func(t *testing.T) {
		svc, _ := newUserService(t)
		bad := in
		bad.Email = "ana@gmail.com"

		_, err := svc.Register(ctx, bad)
		assert.ErrorIs(t, err, policy.ErrInvalidEmail)
	})

	t.Run("owner is exempt from the domain rule", func(t *testing.T) {
		svc, m := newUserService(t)
		owner := models.RegisterInput{Email: "pedro@gmail.com", Name: "Pedro", Password: "x", Role: "owner"}
		m.reader.EXPECT().GetByEmail(ctx, "pedro@gmail.com").Return(nil, nil)
		m.identity.EXPECT().ProvisionIdentity(ctx, gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&models.Identity{ExternalID: "local|2"}, nil)
		m.writer.EXPECT().Create(ctx, gomock.Any()).Return(&models.User{ID: 2, Role: models.RoleOwner}, nil)

		_, err := svc.Register(ctx, owner)
		require.NoError(t, err)
	})

	t.Run("unknown user type", func(t *testing.T) {
		svc, _ := newUserService(t)
		bad := in
		bad.Role = "admin"

		_, err := svc.Register(ctx, bad)
		assert.ErrorIs(t, err, services.ErrInvalidUserType)
	})

	t.Run("email taken", func(t *testing.T) {
		svc, m := newUserService(t)
		m.reader.EXPECT().GetByEmail(ctx, "ana@uc.cl").Return(&models.User{ID: 1}, nil)

		_, err := svc.Register(ctx, in)
		assert.ErrorIs(t, err, services.ErrUserAlreadyExists)
	})

	t.Run("identity provider rejects", func(t *testing.T) {
		svc, m := newUserService(t)
		upstream := errs.Upstream(http.StatusBadRequest, "password is too weak", nil)
		m.reader.EXPECT().GetByEmail(ctx, "ana@uc.cl").Return(nil, nil)
		m.identity.EXPECT().ProvisionIdentity(ctx, gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, upstream)

		_, err := svc.Register(ctx, in)
		assert.Equal(t, http.StatusBadRequest, errs.HTTPStatus(err))
		assert.Equal(t, "password is too weak", errs.PublicMessage(err))
	})

	t.Run("concurrent registration", func(t *testing.T) {
		svc, m := newUserService(t)
		m.reader.EXPECT().GetByEmail(ctx, "ana@uc.cl").Return(nil, nil)
		m.identity.EXPECT().ProvisionIdentity(ctx, gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&models.Identity{ExternalID: "local|1"}, nil)
		m.writer.EXPECT().Create(ctx, gomock.Any()).Return(nil, fmt.Errorf("insert: %w", errs.ErrConflict))

		_, err := svc.Register(ctx, in)
		assert.ErrorIs(t, err, services.ErrUserAlreadyExists)
	})
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()
	user := &models.User{ID: 1, ExternalID: "auth0|1", Role: models.RoleStudent}

	t.Run("success", func(t *testing.T) {
		svc, m := newUserService(t)
		m.identity.EXPECT().VerifyCredentials(ctx, "ana@uc.cl", "pw").
			Return(&models.Identity{ExternalID: "auth0|1", EmailVerified: true}, nil)
		m.reader.EXPECT().GetByExternalID(ctx, "auth0|1").Return(user, nil)
		m.jwt.EXPECT().Generate(ctx, user).Return("token", nil)

		s, err := svc.Login(ctx, "ana@uc.cl", "pw")
		require.NoError(t, err)
		assert.Equal(t, "token", s.Token)
		assert.Equal(t, user, s.User)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		svc, m := newUserService(t)
		m.identity.EXPECT().VerifyCredentials(ctx, gomock.Any(), gomock.Any()).
			Return(nil, errs.Upstream(http.StatusUnauthorized, "invalid credentials", nil))

		_, err := svc.Login(ctx, "ana@uc.cl", "bad")
		assert.Equal(t, http.StatusUnauthorized, errs.HTTPStatus(err))
	})

	t.Run("email not verified", func(t *testing.T) {
		svc, m := newUserService(t)
		m.identity.EXPECT().VerifyCredentials(ctx, gomock.Any(), gomock.Any()).
			Return(&models.Identity{ExternalID: "auth0|1"}, nil)

		_, err := svc.Login(ctx, "ana@uc.cl", "pw")
		assert.ErrorIs(t, err, services.ErrEmailNotVerified)
		assert.Equal(t, http.StatusForbidden, errs.HTTPStatus(err))
	})

	t.Run("identity without local user", func(t *testing.T) {
		svc, m := newUserService(t)
		m.identity.EXPECT().VerifyCredentials(ctx, gomock.Any(), gomock.Any()).
			Return(&models.Identity{ExternalID: "auth0|9", EmailVerified: true}, nil)
		m.reader.EXPECT().GetByExternalID(ctx, "auth0|9").Return(nil, nil)

		_, err := svc.Login(ctx, "ana@uc.cl", "pw")
		assert.ErrorIs(t, err, services.ErrUserNotRegistered)
		assert.Equal(t, http.StatusUnauthorized, errs.HTTPStatus(err))
	})

	t.Run("token error", func(t *testing.T) {
		svc, m := newUserService(t)
		m.identity.EXPECT().VerifyCredentials(ctx, gomock.Any(), gomock.Any()).
			Return(&models.Identity{ExternalID: "auth0|1", EmailVerified: true}, nil)
		m.reader.EXPECT().GetByExternalID(ctx, "auth0|1").Return(user, nil)
		m.jwt.EXPECT().Generate(ctx, user).Return("", errors.New("sign error"))

		_, err := svc.Login(ctx, "ana@uc.cl", "pw")
		assert.EqualError(t, err, "sign error")
	})
}

func TestUserService_Me(t *testing.T) {
	ctx := context.Background()
	svc, m := newUserService(t)

	m.reader.EXPECT().GetByExternalID(ctx, "local|1").Return(&models.User{ID: 1}, nil)
	u, err := svc.Me(ctx, "local|1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)

	m.reader.EXPECT().GetByExternalID(ctx, "local|2").Return(nil, nil)
	_, err = svc.Me(ctx, "local|2")
	assert.ErrorIs(t, err, services.ErrUserNotFound)
}

func TestUserService_UpdateMe(t *testing.T) {
	ctx := context.Background()

	t.Run("role change", func(t *testing.T) {
		svc, m := newUserService(t)
		m.writer.EXPECT().UpdateByExternalID(ctx, "local|1", models.UserPatch{Email: "ana@gmail.com", Name: "Ana", Role: models.RoleOwner}).
			Return(&models.User{ID: 1, Role: models.RoleOwner}, nil)

		u, err := svc.UpdateMe(ctx, "local|1", models.UserPatch{Email: " ana@gmail.com ", Name: "Ana", Role: "propietario"})
		require.NoError(t, err)
		assert.Equal(t, models.RoleOwner, u.Role)
	})

	t.Run("missing user is a bad request", func(t *testing.T) {
		svc, m := newUserService(t)
		m.writer.EXPECT().UpdateByExternalID(ctx, "local|9", gomock.Any()).Return(nil, nil)

		_, err := svc.UpdateMe(ctx, "local|9", models.UserPatch{Email: "x@uc.cl", Name: "X", Role: models.RoleStudent})
		assert.ErrorIs(t, err, services.ErrProfileNotFound)
		assert.Equal(t, http.StatusBadRequest, errs.HTTPStatus(err))
	})

	t.Run("student email policy", func(t *testing.T) {
		svc, _ := newUserService(t)

		_, err := svc.UpdateMe(ctx, "local|1", models.UserPatch{Email: "x@gmail.com", Name: "X", Role: models.RoleStudent})
		assert.ErrorIs(t, err, policy.ErrInvalidEmail)
	})
}
