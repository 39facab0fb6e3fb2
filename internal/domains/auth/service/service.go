//go:generate mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks
package service

import (
	"context"
	"fmt"

	"tourbook/infras/jwt"
	"tourbook/infras/otel"
	"tourbook/internal/domains/auth/model/dto"
	userDto "tourbook/internal/domains/user/model/dto"
	userService "tourbook/internal/domains/user/service"
	"tourbook/shared/constant"
	"tourbook/shared/failure"
	"tourbook/shared/password"

	"github.com/rs/zerolog/log"
)

const (
	errInvalidCredentials = "Invalid credentials"
	errInvalidRefresh     = "invalid refresh token"
)

type Auth interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
	Profile(ctx context.Context, userID string) (userDto.UserResponse, error)
	Register(ctx context.Context, req userDto.CreateUserRequest) (string, error)
}

type serviceImpl struct {
	users      userService.User
	jwtService jwt.JWT
	otel       otel.Otel
}

func New(users userService.User, jwt jwt.JWT, otel otel.Otel) Auth {
	return &serviceImpl{
		users:      users,
		jwtService: jwt,
		otel:       otel,
	}
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return res, err
	}

	if user.ID == constant.Empty {
		log.Warn().Str("email", req.Email).Msg("login attempt with non-existent email")

		return res, failure.Unauthorized(errInvalidCredentials)
	}

	if err = password.Verify(req.Password, user.Password); err != nil {
		log.Warn().Str("email", req.Email).Msg("login attempt with wrong password")

		return res, failure.Unauthorized(errInvalidCredentials)
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(jwt.Subject{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	res.FromTokenPair(tokenPair)
	res.User.FromModel(user)

	return res, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer scope.TraceIfError(err)

	tokenPair, err := s.jwtService.RefreshTokens(req.Token())
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh tokens")

		return res, failure.Unauthorized(errInvalidRefresh)
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) Profile(ctx context.Context, userID string) (res userDto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Profile")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.users.Get(ctx, userID)
}

// Register is the admin-only path for creating accounts.
func (s *serviceImpl) Register(ctx context.Context, req userDto.CreateUserRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.users.Create(ctx, req)
}
