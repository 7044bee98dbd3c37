package auth

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-cms/pkg/apperror"
	"github.com/khoahotran/portfolio-cms/pkg/auth"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

// Session is the part of the workspace the auth use cases drive.
type Session interface {
	Login(username, password string) (uint64, bool)
	Logout()
}

type LoginUseCase struct {
	session Session
	jwtSvc  *auth.JWTService
	logger  logger.Logger
}

func NewLoginUseCase(session Session, jwtSvc *auth.JWTService, log logger.Logger) *LoginUseCase {
	return &LoginUseCase{
		session: session,
		jwtSvc:  jwtSvc,
		logger:  log,
	}
}

type LoginInput struct {
	Username string
	Password string
}

type LoginOutput struct {
	AccessToken string
}

var tracer = otel.Tracer("auth_usecase")

func (uc *LoginUseCase) Execute(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	_, span := tracer.Start(ctx, "Login")
	defer span.End()

	epoch, ok := uc.session.Login(input.Username, input.Password)
	if !ok {
		err := apperror.NewUnauthorized("username or password is incorrect", nil)
		span.RecordError(err)
		return nil, err
	}

	token, err := uc.jwtSvc.GenerateToken(input.Username, epoch)
	if err != nil {
		uc.logger.Error("Failed to generate token", err, zap.String("username", input.Username))
		err = apperror.NewInternal("failed to generate token", err)
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int64("session.epoch", int64(epoch)))
	return &LoginOutput{AccessToken: token}, nil
}

type LogoutUseCase struct {
	session Session
}

func NewLogoutUseCase(session Session) *LogoutUseCase {
	return &LogoutUseCase{session: session}
}

// Execute ends the owner session; every token issued so far stops working.
func (uc *LogoutUseCase) Execute(ctx context.Context) {
	_, span := tracer.Start(ctx, "Logout")
	defer span.End()
	uc.session.Logout()
}
