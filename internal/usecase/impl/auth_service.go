// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "authsvc/internal/delivery/context"
	"authsvc/internal/domain/entity"
	domainerrors "authsvc/internal/domain/errors"
	"authsvc/internal/domain/repository"
	"authsvc/internal/domain/service"
	"authsvc/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	accountRepo  repository.AccountRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	publisher    service.EventPublisher
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	AccountRepo  repository.AccountRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Publisher    service.EventPublisher
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		accountRepo:  params.AccountRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		publisher:    params.Publisher,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register looks the username up, hashes the password and inserts the account.
// The lookup only short-circuits the common case; the store's unique indexes decide races.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("username", input.Username))

	existing, err := srv.accountRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		return nil, errors.Wrap(err, "failed to look up username during registration")
	}
	if existing != nil {
		srv.log(ctx).Warn("Username already registered", slog.String("username", input.Username))

		return nil, domainerrors.ErrUsernameTaken.WrapMessage("registration failed")
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if errors.Is(err, service.ErrPasswordTooLong) {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("password exceeds hasher limit")
	}
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	account := &entity.Account{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
	}

	if err := srv.accountRepo.Insert(ctx, account); err != nil {
		return nil, srv.mapInsertError(ctx, input, err)
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("accountID", account.ID))
	srv.publishRegistered(ctx, account)

	return &usecase.RegisterOutput{Account: account}, nil
}

// mapInsertError turns a unique-index rejection into the matching conflict error.
func (srv *authService) mapInsertError(ctx context.Context, input *usecase.RegisterInput, err error) error {
	var dup *repository.DuplicateKeyError
	if !errors.As(err, &dup) {
		srv.log(ctx).Error("Failed to insert account", slog.String("username", input.Username), slog.Any("error", err))

		return errors.Wrap(err, "failed to insert account during registration")
	}

	srv.log(ctx).Warn("Insert rejected by unique index", slog.String("field", dup.Field), slog.String("username", input.Username))
	if dup.Field == repository.FieldEmail {
		return domainerrors.ErrEmailTaken.WrapMessage("registration failed")
	}

	return domainerrors.ErrUsernameTaken.WrapMessage("registration failed")
}

// publishRegistered announces the new account. Failures are logged and never fail the registration.
func (srv *authService) publishRegistered(ctx context.Context, account *entity.Account) {
	if srv.publisher == nil {
		return
	}

	event := &service.AccountRegisteredEvent{
		RequestID:    deliverycontext.GetRequestIDFromContext(ctx),
		AccountID:    account.ID.String(),
		Username:     account.Username,
		Email:        account.Email,
		RegisteredAt: account.CreatedAt,
	}
	if err := srv.publisher.PublishAccountRegistered(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish account registered event", slog.Any("accountID", account.ID), slog.Any("error", err))
	}
}

// Login verifies the password against the stored hash and issues a token.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Debug("Starting login", slog.String("username", input.Username))

	account, err := srv.accountRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		return nil, errors.Wrap(err, "failed to look up username during login")
	}
	if account == nil {
		return nil, domainerrors.ErrAccountNotFound.WrapMessage("login failed")
	}

	ok, err := srv.hasher.Check(input.Password, account.PasswordHash)
	if err != nil {
		srv.log(ctx).Error("Stored password hash is unusable", slog.Any("accountID", account.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to check password")
	}
	if !ok {
		srv.log(ctx).Warn("Login with invalid password", slog.String("username", input.Username))

		return nil, domainerrors.ErrInvalidPassword.WrapMessage("login failed")
	}

	token, err := srv.tokenService.Issue(account.ID, account.Username)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue token")
	}

	srv.log(ctx).Debug("Login succeeded", slog.Any("accountID", account.ID))

	return &usecase.LoginOutput{Token: token}, nil
}

// Authenticate verifies a presented token. It touches no store.
func (srv *authService) Authenticate(ctx context.Context, token string) (*service.Claims, error) {
	if token == "" {
		return nil, domainerrors.ErrAccessDenied.WrapMessage("missing token")
	}

	claims, err := srv.tokenService.Verify(token)
	if err != nil {
		srv.log(ctx).Debug("Token rejected", slog.Any("error", err))

		return nil, domainerrors.ErrInvalidToken.WrapMessage(err.Error())
	}

	return claims, nil
}
