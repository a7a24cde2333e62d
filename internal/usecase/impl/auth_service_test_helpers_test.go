package impl

import (
	"io"
	"log/slog"
	"testing"

	mockRepo "authsvc/internal/mocks/repository"
	mockSvc "authsvc/internal/mocks/service"
	"authsvc/internal/usecase"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// authServiceFixtures holds the service under test and its mocked collaborators.
type authServiceFixtures struct {
	service      usecase.AuthUsecase
	accountRepo  *mockRepo.MockAccountRepository
	hasher       *mockSvc.MockPasswordHasher
	tokenService *mockSvc.MockTokenService
	publisher    *mockSvc.MockEventPublisher
}

func createTestAuthService(t *testing.T) authServiceFixtures {
	accountRepo := mockRepo.NewMockAccountRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenService := mockSvc.NewMockTokenService(t)
	publisher := mockSvc.NewMockEventPublisher(t)

	service := NewAuthService(AuthServiceParams{
		AccountRepo:  accountRepo,
		Hasher:       hasher,
		TokenService: tokenService,
		Publisher:    publisher,
		Logger:       newDiscardLogger(),
	})

	return authServiceFixtures{
		service:      service,
		accountRepo:  accountRepo,
		hasher:       hasher,
		tokenService: tokenService,
		publisher:    publisher,
	}
}
