package services

import (
	"github.com/SscSPs/trade_journal_app/internal/core/ports/events"
	portsrepo "github.com/SscSPs/trade_journal_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/trade_journal_app/internal/core/ports/services"
	"github.com/SscSPs/trade_journal_app/internal/core/ports/storage"
	"github.com/SscSPs/trade_journal_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// publisher may be nil, in which case entry events are dropped.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, imageStore storage.ImageStore, publisher events.EntryEventPublisher) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.TokenService = NewTokenService(cfg)
	container.JournalEntry = NewJournalEntryService(
		repos.JournalEntryRepo,
		imageStore,
		WithEntryEventPublisher(publisher),
	)
	container.Performance = NewPerformanceService(
		repos.JournalEntryRepo,
		WithReportLocation(cfg.ReportLocation),
	)

	return container
}
