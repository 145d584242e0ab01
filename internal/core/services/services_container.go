package services

import (
	"github.com/SscSPs/fx_transfer_app/internal/core/ports/clients"
	portsrepo "github.com/SscSPs/fx_transfer_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fx_transfer_app/internal/core/ports/services"
	"github.com/SscSPs/fx_transfer_app/internal/metrics"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, cl clients.ClientProvider, m *metrics.TransferMetrics) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The rate service is the fresh-rate path for every other service
	container.ExchangeRate = NewExchangeRateService(repos.RateStore, cl.RateProvider, WithRateMetrics(m))
	container.Conversion = NewConversionService(container.ExchangeRate)
	container.Policy = NewPolicyService(repos.PolicyRepo)

	opts := []TransferServiceOption{WithTransferMetrics(m)}
	if cl.Publisher != nil {
		opts = append(opts, WithTransferEventPublisher(cl.Publisher))
	}
	container.Transfer = NewTransferService(
		cl.Ledger,
		container.ExchangeRate,
		container.Policy,
		repos.TransferRepo,
		opts...,
	)

	return container
}
