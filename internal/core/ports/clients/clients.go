package clients

// ClientProvider holds the outbound clients needed by services.
type ClientProvider struct {
	RateProvider RateProvider
	Ledger       AccountLedger
	Publisher    TransferEventPublisher
}
