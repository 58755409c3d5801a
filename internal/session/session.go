package session

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/peksoon/account/internal/config"
	"github.com/peksoon/account/internal/repository/api"
	"github.com/peksoon/account/internal/service"
	"github.com/peksoon/account/internal/transport"
)

// Session owns one backend client and every store built on it. Stores are
// created once per session and share nothing with other sessions.
type Session struct {
	client *transport.Client
	logger zerolog.Logger

	Categories     *service.CategoryStore
	PaymentMethods *service.PaymentMethodStore
	DepositPaths   *service.DepositPathStore
	Users          *service.UserStore
	Keywords       *service.KeywordStore
	Ledger         *service.LedgerStore
	Budgets        *service.BudgetStore
	Statistics     *service.StatisticsStore
}

// New wires the transport, the API repositories and the stores
func New(cfg *config.Config, logger zerolog.Logger) *Session {
	client := transport.NewClient(cfg.API.BaseURL, logger, transport.Options{
		Timeout:   cfg.API.Timeout,
		RateLimit: cfg.API.RateLimit,
		RateBurst: cfg.API.RateBurst,
	})

	entryRepo := api.NewEntryRepository(client)

	categories := service.NewCategoryStore(api.NewCategoryRepository(client), logger)
	paymentMethods := service.NewPaymentMethodStore(api.NewPaymentMethodRepository(client), logger)

	return &Session{
		client:         client,
		logger:         logger.With().Str("component", "session").Logger(),
		Categories:     categories,
		PaymentMethods: paymentMethods,
		DepositPaths:   service.NewDepositPathStore(api.NewDepositPathRepository(client), logger),
		Users:          service.NewUserStore(api.NewUserRepository(client), logger),
		Keywords:       service.NewKeywordStore(api.NewKeywordRepository(client), logger),
		Ledger: service.NewLedgerStore(entryRepo, categories, paymentMethods, service.LedgerDefaults{
			PaymentMethodID: cfg.Defaults.PaymentMethodID,
			DepositPath:     cfg.Defaults.DepositPath,
		}, logger),
		Budgets:    service.NewBudgetStore(api.NewBudgetRepository(client), entryRepo, logger),
		Statistics: service.NewStatisticsStore(api.NewStatisticsRepository(client), logger),
	}
}

// Prime loads the reference caches that entry updates resolve names against
func (s *Session) Prime(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.Categories.FetchAll(gctx, "")
		return err
	})
	g.Go(func() error {
		_, err := s.PaymentMethods.FetchAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("prime reference caches: %w", err)
	}

	s.logger.Debug().
		Int("categories", len(s.Categories.All())).
		Int("payment_methods", len(s.PaymentMethods.All())).
		Msg("Reference caches primed")
	return nil
}

// Close empties every cache and releases idle connections
func (s *Session) Close() {
	s.Categories.Clear()
	s.PaymentMethods.Clear()
	s.DepositPaths.Clear()
	s.Users.Clear()
	s.Keywords.Clear()
	s.Ledger.Clear()
	s.Budgets.Reset()
	s.Statistics.Clear()
	s.client.CloseIdleConnections()
}
