package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	database "github.com/workyudha21-cmd/LedgerWallet/db"
	"github.com/workyudha21-cmd/LedgerWallet/internal/ledger/application"
	"github.com/workyudha21-cmd/LedgerWallet/internal/ledger/domain"
	"github.com/workyudha21-cmd/LedgerWallet/internal/ledger/infrastructure"
	"github.com/workyudha21-cmd/LedgerWallet/internal/ledger/interfaces"
	"github.com/workyudha21-cmd/LedgerWallet/internal/logger"
)

type Server struct {
	router             *http.ServeMux
	transactionHandler *interfaces.TransactionHandler
	accountHandler     *interfaces.AccountHandler
	categoryHandler    *interfaces.CategoryHandler
	budgetHandler      *interfaces.BudgetHandler
	goalHandler        *interfaces.GoalHandler
	debtHandler        *interfaces.DebtHandler
	recurringHandler   *interfaces.RecurringHandler
	reportHandler      *interfaces.ReportHandler
}

func NewServer(service *application.LedgerService, sessions *application.SessionManager) *Server {
	return &Server{
		router:             http.NewServeMux(),
		transactionHandler: interfaces.NewTransactionHandler(service),
		accountHandler:     interfaces.NewAccountHandler(service),
		categoryHandler:    interfaces.NewCategoryHandler(service),
		budgetHandler:      interfaces.NewBudgetHandler(service),
		goalHandler:        interfaces.NewGoalHandler(service),
		debtHandler:        interfaces.NewDebtHandler(service),
		recurringHandler:   interfaces.NewRecurringHandler(service),
		reportHandler:      interfaces.NewReportHandler(service, sessions),
	}
}

func (s *Server) RegisterRoutes() {
	s.router.HandleFunc("GET /api/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ready"}`))
	})

	s.router.HandleFunc("POST /api/transactions", s.transactionHandler.Create)
	s.router.HandleFunc("GET /api/transactions", s.transactionHandler.List)
	s.router.HandleFunc("PUT /api/transactions/{id}", s.transactionHandler.Update)
	s.router.HandleFunc("DELETE /api/transactions/{id}", s.transactionHandler.Delete)

	s.router.HandleFunc("POST /api/accounts", s.accountHandler.Create)
	s.router.HandleFunc("GET /api/accounts", s.accountHandler.List)
	s.router.HandleFunc("PUT /api/accounts/{id}", s.accountHandler.Update)
	s.router.HandleFunc("DELETE /api/accounts/{id}", s.accountHandler.Delete)

	s.router.HandleFunc("POST /api/categories", s.categoryHandler.Create)
	s.router.HandleFunc("GET /api/categories", s.categoryHandler.List)
	s.router.HandleFunc("POST /api/categories/seed", s.categoryHandler.Seed)
	s.router.HandleFunc("DELETE /api/categories/{id}", s.categoryHandler.Delete)

	s.router.HandleFunc("PUT /api/budgets", s.budgetHandler.Set)
	s.router.HandleFunc("GET /api/budgets", s.budgetHandler.List)
	s.router.HandleFunc("GET /api/budgets/progress", s.budgetHandler.Progress)
	s.router.HandleFunc("DELETE /api/budgets/{id}", s.budgetHandler.Delete)

	s.router.HandleFunc("POST /api/goals", s.goalHandler.Create)
	s.router.HandleFunc("GET /api/goals", s.goalHandler.List)
	s.router.HandleFunc("PUT /api/goals/{id}", s.goalHandler.Update)
	s.router.HandleFunc("DELETE /api/goals/{id}", s.goalHandler.Delete)
	s.router.HandleFunc("POST /api/goals/{id}/contribute", s.goalHandler.Contribute)

	s.router.HandleFunc("POST /api/debts", s.debtHandler.Create)
	s.router.HandleFunc("GET /api/debts", s.debtHandler.List)
	s.router.HandleFunc("PUT /api/debts/{id}", s.debtHandler.Update)
	s.router.HandleFunc("DELETE /api/debts/{id}", s.debtHandler.Delete)
	s.router.HandleFunc("POST /api/debts/{id}/pay", s.debtHandler.Pay)

	s.router.HandleFunc("POST /api/recurring", s.recurringHandler.Create)
	s.router.HandleFunc("GET /api/recurring", s.recurringHandler.List)
	s.router.HandleFunc("PUT /api/recurring/{id}", s.recurringHandler.Update)
	s.router.HandleFunc("DELETE /api/recurring/{id}", s.recurringHandler.Delete)

	s.router.HandleFunc("GET /api/reports/health", s.reportHandler.FinancialHealth)
	s.router.HandleFunc("POST /api/settings/reset", s.reportHandler.ResetData)
	s.router.HandleFunc("POST /api/session/close", s.reportHandler.CloseSession)
}

func loggingMiddleware(log zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("request completed")
	})
}

// newGateway picks the backing store: Postgres when a connection string is
// configured, in-memory otherwise.
func newGateway(ctx context.Context, log zerolog.Logger) (domain.Gateway, error) {
	if os.Getenv("DB_CONNECTION_STRING") == "" {
		log.Warn().Msg("DB_CONNECTION_STRING not set, using in-memory store (data is not durable)")
		return infrastructure.NewMemoryGateway(), nil
	}
	dbService, err := database.NewDBService(ctx)
	if err != nil {
		return nil, err
	}
	gateway := infrastructure.NewPostgresGateway(dbService.Pool, log)
	if err := gateway.Migrate(ctx); err != nil {
		return nil, err
	}
	return gateway, nil
}

// startRecurringSweep schedules the periodic pass that catches rules coming
// due while no subscription push arrives.
func startRecurringSweep(scheduler *application.RecurringScheduler) error {
	c := cron.New()
	_, err := c.AddFunc("@every 1m", func() {
		scheduler.Sweep(context.Background())
	})
	if err != nil {
		return err
	}
	c.Start()
	return nil
}

func run(log zerolog.Logger) error {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file, continuing with system environment variables")
	}

	gateway, err := newGateway(ctx, log)
	if err != nil {
		return err
	}

	sessions := application.NewSessionManager(gateway, log)
	service := application.NewLedgerService(gateway, sessions, log)

	policy := application.ParseCatchUpPolicy(os.Getenv("RECURRING_CATCHUP"))
	scheduler := application.NewRecurringScheduler(gateway, sessions, policy, log)
	sessions.SetRecurringHook(func(ownerID string) {
		go func() {
			if err := scheduler.ProcessDue(context.Background(), ownerID); err != nil {
				log.Error().Err(err).Str("owner", ownerID).Msg("processing recurring transactions")
			}
		}()
	})
	if err := startRecurringSweep(scheduler); err != nil {
		return err
	}

	server := NewServer(service, sessions)
	server.RegisterRoutes()

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}
	log.Info().Str("port", port).Str("catchup", string(policy)).Msg("ledger server listening")
	return http.ListenAndServe(":"+port, loggingMiddleware(log, server.router))
}

func main() {
	log := logger.New()
	if err := run(log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
