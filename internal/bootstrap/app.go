package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"elevate-backend/internal/analyses"
	googleauth "elevate-backend/internal/auth"
	"elevate-backend/internal/billing"
	"elevate-backend/internal/export"
	"elevate-backend/internal/llm"
	"elevate-backend/internal/llm/gemini"
	"elevate-backend/internal/resumes"
	"elevate-backend/internal/services/health"
	"elevate-backend/internal/shared/auth"
	"elevate-backend/internal/shared/config"
	"elevate-backend/internal/shared/server"
	"elevate-backend/internal/shared/server/middleware"
	"elevate-backend/internal/shared/storage/db"
	"elevate-backend/internal/shared/storage/object"
	localstore "elevate-backend/internal/shared/storage/object/local"
	s3store "elevate-backend/internal/shared/storage/object/s3"
	"elevate-backend/internal/shared/telemetry"
	"elevate-backend/internal/tier"
	"elevate-backend/internal/users"
	"elevate-backend/internal/writing"
)

const analysisTemperature = 0.1

// App holds shared dependencies and the wired router.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.Store
	Signer *auth.Signer

	UsersService    *users.Service
	ResumesService  *resumes.Service
	AnalysesService *analyses.Service
	WritingService  *writing.Service
	ExportService   *export.Service
	BillingService  *billing.Service

	closers []func() error
}

type repos struct {
	users    users.Repo
	resumes  resumes.Repo
	analyses analyses.Repo
}

type generators struct {
	analysis llm.Generator
	writing  llm.Generator
}

// Build connects storage, the AI client and billing, then wires the router.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	app := &App{Config: cfg}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if sqlDB != nil {
		app.DB = sqlDB
		app.closers = append(app.closers, sqlDB.Close)
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Store = store

	signer, err := auth.NewSigner(cfg.JWTSecret, cfg.JWTTTL, cfg.Env)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Signer = signer

	gens, err := app.buildGenerators(ctx)
	if err != nil {
		app.Close()
		return nil, err
	}

	app.buildServices(buildRepos(app.DB), gens)
	app.Router = app.buildRouter()
	return app, nil
}

// Close releases the database pool and the AI client.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if cfg.IsDevLike() {
			telemetry.Info("bootstrap.db.memory", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.db.memory", map[string]any{"reason": "connect failed", "error": err.Error()})
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.Store, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildRepos(sqlDB *sql.DB) repos {
	if sqlDB == nil {
		return repos{
			users:    users.NewMemoryRepo(),
			resumes:  resumes.NewMemoryRepo(),
			analyses: analyses.NewMemoryRepo(),
		}
	}
	return repos{
		users:    &users.PGRepo{DB: sqlDB},
		resumes:  &resumes.PGRepo{DB: sqlDB},
		analyses: &analyses.PGRepo{DB: sqlDB},
	}
}

func (a *App) buildGenerators(ctx context.Context) (generators, error) {
	if !a.Config.AIConfigured() {
		telemetry.Warn("bootstrap.ai.unconfigured", map[string]any{"fallback": "mock"})
		return generators{analysis: llm.Unconfigured{}, writing: llm.Unconfigured{}}, nil
	}
	client, err := gemini.New(ctx, a.Config.GeminiAPIKey)
	if err != nil {
		return generators{}, err
	}
	a.closers = append(a.closers, client.Close)
	return generators{
		analysis: client.Model(a.Config.GeminiAnalysisModel, gemini.WithJSON(), gemini.WithTemperature(analysisTemperature)),
		writing:  client.Model(a.Config.GeminiWritingModel),
	}, nil
}

// checkoutProvider returns a nil interface when Stripe is not configured.
func (a *App) checkoutProvider() billing.CheckoutProvider {
	if !a.Config.StripeConfigured() {
		return nil
	}
	return billing.NewStripeProvider(
		a.Config.StripeSecretKey,
		a.Config.StripeWebhookSecret,
		a.Config.StripePriceID,
		a.Config.FrontendURL,
	)
}

func (a *App) buildServices(r repos, gens generators) {
	a.UsersService = users.NewService(r.users)
	tiers := tier.NewResolver(a.UsersService)

	a.ResumesService = resumes.NewService(a.Store, r.resumes, nil)

	analyzer := analyses.NewAnalyzer(gens.analysis, a.Config.AITimeout)
	a.AnalysesService = analyses.NewService(a.ResumesService, tiers, analyzer, r.analyses, a.UsersService)
	a.ResumesService.Scores = a.AnalysesService

	a.WritingService = writing.NewService(a.ResumesService, gens.writing, a.Config.AITimeout)
	a.ExportService = export.NewService(
		a.ResumesService,
		a.AnalysesService,
		tiers,
		export.NewChromeRenderer(a.Config.ChromePath, a.Config.RenderTimeout),
	)
	a.BillingService = billing.NewService(a.checkoutProvider(), a.UsersService)
}

func (a *App) buildRouter() *gin.Engine {
	var pinger health.Pinger
	if a.DB != nil {
		pinger = a.DB
	}
	return server.NewRouter(server.RouterDeps{
		Config:   a.Config,
		Verifier: a.Signer,
		Health:   health.NewService(pinger, a.Config.AIConfigured()),
		Limiter:  middleware.NewRateLimiter(nil),
		Routes: []server.RouteRegistrar{
			googleauth.NewGoogleService(
				a.Config.GoogleClientID,
				a.Config.GoogleClientSecret,
				a.Config.GoogleRedirectURL,
				a.Config.OAuthSuccessRedirect,
				a.UsersService,
				a.Signer,
			),
			users.NewHandler(a.UsersService, a.ResumesService),
			resumes.NewHandler(a.ResumesService),
			analyses.NewHandler(a.AnalysesService),
			writing.NewHandler(a.WritingService),
			export.NewHandler(a.ExportService),
			billing.NewHandler(a.BillingService),
		},
	})
}
