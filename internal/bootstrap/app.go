// Package bootstrap assembles the application graph: storage, repositories,
// services, handlers, and finally the HTTP router.
package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/account"
	googleauth "resume-builder/internal/auth"
	"resume-builder/internal/documents"
	"resume-builder/internal/exports"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/server"
	"resume-builder/internal/shared/storage/db"
	"resume-builder/internal/shared/storage/object"
	localstore "resume-builder/internal/shared/storage/object/local"
	s3store "resume-builder/internal/shared/storage/object/s3"
	"resume-builder/internal/suggestions"
	"resume-builder/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	DocumentsRepo documents.Repo
	ShareRepo     exports.ShareRepo
	UsersRepo     users.Repo

	DocumentsService  *documents.Service
	ExportsService    *exports.Service
	SuggestionService *suggestions.Service
	AccountService    *account.Service
	UsersService      *users.Service

	DocumentsHandler  *documents.Handler
	ExportsHandler    *exports.Handler
	SuggestionHandler *suggestions.Handler
	AccountHandler    *account.Handler
	UsersHandler      *users.Handler
	GoogleAuth        *googleauth.GoogleService

	closers []func()
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}

	if err := buildServices(ctx, app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:            app.Config,
		DocumentHandler:   app.DocumentsHandler,
		ExportHandler:     app.ExportsHandler,
		SuggestionHandler: app.SuggestionHandler,
		AccountHandler:    app.AccountHandler,
		UserHandler:       app.UsersHandler,
		GoogleAuth:        app.GoogleAuth,
	})

	return app, nil
}

// Close releases resources held by the app.
func (a *App) Close() {
	for _, fn := range a.closers {
		fn()
	}
	if a.DB != nil {
		_ = a.DB.Close()
	}
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, errors.New("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(ctx context.Context, app *App) error {
	var docRepo documents.Repo
	var shareRepo exports.ShareRepo
	var userRepo users.Repo

	if app.DB != nil {
		docRepo = &documents.PGRepo{DB: app.DB}
		shareRepo = &exports.PGShareRepo{DB: app.DB}
		userRepo = &users.PGRepo{DB: app.DB}
	} else {
		docRepo = documents.NewMemoryRepo()
		shareRepo = exports.NewMemoryShareRepo()
		userRepo = users.NewMemoryRepo()
	}

	docSvc := documents.NewService(docRepo)
	exportSvc := exports.NewService(shareRepo, docSvc, app.Store, app.Config.ShareBaseURL)

	aiClient := suggestions.Client(suggestions.PlaceholderClient{})
	if strings.TrimSpace(app.Config.GeminiAPIKey) != "" {
		gemini, err := suggestions.NewGeminiClient(ctx, app.Config.GeminiAPIKey, app.Config.AIModel)
		if err != nil {
			return err
		}
		aiClient = gemini
		app.closers = append(app.closers, gemini.Close)
	}
	suggestionSvc := suggestions.NewService(aiClient)

	userSvc := users.NewService(userRepo)
	googleAuthSvc := googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		userSvc,
	)

	app.DocumentsRepo = docRepo
	app.ShareRepo = shareRepo
	app.UsersRepo = userRepo
	app.DocumentsService = docSvc
	app.ExportsService = exportSvc
	app.SuggestionService = suggestionSvc
	app.AccountService = account.NewService(docRepo, shareRepo)
	app.UsersService = userSvc
	app.DocumentsHandler = documents.NewHandler(docSvc)
	app.ExportsHandler = exports.NewHandler(exportSvc)
	app.SuggestionHandler = suggestions.NewHandler(suggestionSvc)
	app.AccountHandler = account.NewHandler(app.AccountService)
	app.UsersHandler = users.NewHandler(userSvc)
	app.GoogleAuth = googleAuthSvc

	return nil
}
