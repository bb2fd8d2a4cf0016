package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ypamar/newsletter/config"
	"github.com/ypamar/newsletter/internal/database"
	"github.com/ypamar/newsletter/internal/domain"
	httpHandler "github.com/ypamar/newsletter/internal/http"
	"github.com/ypamar/newsletter/internal/http/middleware"
	"github.com/ypamar/newsletter/internal/repository"
	"github.com/ypamar/newsletter/internal/service"
	"github.com/ypamar/newsletter/pkg/emailbuilder"
	"github.com/ypamar/newsletter/pkg/logger"
	"github.com/ypamar/newsletter/pkg/mailer"
	"github.com/ypamar/newsletter/pkg/storage"
)

// AppInterface defines the interface for the App
type AppInterface interface {
	Initialize() error
	Start() error
	Shutdown(ctx context.Context) error

	// Getters for app components accessed in tests
	GetConfig() *config.Config
	GetLogger() logger.Logger
	GetMux() *http.ServeMux
	GetDB() *sql.DB
	GetMailer() mailer.Mailer
	GetCampaignDesignRepository() domain.CampaignDesignRepository
	GetDesignStore() domain.DesignStore

	// Server status methods
	IsServerCreated() bool
	WaitForServerStart(ctx context.Context) bool

	// Methods for initialization steps
	InitDB() error
	InitMailer() error
	InitStorage() error
	InitRepositories() error
	InitServices() error
	InitHandlers() error

	// Graceful shutdown methods
	SetShutdownTimeout(timeout time.Duration)
	GetActiveRequestCount() int64
	GetShutdownContext() context.Context
}

// App encapsulates the application dependencies and configuration
type App struct {
	config     *config.Config
	logger     logger.Logger
	db         *sql.DB
	mailer     mailer.Mailer
	imageStore storage.ImageStore

	// Repositories
	campaignDesignRepo domain.CampaignDesignRepository
	designStore        domain.DesignStore

	// Services
	templateLibraryService *service.TemplateLibraryService
	editorService          *service.EditorService

	// HTTP handlers
	mux    *http.ServeMux
	server *http.Server

	// Server synchronization
	serverMu      sync.RWMutex
	serverStarted chan struct{}

	// Graceful shutdown management
	shutdownCtx     context.Context
	shutdownCancel  context.CancelFunc
	activeRequests  int64          // atomic counter for active HTTP requests
	requestWg       sync.WaitGroup // wait group for active requests
	shutdownTimeout time.Duration
}

// AppOption defines a functional option for configuring the App
type AppOption func(*App)

// WithMockDB configures the app to use a mock database
func WithMockDB(db *sql.DB) AppOption {
	return func(a *App) {
		a.db = db
	}
}

// WithMockMailer configures the app to use a mock mailer
func WithMockMailer(m mailer.Mailer) AppOption {
	return func(a *App) {
		a.mailer = m
	}
}

// WithMockImageStore replaces the S3 image store
func WithMockImageStore(s storage.ImageStore) AppOption {
	return func(a *App) {
		a.imageStore = s
	}
}

// WithLogger sets a custom logger
func WithLogger(logger logger.Logger) AppOption {
	return func(a *App) {
		a.logger = logger
	}
}

// NewApp creates a new application instance
func NewApp(cfg *config.Config, opts ...AppOption) AppInterface {
	shutdownCtx, shutdownCancel := context.WithCancel(context.Background())

	app := &App{
		config:          cfg,
		logger:          logger.NewLoggerWithLevel(cfg.LogLevel),
		mux:             http.NewServeMux(),
		serverStarted:   make(chan struct{}),
		shutdownCtx:     shutdownCtx,
		shutdownCancel:  shutdownCancel,
		shutdownTimeout: 30 * time.Second,
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// InitDB initializes the database connection
func (a *App) InitDB() error {
	// Skip if the database was injected
	if a.db != nil {
		return nil
	}

	password := a.config.Database.Password
	maskedPassword := ""
	if len(password) > 0 {
		maskedPassword = fmt.Sprintf("%c...%c", password[0], password[len(password)-1])
	}
	a.logger.Info(fmt.Sprintf("Connecting to database %s:%d, user %s, sslmode %s, password: %s, dbname: %s", a.config.Database.Host, a.config.Database.Port, a.config.Database.User, a.config.Database.SSLMode, maskedPassword, a.config.Database.DBName))

	db, err := database.ConnectSystemDatabase(&a.config.Database)
	if err != nil {
		a.logger.Error(err.Error())
		return fmt.Errorf("failed to connect to system database: %w", err)
	}

	if err := database.InitializeDatabase(db); err != nil {
		db.Close()
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}

	a.logger.Info("Database schema ready")
	a.db = db
	return nil
}

// InitMailer initializes the mailer used for test sends
func (a *App) InitMailer() error {
	// Skip if mailer already set (e.g., by mock)
	if a.mailer != nil {
		return nil
	}

	if a.config.IsDevelopment() && a.config.SMTP.Host == "" {
		a.mailer = mailer.NewConsoleMailer()
		a.logger.Info("Using console mailer for development")
		return nil
	}

	a.mailer = mailer.NewSMTPMailer(&mailer.Config{
		SMTPHost:     a.config.SMTP.Host,
		SMTPPort:     a.config.SMTP.Port,
		SMTPUsername: a.config.SMTP.Username,
		SMTPPassword: a.config.SMTP.Password,
		SMTPUseTLS:   a.config.SMTP.UseTLS,
		FromEmail:    a.config.SMTP.FromEmail,
		FromName:     a.config.SMTP.FromName,

		BreakerThreshold: a.config.SMTP.BreakerThreshold,
		BreakerCooldown:  a.config.SMTP.BreakerCooldown,
	})
	a.logger.WithField("smtp_host", a.config.SMTP.Host).Info("Using SMTP mailer")

	return nil
}

// InitStorage connects the image store when a bucket is configured
func (a *App) InitStorage() error {
	if a.imageStore != nil {
		return nil
	}

	if !a.config.Storage.Enabled() {
		a.logger.Info("No S3 bucket configured, image uploads are disabled")
		return nil
	}

	store, err := storage.NewS3ImageStore(storage.Config{
		Endpoint:  a.config.Storage.Endpoint,
		Region:    a.config.Storage.Region,
		Bucket:    a.config.Storage.Bucket,
		AccessKey: a.config.Storage.AccessKey,
		SecretKey: a.config.Storage.SecretKey,
		PublicURL: a.config.Storage.PublicURL,
		PathStyle: a.config.Storage.PathStyle,
		Prefix:    a.config.Storage.Prefix,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize image storage: %w", err)
	}

	a.imageStore = store
	a.logger.WithField("bucket", a.config.Storage.Bucket).Info("Image uploads enabled")
	return nil
}

// InitRepositories initializes all repositories
func (a *App) InitRepositories() error {
	if a.db == nil {
		return fmt.Errorf("database must be initialized before repositories")
	}

	a.campaignDesignRepo = repository.NewCampaignDesignRepository(a.db)
	a.designStore = repository.NewSQLDesignStore(a.db)

	return nil
}

// InitServices initializes all application services
func (a *App) InitServices() error {
	if a.designStore == nil || a.campaignDesignRepo == nil {
		return fmt.Errorf("repositories must be initialized before services")
	}

	a.templateLibraryService = service.NewTemplateLibraryService(a.designStore, a.logger)

	a.editorService = service.NewEditorService(
		a.campaignDesignRepo,
		a.templateLibraryService,
		a.mailer,
		a.imageStore,
		a.logger,
		service.EditorServiceConfig{
			HistoryLimit: a.config.Editor.HistoryLimit,
			SessionTTL:   a.config.Editor.SessionTTL,
			DefaultOptions: emailbuilder.ExportOptions{
				BackgroundColor: a.config.Editor.DefaultBackground,
				EmailWidth:      a.config.Editor.DefaultWidth,
			},
			RenderTimeout:   a.config.Editor.RenderTimeout,
			MaxTemplateSize: a.config.Editor.MaxTemplateSize,
			TestSendLimit:   a.config.Editor.TestSendLimit,
			UploadLimit:     a.config.Editor.UploadLimit,
			RateWindow:      a.config.Editor.RateWindow,
		},
	)

	return nil
}

// InitHandlers initializes all HTTP handlers and routes
func (a *App) InitHandlers() error {
	if a.editorService == nil {
		return fmt.Errorf("services must be initialized before handlers")
	}

	// Create a new ServeMux to avoid route conflicts on restart
	a.mux = http.NewServeMux()

	rootHandler := httpHandler.NewRootHandler(
		a.logger,
		a.config.APIEndpoint,
		a.config.Version,
		a.imageStore != nil,
		a.editorService.SessionCount,
	)
	editorHandler := httpHandler.NewEditorHandler(a.editorService, a.logger)
	templateLibraryHandler := httpHandler.NewTemplateLibraryHandler(a.templateLibraryService, a.editorService, a.logger)
	catalogHandler := httpHandler.NewCatalogHandler(a.logger)

	rootHandler.RegisterRoutes(a.mux)
	editorHandler.RegisterRoutes(a.mux)
	templateLibraryHandler.RegisterRoutes(a.mux)
	catalogHandler.RegisterRoutes(a.mux)

	return nil
}

// Handler returns the mux wrapped in the middleware chain
func (a *App) Handler() http.Handler {
	var handler http.Handler = a.mux

	handler = a.gracefulShutdownMiddleware(handler)
	handler = middleware.RequestLogger(a.logger)(handler)
	handler = middleware.CORSMiddleware(a.config.CORSAllowOrigin)(handler)

	return handler
}

// Start starts the HTTP server
func (a *App) Start() error {
	addr := fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port)
	a.logger.WithField("address", addr).
		WithField("api_endpoint", a.config.APIEndpoint).
		Info(fmt.Sprintf("Server starting on %s", addr))

	a.serverMu.Lock()
	if a.serverStarted != nil {
		close(a.serverStarted)
	}
	a.serverStarted = make(chan struct{})

	a.server = &http.Server{
		Addr:              addr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverStarted := a.serverStarted
	a.serverMu.Unlock()

	// Signal that the server has been created and is about to start
	close(serverStarted)

	if a.config.Server.SSL.Enabled {
		a.logger.WithField("cert_file", a.config.Server.SSL.CertFile).Info("SSL enabled")
		return a.server.ListenAndServeTLS(a.config.Server.SSL.CertFile, a.config.Server.SSL.KeyFile)
	}

	return a.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Starting graceful shutdown...")

	// Signal shutdown to all components
	a.shutdownCancel()

	a.serverMu.RLock()
	server := a.server
	a.serverMu.RUnlock()

	if server == nil {
		a.logger.Info("No server to shutdown")
		return a.cleanupResources(ctx)
	}

	activeCount := a.getActiveRequestCount()
	a.logger.WithField("active_requests", activeCount).Info("Active requests at shutdown start")

	shutdownTimeout := a.shutdownTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < shutdownTimeout {
			shutdownTimeout = remaining - time.Second
			if shutdownTimeout < 0 {
				shutdownTimeout = 0
			}
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	serverShutdownDone := make(chan error, 1)
	go func() {
		a.logger.WithField("timeout", shutdownTimeout.String()).Info("Starting HTTP server shutdown")
		serverShutdownDone <- server.Shutdown(shutdownCtx)
	}()

	requestsDone := make(chan struct{})
	go func() {
		a.requestWg.Wait()
		close(requestsDone)
	}()

	var shutdownErr error

	select {
	case err := <-serverShutdownDone:
		shutdownErr = err
		a.logger.Info("HTTP server shutdown completed")
	case <-shutdownCtx.Done():
		a.logger.Warn("Shutdown timeout reached")
		shutdownErr = fmt.Errorf("shutdown timeout exceeded")
	}

	// Give in-flight requests a little longer once the listener is closed
	if shutdownErr == nil {
		select {
		case <-requestsDone:
		case <-time.After(2 * time.Second):
			if activeCount := a.getActiveRequestCount(); activeCount > 0 {
				a.logger.WithField("active_requests", activeCount).Warn("Some requests still active, proceeding with shutdown")
			}
		}
	}

	if cleanupErr := a.cleanupResources(ctx); cleanupErr != nil {
		a.logger.WithField("error", cleanupErr.Error()).Error("Error during resource cleanup")
		if shutdownErr == nil {
			shutdownErr = cleanupErr
		}
	}

	if shutdownErr != nil {
		a.logger.WithField("error", shutdownErr.Error()).Error("Graceful shutdown completed with errors")
	} else {
		a.logger.Info("Graceful shutdown completed successfully")
	}

	return shutdownErr
}

// cleanupResources closes editor sessions and the database
func (a *App) cleanupResources(ctx context.Context) error {
	a.logger.Info("Cleaning up resources...")

	if a.editorService != nil {
		a.logger.WithField("sessions", a.editorService.SessionCount()).Info("Closing editor sessions")
		a.editorService.Stop()
	}

	if a.db != nil {
		a.logger.Info("Closing database connection")
		if err := a.db.Close(); err != nil {
			a.logger.WithField("error", err.Error()).Error("Error closing database connection")
			return err
		}
	}

	a.logger.Info("Resource cleanup completed")
	return nil
}

// IsServerCreated safely checks if the server has been created
func (a *App) IsServerCreated() bool {
	a.serverMu.RLock()
	defer a.serverMu.RUnlock()
	return a.server != nil
}

// WaitForServerStart waits for the server to be created and initialized
// Returns true if the server started successfully, false if context expired
func (a *App) WaitForServerStart(ctx context.Context) bool {
	a.serverMu.RLock()
	started := a.serverStarted
	a.serverMu.RUnlock()

	if started == nil {
		a.logger.Error("serverStarted channel is nil - server initialization error")
		<-ctx.Done()
		return false
	}

	select {
	case <-started:
		return a.IsServerCreated()
	case <-ctx.Done():
		return false
	}
}

// Initialize sets up all components of the application
func (a *App) Initialize() error {
	a.logger.WithField("version", a.config.Version).Info("Starting newsletter designer")

	if err := a.InitDB(); err != nil {
		return err
	}

	if err := a.InitMailer(); err != nil {
		return err
	}

	if err := a.InitStorage(); err != nil {
		return err
	}

	if err := a.InitRepositories(); err != nil {
		return err
	}

	if err := a.InitServices(); err != nil {
		return err
	}

	if err := a.InitHandlers(); err != nil {
		return err
	}

	a.logger.Info("Application successfully initialized")
	return nil
}

// GetConfig returns the app's configuration
func (a *App) GetConfig() *config.Config {
	return a.config
}

// GetLogger returns the app's logger
func (a *App) GetLogger() logger.Logger {
	return a.logger
}

// GetMux returns the app's HTTP multiplexer
func (a *App) GetMux() *http.ServeMux {
	return a.mux
}

// GetDB returns the app's database connection
func (a *App) GetDB() *sql.DB {
	return a.db
}

// GetMailer returns the app's mailer
func (a *App) GetMailer() mailer.Mailer {
	return a.mailer
}

func (a *App) GetCampaignDesignRepository() domain.CampaignDesignRepository {
	return a.campaignDesignRepo
}

func (a *App) GetDesignStore() domain.DesignStore {
	return a.designStore
}

func (a *App) incrementActiveRequests() {
	atomic.AddInt64(&a.activeRequests, 1)
	a.requestWg.Add(1)
}

func (a *App) decrementActiveRequests() {
	atomic.AddInt64(&a.activeRequests, -1)
	a.requestWg.Done()
}

func (a *App) getActiveRequestCount() int64 {
	return atomic.LoadInt64(&a.activeRequests)
}

// GetActiveRequestCount returns the current number of active requests
func (a *App) GetActiveRequestCount() int64 {
	return a.getActiveRequestCount()
}

// SetShutdownTimeout sets the timeout for graceful shutdown
func (a *App) SetShutdownTimeout(timeout time.Duration) {
	a.shutdownTimeout = timeout
	a.logger.WithField("shutdown_timeout", timeout.String()).Info("Shutdown timeout configured")
}

// GetShutdownContext returns the shutdown context for components that need to watch for shutdown
func (a *App) GetShutdownContext() context.Context {
	return a.shutdownCtx
}

func (a *App) isShuttingDown() bool {
	select {
	case <-a.shutdownCtx.Done():
		return true
	default:
		return false
	}
}

// gracefulShutdownMiddleware tracks active requests and refuses new ones during shutdown
func (a *App) gracefulShutdownMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.isShuttingDown() {
			httpHandler.WriteJSONError(w, "Server is shutting down", http.StatusServiceUnavailable)
			return
		}

		a.incrementActiveRequests()
		defer a.decrementActiveRequests()

		next.ServeHTTP(w, r)
	})
}

// Ensure App implements AppInterface
var _ AppInterface = (*App)(nil)
