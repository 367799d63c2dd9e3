package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/valueaim/api/internal/config"
	"github.com/valueaim/api/internal/db"
	"github.com/valueaim/api/internal/repository"
	"github.com/valueaim/api/internal/service"
	"github.com/valueaim/api/internal/storage"
)

type App struct {
	Cfg               *config.Config
	DB                *sqlx.DB
	AuthService       *service.AuthService
	OAuthService      *service.OAuthService
	UserService       *service.UserService
	OTPService        *service.OTPService
	EmailService      *service.EmailService
	CompanyService    *service.CompanyService
	OfferingService   *service.OfferingService
	ContactService    *service.ContactService
	SuggestionService *service.SuggestionService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	otpRepository := repository.NewOTPRepository(database)
	companyRepository := repository.NewCompanyRepository(database)
	offeringRepository := repository.NewOfferingRepository(database)
	contactRepository := repository.NewContactRepository(database)
	suggestionRepository := repository.NewSuggestionRepository(database)

	// Storage
	fileStorage, err := storage.New(storage.Config{
		Region:    cfg.S3Region,
		Bucket:    cfg.S3Bucket,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Endpoint:  cfg.S3Endpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.EmailSender,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	otpService := service.NewOTPService(otpRepository, cfg.OTPExpiry)
	authService := service.NewAuthService(userRepository, cfg.JWTSecret, cfg.JWTExpiry)
	oauthService := service.NewOAuthService(
		authService,
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.GoogleRedirectURL,
	)
	userService := service.NewUserService(userRepository, authService)
	companyService := service.NewCompanyService(companyRepository, userRepository)
	offeringService := service.NewOfferingService(offeringRepository, userRepository)
	contactService := service.NewContactService(contactRepository)
	suggestionService := service.NewSuggestionService(suggestionRepository, fileStorage)

	return &App{
		Cfg:               cfg,
		DB:                database,
		AuthService:       authService,
		OAuthService:      oauthService,
		UserService:       userService,
		OTPService:        otpService,
		EmailService:      emailService,
		CompanyService:    companyService,
		OfferingService:   offeringService,
		ContactService:    contactService,
		SuggestionService: suggestionService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
