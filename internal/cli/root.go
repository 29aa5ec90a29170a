package cli

import (
	"fmt"

	"github.com/messagely/messagely/internal/core/repository"
	"github.com/messagely/messagely/internal/core/service"
	"github.com/messagely/messagely/internal/infrastructure/sqlite"
	"github.com/messagely/messagely/pkg/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "messagely",
	Short: "Messagely - authenticated messaging API",
	Long: `Messagely is a small authenticated messaging service.

It provides:
- User registration and login with bcrypt-hashed credentials
- Signed bearer tokens binding the authenticated principal
- Message exchange with per-recipient read receipts
- REST API with per-message authorization checks`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for commands that don't need it
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		// Load configuration
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is /etc/messagely/config.yml)")
}

// initServices initializes all services
func initServices() (*Services, error) {
	// Initialize database
	db, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize repositories
	userRepo := sqlite.NewUserRepository(db)
	messageRepo := sqlite.NewMessageRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.JWTSecretKey, cfg.JWTAlgorithm, cfg.BcryptCost, cfg.TokenTTL)
	userService := service.NewUserService(userRepo, messageRepo)
	messageService := service.NewMessageService(messageRepo)

	return &Services{
		DB:             db,
		UserRepo:       userRepo,
		MessageRepo:    messageRepo,
		AuthService:    authService,
		UserService:    userService,
		MessageService: messageService,
	}, nil
}

// Services holds all initialized services
type Services struct {
	DB             *sqlite.DB
	UserRepo       repository.UserRepository
	MessageRepo    repository.MessageRepository
	AuthService    *service.AuthService
	UserService    *service.UserService
	MessageService *service.MessageService
}

// Close releases service resources
func (s *Services) Close() {
	if s.DB != nil {
		s.DB.Close()
	}
}
