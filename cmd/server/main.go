package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/yukikurage/timesheet-api/internal/config"
	"github.com/yukikurage/timesheet-api/internal/constants"
	"github.com/yukikurage/timesheet-api/internal/database"
	"github.com/yukikurage/timesheet-api/internal/handlers"
	"github.com/yukikurage/timesheet-api/internal/middleware"
	"github.com/yukikurage/timesheet-api/internal/services"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var rootCmd = &cobra.Command{
	Use:   "timesheet-api",
	Short: "Timesheet REST API",
	Long:  `Timesheet API tracks projects, tasks and the hours employees log against them.`,
	Run:   runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server (default)",
	Run:   runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema and exit",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(cmd)
		if _, err := openDatabase(cmd, cfg); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		fmt.Println("Database schema is up to date.")
	},
}

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an administrator account",
	Run: func(cmd *cobra.Command, args []string) {
		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")
		email, _ := cmd.Flags().GetString("email")

		cfg := loadConfig(cmd)
		db, err := openDatabase(cmd, cfg)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}

		svc := handlers.NewServices(db, services.NewTokenService(cfg.JWTSecret, cfg.TokenTTL.Duration))
		admin, err := svc.Auth.CreateAdmin(username, password, email)
		if err != nil {
			log.Fatalf("Failed to create admin: %v", err)
		}
		fmt.Printf("Created admin %q (id %d)\n", admin.Username, admin.ID)
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a TOML config file (default: $TIMESHEET_CONFIG)")
	rootCmd.PersistentFlags().Bool("in-memory", false, "Use a throwaway in-memory SQLite database")

	createAdminCmd.Flags().String("username", "", "Admin username")
	createAdminCmd.Flags().String("password", "", "Admin password")
	createAdminCmd.Flags().String("email", "", "Admin email")
	_ = createAdminCmd.MarkFlagRequired("username")
	_ = createAdminCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(createAdminCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) {
	cfg := loadConfig(cmd)

	gin.SetMode(cfg.GinMode)

	db, err := openDatabase(cmd, cfg)
	if err != nil {
		log.Fatalf("Failed to prepare database: %v", err)
	}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", constants.HeaderRequestID},
		ExposeHeaders:    []string{"Content-Disposition", constants.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RequestID())

	tokens := services.NewTokenService(cfg.JWTSecret, cfg.TokenTTL.Duration)
	handlers.RegisterRoutes(r, handlers.NewServices(db, tokens))

	log.Printf("Server starting on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func loadConfig(cmd *cobra.Command) config.Config {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	return cfg
}

// openDatabase connects to the configured database and applies the schema
func openDatabase(cmd *cobra.Command, cfg config.Config) (*gorm.DB, error) {
	inMemory, _ := cmd.Flags().GetBool("in-memory")
	if inMemory {
		log.Println("Using in-memory SQLite database; data is lost on exit")
		return database.OpenInMemory(logger.Warn)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
