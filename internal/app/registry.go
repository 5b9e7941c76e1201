package app

import (
	"database/sql"

	"github.com/ASARUDHEEN-MP/Employee-managment/internal/auth"
	"github.com/ASARUDHEEN-MP/Employee-managment/internal/customfield"
	"github.com/ASARUDHEEN-MP/Employee-managment/internal/employee"
	"github.com/ASARUDHEEN-MP/Employee-managment/internal/messaging/kafka"
	"github.com/ASARUDHEEN-MP/Employee-managment/internal/middleware"
	"github.com/ASARUDHEEN-MP/Employee-managment/internal/schema"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	customFieldRepo := customfield.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Schema registry (validasi custom field per-tenant) ---
	registry := schema.NewRegistry(customFieldRepo, logger)

	// --- Services ---
	authService := auth.NewService(authRepo)
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, registry, outboxRepo, rdb, logger)
	customFieldService := customfield.NewServiceWithOutbox(db, customFieldRepo, employeeRepo, outboxRepo, rdb, logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	customFieldHandler := customfield.NewHandler(customFieldService, logger)

	// --- Routes ---
	router.Use(middleware.RequestID())

	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		employee.RegisterRoutes(api, employeeHandler, logger)
		customfield.RegisterRoutes(api, customFieldHandler, logger)
	}

	return nil
}
