package main

import (
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"feedback-hero/config"
	"feedback-hero/models"
	"feedback-hero/routes"
	"feedback-hero/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := config.Connect(cfg)
	if err != nil {
		logrus.Fatal("Failed to connect to database: ", err)
	}

	if err := db.AutoMigrate(&models.Business{}, &models.Feedback{}); err != nil {
		logrus.Fatal("Failed to migrate database: ", err)
	}

	if err := ensureDefaultBusiness(db, cfg); err != nil {
		logrus.Fatal("Failed to bootstrap default business: ", err)
	}

	sessions := newSessionStore(cfg)
	limiter := services.NewRateLimiter(sessions, cfg.Cooldown())

	if cfg.DigestEnabled() {
		digest := services.NewDigestService(db, cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber, cfg.DigestCron)
		if _, err := digest.StartScheduler(); err != nil {
			logrus.Fatal("Failed to start digest scheduler: ", err)
		}
	}

	r := routes.SetupRouter(db, cfg, limiter)

	logrus.Infof("Server running on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logrus.Fatal("Failed to start server: ", err)
	}
}

// newSessionStore picks Redis when configured, otherwise the in-process
// store. Either way the rate limiter only sees the SessionStore interface.
func newSessionStore(cfg *config.Config) services.SessionStore {
	if cfg.RedisURL != "" {
		store, err := services.NewRedisSessionStore(cfg.RedisURL)
		if err != nil {
			logrus.Fatal("Failed to connect to Redis: ", err)
		}
		logrus.WithField("addr", cfg.RedisURL).Info("Using Redis session store")
		return store
	}
	logrus.Info("REDIS_URL not set, using in-memory session store")
	return services.NewMemorySessionStore()
}

// ensureDefaultBusiness creates the first-run account so a fresh install can
// log in immediately.
func ensureDefaultBusiness(db *gorm.DB, cfg *config.Config) error {
	var count int64
	if err := db.Model(&models.Business{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logrus.Info("Found existing business account(s)")
		return nil
	}

	business := models.Business{
		Name:     cfg.BusinessName,
		Email:    "admin@business.com",
		Settings: models.JSONB{},
	}
	if err := business.SetPassword("admin123"); err != nil {
		return err
	}
	if err := db.Create(&business).Error; err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"name":  business.Name,
		"email": business.Email,
	}).Warn("Default business account created with password admin123; change it immediately in settings")
	return nil
}
