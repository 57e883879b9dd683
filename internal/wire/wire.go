// Package wire provides dependency injection for the giftdesk
// application. It creates singleton services with lazy initialization.
package wire

import (
	"database/sql"
	"log"
	"sync"

	"github.com/example/giftdesk/internal/adapters/filesystem"
	"github.com/example/giftdesk/internal/adapters/sqlite"
	"github.com/example/giftdesk/internal/app"
	"github.com/example/giftdesk/internal/config"
	"github.com/example/giftdesk/internal/db"
	"github.com/example/giftdesk/internal/flow"
	"github.com/example/giftdesk/internal/ports/primary"
	"github.com/example/giftdesk/internal/ports/secondary"
)

var (
	orderService  primary.OrderService
	personService primary.PersonService
	giftService   primary.GiftService
	auditService  primary.AuditService
	auditWriter   secondary.AuditWriter
	cfg           *config.Config
	once          sync.Once
)

// OrderService returns the singleton OrderService instance.
func OrderService() primary.OrderService {
	once.Do(initServices)
	return orderService
}

// PersonService returns the singleton PersonService instance.
func PersonService() primary.PersonService {
	once.Do(initServices)
	return personService
}

// GiftService returns the singleton GiftService instance.
func GiftService() primary.GiftService {
	once.Do(initServices)
	return giftService
}

// AuditService returns the singleton AuditService instance.
func AuditService() primary.AuditService {
	once.Do(initServices)
	return auditService
}

// Config returns the loaded configuration.
func Config() *config.Config {
	once.Do(initServices)
	return cfg
}

// Session creates a new interactive order flow backed by the singleton
// services. Each call returns an isolated session.
func Session() *flow.Session {
	once.Do(initServices)
	snapDir, err := flow.DefaultSnapshotDir()
	if err != nil {
		log.Fatalf("failed to resolve snapshot dir: %v", err)
	}
	return flow.NewSession(orderService, auditWriter, flow.NewSnapshotStore(snapDir))
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	dir, err := config.Dir()
	if err != nil {
		log.Fatalf("failed to resolve config dir: %v", err)
	}
	cfg = config.LoadOrDefault(dir)

	var database *sql.DB
	if cfg.DatabasePath != "" {
		database, err = db.Open(cfg.DatabasePath)
	} else {
		database, err = db.GetDB()
	}
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	orderRepo := sqlite.NewOrderRepository(database)
	giftRepo := sqlite.NewGiftRepository(database)
	personRepo := sqlite.NewPersonRepository(database)
	auditRepo := sqlite.NewAuditRepository(database)
	importer := filesystem.NewCSVImporter()
	auditWriter = auditRepo

	orderService = app.NewOrderService(orderRepo, giftRepo, personRepo, auditRepo, nil)
	personService = app.NewPersonService(personRepo, importer)
	giftService = app.NewGiftService(giftRepo, personRepo)
	auditService = app.NewAuditService(auditRepo)
}
