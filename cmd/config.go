package cmd

import (
	"fmt"
	"strings"
	"time"

	"ordersim/internal/core/domain/model/kernel"
	"ordersim/internal/pkg/errs"
)

// Config carries everything the composition root needs to wire the
// application. Durations are parsed by the caller; string fields hold raw
// environment values.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// SweepPeriod is the gap between automatic sweep runs.
	SweepPeriod time.Duration
	// UpdateInterval is how long an order rests in a status before the
	// sweep may advance it.
	UpdateInterval time.Duration
	// DeliveryLead is added to the creation time to form the delivery
	// estimate.
	DeliveryLead time.Duration

	// Stores optionally overrides the built-in storefront table as a
	// comma-separated list of name:prefix:category entries. Empty keeps
	// the default table.
	Stores string

	// KafkaBrokers is a comma-separated broker list. Empty disables
	// inventory notifications.
	KafkaBrokers        string
	KafkaInventoryTopic string
}

// PostgresDSN assembles the connection string for gorm's postgres driver.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// StoreSet builds the storefront table from configuration, falling back to
// the built-in table when no override is configured.
func (c Config) StoreSet() (kernel.StoreSet, error) {
	if strings.TrimSpace(c.Stores) == "" {
		return kernel.DefaultStoreSet(), nil
	}

	stores := make([]kernel.Store, 0)
	for _, entry := range strings.Split(c.Stores, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		parts := strings.Split(entry, ":")
		if len(parts) < 2 || len(parts) > 3 {
			return kernel.StoreSet{}, errs.NewValueIsInvalidErrorWithCause(
				"stores", fmt.Errorf("%q is not a name:prefix:category entry", entry))
		}

		category := ""
		if len(parts) == 3 {
			category = parts[2]
		}

		store, err := kernel.NewStore(parts[0], parts[1], category)
		if err != nil {
			return kernel.StoreSet{}, err
		}
		stores = append(stores, store)
	}

	return kernel.NewStoreSet(stores)
}
