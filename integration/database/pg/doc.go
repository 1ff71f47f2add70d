// Package pg provides PostgreSQL connection management with health checking
// for the storefront's persistent stores.
//
// It wraps the pgx driver with application-level retry logic, connection
// pool tuning, and error classification helpers. Connection establishment
// uses fixed-interval retries so that services restarting together do not
// fail against a database that is still coming up.
//
// # Configuration
//
// All configuration is handled through the Config struct with environment
// variable mapping:
//
//	type Config struct {
//		ConnectionString  string        `env:"PG_CONN_URL,required"`
//		MaxOpenConns      int32         `env:"PG_MAX_OPEN_CONNS" envDefault:"10"`
//		MaxIdleConns      int32         `env:"PG_MAX_IDLE_CONNS" envDefault:"5"`
//		HealthCheckPeriod time.Duration `env:"PG_HEALTHCHECK_PERIOD" envDefault:"1m"`
//		MaxConnIdleTime   time.Duration `env:"PG_MAX_CONN_IDLE_TIME" envDefault:"10m"`
//		MaxConnLifetime   time.Duration `env:"PG_MAX_CONN_LIFETIME" envDefault:"30m"`
//		RetryAttempts     int           `env:"PG_RETRY_ATTEMPTS" envDefault:"3"`
//		RetryInterval     time.Duration `env:"PG_RETRY_INTERVAL" envDefault:"5s"`
//	}
//
// # Usage Example
//
//	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
//	defer cancel()
//
//	var cfg pg.Config
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal("failed to connect to postgres:", err)
//	}
//	defer pool.Close()
//
//	store := sessionstore.NewPostgresStore(pool)
//
// # Health Checking
//
// Healthcheck returns a function suitable for readiness probes:
//
//	check := pg.Healthcheck(pool)
//	if err := check(ctx); err != nil {
//		// report unavailable
//	}
//
// # Transactions
//
// WithTx and TxFromContext propagate a pgx.Tx through context so that
// stores can participate in a caller-managed transaction:
//
//	tx, err := pool.Begin(ctx)
//	if err != nil {
//		return err
//	}
//	defer tx.Rollback(ctx) // safe even after commit
//
//	ctx = pg.WithTx(ctx, tx)
//	// ... store calls that check TxFromContext ...
//	return tx.Commit(ctx)
package pg
