// Package mongo provides MongoDB client initialization and health checking
// for the product catalog store.
//
// It wraps the official MongoDB Go driver with application-level retry
// logic tuned for managed deployments such as Atlas, where cold starts and
// brief network interruptions would otherwise fail application startup.
//
// Basic usage:
//
//	ctx := context.Background()
//
//	var cfg mongo.Config
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
//	client, err := mongo.New(ctx, cfg)
//	if err != nil {
//		log.Fatal("failed to connect to mongodb:", err)
//	}
//	defer client.Disconnect(ctx)
//
//	// Or get a database handle directly:
//	db, err := mongo.NewWithDatabase(ctx, cfg, "freshmart")
//	if err != nil {
//		log.Fatal(err)
//	}
//	products := catalog.NewMongoProductStore(db)
//
// # Configuration
//
// Configuration is handled through environment variables via the Config
// struct, with defaults suited to Atlas deployments:
//
//	MONGODB_URL              (required)
//	MONGODB_CONNECT_TIMEOUT  (default: 10s)
//	MONGODB_MAX_POOL_SIZE    (default: 100)
//	MONGODB_RETRY_ATTEMPTS   (default: 3)
//	MONGODB_RETRY_INTERVAL   (default: 3s)
package mongo
