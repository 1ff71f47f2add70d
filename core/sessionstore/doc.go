// Package sessionstore provides persistence backends for the session
// manager: a JSON file store, a Redis store, and a Postgres store.
//
// # Canonical Key
//
// All backends persist under one canonical key, "freshmart_session"
// (a file path, the redis key suffix, or the table slot). The retired
// client implementations scattered state across several keys
// ("user_session", "current_user", "session", ...); the file store can
// read those as migration sources via WithLegacyPaths but only ever writes
// the canonical, versioned form.
//
// # Choosing a Backend
//
//	// Local file, the direct analog of browser local storage:
//	store := sessionstore.NewFileStore("freshmart_session.json",
//		sessionstore.WithLegacyPaths("user_session.json", "current_user.json"))
//
//	// Redis, one slot per device/client:
//	client, _ := redisconn.Connect(ctx, redisCfg)
//	store := sessionstore.NewRedisStore(client, deviceID)
//
//	// Postgres with goose-managed schema:
//	pool, _ := pg.Connect(ctx, pgCfg)
//	_ = sessionstore.Migrate(ctx, pgCfg.ConnectionString)
//	store := sessionstore.NewPostgresStore(pool, deviceID)
//
// Every backend implements session.Store and returns session.ErrNotFound
// for an empty slot so the manager's guest-fallback path is uniform.
package sessionstore
