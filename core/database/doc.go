// Package database handles database connections for the override store.
//
// It wraps GORM to open either a MySQL server connection or an SQLite file,
// based on the application's configuration. The remap pipeline uses it when
// the translation override table is kept in a database instead of a JSON file.
//
// # Connect
//
// Connect picks the dialector from Config.Driver, applies connection pool
// limits and verifies the connection with a ping bounded by TimeoutSeconds.
// SQLite connections are limited to a single open connection, which keeps
// ":memory:" databases consistent across queries.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    return err
//	}
package database
