// Package database provides the SQLite store behind the smart home
// repositories.
//
// It owns the connection (foreign keys on, optional WAL, one pooled
// connection), the embedded migration runner and helpers that classify
// go-sqlite3 constraint errors so repositories can map them to their own
// sentinels.
//
//	db, err := database.Open(cfg.Database)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	if err := db.Migrate(ctx); err != nil {
//	    return err
//	}
//
// Migration files live in the top-level migrations directory and are
// compiled into the binary. They are additive: new columns are nullable or
// defaulted.
package database
