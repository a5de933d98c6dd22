// Package database provides a unified interface for connecting to the
// galleria storage backends.
//
// # Supported Backends
//
//   - PostgreSQL: Production-ready backend using pgx connection pool
//   - SQLite: Lightweight backend suitable for development and single-node deployments
//
// # Usage
//
//	db, err := database.Connect(ctx, database.Config{
//	    Type: "sqlite",
//	    DSN:  "galleria.db",
//	    Tables: galleria.Tables{
//	        Users:     "users",
//	        Galleries: "galleries",
//	        Pictures:  "pictures",
//	    },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	if err := db.Migrate(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Both backends enforce unique indexes on username, email, identity token
// and image URI, and report violations as *galleria.DuplicateKeyError.
//
// # Subpackages
//
//   - database/postgres: PostgreSQL implementation using pgx
//   - database/sqlite: SQLite implementation using modernc.org/sqlite
package database
