// Package galleria provides the core of a photo-gallery API: credential
// issuance and resolution, owner-scoped galleries, and pictures backed by
// pluggable image storage.
//
// # Key Components
//
//   - CredentialStore: Password hashing, identity tokens with retry on
//     collision, HS256 signed tokens and their resolution back to a user
//   - GalleryService: Create, get, update, delete and list a user's galleries
//   - PictureService: Upload images into a gallery, list, fetch and delete them
//   - UserRepo, GalleryRepo, PictureRepo: Persistence interfaces (PostgreSQL, SQLite)
//   - ImageStorage: Interface for image bytes (filesystem, S3)
//
// # Tokens
//
// Every signup and login generates a fresh 32 byte identity token, stores it
// hex-encoded on the user under a unique index and signs {"token": <hex>}
// with HS256. Issuing a new token replaces the old one, so previously signed
// tokens stop resolving.
//
// # Example Usage
//
//	creds, err := galleria.NewCredentialStore(users, galleria.CredentialConfig{Secret: secret})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	signed, err := creds.Signup(ctx, galleria.SignupRequest{
//	    Username: "alice",
//	    Email:    "alice@example.com",
//	    Password: "secret1",
//	})
//
//	user, err := creds.ResolveSignedToken(ctx, signed)
//
// See the http package for the REST API and the database package for the
// repository backends.
package galleria
