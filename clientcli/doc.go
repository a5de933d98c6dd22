// Package clientcli provides a client library for the Galleria photo gallery API.
//
// It covers signup, login, gallery management and picture uploads. Calls
// other than Signup and Login send the configured bearer token. The package
// includes profile-based configuration for managing connections to multiple
// servers.
//
// # Basic Usage
//
// Log in and create a gallery:
//
//	client, err := clientcli.New(&clientcli.Config{Endpoint: "http://localhost:5708"})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	token, err := client.Login(ctx, "alice", "s3cret")
//	if err != nil {
//		log.Fatal(err)
//	}
//	client.SetToken(token)
//
//	gallery, err := client.CreateGallery(ctx, "holiday", "summer 2026")
//
// Upload a picture:
//
//	pic, err := client.UploadPicture(ctx, gallery.ID.String(), clientcli.UploadOptions{
//		LocalPath: "./beach.jpg",
//	})
//
// Server failures come back as *ServerError and match the sentinels with errors.Is:
//
//	if errors.Is(err, clientcli.ErrUnauthorized) {
//		// log in again
//	}
//
// # Profile Configuration
//
// Profiles live in ~/.galleria/config.yaml and hold an endpoint plus the
// token from the last login:
//
//	configFile, err := clientcli.LoadConfigFile(clientcli.DefaultConfigPath())
//	profile, err := configFile.GetProfile("production")
//	client, err := clientcli.New(clientcli.ConfigFromProfile(profile))
//
// # Output Formatting
//
// Use formatters for human-readable or JSON output:
//
//	formatter := clientcli.NewFormatter(jsonOutput, quiet)
//	formatter.FormatGalleryList(os.Stdout, list)
package clientcli
