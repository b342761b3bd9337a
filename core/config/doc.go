// Package config provides configuration management for devserve.
//
// It utilizes Viper for loading configuration from an optional config.yaml,
// an optional .env file and environment variables. Defaults live next to each
// field in a `default:"..."` struct tag.
//
// # Configuration Structure
//
//   - Server: bind host and port, browser hook, shutdown timeout
//   - Site: root directory, index file, listing, source (local or bucket)
//   - Storage: S3/MinIO credentials and bucket for the bucket source
//   - Log: logging level and format
//
// Environment variables use the SECTION_KEY form, e.g. SITE_ROOT or SERVER_PORT.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Addr())
package config
