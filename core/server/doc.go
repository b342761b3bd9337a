// Package server owns the HTTP listener lifecycle.
//
// # Configuration
//
// The Config struct defines the bind host and port, whether the browser hook
// fires, and how long shutdown may take.
//
// # Lifecycle
//
// Server.Run binds first, so a port conflict surfaces synchronously as a
// *BindError before anything is printed or launched. Start hooks then receive
// the public URL, and the app serves until the context is cancelled.
//
//	srv := server.New(cfg.Server, app, log)
//	err := srv.Run(ctx, browser.Hook(browser.Default(), log))
package server
