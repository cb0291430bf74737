// Package commands defines the ledger CLI.
//
// Commands
//
//   - serve    Migrate the schema and serve the HTTP API
//   - migrate  Bring the schema up to date and exit
//   - seed     Load the demo marketplace
//   - token    Sign a bearer token for a profile
//   - events   Tail ledger events published to Redis
//
// The root command resolves the config file and builds the app before any
// subcommand runs. Subcommands share that app; it is closed once Execute returns.
package commands
