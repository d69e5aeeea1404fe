// Package upgrades defines the compiled-in migration chain for the asset
// database. Each upgrade lives in its own file named after the version it
// produces; All assembles the chain for registry construction.
package upgrades
