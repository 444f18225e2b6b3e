// Package types defines the watchlist entity types, the Store interface,
// configuration, and the standard error values shared by the engine,
// codec, store, and CLI packages.
package types
