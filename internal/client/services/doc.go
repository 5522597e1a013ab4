// Package services holds the client's stateful stores. SessionStore owns the
// authenticated identity and its persisted copy; CatalogStore mirrors the
// remote product catalog in memory.
//
// Both stores publish their state to observers after every change, so a
// presentation layer can bind to them instead of polling.
package services
