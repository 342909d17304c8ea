// Package hooks builds the derived resources the UI layer binds to: entity
// lists and items, search, featured listings, per-user message and
// collection views, stats, and chat.
//
// Every constructor returns an inactive resource; call Activate to load it.
package hooks
