// Package cli implements the souk command line: the registry's entry
// points (init, create, get, list, settle) plus the transfer journal,
// bulk seeding from CUE catalogs, and the HTTP server.
//
// Exit codes: 0 success, 1 entry-point failure (duplicate id, unknown
// listing, wrong amount), 2 command error (bad flags, unreadable
// database).
package cli
