// Package sdk is a typed HTTP client for a remote mythopedia API server.
//
// For embedding the search engine in-process over a Redis content store,
// use the root mythopedia package instead.
package sdk
