// Package api provides the edge domain REST API: domain registration, CName
// lookup and distribution reconcile. Mutating routes are authenticated with
// an X-API-Key header when a core database is configured.
package api
