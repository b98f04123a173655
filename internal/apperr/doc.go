// Package apperr defines shared error sentinels for the insight application.
// It is a leaf package with no internal imports, so the entity classifier,
// the HTTP layer and the lookup core can all wrap the same sentinels
// without creating import cycles.
package apperr
