// Package prediction provides the fill-rate models used to estimate how fast
// each bin compartment fills. Models are loaded once at startup from JSON
// artifacts and are read-only afterwards, so a single instance can serve
// concurrent requests.
package prediction
