// Package models defines the wire types exchanged with the Traffic Hub
// backend and the small client-side value types built around them.
//
// JSON field names follow the backend verbatim, which mixes PascalCase
// (vehicle and violation records) with snake_case (stats, auth, evidence).
package models
