// Package db provides the embedded database schema and seed data.
package db

import _ "embed"

// Schema contains the DDL statements for all application tables.
//
//go:embed migrations/001_schema.sql
var Schema string

// SeedProducts is the built-in reference catalog (bilingual names, category,
// unit, reference price) used by cmd/seed-catalog.
//
//go:embed seed/products.json
var SeedProducts []byte
