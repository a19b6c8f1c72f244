package models

// StoreInfo describes the backing store for the connectivity check.
type StoreInfo struct {
	Backend     string   // "mongodb", "postgres", "sqlite" or "sample"
	Name        string   // database name
	Collections []string // collection or table names
}
