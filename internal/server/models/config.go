package models

// Config is one row of the key/value settings table.
type Config struct {
	Key   string
	Value string
}
