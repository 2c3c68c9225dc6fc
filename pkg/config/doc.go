// Package config loads typed configuration structs from environment
// variables, with an optional .env file for local development.
package config
