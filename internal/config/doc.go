// Package config manages user-level settings stored at ~/.ngtron/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// the preferred package manager and log level, with NGTRON_* environment
// variables taking precedence over the file.
package config
