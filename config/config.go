/* config.go
 * Contains the process configuration, read from the environment and an optional .env file
 * Authors: Zachary Bower
 */

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const (
	DefaultDBName    = "axe_throwing"
	DefaultPort      = 3000
	DefaultMongoHost = "cluster0.mongodb.net"
)

type Config struct {
	MongoURI  string
	DBName    string
	Port      int
	LogLevel  zerolog.Level
	LogPretty bool
}

// Addr returns the address the web server listens on
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Load reads the .env files (default ".env") into the environment and builds the Config from it. Missing .env files
// are not an error.
// Preconditions: Receives optional paths of .env files
// Postconditions: Returns the Config, or an error if a .env file can't be parsed or a setting is invalid
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("error loading .env file: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds the Config from the variables returned by getenv.
// Preconditions: Receives a lookup function such as os.Getenv
// Postconditions: Returns the Config with defaults applied, or an error if a setting is invalid
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		MongoURI: getenv("MONGODB_URI"),
		DBName:   getenv("MONGODB_DB"),
		Port:     DefaultPort,
		LogLevel: zerolog.InfoLevel,
	}

	if cfg.MongoURI == "" {
		uri, err := atlasURI(getenv("MONGODB_USER"), getenv("MONGODB_PASS"), getenv("MONGODB_HOST"))
		if err != nil {
			return Config{}, err
		}
		cfg.MongoURI = uri
	}
	if cfg.DBName == "" {
		cfg.DBName = DefaultDBName
	}

	if raw := getenv("PORT"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil || port <= 0 || port > 65535 {
			return Config{}, fmt.Errorf("invalid PORT %q", raw)
		}
		cfg.Port = port
	}

	if raw := getenv("LOG_LEVEL"); raw != "" {
		level, err := zerolog.ParseLevel(strings.ToLower(raw))
		if err != nil {
			return Config{}, fmt.Errorf("invalid LOG_LEVEL %q: %w", raw, err)
		}
		cfg.LogLevel = level
	}

	if raw := getenv("LOG_PRETTY"); raw != "" {
		pretty, err := convertStrToBool(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LOG_PRETTY %q: %w", raw, err)
		}
		cfg.LogPretty = pretty
	}

	return cfg, nil
}

// atlasURI builds a mongodb+srv uri from credentials, the way hosted clusters are addressed
func atlasURI(user, pass, host string) (string, error) {
	if user == "" || pass == "" {
		return "", errors.New("MONGODB_URI or MONGODB_USER and MONGODB_PASS must be set")
	}
	if host == "" {
		host = DefaultMongoHost
	}

	u := url.URL{
		Scheme:   "mongodb+srv",
		User:     url.UserPassword(user, pass),
		Host:     host,
		Path:     "/",
		RawQuery: "retryWrites=true&w=majority",
	}
	return u.String(), nil
}

// convertStrToBool converts a string of true or false into a boolean for comparisons
// Preconditions: Receives string containing either true or false (case insensitive)
// Postconditions: Returns boolean value or an error if the string is not true or false
func convertStrToBool(str string) (bool, error) {
	str = strings.TrimSpace(str)
	str = strings.ToLower(str)

	if str == "true" {
		return true, nil
	} else if str == "false" {
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean string")
}
