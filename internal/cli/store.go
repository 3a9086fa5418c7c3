package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/rokovi/internal/constants"
	"github.com/julianstephens/rokovi/internal/keyring"
	"github.com/julianstephens/rokovi/internal/logger"
	"github.com/julianstephens/rokovi/internal/storage"
	"github.com/julianstephens/rokovi/internal/storage/postgres"
	"github.com/julianstephens/rokovi/internal/storage/sqlite"
)

// DefaultConfigPath is the SQLite database used when nothing else is configured.
const DefaultConfigPath = "~/.config/" + constants.AppName + "/" + constants.AppName + ".db"

var ErrEmbeddedPassword = errors.New("PostgreSQL connection strings with embedded passwords are not allowed on the command line")

// ResolveConfig returns the storage location to use and whether it came from
// a secret source (environment or keyring). An explicit --config always wins.
func ResolveConfig(config string, explicit bool) (string, bool) {
	if explicit && config != "" {
		return config, false
	}
	if env := os.Getenv(constants.EnvDBConnection); env != "" {
		return env, true
	}
	if connStr, err := keyring.GetConnectionString(); err == nil && connStr != "" {
		return connStr, true
	} else if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		logger.Debug("Keyring lookup failed", "error", err)
	}
	if config == "" {
		config = DefaultConfigPath
	}
	return config, false
}

// OpenStore picks a provider for config: a PostgreSQL URL or DSN, a .json
// file, or a SQLite database path. Passwords are only accepted when the
// connection string came from a secret source.
func OpenStore(config string, fromSecret bool) (storage.Provider, error) {
	if postgres.IsConnString(config) || strings.Contains(config, "host=") {
		if _, err := postgres.ValidateConnString(config); err != nil {
			if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, err
			}
			if !fromSecret {
				return nil, fmt.Errorf("%w; use %s, .pgpass, or '%s keyring set'", ErrEmbeddedPassword, constants.EnvDBConnection, constants.AppName)
			}
		}
		return postgres.New(config), nil
	}

	path, err := expandHome(config)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return storage.NewJSONStore(path), nil
	}
	return sqlite.NewStore(path), nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
