// Package all registers every built-in storage backend with the
// storage factory. Blank-import it from binaries that pick a backend
// from configuration.
package all

import (
	_ "salesetl/internal/storage/postgres"
	_ "salesetl/internal/storage/sqlite"
)
