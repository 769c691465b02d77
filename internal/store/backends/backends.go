// Package backends pulls in every storage backend compiled into this
// build. Importing it for side effects is what makes a backend name
// resolvable through the store registry.
package backends

import (
	_ "hoard/internal/store/bolt"
	_ "hoard/internal/store/memory"
	_ "hoard/internal/store/sqlite"
)
