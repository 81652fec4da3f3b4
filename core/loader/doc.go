// Package loader registers self-contained HTTP features on the fiber app.
//
// A feature names itself, says whether it is enabled, and mounts its routes:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// Manager.LoadAll mounts the enabled features in registration order and returns
// their names. The first Load error stops loading. The start command registers
// cards, search (enabled only with a search index) and status.
package loader
