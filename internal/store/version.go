package store

import (
	"runtime/debug"
	"sync"
)

var buildInfo = sync.OnceValue(func() *debug.BuildInfo {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return nil
	}
	return info
})

// EngineVersion resolves the version of the engine module compiled into
// this binary, for diagnostics surfaces. Falls back to "name (devel)"
// when build info is unavailable (e.g. some test binaries).
func EngineVersion(modulePath, name string) string {
	if info := buildInfo(); info != nil {
		for _, dep := range info.Deps {
			if dep.Path == modulePath {
				return name + " " + dep.Version
			}
		}
	}
	return name + " (devel)"
}
