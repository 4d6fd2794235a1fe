// Package lock observes and, when necessary, reclaims the advisory locks
// of the system package database. The locks are owned by the operating
// system's package tooling, never by jetup; this package only waits for
// them to come free and clears artifacts left behind by dead holders.
package lock

// Resource identifies one externally owned lock that mutating actions
// contend on.
type Resource struct {
	// ID is a short human-readable name used in log entries.
	ID string
	// LockPath is the lock file probed for an active holder.
	LockPath string
}

// Well-known locks of the Debian/Ubuntu package database.
var (
	DpkgLock         = Resource{ID: "dpkg", LockPath: "/var/lib/dpkg/lock"}
	DpkgFrontendLock = Resource{ID: "dpkg-frontend", LockPath: "/var/lib/dpkg/lock-frontend"}
	AptListsLock     = Resource{ID: "apt-lists", LockPath: "/var/lib/apt/lists/lock"}
	AptArchivesLock  = Resource{ID: "apt-archives", LockPath: "/var/cache/apt/archives/lock"}
)

// AptResources returns every lock an apt or dpkg invocation may take.
func AptResources() []Resource {
	return []Resource{DpkgLock, DpkgFrontendLock, AptListsLock, AptArchivesLock}
}
