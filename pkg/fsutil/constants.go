package fsutil

import "os"

// File and directory permission constants.
// These follow standard Unix permission conventions and are used consistently
// throughout the application to ensure consistent file and directory permissions.
const (
	// Default file modes.
	FileModeDefault = 0o644 // -rw-r--r--: Default for regular files
	FileModeSecure  = 0o640 // -rw-r-----: For sensitive files (owner read/write, group read)
	FileModeExec    = 0o755 // -rwxr-xr-x: For executable files

	// Directory modes.
	DirModeDefault = 0o755 // drwxr-xr-x: Default for directories
	DirModeSecure  = 0o750 // drwxr-x---: For sensitive directories
	DirModePrivate = 0o700 // drwx------: For private directories

	// DirModeShared is the group-collaborative mode used for service
	// config/data/log directories: owner and group have full access,
	// others none.
	DirModeShared = 0o770
)

// DirModeSharedSetgid is DirModeShared plus the set-group-id bit so files
// created under the directory inherit its group.
var DirModeSharedSetgid = os.FileMode(DirModeShared) | os.ModeSetgid
