package shortpath

// Mode selects what the accessors (Get, String) return by default.
type Mode int

//go:generate go run github.com/dmarkham/enumer -type=Mode -trimprefix Mode -transform lower
const (
	// Return resolved paths as registered or found.
	ModeResolve Mode = iota
	// Return canonical paths (symlinks, . and .. resolved).
	ModeReal
)
