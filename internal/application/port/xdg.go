package port

// XDGPaths provides XDG Base Directory paths.
type XDGPaths interface {
	ConfigDir() (string, error)
	DataDir() (string, error)
	StateDir() (string, error)
	CacheDir() (string, error)

	// ManDir is where generated man pages are installed.
	ManDir() (string, error)

	// LayoutExportDir is where exported layout files are written by default.
	LayoutExportDir() (string, error)
}
