package listing

// State is the loading phase of a Listing.
type State int

const (
	// Empty is the initial state and the result of scanning a directory with no images.
	Empty State = iota
	// Ready means the directory was scanned and at least one entry is selectable.
	Ready
	// NotReady means a directory was opened and ScanDirectory must run next.
	NotReady
	// Preview means a single supported file was opened; its directory is not scanned yet.
	Preview
	// Unsupported means a single file with an unknown extension was opened.
	Unsupported
	// NotExists means the last path given to BeginPath does not exist.
	NotExists
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Ready:
		return "ready"
	case NotReady:
		return "not_ready"
	case Preview:
		return "preview"
	case Unsupported:
		return "unsupported"
	case NotExists:
		return "not_exists"
	default:
		return "unknown"
	}
}

// inputKind classifies the path handed to BeginPath.
type inputKind int

const (
	inputMissing inputKind = iota
	inputDir
	inputSupportedFile
	inputUnsupportedFile
)

func (k inputKind) String() string {
	switch k {
	case inputDir:
		return "dir"
	case inputSupportedFile:
		return "supported_file"
	case inputUnsupportedFile:
		return "unsupported_file"
	default:
		return "missing"
	}
}
