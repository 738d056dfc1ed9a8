package listing

import (
	"os"
	"path/filepath"

	"imgview/internal/fsmeta"
	"imgview/internal/log"
	"imgview/pkg/types"
)

// BeginPath classifies path and moves the listing to the matching state.
//
//   - a missing path yields NotExists; entries and directory are left alone
//   - a directory yields NotReady; call ScanDirectory next
//   - a supported file becomes the sole entry in Preview; scan afterwards
//   - an unsupported file becomes the sole entry in Unsupported
//
// While Ready, paths inside the listed directory reuse the listing: the
// directory itself is a no-op, a listed file is selected, an unlisted
// unsupported file is ignored and an unlisted supported file restarts
// classification so a scan can pick it up.
func (l *Listing) BeginPath(path string) State {
	l.enter()
	defer l.leave()

	kind, dir, name, info := l.classify(path)
	sameDir := dir == l.dirPath

	logger := log.LogWithFields(log.F("path", path), log.F("state", l.state.String()), log.F("input", kind.String()))

	switch {
	case kind == inputMissing:
		l.state = NotExists

	case l.state == Ready && sameDir && kind == inputDir:
		// Reuse the existing scan.

	case l.state == Ready && sameDir && l.IndexOf(name) >= 0:
		l.selected = l.IndexOf(name)

	case l.state == Ready && sameDir && kind == inputUnsupportedFile:
		// Unknown file in the listed directory, nothing to show.

	default:
		l.reset(dir)
		switch kind {
		case inputDir:
			l.state = NotReady
		case inputSupportedFile:
			l.entries = []types.FileEntry{entryFromInfo(path, info)}
			l.state = Preview
		case inputUnsupportedFile:
			l.entries = []types.FileEntry{entryFromInfo(path, info)}
			l.state = Unsupported
		}
	}

	logger.Debugf("begin path -> %s", l.state)
	return l.state
}

func (l *Listing) reset(dir string) {
	l.entries = nil
	l.selected = 0
	l.dirPath = dir
}

// classify stats path and returns its kind, the absolute directory it
// belongs to and, for files, the base name.
func (l *Listing) classify(path string) (inputKind, string, string, os.FileInfo) {
	info, err := os.Stat(path)
	if err != nil {
		return inputMissing, "", "", nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}
	if info.IsDir() {
		return inputDir, abs, "", info
	}
	name := filepath.Base(abs)
	if l.exts.Match(name) {
		return inputSupportedFile, filepath.Dir(abs), name, info
	}
	return inputUnsupportedFile, filepath.Dir(abs), name, info
}

func entryFromInfo(path string, info os.FileInfo) types.FileEntry {
	return types.FileEntry{
		Name:      info.Name(),
		ModTime:   info.ModTime(),
		BirthTime: fsmeta.BirthTime(path, info),
		Size:      info.Size(),
	}
}
