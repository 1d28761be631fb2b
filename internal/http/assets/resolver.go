// Package assets fingerprints static files so templates can link them with a
// cache-busting version.
package assets

import (
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"log/slog"
	"path"
	"strings"
)

const hashLen = 10

// AssetResolver maps logical static paths to versioned URLs.
type AssetResolver struct {
	fsys    fs.FS
	devMode bool
	logger  *slog.Logger
	hashes  map[string]string
}

// NewAssetResolver hashes every file under fsys. In dev mode hashes are
// recomputed on each lookup so edits show up without a restart.
func NewAssetResolver(fsys fs.FS, devMode bool, logger *slog.Logger) (*AssetResolver, error) {
	if logger == nil {
		logger = slog.Default()
	}
	ar := &AssetResolver{fsys: fsys, devMode: devMode, logger: logger, hashes: map[string]string{}}
	if fsys == nil {
		return ar, nil
	}
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		h, err := hashFile(fsys, p)
		if err != nil {
			return err
		}
		ar.hashes[p] = h
		return nil
	})
	return ar, err
}

func hashFile(fsys fs.FS, name string) (string, error) {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])[:hashLen], nil
}

// Resolve returns the URL for logicalName, e.g. "css/app.css" becomes
// "/static/css/app.css?v=1a2b3c4d5e". Unknown files resolve without a version.
func (ar *AssetResolver) Resolve(logicalName string) string {
	name := strings.TrimPrefix(path.Clean("/"+logicalName), "/")
	url := "/static/" + name
	if ar == nil {
		return url
	}
	if ar.devMode && ar.fsys != nil {
		h, err := hashFile(ar.fsys, name)
		if err != nil {
			ar.logger.Warn("asset not found", slog.String("asset", name), slog.Any("error", err))
			return url
		}
		return url + "?v=" + h
	}
	h, ok := ar.hashes[name]
	if !ok {
		return url
	}
	return url + "?v=" + h
}
