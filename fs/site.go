// Package fs provides file-based storage for generated sites.
package fs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/pagesmith"
)

// Well-known file names inside a site directory.
const (
	IndexFile    = "index.html"
	ReadmeFile   = "README.md"
	SnapshotsDir = "snapshots"
)

// SiteStore writes a site bundle (document, README, snapshots) with atomic
// update semantics. Files are written to baseDir/name.tmp and moved to
// baseDir/name on Commit.
type SiteStore struct {
	baseDir string
	name    string
}

// NewSiteStore creates a new SiteStore.
func NewSiteStore(baseDir, name string) *SiteStore {
	return &SiteStore{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *SiteStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

// Dir returns the final directory of the site.
func (s *SiteStore) Dir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes data to rel inside the pending site directory.
func (s *SiteStore) Save(rel string, data []byte) error {
	clean := filepath.Clean(filepath.FromSlash(rel))
	if clean == "." || filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return pagesmith.Errorf(pagesmith.EINVALID, "invalid site path %q", rel)
	}

	fullPath := filepath.Join(s.tempDir(), clean)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(fullPath, data, 0644)
}

// SaveHTML writes the document as index.html.
func (s *SiteStore) SaveHTML(html string) error {
	return s.Save(IndexFile, []byte(html))
}

// SaveReadme writes README.md.
func (s *SiteStore) SaveReadme(markdown string) error {
	return s.Save(ReadmeFile, []byte(markdown))
}

// SaveSnapshot writes snap as snapshots/<device>.png.
func (s *SiteStore) SaveSnapshot(snap *pagesmith.Snapshot) error {
	name := pagesmith.Slugify(snap.Device.Name) + ".png"
	return s.Save(SnapshotsDir+"/"+name, snap.PNG)
}

// Commit replaces the final directory with everything saved so far.
func (s *SiteStore) Commit() error {
	if err := os.RemoveAll(s.Dir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.Dir())
}

// Abort discards everything saved since the last Commit.
func (s *SiteStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}
