// Package manifest reads the vendor manifests that list third-party assets.
package manifest

import (
	"errors"
	"io/fs"
	"os"

	"go.trai.ch/press/internal/core/domain"
	"go.trai.ch/press/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ManifestLoader for YAML (and JSON) manifests.
type Loader struct{}

var _ ports.ManifestLoader = (*Loader)(nil)

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the three manifests in paths. Declared order is kept verbatim and
// listed files are not checked.
func (l *Loader) Load(paths domain.ManifestPaths) (domain.VendorManifest, error) {
	var (
		m    domain.VendorManifest
		errs error
	)

	for _, item := range []struct {
		path string
		dst  *domain.VendorList
	}{
		{paths.Styles, &m.Styles},
		{paths.Scripts, &m.Scripts},
		{paths.Fonts, &m.Fonts},
	} {
		list, err := readList(item.path)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		*item.dst = list
	}

	if errs != nil {
		return domain.VendorManifest{}, errs
	}
	return m, nil
}

func readList(path string) (domain.VendorList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.VendorList{}, zerr.With(domain.ErrManifestNotFound, "path", path)
		}
		return domain.VendorList{}, zerr.With(zerr.Wrap(err, domain.ErrFileReadFailed.Error()), "path", path)
	}

	var doc listDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return domain.VendorList{}, zerr.With(zerr.Wrap(err, domain.ErrManifestParseFailed.Error()), "path", path)
	}

	return domain.VendorList{Src: doc.Src, Dest: doc.Dest}, nil
}
