//go:build property

package domain_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"go.trai.ch/press/internal/core/domain"
)

func TestMinNameProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	// ".min" lands right before the final extension.
	properties.Property("min suffix before extension", prop.ForAll(
		func(stem, ext string) bool {
			name := stem + "." + ext
			got := domain.MinName(name)
			return got == stem+".min."+ext && filepath.Ext(got) == "."+ext
		},
		gen.RegexMatch(`^[a-z][a-z0-9_-]{0,12}$`),
		gen.RegexMatch(`^[a-z]{1,4}$`),
	))

	properties.Property("stem is preserved", prop.ForAll(
		func(name string) bool {
			got := domain.MinName(name)
			return strings.HasPrefix(got, strings.TrimSuffix(name, filepath.Ext(name)))
		},
		gen.RegexMatch(`^[a-z][a-z0-9.]{0,16}$`),
	))

	properties.TestingRun(t)
}
