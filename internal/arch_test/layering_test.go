package arch_test

import (
	"path/filepath"
	"testing"
)

// layers assigns each internal package to a numeric layer. Lower layers are
// more foundational; higher layers may depend on lower ones but not vice versa.
// A package at layer N may only import packages at layer N or below.
var layers = map[string]int{
	"catalog": 0,
	"config":  0,
	"logging": 0,

	"evolution": 1,
	"naming":    1,

	"ui": 2,
}

// TestDependencyLayering verifies that no internal package imports a package
// from a higher layer.
func TestDependencyLayering(t *testing.T) {
	t.Parallel()

	dir := internalDirPath(t)

	for _, pkg := range internalPackages(t) {
		importerLayer, ok := layers[pkg]
		if !ok {
			// Unknown packages are caught by TestNoUnknownPackages.
			continue
		}

		for _, imp := range importsOf(t, filepath.Join(dir, pkg)) {
			importedLayer, ok := layers[imp]
			if !ok {
				continue
			}
			if importerLayer < importedLayer {
				t.Errorf("layer violation: %s (layer %d) imports %s (layer %d)",
					pkg, importerLayer, imp, importedLayer)
			}
		}
	}
}

// TestNamingIndependentOfResolver keeps name normalization usable without the
// resolver: both sit on the catalog, neither on the other.
func TestNamingIndependentOfResolver(t *testing.T) {
	t.Parallel()

	dir := internalDirPath(t)
	for _, pair := range [][2]string{{"naming", "evolution"}, {"evolution", "naming"}} {
		for _, imp := range importsOf(t, filepath.Join(dir, pair[0])) {
			if imp == pair[1] {
				t.Errorf("%s must not import %s", pair[0], pair[1])
			}
		}
	}
}

// TestNoUnknownPackages verifies that every internal package has an assigned
// layer.
func TestNoUnknownPackages(t *testing.T) {
	t.Parallel()

	for _, pkg := range internalPackages(t) {
		if _, ok := layers[pkg]; !ok {
			t.Errorf("package %s has no layer assignment; add it to the layers map", pkg)
		}
	}
}
