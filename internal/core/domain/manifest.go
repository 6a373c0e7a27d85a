package domain

// VendorList is one vendor manifest: ordered source paths and an optional
// destination override.
type VendorList struct {
	Src  []string
	Dest string
}

// VendorManifest holds the three vendor lists. Src order is the
// concatenation order of the bundled output.
type VendorManifest struct {
	Styles  VendorList
	Scripts VendorList
	Fonts   VendorList
}
