// Package sheet reads and writes album sheets: the YAML documents named
// after their album directory (<dir>/<dir>.yml) that hold the catalog data
// the tag setter and the collector use.
//
//	s := sheet.Build(release, linerNotes)
//	path, err := sheet.Write(ctx, dir, s)
//
//	s, err = sheet.Read(dir)
//	if errors.Is(err, sheet.ErrNoSheet) {
//	    // fetch one first
//	}
package sheet
