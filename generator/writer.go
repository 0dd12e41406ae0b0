package generator

import (
	"github.com/oeb25/abeye/internal/fileutil"
	"github.com/oeb25/abeye/internal/pathutil"
)

// WriteFile writes the generated source to path, creating parent
// directories as needed. A file that already holds identical content is
// left untouched. Symlinks are refused. The first result reports whether
// the file was written.
func (r *GenerateResult) WriteFile(path string) (bool, error) {
	path, err := pathutil.SanitizeOutputPath(path)
	if err != nil {
		return false, err
	}
	return fileutil.WriteIfChanged(path, r.Source, fileutil.ReadableByAll)
}
