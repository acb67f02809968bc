package diagfmt

import (
	"jsfront/internal/diag"
	"jsfront/internal/source"
)

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", "")
	}
}

// located reports whether the primary span of d points into a file. Load
// failures carry their path in the message instead.
func located(d *diag.Diagnostic, fs *source.FileSet) bool {
	if d.Code >= diag.IOLoadFileError && d.Code <= diag.IOEncodingError {
		return false
	}
	return fs != nil && fs.Has(d.Primary.File)
}
