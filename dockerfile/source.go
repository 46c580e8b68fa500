package dockerfile

// Identifies which form a [Source] was built with.
type sourceForm int

const (
	formNone sourceForm = iota
	formSingle
	formList
)

// The source argument of a COPY directive: either a single path or a
// list of paths.
//
// Build values with [Src] or [SrcList]; the zero value is neither form
// and makes [Dockerfile.Copy] fail.
type Source struct {
	form  sourceForm
	path  string
	paths []string
}

// A single source path. COPY renders it as "<src> <dest>".
func Src(path string) Source {
	return Source{form: formSingle, path: path}
}

// A list of source paths. COPY renders them together with the
// destination as one JSON array, as the Dockerfile grammar requires for
// multi-source copies.
func SrcList(paths ...string) Source {
	return Source{form: formList, paths: paths}
}
