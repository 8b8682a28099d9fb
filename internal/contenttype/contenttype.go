package contenttype

import "sort"

// Type is a MIME type served in the Content-Type header.
type Type string

const (
	Unsupported Type = ""

	HTML       Type = "text/html"
	CSS        Type = "text/css"
	JavaScript Type = "application/javascript"
	PNG        Type = "image/png"
	JPG        Type = "image/jpg"
	JPEG       Type = "image/jpeg"
	GIF        Type = "image/gif"
	JSON       Type = "application/json"
	XML        Type = "application/xml"
)

// Supported reports whether t is a servable type.
func (t Type) Supported() bool {
	return t != Unsupported
}

func (t Type) String() string {
	return string(t)
}

// Table is an immutable extension to Type lookup. Keys carry no leading dot.
type Table struct {
	types map[string]Type
}

// Default returns the fixed table of extensions the server serves.
func Default() Table {
	return Table{
		types: map[string]Type{
			"html": HTML,
			"css":  CSS,
			"js":   JavaScript,
			"png":  PNG,
			"jpg":  JPG,
			"jpeg": JPEG,
			"gif":  GIF,
			"json": JSON,
			"xml":  XML,
		},
	}
}

// Lookup returns the type registered for ext, or Unsupported.
// Matching is case-sensitive: "PNG" is not "png".
func (t Table) Lookup(ext string) Type {
	if typ, ok := t.types[ext]; ok {
		return typ
	}
	return Unsupported
}

func (t Table) Supports(ext string) bool {
	return t.Lookup(ext).Supported()
}

// Extensions lists the registered extensions in sorted order.
func (t Table) Extensions() []string {
	exts := make([]string, 0, len(t.types))
	for ext := range t.types {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
