package resolver

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/angeloszaimis/static-server/internal/contenttype"
)

var (
	ErrUnsupportedType = errors.New("unsupported file extension")
	ErrOutsideRoot     = errors.New("path resolves outside root")
)

// ResolvedPath is derived once per request and never stored.
type ResolvedPath struct {
	// RequestPath is the request path qualified with the default file
	// name when it did not already end with the extension.
	RequestPath string
	// FilePath is the absolute, cleaned candidate on disk.
	FilePath  string
	UnderRoot bool
	Extension string
	Type      contenttype.Type
}

type Resolver struct {
	root        string
	defaultFile string
	defaultExt  string
	types       contenttype.Table
}

// New creates a Resolver. root is made absolute and cleaned; defaultFile
// must carry an extension present in types.
func New(root, defaultFile string, types contenttype.Table) (*Resolver, error) {
	if root == "" {
		return nil, errors.New("root directory is required")
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %q: %w", root, err)
	}

	defaultExt := Extension(defaultFile, "")
	if !types.Supports(defaultExt) {
		return nil, fmt.Errorf("default file %q: %w", defaultFile, ErrUnsupportedType)
	}

	return &Resolver{
		root:        filepath.Clean(absRoot),
		defaultFile: defaultFile,
		defaultExt:  defaultExt,
		types:       types,
	}, nil
}

func (r *Resolver) Root() string {
	return r.root
}

func (r *Resolver) DefaultFile() string {
	return r.defaultFile
}

// Resolve maps a request path to a file under root. On ErrOutsideRoot the
// returned ResolvedPath is still populated with UnderRoot set to false.
func (r *Resolver) Resolve(requestPath string) (ResolvedPath, error) {
	ext := Extension(requestPath, r.defaultExt)

	typ := r.types.Lookup(ext)
	if !typ.Supported() {
		return ResolvedPath{Extension: ext}, fmt.Errorf("%w: %q", ErrUnsupportedType, ext)
	}

	// "/about" is treated as a directory: /about/index.html, not /about.html.
	name := requestPath
	if !strings.HasSuffix(requestPath, ext) {
		name = path.Join(requestPath, r.defaultFile)
	}

	candidate, err := filepath.Abs(filepath.Join(r.root, filepath.FromSlash(name)))
	if err != nil {
		return ResolvedPath{Extension: ext, Type: typ}, fmt.Errorf("%w: %v", ErrOutsideRoot, err)
	}

	resolved := ResolvedPath{
		RequestPath: name,
		FilePath:    candidate,
		UnderRoot:   Contains(r.root, candidate),
		Extension:   ext,
		Type:        typ,
	}
	if !resolved.UnderRoot {
		return resolved, fmt.Errorf("%w: %s", ErrOutsideRoot, requestPath)
	}

	return resolved, nil
}

// Extension returns the characters after the final dot of the last path
// segment, case preserved. fallback is returned when there is no dot or
// nothing follows it.
func Extension(requestPath, fallback string) string {
	segment := requestPath[strings.LastIndex(requestPath, "/")+1:]

	dot := strings.LastIndex(segment, ".")
	if dot < 0 || dot == len(segment)-1 {
		return fallback
	}

	return segment[dot+1:]
}

// Contains reports whether candidate is a strict descendant of root.
// Both paths are cleaned and compared segment by segment.
func Contains(root, candidate string) bool {
	if filepath.VolumeName(root) != filepath.VolumeName(candidate) {
		return false
	}

	rootSegments := segments(root)
	candidateSegments := segments(candidate)

	if len(candidateSegments) <= len(rootSegments) {
		return false
	}

	for i, segment := range rootSegments {
		if candidateSegments[i] != segment {
			return false
		}
	}

	return true
}

func segments(p string) []string {
	cleaned := filepath.Clean(p)
	cleaned = cleaned[len(filepath.VolumeName(cleaned)):]

	return strings.FieldsFunc(cleaned, func(r rune) bool {
		return r == filepath.Separator
	})
}
