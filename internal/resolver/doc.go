// Package resolver turns a request path into a candidate file under the
// server root. It resolves the extension and content type, appends the
// default file name to extensionless paths, and rejects any candidate that
// is not a descendant of root.
//
// Containment is checked segment by segment on lexically cleaned paths, so
// a root of /srv/pub never admits /srv/public-evil. Symlinks are not
// followed during the check.
package resolver
