// Package handler implements the static file request handler. Each request
// resolves a content type and a candidate file under root, checks containment,
// reads the file and answers 200 with its bytes or a fixed 404.
package handler
