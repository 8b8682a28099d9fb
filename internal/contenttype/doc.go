// Package contenttype maps file extensions to the MIME types the server is
// willing to serve. The set is closed: any extension outside the table
// resolves to Unsupported.
package contenttype
