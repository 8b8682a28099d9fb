// Package logger builds the application's structured logger: text output in
// dev and staging, JSON in prod, with the environment attached to every record.
package logger
