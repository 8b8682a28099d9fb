// Package healthcheck implements periodic health checking of the served root
// directory. It logs availability transitions and reports them to metrics.
package healthcheck
