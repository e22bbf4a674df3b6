// Package linkverify checks the relative links of a rendered documentation set
// against the files in that set, and publishes verification and generation
// events to NATS.
package linkverify
