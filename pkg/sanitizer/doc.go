// Package sanitizer normalizes free-form input before validation and storage.
//
// All functions are idempotent and return the empty string for input that is
// nothing but whitespace.
package sanitizer
