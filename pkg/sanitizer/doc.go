// Package sanitizer provides input normalization functions for booking and
// schedule data.
//
// All normalization functions are idempotent - applying them multiple times
// produces the same result. Functions handle invalid input gracefully,
// typically by returning empty strings or empty slices rather than errors.
//
// Normalization includes:
//   - Identifiers: Trim whitespace, lowercase
//   - Names: Collapse internal whitespace, trim leading/trailing spaces
//   - Emails: Trim whitespace, lowercase
//   - Time labels: Collapse whitespace, uppercase the AM/PM marker
//   - Weekdays: Trim whitespace, lowercase
//   - URLs: Enforce HTTPS, lowercase domains, preserve paths
//   - Slices: Remove duplicates and empty values after normalization
package sanitizer
