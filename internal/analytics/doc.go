// Package analytics holds the pure aggregation core of the dashboard: record
// filtering, descriptive statistics, fixed-bin histograms and monthly averages.
//
// Every function is a pure function of its inputs. Inputs are never mutated and
// results are freshly allocated, so callers may invoke them concurrently.
// Missing metric values are excluded from aggregation, and empty inputs degrade
// to zero-filled or empty results instead of errors.
package analytics
