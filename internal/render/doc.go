// Package render builds the HTML result page for a scored submission.
package render
