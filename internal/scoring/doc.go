// Package scoring turns a submitted self-assessment form into a total score
// and a result category.
//
// Scoring is stateless: a Table is built once at startup (the built-in
// default or a YAML file) and shared read-only by every request.
package scoring
