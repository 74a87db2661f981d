// Package http holds the site's request handlers and its route table.
//
// Every route is an exact (method, path) match. Pages are served from the
// in-memory content store, the video is streamed window by window from
// disk, and quiz submissions are scored and rendered per request.
package http
