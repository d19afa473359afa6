// Package server exposes the placement pipeline over HTTP.
//
// # Routes
//
//	GET  /healthz            liveness probe
//	GET  /v1/version         build information
//	GET  /v1/scene/default   the built-in demo plan
//	POST /v1/scene           generate a scene from a plan
//	POST /v1/grid            generate a single jittered-grid layer
//	POST /v1/poisson         generate a single Poisson layer
//	POST /v1/plot            render a scene as png, svg or pdf
//
// Scene responses use the JSON format of package io. Every response carries
// an X-Cache header ("hit" or "miss") and an X-Scene-Key header with the
// cache key of the scene, so clients can tell when two requests resolved to
// the same plan.
//
// Errors are returned as {"code": "...", "message": "..."} with status 400
// for invalid input, 404 for missing resources and 500 otherwise.
package server
