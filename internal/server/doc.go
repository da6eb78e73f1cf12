// Package server exposes a preference store over HTTP so that programs
// which cannot link the store (a browser page, a shell script) can read the
// compiled background and change the selection.
//
// Routes:
//
//	GET    /healthz
//	GET    /api/presets                  merged catalog
//	POST   /api/presets                  add a custom preset (201)
//	PUT    /api/presets/{id}             update a custom preset
//	DELETE /api/presets/{id}             delete a custom preset (204)
//	GET    /api/presets/{id}/style       compiled declaration for one preset
//	GET    /api/preference               state, current preset and its style
//	PUT    /api/preference/selection     {"id": "..."}
//	GET    /api/style                    compiled declaration (JSON)
//	GET    /api/style.css?selector=...   compiled declaration as a CSS rule
//	GET    /api/events                   websocket stream of changes
//
// Errors are JSON {"error": "..."} with 404 for unknown or missing presets,
// 409 for reserved or duplicate ids and 400 for invalid presets or bodies.
package server
