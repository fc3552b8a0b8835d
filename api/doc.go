// Package api provides the HTTP surface of the sync server.
//
// The api package implements:
//   - The /ws websocket endpoint (upgrade handled by transport/websocket)
//   - A read-only space catalog API
//   - Health checking
//
// Endpoints:
//
// Catalog:
//   - GET /api/v1/spaces - List space definitions with live occupancy
//   - GET /api/v1/space/{id} - Get one space definition
//
// The space definition endpoint serves the same JSON schema that
// catalog.HTTPDirectory consumes, so one instance can act as the
// directory for another.
//
// Realtime:
//   - GET /ws - WebSocket upgrade; all session traffic flows here
//
// Health:
//   - GET /healthz
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
package api
