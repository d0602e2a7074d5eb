// Package api provides the HTTP REST API and WebSocket server of the
// smart home core.
//
// Every route under /api/v1 except health, metrics and login requires a
// Bearer access token. The WebSocket hub pushes accepted actuator targets
// and newly recorded sensor values to subscribed clients.
//
// The server follows the same lifecycle as the other infrastructure
// components:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
package api
