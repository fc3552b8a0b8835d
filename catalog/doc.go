// Package catalog resolves space descriptors for the sync engine.
//
// Space metadata (dimensions and statically-placed elements) is owned by
// an external service; the engine only consumes it through the Directory
// contract at room-creation time. Two implementations are provided:
//
//   - Manager loads JSON space definitions from a local directory and
//     caches them, mirroring how the server is deployed alongside its
//     space fixtures.
//   - HTTPDirectory queries the upstream metadata service over HTTP.
//
// Both map an unknown space to ErrSpaceNotFound, which the gateway
// treats as a recoverable join failure.
package catalog
