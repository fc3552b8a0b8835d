// Package auth verifies the opaque tokens presented on join.
//
// The engine never issues credentials; account management is an external
// collaborator. All the engine needs is the Verifier contract: given a
// token, return the user identifier or report that the token is invalid.
// JWTVerifier is the default implementation, matching the HS256 tokens
// minted by the account service's signin endpoint.
package auth
