// Package storefront provides an HTTP client for the remote storefront API.
//
// # Overview
//
// This package defines the API client for the retail brand's cart, catalog,
// auth and checkout endpoints. It handles HTTP communication, JSON
// serialization, and the type-safe wire representation of carts and products.
//
// # Endpoints
//
//   - GET    /cart              current cart for the bearer token
//   - POST   /cart              add/increment a product line
//   - PUT    /cart/{productId}  set an exact line quantity
//   - DELETE /cart/{productId}  delete a line
//   - DELETE /cart              delete the whole cart
//   - POST   /cart/sync         merge guest lines into the account cart
//   - GET    /products          product catalog
//   - POST   /auth/login        exchange credentials for a token
//   - POST   /checkout          place an order for the current cart
//
// Every cart mutation returns the server's canonical CartPayload; callers are
// expected to replace local state with it rather than patching incrementally.
//
// # Request Handling
//
// All requests use context for cancellation, carry Accept/User-Agent headers
// and a fresh X-Request-ID, and attach Authorization: Bearer when a token has
// been installed via Login or SetToken. JSON bodies are used for mutations.
//
// # Error Handling
//
// Errors fall into four groups, all wrapped with fmt.Errorf context:
//
//   - client initialization: invalid api_base format
//   - network: connection refused, timeout, DNS failure
//   - HTTP: 4xx/5xx status codes ("api /cart returned status 500")
//   - deserialization: malformed JSON responses
//
// The client performs no retries and surfaces no state; translating failures
// into user-visible cart state is the session layer's job.
//
// # Thread Safety
//
// Client is safe for concurrent use. The token is guarded by a mutex so a
// login on one goroutine is visible to requests issued from others.
package storefront
