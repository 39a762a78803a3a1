// Package api is the client for the storefront's remote API.
//
// The API serves the product list and accepts orders:
//
//	GET  {base}/product/  -> {"total": n, "items": [...]}
//	POST {base}/order     -> {"id": "...", "total": n}
//
// Failed requests carry {"error": "..."}. A 4xx response becomes a
// *ValidationError with the server's message; transport failures and other
// statuses become a *NetworkError. Product image paths are returned
// prefixed with the CDN base URL.
package api
