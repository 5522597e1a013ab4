// Package client is the access layer to the remote catalog API.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface): Login,
//     GetProducts, SearchProducts, GetProductByID, GetCategories, AddProduct,
//     UpdateProduct and DeleteProduct.
//  2. A concrete JSON-over-HTTP implementation (see HTTPClient) configured
//     once with a base endpoint and default headers. A request interceptor
//     (an http.RoundTripper) reads the bearer token from durable storage
//     before every request and sets it on that request only.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) opening the
//     SQLite storage and applying the embedded goose migrations.
//
// # Error Handling
//
// Every failed operation returns a single *RequestError whose message comes
// from ErrorMessage: the response body "message" field, else its "error"
// field, else the failure's own message, else "Something went wrong". The
// raw transport error is not exposed. Common conditions match sentinel
// errors with errors.Is: ErrUnauthorized, ErrUnavailable.
//
// No retries are made; every failure is surfaced once.
package client
