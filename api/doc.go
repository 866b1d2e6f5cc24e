// Package api implements the request-handling core of the items service.
//
// A [Router] receives an ingress-neutral [Request], selects the operation
// for its method and path, runs it on a [Service] and formats the outcome as
// a [Response]:
//
//	POST   /items       create  201
//	GET    /items       list    200
//	GET    /items/{id}  get     200
//	PUT    /items/{id}  update  200
//	DELETE /items/{id}  delete  204
//
// Unknown paths yield 404 and known paths with an unsupported method yield
// 405 with an Allow header. Failures are rendered as
//
//	{"error": "<kind>", "message": "<text>", "details": [...], "errorId": "<uuid>"}
//
// where details is present only for validation failures and errorId only
// for internal errors, whose cause is logged but never returned.
//
// The [Service] depends only on the [Store] interface; see the store package
// for the DynamoDB and in-memory implementations.
package api
