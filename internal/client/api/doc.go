// Package api implements the HTTP boundary with the Lab Journal service.
//
// It has two halves. The transport half (client.go, errors.go, multipart.go)
// is a request pipeline: every outbound call gets the current credential
// attached as an Authorization header plus a generated request id, and every
// response is classified into one of the package's sentinel errors. A 401
// triggers the bound rejection hook synchronously, so by the time a caller
// observes ErrSessionExpired the session has already been torn down.
//
// The gateway half (auth.go, users.go, experiments.go, protocols.go,
// files.go, analytics.go) is a typed address book of endpoints with no
// business logic of its own.
package api
