// Package cli is the interactive view layer of labctl. It renders data
// fetched through the API gateway and drives the session manager; it never
// touches the credential store or the request pipeline directly.
package cli
