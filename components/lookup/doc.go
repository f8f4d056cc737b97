// Package lookup provides a small net/http handler answering account
// uniqueness checks the way the registration form expects: 200 with a JSON
// body when the name is taken, 404 otherwise.
//
// The handler responds to GET and HEAD requests. Names are compared
// case-insensitively and a leading "@" is ignored.
package lookup
