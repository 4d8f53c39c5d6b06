// Package credentials implements the in-memory credential collection that is persisted,
// as a whole, through an encrypted Backend after every successful mutation.
package credentials
