// Package liberrors holds Go renditions of the errors raised by the libraries a
// wallet client talks through: the GraphQL client, EVM wallet libraries, the
// Ledger hardware transport and the Solana RPC. Producers that bridge those
// libraries into Go return these types so the classifier can recognize them with
// errors.As instead of string matching.
package liberrors
