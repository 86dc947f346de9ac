// Package exchange sends the single HTTP request of an invocation and reads
// the whole response.
//
// Response bodies are decoded as UTF-8. Invalid sequences are replaced with
// U+FFFD rather than failing the request; errors while reading the body are
// still fatal.
package exchange
