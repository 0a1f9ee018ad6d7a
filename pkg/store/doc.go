// Package store defines the key-value capability forms persist through.
//
// A Store is the server-side stand-in for a browser's local storage: string
// keys, string values, get and set. FormState encodes its fields as JSON and
// writes them under the form name; it never interprets stored bytes beyond
// that.
//
// Implementations:
//   - MemoryStore keeps values in process and suits tests and single-process hosts.
//   - redisstore.Store keeps values in Redis with an optional key prefix and TTL.
//
// A nil Store on a form means "no storage available"; persistence calls then
// return without error.
package store
