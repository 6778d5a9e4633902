// Package quotesearch provides the minimal quote-search client used during
// name discovery.
//
// The endpoint is stateless: each Search call is independent, so one client
// serves the whole worker pool concurrently. Responses are strongly typed so
// the pool resolver can inspect the quote type flag when deciding whether to
// accept a match.
package quotesearch
