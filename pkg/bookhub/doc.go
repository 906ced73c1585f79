// Package bookhub defines the types shared by the BookHub back-office client:
// the result envelope, paged results, domain records, list queries, the
// failure taxonomy and the client interfaces.
//
// # Envelopes
//
// Every endpoint answers with
//
//	{"code": "SU", "message": "...", "data": ...}
//
// where "SU" marks success. Any other code is a business failure whose
// message is meant for the user as-is. Resource clients return envelopes as
// values and reserve the error return for transport problems:
//
//	env, err := client.Policies().List(ctx, token, query)
//	if err != nil {
//		// network, timeout, undecodable body
//	}
//	if err := env.Err(); err != nil {
//		// non-SU envelope, bookhub.IsRemote(err) == true
//	}
//
// # Pages
//
// List endpoints return either {content, totalPages, currentPage} or a bare
// array. Page[T] decodes both; a bare array is a single page.
//
// # Failures
//
// Controllers report errors as *Failure with one of three kinds: local
// (validation, missing login), remote (server message) and transport
// (generic message, cause kept for errors.Is/As). DisplayMessage returns the
// text to show for any error.
package bookhub
