package services

// EmptyListIsError preserves the API convention that an empty result set from
// a list operation is reported as NotFound instead of an empty sequence. The
// switch exists so tests can exercise both behaviors; production keeps it on.
var EmptyListIsError = true

// EmptyResult reports whether a result set of size n must be treated as a
// NotFound failure under the current policy.
func EmptyResult(n int) bool {
	return EmptyListIsError && n == 0
}
