package product

import "fmt"

// CollectionError is returned when a product page cannot be fetched or
// does not yield a usable snapshot.
type CollectionError struct {
	URL     string
	Message string
	Cause   error
}

func (e *CollectionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("product collection failed for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("product collection failed for %s: %s", e.URL, e.Message)
}

func (e *CollectionError) Unwrap() error {
	return e.Cause
}
