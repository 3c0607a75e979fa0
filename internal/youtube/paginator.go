package youtube

// page is one response from a paginated list endpoint. An empty NextPageToken
// marks the final page.
type page[T any] struct {
	items     []T
	nextToken string
}

// collectPages drives a list endpoint from the empty continuation token until
// exhaustion, accumulating every item in page order. fetch issues one
// resilient call for the given token.
//
// On a terminal call failure the items gathered so far are returned together
// with the error; partial results are never discarded.
func collectPages[T any](fetch func(pageToken string) (page[T], error)) ([]T, error) {
	var items []T
	token := ""
	for {
		p, err := fetch(token)
		if err != nil {
			return items, err
		}
		items = append(items, p.items...)
		if p.nextToken == "" {
			return items, nil
		}
		token = p.nextToken
	}
}
