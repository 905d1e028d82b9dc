package requestq

// reportRequestError reports a settled failure to the optional
// observer.
//
// Request errors do not affect other queued or active requests and are
// always also delivered through the request's Future.
// If no handler is registered, the error is silently ignored.
func (q *Queue[T]) reportRequestError(id string, err error) {
	if q.OnRequestError != nil {
		q.OnRequestError(id, err)
	}
}
