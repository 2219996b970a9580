package spiderkit

// ParseOutput is the standard result of parsing a fetched page: the
// items scraped from it and any newly discovered requests to schedule.
type ParseOutput[I any] struct {
	items    []I
	requests []*Request
}

// Parts returns the collected items and requests.
func (o *ParseOutput[I]) Parts() ([]I, []*Request) {
	return o.items, o.requests
}

// AddItem appends a scraped item to the output.
func (o *ParseOutput[I]) AddItem(item I) {
	o.items = append(o.items, item)
}

// AddItems appends multiple scraped items to the output.
func (o *ParseOutput[I]) AddItems(items ...I) {
	o.items = append(o.items, items...)
}

// AddRequest appends a request to be scheduled for crawling.
func (o *ParseOutput[I]) AddRequest(req *Request) {
	o.requests = append(o.requests, req)
}

// AddRequests appends multiple requests to be scheduled for crawling.
func (o *ParseOutput[I]) AddRequests(reqs ...*Request) {
	o.requests = append(o.requests, reqs...)
}
