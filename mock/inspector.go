package mock

import "github.com/fwojciec/pagesmith"

var _ pagesmith.Inspector = (*Inspector)(nil)

// Inspector is a mock implementation of pagesmith.Inspector.
type Inspector struct {
	InspectFn func(html string) (*pagesmith.PageInfo, error)
}

func (i *Inspector) Inspect(html string) (*pagesmith.PageInfo, error) {
	return i.InspectFn(html)
}
