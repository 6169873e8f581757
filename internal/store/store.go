package store

import "context"

// Store is the narrow surface the rest of the backend uses to talk to the
// remote hosted database. Fetch fills dest with the full current contents of
// a collection; Subscribe delivers a signal whenever any row in the named
// collection changes. Notifications carry no payload — the only guarantee is
// "something in this collection changed", so consumers must re-fetch.
type Store interface {
	Fetch(ctx context.Context, collection, orderBy string, dest any) error
	Insert(ctx context.Context, collection string, record any) error
	Update(ctx context.Context, collection, id string, fields map[string]any) error
	Subscribe(collection string, onChange func()) (func(), error)
}

// ConnStateReporter is implemented by stores whose subscription transport can
// drop and reconnect. The callback receives true when the realtime channel is
// up and false when it has been lost.
type ConnStateReporter interface {
	OnConnState(fn func(up bool))
}
