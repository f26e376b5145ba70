// Package singleton provides a keyed instance cache with weak ownership.
//
// A Cache deduplicates constructed instances of a single type by a key
// derived from the constructor arguments: the same arguments yield the same
// pointer for as long as any strong reference to the instance exists. The
// cache itself never keeps an instance alive: once all other owners drop it,
// the entry vanishes and the next request constructs a fresh instance.
//
// Lookup and construction happen under a single lock, so concurrent first use
// with the same key constructs the underlying instance exactly once.
//
// # Usage
//
//	import "github.com/deepin-autotest/funnylog2/pkg/singleton"
//
//	type Session struct{ Addr string }
//
//	var sessions = singleton.New(func(args ...any) *Session {
//	    return &Session{Addr: fmt.Sprint(args[0])}
//	})
//
//	a := sessions.Get("10.8.11.52") // constructs
//	b := sessions.Get("10.8.11.52") // same pointer as a
package singleton
