package jsondoc

import (
	"sync"
	"unsafe"

	"github.com/grafana/jsondoc/pkg/jsondoc/keymap"
)

// The caches below back the ownership pools of a Document. They follow the
// same scheme: entries are handed out by pointer, reset truncates to length
// zero and the next cycle reuses the retained capacity. Pointers handed out
// before a reset must not be used after it.

// stringCache owns string payloads. Content is copied into buf so the
// caller's memory is never referenced.
type stringCache struct {
	buf []byte
	ss  []string
}

func (c *stringCache) reset() {
	c.buf = c.buf[:0]
	c.ss = c.ss[:0]
}

func (c *stringCache) getString() *string {
	if cap(c.ss) > len(c.ss) {
		c.ss = c.ss[:len(c.ss)+1]
	} else {
		c.ss = append(c.ss, "")
	}
	return &c.ss[len(c.ss)-1]
}

func (c *stringCache) copyString(s string) *string {
	start := len(c.buf)
	c.buf = append(c.buf, s...)
	p := c.getString()
	*p = yoloString(c.buf[start:len(c.buf):len(c.buf)])
	return p
}

func (c *stringCache) copyBytes(b []byte) *string {
	start := len(c.buf)
	c.buf = append(c.buf, b...)
	p := c.getString()
	*p = yoloString(c.buf[start:len(c.buf):len(c.buf)])
	return p
}

// arrayCache owns value slices.
type arrayCache struct {
	as [][]Value
}

func (c *arrayCache) reset() {
	for i := range c.as {
		clear(c.as[i])
		c.as[i] = c.as[i][:0]
	}
	c.as = c.as[:0]
}

func (c *arrayCache) copyArray(vs []Value) *[]Value {
	if cap(c.as) > len(c.as) {
		c.as = c.as[:len(c.as)+1]
	} else {
		c.as = append(c.as, nil)
	}
	a := &c.as[len(c.as)-1]
	*a = append((*a)[:0], vs...)
	return a
}

// docCache owns sub-documents created on behalf of the parent.
type docCache struct {
	ds []*Document
}

func (c *docCache) reset() {
	for _, d := range c.ds {
		d.Clear()
	}
	c.ds = c.ds[:0]
}

func (c *docCache) getDocument(km keymap.KeyMap) *Document {
	if cap(c.ds) > len(c.ds) {
		c.ds = c.ds[:len(c.ds)+1]
	} else {
		c.ds = append(c.ds, nil)
	}
	d := c.ds[len(c.ds)-1]
	if d == nil {
		d = New(km)
		c.ds[len(c.ds)-1] = d
	}
	d.keys = km
	return d
}

func yoloString(b []byte) string {
	return *((*string)(unsafe.Pointer(&b)))
}

// Pool recycles documents bound to a single key table, so that producers
// emitting many documents do not reallocate the container and its pools.
type Pool struct {
	keys keymap.KeyMap
	pool sync.Pool
}

// NewPool returns a Pool whose documents are bound to km.
func NewPool(km keymap.KeyMap) *Pool {
	p := &Pool{keys: km}
	p.pool.New = func() interface{} {
		return New(p.keys)
	}
	return p
}

// Get returns an empty document.
func (p *Pool) Get() *Document {
	return p.pool.Get().(*Document)
}

// Put clears d and returns it to the pool. d must not be used afterwards.
func (p *Pool) Put(d *Document) {
	d.Clear()
	d.Binary = nil
	p.pool.Put(d)
}
