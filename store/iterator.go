package store

import (
	"bytes"

	"github.com/google/btree"
)

// collectBtree takes a snapshot of all cached items within the range. The
// snapshot keeps the iterator valid while the cache is modified and does not
// hold any goroutine.
func collectBtree(bt *btree.BTree, start, end []byte, ascending bool) []keyer {
	var items []keyer
	collect := func(item btree.Item) bool {
		items = append(items, item.(keyer))
		return true
	}

	switch {
	case ascending && start == nil && end == nil:
		bt.Ascend(collect)
	case ascending && start == nil:
		bt.AscendLessThan(bkey{end}, collect)
	case ascending && end == nil:
		bt.AscendGreaterOrEqual(bkey{start}, collect)
	case ascending:
		bt.AscendRange(bkey{start}, bkey{end}, collect)
	case start == nil && end == nil:
		bt.Descend(collect)
	case start == nil:
		bt.DescendLessOrEqual(bkeyLess{end}, collect)
	case end == nil:
		bt.DescendGreaterThan(bkeyLess{start}, collect)
	default:
		bt.DescendRange(bkeyLess{end}, bkeyLess{start}, collect)
	}
	return items
}

// mergeIter combines the cached items with the items of the parent store.
// Cached values shadow the parent and cached deletions hide parent entries.
type mergeIter struct {
	items     []keyer
	pos       int
	parent    Iterator
	ascending bool
}

var _ Iterator = (*mergeIter)(nil)

func newMergeIter(items []keyer, parent Iterator, ascending bool) (*mergeIter, error) {
	it := &mergeIter{
		items:     items,
		parent:    parent,
		ascending: ascending,
	}
	if err := it.skipDeleted(); err != nil {
		return nil, err
	}
	return it, nil
}

// source marks where the current item comes from.
type source int

const (
	none source = iota
	cached
	parent
	both
)

func (i *mergeIter) cacheValid() bool {
	return i.pos < len(i.items)
}

func (i *mergeIter) parentValid() bool {
	return i.parent != nil && i.parent.Valid()
}

// current tells which of the two sources provides the next key.
func (i *mergeIter) current() source {
	switch {
	case !i.cacheValid() && !i.parentValid():
		return none
	case !i.parentValid():
		return cached
	case !i.cacheValid():
		return parent
	}

	cmp := bytes.Compare(i.items[i.pos].Key(), i.parent.Key())
	if !i.ascending {
		cmp = -cmp
	}
	switch {
	case cmp < 0:
		return cached
	case cmp > 0:
		return parent
	default:
		return both
	}
}

// Valid implements Iterator and returns true iff it can be read.
func (i *mergeIter) Valid() bool {
	return i.current() != none
}

// Next moves the iterator to the next sequential key, skipping all entries
// deleted in the cache.
func (i *mergeIter) Next() error {
	if err := i.advance(); err != nil {
		return err
	}
	return i.skipDeleted()
}

func (i *mergeIter) advance() error {
	switch i.current() {
	case cached:
		i.pos++
	case both:
		i.pos++
		return i.parent.Next()
	case parent:
		return i.parent.Next()
	default:
		panic("advanced past the end")
	}
	return nil
}

func (i *mergeIter) skipDeleted() error {
	for {
		src := i.current()
		if src != cached && src != both {
			return nil
		}
		if _, ok := i.items[i.pos].(deletedItem); !ok {
			return nil
		}
		if err := i.advance(); err != nil {
			return err
		}
	}
}

// Key returns the key of the cursor.
func (i *mergeIter) Key() []byte {
	switch i.current() {
	case cached, both:
		return i.items[i.pos].Key()
	case parent:
		return i.parent.Key()
	default:
		panic("advanced past the end")
	}
}

// Value returns the value of the cursor.
func (i *mergeIter) Value() []byte {
	switch i.current() {
	case cached, both:
		return i.items[i.pos].(setItem).value
	case parent:
		return i.parent.Value()
	default:
		panic("advanced past the end")
	}
}

// Close releases the Iterator.
func (i *mergeIter) Close() {
	if i.parent != nil {
		i.parent.Close()
	}
	i.items = nil
}
