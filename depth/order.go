package depth

import (
	"sort"

	"github.com/runningwild/glop/util/algorithm"
)

// Layer ranks the pieces drawn for a single key. Shadows and overlay faces
// are underlays: they go beneath solid tiles that share their key.
type Layer int

const (
	Shadow Layer = iota
	OverlayFace
	Solid
)

func (l Layer) Underlay() bool {
	return l != Solid
}

type Item[T any] struct {
	Key   int
	Layer Layer
	// Seq is the secondary key; DrawList hands these out in insertion order so
	// that equal items keep the order they arrived in.
	Seq   int
	Value T
}

// Less is the one comparator shared by incremental insertion and full
// re-sorting; both orderings must agree on every item set.
func Less[T any](a, b Item[T]) bool {
	if a.Key != b.Key {
		return a.Key < b.Key
	}
	if a.Layer != b.Layer {
		return a.Layer < b.Layer
	}
	return a.Seq < b.Seq
}

// Sort returns the items in draw order: bucketed by key, buckets ascending,
// and within a bucket shadows, then overlay faces, then solids, stable by
// Seq. The input is not modified.
func Sort[T any](items []Item[T]) []Item[T] {
	buckets := make(map[int][]Item[T])
	var keys []int
	for _, it := range items {
		if _, ok := buckets[it.Key]; !ok {
			keys = append(keys, it.Key)
		}
		buckets[it.Key] = append(buckets[it.Key], it)
	}
	sort.Ints(keys)

	out := make([]Item[T], 0, len(items))
	for _, k := range keys {
		bucket := buckets[k]
		sort.SliceStable(bucket, func(i, j int) bool {
			return Less(bucket[i], bucket[j])
		})
		out = append(out, bucket...)
	}
	return out
}

// DrawList keeps items in draw order as they are added one at a time.
type DrawList[T any] struct {
	items   []Item[T]
	nextSeq int
}

func (dl *DrawList[T]) Len() int {
	return len(dl.items)
}

// Items returns a copy of the list in draw order.
func (dl *DrawList[T]) Items() []Item[T] {
	return append([]Item[T](nil), dl.items...)
}

// Insert places a new item immediately before the first existing item that
// must draw after it, and returns the index it landed at.
func (dl *DrawList[T]) Insert(key int, layer Layer, value T) int {
	it := Item[T]{Key: key, Layer: layer, Seq: dl.nextSeq, Value: value}
	dl.nextSeq++

	pos := len(dl.items)
	for i := range dl.items {
		if Less(it, dl.items[i]) {
			pos = i
			break
		}
	}
	dl.items = append(dl.items, Item[T]{})
	copy(dl.items[pos+1:], dl.items[pos:])
	dl.items[pos] = it
	return pos
}

// Remove drops every item for which drop returns true.
func (dl *DrawList[T]) Remove(drop func(Item[T]) bool) {
	algorithm.Choose(&dl.items, func(it Item[T]) bool {
		return !drop(it)
	})
}

// Resort rebuilds the list with the full bucketed sort. It never changes a
// list built purely through Insert; it exists for items whose keys were
// edited in place.
func (dl *DrawList[T]) Resort() {
	dl.items = Sort(dl.items)
}

// Rekey changes the key of every item matching pred and re-sorts.
func (dl *DrawList[T]) Rekey(pred func(Item[T]) bool, key int) {
	for i := range dl.items {
		if pred(dl.items[i]) {
			dl.items[i].Key = key
		}
	}
	dl.Resort()
}
