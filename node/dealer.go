package node

// Dealer tracks work items that were asked for (pending) and completed (done).
// An item is pending between Needs and Done, and never becomes pending again
// once done.
type Dealer[K comparable] struct {
	needs map[K]struct{}
	done  map[K]struct{}
}

// Needs marks k as pending. It reports false when k is already pending or done.
func (d *Dealer[K]) Needs(k K) bool {
	if d.needs == nil {
		d.needs = make(map[K]struct{})
	}

	if _, exists := d.done[k]; exists {
		return false
	}

	if _, exists := d.needs[k]; exists {
		return false
	}

	d.needs[k] = struct{}{}

	return true
}

// Done settles k, whether it was pending or not.
func (d *Dealer[K]) Done(k K) {
	if d.done == nil {
		d.done = make(map[K]struct{})
	}

	delete(d.needs, k)
	d.done[k] = struct{}{}
}

func (d *Dealer[K]) IsDone(k K) bool {
	_, ok := d.done[k]
	return ok
}

func (d *Dealer[K]) IsPending(k K) bool {
	_, ok := d.needs[k]
	return ok
}

// Pending is the number of items asked for and not yet done.
func (d *Dealer[K]) Pending() int {
	return len(d.needs)
}
