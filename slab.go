package rtlocal

// slab is the dense id -> runnable table of spec §3's "Slab". Unlike the
// teacher's registry.go — which scavenges entries lazily via
// weak.Pointer once GC decides a promise is unreachable — this slab is
// reaped strictly by protocol: a runnable is removed only once its
// future reports ready, or the scheduler applies an explicit drop
// request for its id. There is no weak-pointer path here because a
// runnable is reachable only through the slab itself; nothing external
// ever needs to observe its liveness independent of that protocol.
type slab struct {
	entries map[uint64]*runnable
	nextID  uint64
}

// newSlab constructs a slab with id allocation starting at 1: id 0 is
// reserved for the entry-point task (idMain, task.go), seated only through
// adoptAt and never handed out by adopt.
func newSlab() *slab {
	return &slab{entries: make(map[uint64]*runnable), nextID: 1}
}

// adopt assigns the next id, wires up a wake object bound to channel, and
// inserts the runnable. The id is never reused for the lifetime of the
// slab, matching original_source's SlabMap (which also never recycles
// slots within a generation).
func (s *slab) adopt(future Future, channel *requestChannel) *runnable {
	id := s.nextID
	s.nextID++
	return s.adoptAt(id, future, channel)
}

// adoptAt inserts a runnable under an explicit id, used once per
// [Runtime] to seat the entry-point task at the reserved idMain slot.
func (s *slab) adoptAt(id uint64, future Future, channel *requestChannel) *runnable {
	r := &runnable{
		id:     id,
		future: future,
		record: newTaskRecord(),
		wake:   newTaskWake(id, channel),
	}
	s.entries[id] = r
	return r
}

// get returns the runnable for id, or nil if it has already been
// tombstoned (completed, cancelled, or dropped).
func (s *slab) get(id uint64) *runnable {
	return s.entries[id]
}

// remove tombstones id. Safe to call on an id already removed.
func (s *slab) remove(id uint64) {
	delete(s.entries, id)
}

// len reports the number of live runnables, exposed through
// [Runtime.LiveTaskCount].
func (s *slab) len() int {
	return len(s.entries)
}
