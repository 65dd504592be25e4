package cpu

// Queue is a first-in first-out queue of words.
type Queue struct {
	Data []int64
}

// Push appends values to the back of the queue.
func (q *Queue) Push(values ...int64) {
	q.Data = append(q.Data, values...)
}

// Pop removes the front value; ok is false when the queue is empty.
func (q *Queue) Pop() (value int64, ok bool) {
	value, ok = q.Peek()
	if ok {
		q.Data = q.Data[1:]
	}
	return
}

// Empty reports whether no values are queued.
func (q *Queue) Empty() bool {
	return len(q.Data) == 0
}

// Len is the number of queued values.
func (q *Queue) Len() int {
	return len(q.Data)
}

// Peek returns the front value without removing it.
func (q *Queue) Peek() (value int64, ok bool) {
	if q.Empty() {
		return
	}

	return q.Data[0], true
}

// Drain removes and returns all queued values.
func (q *Queue) Drain() (values []int64) {
	values = q.Data
	q.Data = nil
	return
}

// Reset discards all queued values.
func (q *Queue) Reset() {
	if len(q.Data) > 0 {
		q.Data = q.Data[:0]
	}
}
