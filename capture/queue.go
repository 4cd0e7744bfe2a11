package capture

// Task pairs a due frame with the transfer to finish on that frame.
type Task struct {
	Due      uint64
	Transfer Transfer
}

// Queue is a FIFO of tasks. Tasks are pushed with non-decreasing due frames
// so head order is due order.
type Queue struct {
	tasks []Task
}

func (q *Queue) Len() int { return len(q.tasks) }

func (q *Queue) Push(t Task) { q.tasks = append(q.tasks, t) }

// Peek returns the head without removing it.
func (q *Queue) Peek() (Task, bool) {
	if len(q.tasks) == 0 {
		return Task{}, false
	}
	return q.tasks[0], true
}

// PopDue removes and returns the head if its due frame is at or before frame.
func (q *Queue) PopDue(frame uint64) (Task, bool) {
	t, ok := q.Peek()
	if !ok || t.Due > frame {
		return Task{}, false
	}
	q.tasks[0] = Task{}
	q.tasks = q.tasks[1:]
	if len(q.tasks) == 0 {
		q.tasks = nil
	}
	return t, true
}
