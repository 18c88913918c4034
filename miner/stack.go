package miner

import (
	"sync"
)

// Stack is the work stack shared by the mining workers. Pop blocks while
// the stack is empty and some worker may still push. Once every worker is
// waiting the work is done: the stack closes and every Pop returns nil.
type Stack struct {
	mu      sync.Mutex
	cond    *sync.Cond
	stack   []*task
	threads int
	waiting int
	closed  bool
}

func NewStack() *Stack {
	s := &Stack{
		stack: make([]*task, 0, 100),
	}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// AddThread registers a worker. Every worker must be registered before the
// first Pop.
func (s *Stack) AddThread() int {
	s.mu.Lock()
	tid := s.threads
	s.threads++
	s.mu.Unlock()
	return tid
}

func (s *Stack) Close() {
	s.mu.Lock()
	s.closed = true
	s.stack = nil
	s.mu.Unlock()
	s.cond.Broadcast()
}

func (s *Stack) Closed() bool {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	return closed
}

func (s *Stack) WaitClosed() {
	s.mu.Lock()
	for !s.closed {
		s.cond.Wait()
	}
	s.mu.Unlock()
}

// Push adds t. It reports false when the stack is already closed.
func (s *Stack) Push(t *task) bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	s.stack = append(s.stack, t)
	s.mu.Unlock()
	s.cond.Broadcast()
	return true
}

func (s *Stack) Pop(tid int) *task {
	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		if s.closed {
			return nil
		}
		if len(s.stack) > 0 {
			t := s.stack[len(s.stack)-1]
			s.stack = s.stack[:len(s.stack)-1]
			return t
		}
		s.waiting++
		if s.threads == s.waiting {
			s.closed = true
			s.stack = nil
			s.cond.Broadcast()
			return nil
		}
		s.cond.Wait()
		s.waiting--
	}
}

func (s *Stack) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.stack)
}
