package dirtree

import (
	"sync"

	"github.com/arkdir/dirtree/pkg/childmap"
)

// Node is a single directory in the tree. The lock counters and the
// refcount are protected by mu; mu also backs the three condition
// variables used by the reader/writer lock and the subtree-quiescence
// wait. children is guarded by the reader/writer lock itself.
//
// parent is a non-owning back-reference: it must never be followed
// once the parent itself may have been torn down by Remove, which is
// why every traversal holds the parent's lock before ever touching a
// child's parent pointer (see traverse.go and ops.go).
type Node struct {
	id     uint64
	name   string
	parent *Node

	mu       sync.Mutex
	children childmap.Map[*Node]

	readers      int
	writers      int
	waitingWrite int

	refcount int

	readerCond *sync.Cond
	writerCond *sync.Cond
	quietCond  *sync.Cond
}

func newNode(id uint64, name string, parent *Node) *Node {
	n := &Node{
		id:       id,
		name:     name,
		parent:   parent,
		children: childmap.New[*Node](),
	}
	n.readerCond = sync.NewCond(&n.mu)
	n.writerCond = sync.NewCond(&n.mu)
	n.quietCond = sync.NewCond(&n.mu)
	return n
}

// lockReader blocks while any writer is active or waiting (writer
// preference), then increments the reader count.
func (n *Node) lockReader() {
	n.mu.Lock()
	for n.writers > 0 || n.waitingWrite > 0 {
		n.readerCond.Wait()
	}
	n.readers++
	n.mu.Unlock()
}

// unlockReader decrements the reader count and, once it reaches zero,
// wakes one waiting writer.
func (n *Node) unlockReader() {
	n.mu.Lock()
	n.readers--
	if n.readers == 0 {
		n.writerCond.Signal()
	}
	n.mu.Unlock()
}

// lockWriter blocks while any reader or writer is active, then takes
// the writer slot.
func (n *Node) lockWriter() {
	n.mu.Lock()
	n.waitingWrite++
	for n.readers > 0 || n.writers > 0 {
		n.writerCond.Wait()
	}
	n.waitingWrite--
	n.writers++
	n.mu.Unlock()
}

// unlockWriter releases the writer slot. A waiting writer, if any, is
// woken (one at a time); waiting readers are woken all at once only
// when no writer is waiting.
func (n *Node) unlockWriter() {
	n.mu.Lock()
	n.writers--
	if n.waitingWrite > 0 {
		n.writerCond.Signal()
	} else {
		n.readerCond.Broadcast()
	}
	n.mu.Unlock()
}

// lockMode acquires the lock in the requested mode.
func (n *Node) lockMode(mode lockMode) {
	if mode == modeWriter {
		n.lockWriter()
	} else {
		n.lockReader()
	}
}

// unlockMode releases a lock acquired in the given mode.
func (n *Node) unlockMode(mode lockMode) {
	if mode == modeWriter {
		n.unlockWriter()
	} else {
		n.unlockReader()
	}
}

// enter increments the subtree refcount. The caller must already hold
// n's reader or writer lock.
func (n *Node) enter() {
	n.mu.Lock()
	n.refcount++
	n.mu.Unlock()
}

// leave decrements the subtree refcount and, if it reaches zero,
// wakes anyone blocked in waitQuiescent.
func (n *Node) leave() {
	n.mu.Lock()
	n.refcount--
	if n.refcount < 0 {
		n.mu.Unlock()
		panicf("dirtree: node %d refcount went negative", n.id)
	}
	if n.refcount == 0 {
		n.quietCond.Broadcast()
	}
	n.mu.Unlock()
}

// waitQuiescent blocks until n's subtree refcount is zero. The caller
// must hold a lock that prevents new entrants (the parent's writer
// lock, per ops.go's Move), but does not need to hold n's own lock.
func (n *Node) waitQuiescent() {
	n.mu.Lock()
	for n.refcount > 0 {
		n.quietCond.Wait()
	}
	n.mu.Unlock()
}

type lockMode int

const (
	modeReader lockMode = iota
	modeWriter
)
