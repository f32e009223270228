package controller

import (
	"golang.org/x/sync/semaphore"
)

// group is a set of buffers written together by some handler
type group int

const (
	groupInstruction group = iota
	groupModified
	groupRecords
	groupCount
)

// allGroups is held by handlers that rewrite every buffer (selection, reload)
var allGroups = []group{groupInstruction, groupModified, groupRecords}

// groupLocks serializes handlers per editor group. Acquisition never waits:
// a second action on a busy group is refused rather than queued.
type groupLocks struct {
	sems [groupCount]*semaphore.Weighted
}

func newGroupLocks() *groupLocks {
	l := &groupLocks{}
	for i := range l.sems {
		l.sems[i] = semaphore.NewWeighted(1)
	}
	return l
}

// tryAcquire takes every group or none of them
func (l *groupLocks) tryAcquire(groups ...group) (func(), bool) {
	taken := make([]group, 0, len(groups))
	for _, g := range groups {
		if !l.sems[g].TryAcquire(1) {
			for _, t := range taken {
				l.sems[t].Release(1)
			}
			return nil, false
		}
		taken = append(taken, g)
	}

	return func() {
		for _, t := range taken {
			l.sems[t].Release(1)
		}
	}, true
}
