package board

import (
	"sync"

	"aventra/internal/models"
)

// Snapshot is an immutable view of the cache. Callers must not modify the
// slices.
type Snapshot struct {
	Tasks    []models.Task
	Projects []models.Project
	Revision uint64
}

// Mark records the cache position when a reload request is issued.
type Mark struct {
	generation uint64
	clock      uint64
	seq        uint64
}

// Cache owns the task list of one board visit. It is populated on mount,
// replaced on reload and discarded on unmount. Slices are copy-on-write so a
// snapshot never changes under its reader.
type Cache struct {
	mu         sync.Mutex
	tasks      []models.Task
	projects   []models.Project
	revision   uint64
	generation uint64
	mounted    bool

	// clock advances on every local mutation; versions records the clock
	// value of the latest mutation per task id.
	clock    uint64
	versions map[int64]uint64

	reloadSeq  uint64
	appliedSeq uint64
	projectSeq uint64
}

func NewCache() *Cache {
	return &Cache{versions: map[int64]uint64{}}
}

func (c *Cache) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{Tasks: c.tasks, Projects: c.projects, Revision: c.revision}
}

func (c *Cache) Revision() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.revision
}

// Mounted reports whether the cache holds a loaded board.
func (c *Cache) Mounted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mounted
}

func (c *Cache) Find(id int64) (models.Task, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := c.indexOf(id)
	if idx < 0 {
		return models.Task{}, false
	}
	return c.tasks[idx], true
}

// Mark must be taken before the reload request is sent.
func (c *Cache) Mark() Mark {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reloadSeq++
	return Mark{generation: c.generation, clock: c.clock, seq: c.reloadSeq}
}

// ReplaceSince installs a freshly fetched board. Tasks mutated locally after
// mark keep their local state, including local deletion, so a reload that was
// in flight cannot revert them. Results older than an already applied reload,
// or belonging to a discarded visit, are dropped and false is returned.
func (c *Cache) ReplaceSince(mark Mark, tasks []models.Task, projects []models.Project) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.acceptLocked(mark) {
		return false
	}

	local := make(map[int64]models.Task, len(c.tasks))
	for _, task := range c.tasks {
		local[task.ID] = task
	}

	next := make([]models.Task, 0, len(tasks))
	seen := make(map[int64]struct{}, len(tasks))
	for _, task := range tasks {
		seen[task.ID] = struct{}{}
		if c.versions[task.ID] > mark.clock {
			if kept, ok := local[task.ID]; ok {
				next = append(next, kept)
			}
			continue
		}
		next = append(next, task)
	}
	for _, task := range c.tasks {
		if _, ok := seen[task.ID]; ok {
			continue
		}
		if c.versions[task.ID] > mark.clock {
			next = append(next, task)
		}
	}

	c.tasks = next
	c.setProjectsLocked(mark, projects)
	c.mounted = true
	c.revision++
	return true
}

// ReplaceProjectsSince installs only the project list, used when the task
// list could not be fetched.
func (c *Cache) ReplaceProjectsSince(mark Mark, projects []models.Project) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if mark.generation != c.generation || !c.mounted {
		return false
	}
	if mark.seq < c.appliedSeq || !c.setProjectsLocked(mark, projects) {
		return false
	}
	c.revision++
	return true
}

// setProjectsLocked installs projects unless a newer reload already did.
func (c *Cache) setProjectsLocked(mark Mark, projects []models.Project) bool {
	if mark.seq < c.projectSeq {
		return false
	}
	if projects == nil {
		projects = []models.Project{}
	}
	c.projects = projects
	c.projectSeq = mark.seq
	return true
}

func (c *Cache) acceptLocked(mark Mark) bool {
	if mark.generation != c.generation {
		return false
	}
	if mark.seq < c.appliedSeq {
		return false
	}
	c.appliedSeq = mark.seq
	return true
}

// SetStatus changes the status of a cached task.
func (c *Cache) SetStatus(id int64, status string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.mounted {
		return false
	}
	idx := c.indexOf(id)
	if idx < 0 {
		return false
	}
	next := cloneTasks(c.tasks)
	next[idx].Status = status
	c.commitLocked(next, id)
	return true
}

// Upsert replaces a cached task by id or appends it.
func (c *Cache) Upsert(task models.Task) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.mounted {
		return false
	}
	next := cloneTasks(c.tasks)
	if idx := c.indexOf(task.ID); idx >= 0 {
		next[idx] = task
	} else {
		next = append(next, task)
	}
	c.commitLocked(next, task.ID)
	return true
}

// Update replaces a cached task by id and ignores unknown ids.
func (c *Cache) Update(task models.Task) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.mounted {
		return false
	}
	idx := c.indexOf(task.ID)
	if idx < 0 {
		return false
	}
	next := cloneTasks(c.tasks)
	next[idx] = task
	c.commitLocked(next, task.ID)
	return true
}

// Remove drops a task. The deletion is remembered even when the task is not
// cached so an in-flight reload does not bring it back.
func (c *Cache) Remove(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.mounted {
		return false
	}
	idx := c.indexOf(id)
	if idx < 0 {
		c.touchLocked(id)
		return false
	}
	next := make([]models.Task, 0, len(c.tasks)-1)
	next = append(next, c.tasks[:idx]...)
	next = append(next, c.tasks[idx+1:]...)
	c.commitLocked(next, id)
	return true
}

// Discard clears the cache at unmount. Completions that arrive later find no
// board and are dropped.
func (c *Cache) Discard() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tasks = nil
	c.projects = nil
	c.versions = map[int64]uint64{}
	c.mounted = false
	c.generation++
	c.revision++
}

func (c *Cache) commitLocked(next []models.Task, id int64) {
	c.tasks = next
	c.touchLocked(id)
	c.revision++
}

func (c *Cache) touchLocked(id int64) {
	c.clock++
	c.versions[id] = c.clock
}

func (c *Cache) indexOf(id int64) int {
	for i, task := range c.tasks {
		if task.ID == id {
			return i
		}
	}
	return -1
}

func cloneTasks(tasks []models.Task) []models.Task {
	out := make([]models.Task, len(tasks), len(tasks)+1)
	copy(out, tasks)
	return out
}
