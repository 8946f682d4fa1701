package ecs

// entityStore tracks entity generations and free ids. Slot ids start at 1 so
// the zero Entity is never handed out.
type entityStore struct {
	gen   []generation
	free  []entityID
	alive int
}

func (s *entityStore) create() Entity {
	var id entityID
	if n := len(s.free); n > 0 {
		id = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.gen = append(s.gen, 0)
		id = entityID(len(s.gen))
	}
	s.alive++
	return makeEntity(id, s.gen[id-1])
}

func (s *entityStore) destroy(e Entity) bool {
	if !s.isAlive(e) {
		return false
	}
	s.gen[e.id()-1]++
	s.free = append(s.free, e.id())
	s.alive--
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	id := e.id()
	if id == 0 || int(id) > len(s.gen) {
		return false
	}
	return s.gen[id-1] == e.generation()
}

// Registry hands out entity handles and recycles destroyed slots.
type Registry struct {
	entities entityStore
}

// Create allocates a new entity.
func (r *Registry) Create() Entity {
	return r.entities.create()
}

// Destroy invalidates e. It returns false if e was already dead.
func (r *Registry) Destroy(e Entity) bool {
	return r.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (r *Registry) IsAlive(e Entity) bool {
	return r.entities.isAlive(e)
}

// Len returns the number of live entities.
func (r *Registry) Len() int {
	return r.entities.alive
}
