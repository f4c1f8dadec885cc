package domain

// WorldState is the read-only-to-the-pipeline snapshot of the simulated
// world: a sequence of stacks, what the gripper currently holds, where the
// arm is positioned, and the attribute definitions of every known
// identifier. The planner only ever derives new WorldStateNode values from
// it; WorldState itself is never mutated by the core.
type WorldState struct {
	// Stacks holds one ordered, bottom-to-top slice of identifiers per
	// column. An empty stack is a valid, empty slice.
	Stacks [][]string
	// Holding is the identifier currently in the gripper, or "" if empty.
	Holding string
	// Arm is the column index the gripper currently hovers over.
	Arm int
	// Objects maps every known identifier to its attribute definition.
	// The floor is not present here; it is synthesized on lookup.
	Objects map[string]ObjectDefinition
}

// Identifiers returns every identifier that currently exists in the world:
// everything on a stack, the held object (if any), plus the floor
// sentinel. The order is stable: stacks in column order bottom-to-top,
// then the held object, then the floor.
func (w WorldState) Identifiers() []string {
	ids := make([]string, 0, len(w.Objects)+1)
	for _, stack := range w.Stacks {
		ids = append(ids, stack...)
	}
	if w.Holding != "" {
		ids = append(ids, w.Holding)
	}
	ids = append(ids, FloorIdentifier)
	return ids
}

// Find projects an identifier into a FoundObject describing its current
// placement. It is the single source of truth the physics predicates use
// to reason about an identifier's location.
func (w WorldState) Find(id string) (FoundObject, bool) {
	if id == FloorIdentifier {
		return FoundObject{
			Definition:    ObjectDefinition{Form: FormFloor},
			IsFloor:       true,
			StackID:       -1,
			StackLocation: -1,
		}, true
	}

	def, known := w.Objects[id]
	if !known {
		return FoundObject{}, false
	}

	if w.Holding == id {
		return FoundObject{
			Definition:    def,
			IsHeld:        true,
			StackID:       -1,
			StackLocation: -1,
		}, true
	}

	for stackID, stack := range w.Stacks {
		for loc, objID := range stack {
			if objID == id {
				return FoundObject{
					Definition:    def,
					StackID:       stackID,
					StackLocation: loc,
				}, true
			}
		}
	}

	return FoundObject{}, false
}

// StackOf returns the column index and in-stack slice for the stack
// currently containing id, or (-1, nil) if id is not on any stack.
func (w WorldState) StackOf(id string) (int, []string) {
	for stackID, stack := range w.Stacks {
		for _, objID := range stack {
			if objID == id {
				return stackID, stack
			}
		}
	}
	return -1, nil
}
