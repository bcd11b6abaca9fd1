package scheduling

import "github.com/google/uuid"

// DedupeServiceIDs drops repeated ids while keeping first-seen order.
// Callers have been observed submitting the same service twice; a link is
// a set membership, so duplicates carry no meaning.
func DedupeServiceIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// DiffLinks computes the true set difference between the currently linked
// service ids and a requested set: toAdd is requested \ current, toRemove
// is current \ requested. Applying both leaves exactly the requested set
// linked, without rewriting links that already exist.
func DiffLinks(current, requested []uuid.UUID) (toAdd, toRemove []uuid.UUID) {
	currentSet := make(map[uuid.UUID]struct{}, len(current))
	for _, id := range current {
		currentSet[id] = struct{}{}
	}
	requestedSet := make(map[uuid.UUID]struct{}, len(requested))
	for _, id := range requested {
		requestedSet[id] = struct{}{}
	}

	for _, id := range requested {
		if _, ok := currentSet[id]; !ok {
			toAdd = append(toAdd, id)
		}
	}
	for _, id := range current {
		if _, ok := requestedSet[id]; !ok {
			toRemove = append(toRemove, id)
		}
	}
	return toAdd, toRemove
}
