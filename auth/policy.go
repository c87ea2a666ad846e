package auth

import "github.com/google/uuid"

// Policy maps caller identities to the operations they may perform. Exactly
// two identities carry any privilege: the owner can read and write, the
// viewer can only read. Everyone else gets nothing.
type Policy struct {
	Owner  uuid.UUID
	Viewer uuid.UUID
}

func (p Policy) CanRead(id uuid.UUID) bool {
	return id == p.Owner || id == p.Viewer
}

func (p Policy) CanWrite(id uuid.UUID) bool {
	return id == p.Owner
}
