package auth

// Policy decides whether the verified caller may act on resources that
// belong to ownerID.
type Policy interface {
	Allow(identity, ownerID string) bool
}

// OwnerPolicy allows a caller to touch only their own resources.
type OwnerPolicy struct{}

func (OwnerPolicy) Allow(identity, ownerID string) bool {
	return identity != "" && identity == ownerID
}
