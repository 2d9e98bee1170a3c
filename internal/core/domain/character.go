package domain

// CharacterIdentity pairs the human-readable character name with the opaque
// id (ocid) the upstream issues for it. It lives for one request only.
type CharacterIdentity struct {
	Name     string
	OpaqueID string
}
