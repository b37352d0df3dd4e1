package models

// PatchFile is an incremental or compacted patch payload.
// It transforms the dataset state at exactly FromVersion into the
// state at ToVersion; applying it at any other version is invalid.
type PatchFile struct {
	FromVersion string `json:"fromVersion"`
	ToVersion   string `json:"toVersion"`

	// Added holds records absent at FromVersion.
	Added []Record `json:"added"`

	// Updated holds records present at FromVersion whose payload changed.
	Updated []Record `json:"updated"`

	// Removed lists printing ids present at FromVersion and gone at ToVersion.
	Removed []string `json:"removed"`

	// PatchHash is the expected state hash after the patch is applied.
	PatchHash string `json:"patchHash,omitempty"`
}

// ChangedCount returns the number of records the patch writes.
func (p PatchFile) ChangedCount() int {
	return len(p.Added) + len(p.Updated)
}
