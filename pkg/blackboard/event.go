package blackboard

// ArtifactsPostedEvent is the notification broadcast after a successful
// post. It is built once per post call, handed to the case store's fan-out,
// and never retained by the blackboard.
//
// The artifact type name is the one declared by the posting module. For
// batch posts it is not checked against the individual artifacts; the
// blackboard preserves the original permissive behaviour.
type ArtifactsPostedEvent struct {
	ModuleName       string      `json:"module_name"`        // Name of the module that posted the artifacts
	ArtifactTypeName string      `json:"artifact_type_name"` // Declared type shared by all artifacts in the batch
	Artifacts        []*Artifact `json:"artifacts"`          // De-duplicated set of posted artifacts, unordered
}

// NewArtifactsPostedEvent builds a notification event for a batch of
// artifacts. Duplicate artifacts (same ID) are collapsed to a single
// entry; the first occurrence wins. Order of the resulting set is the
// order of first occurrence but carries no meaning to consumers.
func NewArtifactsPostedEvent(moduleName, artifactTypeName string, artifacts []*Artifact) *ArtifactsPostedEvent {
	seen := make(map[string]bool, len(artifacts))
	unique := make([]*Artifact, 0, len(artifacts))
	for _, a := range artifacts {
		if a == nil || seen[a.ID] {
			continue
		}
		seen[a.ID] = true
		unique = append(unique, a)
	}

	return &ArtifactsPostedEvent{
		ModuleName:       moduleName,
		ArtifactTypeName: artifactTypeName,
		Artifacts:        unique,
	}
}
