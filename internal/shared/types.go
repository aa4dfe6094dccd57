package shared

// Task types
const (
	TypeSpawnAuthor       = "generation:spawn_author"
	TypeIllustrateCatalog = "generation:illustrate_catalog"
)

// Queues
const (
	QueueGeneration = "generation"
	QueueDefault    = "default"
)

// SpawnAuthorPayload - payload of TypeSpawnAuthor
type SpawnAuthorPayload struct {
	Name      string `json:"name"`
	RequestID string `json:"requestId,omitempty"`
}

// IllustrateCatalogPayload - payload of TypeIllustrateCatalog
type IllustrateCatalogPayload struct {
	RequestID string `json:"requestId,omitempty"`
}
