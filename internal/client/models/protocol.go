package models

// ProtocolStatus enumerates publication states of a protocol.
type ProtocolStatus string

const (
	ProtocolDraft    ProtocolStatus = "draft"
	ProtocolActive   ProtocolStatus = "active"
	ProtocolArchived ProtocolStatus = "archived"
)

// Protocol is a reusable laboratory procedure. Versions are append-only;
// the service assigns monotonically increasing version numbers.
type Protocol struct {
	ID          int64          `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	Status      ProtocolStatus `json:"status"`
	Version     string         `json:"version"`
	CreatedBy   *User          `json:"created_by,omitempty"`
	CreatedAt   string         `json:"created_at"`
	UpdatedAt   string         `json:"updated_at"`
}

// ProtocolVersion is one immutable revision of a protocol.
type ProtocolVersion struct {
	ID            int64  `json:"id"`
	Protocol      int64  `json:"protocol"`
	VersionNumber int    `json:"version_number"`
	Changes       string `json:"changes"`
	Content       string `json:"content"`
	CreatedBy     *User  `json:"created_by,omitempty"`
	CreatedAt     string `json:"created_at"`
}
