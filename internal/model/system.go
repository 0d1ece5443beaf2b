package model

// VersionInfo is reported by GET /api/system/version.
type VersionInfo struct {
	AppVersion string          `json:"app_version"`
	DbVersion  string          `json:"db_version"`
	Features   map[string]bool `json:"features"`
	Schema     SchemaStatus    `json:"schema"`
}

// SchemaStatus tells the frontend whether goose still has migrations to apply.
type SchemaStatus struct {
	Pending bool   `json:"pending"`
	Message string `json:"message,omitempty"`
}
