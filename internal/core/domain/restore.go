package domain

// CreateRestoreRequest is the body of a plain restore.
type CreateRestoreRequest struct {
	Name               string   `json:"name"`
	BackupName         string   `json:"backupName"`
	IncludedNamespaces []string `json:"includedNamespaces,omitempty"`
	ExcludedNamespaces []string `json:"excludedNamespaces,omitempty"`
}

// CreateRestoreWithModificationsRequest is the wire payload for a restore that
// applies resource modifier rules.
type CreateRestoreWithModificationsRequest struct {
	Name                  string                 `json:"name"`
	BackupName            string                 `json:"backupName"`
	IncludedNamespaces    []string               `json:"includedNamespaces,omitempty"`
	ExcludedNamespaces    []string               `json:"excludedNamespaces,omitempty"`
	ResourceModifierRules []ResourceModifierRule `json:"resourceModifierRules"`
}

// Restore is the acknowledgment returned by the restore service. Its phase is
// reported as-is and never interpreted here.
type Restore struct {
	Name                string  `json:"name"`
	Phase               string  `json:"phase"`
	BackupName          string  `json:"backupName"`
	StartTimestamp      string  `json:"startTimestamp"`
	CompletionTimestamp *string `json:"completionTimestamp"`
	Warnings            int     `json:"warnings"`
	Errors              int     `json:"errors"`
}

type Backup struct {
	Name                string  `json:"name"`
	Phase               string  `json:"phase"`
	StartTimestamp      string  `json:"startTimestamp"`
	CompletionTimestamp *string `json:"completionTimestamp"`
	Warnings            int     `json:"warnings"`
	Errors              int     `json:"errors"`
	BackupStorage       string  `json:"backupStorage,omitempty"`
}
