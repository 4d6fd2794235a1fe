package cmd

// actionForJSON is the JSON form of one planned action.
type actionForJSON struct {
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Details     []string `json:"details"`
}

// resourceStatusForJSON is the JSON form of one lock's status.
type resourceStatusForJSON struct {
	Resource string `json:"resource"`
	LockPath string `json:"lock_path"`
	Held     bool   `json:"held"`
}

// statusForJSON is the JSON form of the status command's output.
type statusForJSON struct {
	Locks          []resourceStatusForJSON `json:"locks"`
	ActiveUnits    []string                `json:"active_background_units"`
	RebootRequired bool                    `json:"reboot_required"`
}
