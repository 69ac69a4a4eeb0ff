package models

// DeletedFrom reports which replicas a delete reached.
type DeletedFrom struct {
	Cloud bool `json:"cloud"`
	Local bool `json:"local"`
}

// DeleteResult is the outcome of a single-record delete.
type DeleteResult struct {
	Success     bool        `json:"success"`
	DeletedFrom DeletedFrom `json:"deleted_from"`
	Locked      bool        `json:"locked,omitempty"`
	Reason      string      `json:"reason,omitempty"`
	Error       string      `json:"error,omitempty"`
}

// DeleteFailure names a record that could not be deleted and why.
type DeleteFailure struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// BatchDeleteResult partitions a batch delete.
type BatchDeleteResult struct {
	Successful []string        `json:"successful"`
	Failed     []DeleteFailure `json:"failed"`
}

// Deletability answers "may this record still be deleted?".
type Deletability struct {
	Deletable bool   `json:"deletable"`
	Locked    bool   `json:"locked"`
	Reason    string `json:"reason,omitempty"`
}
