package models

// Request payloads for create and partial-update operations. Patch structs
// use pointer fields so that only explicitly set fields appear in the JSON
// body; everything else is left untouched server-side.

// NewExperiment is the creation payload for an experiment.
type NewExperiment struct {
	Title            string             `json:"title"`
	Description      string             `json:"description"`
	Objective        string             `json:"objective"`
	Hypothesis       string             `json:"hypothesis,omitempty"`
	Status           ExperimentStatus   `json:"status,omitempty"`
	Priority         ExperimentPriority `json:"priority,omitempty"`
	PlannedStartDate string             `json:"planned_start_date"`
	PlannedEndDate   string             `json:"planned_end_date"`
	Protocol         int64              `json:"protocol,omitempty"`
	AssignedTo       int64              `json:"assigned_to,omitempty"`
	Tags             []string           `json:"tags,omitempty"`
}

// ExperimentUpdate is a partial experiment patch.
type ExperimentUpdate struct {
	Title           *string             `json:"title,omitempty"`
	Description     *string             `json:"description,omitempty"`
	Objective       *string             `json:"objective,omitempty"`
	Hypothesis      *string             `json:"hypothesis,omitempty"`
	Status          *ExperimentStatus   `json:"status,omitempty"`
	Priority        *ExperimentPriority `json:"priority,omitempty"`
	ActualStartDate *string             `json:"actual_start_date,omitempty"`
	ActualEndDate   *string             `json:"actual_end_date,omitempty"`
	Results         *string             `json:"results,omitempty"`
	Conclusions     *string             `json:"conclusions,omitempty"`
	IsArchived      *bool               `json:"is_archived,omitempty"`
}

// NewStep is the creation payload for an experiment step.
type NewStep struct {
	StepNumber  int    `json:"step_number"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// StepUpdate is a partial step patch.
type StepUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	IsCompleted *bool   `json:"is_completed,omitempty"`
}

// NewComment is the creation payload for an experiment comment.
type NewComment struct {
	Content    string `json:"content"`
	IsInternal bool   `json:"is_internal,omitempty"`
}

// NewProtocol is the creation payload for a protocol.
type NewProtocol struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	Status      ProtocolStatus `json:"status,omitempty"`
}

// ProtocolUpdate is a partial protocol patch.
type ProtocolUpdate struct {
	Title       *string         `json:"title,omitempty"`
	Description *string         `json:"description,omitempty"`
	Category    *string         `json:"category,omitempty"`
	Status      *ProtocolStatus `json:"status,omitempty"`
}

// NewProtocolVersion is the creation payload for an append-only protocol
// revision. The service assigns the version number.
type NewProtocolVersion struct {
	Changes string `json:"changes"`
	Content string `json:"content"`
}
