package models

// ExperimentStatus enumerates the lifecycle states of an experiment.
type ExperimentStatus string

const (
	ExperimentPlanned    ExperimentStatus = "planned"
	ExperimentInProgress ExperimentStatus = "in_progress"
	ExperimentCompleted  ExperimentStatus = "completed"
	ExperimentFailed     ExperimentStatus = "failed"
	ExperimentCancelled  ExperimentStatus = "cancelled"
)

// ExperimentPriority enumerates scheduling priorities.
type ExperimentPriority string

const (
	PriorityLow      ExperimentPriority = "low"
	PriorityMedium   ExperimentPriority = "medium"
	PriorityHigh     ExperimentPriority = "high"
	PriorityCritical ExperimentPriority = "critical"
)

// Experiment is a single lab experiment. Steps, comments and attachments are
// independently addressable sub-resources and are fetched separately.
type Experiment struct {
	ID               int64              `json:"id"`
	Title            string             `json:"title"`
	Description      string             `json:"description"`
	Objective        string             `json:"objective"`
	Hypothesis       string             `json:"hypothesis,omitempty"`
	Status           ExperimentStatus   `json:"status"`
	Priority         ExperimentPriority `json:"priority"`
	PlannedStartDate string             `json:"planned_start_date"`
	PlannedEndDate   string             `json:"planned_end_date"`
	ActualStartDate  string             `json:"actual_start_date,omitempty"`
	ActualEndDate    string             `json:"actual_end_date,omitempty"`
	Protocol         int64              `json:"protocol,omitempty"`
	CreatedBy        *User              `json:"created_by,omitempty"`
	AssignedTo       *User              `json:"assigned_to,omitempty"`
	Tags             []string           `json:"tags,omitempty"`
	Results          string             `json:"results,omitempty"`
	Conclusions      string             `json:"conclusions,omitempty"`
	CreatedAt        string             `json:"created_at"`
	UpdatedAt        string             `json:"updated_at"`
	IsArchived       bool               `json:"is_archived"`
}

// ExperimentStep is one ordered step of an experiment protocol run.
type ExperimentStep struct {
	ID          int64  `json:"id"`
	Experiment  int64  `json:"experiment"`
	StepNumber  int    `json:"step_number"`
	Title       string `json:"title"`
	Description string `json:"description"`
	IsCompleted bool   `json:"is_completed"`
	CompletedAt string `json:"completed_at,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// Comment is a discussion entry attached to an experiment.
type Comment struct {
	ID         int64  `json:"id"`
	Experiment int64  `json:"experiment"`
	Author     *User  `json:"author,omitempty"`
	Content    string `json:"content"`
	IsInternal bool   `json:"is_internal"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

// Attachment is a binary file attached to an experiment. The payload itself
// is uploaded as multipart form data; this struct only carries metadata.
type Attachment struct {
	ID          int64  `json:"id"`
	Experiment  int64  `json:"experiment"`
	Filename    string `json:"filename"`
	FileType    string `json:"file_type"`
	FileSize    int64  `json:"file_size"`
	Description string `json:"description,omitempty"`
	UploadedBy  *User  `json:"uploaded_by,omitempty"`
	UploadedAt  string `json:"uploaded_at"`
}
