package domain

// Dependency represents a directed edge between tasks: the owning task
// cannot reach StatusCompleted until the depended-on task is completed.
type Dependency struct {
	TaskID    int64 `json:"task_id"`
	DependsOn int64 `json:"depends_on"`
}

// NewDependency creates a new dependency edge.
func NewDependency(taskID, dependsOn int64) Dependency {
	return Dependency{TaskID: taskID, DependsOn: dependsOn}
}
