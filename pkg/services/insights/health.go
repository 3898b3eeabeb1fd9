package insights

import (
	"time"

	"github.com/quantamisecode-hub/groona-insights/pkg/models/domain"
)

// HealthScore computes the 0-100 composite health indicator for a
// project. Completed projects score exactly 100; everything else starts
// from a base of 70 and moves with progress, task completion, deadline
// proximity, hold status and declared risk level.
func (e *Engine) HealthScore(project domain.Project, tasks []domain.Task, now time.Time) domain.HealthScore {
	if project.Status == domain.ProjectCompleted {
		return domain.HealthScore{ProjectID: project.ID, Score: 100}
	}

	progress := clamp(project.Progress, 0, 100)
	score := 70 + progress*0.3 + taskCompletionRate(project.ID, tasks)*20

	if project.Deadline != nil {
		switch {
		case project.Deadline.Before(now):
			score -= 20
		case project.Deadline.Before(now.AddDate(0, 0, 7)):
			score -= 10
		}
	}

	if project.Status == domain.ProjectOnHold {
		score -= 15
	}

	switch project.RiskLevel {
	case domain.RiskCritical:
		score -= 20
	case domain.RiskHigh:
		score -= 15
	case domain.RiskMedium:
		score -= 5
	}

	return domain.HealthScore{
		ProjectID: project.ID,
		Score:     clamp(score, 0, 100),
	}
}

// taskCompletionRate returns completed/total for the project's tasks,
// ignoring cancelled work; 0 when the project has no tasks.
func taskCompletionRate(projectID string, tasks []domain.Task) float64 {
	total, completed := 0, 0
	for _, t := range tasks {
		if t.ProjectID != projectID || t.Status == domain.TaskCancelled {
			continue
		}
		total++
		if t.Status == domain.TaskCompleted {
			completed++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
