package insights

import (
	"math"
	"time"

	"github.com/quantamisecode-hub/groona-insights/pkg/models/domain"
)

// RiskAssessment accumulates weighted risk contributions for a project.
// Factors keep their insertion order; the UI typically shows the top
// three. The overall score is capped at 100.
func (e *Engine) RiskAssessment(project domain.Project, tasks []domain.Task, now time.Time) domain.RiskAssessment {
	a := domain.RiskAssessment{ProjectID: project.ID}
	add := func(factor string, impact float64) {
		a.Factors = append(a.Factors, domain.RiskFactor{Factor: factor, Impact: impact})
		a.Score += impact
	}
	progress := clamp(project.Progress, 0, 100)

	projectTasks := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ProjectID == project.ID {
			projectTasks = append(projectTasks, t)
		}
	}

	if project.Deadline != nil {
		daysLeft := project.Deadline.Sub(now).Hours() / 24
		switch {
		case daysLeft < 0:
			add("Deadline passed", 30)
		case daysLeft <= 14 && progress < 70:
			add("Tight deadline with low progress", math.Min(25, (70-progress)/70*25))
		}
	}

	if gap := scheduleGap(project, now); gap > 0 {
		add("Progress behind schedule", math.Min(15, gap*0.5))
	}

	total, completed, inProgress, review, overdue, unassigned := taskCounts(projectTasks, now)
	if total >= 20 && completed < total*3/10 {
		add("Low task completion on large project", 20)
	}
	if overdue > 0 {
		add("Overdue tasks", math.Min(20, float64(overdue)*2))
	}
	if total > 0 && float64(inProgress) > float64(total)*0.4 {
		add("Too many tasks in progress", 10)
	}
	if review > 5 {
		add("Review backlog", 8)
	}
	if unassigned > 0 {
		add("Unassigned active tasks", math.Min(10, float64(unassigned)))
	}

	a.Score = math.Min(a.Score, 100)
	a.Level = riskLevel(a.Score)
	return a
}

// scheduleGap returns expected-minus-actual progress in percentage
// points, based on elapsed share of the start-to-deadline window.
func scheduleGap(project domain.Project, now time.Time) float64 {
	if project.StartDate == nil || project.Deadline == nil {
		return 0
	}
	window := project.Deadline.Sub(*project.StartDate).Hours()
	if window <= 0 {
		return 0
	}
	elapsed := now.Sub(*project.StartDate).Hours()
	expected := clamp(elapsed/window*100, 0, 100)
	return expected - clamp(project.Progress, 0, 100)
}

func taskCounts(tasks []domain.Task, now time.Time) (total, completed, inProgress, review, overdue, unassigned int) {
	for _, t := range tasks {
		if t.Status == domain.TaskCancelled {
			continue
		}
		total++
		switch t.Status {
		case domain.TaskCompleted:
			completed++
			continue
		case domain.TaskInProgress:
			inProgress++
		case domain.TaskReview:
			review++
		}
		if t.DueDate != nil && t.DueDate.Before(now) {
			overdue++
		}
		if len(t.AssignedTo) == 0 {
			unassigned++
		}
	}
	return
}

func riskLevel(score float64) domain.RiskLevel {
	switch {
	case score >= 60:
		return domain.RiskCritical
	case score >= 40:
		return domain.RiskHigh
	case score >= 20:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}
