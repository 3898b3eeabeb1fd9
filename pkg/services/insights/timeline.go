package insights

import (
	"time"

	"github.com/quantamisecode-hub/groona-insights/pkg/models/domain"
)

// Velocity blend weights. Recent completions dominate, lifetime rate
// smooths short-term noise, percent-progress covers projects tracked by
// progress rather than task counts.
const (
	recentWeight   = 0.5
	lifetimeWeight = 0.3
	progressWeight = 0.2
)

// TimelineForecast predicts remaining duration for a project from task
// completion velocity and progress rate, then classifies the schedule
// buffer against the deadline.
func (e *Engine) TimelineForecast(project domain.Project, tasks []domain.Task, now time.Time) domain.TimelineForecast {
	f := domain.TimelineForecast{ProjectID: project.ID}

	var total, completed, recentCompleted int
	cutoff := now.AddDate(0, 0, -30)
	for _, t := range tasks {
		if t.ProjectID != project.ID || t.Status == domain.TaskCancelled {
			continue
		}
		total++
		if t.Status == domain.TaskCompleted {
			completed++
			if t.CompletedAt != nil && t.CompletedAt.After(cutoff) {
				recentCompleted++
			}
		}
	}
	f.RemainingTasks = total - completed

	recentRate := float64(recentCompleted) / 30

	lifetimeRate := 0.0
	progressRate := 0.0
	if project.StartDate != nil {
		lifetimeDays := now.Sub(*project.StartDate).Hours() / 24
		if lifetimeDays >= 1 {
			lifetimeRate = float64(completed) / lifetimeDays
			progressRate = clamp(project.Progress, 0, 100) / lifetimeDays
		}
	}

	f.Velocity = recentRate*recentWeight + lifetimeRate*lifetimeWeight + progressRate*progressWeight

	remainingProgress := 100 - clamp(project.Progress, 0, 100)
	taskEstimate := 0.0
	if f.Velocity > 0 {
		taskEstimate = float64(f.RemainingTasks) / f.Velocity
	}
	progressEstimate := 0.0
	if progressRate > 0 {
		progressEstimate = remainingProgress / progressRate
	}

	switch {
	case taskEstimate > 0 && progressEstimate > 0:
		f.EstimatedDays = taskEstimate*0.6 + progressEstimate*0.4
	case taskEstimate > 0:
		f.EstimatedDays = taskEstimate
	case progressEstimate > 0:
		f.EstimatedDays = progressEstimate
	default:
		// No usable velocity signal: assume two days per open task.
		f.EstimatedDays = float64(f.RemainingTasks) * 2
	}
	f.EstimatedDate = now.AddDate(0, 0, int(f.EstimatedDays+0.5))

	switch {
	case recentCompleted >= 10:
		f.Confidence = domain.ConfidenceHigh
	case recentCompleted >= 5:
		f.Confidence = domain.ConfidenceMedium
	default:
		f.Confidence = domain.ConfidenceLow
	}

	if project.Deadline == nil {
		// No deadline means no buffer to classify against.
		f.Status = domain.ScheduleNoDeadline
		return f
	}
	daysUntilDeadline := project.Deadline.Sub(now).Hours() / 24
	f.BufferDays = daysUntilDeadline - f.EstimatedDays
	f.Status = scheduleStatus(f.BufferDays)

	return f
}

func scheduleStatus(buffer float64) domain.ScheduleStatus {
	switch {
	case buffer < -7:
		return domain.ScheduleCritical
	case buffer < 0:
		return domain.ScheduleAtRisk
	case buffer < 3:
		return domain.ScheduleTight
	case buffer < 7:
		return domain.ScheduleModerate
	default:
		return domain.ScheduleOnTrack
	}
}
