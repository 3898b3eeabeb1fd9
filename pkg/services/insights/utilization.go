package insights

import (
	"sort"

	"github.com/quantamisecode-hub/groona-insights/pkg/models/domain"
)

// Utilization computes per-user workload from open tasks. A task shared
// by several assignees contributes its estimated hours split evenly
// across them, so platform totals never double count shared work; the
// platform-wide active-task count is likewise deduplicated by task ID.
func (e *Engine) Utilization(tasks []domain.Task, users []domain.User) domain.UtilizationSummary {
	type acc struct {
		hours float64
		tasks int
	}
	perUser := make(map[string]*acc)
	activeIDs := make(map[string]struct{})

	for _, t := range tasks {
		if !isActive(t.Status) {
			continue
		}
		if t.ID != "" {
			activeIDs[t.ID] = struct{}{}
		}
		if len(t.AssignedTo) == 0 {
			continue
		}
		share := t.EstimatedHours / float64(len(t.AssignedTo))
		for _, email := range t.AssignedTo {
			if email == "" {
				email = UnassignedBucket
			}
			a, ok := perUser[email]
			if !ok {
				a = &acc{}
				perUser[email] = a
			}
			a.hours += share
			a.tasks++
		}
	}

	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.Email] = u.Name
	}

	out := domain.UtilizationSummary{TotalActiveTasks: len(activeIDs)}
	for email, a := range perUser {
		out.Users = append(out.Users, domain.UserUtilization{
			Email:          email,
			Name:           names[email],
			EstimatedHours: a.hours,
			ActiveTasks:    a.tasks,
			Status:         workloadStatus(a.hours),
		})
	}
	sort.Slice(out.Users, func(i, j int) bool {
		if out.Users[i].EstimatedHours != out.Users[j].EstimatedHours {
			return out.Users[i].EstimatedHours > out.Users[j].EstimatedHours
		}
		return out.Users[i].Email < out.Users[j].Email
	})
	return out
}

func isActive(s domain.TaskStatus) bool {
	switch s {
	case domain.TaskTodo, domain.TaskInProgress, domain.TaskReview:
		return true
	default:
		return false
	}
}

func workloadStatus(hours float64) domain.WorkloadStatus {
	switch {
	case hours > 80:
		return domain.WorkloadOverloaded
	case hours > 50:
		return domain.WorkloadHigh
	case hours < 20:
		return domain.WorkloadUnderutilized
	default:
		return domain.WorkloadOptimal
	}
}
