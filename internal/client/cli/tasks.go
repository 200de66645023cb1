package cli

import (
	"context"
	"fmt"
	"os"
)

func (a *App) ListTasks(ctx context.Context) {
	tasks, err := a.api.ListTasks(ctx)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks yet")
		return
	}

	for _, t := range tasks {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		fmt.Printf("[%s] %s  %s\n", mark, t.ID, t.Text)
	}
}

func (a *App) AddTask(ctx context.Context) {
	text, err := GetSimpleText(a.reader, "Enter task text", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	task, err := a.api.CreateTask(ctx, text)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	fmt.Println("Created task", task.ID)
}

func (a *App) CompleteTask(ctx context.Context, id string) {
	task, err := a.api.CompleteTask(ctx, id)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	fmt.Println("Completed task", task.ID)
}
