package chart

import (
	"fmt"
	"strings"
	"time"
)

const goalDateLayout = "2006-01-02"

func goalsFor(eval *Evaluation, seq GoalSequence) (*[]Goal, error) {
	switch seq {
	case ShortTermGoals:
		return &eval.ShortTerm, nil
	case LongTermGoals:
		return &eval.LongTerm, nil
	default:
		return nil, fmt.Errorf("%w: unknown goal sequence %q", ErrInvalidData, seq)
	}
}

// SetGoalStatus moves one goal between Continue and Completed. Any other
// status is rejected and the goal is left unchanged.
func SetGoalStatus(eval *Evaluation, seq GoalSequence, index int, status GoalStatus) error {
	if eval.Locked {
		return ErrLocked
	}
	goals, err := goalsFor(eval, seq)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(*goals) {
		return fmt.Errorf("%w: goal %d of %d", ErrIndexOutOfRange, index, len(*goals))
	}
	if status != GoalContinue && status != GoalCompleted {
		return fmt.Errorf("%w: %q", ErrInvalidGoalStatus, status)
	}
	(*goals)[index].Status = status
	return nil
}

// EditGoalText updates a goal's description and target date. A non-empty
// target date must be a calendar date in YYYY-MM-DD form.
func EditGoalText(eval *Evaluation, seq GoalSequence, index int, text string, targetDate string) error {
	if eval.Locked {
		return ErrLocked
	}
	goals, err := goalsFor(eval, seq)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(*goals) {
		return fmt.Errorf("%w: goal %d of %d", ErrIndexOutOfRange, index, len(*goals))
	}
	if err := validateDate(targetDate); err != nil {
		return err
	}
	(*goals)[index].Text = text
	(*goals)[index].TargetDate = targetDate
	return nil
}

// AddGoal appends a goal row. Status defaults to Continue when blank.
func AddGoal(eval *Evaluation, seq GoalSequence, text string, targetDate string, status GoalStatus) error {
	if eval.Locked {
		return ErrLocked
	}
	goals, err := goalsFor(eval, seq)
	if err != nil {
		return err
	}
	if status == "" {
		status = GoalContinue
	}
	if status != GoalContinue && status != GoalCompleted {
		return fmt.Errorf("%w: %q", ErrInvalidGoalStatus, status)
	}
	if err := validateDate(targetDate); err != nil {
		return err
	}
	*goals = append(*goals, Goal{Text: text, TargetDate: targetDate, Status: status})
	return nil
}

func RemoveGoal(eval *Evaluation, seq GoalSequence, index int) error {
	if eval.Locked {
		return ErrLocked
	}
	goals, err := goalsFor(eval, seq)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(*goals) {
		return fmt.Errorf("%w: goal %d of %d", ErrIndexOutOfRange, index, len(*goals))
	}
	*goals = append((*goals)[:index], (*goals)[index+1:]...)
	return nil
}

func validateDate(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if _, err := time.Parse(goalDateLayout, raw); err != nil {
		return fmt.Errorf("%w: %q is not a calendar date", ErrInvalidDate, raw)
	}
	return nil
}
