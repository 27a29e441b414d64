package services

import (
	"fmt"
	"strings"

	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/pkg/apperrors"
)

// SlotPolicy decides when two lectures occupy the same time slot
type SlotPolicy int

const (
	// ExactSlot treats lectures as colliding only when both start and end match
	ExactSlot SlotPolicy = iota
	// OverlappingSlot treats any intersection of [start, end) intervals as a collision
	OverlappingSlot
)

// ParseSlotPolicy maps the configuration value to a policy. Empty means exact.
func ParseSlotPolicy(value string) (SlotPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "exact":
		return ExactSlot, nil
	case "overlap":
		return OverlappingSlot, nil
	default:
		return ExactSlot, fmt.Errorf("unknown conflict policy %q", value)
	}
}

func (p SlotPolicy) String() string {
	if p == OverlappingSlot {
		return "overlap"
	}
	return "exact"
}

// Collides reports whether a and b take the same slot. Lectures without
// both times never collide.
func (p SlotPolicy) Collides(a, b *models.Lecture) bool {
	if a.StartTime == nil || a.EndTime == nil || b.StartTime == nil || b.EndTime == nil {
		return false
	}
	if p == OverlappingSlot {
		return a.StartTime.Before(*b.EndTime) && b.StartTime.Before(*a.EndTime)
	}
	return *a.StartTime == *b.StartTime && *a.EndTime == *b.EndTime
}

// ConflictDetector checks whether a lecture fits into a schedule
type ConflictDetector struct {
	policy SlotPolicy
}

// NewConflictDetector creates a detector using the given slot policy
func NewConflictDetector(policy SlotPolicy) *ConflictDetector {
	return &ConflictDetector{policy: policy}
}

// Policy returns the slot policy in use
func (d *ConflictDetector) Policy() SlotPolicy {
	return d.policy
}

// Check runs the classroom, teacher and group checks in that order and
// returns the first failure.
func (d *ConflictDetector) Check(lecture *models.Lecture, schedule *models.Schedule) error {
	if !d.IsClassRoomFree(lecture, schedule) {
		return apperrors.InvalidClassRoomf("The classroom is already occupied at this time.")
	}
	if !d.IsTeacherFree(lecture, schedule) {
		return apperrors.InvalidTeacherf("The teacher already has a lecture at this time.")
	}
	if !d.IsGroupFree(lecture, schedule) {
		return apperrors.InvalidGroupf("The group already has a lecture at this time.")
	}
	return nil
}

// IsClassRoomFree reports whether no other lecture of the schedule uses
// the candidate's classroom in a colliding slot.
func (d *ConflictDetector) IsClassRoomFree(lecture *models.Lecture, schedule *models.Schedule) bool {
	for _, l := range schedule.Lectures {
		if l.HeldIn(lecture.ClassRoom) && d.clashes(l, lecture) {
			return false
		}
	}
	return true
}

// IsTeacherFree reports whether the candidate's teacher has no other
// lecture of the schedule in a colliding slot.
func (d *ConflictDetector) IsTeacherFree(lecture *models.Lecture, schedule *models.Schedule) bool {
	for _, l := range schedule.Lectures {
		if l.TaughtBy(lecture.Teacher) && d.clashes(l, lecture) {
			return false
		}
	}
	return true
}

// IsGroupFree reports whether every group of the candidate is free.
func (d *ConflictDetector) IsGroupFree(lecture *models.Lecture, schedule *models.Schedule) bool {
	for _, group := range lecture.Groups {
		for _, l := range schedule.Lectures {
			if l.HasGroup(group) && d.clashes(l, lecture) {
				return false
			}
		}
	}
	return true
}

// IsTeacherAvailable reports whether teacher has no lecture of the
// schedule, other than lecture itself, colliding with lecture's slot.
func (d *ConflictDetector) IsTeacherAvailable(teacher *models.Teacher, lecture *models.Lecture, schedule *models.Schedule) bool {
	for _, l := range schedule.Lectures {
		if l.TaughtBy(teacher) && d.clashes(l, lecture) {
			return false
		}
	}
	return true
}

// clashes is a slot collision between two different lectures. A lecture
// is never in conflict with itself, so re-adding it is allowed.
func (d *ConflictDetector) clashes(existing, candidate *models.Lecture) bool {
	if existing.ID != 0 && existing.ID == candidate.ID {
		return false
	}
	return d.policy.Collides(existing, candidate)
}
