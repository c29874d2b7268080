package service

import (
	"fmt"
	"log"
	"time"

	"elysian/internal/availability"
	"elysian/internal/repository"
)

type JobService struct {
	Repo *repository.JobRepository

	refresh *availability.Scheduler
}

func NewJobService(repo *repository.JobRepository) *JobService {
	return &JobService{
		Repo:    repo,
		refresh: availability.NewScheduler(availability.DefaultDebounce),
	}
}

// ScheduleRefresh queues a debounced status refresh, so a burst of booking
// mutations collapses into a single sweep.
func (s *JobService) ScheduleRefresh() {
	s.refresh.Schedule(func() {
		if err := s.RefreshRoomStatuses(); err != nil {
			log.Printf("%v", err)
		}
	})
}

// RefreshRoomStatuses realigns room statuses with the stays covering today.
// Runs hourly and after booking mutations, so rooms freed by date rollover
// show as Available without any operator action.
func (s *JobService) RefreshRoomStatuses() error {
	log.Println("Jobs: refreshing room statuses...")
	today := time.Now().Truncate(24 * time.Hour)

	checkedIn, err := s.Repo.MarkCheckedInRooms(today)
	if err != nil {
		return fmt.Errorf("jobs: failed to mark checked-in rooms: %w", err)
	}
	occupied, err := s.Repo.MarkOccupiedRooms(today)
	if err != nil {
		return fmt.Errorf("jobs: failed to mark occupied rooms: %w", err)
	}
	released, err := s.Repo.ReleaseIdleRooms(today)
	if err != nil {
		return fmt.Errorf("jobs: failed to release idle rooms: %w", err)
	}

	log.Printf("Jobs: room statuses refreshed (%d checked-in, %d occupied, %d released).", checkedIn, occupied, released)
	return nil
}

// ExpireNoShows cancels bookings whose stay window passed without a check-in.
func (s *JobService) ExpireNoShows() error {
	log.Println("Jobs: expiring no-show bookings...")
	today := time.Now().Truncate(24 * time.Hour)

	expired, err := s.Repo.ExpireNoShowBookings(today)
	if err != nil {
		return fmt.Errorf("jobs: failed to expire no-show bookings: %w", err)
	}
	if expired > 0 {
		log.Printf("Jobs: cancelled %d no-show bookings.", expired)
	}
	return nil
}
